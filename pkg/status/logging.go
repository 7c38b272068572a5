// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent    = 4  // spaces to indent file entries
	nameWidth     = 35 // Base width for filename
	encodingWidth = 10 // Width for encoding
	statusWidth   = 10 // Width for status text
)

// 🎯 FormatFileLine formats a file outcome as an aligned, coloured line
func FormatFileLine(rec *FileRecord) string {
	var prefix string
	switch rec.Status {
	case StatusChanged:
		prefix = color.YellowString("⟳")
	case StatusFailed:
		prefix = color.RedString("✗")
	case StatusSkipped:
		prefix = color.HiBlackString("⏭")
	default:
		prefix = color.HiBlackString("-")
	}

	namePart := fmt.Sprintf("%-*s", nameWidth, rec.Path)
	encPart := fmt.Sprintf("%-*s", encodingWidth, rec.Encoding)
	statusPart := fmt.Sprintf("%-*s", statusWidth, rec.Status)

	line := fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		namePart,
		encPart,
		statusPart,
	)
	if rec.Status == StatusChanged {
		line += fmt.Sprintf(" %d", len(rec.Occurrences))
	}
	return strings.TrimRight(line, " ")
}

// 📢 UserLogger provides user-friendly feedback about file outcomes
type UserLogger struct {
	log       zerolog.Logger // for debug/error logging
	formatter FileFormatter
	dryRun    bool

	mu  sync.Mutex // serializes writes to out across workers
	out io.Writer
}

// 🎯 NewUserLogger creates a new user logger writing to w
func NewUserLogger(ctx context.Context, w io.Writer, dryRun bool) *UserLogger {
	return &UserLogger{
		log:       *zerolog.Ctx(ctx),
		formatter: NewDefaultFileFormatter(),
		dryRun:    dryRun,
		out:       w,
	}
}

// 📝 LogRecord prints a file outcome with a status-specific prefix printer
func (u *UserLogger) LogRecord(rec *FileRecord) {
	msg := u.formatter.FormatRecord(rec, u.dryRun)

	var printer *pterm.PrefixPrinter
	switch rec.Status {
	case StatusChanged:
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: "RENAME", Style: pterm.Info.Prefix.Style})
	case StatusSkipped:
		printer = pterm.Warning.WithPrefix(pterm.Prefix{Text: "SKIP", Style: pterm.Warning.Prefix.Style})
	case StatusFailed:
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: "FAIL", Style: pterm.Error.Prefix.Style})
	}

	event := u.log.Debug()
	if rec.Status == StatusFailed {
		event = u.log.Error().Err(rec.Err)
	} else if rec.Status == StatusSkipped {
		event = u.log.Warn().Err(rec.Err)
	}
	event.Str("path", rec.Path).
		Str("status", rec.Status.String()).
		Str("encoding", rec.Encoding).
		Int("occurrences", len(rec.Occurrences)).
		Msg(msg)

	if u.out == nil || printer == nil {
		return
	}
	line := FormatFileLine(rec)

	u.mu.Lock()
	defer u.mu.Unlock()
	printer.WithWriter(u.out).Println(line)
}
