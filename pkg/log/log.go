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

package log

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// 🗂️ FileOptions configures the rotating JSON log file
type FileOptions struct {
	Filename   string
	MaxSize    int // megabytes before rotation
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// 🎯 Options configures the process logger
type Options struct {
	Console io.Writer // human-readable output, usually stderr
	NoColor bool
	Debug   bool
	File    *FileOptions // nil disables the log file
}

// 🎯 Logger is a zerolog logger plus the file it may own
type Logger struct {
	zerolog.Logger
	file *lumberjack.Logger
}

// 🏭 New creates a logger writing to the console and, when configured, to a
// rotating log file
func New(opts Options) *Logger {
	level := zerolog.InfoLevel
	if opts.Debug {
		level = zerolog.DebugLevel
	}

	var w io.Writer = zerolog.ConsoleWriter{
		Out:        opts.Console,
		NoColor:    opts.NoColor,
		TimeFormat: time.Kitchen,
	}

	l := &Logger{}
	if opts.File != nil && opts.File.Filename != "" {
		l.file = &lumberjack.Logger{
			Filename:   opts.File.Filename,
			MaxSize:    opts.File.MaxSize,
			MaxBackups: opts.File.MaxBackups,
			MaxAge:     opts.File.MaxAge,
			Compress:   opts.File.Compress,
		}
		w = zerolog.MultiLevelWriter(w, l.file)
	}

	l.Logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
	return l
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
