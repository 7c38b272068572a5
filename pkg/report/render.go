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

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/walteh/renamerc/pkg/rules"
	"github.com/walteh/renamerc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// RenderOptions selects the optional sections of a rendered summary.
type RenderOptions struct {
	// Matches lists every occurrence with its source line
	Matches bool

	// Diff prints a unified diff per changed file; the reporter must keep text
	Diff bool

	// Unchanged includes unchanged files in the table
	Unchanged bool
}

// 🖨️ Render writes a human-readable summary of s to w.
func Render(w io.Writer, s *RunSummary, opts RenderOptions) error {
	if opts.Matches {
		renderMatches(w, s)
	}

	if rows := tableRows(s, opts.Unchanged); len(rows) > 0 {
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Path", "Status", "Encoding", "Replaced", "Detail"})
		table.SetBorder(false)
		table.SetCenterSeparator("")
		table.SetAutoWrapText(false)
		table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT})
		table.AppendBulk(rows)
		table.Render()
	}

	if opts.Diff {
		for _, f := range s.Files {
			if f.Status != status.StatusChanged {
				continue
			}
			diff, err := UnifiedDiff(f.Path, f.original, f.rewritten)
			if err != nil {
				return err
			}
			fmt.Fprint(w, diff)
		}
	}

	fmt.Fprintln(w, SummaryLine(s))

	if problems := s.Problems(); len(problems) > 0 && s.ExitCode() != 0 {
		fmt.Fprintln(w, color.New(color.Bold).Sprint("Problems:"))
		for _, f := range problems {
			fmt.Fprintf(w, "  %s %s: %s\n", statusColor(f.Status).Sprint(f.Status), f.Path, f.Error)
		}
	}

	return nil
}

// SummaryLine returns the one-line outcome of a run.
func SummaryLine(s *RunSummary) string {
	verb := "replaced"
	if s.DryRun {
		verb = "to replace"
	}

	line := fmt.Sprintf("%d file(s) scanned, %d changed, %d occurrence(s) %s, %d skipped, %d failed",
		s.FilesScanned, s.FilesChanged, s.OccurrencesReplaced, verb, s.FilesSkipped, s.FilesFailed)
	if s.DryRun {
		line += " (dry run)"
	}
	if s.Interrupted {
		line += " (interrupted)"
	}

	switch {
	case s.FilesFailed > 0 || s.Interrupted:
		return color.RedString("✗ %s", line)
	case s.FilesSkipped > 0:
		return color.YellowString("⚠ %s", line)
	default:
		return color.GreenString("✓ %s", line)
	}
}

// UnifiedDiff renders the change to one file as a unified diff.
func UnifiedDiff(path, original, rewritten string) (string, error) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(rewritten),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  2,
	})
	if err != nil {
		return "", errors.Errorf("diffing %s: %w", path, err)
	}
	return diff, nil
}

func renderMatches(w io.Writer, s *RunSummary) {
	for _, f := range s.Files {
		for _, m := range f.Matches {
			fmt.Fprintf(w, "%s:%d:%d\t%s → %s\t%s\n",
				color.CyanString(f.Path), m.Line, m.Column,
				m.Old, color.GreenString(m.New),
				strings.TrimSpace(m.Text))
		}
	}
}

func tableRows(s *RunSummary, unchanged bool) [][]string {
	var rows [][]string
	for _, f := range s.Files {
		if f.Status == status.StatusUnchanged && !unchanged {
			continue
		}
		rows = append(rows, []string{
			f.Path,
			statusColor(f.Status).Sprint(f.Status),
			f.Encoding,
			fmt.Sprintf("%d", f.Replaced),
			detail(f),
		})
	}
	return rows
}

func detail(f FileResult) string {
	if f.Error != "" {
		return f.Error
	}
	parts := make([]string, 0, len(f.Rules))
	for _, d := range f.Rules {
		parts = append(parts, fmt.Sprintf("%s→%s ×%d", d.Old, d.New, d.Replaced))
	}
	return strings.Join(parts, ", ")
}

func statusColor(s status.FileStatus) *color.Color {
	switch s {
	case status.StatusChanged:
		return color.New(color.FgYellow)
	case status.StatusFailed:
		return color.New(color.FgRed)
	case status.StatusSkipped:
		return color.New(color.FgHiBlack)
	default:
		return color.New(color.FgGreen)
	}
}

// RenderRules lists a rule set as a table.
func RenderRules(w io.Writer, rs []rules.RenameRule) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Old", "New", "Boundary", "Guard"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)

	for i, r := range rs {
		flags := string(r.Boundary)
		if r.IgnoreCase {
			flags += ", ignore case"
		}
		table.Append([]string{fmt.Sprintf("%d", i+1), r.Old, r.New, flags, guardText(r.Guard)})
	}
	table.Render()
}

func guardText(g *rules.Guard) string {
	if g == nil {
		return ""
	}
	var parts []string
	for _, s := range g.NotPrecededBy {
		parts = append(parts, fmt.Sprintf("not after %q", s))
	}
	for _, s := range g.NotFollowedBy {
		parts = append(parts, fmt.Sprintf("not before %q", s))
	}
	return strings.Join(parts, ", ")
}
