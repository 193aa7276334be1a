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
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	typeWidth   = 10 // Width for file type
	statusWidth = 10 // Width for status text
)

// 🎯 FormatFileOperation formats one file outcome for display
func FormatFileOperation(path, fileType string, st FileStatus, detail string) string {
	var prefix string
	switch st {
	case StatusNew:
		prefix = color.GreenString("✓")
	case StatusModified:
		prefix = color.YellowString("⟳")
	case StatusUnchanged:
		prefix = color.HiBlackString("-")
	default:
		prefix = color.RedString("?")
	}

	line := fmt.Sprintf("%s%s %-*s %-*s %-*s",
		strings.Repeat(" ", fileIndent),
		prefix,
		nameWidth, path,
		typeWidth, fileType,
		statusWidth, st.String(),
	)
	if detail != "" {
		line += " " + color.New(color.Faint).Sprint(detail)
	}
	return strings.TrimRight(line, " ")
}

// 🔍 FormatDiff renders a line oriented diff of before and after.
// Unchanged lines are dropped; removed lines get "-", added lines "+".
func FormatDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			line = strings.TrimRight(line, "\r\n")
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				sb.WriteString(color.RedString("- %s", line))
				sb.WriteString("\n")
			case diffmatchpatch.DiffInsert:
				sb.WriteString(color.GreenString("+ %s", line))
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}
