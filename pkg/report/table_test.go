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
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Table
		wantEnc Encoding
	}{
		{
			name:  "plain",
			input: "Title,Version\nApp,1.0\n,1.1\n",
			want:  Table{{"Title", "Version"}, {"App", "1.0"}, {"", "1.1"}},
		},
		{
			name:    "crlf_and_bom",
			input:   "\xEF\xBB\xBFTitle,Version\r\nApp,1.0\r\n",
			want:    Table{{"Title", "Version"}, {"App", "1.0"}},
			wantEnc: Encoding{CRLF: true, BOM: true},
		},
		{
			name:  "quoted_fields",
			input: "\"Acme, Inc. \"\"Pro\"\"\",\"2.0\"\n",
			want:  Table{{`Acme, Inc. "Pro"`, "2.0"}},
		},
		{
			name:  "ragged_rows",
			input: "a,b,c\nd\n",
			want:  Table{{"a", "b", "c"}, {"d"}},
		},
		{
			name:  "blank_lines_are_empty_rows",
			input: "App,1.0\n\n,1.1\r\n\n",
			want:  Table{{"App", "1.0"}, {}, {"", "1.1"}, {}},
		},
		{
			name:  "leading_blank_line",
			input: "\nApp,1.0\n",
			want:  Table{{}, {"App", "1.0"}},
		},
		{
			name:  "crlf_inside_quotes_is_not_a_terminator",
			input: "App,1.0,\"a\r\nb\"\nX,2.0,c\n",
			want:  Table{{"App", "1.0", "a\nb"}, {"X", "2.0", "c"}},
		},
		{
			name:    "crlf_from_first_record",
			input:   "App,1.0\r\nX,2.0\n",
			want:    Table{{"App", "1.0"}, {"X", "2.0"}},
			wantEnc: Encoding{CRLF: true},
		},
		{
			name:  "empty_input",
			input: "",
			want:  Table{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, enc, err := ReadCSV(strings.NewReader(tt.input))
			require.NoError(t, err, "ReadCSV should succeed")
			assert.Equal(t, tt.want, got, "table should match")
			assert.Equal(t, tt.wantEnc, enc, "encoding should match")
		})
	}
}

func TestReadCSVMalformed(t *testing.T) {
	_, _, err := ReadCSV(strings.NewReader("ok,row\n\"unterminated,row\n"))
	require.Error(t, err, "ReadCSV should fail")
	assert.True(t, errors.Is(err, ErrFormat), "error should be a format error")
	assert.Contains(t, err.Error(), "line", "error should name the line")
}

func TestWriteCSVKeepsLineEndings(t *testing.T) {
	table, enc, err := ReadCSV(strings.NewReader("App,1.0,\"a\r\nb\"\nX,2.0,c\n"))
	require.NoError(t, err, "reading")

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table, enc), "writing")
	assert.Equal(t, "App,1.0,\"a\nb\"\nX,2.0,c\n", buf.String(), "records should keep LF terminators")
}

func TestWriteCSVPreservesConventions(t *testing.T) {
	inputs := []string{
		"Title,Version\nApp,1.0\n",
		"\xEF\xBB\xBFTitle,Version\r\n\"A, B\",\"say \"\"hi\"\"\"\r\n",
	}

	for _, input := range inputs {
		table, enc, err := ReadCSV(strings.NewReader(input))
		require.NoError(t, err, "reading")

		var buf bytes.Buffer
		require.NoError(t, WriteCSV(&buf, table, enc), "writing")
		assert.Equal(t, input, buf.String(), "output should match input byte for byte")
	}
}
