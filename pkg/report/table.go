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
	"encoding/csv"
	"io"

	"gitlab.com/tozd/go/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// 📄 Row is one record of the report, positionally indexed.
type Row []string

// 📚 Table is the whole report, loaded into memory at once.
type Table []Row

// Clone returns a deep copy so callers can mutate rows freely.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for i, row := range t {
		out[i] = append(Row(nil), row...)
	}
	return out
}

// 🔧 Encoding remembers the byte-level conventions of the source so they survive a rewrite.
type Encoding struct {
	CRLF bool // lines end in \r\n
	BOM  bool // file starts with a UTF-8 byte-order mark
}

// 📝 ReadCSV parses a comma separated, double-quote escaped table.
// Rows may have differing widths; width checks belong to Fill.
func ReadCSV(r io.Reader) (Table, Encoding, error) {
	var enc Encoding

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, enc, errors.Errorf("%w: reading contents: %s", ErrIO, err.Error())
	}

	if bytes.HasPrefix(data, utf8BOM) {
		enc.BOM = true
		data = data[len(utf8BOM):]
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	table := Table{}
	sawRecord := false
	for {
		start := reader.InputOffset()
		rec, err := reader.Read()

		// the reader drops empty lines; they are zero-field rows here so
		// Fill rejects them instead of the rewrite deleting them
		for n := blankLines(data[start:]); n > 0; n-- {
			table = append(table, Row{})
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, enc, errors.Errorf("%w: line %d: %s", ErrFormat, perr.Line, perr.Err.Error())
			}
			return nil, enc, errors.Errorf("%w: %s", ErrFormat, err.Error())
		}

		if !sawRecord {
			// line endings come from the first record terminator only
			end := reader.InputOffset()
			enc.CRLF = end >= 2 && data[end-2] == '\r' && data[end-1] == '\n'
			sawRecord = true
		}
		table = append(table, Row(rec))
	}

	return table, enc, nil
}

// blankLines counts the empty lines at the start of b.
func blankLines(b []byte) int {
	n := 0
	for {
		switch {
		case bytes.HasPrefix(b, []byte("\n")):
			b = b[1:]
		case bytes.HasPrefix(b, []byte("\r\n")):
			b = b[2:]
		default:
			return n
		}
		n++
	}
}

// 📝 WriteCSV serializes the table with the same conventions ReadCSV accepts.
func WriteCSV(w io.Writer, t Table, enc Encoding) error {
	if enc.BOM {
		if _, err := w.Write(utf8BOM); err != nil {
			return errors.Errorf("writing byte-order mark: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	writer.UseCRLF = enc.CRLF
	for i, row := range t {
		if err := writer.Write(row); err != nil {
			return errors.Errorf("writing row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Errorf("flushing csv: %w", err)
	}
	return nil
}
