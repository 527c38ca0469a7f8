// Copyright 2026 evpop Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dataset

import (
	"archive/zip"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/juju/errors"
	"go.uber.org/zap"
	"modernc.org/mathutil"

	"github.com/evpop-io/evpop/base/log"
	"github.com/evpop-io/evpop/common/util"
)

// ErrLoad is returned when the source file is unreadable, empty or
// yields no data rows.
var ErrLoad = errors.New("failed to load dataset")

// Cell texts treated as missing markers, beyond the empty string.
var missingMarkers = map[string]bool{
	"NA":   true,
	"N/A":  true,
	"NAN":  true,
	"NULL": true,
}

func isMissingMarker(cell string) bool {
	cell = strings.TrimSpace(cell)
	return cell == "" || missingMarkers[strings.ToUpper(cell)]
}

// LoadCSV reads a delimited UTF-8 file with a header row into a Table.
// Files ending with .zip are treated as archives holding a single CSV.
// Column types are inferred: a column is numeric if every non-missing
// cell parses as a float, otherwise categorical.
func LoadCSV(path string) (*Table, error) {
	var reader io.ReadCloser
	if strings.HasSuffix(strings.ToLower(path), ".zip") {
		archive, err := zip.OpenReader(path)
		if err != nil {
			return nil, errors.Annotatef(ErrLoad, "open archive %s: %v", path, err)
		}
		defer archive.Close()
		var entry *zip.File
		for _, f := range archive.File {
			if !f.FileInfo().IsDir() && strings.HasSuffix(strings.ToLower(f.Name), ".csv") {
				entry = f
				break
			}
		}
		if entry == nil {
			return nil, errors.Annotatef(ErrLoad, "no csv entry in archive %s", path)
		}
		rc, err := entry.Open()
		if err != nil {
			return nil, errors.Annotatef(ErrLoad, "open archive entry %s: %v", entry.Name, err)
		}
		reader = rc
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Annotatef(ErrLoad, "open %s: %v", path, err)
		}
		reader = f
	}
	defer reader.Close()
	table, err := ReadCSV(reader)
	if err != nil {
		return nil, errors.Annotatef(err, "load %s", path)
	}
	log.Logger().Info("dataset loaded",
		zap.String("path", path),
		zap.Int("n_rows", table.NumRow()),
		zap.Int("n_columns", table.NumCol()))
	return table, nil
}

// ReadCSV parses CSV content with a header row into a Table.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Annotatef(ErrLoad, "parse csv: %v", err)
	}
	if len(records) == 0 {
		return nil, errors.Annotatef(ErrLoad, "empty file")
	}
	header := records[0]
	rows := records[1:]
	if len(rows) == 0 {
		return nil, errors.Annotatef(ErrLoad, "no data rows")
	}
	// collect raw cells column-wise, padding short rows with missing cells
	raw := make([][]string, len(header))
	for i := range raw {
		raw[i] = make([]string, len(rows))
	}
	for i, row := range rows {
		width := mathutil.Min(len(row), len(header))
		for j := 0; j < width; j++ {
			raw[j][i] = row[j]
		}
	}
	table := &Table{Columns: make([]*Column, 0, len(header))}
	for j, name := range header {
		table.Columns = append(table.Columns, inferColumn(strings.TrimSpace(name), raw[j]))
	}
	return table, nil
}

// inferColumn builds a typed column from raw cells.
func inferColumn(name string, cells []string) *Column {
	column := &Column{
		Name:    name,
		Missing: make([]bool, len(cells)),
	}
	values := make([]float64, len(cells))
	numeric := true
	nonMissing := 0
	for i, cell := range cells {
		if isMissingMarker(cell) {
			column.Missing[i] = true
			continue
		}
		nonMissing++
		if numeric {
			v, err := util.ParseFloat[float64](strings.TrimSpace(cell))
			if err != nil {
				numeric = false
			} else {
				values[i] = v
			}
		}
	}
	if numeric && nonMissing > 0 {
		column.Kind = Numeric
		column.Values = values
		return column
	}
	column.Kind = Categorical
	column.Labels = make([]string, len(cells))
	for i, cell := range cells {
		if !column.Missing[i] {
			column.Labels[i] = strings.TrimSpace(cell)
		}
	}
	return column
}

// WriteCSV serializes the table with the same column semantics as the
// input file. Missing entries are written as empty cells.
func WriteCSV(table *Table, w io.Writer) error {
	writer := csv.NewWriter(w)
	header := make([]string, table.NumCol())
	for j, column := range table.Columns {
		header[j] = column.Name
	}
	if err := writer.Write(header); err != nil {
		return errors.Trace(err)
	}
	record := make([]string, table.NumCol())
	for i := 0; i < table.NumRow(); i++ {
		for j, column := range table.Columns {
			switch {
			case column.Missing[i]:
				record[j] = ""
			case column.Kind == Numeric:
				record[j] = util.FormatFloat(column.Values[i])
			default:
				record[j] = column.Labels[i]
			}
		}
		if err := writer.Write(record); err != nil {
			return errors.Trace(err)
		}
	}
	writer.Flush()
	return errors.Trace(writer.Error())
}
