// Copyright 2019 - 2025 The Samply Community
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

package data

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/parquet-go/parquet-go"
	"github.com/viant/afs"
)

// LoadIndicators downloads the indicator definitions from URL, which may also
// be a plain file path, and decodes them according to the file extension.
// Supported are .yaml/.yml, .csv and .parquet.
func LoadIndicators(ctx context.Context, fs afs.Service, URL string) (Indicators, error) {
	content, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("error while reading indicators %s: %w", URL, err)
	}

	var rows []IndicatorRow
	switch ext := strings.ToLower(path.Ext(URL)); ext {
	case ".yaml", ".yml":
		rows, err = DecodeIndicatorsYAML(content)
	case ".csv":
		rows, err = DecodeIndicatorsCSV(content)
	case ".parquet":
		rows, err = DecodeIndicatorsParquet(content)
	default:
		return nil, fmt.Errorf("unsupported indicator file type `%s`", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("error while decoding indicators %s: %w", URL, err)
	}
	return NewIndicators(rows), nil
}

// DecodeIndicatorsYAML decodes a YAML sequence of mappings from column name to
// value. Null values are treated as missing columns.
func DecodeIndicatorsYAML(content []byte) ([]IndicatorRow, error) {
	var docs []map[string]any
	if err := yaml.Unmarshal(content, &docs); err != nil {
		return nil, err
	}
	rows := make([]IndicatorRow, 0, len(docs))
	for _, doc := range docs {
		row := make(IndicatorRow, len(doc))
		for column, value := range doc {
			switch v := value.(type) {
			case nil:
			case string:
				row[column] = v
			default:
				row[column] = fmt.Sprint(v)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// DecodeIndicatorsCSV decodes CSV with a header row. Records shorter than the
// header leave the trailing columns missing.
func DecodeIndicatorsCSV(content []byte) ([]IndicatorRow, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []IndicatorRow
	for {
		record, err := r.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		row := make(IndicatorRow, len(header))
		for i, value := range record {
			if i < len(header) {
				row[header[i]] = value
			}
		}
		rows = append(rows, row)
	}
}

// parquetIndicator is the Parquet schema of indicator definitions as exported
// from the DAK spreadsheet.
type parquetIndicator struct {
	DakId                 *string `parquet:"DAK ID,optional"`
	ShortName             *string `parquet:"Short name,optional"`
	IndicatorDefinition   *string `parquet:"Indicator definition,optional"`
	DenominatorDefinition *string `parquet:"Denominator definition,optional"`
	NumeratorDefinition   *string `parquet:"Numerator definition,optional"`
}

func (p parquetIndicator) row() IndicatorRow {
	row := make(IndicatorRow, 5)
	for column, value := range map[string]*string{
		ColumnDakId:                 p.DakId,
		ColumnShortName:             p.ShortName,
		ColumnIndicatorDefinition:   p.IndicatorDefinition,
		ColumnDenominatorDefinition: p.DenominatorDefinition,
		ColumnNumeratorDefinition:   p.NumeratorDefinition,
	} {
		if value != nil {
			row[column] = strings.Clone(*value)
		}
	}
	return row
}

// DecodeIndicatorsParquet decodes a Parquet file with optional string columns
// named after the indicator sheet columns.
func DecodeIndicatorsParquet(content []byte) ([]IndicatorRow, error) {
	file, err := parquet.OpenFile(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	reader := parquet.NewGenericReader[parquetIndicator](file)
	defer reader.Close()

	rows := make([]IndicatorRow, 0, reader.NumRows())
	buf := make([]parquetIndicator, 64)
	for {
		n, err := reader.Read(buf)
		for _, p := range buf[:n] {
			rows = append(rows, p.row())
		}
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read parquet rows: %w", err)
		}
		if n == 0 {
			return rows, nil
		}
	}
}
