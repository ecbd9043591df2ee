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
	"errors"
	"fmt"
)

// Column names of the DAK indicator definitions sheet.
const (
	ColumnDakId                 = "DAK ID"
	ColumnShortName             = "Short name"
	ColumnIndicatorDefinition   = "Indicator definition"
	ColumnDenominatorDefinition = "Denominator definition"
	ColumnNumeratorDefinition   = "Numerator definition"
)

// ErrMissingField is returned when a row has no value for a requested column.
var ErrMissingField = errors.New("missing field")

// IndicatorRow is one row of the indicator definitions sheet keyed by column
// name.
type IndicatorRow map[string]string

// Get returns the value of column or ErrMissingField if the row has no such
// column.
func (r IndicatorRow) Get(column string) (string, error) {
	value, ok := r[column]
	if !ok {
		return "", fmt.Errorf("%w %q in indicator row %q", ErrMissingField, column, r[ColumnDakId])
	}
	return value, nil
}

// IndicatorLookup finds the indicator row of a library name.
type IndicatorLookup interface {
	Indicator(name string) (IndicatorRow, bool)
}

// Indicators maps DAK IDs to indicator rows.
type Indicators map[string]IndicatorRow

// NewIndicators indexes rows by their DAK ID. Rows without a DAK ID are
// skipped. Later rows replace earlier rows with the same DAK ID.
func NewIndicators(rows []IndicatorRow) Indicators {
	indicators := make(Indicators, len(rows))
	for _, row := range rows {
		if id := row[ColumnDakId]; id != "" {
			indicators[id] = row
		}
	}
	return indicators
}

func (i Indicators) Indicator(name string) (IndicatorRow, bool) {
	row, ok := i[name]
	return row, ok
}
