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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndicatorRow_Get(t *testing.T) {
	row := IndicatorRow{ColumnDakId: "HIV.IND.1", ColumnShortName: ""}

	t.Run("present", func(t *testing.T) {
		value, err := row.Get(ColumnDakId)
		require.NoError(t, err)
		assert.Equal(t, "HIV.IND.1", value)
	})

	t.Run("present but empty", func(t *testing.T) {
		value, err := row.Get(ColumnShortName)
		require.NoError(t, err)
		assert.Equal(t, "", value)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := row.Get(ColumnNumeratorDefinition)
		assert.ErrorIs(t, err, ErrMissingField)
		assert.Equal(t, `missing field "Numerator definition" in indicator row "HIV.IND.1"`, err.Error())
	})
}

func TestNewIndicators(t *testing.T) {
	indicators := NewIndicators([]IndicatorRow{
		{ColumnDakId: "HIV.IND.1", ColumnShortName: "first"},
		{ColumnShortName: "no id"},
		{ColumnDakId: "HIV.IND.2"},
		{ColumnDakId: "HIV.IND.1", ColumnShortName: "second"},
	})

	assert.Len(t, indicators, 2)

	row, ok := indicators.Indicator("HIV.IND.1")
	require.True(t, ok)
	assert.Equal(t, "second", row[ColumnShortName])

	_, ok = indicators.Indicator("HIV.IND.3")
	assert.False(t, ok)
}
