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

package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateDurationStatistics(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, DurationStatistics{}, CalculateDurationStatistics(nil))
	})

	t.Run("unsorted input", func(t *testing.T) {
		stats := CalculateDurationStatistics([]time.Duration{
			5 * time.Second, time.Second, 3 * time.Second, 2 * time.Second, 4 * time.Second,
		})

		assert.Equal(t, DurationStatistics{
			Mean: 3 * time.Second,
			Q50:  3 * time.Second,
			Q95:  5 * time.Second,
			Q99:  5 * time.Second,
			Max:  5 * time.Second,
		}, stats)
	})

	t.Run("single value", func(t *testing.T) {
		stats := CalculateDurationStatistics([]time.Duration{1500 * time.Microsecond})

		assert.Equal(t, 1500*time.Microsecond, stats.Mean)
		assert.Equal(t, 1500*time.Microsecond, stats.Max)
	})
}

func TestFmtDurationHumanReadable(t *testing.T) {
	assert.Equal(t, "1.235s", FmtDurationHumanReadable(1234567*time.Microsecond))
	assert.Equal(t, "1m2s", FmtDurationHumanReadable(61700*time.Millisecond))
}
