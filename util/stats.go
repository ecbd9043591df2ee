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
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DurationStatistics represents statistics about measured durations.
// Comprises information about the mean and max as well as different
// percentiles (50, 95 and 99).
type DurationStatistics struct {
	Mean, Q50, Q95, Q99, Max time.Duration
}

// CalculateDurationStatistics calculates the DurationStatistics of durations
// with microsecond precision.
func CalculateDurationStatistics(durations []time.Duration) DurationStatistics {
	if len(durations) == 0 {
		return DurationStatistics{}
	}

	seconds := make([]float64, len(durations))
	for i, d := range durations {
		seconds[i] = d.Seconds()
	}
	sort.Float64s(seconds)

	quantile := func(p float64) time.Duration {
		return fromSeconds(stat.Quantile(p, stat.Empirical, seconds, nil))
	}
	return DurationStatistics{
		Mean: fromSeconds(floats.Sum(seconds) / float64(len(seconds))),
		Q50:  quantile(0.5),
		Q95:  quantile(0.95),
		Q99:  quantile(0.99),
		Max:  fromSeconds(seconds[len(seconds)-1]),
	}
}

func fromSeconds(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds*1e6)) * time.Microsecond
}

// FmtDurationHumanReadable takes a duration and returns it in a human readable form.
// Durations under a minute get printed with millisecond precision, longer ones
// with second precision.
func FmtDurationHumanReadable(d time.Duration) string {
	if d < time.Minute {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}
