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
	"fmt"
	"strings"
	"time"
)

// Failure is an input which couldn't be converted.
type Failure struct {
	Input string
	Err   error
}

// GenerateStats collects the outcome of converting a set of CQL files.
type GenerateStats struct {
	Files           int
	Libraries       int
	Measures        int
	SkippedMeasures int
	Failures        []Failure
	Durations       []time.Duration
	TotalDuration   time.Duration
}

// AddFailure records that input failed with err.
func (gs *GenerateStats) AddFailure(input string, err error) {
	gs.Failures = append(gs.Failures, Failure{Input: input, Err: err})
}

func (gs *GenerateStats) String() string {
	builder := strings.Builder{}
	builder.WriteString(fmt.Sprintf("Files		[total, failed]		%d, %d\n", gs.Files, len(gs.Failures)))
	builder.WriteString(fmt.Sprintf("Libraries	[written]		%d\n", gs.Libraries))
	builder.WriteString(fmt.Sprintf("Measures	[written, skipped]	%d, %d\n", gs.Measures, gs.SkippedMeasures))
	builder.WriteString(fmt.Sprintf("Duration	[total]			%s\n", FmtDurationHumanReadable(gs.TotalDuration)))

	if len(gs.Durations) > 0 {
		p := CalculateDurationStatistics(gs.Durations)
		builder.WriteString(fmt.Sprintf("Latencies	[mean, 50, 95, 99, max]	%s, %s, %s, %s, %s\n", p.Mean, p.Q50, p.Q95, p.Q99, p.Max))
	}

	if len(gs.Failures) > 0 {
		builder.WriteString("\nErrors:\n")
		for _, failure := range gs.Failures {
			builder.WriteString(Indent(2, fmt.Sprintf("%s: %s", failure.Input, failure.Err)))
			builder.WriteString("\n")
		}
	}

	return builder.String()
}
