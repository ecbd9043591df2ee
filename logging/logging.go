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

package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Setup creates a logger writing to w. format "text" gives human friendly
// console output, everything else JSON.
func Setup(format string, w io.Writer) zerolog.Logger {
	if format == "text" {
		return zerolog.New(zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}).With().Timestamp().Logger()
	}
	return zerolog.New(w).With().Timestamp().Logger()
}
