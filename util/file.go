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
	"errors"
	"fmt"
	"os"
)

// ErrOutputExists is returned by WriteOutputFile if the file is already there
// and overwriting isn't forced.
var ErrOutputExists = errors.New("the output file does already exist")

// WriteOutputFile writes content into the file at filepath.
// This is a non-destructive operation unless force is set. Hence, if a file
// already exists at the given filepath, ErrOutputExists is returned and the
// file is left untouched.
func WriteOutputFile(filepath string, content string, force bool) error {
	flag := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	outputFile, err := os.OpenFile(filepath, flag, 0644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: %s", ErrOutputExists, filepath)
		}
		return fmt.Errorf("could not open/create the output file %s: %w", filepath, err)
	}
	if _, err := outputFile.WriteString(content); err != nil {
		outputFile.Close()
		return fmt.Errorf("could not write the output file %s: %w", filepath, err)
	}
	return outputFile.Close()
}
