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

// Package fsh renders FHIR Shorthand (FSH) Library and Measure instances from
// parsed CQL definitions and DAK indicator metadata.
package fsh

import "strings"

// Artifact is a rendered FSH instance.
type Artifact struct {
	// Name is the FSH instance name. It's also used as file name.
	Name string
	Text string
}

// dakName returns the part of a library name before the first dot, e.g. HIV
// for HIV.IND.12.
func dakName(libraryName string) string {
	name, _, _ := strings.Cut(libraryName, ".")
	return name
}
