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

package fsh

import (
	"fmt"
	"strings"

	"github.com/samply/cqlfsh/cql"
	"github.com/samply/cqlfsh/data"
)

// LibraryName returns the FHIR name of the Library of def. Dots are removed
// and "Logic" is appended, so HIV.IND.12 becomes HIVIND12Logic.
func LibraryName(def *cql.Definition) string {
	return strings.ReplaceAll(def.LibraryName, ".", "") + "Logic"
}

// LibraryUrl returns the canonical URL of the Library of def.
func LibraryUrl(def *cql.Definition) string {
	return fmt.Sprintf("http://smart.who.int/%s/Library/%s", dakName(def.LibraryName), LibraryName(def))
}

// LibraryDescription returns the indicator definition of the library if
// indicators has a row for it and a placeholder otherwise. indicators may be
// nil.
func LibraryDescription(def *cql.Definition, indicators data.IndicatorLookup) (string, error) {
	if indicators != nil {
		if row, ok := indicators.Indicator(def.LibraryName); ok {
			return row.Get(data.ColumnIndicatorDefinition)
		}
	}
	return fmt.Sprintf("Description not yet available for %s.", LibraryName(def)), nil
}

// BuildLibrary renders the Library instance of def.
func BuildLibrary(def *cql.Definition, indicators data.IndicatorLookup) (*Artifact, error) {
	name := LibraryName(def)
	description, err := LibraryDescription(def, indicators)
	if err != nil {
		return nil, fmt.Errorf("error while rendering library %s: %w", name, err)
	}

	var builder strings.Builder
	if err := libraryTemplate.Execute(&builder, libraryHeader{
		Name:        name,
		Title:       def.LibraryName,
		Description: description,
		DakName:     dakName(def.LibraryName),
	}); err != nil {
		return nil, fmt.Errorf("error while rendering library %s: %w", name, err)
	}
	return &Artifact{Name: name, Text: builder.String()}, nil
}
