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

// Package cql recovers the structure of a measure from CQL library text.
//
// It does not parse CQL. It looks for a handful of well known declarations
// (populations, stratifiers, the library name) and records which are present.
package cql

// Definition is the structured view of a CQL library as far as measure
// generation is concerned.
type Definition struct {
	// LibraryName is either the DAK indicator ID (e.g. HIV.IND.12) or the
	// declared library name without its "Logic" suffix. Never empty.
	LibraryName string
	IsIndicator bool

	// TemplateOnly is nil if the library has no indicator definition header.
	// It points to true if the header is followed by whitespace only.
	TemplateOnly *bool

	HasDenominator        bool
	HasNumerator          bool
	HasInitialPopulation  bool
	HasMeasurePopulation  bool
	HasMeasureObservation bool

	// Stratifiers holds the distinct stratifier expression names in the order
	// they first appear.
	Stratifiers []string

	// PopulationExclusions holds the distinct population exclusion expression
	// names in the order they first appear. They are not rendered.
	PopulationExclusions []string
}

// IsTemplateOnly returns true if the library carries the indicator definition
// header but nothing after it.
func (d *Definition) IsTemplateOnly() bool {
	return d.TemplateOnly != nil && *d.TemplateOnly
}

// HasGroup returns true if a measure built from this definition needs a
// population group.
func (d *Definition) HasGroup() bool {
	return len(d.Stratifiers) > 0 ||
		d.HasInitialPopulation ||
		d.HasMeasurePopulation ||
		d.HasDenominator ||
		d.HasNumerator
}
