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

// Package scoring decides the measure scoring of a parsed CQL definition.
package scoring

import "github.com/samply/cqlfsh/cql"

// Decision is a measure scoring together with the profile a Measure instance
// of that scoring conforms to.
type Decision struct {
	// Code from http://terminology.hl7.org/CodeSystem/measure-scoring
	Code       string
	Title      string
	InstanceOf string
}

var (
	Proportion = Decision{
		Code:       "proportion",
		Title:      "Proportion",
		InstanceOf: "http://hl7.org/fhir/us/cqfmeasures/StructureDefinition/proportion-measure-cqfm",
	}
	ContinuousVariable = Decision{
		Code:       "continuous-variable",
		Title:      "Continuous Variable",
		InstanceOf: "http://hl7.org/fhir/us/cqfmeasures/StructureDefinition/cv-measure-cqfm",
	}
)

// A Resolver decides the scoring of a definition. It returns false if the
// scoring can't be determined.
type Resolver func(def *cql.Definition) (Decision, bool)

// Resolve is the default Resolver.
//
// Definitions with a numerator or denominator are proportions. Otherwise
// definitions with a measure population or measure observation are
// continuous variables. Everything else is undetermined.
func Resolve(def *cql.Definition) (Decision, bool) {
	switch {
	case def.HasNumerator || def.HasDenominator:
		return Proportion, true
	case def.HasMeasurePopulation || def.HasMeasureObservation:
		return ContinuousVariable, true
	default:
		return Decision{}, false
	}
}
