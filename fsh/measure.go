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
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/samply/cqlfsh/cql"
	"github.com/samply/cqlfsh/data"
	"github.com/samply/cqlfsh/scoring"
)

// ErrMissingIndicatorMetadata is returned if an indicator library has no
// indicator row.
var ErrMissingIndicatorMetadata = errors.New("missing indicator metadata")

// A MeasureBuilder renders Measure instances.
type MeasureBuilder struct {
	Resolve scoring.Resolver
	// Now returns the measure date. Only the UTC date part is used.
	Now func() time.Time
	Log zerolog.Logger
}

// NewMeasureBuilder creates a MeasureBuilder with the default scoring resolver
// and clock.
func NewMeasureBuilder(log zerolog.Logger) *MeasureBuilder {
	return &MeasureBuilder{
		Resolve: scoring.Resolve,
		Now:     time.Now,
		Log:     log,
	}
}

// BuildMeasure renders the Measure of def with a MeasureBuilder that doesn't
// log.
func BuildMeasure(def *cql.Definition, indicators data.IndicatorLookup) (*Artifact, error) {
	return NewMeasureBuilder(zerolog.Nop()).Build(def, indicators)
}

// Build renders the Measure instance of def.
//
// Returns nil without error if def isn't an indicator, contains no logic
// after the indicator definition header or if its scoring can't be
// determined. Returns ErrMissingIndicatorMetadata if indicators has no row for
// the library.
func (b *MeasureBuilder) Build(def *cql.Definition, indicators data.IndicatorLookup) (*Artifact, error) {
	if !def.IsIndicator || def.IsTemplateOnly() {
		return nil, nil
	}

	var row data.IndicatorRow
	var ok bool
	if indicators != nil {
		row, ok = indicators.Indicator(def.LibraryName)
	}
	if !ok {
		return nil, fmt.Errorf("%w for %s", ErrMissingIndicatorMetadata, def.LibraryName)
	}

	dakId, err := row.Get(data.ColumnDakId)
	if err != nil {
		return nil, err
	}
	shortName, err := row.Get(data.ColumnShortName)
	if err != nil {
		return nil, err
	}
	description, err := row.Get(data.ColumnIndicatorDefinition)
	if err != nil {
		return nil, err
	}

	decision, ok := b.resolver()(def)
	if !ok {
		b.Log.Warn().Str("library", def.LibraryName).
			Msg("Could not determine scoring for measure. Skip generating it.")
		return nil, nil
	}

	name := strings.ReplaceAll(dakId, ".", "")
	title := dakId + " " + shortName

	var builder strings.Builder
	if err := measureTemplate.Execute(&builder, measureHeader{
		Name:        name,
		InstanceOf:  decision.InstanceOf,
		Title:       title,
		Description: description,
		DakName:     dakName(def.LibraryName),
		Date:        b.now().UTC().Format(time.DateOnly),
	}); err != nil {
		return nil, err
	}
	if err := scoringTemplate.Execute(&builder, measureScoring{
		Code:  decision.Code,
		Title: decision.Title,
	}); err != nil {
		return nil, err
	}

	if def.HasGroup() {
		if err := writeGroup(&builder, def, row, dakId); err != nil {
			return nil, err
		}
	}

	return &Artifact{Name: name, Text: stripBlankLines(builder.String())}, nil
}

func (b *MeasureBuilder) resolver() scoring.Resolver {
	if b.Resolve == nil {
		return scoring.Resolve
	}
	return b.Resolve
}

func (b *MeasureBuilder) now() time.Time {
	if b.Now == nil {
		return time.Now()
	}
	return b.Now()
}

// writeGroup writes the population group in the order initial population,
// measure population, measure observation, denominator, numerator followed by
// the stratifiers.
func writeGroup(builder *strings.Builder, def *cql.Definition, row data.IndicatorRow, dakId string) error {
	builder.WriteString(groupStart)

	if def.HasInitialPopulation {
		if err := initialPopulationTemplate.Execute(builder, population{DakId: dakId}); err != nil {
			return err
		}
	}
	if def.HasMeasurePopulation {
		if err := measurePopulationTemplate.Execute(builder, population{DakId: dakId}); err != nil {
			return err
		}
	}
	if def.HasMeasureObservation {
		if err := measureObservationTemplate.Execute(builder, population{DakId: dakId}); err != nil {
			return err
		}
	}
	if def.HasDenominator {
		description, err := row.Get(data.ColumnDenominatorDefinition)
		if err != nil {
			return err
		}
		if err := denominatorTemplate.Execute(builder, population{DakId: dakId, Description: description}); err != nil {
			return err
		}
	}
	if def.HasNumerator {
		description, err := row.Get(data.ColumnNumeratorDefinition)
		if err != nil {
			return err
		}
		if err := numeratorTemplate.Execute(builder, population{DakId: dakId, Description: description}); err != nil {
			return err
		}
	}

	for i, code := range stratifierCodes(def.Stratifiers) {
		if err := stratifierTemplate.Execute(builder, stratifier{
			DakId:      dakId,
			Code:       code,
			Expression: def.Stratifiers[i],
		}); err != nil {
			return err
		}
	}
	return nil
}
