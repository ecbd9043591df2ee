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

package cql

import (
	"errors"
	"regexp"
	"strings"
)

// ErrMissingLibraryName is returned if neither a DAK indicator ID nor a
// library declaration can be found.
var ErrMissingLibraryName = errors.New("could not find library name in CQL")

const logicSuffix = "Logic"

var (
	indicatorHeaderPattern = regexp.MustCompile(`(?is)// Indicator Definition(.*)`)

	// DAK indicator IDs look like HIV.IND.12. The domain prefix is upper case
	// and may follow any character that can't be part of it.
	indicatorIdPattern = regexp.MustCompile(`(?:^|[^A-Z0-9])([A-Z][A-Z0-9]*\.IND\.\d+)`)

	libraryDeclarationPattern = regexp.MustCompile(`(?im)^library[ \t]+(\w+)(?:\s|$)`)

	denominatorPattern        = definePattern("denominator")
	numeratorPattern          = definePattern("numerator")
	initialPopulationPattern  = definePattern("Initial Population")
	measurePopulationPattern  = definePattern("Measure Population")
	measureObservationPattern = regexp.MustCompile(`(?i)define\s+function\s+"Measure Observation"`)

	stratifierPattern          = regexp.MustCompile(`(?i)define\s+"([^"\n]+\sStratifier)"\s*:`)
	populationExclusionPattern = regexp.MustCompile(`(?i)define\s+"([^"\n]+\sPopulation\s+Exclusion)"\s*:`)
)

func definePattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)define\s+"` + regexp.QuoteMeta(name) + `"\s*:`)
}

// A Parser extracts a Definition from CQL text. The Definition is computed on
// first access and cached for the lifetime of the Parser.
type Parser struct {
	content string
	parsed  *Definition
}

// NewParser creates a Parser over the given CQL text.
func NewParser(content string) *Parser {
	return &Parser{content: content}
}

// Definition returns the parsed definition, parsing the content on first call.
// Subsequent calls return the same *Definition.
func (p *Parser) Definition() (*Definition, error) {
	if p.parsed != nil {
		return p.parsed, nil
	}
	def, err := Parse(p.content)
	if err != nil {
		return nil, err
	}
	p.parsed = def
	return def, nil
}

// Parse extracts a Definition from CQL text. Returns ErrMissingLibraryName if
// no library name can be determined.
func Parse(content string) (*Definition, error) {
	name, isIndicator, ok := libraryName(content)
	if !ok {
		return nil, ErrMissingLibraryName
	}

	return &Definition{
		LibraryName:           name,
		IsIndicator:           isIndicator,
		TemplateOnly:          templateOnly(content),
		HasDenominator:        denominatorPattern.MatchString(content),
		HasNumerator:          numeratorPattern.MatchString(content),
		HasInitialPopulation:  initialPopulationPattern.MatchString(content),
		HasMeasurePopulation:  measurePopulationPattern.MatchString(content),
		HasMeasureObservation: measureObservationPattern.MatchString(content),
		Stratifiers:           distinctTitles(stratifierPattern, content),
		PopulationExclusions:  distinctTitles(populationExclusionPattern, content),
	}, nil
}

// templateOnly reports whether the indicator definition header is followed by
// whitespace only. Returns nil if there is no such header.
func templateOnly(content string) *bool {
	match := indicatorHeaderPattern.FindStringSubmatch(content)
	if match == nil {
		return nil
	}
	empty := strings.TrimSpace(match[1]) == ""
	return &empty
}

// libraryName prefers the first DAK indicator ID found anywhere in content and
// falls back to the name of the library declaration.
func libraryName(content string) (name string, isIndicator bool, ok bool) {
	if match := indicatorIdPattern.FindStringSubmatch(content); match != nil {
		return trimLogicSuffix(match[1]), true, true
	}
	if match := libraryDeclarationPattern.FindStringSubmatch(content); match != nil {
		name = trimLogicSuffix(match[1])
		return name, false, name != ""
	}
	return "", false, false
}

func trimLogicSuffix(name string) string {
	return strings.TrimSuffix(name, logicSuffix)
}

// distinctTitles returns the first capture group of all matches of pattern
// without duplicates, in the order of first appearance.
func distinctTitles(pattern *regexp.Regexp, content string) []string {
	var titles []string
	seen := make(map[string]bool)
	for _, match := range pattern.FindAllStringSubmatch(content, -1) {
		title := match[1]
		if seen[title] {
			continue
		}
		seen[title] = true
		titles = append(titles, title)
	}
	return titles
}
