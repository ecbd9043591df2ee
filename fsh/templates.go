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
	"strings"
	"text/template"
)

// The templates below are consumed by SUSHI and the IG publisher. Their text
// has to stay as is. Values are inserted literally, so template syntax inside
// descriptions coming from the spreadsheet is never evaluated.

type libraryHeader struct {
	Name        string
	Title       string
	Description string
	DakName     string
}

var libraryTemplate = template.Must(template.New("library").Parse(`
Instance: {{.Name}}
InstanceOf: Library
Title: "{{.Title}} Logic"
Description: "{{.Description}}"
Usage: #definition
* meta.profile[+] = "http://hl7.org/fhir/uv/crmi/StructureDefinition/crmi-shareablelibrary"
* meta.profile[+] = "http://hl7.org/fhir/uv/crmi/StructureDefinition/crmi-publishablelibrary"
* meta.profile[+] = "http://hl7.org/fhir/uv/cql/StructureDefinition/cql-library"
* meta.profile[+] = "http://hl7.org/fhir/uv/cql/StructureDefinition/cql-module"
* url = "http://smart.who.int/{{.DakName}}/Library/{{.Name}}"
* extension[+]
  * url = "http://hl7.org/fhir/StructureDefinition/cqf-knowledgeCapability"
  * valueCode = #computable
* name = "{{.Name}}"
* status = #draft
* experimental = true
* publisher = "World Health Organization (WHO)"
* type = $library-type#logic-library
* content.id = "ig-loader-{{.Name}}.cql"
`))

type measureHeader struct {
	Name        string
	InstanceOf  string
	Title       string
	Description string
	DakName     string
	Date        string
}

var measureTemplate = template.Must(template.New("measure").Parse(`
Instance: {{.Name}}
InstanceOf: {{.InstanceOf}}
Title: "{{.Title}}"
* meta.profile[+] = "http://hl7.org/fhir/uv/crmi/StructureDefinition/crmi-shareablemeasure"
* meta.profile[+] = "http://hl7.org/fhir/uv/crmi/StructureDefinition/crmi-publishablemeasure"
* extension[http://hl7.org/fhir/us/cqfmeasures/StructureDefinition/cqfm-populationBasis].valueCode = #boolean
* description = "{{.Description}}"
* url = "http://smart.who.int/{{.DakName}}/Measure/{{.Name}}"
* status = #draft
* experimental = true
* date = "{{.Date}}"
* name = "{{.Name}}"
* title = "{{.Title}}"
* publisher = "World Health Organization (WHO)"
* library = "http://smart.who.int/{{.DakName}}/Library/{{.Name}}Logic"
`))

type measureScoring struct {
	Code  string
	Title string
}

var scoringTemplate = template.Must(template.New("scoring").Parse(`
* scoring = $measure-scoring#{{.Code}} "{{.Title}}"
`))

const groupStart = "\n* group[+]\n"

// population is the data of all population templates. Description is only
// used by the denominator and numerator.
type population struct {
	DakId       string
	Description string
}

var initialPopulationTemplate = template.Must(template.New("initialPopulation").Parse(`
  * population[initialPopulation]
    * id = "{{.DakId}}.IP"
    * description = "Initial Population"
    * code = $measure-population#initial-population "Initial Population"
    * criteria.language = #text/cql-identifier
    * criteria.expression = "Initial Population"
`))

var measurePopulationTemplate = template.Must(template.New("measurePopulation").Parse(`
  * population[measurePopulation]
    * extension[http://hl7.org/fhir/us/cqfmeasures/StructureDefinition/cqfm-populationBasis].valueCode = #boolean
    * id = "{{.DakId}}.MP"
    * description = "Measure Population"
    * code = $measure-population#measure-population "Measure Population"
    * criteria.language = #text/cql-identifier
    * criteria.expression = "Measure Population"
`))

var measureObservationTemplate = template.Must(template.New("measureObservation").Parse(`
  * population[measureObservation]
    * extension[http://hl7.org/fhir/us/cqfmeasures/StructureDefinition/cqfm-criteriaReference].valueString = "measure-population"
    * extension[http://hl7.org/fhir/us/cqfmeasures/StructureDefinition/cqfm-aggregateMethod].valueCode = #count
    * id = "{{.DakId}}.MO"
    * description = "Measure Observation"
    * code = $measure-population#measure-observation "Measure Observation"
    * criteria.language = #text/cql-identifier
    * criteria.expression = "Measure Observation"
`))

var denominatorTemplate = template.Must(template.New("denominator").Parse(`
  * population[denominator]
    * id = "{{.DakId}}.DEN"
    * description = "{{.Description}}"
    * code = $measure-population#denominator "Denominator"
    * criteria.language = #text/cql-identifier
    * criteria.expression = "Denominator"
`))

var numeratorTemplate = template.Must(template.New("numerator").Parse(`
  * population[numerator]
    * id = "{{.DakId}}.NUM"
    * description = "{{.Description}}"
    * code = $measure-population#numerator "Numerator"
    * criteria.language = #text/cql-identifier
    * criteria.expression = "Numerator"
`))

type stratifier struct {
	DakId      string
	Code       string
	Expression string
}

var stratifierTemplate = template.Must(template.New("stratifier").Parse(`
  * stratifier[+]
    * id = "{{.DakId}}.S.{{.Code}}"
    * criteria.language = #text/cql-identifier
    * criteria.expression = "{{.Expression}}"
`))

// stripBlankLines removes all lines consisting of whitespace only.
func stripBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
