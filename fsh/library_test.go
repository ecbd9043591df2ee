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
	"testing"

	"github.com/samply/cqlfsh/cql"
	"github.com/samply/cqlfsh/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryName(t *testing.T) {
	assert.Equal(t, "HIVIND12Logic", LibraryName(&cql.Definition{LibraryName: "HIV.IND.12"}))
	assert.Equal(t, "HIVConceptsLogic", LibraryName(&cql.Definition{LibraryName: "HIVConcepts"}))
}

func TestLibraryUrl(t *testing.T) {
	assert.Equal(t, "http://smart.who.int/HIV/Library/HIVIND12Logic", LibraryUrl(&cql.Definition{LibraryName: "HIV.IND.12"}))
}

func TestBuildLibrary(t *testing.T) {
	t.Run("with indicator row", func(t *testing.T) {
		def := &cql.Definition{LibraryName: "HIV.IND.12", IsIndicator: true}
		indicators := data.Indicators{
			"HIV.IND.12": {
				data.ColumnDakId:               "HIV.IND.12",
				data.ColumnIndicatorDefinition: "Percentage of people living with HIV",
			},
		}

		library, err := BuildLibrary(def, indicators)
		require.NoError(t, err)

		assert.Equal(t, "HIVIND12Logic", library.Name)
		assert.Equal(t, `
Instance: HIVIND12Logic
InstanceOf: Library
Title: "HIV.IND.12 Logic"
Description: "Percentage of people living with HIV"
Usage: #definition
* meta.profile[+] = "http://hl7.org/fhir/uv/crmi/StructureDefinition/crmi-shareablelibrary"
* meta.profile[+] = "http://hl7.org/fhir/uv/crmi/StructureDefinition/crmi-publishablelibrary"
* meta.profile[+] = "http://hl7.org/fhir/uv/cql/StructureDefinition/cql-library"
* meta.profile[+] = "http://hl7.org/fhir/uv/cql/StructureDefinition/cql-module"
* url = "http://smart.who.int/HIV/Library/HIVIND12Logic"
* extension[+]
  * url = "http://hl7.org/fhir/StructureDefinition/cqf-knowledgeCapability"
  * valueCode = #computable
* name = "HIVIND12Logic"
* status = #draft
* experimental = true
* publisher = "World Health Organization (WHO)"
* type = $library-type#logic-library
* content.id = "ig-loader-HIVIND12Logic.cql"
`, library.Text)
	})

	t.Run("without indicator row", func(t *testing.T) {
		def := &cql.Definition{LibraryName: "HIVConcepts"}

		library, err := BuildLibrary(def, data.Indicators{})
		require.NoError(t, err)

		assert.Equal(t, "HIVConceptsLogic", library.Name)
		assert.Contains(t, library.Text, "Title: \"HIVConcepts Logic\"\n")
		assert.Contains(t, library.Text, "Description: \"Description not yet available for HIVConceptsLogic.\"\n")
		assert.Contains(t, library.Text, "* url = \"http://smart.who.int/HIVConcepts/Library/HIVConceptsLogic\"\n")
	})

	t.Run("without lookup", func(t *testing.T) {
		library, err := BuildLibrary(&cql.Definition{LibraryName: "Foo"}, nil)
		require.NoError(t, err)

		assert.Contains(t, library.Text, "Description not yet available for FooLogic.")
	})

	t.Run("description is inserted literally", func(t *testing.T) {
		def := &cql.Definition{LibraryName: "HIV.IND.1", IsIndicator: true}
		indicators := data.Indicators{
			"HIV.IND.1": {data.ColumnIndicatorDefinition: "{{.Name}} {description} 100%"},
		}

		library, err := BuildLibrary(def, indicators)
		require.NoError(t, err)

		assert.Contains(t, library.Text, "Description: \"{{.Name}} {description} 100%\"\n")
	})

	t.Run("indicator row without definition", func(t *testing.T) {
		def := &cql.Definition{LibraryName: "HIV.IND.1", IsIndicator: true}
		indicators := data.Indicators{"HIV.IND.1": {data.ColumnDakId: "HIV.IND.1"}}

		_, err := BuildLibrary(def, indicators)
		assert.ErrorIs(t, err, data.ErrMissingField)
	})
}
