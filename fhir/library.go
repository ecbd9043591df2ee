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

package fhir

import (
	"encoding/base64"
	"encoding/json"

	"github.com/google/uuid"
	fm "github.com/samply/golang-fhir-models/fhir-models/fhir"
)

// LibraryInfo comprises the metadata of a Library resource.
type LibraryInfo struct {
	Name        string
	Title       string
	Description string
	Url         string
}

// CreateLibraryResource creates a draft logic Library with the CQL source as
// its only content.
func CreateLibraryResource(info LibraryInfo, cql []byte) fm.Library {
	experimental := true
	return fm.Library{
		Url:          &info.Url,
		Name:         &info.Name,
		Title:        &info.Title,
		Description:  &info.Description,
		Status:       fm.PublicationStatusDraft,
		Experimental: &experimental,
		Type: fm.CodeableConcept{
			Coding: []fm.Coding{
				createCoding("http://terminology.hl7.org/CodeSystem/library-type", "logic-library"),
			},
		},
		Content: []fm.Attachment{
			createAttachment("text/cql", base64.StdEncoding.EncodeToString(cql)),
		},
	}
}

func createCoding(system string, code string) fm.Coding {
	return fm.Coding{System: &system, Code: &code}
}

func createAttachment(contentType string, data string) fm.Attachment {
	return fm.Attachment{
		ContentType: &contentType,
		Data:        &data,
	}
}

// CreateLibraryBundle creates a transaction bundle which creates library.
func CreateLibraryBundle(library fm.Library) (fm.Bundle, error) {
	libraryBytes, err := json.Marshal(library)
	if err != nil {
		return fm.Bundle{}, err
	}

	fullUrl := "urn:uuid:" + uuid.NewString()
	return fm.Bundle{
		Type: fm.BundleTypeTransaction,
		Entry: []fm.BundleEntry{
			{
				FullUrl:  &fullUrl,
				Resource: libraryBytes,
				Request: &fm.BundleEntryRequest{
					Method: fm.HTTPVerbPOST,
					Url:    "Library",
				},
			},
		},
	}, nil
}
