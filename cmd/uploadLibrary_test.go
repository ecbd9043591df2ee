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

package cmd

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	fm "github.com/samply/golang-fhir-models/fhir-models/fhir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadLibraryCmd(t *testing.T) {
	dir := t.TempDir()
	cqlFile := filepath.Join(dir, "HIVIND12Logic.cql")
	writeFile(t, cqlFile, indicatorCql)
	writeFile(t, filepath.Join(dir, "indicators.yaml"), indicatorYaml)

	t.Run("posts the library in a transaction", func(t *testing.T) {
		var bundle fm.Bundle
		var authorization string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authorization = r.Header.Get("Authorization")
			body, err := io.ReadAll(r.Body)
			if err == nil {
				err = json.Unmarshal(body, &bundle)
			}
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			w.Header().Set("Content-Type", "application/fhir+json")
			_, _ = w.Write([]byte(`{"resourceType": "Bundle", "type": "transaction-response"}`))
		}))
		defer server.Close()

		stdout, _, err := execute(t, "upload-library", "--server", server.URL, "--token", "secret",
			"--metadata", filepath.Join(dir, "indicators.yaml"), cqlFile)

		require.NoError(t, err)
		assert.Contains(t, stdout, "Uploaded library http://smart.who.int/HIV/Library/HIVIND12Logic")
		assert.Equal(t, "Bearer secret", authorization)

		assert.Equal(t, fm.BundleTypeTransaction, bundle.Type)
		require.Len(t, bundle.Entry, 1)
		require.NotNil(t, bundle.Entry[0].Request)
		assert.Equal(t, "Library", bundle.Entry[0].Request.Url)

		var library fm.Library
		require.NoError(t, json.Unmarshal(bundle.Entry[0].Resource, &library))
		require.NotNil(t, library.Name)
		assert.Equal(t, "HIVIND12Logic", *library.Name)
		require.NotNil(t, library.Description)
		assert.Equal(t, "Percentage of people living with HIV", *library.Description)
		require.Len(t, library.Content, 1)
		require.NotNil(t, library.Content[0].Data)
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte(indicatorCql)), *library.Content[0].Data)
	})

	t.Run("error response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/fhir+json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"resourceType": "OperationOutcome", "issue": [{"severity": "error", "code": "invalid", "diagnostics": "Invalid library."}]}`))
		}))
		defer server.Close()

		_, _, err := execute(t, "upload-library", "--server", server.URL, cqlFile)

		assert.ErrorContains(t, err, "can't create the Library")
		assert.ErrorContains(t, err, "Diagnostics : Invalid library.")
	})

	t.Run("requires server", func(t *testing.T) {
		_, _, err := execute(t, "upload-library", cqlFile)

		assert.ErrorContains(t, err, "--server is required")
	})

	t.Run("invalid server URL", func(t *testing.T) {
		_, _, err := execute(t, "upload-library", "--server", "invalid-url", cqlFile)

		assert.ErrorContains(t, err, "could not parse server's base URL")
	})
}
