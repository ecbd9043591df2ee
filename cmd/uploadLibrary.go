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
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"github.com/samply/cqlfsh/cql"
	"github.com/samply/cqlfsh/fhir"
	"github.com/samply/cqlfsh/fsh"
	"github.com/samply/cqlfsh/util"
	"github.com/spf13/cobra"
	"github.com/viant/afs"
)

var disableTlsSecurity bool
var caCert string
var basicAuthUser string
var basicAuthPassword string
var bearerToken string

func createClient() (*fhir.Client, error) {
	fhirServerBaseUrl, err := url.ParseRequestURI(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("could not parse server's base URL: %v", err)
	}

	if disableTlsSecurity {
		return fhir.NewClientInsecure(*fhirServerBaseUrl, clientAuth()), nil
	} else if caCert != "" {
		return fhir.NewClientCa(*fhirServerBaseUrl, clientAuth(), caCert)
	}
	return fhir.NewClient(*fhirServerBaseUrl, clientAuth()), nil
}

func clientAuth() fhir.Auth {
	if basicAuthUser != "" && basicAuthPassword != "" {
		return fhir.BasicAuth{User: basicAuthUser, Password: basicAuthPassword}
	} else if bearerToken != "" {
		return fhir.TokenAuth{Token: bearerToken}
	}
	return nil
}

var uploadLibraryCmd = &cobra.Command{
	Use:   "upload-library [cql-file]",
	Short: "Uploads a CQL file as Library resource",
	Long: `Creates a draft Library resource with the same name, title, URL and
description as the generated FSH Library instance and the CQL source as
content. The Library is posted to the server in a transaction bundle.

Example:

  cqlfsh upload-library --server http://localhost:8080/fhir HIVIND12Logic.cql`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateUpload(); err != nil {
			return err
		}
		ctx := cmd.Context()
		fs := afs.New()

		content, err := fs.DownloadWithURL(ctx, location(args[0]))
		if err != nil {
			return fmt.Errorf("read CQL file: %w", err)
		}
		def, err := cql.NewParser(string(content)).Definition()
		if err != nil {
			return err
		}

		indicators, err := loadIndicators(ctx, fs)
		if err != nil {
			return err
		}
		description, err := fsh.LibraryDescription(def, indicators)
		if err != nil {
			return err
		}

		info := fhir.LibraryInfo{
			Name:        fsh.LibraryName(def),
			Title:       def.LibraryName,
			Description: description,
			Url:         fsh.LibraryUrl(def),
		}
		bundle, err := fhir.CreateLibraryBundle(fhir.CreateLibraryResource(info, content))
		if err != nil {
			return err
		}
		bundleBytes, err := json.Marshal(bundle)
		if err != nil {
			return err
		}

		client, err := createClient()
		if err != nil {
			return err
		}
		defer client.CloseIdleConnections()

		req, err := client.NewTransactionRequest(ctx, bytes.NewReader(bundleBytes))
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("can't create the Library %s: %w", info.Url, util.NewErrorResponse(resp.StatusCode, body))
		}

		logger.Info().Str("library", info.Url).Str("server", cfg.Server).Msg("Uploaded library.")
		fmt.Fprintf(cmd.OutOrStdout(), "Uploaded library %s to %s\n", info.Url, cfg.Server)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uploadLibraryCmd)

	uploadLibraryCmd.Flags().StringVar(&cfg.Server, "server", cfg.Server, "the base URL of the server to use")
	uploadLibraryCmd.Flags().BoolVarP(&disableTlsSecurity, "insecure", "k", false, "allow insecure server connections when using SSL")
	uploadLibraryCmd.Flags().StringVar(&caCert, "certificate-authority", "", "path to a cert file for the certificate authority")
	uploadLibraryCmd.Flags().StringVar(&basicAuthUser, "user", "", "user information for basic authentication")
	uploadLibraryCmd.Flags().StringVar(&basicAuthPassword, "password", "", "password information for basic authentication")
	uploadLibraryCmd.Flags().StringVar(&bearerToken, "token", "", "bearer token for authentication")
}
