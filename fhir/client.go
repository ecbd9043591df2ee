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
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

// A Client is a FHIR client which combines an HTTP client with the base URL of
// a FHIR server.
type Client struct {
	httpClient http.Client
	baseURL    url.URL
	auth       Auth
}

// Auth adds authentication information to requests sent by the Client.
type Auth interface {
	setAuth(req *http.Request)
}

// BasicAuth authenticates with user and password.
type BasicAuth struct {
	User     string
	Password string
}

func (a BasicAuth) setAuth(req *http.Request) {
	req.SetBasicAuth(a.User, a.Password)
}

// TokenAuth authenticates with a bearer token.
type TokenAuth struct {
	Token string
}

func (a TokenAuth) setAuth(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+a.Token)
}

// NewClient creates a new Client with the given base URL and Auth. auth may be
// nil.
func NewClient(fhirServerBaseUrl url.URL, auth Auth) *Client {
	return createClient(fhirServerBaseUrl, auth, &tls.Config{})
}

// NewClientInsecure creates a new Client as NewClient does but disables TLS security checks. I.e. the client will
// accept any connection to a servers without verifying its certificate.
// Use this with great caution as it opens up man-in-the-middle attacks.
func NewClientInsecure(fhirServerBaseUrl url.URL, auth Auth) *Client {
	return createClient(fhirServerBaseUrl, auth, &tls.Config{InsecureSkipVerify: true})
}

// NewClientCa creates a new Client which trusts the certificate authority in
// the PEM file caCertFile in addition to the system pool.
func NewClientCa(fhirServerBaseUrl url.URL, auth Auth, caCertFile string) (*Client, error) {
	caCert, err := os.ReadFile(caCertFile)
	if err != nil {
		return nil, fmt.Errorf("could not read the certificate authority file %s: %w", caCertFile, err)
	}
	pool, err := x509.SystemCertPool()
	if err != nil {
		pool = x509.NewCertPool()
	}
	if !pool.AppendCertsFromPEM(caCert) {
		return nil, fmt.Errorf("no certificates found in %s", caCertFile)
	}
	return createClient(fhirServerBaseUrl, auth, &tls.Config{RootCAs: pool}), nil
}

func createClient(fhirServerBaseUrl url.URL, auth Auth, tlsConfig *tls.Config) *Client {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.TLSClientConfig = tlsConfig

	return &Client{
		httpClient: http.Client{Transport: t},
		baseURL:    fhirServerBaseUrl,
		auth:       auth,
	}
}

const fhirJson = "application/fhir+json"

// NewTransactionRequest creates a new transaction/batch interaction request.
// Uses the base URL from the FHIR client and sets JSON Accept and Content-Type
// headers. Otherwise, it's identical to http.NewRequestWithContext.
func (c *Client) NewTransactionRequest(ctx context.Context, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("error while creating a transaction request: %w", err)
	}
	req.Header.Add("Accept", fhirJson)
	req.Header.Add("Content-Type", fhirJson)
	return req, nil
}

// Do calls Do on the HTTP client of the FHIR client after adding the
// authentication information.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.auth != nil {
		c.auth.setAuth(req)
	}
	return c.httpClient.Do(req)
}

// CloseIdleConnections calls CloseIdleConnections on the HTTP client of the
// FHIR client.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}
