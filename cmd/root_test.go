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
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const indicatorCql = `/*
 * Library: HIV.IND.12 Logic
 */
library HIVIND12Logic

// Indicator Definition
// Percentage of people living with HIV with suppressed viral load

define "Initial Population":
  true

define "Denominator":
  true

define "Numerator":
  true

define "Age Stratifier":
  'adult'
`

const indicatorYaml = `- DAK ID: HIV.IND.12
  Short name: Viral load suppression
  Indicator definition: Percentage of people living with HIV
  Denominator definition: Number of people living with HIV
  Numerator definition: Number of people with suppressed viral load
`

// execute runs the root command with args after resetting all flags to their
// defaults. Returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	for _, c := range []*cobra.Command{rootCmd, generateCmd, uploadLibraryCmd} {
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
	}

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestRootCmd_UnknownLogFormat(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "in", "HIVIND12Logic.cql"), indicatorCql)

	_, _, err := execute(t, "generate", "--no-progress", "--log-format", "xml",
		"--output", filepath.Join(dir, "out"), filepath.Join(dir, "in"))

	assert.ErrorContains(t, err, `unknown log format "xml"`)
}

func TestRootCmd_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "in", "HIVIND12Logic.cql"), indicatorCql)
	writeFile(t, filepath.Join(dir, "indicators.yaml"), indicatorYaml)
	writeFile(t, filepath.Join(dir, "cqlfsh.yaml"), "metadata: "+filepath.Join(dir, "indicators.yaml")+
		"\noutput: "+filepath.Join(dir, "from-config")+"\nlogFormat: json\n")

	t.Run("values from file", func(t *testing.T) {
		_, stderr, err := execute(t, "generate", "--no-progress", "--config", filepath.Join(dir, "cqlfsh.yaml"),
			filepath.Join(dir, "in"))

		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "from-config", "HIVIND12.fsh"))
		assert.NotContains(t, stderr, `"level":"error"`)
	})

	t.Run("flags win over file", func(t *testing.T) {
		_, _, err := execute(t, "generate", "--no-progress", "--config", filepath.Join(dir, "cqlfsh.yaml"),
			"--output", filepath.Join(dir, "from-flag"), filepath.Join(dir, "in"))

		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "from-flag", "HIVIND12.fsh"))
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := execute(t, "generate", "--no-progress", "--config", filepath.Join(dir, "missing.yaml"),
			filepath.Join(dir, "in"))

		assert.ErrorContains(t, err, "read config file")
	})
}
