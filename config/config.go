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

package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config holds the settings of a cqlfsh run. Values come from an optional
// YAML file and are overridden by command line flags.
type Config struct {
	Metadata  string `yaml:"metadata"`
	Output    string `yaml:"output"`
	LogFormat string `yaml:"logFormat"`
	Force     bool   `yaml:"force"`
	Server    string `yaml:"server"`
}

// Default returns the configuration used without config file.
func Default() Config {
	return Config{
		Output:    ".",
		LogFormat: "text",
	}
}

// LoadFromFile reads a YAML config file. Keys absent from the file keep their
// current value.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// ValidateGenerate checks the settings needed to generate FSH files.
func (c *Config) ValidateGenerate() error {
	if c.Output == "" {
		return fmt.Errorf("--output is required")
	}
	return nil
}

// ValidateLogFormat checks that the log format is text or json.
func (c *Config) ValidateLogFormat() error {
	switch c.LogFormat {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
}

// ValidateUpload checks the settings needed to upload a library.
func (c *Config) ValidateUpload() error {
	if c.Server == "" {
		return fmt.Errorf("--server is required")
	}
	return nil
}
