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

	"github.com/stretchr/testify/assert"
)

func TestStratifierCode(t *testing.T) {
	tests := []struct {
		title string
		code  string
	}{
		{"Age And Sex Stratifier", "AAS"},
		{"Region Stratifier", "R"},
		{"key population   stratifier", "KP"},
		{"Stratifier", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.code, StratifierCode(tt.title))
		})
	}
}

func TestStratifierCodes(t *testing.T) {
	t.Run("distinct", func(t *testing.T) {
		assert.Equal(t, []string{"AAS", "R"}, stratifierCodes([]string{"Age And Sex Stratifier", "Region Stratifier"}))
	})

	t.Run("collisions get a numeric suffix", func(t *testing.T) {
		codes := stratifierCodes([]string{
			"Age And Sex Stratifier",
			"Area And Setting Stratifier",
			"Region Stratifier",
			"Age Almost Same Stratifier",
		})
		assert.Equal(t, []string{"AAS", "AAS2", "R", "AAS3"}, codes)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, stratifierCodes(nil))
	})
}
