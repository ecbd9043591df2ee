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
	"strconv"
	"strings"
	"unicode/utf8"
)

// StratifierCode abbreviates a stratifier expression name with the upper case
// initials of all words but the last one. "Age And Sex Stratifier" becomes AAS.
func StratifierCode(title string) string {
	words := strings.Fields(title)
	if len(words) == 0 {
		return ""
	}
	var code strings.Builder
	for _, word := range words[:len(words)-1] {
		r, _ := utf8.DecodeRuneInString(word)
		code.WriteRune(r)
	}
	return strings.ToUpper(code.String())
}

// stratifierCodes returns the codes of titles in order. A code already taken
// by an earlier title gets the smallest numeric suffix from 2 on that makes it
// unique, so AAS, AAS2, AAS3.
func stratifierCodes(titles []string) []string {
	codes := make([]string, len(titles))
	used := make(map[string]bool, len(titles))
	for i, title := range titles {
		base := StratifierCode(title)
		code := base
		for n := 2; used[code]; n++ {
			code = base + strconv.Itoa(n)
		}
		used[code] = true
		codes[i] = code
	}
	return codes
}
