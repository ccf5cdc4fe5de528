// Copyright 2025 Poiesic Systems
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

package openai

import (
	"strings"
	"unicode"
)

// cleanResponse turns a model reply into parseable JSON. It strips markdown
// code fences, drops trailing commas and restores the opening quote of keys
// written as `key":`.
func cleanResponse(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	return repairJSON(s)
}

// repairJSON fixes the structural mistakes small models make most often.
// String contents are copied untouched.
func repairJSON(s string) string {
	in := []rune(s)
	out := make([]rune, 0, len(in)+8)
	inString := false

	for i := 0; i < len(in); i++ {
		ch := in[i]

		if inString {
			out = append(out, ch)
			switch ch {
			case '\\':
				if i+1 < len(in) {
					i++
					out = append(out, in[i])
				}
			case '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
			out = append(out, ch)
		case ',':
			// Drop a comma that only precedes a closing bracket.
			j := skipSpace(in, i+1)
			if j < len(in) && (in[j] == '}' || in[j] == ']') {
				continue
			}
			out = append(out, ch)
			out, i = quoteKey(in, out, j, i)
		case '{':
			out = append(out, ch)
			out, i = quoteKey(in, out, skipSpace(in, i+1), i)
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}

// quoteKey checks for an unquoted key starting at j, such as `type":`.
// When one is found it is written to out with its opening quote and the
// returned index points at the key's closing quote minus one. Otherwise out
// and i are returned unchanged.
func quoteKey(in, out []rune, j, i int) ([]rune, int) {
	if j >= len(in) || !isLetter(in[j]) {
		return out, i
	}
	end := j
	for end < len(in) && (isLetter(in[end]) || in[end] == '_') {
		end++
	}
	if end+1 >= len(in) || in[end] != '"' || in[end+1] != ':' {
		return out, i
	}
	out = append(out, in[i+1:j]...)
	out = append(out, '"')
	out = append(out, in[j:end]...)
	out = append(out, '"')
	return out, end
}

func skipSpace(in []rune, i int) int {
	for i < len(in) && unicode.IsSpace(in[i]) {
		i++
	}
	return i
}
