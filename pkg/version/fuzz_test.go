// Copyright (c) 2025, Golem Factory GmbH.  All rights reserved.
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

package version

import (
	"testing"
)

// FuzzParseVersion performs fuzz testing on ParseVersion to find edge cases
func FuzzParseVersion(f *testing.F) {
	// Seed corpus with valid and edge case inputs
	f.Add("8.6")
	f.Add("12.4")
	f.Add("550.54.14")
	f.Add("1")
	f.Add("v1.2.3")
	f.Add("0.0")
	f.Add("999.999.999")
	f.Add("")
	f.Add(".")
	f.Add("..")
	f.Add("1.")
	f.Add(".1")
	f.Add("1..2")
	f.Add("v")
	f.Add("-1")
	f.Add("1.-2")
	f.Add("a.b.c")
	f.Add("1.2.3.4")
	f.Add("   1.2.3")

	f.Fuzz(func(t *testing.T, input string) {
		// ParseVersion should never panic
		v, err := ParseVersion(input)

		// If parsing succeeded, verify the version is valid and
		// round-trips through String for canonical inputs
		if err == nil {
			if !v.IsValid() {
				t.Errorf("ParseVersion(%q) returned invalid version: %+v", input, v)
			}
			if _, err := ParseVersion(v.String()); err != nil {
				t.Errorf("ParseVersion(%q).String() = %q does not re-parse: %v", input, v.String(), err)
			}
		}
	})
}
