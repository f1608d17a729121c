/*
Copyright The Ametrine Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package version

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rinici.de/ametrine/pkg/platform"
)

func TestIncluded(t *testing.T) {
	linux := platform.Descriptor{Name: "linux", Arch: "x86_64"}

	tests := []struct {
		name     string
		rules    []Rule
		expected bool
	}{
		{
			name:     "no rules includes",
			rules:    nil,
			expected: true,
		},
		{
			name:     "allow matching os includes",
			rules:    []Rule{{Action: ActionAllow, OS: RuleOS{Name: "linux"}}},
			expected: true,
		},
		{
			name:     "allow non-matching os excludes",
			rules:    []Rule{{Action: ActionAllow, OS: RuleOS{Name: "osx"}}},
			expected: false,
		},
		{
			name:     "disallow matching os excludes",
			rules:    []Rule{{Action: ActionDisallow, OS: RuleOS{Name: "linux"}}},
			expected: false,
		},
		{
			name:     "disallow non-matching os includes",
			rules:    []Rule{{Action: ActionDisallow, OS: RuleOS{Name: "windows"}}},
			expected: true,
		},
		{
			name:     "allow matching arch includes",
			rules:    []Rule{{Action: ActionAllow, OS: RuleOS{Arch: "x86_64"}}},
			expected: true,
		},
		{
			name:     "disallow matching arch excludes",
			rules:    []Rule{{Action: ActionDisallow, OS: RuleOS{Arch: "x86_64"}}},
			expected: false,
		},
		{
			name:     "allow with empty condition excludes",
			rules:    []Rule{{Action: ActionAllow}},
			expected: false,
		},
		{
			name:     "disallow with empty condition includes",
			rules:    []Rule{{Action: ActionDisallow}},
			expected: true,
		},
		{
			name: "violating clause in first position excludes",
			rules: []Rule{
				{Action: ActionDisallow, OS: RuleOS{Name: "linux"}},
				{Action: ActionAllow, OS: RuleOS{Name: "linux"}},
			},
			expected: false,
		},
		{
			name: "violating clause in last position excludes",
			rules: []Rule{
				{Action: ActionAllow, OS: RuleOS{Name: "linux"}},
				{Action: ActionDisallow, OS: RuleOS{Arch: "x86_64"}},
			},
			expected: false,
		},
		{
			name: "all clauses passing includes",
			rules: []Rule{
				{Action: ActionAllow, OS: RuleOS{Name: "linux"}},
				{Action: ActionDisallow, OS: RuleOS{Name: "osx"}},
				{Action: ActionAllow, OS: RuleOS{Arch: "x86_64"}},
			},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Included(tt.rules, linux))
		})
	}
}
