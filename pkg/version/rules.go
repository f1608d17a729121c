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

import "rinici.de/ametrine/pkg/platform"

// Rule action values as they appear in version documents.
const (
	ActionAllow    = "allow"
	ActionDisallow = "disallow"
)

// Rule gates inclusion of a library for a platform.
type Rule struct {
	Action string `json:"action"`
	OS     RuleOS `json:"os"`
}

// RuleOS is a rule's platform condition. Either field may be empty, in which
// case it does not participate in matching.
type RuleOS struct {
	Name string `json:"name"`
	Arch string `json:"arch"`
}

// matches reports whether the rule's condition names the given platform. A
// condition naming neither os nor arch matches nothing.
func (r Rule) matches(p platform.Descriptor) bool {
	if r.OS.Name != "" && r.OS.Name == p.Name {
		return true
	}
	if r.OS.Arch != "" && r.OS.Arch == p.Arch {
		return true
	}
	return false
}

// Included decides whether a library gated by rules belongs on the given
// platform. With no rules the library is included. Rules are evaluated in
// order as a conjunction: an allow rule that does not match excludes the
// library immediately, as does a disallow rule that matches. Surviving every
// rule includes.
//
// Note this is deliberately not the last-matching-rule-wins reading some
// launchers use for the same document format.
func Included(rules []Rule, p platform.Descriptor) bool {
	for _, r := range rules {
		if r.Action == ActionAllow && !r.matches(p) {
			return false
		}
		if r.Action == ActionDisallow && r.matches(p) {
			return false
		}
	}
	return true
}
