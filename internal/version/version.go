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

package version // import "rinici.de/ametrine/internal/version"

import (
	"runtime"
)

var (
	// version is the current version of the launcher.
	// Update this whenever making a new release.
	version = "0.1.0"

	// gitCommit is the git sha1, set at build time.
	gitCommit = ""
)

// Brand is the launcher brand reported to the game runtime.
const Brand = "Ametrine"

// BuildInfo describes the compile time information.
type BuildInfo struct {
	Version   string `json:"version,omitempty"`
	GitCommit string `json:"git_commit,omitempty"`
	GoVersion string `json:"go_version,omitempty"`
}

// GetVersion returns the version string of the launcher.
func GetVersion() string {
	return version
}

// GetUserAgent returns a user agent for HTTP requests made by the launcher.
func GetUserAgent() string {
	return "Ametrine/" + version
}

// Get returns build info.
func Get() BuildInfo {
	return BuildInfo{
		Version:   GetVersion(),
		GitCommit: gitCommit,
		GoVersion: runtime.Version(),
	}
}
