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

/*
Package platform describes the host the launcher runs on.

Version documents gate libraries on Mojang's platform vocabulary, which
differs from Go's: macOS is "osx", amd64 is "x86_64". A Descriptor is
computed once at startup and threaded explicitly into rule evaluation and
argument construction rather than read as ambient state.
*/
package platform

import "runtime"

// Descriptor identifies an operating system and processor architecture in
// the vocabulary used by version documents.
type Descriptor struct {
	Name string
	Arch string
}

// Current returns the descriptor for the host platform.
func Current() Descriptor {
	return Descriptor{
		Name: osName(runtime.GOOS),
		Arch: archName(runtime.GOARCH),
	}
}

func osName(goos string) string {
	switch goos {
	case "darwin":
		return "osx"
	case "linux", "windows":
		return goos
	}
	return "unknown"
}

func archName(goarch string) string {
	switch goarch {
	case "amd64":
		return "x86_64"
	case "386":
		return "x86"
	case "arm64":
		return "arm64"
	case "arm":
		return "arm32"
	}
	return goarch
}
