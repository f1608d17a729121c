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

package gamepath

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayout(t *testing.T) {
	l := Layout{Data: filepath.Join("/", "data"), Cache: filepath.Join("/", "cache")}

	hash := "aaab1f9acbc2eba6e388a1e5ca21ec28fd0f2b52"
	assert.Equal(t, filepath.Join("/data", "libraries"), l.LibrariesRoot())
	assert.Equal(t, filepath.Join("/data", "libraries", "com", "mojang", "one.jar"), l.LibraryPath("com/mojang/one.jar"))
	assert.Equal(t, filepath.Join("/data", "assets"), l.AssetsRoot())
	assert.Equal(t, filepath.Join("/data", "assets", "objects", "aa", hash), l.AssetObjectPath(hash))
	assert.Equal(t, filepath.Join("/data", "assets", "indexes", "17.json"), l.AssetIndexPath("17"))
	assert.Equal(t, filepath.Join("/data", "versions", "1.21", "client.jar"), l.ClientJarPath("1.21"))
	assert.Equal(t, filepath.Join("/data", "instances", "1.21", "minecraft"), l.GameDir("1.21"))
	assert.Equal(t, filepath.Join("/cache", "natives"), l.NativesDir())
}

func TestPathsHonorEnvOverrides(t *testing.T) {
	t.Setenv(DataHomeEnvVar, "/custom/data")
	t.Setenv(CacheHomeEnvVar, "/custom/cache")
	t.Setenv(ConfigHomeEnvVar, "/custom/config")

	assert.Equal(t, filepath.Join("/custom/data", "versions"), DataPath("versions"))
	assert.Equal(t, filepath.Join("/custom/cache", "natives"), CachePath("natives"))
	assert.Equal(t, filepath.Join("/custom/config", "config.yaml"), ConfigFile())
}

func TestPathsFallBackToXDG(t *testing.T) {
	// An empty AMETRINE_DATA_HOME falls through to the XDG variable.
	t.Setenv(DataHomeEnvVar, "")
	t.Setenv("XDG_DATA_HOME", "/xdg/data")

	assert.Equal(t, filepath.Join("/xdg/data", "ametrine", "libraries"), DataPath("libraries"))
}
