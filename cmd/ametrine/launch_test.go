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

package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rinici.de/ametrine/pkg/cli"
	"rinici.de/ametrine/pkg/platform"
	"rinici.de/ametrine/pkg/version"
)

// startFixtureServer serves a complete catalog: manifest, one version
// document with three libraries (one disallowed on the current platform),
// an asset index with two objects, and every artifact body.
func startFixtureServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/manifest.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{
			"latest": {"release": "1.21", "snapshot": "1.21"},
			"versions": [{"id": "1.21", "type": "release", "url": "%s/1.21.json"}]
		}`, srv.URL)
	})
	mux.HandleFunc("/1.21.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{
			"id": "1.21",
			"type": "release",
			"mainClass": "net.minecraft.client.main.Main",
			"assets": "17",
			"assetIndex": {"url": "%s/17.json"},
			"downloads": {"client": {"url": "%s/client.jar"}},
			"libraries": [
				{"downloads": {"artifact": {"path": "com/mojang/one.jar"}}},
				{
					"downloads": {"artifact": {"path": "org/lwjgl/excluded.jar"}},
					"rules": [{"action": "disallow", "os": {"name": "%s"}}]
				},
				{"downloads": {"artifact": {"path": "com/mojang/two.jar"}}}
			]
		}`, srv.URL, srv.URL, platform.Current().Name)
	})
	mux.HandleFunc("/17.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"objects": {
			"pack.mcmeta": {"hash": "bbbf7245de287dbbc40d24b94b5b09a33169a864", "size": 91},
			"minecraft/sounds/random/click.ogg": {"hash": "aaab1f9acbc2eba6e388a1e5ca21ec28fd0f2b52", "size": 3782}
		}}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("artifact " + r.URL.Path))
	})

	return srv
}

func withFixtureSettings(t *testing.T, srv *httptest.Server) {
	t.Helper()
	old := settings
	settings = &cli.EnvSettings{
		DataHome:     t.TempDir(),
		CacheHome:    t.TempDir(),
		ManifestURL:  srv.URL + "/manifest.json",
		LibrariesURL: srv.URL + "/libraries/",
		ResourcesURL: srv.URL + "/resources/",
	}
	t.Cleanup(func() { settings = old })
}

func TestResolveAndDownloadEndToEnd(t *testing.T) {
	srv := startFixtureServer(t)
	withFixtureSettings(t, srv)

	// Empty id launches the latest release.
	var out bytes.Buffer
	v, err := resolveAndDownload(context.Background(), &out, "")
	require.NoError(t, err)

	assert.Equal(t, "1.21", v.ID)
	// The disallowed library is gone, survivors keep document order.
	assert.Equal(t, []string{"com/mojang/one.jar", "com/mojang/two.jar"}, v.Libraries)
	// 2 libraries + 2 assets + client jar.
	assert.Contains(t, out.String(), "5 downloaded, 0 already present, 0 failed")

	layout := settings.Layout()
	for _, path := range []string{
		layout.LibraryPath("com/mojang/one.jar"),
		layout.LibraryPath("com/mojang/two.jar"),
		layout.ClientJarPath("1.21"),
		layout.AssetIndexPath("17"),
	} {
		_, err := os.Stat(path)
		assert.NoError(t, err, path)
	}
	_, err = os.Stat(layout.LibraryPath("org/lwjgl/excluded.jar"))
	assert.True(t, os.IsNotExist(err))

	// A second run finds everything in place and downloads nothing.
	out.Reset()
	_, err = resolveAndDownload(context.Background(), &out, "1.21")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "0 downloaded, 5 already present, 0 failed")
}

func TestResolveAndDownloadUnknownVersion(t *testing.T) {
	srv := startFixtureServer(t)
	withFixtureSettings(t, srv)

	var out bytes.Buffer
	_, err := resolveAndDownload(context.Background(), &out, "9.99")

	var unknown *version.UnknownVersionError
	require.ErrorAs(t, err, &unknown)
}
