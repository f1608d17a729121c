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
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rinici.de/ametrine/pkg/getter"
	"rinici.de/ametrine/pkg/manifest"
	"rinici.de/ametrine/pkg/platform"
)

const versionDoc = `{
	"id": "1.21",
	"type": "release",
	"mainClass": "net.minecraft.client.main.Main",
	"assets": "17",
	"assetIndex": {"url": "https://example.invalid/17.json"},
	"downloads": {"client": {"url": "https://example.invalid/client.jar"}},
	"javaVersion": {"majorVersion": 21},
	"libraries": [
		{"downloads": {"artifact": {"path": "com/mojang/one.jar"}}},
		{
			"downloads": {"artifact": {"path": "org/lwjgl/mac-only.jar"}},
			"rules": [{"action": "allow", "os": {"name": "osx"}}]
		},
		{"downloads": {"artifact": {"path": "com/mojang/two.jar"}}},
		{
			"downloads": {"artifact": {"path": "org/lwjgl/not-linux.jar"}},
			"rules": [{"action": "disallow", "os": {"name": "linux"}}]
		},
		{"downloads": {"artifact": {"path": "com/mojang/three.jar"}}}
	]
}`

func serveVersion(t *testing.T, body string) (*manifest.Manifest, *Resolver) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	m := &manifest.Manifest{VersionURLs: map[string]string{"1.21": srv.URL + "/1.21.json"}}
	r := &Resolver{
		Getter:   getter.NewHTTPGetter(),
		Platform: platform.Descriptor{Name: "linux", Arch: "x86_64"},
	}
	return m, r
}

func TestResolve(t *testing.T) {
	m, r := serveVersion(t, versionDoc)

	v, err := r.Resolve(context.Background(), m, "1.21")
	require.NoError(t, err)

	assert.Equal(t, "1.21", v.ID)
	assert.Equal(t, "release", v.Type)
	assert.Equal(t, "net.minecraft.client.main.Main", v.MainClass)
	assert.Equal(t, "17", v.AssetsID)
	assert.Equal(t, "https://example.invalid/17.json", v.AssetIndexURL)
	assert.Equal(t, "https://example.invalid/client.jar", v.ClientJarURL)
	assert.Equal(t, 21, v.JavaMajor)

	// Platform-excluded entries drop out; survivors keep document order.
	assert.Equal(t, []string{
		"com/mojang/one.jar",
		"com/mojang/two.jar",
		"com/mojang/three.jar",
	}, v.Libraries)
}

func TestResolveUnknownVersion(t *testing.T) {
	m, r := serveVersion(t, versionDoc)

	_, err := r.Resolve(context.Background(), m, "0.0.0")
	var unknown *UnknownVersionError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "0.0.0", unknown.ID)
}

func TestResolveOptionalFieldsDefault(t *testing.T) {
	// No javaVersion, type or assets: tolerated with zero values.
	m, r := serveVersion(t, `{
		"id": "1.21",
		"mainClass": "Main",
		"downloads": {"client": {"url": "https://example.invalid/client.jar"}}
	}`)

	v, err := r.Resolve(context.Background(), m, "1.21")
	require.NoError(t, err)
	assert.Zero(t, v.JavaMajor)
	assert.Empty(t, v.Type)
	assert.Empty(t, v.AssetsID)
	assert.Empty(t, v.Libraries)
}

func TestResolveMissingRequiredFields(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{
			name:  "no mainClass",
			body:  `{"id": "1.21", "downloads": {"client": {"url": "u"}}}`,
			field: "mainClass",
		},
		{
			name:  "no id",
			body:  `{"mainClass": "Main", "downloads": {"client": {"url": "u"}}}`,
			field: "id",
		},
		{
			name:  "no client url",
			body:  `{"id": "1.21", "mainClass": "Main"}`,
			field: "client download URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, r := serveVersion(t, tt.body)
			_, err := r.Resolve(context.Background(), m, "1.21")
			var malformed *MalformedVersionError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, tt.field, malformed.Field)
		})
	}
}

func TestResolveMalformedBody(t *testing.T) {
	m, r := serveVersion(t, "not json")
	_, err := r.Resolve(context.Background(), m, "1.21")
	var fetchErr *getter.FetchError
	require.ErrorAs(t, err, &fetchErr)
}
