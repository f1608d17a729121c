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

// Package manifest retrieves and parses the top-level version catalog.
package manifest

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"

	"rinici.de/ametrine/pkg/getter"
)

// DefaultURL is the catalog endpoint published by Mojang.
const DefaultURL = "https://piston-meta.mojang.com/mc/game/version_manifest_v2.json"

// Entry is one version as listed in the catalog.
type Entry struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Manifest is the parsed version catalog. It is immutable once fetched.
type Manifest struct {
	LatestRelease  string
	LatestSnapshot string

	// Entries preserves catalog order, newest first.
	Entries []Entry

	// VersionURLs maps a version id to its descriptor URL.
	VersionURLs map[string]string
}

// document mirrors the upstream catalog shape field by field.
type document struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []Entry `json:"versions"`
}

// schema is the minimal shape the fetcher insists on before parsing. The
// upstream document carries more fields (times, sha1, compliance level); those
// stay unconstrained so catalog additions do not break the launcher.
const schema = `{
	"type": "object",
	"required": ["latest", "versions"],
	"properties": {
		"latest": {
			"type": "object",
			"required": ["release", "snapshot"],
			"properties": {
				"release": {"type": "string"},
				"snapshot": {"type": "string"}
			}
		},
		"versions": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "url"],
				"properties": {
					"id": {"type": "string"},
					"url": {"type": "string"}
				}
			}
		}
	}
}`

// Fetcher retrieves the version catalog.
type Fetcher struct {
	Getter getter.Getter
	// URL overrides the catalog endpoint. Empty means DefaultURL.
	URL string
}

// Fetch retrieves and parses the catalog. Transport failures, non-2xx
// responses and malformed bodies all surface as *getter.FetchError; there is
// no retry and the caller sees the raw failure.
func (f *Fetcher) Fetch(ctx context.Context) (*Manifest, error) {
	url := f.URL
	if url == "" {
		url = DefaultURL
	}

	body, err := f.Getter.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	if err := validate(body.Bytes()); err != nil {
		return nil, &getter.FetchError{URL: url, Err: err}
	}

	var doc document
	if err := json.Unmarshal(body.Bytes(), &doc); err != nil {
		return nil, &getter.FetchError{URL: url, Err: errors.Wrap(err, "parsing version catalog")}
	}

	m := &Manifest{
		LatestRelease:  doc.Latest.Release,
		LatestSnapshot: doc.Latest.Snapshot,
		Entries:        doc.Versions,
		VersionURLs:    make(map[string]string, len(doc.Versions)),
	}
	for _, v := range doc.Versions {
		m.VersionURLs[v.ID] = v.URL
	}
	return m, nil
}

func validate(body []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(body),
	)
	if err != nil {
		return errors.Wrap(err, "parsing version catalog")
	}
	if !result.Valid() {
		var msgs []string
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return errors.Errorf("version catalog does not match expected shape: %s", strings.Join(msgs, "; "))
	}
	return nil
}
