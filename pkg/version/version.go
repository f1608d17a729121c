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
Package version resolves a catalog entry into a launch-ready description.

Resolving fetches the per-version document and filters its library list
through the platform rules, preserving document order. Order matters: the
classpath is built from this list and some libraries shadow classes of
libraries loaded after them.
*/
package version

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"rinici.de/ametrine/pkg/getter"
	"rinici.de/ametrine/pkg/manifest"
	"rinici.de/ametrine/pkg/platform"
)

// Info is a fully resolved, platform-filtered version description.
type Info struct {
	ID            string
	Type          string
	MainClass     string
	AssetsID      string
	AssetIndexURL string
	ClientJarURL  string
	JavaMajor     int

	// Libraries holds slash-separated relative artifact paths in document
	// order, already filtered for the platform.
	Libraries []string
}

// UnknownVersionError reports a version id absent from the catalog.
type UnknownVersionError struct {
	ID string
}

func (e *UnknownVersionError) Error() string {
	return fmt.Sprintf("version %q not found in catalog", e.ID)
}

// MalformedVersionError reports a version document missing a field launch is
// impossible without.
type MalformedVersionError struct {
	ID    string
	Field string
}

func (e *MalformedVersionError) Error() string {
	return fmt.Sprintf("version document for %q has no %s", e.ID, e.Field)
}

// document mirrors the upstream version descriptor, limited to the fields
// the launcher consumes.
type document struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	MainClass  string `json:"mainClass"`
	Assets     string `json:"assets"`
	AssetIndex struct {
		URL string `json:"url"`
	} `json:"assetIndex"`
	Downloads struct {
		Client struct {
			URL string `json:"url"`
		} `json:"client"`
	} `json:"downloads"`
	JavaVersion struct {
		MajorVersion int `json:"majorVersion"`
	} `json:"javaVersion"`
	Libraries []libraryEntry `json:"libraries"`
}

type libraryEntry struct {
	Downloads struct {
		Artifact struct {
			Path string `json:"path"`
		} `json:"artifact"`
	} `json:"downloads"`
	Rules []Rule `json:"rules"`
}

// Resolver turns catalog entries into Info values.
type Resolver struct {
	Getter   getter.Getter
	Platform platform.Descriptor
}

// Resolve looks id up in the catalog, fetches its descriptor and filters the
// library list for the resolver's platform.
//
// Optional fields absent from the document resolve to zero values; id,
// mainClass and the client jar URL are required and their absence is a
// *MalformedVersionError.
func (r *Resolver) Resolve(ctx context.Context, m *manifest.Manifest, id string) (*Info, error) {
	url, ok := m.VersionURLs[id]
	if !ok {
		return nil, &UnknownVersionError{ID: id}
	}

	body, err := r.Getter.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(body.Bytes(), &doc); err != nil {
		return nil, &getter.FetchError{URL: url, Err: errors.Wrapf(err, "parsing version document for %q", id)}
	}

	switch {
	case doc.ID == "":
		return nil, &MalformedVersionError{ID: id, Field: "id"}
	case doc.MainClass == "":
		return nil, &MalformedVersionError{ID: id, Field: "mainClass"}
	case doc.Downloads.Client.URL == "":
		return nil, &MalformedVersionError{ID: id, Field: "client download URL"}
	}

	info := &Info{
		ID:            doc.ID,
		Type:          doc.Type,
		MainClass:     doc.MainClass,
		AssetsID:      doc.Assets,
		AssetIndexURL: doc.AssetIndex.URL,
		ClientJarURL:  doc.Downloads.Client.URL,
		JavaMajor:     doc.JavaVersion.MajorVersion,
	}

	for _, lib := range doc.Libraries {
		if !Included(lib.Rules, r.Platform) {
			continue
		}
		// Entries carrying only native classifiers have no artifact path;
		// they contribute nothing to the classpath.
		if lib.Downloads.Artifact.Path == "" {
			continue
		}
		info.Libraries = append(info.Libraries, lib.Downloads.Artifact.Path)
	}

	return info, nil
}
