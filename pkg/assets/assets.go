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

// Package assets retrieves the per-version asset index.
package assets

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"rinici.de/ametrine/pkg/getter"
	"rinici.de/ametrine/pkg/version"
)

// Object is one content-addressed asset entry.
type Object struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

// Index is the parsed asset index. It is immutable once fetched. The bytes
// the upstream document arrived as are retained so persistence can write them
// back verbatim rather than re-serialize.
type Index struct {
	Objects map[string]Object

	raw []byte
}

// NewIndex builds an index from already-parsed objects and the document
// bytes they came from, for callers that load a persisted index.
func NewIndex(objects map[string]Object, raw []byte) *Index {
	return &Index{Objects: objects, raw: raw}
}

// Raw returns the asset index document exactly as fetched.
func (i *Index) Raw() []byte {
	return i.raw
}

type document struct {
	Objects map[string]Object `json:"objects"`
}

// Fetcher retrieves asset indexes.
type Fetcher struct {
	Getter getter.Getter
}

// Fetch retrieves the asset index referenced by the resolved version. The
// failure contract matches the manifest fetcher: any transport or parse
// problem is a *getter.FetchError.
func (f *Fetcher) Fetch(ctx context.Context, v *version.Info) (*Index, error) {
	body, err := f.Getter.Get(ctx, v.AssetIndexURL)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(body.Bytes(), &doc); err != nil {
		return nil, &getter.FetchError{
			URL: v.AssetIndexURL,
			Err: errors.Wrapf(err, "parsing asset index for %q", v.ID),
		}
	}

	return &Index{Objects: doc.Objects, raw: body.Bytes()}, nil
}
