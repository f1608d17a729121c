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

import "path/filepath"

// Layout resolves the local storage locations for game content under a data
// root and a cache root:
//
//	<data>/assets/objects/<hash[0:2]>/<hash>
//	<data>/assets/indexes/<assetsId>.json
//	<data>/libraries/<relativePath...>
//	<data>/versions/<versionId>/client.jar
//	<data>/instances/<versionId>/minecraft
//	<cache>/natives
type Layout struct {
	Data  string
	Cache string
}

// DefaultLayout returns the layout rooted at the standard data and cache
// directories.
func DefaultLayout() Layout {
	return Layout{Data: DataPath(), Cache: CachePath()}
}

// LibrariesRoot returns the directory holding all library jars.
func (l Layout) LibrariesRoot() string {
	return filepath.Join(l.Data, "libraries")
}

// LibraryPath returns the local path for a library given its slash-separated
// relative path from a version document.
func (l Layout) LibraryPath(relativePath string) string {
	return filepath.Join(l.LibrariesRoot(), filepath.FromSlash(relativePath))
}

// AssetsRoot returns the directory holding asset objects and indexes.
func (l Layout) AssetsRoot() string {
	return filepath.Join(l.Data, "assets")
}

// AssetObjectPath returns the content-addressed local path for an asset object.
func (l Layout) AssetObjectPath(hash string) string {
	return filepath.Join(l.AssetsRoot(), "objects", hash[:2], hash)
}

// AssetIndexPath returns the local path the asset index document is persisted to.
func (l Layout) AssetIndexPath(assetsID string) string {
	return filepath.Join(l.AssetsRoot(), "indexes", assetsID+".json")
}

// VersionRoot returns the directory holding a version's client binary.
func (l Layout) VersionRoot(versionID string) string {
	return filepath.Join(l.Data, "versions", versionID)
}

// ClientJarPath returns the local path of a version's client binary.
func (l Layout) ClientJarPath(versionID string) string {
	return filepath.Join(l.VersionRoot(versionID), "client.jar")
}

// GameDir returns the working directory for a launched game instance.
func (l Layout) GameDir(versionID string) string {
	return filepath.Join(l.Data, "instances", versionID, "minecraft")
}

// NativesDir returns the scratch directory native libraries are extracted to.
func (l Layout) NativesDir() string {
	return filepath.Join(l.Cache, "natives")
}

// LockPath returns the path of the lock file guarding download orchestration.
func (l Layout) LockPath() string {
	return filepath.Join(l.Data, ".lock")
}
