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
	"fmt"
	"io"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"rinici.de/ametrine/pkg/manifest"
)

const versionsDesc = `
This command lists the versions the catalog offers, newest first. Releases
are ordered by version number; snapshots and other types keep catalog order.
`

func newVersionsCmd(out io.Writer) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "versions",
		Short: "list the versions the catalog offers",
		Long:  versionsDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := (&manifest.Fetcher{Getter: newGetter(), URL: settings.ManifestURL}).Fetch(cmd.Context())
			if err != nil {
				return err
			}

			entries := m.Entries
			if !all {
				entries = releasesOnly(entries)
			}
			sortReleases(entries)

			table := uitable.New()
			table.AddRow("VERSION", "TYPE", "")
			for _, e := range entries {
				table.AddRow(e.ID, e.Type, latestMark(m, e.ID))
			}
			fmt.Fprintln(out, table)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include snapshots and legacy versions")
	return cmd
}

func releasesOnly(entries []manifest.Entry) []manifest.Entry {
	var out []manifest.Entry
	for _, e := range entries {
		if e.Type == "release" {
			out = append(out, e)
		}
	}
	return out
}

// sortReleases orders semver-parseable release ids descending. Entries that
// do not parse (snapshots like "24w14a", legacy betas) stay in catalog order
// after the parseable ones.
func sortReleases(entries []manifest.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		vi, erri := semver.NewVersion(entries[i].ID)
		vj, errj := semver.NewVersion(entries[j].ID)
		if erri != nil || errj != nil {
			return erri == nil && errj != nil
		}
		return vi.GreaterThan(vj)
	})
}

func latestMark(m *manifest.Manifest, id string) string {
	switch id {
	case m.LatestRelease:
		return "latest release"
	case m.LatestSnapshot:
		return "latest snapshot"
	}
	return ""
}
