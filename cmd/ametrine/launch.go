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
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"rinici.de/ametrine/pkg/assets"
	"rinici.de/ametrine/pkg/downloader"
	"rinici.de/ametrine/pkg/launch"
	"rinici.de/ametrine/pkg/manifest"
	"rinici.de/ametrine/pkg/platform"
	"rinici.de/ametrine/pkg/version"
)

const launchDesc = `
This command resolves a version from the catalog, downloads every library,
asset and the client binary it requires, and starts the game.

With no argument the latest release is launched. The game runs as an offline
session under the configured username; the launcher does not wait for it.
`

func newLaunchCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "launch [VERSION]",
		Short: "download a version and start the game",
		Long:  launchDesc,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) > 0 {
				id = args[0]
			}

			v, err := resolveAndDownload(cmd.Context(), out, id)
			if err != nil {
				return err
			}

			if err := launch.Prepare(v.ID, settings.Layout()); err != nil {
				return err
			}

			extra, err := settings.ExtraJavaArgs()
			if err != nil {
				return err
			}

			inv := launch.Build(v, settings.Layout(), platform.Current(), launch.Options{
				Username:     settings.Username,
				ExtraJVMArgs: extra,
			})

			logger.Debugf("starting %s %s", settings.JavaBin, v.MainClass)
			return launch.Start(settings.JavaBin, inv.Args)
		},
	}
	return cmd
}

// resolveAndDownload runs the acquisition pipeline for id, or for the latest
// release when id is empty, and reports the download outcome on out.
func resolveAndDownload(ctx context.Context, out io.Writer, id string) (*version.Info, error) {
	g := newGetter()

	m, err := (&manifest.Fetcher{Getter: g, URL: settings.ManifestURL}).Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if id == "" {
		id = m.LatestRelease
	}

	resolver := &version.Resolver{Getter: g, Platform: platform.Current()}
	v, err := resolver.Resolve(ctx, m, id)
	if err != nil {
		return nil, err
	}

	idx, err := (&assets.Fetcher{Getter: g}).Fetch(ctx, v)
	if err != nil {
		return nil, err
	}

	d := &downloader.Downloader{
		Getter:       g,
		LibrariesURL: settings.LibrariesURL,
		ResourcesURL: settings.ResourcesURL,
		Concurrency:  settings.Concurrency,
		Log:          logger,
	}
	report, err := d.Run(ctx, v, idx, settings.Layout())
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(out, "%s: %d downloaded, %d already present, %d failed\n",
		v.ID, report.Succeeded, report.Skipped, len(report.Failures))
	if rerr := report.Err(); rerr != nil {
		// Failed artifacts are reported but do not stop the pipeline; the
		// runtime surfaces whatever is missing on its own.
		fmt.Fprintf(out, "WARNING: some artifacts could not be downloaded:\n%v\n", rerr)
	}
	return v, nil
}
