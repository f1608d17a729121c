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
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"rinici.de/ametrine/pkg/cli"
	"rinici.de/ametrine/pkg/getter"
)

var globalUsage = `The Minecraft launcher.

Common actions for Ametrine:

- ametrine launch:    download a version and start the game
- ametrine fetch:     download a version without starting it
- ametrine versions:  list the versions the catalog offers

Environment variables:

| Name                  | Description                                            |
|-----------------------|--------------------------------------------------------|
| $AMETRINE_CACHE_HOME  | set an alternative location for scratch files.         |
| $AMETRINE_CONFIG_HOME | set an alternative location for configuration.         |
| $AMETRINE_DATA_HOME   | set an alternative location for game content.          |
| $AMETRINE_DEBUG       | indicate whether or not Ametrine runs in debug mode.   |
| $AMETRINE_JAVA_BIN    | set the java runtime binary to launch.                 |
| $AMETRINE_JAVA_ARGS   | set extra JVM flags, shell quoted.                     |
| $AMETRINE_USERNAME    | set the offline profile name passed to the game.       |
| $AMETRINE_MANIFEST_URL| set an alternative version catalog endpoint.           |
| $AMETRINE_CONCURRENCY | bound the number of parallel downloads.                |

Ametrine stores cache, configuration, and data in the XDG base directories,
overridable through the AMETRINE_*_HOME variables above.
`

var settings = cli.New()
var logger = logrus.New()

func newRootCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "ametrine",
		Short:        "The Minecraft launcher.",
		Long:         globalUsage,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger.SetLevel(logrus.InfoLevel)
			if settings.Debug {
				logger.SetLevel(logrus.DebugLevel)
			}
		},
	}

	flags := cmd.PersistentFlags()
	settings.AddFlags(flags)

	cmd.AddCommand(
		newLaunchCmd(out),
		newFetchCmd(out),
		newVersionsCmd(out),
		newVersionCmd(out),
		newEnvCmd(out),
	)

	return cmd
}

func newGetter() getter.Getter {
	return getter.NewHTTPGetter()
}
