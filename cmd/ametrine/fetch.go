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

	"github.com/spf13/cobra"
)

const fetchDesc = `
This command downloads everything a version needs without starting the game.
Files already present locally are left untouched, so a fetch of an installed
version is a no-op apart from rewriting the asset index.
`

func newFetchCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch [VERSION]",
		Short: "download a version without starting it",
		Long:  fetchDesc,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) > 0 {
				id = args[0]
			}
			_, err := resolveAndDownload(cmd.Context(), out, id)
			return err
		},
	}
	return cmd
}
