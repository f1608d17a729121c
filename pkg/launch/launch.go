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

package launch

import (
	"os"
	"os/exec"

	"github.com/pkg/errors"

	"rinici.de/ametrine/pkg/gamepath"
)

// DefaultJavaBin is the runtime binary used when no java path is configured.
const DefaultJavaBin = "/usr/lib/jvm/java-21-openjdk/bin/java"

// Prepare creates the directories the runtime expects before start: the
// instance working directory and the natives extraction scratch dir.
// Creating an already-existing directory is not an error.
func Prepare(versionID string, layout gamepath.Layout) error {
	for _, dir := range []string{layout.GameDir(versionID), layout.NativesDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "unable to create %s", dir)
		}
	}
	return nil
}

// Start spawns the runtime with its standard streams forwarded to ours and
// releases it. The child is fire-and-forget: its exit code and crashes are
// not the launcher's concern.
func Start(javaBin string, args []string) error {
	cmd := exec.Command(javaBin, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "unable to start %s", javaBin)
	}
	return cmd.Process.Release()
}
