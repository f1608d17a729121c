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

// Package launch constructs the runtime invocation for a resolved version
// and spawns it.
package launch

import (
	"os"
	"strings"

	"rinici.de/ametrine/internal/version"
	"rinici.de/ametrine/pkg/gamepath"
	"rinici.de/ametrine/pkg/platform"
	ver "rinici.de/ametrine/pkg/version"
)

// heapDumpFlag works around an Intel driver heuristic that keys performance
// profiles off the executable name.
const heapDumpFlag = "-XX:HeapDumpPath=MojangTricksIntelDriversForPerformance_javaw.exe_minecraft.exe.heapdump"

// Options carries the launch parameters not derived from the version itself.
type Options struct {
	// Username is the offline profile name passed to the game.
	Username string
	// ExtraJVMArgs are user-supplied flags inserted before the classpath.
	ExtraJVMArgs []string
}

// Invocation is a fully built runtime command line.
type Invocation struct {
	Classpath string
	Args      []string
}

// Build is a pure function from a resolved version, layout and platform to
// the runtime invocation. Identical inputs always produce identical output.
//
// The classpath lists every library in resolution order with the client jar
// last; the argument vector orders platform-conditional JVM flags, natives
// properties, launcher brand properties, extra user flags, -cp, the main
// class, then the game arguments. The launched runtime accepts the absence
// of auth-derived arguments as an offline session.
func Build(v *ver.Info, layout gamepath.Layout, p platform.Descriptor, opts Options) Invocation {
	natives := layout.NativesDir()

	elems := make([]string, 0, len(v.Libraries)+1)
	for _, lib := range v.Libraries {
		elems = append(elems, layout.LibraryPath(lib))
	}
	elems = append(elems, layout.ClientJarPath(v.ID))
	classpath := strings.Join(elems, string(os.PathListSeparator))

	var args []string

	// -- JVM args --
	if p.Name == "osx" {
		args = append(args, "-XstartOnFirstThread")
	}
	if p.Name == "windows" {
		args = append(args, heapDumpFlag)
	}
	if p.Arch == "x86" {
		args = append(args, "-Xss1M")
	}
	args = append(args,
		"-Djava.library.path="+natives,
		"-Djna.tmpdir="+natives,
		"-Dorg.lwjgl.system.SharedLibraryExtractPath="+natives,
		"-Dio.netty.native.workdir="+natives,
		"-Dminecraft.launcher.brand="+version.Brand,
		"-Dminecraft.launcher.version="+version.GetVersion(),
	)
	args = append(args, opts.ExtraJVMArgs...)
	args = append(args, "-cp", classpath)
	args = append(args, v.MainClass)

	// -- game args --
	args = append(args,
		"--username", opts.Username,
		"--version", v.ID,
		"--gameDir", layout.GameDir(v.ID),
		"--assetsDir", layout.AssetsRoot(),
		"--assetIndex", v.AssetsID,
		"--accessToken", "",
		"--versionType", v.Type,
	)

	return Invocation{Classpath: classpath, Args: args}
}
