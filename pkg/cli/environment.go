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
Package cli describes the operating environment for the Ametrine CLI.

Settings resolve in precedence order: command line flag, AMETRINE_*
environment variable, config file entry, built-in default.
*/
package cli

import (
	"os"
	"strconv"

	shellwords "github.com/mattn/go-shellwords"
	"github.com/spf13/pflag"
	"sigs.k8s.io/yaml"

	"rinici.de/ametrine/pkg/downloader"
	"rinici.de/ametrine/pkg/gamepath"
	"rinici.de/ametrine/pkg/launch"
	"rinici.de/ametrine/pkg/manifest"
)

// DefaultUsername is the offline profile name used when none is configured.
const DefaultUsername = "Player"

// EnvSettings describes all of the environment settings.
type EnvSettings struct {
	// DataHome is the root of the game content tree.
	DataHome string
	// CacheHome is the root of the scratch tree (natives extraction).
	CacheHome string
	// JavaBin is the runtime binary to launch.
	JavaBin string
	// Username is the offline profile name.
	Username string
	// JavaArgs holds extra JVM flags as one shell-style string.
	JavaArgs string
	// ManifestURL is the version catalog endpoint.
	ManifestURL string
	// LibrariesURL is the endpoint library paths resolve against.
	LibrariesURL string
	// ResourcesURL is the endpoint asset hashes resolve against.
	ResourcesURL string
	// Concurrency bounds parallel downloads.
	Concurrency int
	// Debug indicates whether the launcher is running in debug mode.
	Debug bool
}

// configFile mirrors the optional config.yaml.
type configFile struct {
	JavaBin  string `json:"javaBin,omitempty"`
	Username string `json:"username,omitempty"`
	JavaArgs string `json:"javaArgs,omitempty"`
}

// New builds settings from the environment and the config file.
func New() *EnvSettings {
	conf := loadConfigFile(gamepath.ConfigFile())
	layout := gamepath.DefaultLayout()

	env := &EnvSettings{
		DataHome:     layout.Data,
		CacheHome:    layout.Cache,
		JavaBin:      envOr("AMETRINE_JAVA_BIN", stringOr(conf.JavaBin, launch.DefaultJavaBin)),
		Username:     envOr("AMETRINE_USERNAME", stringOr(conf.Username, DefaultUsername)),
		JavaArgs:     envOr("AMETRINE_JAVA_ARGS", conf.JavaArgs),
		ManifestURL:  envOr("AMETRINE_MANIFEST_URL", manifest.DefaultURL),
		LibrariesURL: envOr("AMETRINE_LIBRARIES_URL", downloader.DefaultLibrariesURL),
		ResourcesURL: envOr("AMETRINE_RESOURCES_URL", downloader.DefaultResourcesURL),
		Concurrency:  envIntOr("AMETRINE_CONCURRENCY", 0),
	}
	env.Debug, _ = strconv.ParseBool(os.Getenv("AMETRINE_DEBUG"))
	return env
}

// AddFlags binds flags to the given flagset.
func (s *EnvSettings) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&s.JavaBin, "java-bin", s.JavaBin, "path to the java runtime binary")
	fs.StringVar(&s.Username, "username", s.Username, "offline profile name passed to the game")
	fs.StringVar(&s.JavaArgs, "java-args", s.JavaArgs, "extra JVM flags, shell quoted")
	fs.IntVar(&s.Concurrency, "concurrency", s.Concurrency, "maximum parallel downloads (0 for the default)")
	fs.BoolVar(&s.Debug, "debug", s.Debug, "enable verbose output")
}

// Layout returns the local storage layout for the configured roots.
func (s *EnvSettings) Layout() gamepath.Layout {
	return gamepath.Layout{Data: s.DataHome, Cache: s.CacheHome}
}

// ExtraJavaArgs splits the configured JavaArgs string shell-style.
func (s *EnvSettings) ExtraJavaArgs() ([]string, error) {
	if s.JavaArgs == "" {
		return nil, nil
	}
	return shellwords.Parse(s.JavaArgs)
}

// EnvVars returns the environment this process exposes to helpers and docs.
func (s *EnvSettings) EnvVars() map[string]string {
	return map[string]string{
		"AMETRINE_CACHE_HOME":    s.CacheHome,
		"AMETRINE_CONFIG_HOME":   gamepath.ConfigPath(),
		"AMETRINE_DATA_HOME":     s.DataHome,
		"AMETRINE_DEBUG":         strconv.FormatBool(s.Debug),
		"AMETRINE_JAVA_BIN":      s.JavaBin,
		"AMETRINE_JAVA_ARGS":     s.JavaArgs,
		"AMETRINE_USERNAME":      s.Username,
		"AMETRINE_MANIFEST_URL":  s.ManifestURL,
		"AMETRINE_LIBRARIES_URL": s.LibrariesURL,
		"AMETRINE_RESOURCES_URL": s.ResourcesURL,
		"AMETRINE_CONCURRENCY":   strconv.Itoa(s.Concurrency),
	}
}

func loadConfigFile(path string) configFile {
	var conf configFile
	data, err := os.ReadFile(path)
	if err != nil {
		// A missing config file is the common case.
		return conf
	}
	// Unparseable config is ignored rather than fatal; flags and env still work.
	_ = yaml.Unmarshal(data, &conf)
	return conf
}

func envOr(name, def string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return def
}

func envIntOr(name string, def int) int {
	if v, ok := os.LookupEnv(name); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func stringOr(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
