// SPDX-License-Identifier: ice License 1.0

package config

import (
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// ApplicationYAMLEnv points at an application.yaml outside of the usual search paths.
	ApplicationYAMLEnv = "PLAYFAB_APPLICATION_YAML"
	dotEnvSearchDepth  = 5
)

//nolint:gochecknoinits // Because we load the configs once, for the whole runtime
func init() {
	dotEnvPath := `.env`
	for range dotEnvSearchDepth {
		if err := godotenv.Load(dotEnvPath); err == nil {
			break
		}
		dotEnvPath = fmt.Sprintf(`../%v`, dotEnvPath)
	}
	loadFirstApplicationConfigFile()
}

func MustLoadFromKey(key string, cfg any) {
	if err := viper.UnmarshalKey(key, cfg); err != nil {
		log.Panic(errors.Wrapf(err, "failed to load config by key %q", key))
	}
}

// Env resolves a setting from the environment when the yaml value is empty.
// It tries `<MODULE>_<NAME>` first, where MODULE is derived from the applicationYAMLKey, then `<NAME>`.
func Env(applicationYAMLKey, name, current string) string {
	if strings.TrimSpace(current) != "" {
		return current
	}
	if val := os.Getenv(envPrefix(applicationYAMLKey) + "_" + name); val != "" {
		return val
	}

	return os.Getenv(name)
}

func envPrefix(applicationYAMLKey string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.ReplaceAll(applicationYAMLKey, "-", "_"), "/", "_"))
}

func loadFirstApplicationConfigFile() {
	for _, f := range findAllApplicationConfigFiles() {
		viper.SetConfigFile(f)
		if err := viper.ReadInConfig(); err == nil {
			return
		} else if !errors.Is(err, os.ErrNotExist) {
			log.Panic(errors.Wrapf(err, "failed to read %v", f))
		}
	}

	// Game clients ship without an application.yaml, everything comes from the environment then.
	log.Println("no application.yaml found, relying on environment variables only")
}

func findAllApplicationConfigFiles() []string {
	var files []string
	if explicit := strings.TrimSpace(os.Getenv(ApplicationYAMLEnv)); explicit != "" {
		files = append(files, explicit)
	}
	var dirs []string
	if p, err := os.Getwd(); err == nil {
		dirs = append(dirs, p)
	}
	if p, err := os.Executable(); err == nil {
		dirs = append(dirs, path.Dir(filepath.Join(p, "..")))
	}
	for _, dir := range dirs {
		files = append(files, glob(filepath.Join(dir, ".testdata", "application.yaml"))...)
		files = append(files, glob(filepath.Join(dir, "application.yaml"))...)
	}
	//nolint:dogsled // Because those 3 blank identifiers are useless
	_, callerFile, _, _ := runtime.Caller(0)

	return append(files, glob(filepath.Join(filepath.Dir(callerFile), "..", "application.yaml"))...)
}

func glob(pattern string) []string {
	files, err := filepath.Glob(pattern)
	if err != nil {
		log.Println(errors.Wrapf(err, "glob failed for [%v]", pattern))
	}

	return files
}
