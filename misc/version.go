// Package misc keeps build time information.
package misc

import (
	"os"
	"path/filepath"
	"strings"
)

// set by linker: -X mephrase/misc.version=... -X mephrase/misc.gitHash=...
var (
	version = "dev"
	gitHash = "unknown"
)

const appName = "mephrase"

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}

// GetAppName returns executable name without extension, falling back to the
// project name when it cannot be determined.
func GetAppName() string {
	exe, err := os.Executable()
	if err != nil {
		return appName
	}
	name := strings.TrimSuffix(filepath.Base(exe), filepath.Ext(exe))
	if len(name) == 0 || strings.HasSuffix(name, ".test") {
		return appName
	}
	return name
}
