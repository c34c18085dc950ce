/*
Copyright 2021 Gravitational, Inc.

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

package mage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/sh"
)

var (
	// buildDir is the directory with build artifacts
	buildDir = envOr("BUILD_DIR", "build")

	// buildVersion is the version assigned to built artifacts
	buildVersion = envOr("BUILD_VERSION", gitOutput("0.0.0-dev", "describe", "--tags", "--always"))

	// gitCommit is the commit the artifacts are built from
	gitCommit = gitOutput("unknown", "rev-parse", "--short", "HEAD")

	// sources lists the paths whose changes trigger a rebuild
	sources = []string{"go.mod", "lib", "tool"}
)

func envOr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func gitOutput(defaultValue string, args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil || strings.TrimSpace(out) == "" {
		return defaultValue
	}
	return strings.TrimSpace(out)
}

func inBuildDir(elems ...string) string {
	return filepath.Join(append([]string{buildDir}, elems...)...)
}
