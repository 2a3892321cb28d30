// Copyright 2021-2023
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package common

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
)

var (
	// commitHash and buildDate are stamped by mage with -ldflags
	commitHash string
	buildDate  string
)

// Version is a SemVer 2.0.0 build version
type Version struct {
	Major  int
	Minor  int
	Patch  int
	Suffix string
}

func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Suffix == "" {
		return s
	}

	s += "-" + v.Suffix
	if hash := CommitHash(); hash != "" {
		s += "+" + strings.ToLower(hash)
	}
	return s
}

// CommitHash returns the git revision the binary was built from. Builds that
// were not stamped by mage fall back to the revision recorded by the go tool.
func CommitHash() string {
	if commitHash != "" {
		return commitHash
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range bi.Settings {
			if setting.Key == "vcs.revision" {
				return setting.Value
			}
		}
	}

	return ""
}

// GetDependencyList returns the sorted module dependencies as path="version"
func GetDependencyList() []string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return []string{}
	}

	deps := make([]string, 0, len(bi.Deps))
	for _, dep := range bi.Deps {
		deps = append(deps, fmt.Sprintf("%s=%q", dep.Path, dep.Version))
	}
	sort.Strings(deps)

	return deps
}

// BuildVersionString is what you see when running "pvquant version".
// Dependencies are listed when withDeps is set.
func BuildVersionString(withDeps bool) string {
	date := buildDate
	if date == "" {
		date = "unknown"
	}

	sb := &strings.Builder{}
	fmt.Fprintf(sb, "pvquant v%s %s/%s\n\n", CurrentVersion, runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(sb, "Build Date: %s\n", date)
	fmt.Fprintf(sb, "Commit: %s\n", CommitHash())
	fmt.Fprintf(sb, "Built with: %s", runtime.Version())

	if withDeps {
		sb.WriteString("\n\nDependencies:\n\n")
		sb.WriteString(strings.Join(GetDependencyList(), "\n"))
	}

	return sb.String()
}
