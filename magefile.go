//go:build mage

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

package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName    = "pvquant"
	packageName   = "."
	modulePath    = "github.com/penny-vault/pvquant"
	versionLdflag = "-X " + modulePath + "/common.commitHash=$COMMIT_HASH -X " + modulePath + "/common.buildDate=$BUILD_DATE"
)

// allow user to override go executable by running as GOEXE=xxx mage ... on unix-like systems
var goexe = "go"

func init() {
	if exe := os.Getenv("GOEXE"); exe != "" {
		goexe = exe
	}
}

// Build the pvquant binary
func Build() error {
	fmt.Println("Building...")
	return runWith(flagEnv(), goexe, "build", "-o", binaryName, "-ldflags", versionLdflag, buildFlags(), "-v", packageName)
}

// Install pvquant into GOPATH/bin
func Install() error {
	return runWith(flagEnv(), goexe, "install", "-ldflags", versionLdflag, buildFlags(), packageName)
}

// Clean removes build artifacts
func Clean() {
	fmt.Println("Cleaning...")
	for _, fn := range []string{binaryName, "coverage.out", "coverage-all.out"} {
		os.Remove(fn)
	}
}

// Check runs the formatters, linters and race enabled tests
func Check() {
	mg.Deps(Fmt, Vet)
	mg.Deps(TestRace)
}

// Test runs the ginkgo suites of every package
func Test() error {
	fmt.Println("Go Test")
	return runCmd(nil, goexe, "test", "./...", buildFlags())
}

// TestRace runs the tests with the race detector
func TestRace() error {
	fmt.Println("Go Test Race")
	return runCmd(nil, goexe, "test", "-race", "./...", buildFlags())
}

// Fmt fails if any go file is not gofmt'ed
func Fmt() error {
	fmt.Println("Go Format")

	pkgs, err := pvquantPackages()
	if err != nil {
		return err
	}

	unformatted := []string{}
	for _, pkg := range pkgs {
		files, err := filepath.Glob(filepath.Join(pkg, "*.go"))
		if err != nil {
			return err
		}
		for _, f := range files {
			// gofmt doesn't exit with non-zero when it finds unformatted code
			s, err := sh.Output("gofmt", "-l", f)
			if err != nil {
				return fmt.Errorf("running gofmt on %q: %w", f, err)
			}
			if s != "" {
				unformatted = append(unformatted, s)
			}
		}
	}

	if len(unformatted) > 0 {
		fmt.Println("The following files are not gofmt'ed:")
		fmt.Println(strings.Join(unformatted, "\n"))
		return errors.New("improperly formatted go files")
	}
	return nil
}

// Lint runs golangci-lint
func Lint() error {
	fmt.Println("Go Lint")
	return sh.RunV("golangci-lint", "run", "./...")
}

// Vet runs go vet
func Vet() error {
	fmt.Println("Go Vet")
	if err := sh.Run(goexe, "vet", "./..."); err != nil {
		return fmt.Errorf("error running go vet: %w", err)
	}
	return nil
}

// TestCoverHTML generates a test coverage report
func TestCoverHTML() error {
	fmt.Println("Generate Test Coverage HTML")

	const (
		coverAll = "coverage-all.out"
		cover    = "coverage.out"
	)

	pkgs, err := pvquantPackages()
	if err != nil {
		return err
	}

	all := bytes.NewBufferString("mode: count\n")
	for _, pkg := range pkgs {
		if err := sh.Run(goexe, "test", "-coverprofile="+cover, "-covermode=count", pkg); err != nil {
			return err
		}
		b, err := os.ReadFile(cover)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}
		// strip the mode line of each package profile
		all.Write(b[bytes.IndexByte(b, '\n')+1:])
	}

	if err := os.WriteFile(coverAll, all.Bytes(), 0600); err != nil {
		return err
	}
	return sh.Run(goexe, "tool", "cover", "-html="+coverAll)
}

// Helpers

func buildFlags() []string {
	if runtime.GOOS == "windows" {
		return []string{"-buildmode", "exe"}
	}
	return nil
}

func flagEnv() map[string]string {
	hash, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	return map[string]string{
		"COMMIT_HASH": hash,
		"BUILD_DATE":  time.Now().Format("2006-01-02T15:04:05Z0700"),
	}
}

func runCmd(env map[string]string, cmd string, args ...interface{}) error {
	if mg.Verbose() {
		return runWith(env, cmd, args...)
	}
	output, err := sh.OutputWith(env, cmd, argsToStrings(args...)...)
	if err != nil {
		fmt.Fprint(os.Stderr, output)
	}
	return err
}

func runWith(env map[string]string, cmd string, inArgs ...interface{}) error {
	return sh.RunWith(env, cmd, argsToStrings(inArgs...)...)
}

var (
	pkgs     []string
	pkgsInit sync.Once
)

func pvquantPackages() ([]string, error) {
	var err error
	pkgsInit.Do(func() {
		var s string
		s, err = sh.Output(goexe, "list", "./...")
		if err != nil {
			return
		}
		for _, pkg := range strings.Split(s, "\n") {
			pkgs = append(pkgs, "."+strings.TrimPrefix(pkg, modulePath))
		}
	})
	return pkgs, err
}

func argsToStrings(v ...interface{}) []string {
	var args []string
	for _, arg := range v {
		switch v := arg.(type) {
		case string:
			if v != "" {
				args = append(args, v)
			}
		case []string:
			args = append(args, v...)
		default:
			panic("invalid type")
		}
	}
	return args
}
