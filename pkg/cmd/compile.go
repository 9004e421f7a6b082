// Copyright the Tython authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tython-lang/tythonc/pkg/ast"
	"github.com/tython-lang/tythonc/pkg/diag"
	"github.com/tython-lang/tythonc/pkg/driver"
)

// runCompile drives a single compile invocation of the CLI (spec §6.3: "the
// compiler either produces a runnable native executable or a non-zero exit
// with diagnostics on stderr").
func runCompile(cmd *cobra.Command, entryPath string, programArgs []string) {
	configureLogging(cmd)

	cfg := driver.Config{
		StdlibDir: GetString(cmd, "stdlib-dir"),
		Debug:     GetFlag(cmd, "debug"),
		JSON:      GetFlag(cmd, "json"),
		KeepExe:   GetFlag(cmd, "keep-exe"),
	}

	// A real build wires in a Python AST library here; none is available in
	// this repository, so the parser boundary (pkg/ast.Parser) is left to
	// the caller of pkg/driver directly when embedding the compiler as a
	// library. The CLI uses ast.NewBuilder, which parses every path it has
	// not been given a module for to an empty module, so it compiles an
	// empty program for such a path without a diagnostic of its own.
	parser := ast.NewBuilder()

	if GetFlag(cmd, "run") {
		_, errs, err := driver.CompileAndRun(cfg, parser, entryPath, programArgs)
		if errs.HasErrors() {
			renderAndExit(errs)
		}

		if err != nil {
			log.Errorf("run failed: %v", err)
			os.Exit(1)
		}

		return
	}

	res, errs := driver.Compile(cfg, parser, entryPath)
	if errs.HasErrors() {
		renderAndExit(errs)
	}

	log.Infof("wrote %s", res.ExePath)
}

// renderAndExit prints every diagnostic to stderr, width-wrapped via
// pkg/diag.Render, and exits non-zero (spec §6.3).
func renderAndExit(errs diag.List) {
	diag.Render(os.Stderr, errs)
	os.Exit(1)
}
