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

// Package cmd implements the tythonc CLI (spec §6.3; SPEC_FULL.md §A.1): a
// single cobra command taking the entry module path as its sole positional
// argument, modelled on the teacher's pkg/cmd/root.go + pkg/cmd/compile.go
// split: root.go declares the command and its flags, and compile.go holds
// runCompile, which the command calls to invoke the library entry point.
package cmd

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is filled in by the linker when building a release binary, the
// same convention the teacher's rootCmd uses.
var Version string

var rootCmd = &cobra.Command{
	Use:   "tythonc <entry-module-path>",
	Short: "An ahead-of-time compiler for the Tython language.",
	Long:  "tythonc compiles a statically-typed Python subset to a native executable.",
	Args:  cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			printVersion()
			return
		}

		if len(args) == 0 {
			cmd.Help() //nolint:errcheck
			os.Exit(2)
		}

		runCompile(cmd, args[0], args[1:])
	},
}

func printVersion() {
	fmt.Print("tythonc ")

	switch {
	case Version != "":
		fmt.Printf("%s", Version)
	default:
		if info, ok := debug.ReadBuildInfo(); ok {
			fmt.Printf("%s", info.Main.Version)
		} else {
			fmt.Printf("(unknown version)")
		}
	}

	fmt.Println()
}

// Execute runs the root command, which has no child commands. Called once
// by cmd/tythonc/main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "report the version of this executable")
	rootCmd.PersistentFlags().Bool("debug", false, "write the intermediate TIR dump to stderr and log progress at debug level")
	rootCmd.PersistentFlags().Bool("json", false, "dump the resolved module order and lowered TIR as <entry>.tython.json")
	rootCmd.PersistentFlags().Bool("keep-exe", false, "don't remove the produced executable after running it")
	rootCmd.PersistentFlags().Bool("run", false, "run the produced executable immediately instead of just compiling it")
	rootCmd.PersistentFlags().String("stdlib-dir", "", "override the bundled stdlib search directory")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
}

func configureLogging(cmd *cobra.Command) {
	log.SetFormatter(&log.TextFormatter{})

	if GetFlag(cmd, "verbose") || GetFlag(cmd, "debug") {
		log.SetLevel(log.DebugLevel)
	}
}
