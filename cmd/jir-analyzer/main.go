// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// jir-analyzer: runs whole-program and intra-procedural analyses on a
// program description file.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/awslabs/ar-jir-tools/analysis"
	"github.com/awslabs/ar-jir-tools/analysis/config"
	"github.com/awslabs/ar-jir-tools/analysis/render"
	"github.com/awslabs/ar-jir-tools/internal/formatutil"
)

var (
	configPath = flag.String("config", "", "Config file path for the analyses")
)

const usage = ` Analyze a program description file.
Usage:
    jir-analyzer [options] <program file>
Examples:
% jir-analyzer -config config.yaml program.yaml
Run without config to run the default analysis pipeline from Main.main().
`

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		_, _ = fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := config.NewDefault()
	if *configPath != "" {
		config.SetGlobalConfig(*configPath)
		loaded, err := config.LoadGlobal()
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not load config %s: %v\n", *configPath, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	logger := config.NewLogGroup(cfg)

	logger.Infof(formatutil.Faint("Reading program") + "\n")
	program, err := analysis.LoadProgram(logger, flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load program: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	report, err := analysis.RunAnalyses(cfg, logger, program)
	duration := time.Since(start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "analysis failed: %v\n", err)
		os.Exit(1)
	}
	logger.Infof("Analysis took %3.4f s\n", duration.Seconds())

	if report.CallGraph != nil {
		logger.Infof("%d methods reachable from %s",
			len(report.CallGraph.ReachableMethods()), report.Entry)
		if cfg.CallGraphDotFile != "" {
			if err := render.GraphvizToFile(report.CallGraph, cfg.CallGraphDotFile); err != nil {
				fmt.Fprintf(os.Stderr, "could not write call graph: %v\n", err)
				os.Exit(1)
			}
			logger.Infof("Wrote call graph to %s", cfg.CallGraphDotFile)
		}
		if cfg.ReportRecursiveGroups {
			if err := render.WriteRecursiveGroups(report.CallGraph, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "could not report recursive groups: %v\n", err)
				os.Exit(1)
			}
		}
	}

	for _, mr := range report.MethodReports {
		if len(mr.DeadCode) == 0 {
			continue
		}
		logger.Infof("%s in %s:", formatutil.Yellow("dead code"), mr.Method)
		for _, stmt := range mr.DeadCode {
			logger.Infof("\t[%d] %s", stmt.Index(), formatutil.Sanitize(stmt.String()))
		}
	}
}
