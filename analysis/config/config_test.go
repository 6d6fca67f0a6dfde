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

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaultIsValid(t *testing.T) {
	cfg := NewDefault()
	if err := cfg.Validate(); err != nil {
		t.Errorf("the default config should validate, got %v", err)
	}
	if !cfg.RunsAnalysis(PointerAnalysisName) || !cfg.RunsAnalysis(DeadCodeAnalysisName) {
		t.Errorf("the default pipeline runs pointer analysis and dead code detection")
	}
	if cfg.RunsAnalysis(CHAAnalysisName) {
		t.Errorf("the default pipeline does not run standalone cha")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
log-level: 4
entry-class: App
entry-method: run()
analyses:
  - cha
  - constprop
report-recursive-groups: true
callgraph-dot-file: out.dot
`)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != int(DebugLevel) {
		t.Errorf("log level should be %d, got %d", DebugLevel, cfg.LogLevel)
	}
	if cfg.EntryClass != "App" || cfg.EntryMethod != "run()" {
		t.Errorf("entry point should be App.run(), got %s.%s", cfg.EntryClass, cfg.EntryMethod)
	}
	if !cfg.RunsAnalysis(CHAAnalysisName) || cfg.RunsAnalysis(PointerAnalysisName) {
		t.Errorf("the analyses list replaces the default pipeline, got %v", cfg.Analyses)
	}
	if !cfg.ReportRecursiveGroups || cfg.CallGraphDotFile != "out.dot" {
		t.Errorf("reporting options should be set, got %+v", cfg)
	}
	if cfg.SourceFile() != path {
		t.Errorf("the config should remember its source file, got %q", cfg.SourceFile())
	}
}

func TestLoadGlobal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log-level: 2\n"), 0600); err != nil {
		t.Fatal(err)
	}
	SetGlobalConfig(path)
	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != int(WarnLevel) {
		t.Errorf("log level should be %d, got %d", WarnLevel, cfg.LogLevel)
	}
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"log level too low", func(c *Config) { c.LogLevel = 0 }},
		{"log level too high", func(c *Config) { c.LogLevel = 9 }},
		{"unknown analysis", func(c *Config) { c.Analyses = []string{"taint"} }},
		{"missing entry class", func(c *Config) { c.EntryClass = "" }},
		{"missing entry method", func(c *Config) { c.EntryMethod = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected a validation error")
			}
		})
	}
}

func TestLogsDebug(t *testing.T) {
	cfg := NewDefault()
	if NewLogGroup(cfg).LogsDebug() {
		t.Errorf("the default info level does not log debug")
	}
	cfg.LogLevel = int(DebugLevel)
	if !NewLogGroup(cfg).LogsDebug() {
		t.Errorf("debug level logs debug")
	}
	cfg.LogLevel = int(TraceLevel)
	if !NewLogGroup(cfg).LogsDebug() {
		t.Errorf("trace level logs debug")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("loading a missing file should fail")
	}
}
