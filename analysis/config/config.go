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

// Package config defines the analysis configuration and the leveled loggers
// the analyses report through.
package config

import (
	"fmt"
	"os"

	"github.com/awslabs/ar-jir-tools/internal/funcutil"
	"gopkg.in/yaml.v3"
)

var (
	// The global config file
	configFile string
)

// SetGlobalConfig sets the global config filename
func SetGlobalConfig(filename string) {
	configFile = filename
}

// LoadGlobal loads the config file that has been set by SetGlobalConfig
func LoadGlobal() (*Config, error) {
	return Load(configFile)
}

// Analysis names accepted in the analyses list of a config.
const (
	PointerAnalysisName  = "pointer"
	CHAAnalysisName      = "cha"
	ConstPropName        = "constprop"
	LivenessName         = "liveness"
	DeadCodeAnalysisName = "deadcode"
)

// Config selects the analyses to run and where to start them.
// If some field is not defined in the config file, it will be empty/zero in
// the struct.
type Config struct {
	sourceFile string

	// LogLevel controls the verbosity of the log group built from the
	// config (see LogLevel constants).
	LogLevel int `yaml:"log-level"`

	// EntryClass and EntryMethod name the entry point of the
	// whole-program analyses, e.g. class "Main", method "main()".
	EntryClass  string `yaml:"entry-class"`
	EntryMethod string `yaml:"entry-method"`

	// Analyses lists the analyses to run, in order. Valid names are
	// pointer, cha, constprop, liveness and deadcode.
	Analyses []string `yaml:"analyses"`

	// ReportRecursiveGroups enables reporting of mutually recursive
	// method groups found in the computed call graph.
	ReportRecursiveGroups bool `yaml:"report-recursive-groups"`

	// CallGraphDotFile, when non-empty, is the file the driver writes the
	// DOT rendering of the computed call graph to.
	CallGraphDotFile string `yaml:"callgraph-dot-file"`
}

// NewDefault returns a config with sensible defaults: info-level logging,
// entry point Main.main(), the standard analysis pipeline.
func NewDefault() *Config {
	return &Config{
		LogLevel:    int(InfoLevel),
		EntryClass:  "Main",
		EntryMethod: "main()",
		Analyses: []string{
			PointerAnalysisName,
			ConstPropName,
			LivenessName,
			DeadCodeAnalysisName,
		},
	}
}

// Load reads a config from a yaml file.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read config %s: %w", filename, err)
	}
	cfg := NewDefault()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("could not parse config %s: %w", filename, err)
	}
	cfg.sourceFile = filename
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}
	return cfg, nil
}

// SourceFile returns the file the config was loaded from, empty for
// programmatically built configs.
func (c *Config) SourceFile() string { return c.sourceFile }

// Validate checks the config for unknown analysis names and out-of-range
// levels.
func (c *Config) Validate() error {
	if c.LogLevel < int(ErrLevel) || c.LogLevel > int(TraceLevel) {
		return fmt.Errorf("log-level %d out of range [%d,%d]", c.LogLevel, ErrLevel, TraceLevel)
	}
	for _, name := range c.Analyses {
		switch name {
		case PointerAnalysisName, CHAAnalysisName, ConstPropName, LivenessName, DeadCodeAnalysisName:
		default:
			return fmt.Errorf("unknown analysis %q", name)
		}
	}
	if c.EntryClass == "" || c.EntryMethod == "" {
		return fmt.Errorf("entry-class and entry-method must be set")
	}
	return nil
}

// RunsAnalysis reports whether the analysis with the given name is enabled.
func (c *Config) RunsAnalysis(name string) bool {
	return funcutil.Contains(c.Analyses, name)
}
