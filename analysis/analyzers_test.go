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

package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/awslabs/ar-jir-tools/analysis/config"
	"github.com/awslabs/ar-jir-tools/analysis/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProgram = `
classes:
  - name: I
    interface: true
    methods:
      - signature: m()
  - name: A
    implements: [I]
    methods:
      - signature: m()
        body:
          - {op: return}
  - name: B
    implements: [I]
    methods:
      - signature: m()
        body:
          - {op: return}
  - name: Main
    methods:
      - signature: main()
        static: true
        vars: {a: A, i: I, x: int, y: int}
        body:
          - {op: new, result: a, type: A}
          - {op: copy, result: i, from: a}
          - {op: invoke, base: i, kind: interface, signature: m()}
          - {op: const, result: x, value: 1}
          - {op: if, operator: "==", x: x, y: x, target: 6}
          - {op: const, result: y, value: 0}
          - {op: return}
`

func testLogger() *config.LogGroup {
	cfg := config.NewDefault()
	cfg.LogLevel = int(config.ErrLevel)
	return config.NewLogGroup(cfg)
}

func loadTestProgram(t *testing.T) *ir.Program {
	t.Helper()
	path := filepath.Join(t.TempDir(), "program.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testProgram), 0600))
	prog, err := LoadProgram(testLogger(), path)
	require.NoError(t, err)
	return prog
}

func TestRunAnalysesDefaultPipeline(t *testing.T) {
	prog := loadTestProgram(t)
	cfg := config.NewDefault()
	cfg.LogLevel = int(config.ErrLevel)

	report, err := RunAnalyses(cfg, testLogger(), prog)
	require.NoError(t, err)
	require.NotNil(t, report.CallGraph)
	require.NotNil(t, report.PointerResult)

	am, err := prog.Method("A", "m()")
	require.NoError(t, err)
	bm, err := prog.Method("B", "m()")
	require.NoError(t, err)
	assert.True(t, report.CallGraph.IsReachable(am), "only the allocated type's override is reachable")
	assert.False(t, report.CallGraph.IsReachable(bm), "B is never allocated")

	// dataflow ran on the reachable methods only
	assert.Len(t, report.MethodReports, len(report.CallGraph.ReachableMethods()))

	main, err := prog.Method("Main", "main()")
	require.NoError(t, err)
	var mainReport *MethodReport
	for _, mr := range report.MethodReports {
		if mr.Method == main {
			mainReport = mr
		}
	}
	require.NotNil(t, mainReport)
	// the constant-true branch makes the fall-through assignment dead
	require.Len(t, mainReport.DeadCode, 1)
	assert.Equal(t, 5, mainReport.DeadCode[0].Index())
}

func TestRunAnalysesCHA(t *testing.T) {
	prog := loadTestProgram(t)
	cfg := config.NewDefault()
	cfg.LogLevel = int(config.ErrLevel)
	cfg.Analyses = []string{config.CHAAnalysisName}

	report, err := RunAnalyses(cfg, testLogger(), prog)
	require.NoError(t, err)
	require.NotNil(t, report.CallGraph)
	assert.Nil(t, report.PointerResult)
	assert.Empty(t, report.MethodReports, "no dataflow analysis was requested")

	// CHA is conservative: both overrides are reachable
	bm, err := prog.Method("B", "m()")
	require.NoError(t, err)
	assert.True(t, report.CallGraph.IsReachable(bm))
}

func TestRunAnalysesDataflowOnly(t *testing.T) {
	prog := loadTestProgram(t)
	cfg := config.NewDefault()
	cfg.LogLevel = int(config.ErrLevel)
	cfg.Analyses = []string{config.ConstPropName}

	report, err := RunAnalyses(cfg, testLogger(), prog)
	require.NoError(t, err)
	assert.Nil(t, report.CallGraph)

	// without a call graph every concrete method is analyzed
	stats := ProgramStatistics(prog)
	assert.Len(t, report.MethodReports, int(stats.NumberOfNonemptyMethods))
	for _, mr := range report.MethodReports {
		assert.Nil(t, mr.DeadCode)
	}
}

func TestRunAnalysesUnknownEntry(t *testing.T) {
	prog := loadTestProgram(t)
	cfg := config.NewDefault()
	cfg.EntryClass = "Nope"

	_, err := RunAnalyses(cfg, testLogger(), prog)
	assert.Error(t, err)
}

func TestProgramStatistics(t *testing.T) {
	prog := loadTestProgram(t)
	stats := ProgramStatistics(prog)
	assert.Equal(t, uint(4), stats.NumberOfClasses)
	assert.Equal(t, uint(4), stats.NumberOfMethods)
	assert.Equal(t, uint(3), stats.NumberOfNonemptyMethods)
	assert.Equal(t, uint(9), stats.NumberOfStatements)
}
