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

package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/awslabs/ar-jir-tools/analysis/callgraph"
	"github.com/awslabs/ar-jir-tools/analysis/config"
	"github.com/awslabs/ar-jir-tools/analysis/ir"
)

func buildCallGraph(t *testing.T) *callgraph.Graph {
	t.Helper()
	prog, err := ir.LoadProgram([]byte(`
classes:
  - name: Main
    methods:
      - signature: main()
        static: true
        body:
          - {op: invoke, class: Main, signature: work()}
          - {op: return}
      - signature: work()
        static: true
        body:
          - {op: invoke, class: Main, signature: work()}
          - {op: return}
`))
	if err != nil {
		t.Fatal(err)
	}
	entry, err := prog.Method("Main", "main()")
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.NewDefault()
	cfg.LogLevel = int(config.ErrLevel)
	return callgraph.BuildCHA(entry, config.NewLogGroup(cfg))
}

func TestWriteGraphviz(t *testing.T) {
	cg := buildCallGraph(t)
	var buf bytes.Buffer
	if err := WriteGraphviz(cg, &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "digraph") {
		t.Errorf("output should be a digraph, got %q", out)
	}
	if !strings.Contains(out, "<Main: main()>") || !strings.Contains(out, "<Main: work()>") {
		t.Errorf("output should name both methods, got %q", out)
	}
}

func TestGraphvizToFile(t *testing.T) {
	cg := buildCallGraph(t)
	path := filepath.Join(t.TempDir(), "cg.dot")
	if err := GraphvizToFile(cg, path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "digraph") {
		t.Errorf("file should hold the digraph, got %q", string(data))
	}
}

func TestWriteRecursiveGroups(t *testing.T) {
	cg := buildCallGraph(t)
	var buf bytes.Buffer
	if err := WriteRecursiveGroups(cg, &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "recursive group: <Main: work()>") {
		t.Errorf("the self-recursive method should be reported, got %q", out)
	}
	if strings.Contains(out, "main()") {
		t.Errorf("main is not recursive, got %q", out)
	}
}
