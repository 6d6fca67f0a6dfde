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

package callgraph

import (
	"testing"

	"github.com/awslabs/ar-jir-tools/analysis/config"
	"github.com/awslabs/ar-jir-tools/analysis/ir"
)

func testLogger() *config.LogGroup {
	cfg := config.NewDefault()
	cfg.LogLevel = int(config.ErrLevel)
	return config.NewLogGroup(cfg)
}

func TestBuildCHA(t *testing.T) {
	prog, err := ir.LoadProgram([]byte(`
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
          - {op: invoke, base: this, kind: special, class: A, signature: helper()}
          - {op: return}
      - signature: helper()
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
        vars: {i: I}
        body:
          - {op: invoke, base: i, kind: interface, signature: m()}
          - {op: return}
`))
	if err != nil {
		t.Fatal(err)
	}
	entry, err := prog.Method("Main", "main()")
	if err != nil {
		t.Fatal(err)
	}

	cg := BuildCHA(entry, testLogger())

	if entries := cg.Entries(); len(entries) != 1 || entries[0] != entry {
		t.Errorf("entry set should be {main}, got %v", entries)
	}
	want := []struct {
		class, sig string
	}{
		{"Main", "main()"},
		{"A", "m()"},
		{"B", "m()"},
		{"A", "helper()"},
	}
	if len(cg.ReachableMethods()) != len(want) {
		t.Fatalf("expected %d reachable methods, got %v", len(want), cg.ReachableMethods())
	}
	for _, w := range want {
		m, err := prog.Method(w.class, w.sig)
		if err != nil {
			t.Fatal(err)
		}
		if !cg.IsReachable(m) {
			t.Errorf("%v should be reachable", m)
		}
	}

	site := CallSitesIn(entry)[0]
	callees := cg.CalleesOf(site)
	if len(callees) != 2 {
		t.Errorf("interface site should resolve to both overrides, got %v", callees)
	}

	am, _ := prog.Method("A", "m()")
	helper, _ := prog.Method("A", "helper()")
	callers := cg.CallersOf(helper)
	if len(callers) != 1 || callers[0].Callee != helper || callers[0].Kind != Special {
		t.Fatalf("helper should have a single special caller edge, got %v", callers)
	}
	if callers[0].Site != CallSitesIn(am)[0] {
		t.Errorf("the caller site should be the invoke in A.m()")
	}
}

func TestGraphEdgeIdempotence(t *testing.T) {
	prog := loadHierarchy(t)
	am := prog.Class("A").DeclaredMethod("m()")
	site := &ir.Invoke{Kind: ir.InvokeVirtual, Class: prog.Class("A"), Signature: "m()"}

	g := NewGraph()
	e := Edge{Kind: Virtual, Site: site, Callee: am}
	if !g.AddEdge(e) {
		t.Errorf("first insertion should report a new edge")
	}
	if g.AddEdge(e) {
		t.Errorf("second insertion should be a no-op")
	}
	if len(g.Edges()) != 1 || len(g.CalleesOf(site)) != 1 {
		t.Errorf("duplicate insertion must not grow the graph")
	}

	if !g.AddReachable(am) {
		t.Errorf("first reachable mark should report a transition")
	}
	if g.AddReachable(am) {
		t.Errorf("marking a reachable method again should be a no-op")
	}
}
