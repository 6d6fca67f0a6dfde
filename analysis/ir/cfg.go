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

package ir

import "fmt"

// EdgeKind labels a CFG edge with the control construct that produced it.
type EdgeKind int

// The edge kinds.
const (
	EdgeFallThrough EdgeKind = iota
	EdgeGoto
	EdgeIfTrue
	EdgeIfFalse
	EdgeSwitchCase
	EdgeSwitchDefault
	EdgeReturn
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeFallThrough:
		return "fallthrough"
	case EdgeGoto:
		return "goto"
	case EdgeIfTrue:
		return "if-true"
	case EdgeIfFalse:
		return "if-false"
	case EdgeSwitchCase:
		return "switch-case"
	case EdgeSwitchDefault:
		return "switch-default"
	case EdgeReturn:
		return "return"
	}
	return fmt.Sprintf("EdgeKind(%d)", int(k))
}

// CFGEdge is a directed control-flow edge. CaseValue is meaningful only for
// EdgeSwitchCase edges.
type CFGEdge struct {
	Kind      EdgeKind
	Source    Stmt
	Target    Stmt
	CaseValue int32
}

// CFG is the control-flow graph of one method body, with a synthetic entry
// node preceding the first statement and a synthetic exit node that return
// statements (and a body falling off the end) lead to.
type CFG struct {
	Method *Method
	Entry  Stmt
	Exit   Stmt

	nodes []Stmt
	succs map[Stmt][]CFGEdge
	preds map[Stmt][]CFGEdge
}

// BuildCFG constructs the control-flow graph of m. Branch targets outside the
// body are a malformed-IR error.
func BuildCFG(m *Method) (*CFG, error) {
	g := &CFG{
		Method: m,
		Entry:  &Nop{},
		Exit:   &Nop{},
		succs:  map[Stmt][]CFGEdge{},
		preds:  map[Stmt][]CFGEdge{},
	}
	g.Entry.setIndex(-1)
	g.Exit.setIndex(len(m.Stmts))
	g.nodes = make([]Stmt, 0, len(m.Stmts)+2)
	g.nodes = append(g.nodes, g.Entry)
	g.nodes = append(g.nodes, m.Stmts...)
	g.nodes = append(g.nodes, g.Exit)

	at := func(i int) (Stmt, error) {
		if i < 0 || i >= len(m.Stmts) {
			return nil, fmt.Errorf("%v: branch target %d outside body of %d statements", m, i, len(m.Stmts))
		}
		return m.Stmts[i], nil
	}
	// next returns the fall-through successor of statement i.
	next := func(i int) Stmt {
		if i+1 < len(m.Stmts) {
			return m.Stmts[i+1]
		}
		return g.Exit
	}

	if len(m.Stmts) == 0 {
		g.addEdge(CFGEdge{Kind: EdgeFallThrough, Source: g.Entry, Target: g.Exit})
		return g, nil
	}
	g.addEdge(CFGEdge{Kind: EdgeFallThrough, Source: g.Entry, Target: m.Stmts[0]})

	for i, s := range m.Stmts {
		switch s := s.(type) {
		case *If:
			t, err := at(s.Target)
			if err != nil {
				return nil, err
			}
			g.addEdge(CFGEdge{Kind: EdgeIfTrue, Source: s, Target: t})
			g.addEdge(CFGEdge{Kind: EdgeIfFalse, Source: s, Target: next(i)})
		case *Goto:
			t, err := at(s.Target)
			if err != nil {
				return nil, err
			}
			g.addEdge(CFGEdge{Kind: EdgeGoto, Source: s, Target: t})
		case *Switch:
			if len(s.CaseValues) != len(s.Targets) {
				return nil, fmt.Errorf("%v: switch at %d has %d case values but %d targets",
					m, i, len(s.CaseValues), len(s.Targets))
			}
			for k, ti := range s.Targets {
				t, err := at(ti)
				if err != nil {
					return nil, err
				}
				g.addEdge(CFGEdge{Kind: EdgeSwitchCase, Source: s, Target: t, CaseValue: s.CaseValues[k]})
			}
			t, err := at(s.Default)
			if err != nil {
				return nil, err
			}
			g.addEdge(CFGEdge{Kind: EdgeSwitchDefault, Source: s, Target: t})
		case *Return:
			g.addEdge(CFGEdge{Kind: EdgeReturn, Source: s, Target: g.Exit})
		default:
			g.addEdge(CFGEdge{Kind: EdgeFallThrough, Source: s, Target: next(i)})
		}
	}
	return g, nil
}

func (g *CFG) addEdge(e CFGEdge) {
	g.succs[e.Source] = append(g.succs[e.Source], e)
	g.preds[e.Target] = append(g.preds[e.Target], e)
}

// Nodes returns all nodes: the entry node first, then the body statements in
// order, then the exit node.
func (g *CFG) Nodes() []Stmt { return g.nodes }

// OutEdges returns the outgoing edges of s.
func (g *CFG) OutEdges(s Stmt) []CFGEdge { return g.succs[s] }

// InEdges returns the incoming edges of s.
func (g *CFG) InEdges(s Stmt) []CFGEdge { return g.preds[s] }

// SuccsOf returns the successor statements of s.
func (g *CFG) SuccsOf(s Stmt) []Stmt {
	edges := g.succs[s]
	out := make([]Stmt, len(edges))
	for i, e := range edges {
		out[i] = e.Target
	}
	return out
}

// PredsOf returns the predecessor statements of s.
func (g *CFG) PredsOf(s Stmt) []Stmt {
	edges := g.preds[s]
	out := make([]Stmt, len(edges))
	for i, e := range edges {
		out[i] = e.Source
	}
	return out
}

// IsEntry reports whether s is the synthetic entry node.
func (g *CFG) IsEntry(s Stmt) bool { return s == g.Entry }

// IsExit reports whether s is the synthetic exit node.
func (g *CFG) IsExit(s Stmt) bool { return s == g.Exit }
