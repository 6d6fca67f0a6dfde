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

// Package render writes analysis results for human consumption: the call
// graph in GraphViz format, and a textual report of mutually recursive
// method groups.
package render

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/awslabs/ar-jir-tools/analysis/callgraph"
	"github.com/awslabs/ar-jir-tools/analysis/ir"
	"github.com/awslabs/ar-jir-tools/internal/funcutil"
	"github.com/awslabs/ar-jir-tools/internal/graphutil"
	"gonum.org/v1/gonum/graph/encoding/dot"
)

// WriteGraphviz writes a graphviz representation of the call-graph to w.
func WriteGraphviz(cg *callgraph.Graph, w io.Writer) error {
	g := graphutil.NewCallgraphIterator(cg)
	b, err := dot.Marshal(g, "callgraph", "", "  ")
	if err != nil {
		return fmt.Errorf("error while marshalling graph: %w", err)
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("error while writing in file: %w", err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("error while writing in file: %w", err)
	}
	return nil
}

// GraphvizToFile writes the graphviz representation of the call-graph to the
// named file.
func GraphvizToFile(cg *callgraph.Graph, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	defer w.Flush()

	if err := WriteGraphviz(cg, w); err != nil {
		return fmt.Errorf("error while writing graph: %w", err)
	}
	return nil
}

// WriteRecursiveGroups writes one line per group of mutually recursive
// methods in the call graph.
func WriteRecursiveGroups(cg *callgraph.Graph, w io.Writer) error {
	g := graphutil.NewCallgraphIterator(cg)
	for _, group := range graphutil.RecursiveGroups(g) {
		names := funcutil.Map(group, func(m *ir.Method) string { return m.String() })
		if _, err := fmt.Fprintf(w, "recursive group: %s\n", strings.Join(names, ", ")); err != nil {
			return fmt.Errorf("error while writing in file: %w", err)
		}
	}
	return nil
}
