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

// Package ir defines JIR, the Java-like intermediate representation the
// analyses in this module operate on: a program is a set of classes related by
// a class hierarchy, each class declares fields and methods, and each method
// body is an ordered sequence of statements in three-address form.
//
// Statements form a closed set of variants (see Stmt); analyses dispatch on
// statement kind with a type switch so the compiler checks coverage. Cyclic
// relations between methods, variables and classes are plain pointers into
// tables owned by the Program; nothing outside the Program owns IR nodes.
//
// The package also builds per-method control-flow graphs (BuildCFG) and loads
// whole programs from a declarative YAML description (LoadProgram), which is
// how the test suites and the command-line drivers construct their inputs.
package ir
