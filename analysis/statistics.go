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
	"github.com/awslabs/ar-jir-tools/analysis/ir"
)

// Statistics holds general statistics about a loaded program.
type Statistics struct {
	NumberOfClasses         uint
	NumberOfMethods         uint
	NumberOfNonemptyMethods uint
	NumberOfStatements      uint
}

// ProgramStatistics returns a Statistics with general counts over the
// program's classes and method bodies.
func ProgramStatistics(prog *ir.Program) Statistics {
	result := Statistics{}
	for _, c := range prog.Classes() {
		result.NumberOfClasses++
		for _, m := range c.Methods() {
			result.NumberOfMethods++
			if len(m.Stmts) != 0 {
				result.NumberOfNonemptyMethods++
				result.NumberOfStatements += uint(len(m.Stmts))
			}
		}
	}
	return result
}
