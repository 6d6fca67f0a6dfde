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
	"fmt"
	"time"

	"github.com/awslabs/ar-jir-tools/analysis/config"
	"github.com/awslabs/ar-jir-tools/analysis/ir"
)

// LoadProgram loads and validates the program description in filename,
// logging loading time and basic statistics.
func LoadProgram(logger *config.LogGroup, filename string) (*ir.Program, error) {
	start := time.Now()
	prog, err := ir.LoadProgramFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load program: %w", err)
	}
	stats := ProgramStatistics(prog)
	logger.Infof("Loaded %d classes, %d methods, %d statements (%.2f s).",
		stats.NumberOfClasses, stats.NumberOfMethods, stats.NumberOfStatements,
		time.Since(start).Seconds())
	return prog, nil
}
