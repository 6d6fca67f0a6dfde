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

package dataflow

import "fmt"

// Registry maps analysis names to published fact tables for one method, so
// an analysis can consume another's result by name. Register a *Result[F]
// under its analysis name and retrieve it with ResultOf.
type Registry struct {
	results map[string]any
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{results: map[string]any{}}
}

// Register publishes a result under name. Publishing a name twice is an
// error: results are immutable once published.
func (r *Registry) Register(name string, result any) error {
	if _, ok := r.results[name]; ok {
		return fmt.Errorf("analysis result %q already registered", name)
	}
	r.results[name] = result
	return nil
}

// ResultOf retrieves the fact table published under name, with the fact
// type the caller expects.
func ResultOf[F any](r *Registry, name string) (*Result[F], error) {
	raw, ok := r.results[name]
	if !ok {
		return nil, fmt.Errorf("no analysis result registered under %q", name)
	}
	res, ok := raw.(*Result[F])
	if !ok {
		return nil, fmt.Errorf("analysis result %q has unexpected fact type %T", name, raw)
	}
	return res, nil
}
