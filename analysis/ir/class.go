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

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Program owns every class of one analyzed program and answers the hierarchy
// queries the dispatch resolver needs.
type Program struct {
	classes map[string]*Class
	order   []*Class
}

// NewProgram returns an empty program.
func NewProgram() *Program {
	return &Program{classes: map[string]*Class{}}
}

// AddClass registers c under its name. Registering two classes with the same
// name is a modeling error.
func (p *Program) AddClass(c *Class) error {
	if _, ok := p.classes[c.Name]; ok {
		return fmt.Errorf("duplicate class %q", c.Name)
	}
	p.classes[c.Name] = c
	p.order = append(p.order, c)
	if c.Super != nil {
		c.Super.subclasses = append(c.Super.subclasses, c)
	}
	for _, itf := range c.Interfaces {
		itf.implementors = append(itf.implementors, c)
	}
	return nil
}

// Class returns the class named name, or nil if the program has none.
func (p *Program) Class(name string) *Class {
	return p.classes[name]
}

// Classes returns all classes in registration order.
func (p *Program) Classes() []*Class {
	return slices.Clone(p.order)
}

// Method looks up a method by class name and subsignature.
func (p *Program) Method(class, signature string) (*Method, error) {
	c := p.Class(class)
	if c == nil {
		return nil, fmt.Errorf("no class %q", class)
	}
	m := c.DeclaredMethod(signature)
	if m == nil {
		return nil, fmt.Errorf("class %q declares no method %q", class, signature)
	}
	return m, nil
}

// Class is a JIR class or interface.
type Class struct {
	Name        string
	IsInterface bool
	IsAbstract  bool

	// Super is the direct superclass, nil for hierarchy roots. Interfaces
	// have no superclass; the interfaces they extend are in Interfaces.
	Super *Class

	// Interfaces lists the directly implemented interfaces of a class, or
	// the directly extended interfaces of an interface.
	Interfaces []*Class

	methods []*Method
	fields  []*Field

	// reverse hierarchy links, maintained by Program.AddClass
	subclasses   []*Class
	implementors []*Class
}

func (c *Class) String() string { return c.Name }

// Type returns the reference type backed by c.
func (c *Class) Type() ClassType { return ClassType{Class: c} }

// DeclaredMethod returns the method c itself declares with the given
// subsignature, without looking at superclasses. Returns nil if absent.
func (c *Class) DeclaredMethod(signature string) *Method {
	for _, m := range c.methods {
		if m.Signature == signature {
			return m
		}
	}
	return nil
}

// DeclaredField returns the field c itself declares, or nil.
func (c *Class) DeclaredField(name string) *Field {
	for _, f := range c.fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Methods returns the declared methods of c.
func (c *Class) Methods() []*Method { return slices.Clone(c.methods) }

// Fields returns the declared fields of c.
func (c *Class) Fields() []*Field { return slices.Clone(c.fields) }

// Subclasses returns the direct subclasses of c.
func (c *Class) Subclasses() []*Class { return slices.Clone(c.subclasses) }

// Implementors returns the direct implementors of interface c, including the
// interfaces that directly extend it.
func (c *Class) Implementors() []*Class { return slices.Clone(c.implementors) }

// AddMethod attaches a declared method to c.
func (c *Class) AddMethod(m *Method) error {
	if c.DeclaredMethod(m.Signature) != nil {
		return fmt.Errorf("class %q: duplicate method %q", c.Name, m.Signature)
	}
	m.Class = c
	c.methods = append(c.methods, m)
	return nil
}

// AddField attaches a declared field to c.
func (c *Class) AddField(f *Field) error {
	if c.DeclaredField(f.Name) != nil {
		return fmt.Errorf("class %q: duplicate field %q", c.Name, f.Name)
	}
	f.Class = c
	c.fields = append(c.fields, f)
	return nil
}

// ResolveField finds the field named name on c or the nearest superclass
// declaring it. Returns nil if the chain declares no such field.
func (c *Class) ResolveField(name string) *Field {
	for cur := c; cur != nil; cur = cur.Super {
		if f := cur.DeclaredField(name); f != nil {
			return f
		}
	}
	return nil
}

// Field is a declared class field.
type Field struct {
	Class    *Class
	Name     string
	Type     Type
	IsStatic bool
}

func (f *Field) String() string {
	return fmt.Sprintf("<%s: %s %s>", f.Class.Name, f.Type, f.Name)
}
