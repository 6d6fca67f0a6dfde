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
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// The YAML program description. See testdata of the analysis packages for
// examples of the format.
type programSpec struct {
	Classes []classSpec `yaml:"classes"`
}

type classSpec struct {
	Name       string       `yaml:"name"`
	Interface  bool         `yaml:"interface"`
	Abstract   bool         `yaml:"abstract"`
	Super      string       `yaml:"super"`
	Implements []string     `yaml:"implements"`
	Fields     []fieldSpec  `yaml:"fields"`
	Methods    []methodSpec `yaml:"methods"`
}

type fieldSpec struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Static bool   `yaml:"static"`
}

type methodSpec struct {
	Signature string            `yaml:"signature"`
	Static    bool              `yaml:"static"`
	Abstract  bool              `yaml:"abstract"`
	Params    []string          `yaml:"params"`
	Vars      map[string]string `yaml:"vars"`
	Body      []stmtSpec        `yaml:"body"`
}

type stmtSpec struct {
	Op        string     `yaml:"op"`
	Result    string     `yaml:"result"`
	From      string     `yaml:"from"`
	Value     *int32     `yaml:"value"`
	Operator  string     `yaml:"operator"`
	X         string     `yaml:"x"`
	Y         string     `yaml:"y"`
	Base      string     `yaml:"base"`
	Class     string     `yaml:"class"`
	Field     string     `yaml:"field"`
	Index     string     `yaml:"index"`
	Rhs       string     `yaml:"rhs"`
	Kind      string     `yaml:"kind"`
	Signature string     `yaml:"signature"`
	Args      []string   `yaml:"args"`
	Type      string     `yaml:"type"`
	Target    *int       `yaml:"target"`
	Cases     []caseSpec `yaml:"cases"`
	Default   *int       `yaml:"default"`
}

type caseSpec struct {
	Value  int32 `yaml:"value"`
	Target int   `yaml:"target"`
}

// LoadProgramFile loads a YAML program description from a file.
func LoadProgramFile(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading program %s: %w", path, err)
	}
	p, err := LoadProgram(data)
	if err != nil {
		return nil, fmt.Errorf("loading program %s: %w", path, err)
	}
	return p, nil
}

// LoadProgram parses a YAML program description into a Program. Any
// inconsistency in the description (unknown variables, classes or fields,
// branch targets outside a body) is an error: the analyses assume a
// well-formed IR and the loader is where that is enforced.
func LoadProgram(data []byte) (*Program, error) {
	var spec programSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing program yaml: %w", err)
	}

	prog := NewProgram()
	shells := map[string]*Class{}
	for _, cs := range spec.Classes {
		if cs.Name == "" {
			return nil, fmt.Errorf("class with empty name")
		}
		if _, ok := shells[cs.Name]; ok {
			return nil, fmt.Errorf("duplicate class %q", cs.Name)
		}
		shells[cs.Name] = &Class{
			Name:        cs.Name,
			IsInterface: cs.Interface,
			IsAbstract:  cs.Abstract || cs.Interface,
		}
	}

	// link the hierarchy, then register; registration builds reverse links
	for _, cs := range spec.Classes {
		c := shells[cs.Name]
		if cs.Super != "" {
			super, ok := shells[cs.Super]
			if !ok {
				return nil, fmt.Errorf("class %q: unknown superclass %q", cs.Name, cs.Super)
			}
			c.Super = super
		}
		for _, in := range cs.Implements {
			itf, ok := shells[in]
			if !ok {
				return nil, fmt.Errorf("class %q: unknown interface %q", cs.Name, in)
			}
			if !itf.IsInterface {
				return nil, fmt.Errorf("class %q: %q is not an interface", cs.Name, in)
			}
			c.Interfaces = append(c.Interfaces, itf)
		}
		if err := prog.AddClass(c); err != nil {
			return nil, err
		}
	}

	// members
	for _, cs := range spec.Classes {
		c := shells[cs.Name]
		for _, fs := range cs.Fields {
			t, err := parseType(prog, fs.Type)
			if err != nil {
				return nil, fmt.Errorf("field %s.%s: %w", cs.Name, fs.Name, err)
			}
			if err := c.AddField(&Field{Name: fs.Name, Type: t, IsStatic: fs.Static}); err != nil {
				return nil, err
			}
		}
		for _, ms := range cs.Methods {
			name, _, ok := strings.Cut(ms.Signature, "(")
			if name == "" || !ok {
				return nil, fmt.Errorf("class %q: malformed method signature %q", cs.Name, ms.Signature)
			}
			m := &Method{
				Name:       name,
				Signature:  ms.Signature,
				IsStatic:   ms.Static,
				IsAbstract: ms.Abstract || (c.IsInterface && len(ms.Body) == 0),
			}
			if err := c.AddMethod(m); err != nil {
				return nil, err
			}
		}
	}

	// bodies
	for _, cs := range spec.Classes {
		c := shells[cs.Name]
		for _, ms := range cs.Methods {
			m := c.DeclaredMethod(ms.Signature)
			if err := loadBody(prog, c, m, ms); err != nil {
				return nil, fmt.Errorf("%v: %w", m, err)
			}
		}
	}
	return prog, nil
}

func loadBody(prog *Program, c *Class, m *Method, ms methodSpec) error {
	if !m.IsStatic {
		this, err := m.AddVar("this", c.Type())
		if err != nil {
			return err
		}
		m.This = this
	}
	names := make([]string, 0, len(ms.Vars))
	for name := range ms.Vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t, err := parseType(prog, ms.Vars[name])
		if err != nil {
			return fmt.Errorf("variable %q: %w", name, err)
		}
		if _, err := m.AddVar(name, t); err != nil {
			return err
		}
	}
	for _, pn := range ms.Params {
		v := m.Var(pn)
		if v == nil {
			return fmt.Errorf("parameter %q is not a declared variable", pn)
		}
		m.Params = append(m.Params, v)
	}
	if m.IsAbstract {
		if len(ms.Body) > 0 {
			return fmt.Errorf("abstract method with a body")
		}
		return nil
	}

	stmts := make([]Stmt, 0, len(ms.Body))
	for i, ss := range ms.Body {
		s, err := loadStmt(prog, m, ss)
		if err != nil {
			return fmt.Errorf("statement %d (%s): %w", i, ss.Op, err)
		}
		stmts = append(stmts, s)
	}
	m.SetBody(stmts)
	return nil
}

func loadStmt(prog *Program, m *Method, ss stmtSpec) (Stmt, error) {
	v := func(name string) (*Var, error) {
		if name == "" {
			return nil, fmt.Errorf("missing variable operand")
		}
		if x := m.Var(name); x != nil {
			return x, nil
		}
		return nil, fmt.Errorf("unknown variable %q", name)
	}
	opt := func(name string) (*Var, error) {
		if name == "" {
			return nil, nil
		}
		return v(name)
	}
	target := func(t *int) (int, error) {
		if t == nil {
			return 0, fmt.Errorf("missing branch target")
		}
		return *t, nil
	}

	switch ss.Op {
	case "new":
		res, err := v(ss.Result)
		if err != nil {
			return nil, err
		}
		t, err := parseType(prog, ss.Type)
		if err != nil {
			return nil, err
		}
		return &New{Result: res, Type: t}, nil

	case "copy":
		res, err := v(ss.Result)
		if err != nil {
			return nil, err
		}
		from, err := v(ss.From)
		if err != nil {
			return nil, err
		}
		return &Copy{Result: res, From: from}, nil

	case "const":
		res, err := v(ss.Result)
		if err != nil {
			return nil, err
		}
		if ss.Value == nil {
			return nil, fmt.Errorf("missing literal value")
		}
		return &AssignLiteral{Result: res, Value: IntLiteral(*ss.Value)}, nil

	case "binary":
		res, err := v(ss.Result)
		if err != nil {
			return nil, err
		}
		exp, err := loadBinaryExp(m, ss)
		if err != nil {
			return nil, err
		}
		return &Binary{Result: res, Exp: exp}, nil

	case "cast":
		res, err := v(ss.Result)
		if err != nil {
			return nil, err
		}
		operand, err := v(ss.From)
		if err != nil {
			return nil, err
		}
		t, err := parseType(prog, ss.Type)
		if err != nil {
			return nil, err
		}
		return &Cast{Result: res, Operand: operand, Type: t}, nil

	case "load":
		res, err := v(ss.Result)
		if err != nil {
			return nil, err
		}
		base, err := opt(ss.Base)
		if err != nil {
			return nil, err
		}
		f, err := resolveField(prog, base, ss)
		if err != nil {
			return nil, err
		}
		return &LoadField{Result: res, Base: base, Field: f}, nil

	case "store":
		base, err := opt(ss.Base)
		if err != nil {
			return nil, err
		}
		f, err := resolveField(prog, base, ss)
		if err != nil {
			return nil, err
		}
		val, err := v(ss.Rhs)
		if err != nil {
			return nil, err
		}
		return &StoreField{Base: base, Field: f, Value: val}, nil

	case "aload":
		res, err := v(ss.Result)
		if err != nil {
			return nil, err
		}
		base, err := v(ss.Base)
		if err != nil {
			return nil, err
		}
		idx, err := v(ss.Index)
		if err != nil {
			return nil, err
		}
		return &LoadArray{Result: res, Base: base, Idx: idx}, nil

	case "astore":
		base, err := v(ss.Base)
		if err != nil {
			return nil, err
		}
		idx, err := v(ss.Index)
		if err != nil {
			return nil, err
		}
		val, err := v(ss.Rhs)
		if err != nil {
			return nil, err
		}
		return &StoreArray{Base: base, Idx: idx, Value: val}, nil

	case "invoke":
		return loadInvoke(prog, m, ss)

	case "if":
		exp, err := loadBinaryExp(m, ss)
		if err != nil {
			return nil, err
		}
		t, err := target(ss.Target)
		if err != nil {
			return nil, err
		}
		return &If{Cond: exp, Target: t}, nil

	case "goto":
		t, err := target(ss.Target)
		if err != nil {
			return nil, err
		}
		return &Goto{Target: t}, nil

	case "switch":
		sel, err := v(ss.From)
		if err != nil {
			return nil, err
		}
		s := &Switch{Selector: sel}
		for _, cs := range ss.Cases {
			s.CaseValues = append(s.CaseValues, cs.Value)
			s.Targets = append(s.Targets, cs.Target)
		}
		d, err := target(ss.Default)
		if err != nil {
			return nil, fmt.Errorf("switch: %w", err)
		}
		s.Default = d
		return s, nil

	case "return":
		val, err := opt(ss.From)
		if err != nil {
			return nil, err
		}
		return &Return{Value: val}, nil

	case "nop":
		return &Nop{}, nil
	}
	return nil, fmt.Errorf("unknown statement op %q", ss.Op)
}

func loadBinaryExp(m *Method, ss stmtSpec) (BinaryExp, error) {
	op, ok := ParseBinOp(ss.Operator)
	if !ok {
		return BinaryExp{}, fmt.Errorf("unknown operator %q", ss.Operator)
	}
	x := m.Var(ss.X)
	y := m.Var(ss.Y)
	if x == nil || y == nil {
		return BinaryExp{}, fmt.Errorf("unknown operand %q or %q", ss.X, ss.Y)
	}
	return BinaryExp{Op: op, X: x, Y: y}, nil
}

func loadInvoke(prog *Program, m *Method, ss stmtSpec) (*Invoke, error) {
	base := (*Var)(nil)
	if ss.Base != "" {
		base = m.Var(ss.Base)
		if base == nil {
			return nil, fmt.Errorf("unknown receiver %q", ss.Base)
		}
	}
	kind, err := parseInvokeKind(ss.Kind, base)
	if err != nil {
		return nil, err
	}
	declared, err := invokeClass(prog, base, ss)
	if err != nil {
		return nil, err
	}
	inv := &Invoke{
		Kind:      kind,
		Base:      base,
		Class:     declared,
		Signature: ss.Signature,
	}
	if ss.Signature == "" {
		return nil, fmt.Errorf("invoke without signature")
	}
	if ss.Result != "" {
		res := m.Var(ss.Result)
		if res == nil {
			return nil, fmt.Errorf("unknown result variable %q", ss.Result)
		}
		inv.Result = res
	}
	for _, an := range ss.Args {
		a := m.Var(an)
		if a == nil {
			return nil, fmt.Errorf("unknown argument %q", an)
		}
		inv.Args = append(inv.Args, a)
	}
	return inv, nil
}

func parseInvokeKind(kind string, base *Var) (InvokeKind, error) {
	switch kind {
	case "":
		if base == nil {
			return InvokeStatic, nil
		}
		return InvokeVirtual, nil
	case "static":
		return InvokeStatic, nil
	case "special":
		if base == nil {
			return 0, fmt.Errorf("special invoke without a receiver")
		}
		return InvokeSpecial, nil
	case "virtual":
		if base == nil {
			return 0, fmt.Errorf("virtual invoke without a receiver")
		}
		return InvokeVirtual, nil
	case "interface":
		if base == nil {
			return 0, fmt.Errorf("interface invoke without a receiver")
		}
		return InvokeInterface, nil
	}
	return 0, fmt.Errorf("unknown invoke kind %q", kind)
}

// invokeClass determines the declared class of a call site: the explicit
// class attribute when present, otherwise the receiver's declared type.
func invokeClass(prog *Program, base *Var, ss stmtSpec) (*Class, error) {
	if ss.Class != "" {
		c := prog.Class(ss.Class)
		if c == nil {
			return nil, fmt.Errorf("unknown class %q", ss.Class)
		}
		return c, nil
	}
	if base == nil {
		return nil, fmt.Errorf("static invoke without a class")
	}
	ct, ok := base.Type.(ClassType)
	if !ok {
		return nil, fmt.Errorf("receiver %q has non-class type %s", base.Name, base.Type)
	}
	return ct.Class, nil
}

// resolveField finds the field of a load/store: static accesses name it as
// class + field, instance accesses resolve the name against the base
// variable's declared class.
func resolveField(prog *Program, base *Var, ss stmtSpec) (*Field, error) {
	if ss.Field == "" {
		return nil, fmt.Errorf("missing field name")
	}
	var c *Class
	switch {
	case ss.Class != "":
		c = prog.Class(ss.Class)
		if c == nil {
			return nil, fmt.Errorf("unknown class %q", ss.Class)
		}
	case base != nil:
		ct, ok := base.Type.(ClassType)
		if !ok {
			return nil, fmt.Errorf("base %q has non-class type %s", base.Name, base.Type)
		}
		c = ct.Class
	default:
		return nil, fmt.Errorf("static field access without a class")
	}
	f := c.ResolveField(ss.Field)
	if f == nil {
		return nil, fmt.Errorf("class %q resolves no field %q", c.Name, ss.Field)
	}
	if base == nil && !f.IsStatic {
		return nil, fmt.Errorf("static access to instance field %v", f)
	}
	if base != nil && f.IsStatic {
		return nil, fmt.Errorf("instance access to static field %v", f)
	}
	return f, nil
}

func parseType(prog *Program, s string) (Type, error) {
	if s == "" {
		return nil, fmt.Errorf("missing type")
	}
	if elem, ok := strings.CutSuffix(s, "[]"); ok {
		t, err := parseType(prog, elem)
		if err != nil {
			return nil, err
		}
		return ArrayType{Elem: t}, nil
	}
	switch s {
	case "byte":
		return Byte, nil
	case "short":
		return Short, nil
	case "int":
		return Int, nil
	case "char":
		return Char, nil
	case "boolean":
		return Boolean, nil
	case "long":
		return Long, nil
	case "float":
		return Float, nil
	case "double":
		return Double, nil
	}
	if c := prog.Class(s); c != nil {
		return c.Type(), nil
	}
	return nil, fmt.Errorf("unknown type %q", s)
}
