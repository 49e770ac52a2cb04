package coreir

import (
	"encoding/json"
	"fmt"
)

// Envelope is the versioned JSON wrapper for a serialized Core IR Module
// (spec.md §4.K, §6: `{"version":"1.0","module":...,"metadata"?:...}`).
type Envelope struct {
	Version  string            `json:"version"`
	Module   json.RawMessage   `json:"module"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Encode serializes mod into the versioned Core IR JSON envelope. Spans,
// file and origin fields, nameSpan/variantSpans and empty typeParams are
// pruned from the module tree before encoding (spec.md §4.K "pruning"), so
// two modules differing only in source position compare equal as JSON.
func Encode(mod *Module, metadata map[string]string) ([]byte, error) {
	tree := moduleToTree(mod)
	raw, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("coreir: encode module: %w", err)
	}
	env := Envelope{Version: "1.0", Module: raw, Metadata: metadata}
	return json.MarshalIndent(env, "", "  ")
}

// Decode parses a Core IR JSON envelope, rejecting anything but the
// envelope's supported version (spec.md §4.K, §8 "Core IR JSON round-trip").
func Decode(data []byte) (map[string]interface{}, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("coreir: decode envelope: %w", err)
	}
	if env.Version != "1.0" {
		return nil, fmt.Errorf("coreir: unsupported Core IR version %q", env.Version)
	}
	var tree map[string]interface{}
	if err := json.Unmarshal(env.Module, &tree); err != nil {
		return nil, fmt.Errorf("coreir: decode module: %w", err)
	}
	return tree, nil
}

// IsValidCoreIRJson reports whether data is a well-formed, supported-version
// Core IR envelope, without fully materializing the module tree.
func IsValidCoreIRJson(data []byte) bool {
	_, err := Decode(data)
	return err == nil
}

// moduleToTree converts a Module into a plain JSON-able map tree, pruning
// the span/origin bookkeeping fields (spec.md §4.K). A generic
// interface{}-tree approach is used instead of per-type MarshalJSON methods
// since Core IR's sum types are plain Go interfaces: there is no single
// concrete type to hang a MarshalJSON method on for Decl/Stmt/Expr/Pattern/Type.
func moduleToTree(mod *Module) map[string]interface{} {
	decls := make([]interface{}, len(mod.Decls))
	for i, d := range mod.Decls {
		decls[i] = declToTree(d)
	}
	return map[string]interface{}{
		"name":  mod.Name,
		"decls": decls,
	}
}

func declToTree(d Decl) map[string]interface{} {
	switch v := d.(type) {
	case *Import:
		m := map[string]interface{}{"kind": "Import", "name": v.Name}
		if v.AsName != "" {
			m["asName"] = v.AsName
		}
		return m
	case *Data:
		fields := make([]interface{}, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = fieldToTree(f)
		}
		return map[string]interface{}{"kind": "Data", "name": v.Name, "fields": fields}
	case *Enum:
		return map[string]interface{}{"kind": "Enum", "name": v.Name, "variants": v.Variants}
	case *Func:
		return funcToTree(v)
	default:
		panic(fmt.Sprintf("coreir: unknown decl %T", d))
	}
}

func fieldToTree(f Field) map[string]interface{} {
	m := map[string]interface{}{"name": f.Name, "type": typeToTree(f.Type)}
	if len(f.Constraints) > 0 {
		cs := make([]interface{}, len(f.Constraints))
		for i, c := range f.Constraints {
			cs[i] = constraintToTree(c)
		}
		m["constraints"] = cs
	}
	return m
}

func constraintToTree(c Constraint) map[string]interface{} {
	switch v := c.(type) {
	case Required:
		return map[string]interface{}{"kind": "Required"}
	case Range:
		m := map[string]interface{}{"kind": "Range"}
		if v.HasMin {
			m["min"] = v.Min
		}
		if v.HasMax {
			m["max"] = v.Max
		}
		return m
	case PatternConstraint:
		return map[string]interface{}{"kind": "Pattern", "regexp": v.Regexp}
	default:
		panic(fmt.Sprintf("coreir: unknown constraint %T", c))
	}
}

func funcToTree(f *Func) map[string]interface{} {
	params := make([]interface{}, len(f.Params))
	for i, p := range f.Params {
		params[i] = fieldToTree(p)
	}
	m := map[string]interface{}{
		"kind":   "Func",
		"name":   f.Name,
		"params": params,
	}
	if len(f.TypeParams) > 0 {
		m["typeParams"] = f.TypeParams
	}
	if f.RetType != nil {
		m["retType"] = typeToTree(f.RetType)
	}
	if len(f.Effects) > 0 {
		m["effects"] = f.Effects
	}
	if len(f.EffectCaps) > 0 {
		m["effectCaps"] = f.EffectCaps
	}
	if f.PiiLevel != "" {
		m["piiLevel"] = string(f.PiiLevel)
	}
	if len(f.PiiCategories) > 0 {
		m["piiCategories"] = f.PiiCategories
	}
	if f.Body != nil {
		m["body"] = stmtToTree(f.Body)
	}
	return m
}

func typeToTree(t Type) interface{} {
	switch v := t.(type) {
	case nil:
		return nil
	case *TypeName:
		return map[string]interface{}{"kind": "TypeName", "name": v.Name}
	case *TypeVar:
		return map[string]interface{}{"kind": "TypeVar", "name": v.Name}
	case *TypeApp:
		args := make([]interface{}, len(v.Args))
		for i, a := range v.Args {
			args[i] = typeToTree(a)
		}
		return map[string]interface{}{"kind": "TypeApp", "base": v.Base, "args": args}
	case *Maybe:
		return map[string]interface{}{"kind": "Maybe", "elem": typeToTree(v.Elem)}
	case *OptionType:
		return map[string]interface{}{"kind": "Option", "elem": typeToTree(v.Elem)}
	case *ResultType:
		return map[string]interface{}{"kind": "Result", "ok": typeToTree(v.Ok), "err": typeToTree(v.Err)}
	case *ListType:
		return map[string]interface{}{"kind": "List", "elem": typeToTree(v.Elem)}
	case *MapType:
		return map[string]interface{}{"kind": "Map", "key": typeToTree(v.Key), "value": typeToTree(v.Value)}
	case *FuncType:
		params := make([]interface{}, len(v.Params))
		for i, p := range v.Params {
			params[i] = typeToTree(p)
		}
		return map[string]interface{}{"kind": "Func", "params": params, "ret": typeToTree(v.Ret)}
	case *PiiType:
		return map[string]interface{}{
			"kind": "Pii", "base": typeToTree(v.Base),
			"sensitivity": string(v.Sensitivity), "category": v.Category,
		}
	default:
		panic(fmt.Sprintf("coreir: unknown type %T", t))
	}
}

func stmtToTree(s Stmt) interface{} {
	switch v := s.(type) {
	case nil:
		return nil
	case *Let:
		return map[string]interface{}{"kind": "Let", "name": v.Name, "expr": exprToTree(v.Expr)}
	case *Set:
		return map[string]interface{}{"kind": "Set", "name": v.Name, "expr": exprToTree(v.Expr)}
	case *Return:
		m := map[string]interface{}{"kind": "Return"}
		if v.Expr != nil {
			m["expr"] = exprToTree(v.Expr)
		}
		return m
	case *If:
		m := map[string]interface{}{"kind": "If", "cond": exprToTree(v.Cond), "then": stmtToTree(v.Then)}
		if v.Else != nil {
			m["else"] = stmtToTree(v.Else)
		}
		return m
	case *Match:
		cases := make([]interface{}, len(v.Cases))
		for i, c := range v.Cases {
			cases[i] = map[string]interface{}{"pattern": patternToTree(c.Pattern), "body": stmtToTree(c.Body)}
		}
		return map[string]interface{}{"kind": "Match", "expr": exprToTree(v.Expr), "cases": cases}
	case *Scope:
		stmts := make([]interface{}, len(v.Statements))
		for i, st := range v.Statements {
			stmts[i] = stmtToTree(st)
		}
		return map[string]interface{}{"kind": "Scope", "statements": stmts}
	case *Start:
		return map[string]interface{}{"kind": "Start", "name": v.Name, "expr": exprToTree(v.Expr)}
	case *Wait:
		return map[string]interface{}{"kind": "Wait", "names": v.Names}
	default:
		panic(fmt.Sprintf("coreir: unknown stmt %T", s))
	}
}

func exprToTree(e Expr) interface{} {
	switch v := e.(type) {
	case nil:
		return nil
	case *Name:
		return map[string]interface{}{"kind": "Name", "value": v.Value}
	case *BoolLit:
		return map[string]interface{}{"kind": "Bool", "value": v.Value}
	case *NullLit:
		return map[string]interface{}{"kind": "Null"}
	case *IntLit:
		return map[string]interface{}{"kind": "Int", "value": v.Value}
	case *LongLit:
		return map[string]interface{}{"kind": "Long", "value": v.Value}
	case *DoubleLit:
		return map[string]interface{}{"kind": "Double", "value": v.Value}
	case *StringLit:
		return map[string]interface{}{"kind": "String", "value": v.Value}
	case *NoneLit:
		return map[string]interface{}{"kind": "None"}
	case *SomeExpr:
		return map[string]interface{}{"kind": "Some", "expr": exprToTree(v.Expr)}
	case *OkExpr:
		return map[string]interface{}{"kind": "Ok", "expr": exprToTree(v.Expr)}
	case *ErrExpr:
		return map[string]interface{}{"kind": "Err", "expr": exprToTree(v.Expr)}
	case *Construct:
		fields := make([]interface{}, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = map[string]interface{}{"name": f.Name, "value": exprToTree(f.Value)}
		}
		return map[string]interface{}{"kind": "Construct", "typeName": v.TypeName, "fields": fields}
	case *Call:
		args := make([]interface{}, len(v.Args))
		for i, a := range v.Args {
			args[i] = exprToTree(a)
		}
		return map[string]interface{}{"kind": "Call", "target": exprToTree(v.Target), "args": args}
	case *Lambda:
		params := make([]interface{}, len(v.Params))
		for i, p := range v.Params {
			params[i] = fieldToTree(p)
		}
		m := map[string]interface{}{"kind": "Lambda", "params": params, "body": stmtToTree(v.Body)}
		if len(v.Captures) > 0 {
			m["captures"] = v.Captures
		}
		if v.RetType != nil {
			m["retType"] = typeToTree(v.RetType)
		}
		return m
	case *Await:
		return map[string]interface{}{"kind": "Await", "expr": exprToTree(v.Expr)}
	default:
		panic(fmt.Sprintf("coreir: unknown expr %T", e))
	}
}

func patternToTree(p Pattern) interface{} {
	switch v := p.(type) {
	case nil:
		return nil
	case *PatNull:
		return map[string]interface{}{"kind": "PatNull"}
	case *PatInt:
		return map[string]interface{}{"kind": "PatInt", "value": v.Value}
	case *PatName:
		return map[string]interface{}{"kind": "PatName", "name": v.Name}
	case *PatCtor:
		args := make([]interface{}, len(v.Args))
		for i, a := range v.Args {
			args[i] = patternToTree(a)
		}
		m := map[string]interface{}{"kind": "PatCtor", "typeName": v.TypeName, "args": args}
		if len(v.Names) > 0 {
			m["names"] = v.Names
		}
		return m
	default:
		panic(fmt.Sprintf("coreir: unknown pattern %T", p))
	}
}
