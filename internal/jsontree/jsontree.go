// Package jsontree projects a decoded demangle.Symbol into one of three JSON
// shapes, grounded on Pharos's demangle_json.{hpp,cpp}: Convert (decorated,
// human labels plus pre-rendered text), Raw (the tree verbatim), and Minimal
// (function-shaped symbols collapsed to a small field set, falling back to
// Raw for anything else).
package jsontree

import "github.com/relyze/undname/internal/demangle"

// Convert produces the decorated projection: symbol-kind labels, scope and
// distance names spelled out, and a pre-rendered text field alongside the
// structural data.
func Convert(sym *demangle.Symbol, attr demangle.Attributes) map[string]interface{} {
	obj := map[string]interface{}{}
	handleSymbolType(obj, sym)
	handleScope(obj, sym)
	handleDistance(obj, sym)
	handleMethodProperty(obj, sym)

	if text, err := demangle.Render(sym, attr); err == nil {
		obj["text"] = text
	}
	if sym.ExternC {
		obj["extern_c"] = true
	}
	if sym.IsConst {
		obj["const"] = true
	}
	if sym.IsVolatile {
		obj["volatile"] = true
	}
	if sym.CallingConvention != "" {
		obj["calling_convention"] = string(sym.CallingConvention)
	}
	if len(sym.Name) > 0 {
		obj["name"] = convertNameFragments(sym.Name)
	}
	if sym.Retval != nil {
		obj["return_type"] = convertType(sym.Retval)
	}
	if len(sym.Args) > 0 {
		args := make([]interface{}, len(sym.Args))
		for i, a := range sym.Args {
			args[i] = convertType(a)
		}
		obj["arguments"] = args
	}
	return obj
}

func handleSymbolType(obj map[string]interface{}, sym *demangle.Symbol) {
	var label string
	switch sym.SymbolType {
	case demangle.StaticClassMember:
		label = "static_class_member"
	case demangle.GlobalObject:
		label = "global_object"
	case demangle.GlobalFunction:
		label = "global_function"
	case demangle.ClassMethod:
		label = "class_method"
	case demangle.RTTI:
		label = "rtti"
	case demangle.VTable:
		label = "vtable"
	case demangle.String:
		label = "string"
	case demangle.VtorDisp:
		label = "vtordisp"
	case demangle.StaticGuard:
		label = "static_guard"
	case demangle.MethodThunk:
		label = "method_thunk"
	case demangle.HexSymbol:
		label = "hex_symbol"
	default:
		label = "unspecified"
	}
	obj["symbol_type"] = label
}

func handleScope(obj map[string]interface{}, sym *demangle.Symbol) {
	switch sym.Scope {
	case demangle.ScopePrivate:
		obj["scope"] = "private"
	case demangle.ScopeProtected:
		obj["scope"] = "protected"
	case demangle.ScopePublic:
		obj["scope"] = "public"
	}
}

func handleDistance(obj map[string]interface{}, sym *demangle.Symbol) {
	switch sym.Distance {
	case demangle.DistanceNear:
		obj["distance"] = "near"
	case demangle.DistanceFar:
		obj["distance"] = "far"
	case demangle.DistanceHuge:
		obj["distance"] = "huge"
	}
}

func handleMethodProperty(obj map[string]interface{}, sym *demangle.Symbol) {
	switch sym.MethodProperty {
	case demangle.MethodOrdinary:
		obj["method_property"] = "ordinary"
	case demangle.MethodStatic:
		obj["method_property"] = "static"
	case demangle.MethodVirtual:
		obj["method_property"] = "virtual"
	case demangle.MethodThunkProp:
		obj["method_property"] = "thunk"
	}
}

// convertNameFragments renders name as a reversed-order namespace list:
// fragments are stored innermost-first (spec.md §3.2), so the outermost
// namespace/class comes first in the returned slice, matching the order a
// qualified name like "std::vector" reads left to right.
func convertNameFragments(name []*demangle.Node) []interface{} {
	out := make([]interface{}, len(name))
	for i, frag := range name {
		f := map[string]interface{}{}
		if frag.SimpleString != "" {
			f["value"] = frag.SimpleString
		}
		if frag.IsCtor {
			f["ctor"] = true
		}
		if frag.IsDtor {
			f["dtor"] = true
		}
		if frag.IsEmbedded {
			f["embedded"] = true
		}
		if len(frag.TemplateParameters) > 0 {
			params := make([]interface{}, len(frag.TemplateParameters))
			for j, p := range frag.TemplateParameters {
				params[j] = convertTemplateParam(p)
			}
			f["template_parameters"] = params
		}
		out[len(name)-1-i] = f
	}
	return out
}

func convertTemplateParam(p demangle.TemplateParameter) map[string]interface{} {
	if p.Type == nil {
		return map[string]interface{}{"constant": p.Constant}
	}
	f := map[string]interface{}{"type": convertType(p.Type)}
	if p.IsPointer {
		f["pointer"] = true
	}
	if p.IsMemberPtr {
		f["member_pointer"] = true
	}
	return f
}

func convertType(t *demangle.Node) map[string]interface{} {
	f := map[string]interface{}{}
	if t.IsConst {
		f["const"] = true
	}
	if t.IsVolatile {
		f["volatile"] = true
	}
	if t.IsPointer {
		f["pointer"] = true
	}
	if t.IsReference {
		f["reference"] = true
	}
	if t.IsRefRef {
		f["rvalue_reference"] = true
	}
	if t.IsArray {
		f["array"] = true
		dims := make([]interface{}, len(t.ArrayDims))
		for i, d := range t.ArrayDims {
			dims[i] = d
		}
		f["dimensions"] = dims
	}
	if t.SimpleString != "" {
		f["simple"] = t.SimpleString
	}
	if len(t.Name) > 0 {
		f["name"] = convertNameFragments(t.Name)
	}
	if t.InnerType != nil {
		f["inner"] = convertType(t.InnerType)
	}
	return f
}

// Raw exposes the decoded tree's structural fields verbatim, with no
// rendering or relabeling. It returns the tree itself; Node carries no json
// tags, so encoding/json writes every field under its Go name, zero-valued
// fields included.
func Raw(sym *demangle.Symbol) *demangle.Node {
	return sym
}

// Minimal projects function-shaped symbols (global functions and class
// methods) to a small field set convenient for tooling; any other symbol
// kind falls back to the Raw projection.
func Minimal(sym *demangle.Symbol, attr demangle.Attributes) interface{} {
	if sym.SymbolType != demangle.GlobalFunction && sym.SymbolType != demangle.ClassMethod {
		return Raw(sym)
	}

	obj := map[string]interface{}{}
	if len(sym.Name) > 0 {
		obj["name"] = demangle.RenderMethodName(sym, attr)
	}
	if sym.Retval != nil {
		if text, err := demangle.Render(sym.Retval, attr); err == nil {
			obj["return_type"] = text
		}
	}
	args := make([]interface{}, 0, len(sym.Args))
	for _, a := range sym.Args {
		if text, err := demangle.Render(a, attr); err == nil {
			args = append(args, text)
		}
	}
	obj["arguments"] = args
	obj["const"] = sym.IsConst
	obj["virtual"] = sym.MethodProperty == demangle.MethodVirtual
	obj["static"] = sym.MethodProperty == demangle.MethodStatic
	return obj
}
