package demangle

import (
	"fmt"
	"strconv"
	"strings"
)

// renderer assembles a C-declarator-style rendering of a decoded Symbol: the
// name sits inside the type expression (do_type and do_name are mutually
// recursive), matching the shape of demangle_text.cpp's Converter. pendingSpace
// implements that file's ConvStream / BREAK manipulator: a one-token lookback
// that inserts a single space only when the next token actually needs one,
// rather than after every keyword unconditionally.
type renderer struct {
	attr Attributes

	sb           strings.Builder
	pendingSpace bool

	retval             *Node
	templateParameters bool
}

// Render converts a decoded Symbol into its human-readable form under the
// given Attributes (spec.md §4.2).
func Render(sym *Symbol, attr Attributes) (string, error) {
	if sym == nil {
		return "", fmt.Errorf("demangle: cannot render nil symbol")
	}
	r := &renderer{attr: attr, templateParameters: true}
	r.renderSymbol(sym)
	return r.sb.String(), nil
}

// RenderClassName renders a symbol's qualified InstanceName, without its
// type/signature (e.g. a vtable's owner or a global object's name). Symbols
// that carry no InstanceName, such as functions and RTTI descriptors, render
// as the empty string.
func RenderClassName(sym *Symbol, attr Attributes) string {
	r := &renderer{attr: attr, templateParameters: true}
	r.doName(sym.InstanceName)
	return r.sb.String()
}

// RenderMethodName renders a ClassMethod's unqualified member name, without
// its argument list or calling convention.
func RenderMethodName(sym *Symbol, attr Attributes) string {
	r := &renderer{attr: attr, templateParameters: true}
	if len(sym.Name) > 0 {
		r.doNameOne(sym.Name[0], sym.Name, 0)
	}
	return r.sb.String()
}

// RenderMethodSignature renders a ClassMethod's full C-declarator signature
// (return type, qualified name, argument list, cv/ref qualifiers).
func RenderMethodSignature(sym *Symbol, attr Attributes) string {
	r := &renderer{attr: attr, templateParameters: true}
	r.doFunction(sym)
	return r.sb.String()
}

func (r *renderer) write(s string) {
	if s == "" {
		return
	}
	if r.pendingSpace {
		r.sb.WriteByte(' ')
		r.pendingSpace = false
	}
	r.sb.WriteString(s)
}

func (r *renderer) brk() { r.pendingSpace = true }

// tsetTemplateParameters temporarily overrides whether template arguments
// are printed (ctors/dtors normally suppress them unless
// CDTOR_CLASS_TEMPLATE_PARAMETERS is set), returning a restore func.
func (r *renderer) tsetTemplateParameters(v bool) func() {
	save := r.templateParameters
	r.templateParameters = v
	return func() { r.templateParameters = save }
}

func (r *renderer) tsetRetval(v *Node) func() {
	save := r.retval
	r.retval = v
	return func() { r.retval = save }
}

// ---- Top-level symbol dispatch --------------------------------------------

func (r *renderer) renderSymbol(sym *Symbol) {
	if r.attr.Has(OUTPUT_EXTERN) && sym.ExternC {
		r.write(`extern "C" `)
	}

	switch sym.SymbolType {
	case VTable:
		r.doName(sym.InstanceName)
		r.write("::`vftable'")
		for _, iface := range sym.ComInterface {
			r.write("{for `")
			r.doName(iface)
			r.write("'}")
		}
		return

	case RTTI, String, HexSymbol:
		r.doName(sym.Name)
		return

	case StaticGuard:
		r.write("`local static guard'")
		if len(sym.N) > 0 {
			r.write("{")
			r.write(strconv.FormatInt(sym.N[0], 10))
			r.write("}")
		}
		return

	case GlobalObject, StaticClassMember:
		if sym.IsConst {
			r.write("const")
			r.brk()
		}
		if sym.IsVolatile {
			r.write("volatile")
			r.brk()
		}
		name := func() { r.doName(sym.InstanceName) }
		r.doType(sym, name)
		return

	case MethodThunk:
		if r.attr.Has(OUTPUT_THUNKS) {
			r.write("[thunk]: ")
		}
		r.doFunction(sym)
		return

	case VtorDisp:
		if r.attr.Has(OUTPUT_THUNKS) && len(sym.N) >= 2 {
			r.write(fmt.Sprintf("[thunk]: `vtordisp{%d,%d}' ", sym.N[0], sym.N[1]))
		}
		r.doFunction(sym)
		return

	case GlobalFunction, ClassMethod:
		r.doFunction(sym)
		return

	default:
		r.doName(sym.Name)
	}
}

// ---- Names -----------------------------------------------------------------

// doName renders a fully qualified name. Fragments are stored
// innermost-fragment-first (spec.md §3.2); the declarator reads
// right-to-left, so the slice is walked from its last entry (the outermost
// namespace/class) down to its first (the member itself).
func (r *renderer) doName(name []*Node) {
	for i := len(name) - 1; i >= 0; i-- {
		if i != len(name)-1 {
			r.write("::")
		}
		r.doNameOne(name[i], name, i)
	}
}

func (r *renderer) doNameOne(frag *Node, name []*Node, idx int) {
	if frag.IsEmbedded {
		r.write("`")
		r.doNameFragment(frag)
		r.write("'")
		return
	}
	if frag.IsCtor || frag.IsDtor {
		if frag.IsDtor {
			r.write("~")
		}
		if idx+1 >= len(name) {
			r.write("<unknown-class>")
			return
		}
		restore := r.tsetTemplateParameters(r.attr.Has(CDTOR_CLASS_TEMPLATE_PARAMETERS))
		r.doNameFragment(name[idx+1])
		restore()
		return
	}
	r.doNameFragment(frag)
}

func (r *renderer) doNameFragment(n *Node) {
	if n.SimpleCode == UNDEFINED {
		if n.SimpleString != "" && !n.IsAnonymous {
			r.write(n.SimpleString)
		}
	} else {
		switch n.SimpleCode {
		case CLASS, STRUCT, UNION, ENUM:
			if !r.attr.Has(DISABLE_PREFIXES) {
				r.write(codeString(n.SimpleCode))
				r.brk()
			}
			r.doName(n.Name)
			return
		case OP_TYPE:
			if r.retval != nil {
				r.write("operator ")
				r.doType(r.retval, nil)
			} else {
				r.write(codeString(n.SimpleCode))
			}
		case RTTI_BASE_CLASS_DESC:
			if len(n.N) >= 4 {
				r.write(fmt.Sprintf("`RTTI Base Class Descriptor at (%d, %d, %d, %d)'",
					n.N[0], n.N[1], n.N[2], n.N[3]))
			} else {
				r.write(codeString(n.SimpleCode))
			}
		default:
			r.write(codeString(n.SimpleCode))
		}
	}

	if n.IsAnonymous {
		if r.attr.Has(OUTPUT_ANONYMOUS_NUMBERS) {
			r.write("`anonymous namespace'{" + n.SimpleString + "}")
		} else {
			r.write("`anonymous namespace'")
		}
	}

	r.doTemplateParams(n.TemplateParameters)
}

// ---- Template arguments ------------------------------------------------------

func (r *renderer) doTemplateParams(params []TemplateParameter) {
	if !r.templateParameters || len(params) == 0 {
		return
	}
	r.write("<")
	for i, p := range params {
		if i != 0 {
			r.write(",")
			if r.attr.Has(SPACE_AFTER_COMMA) {
				r.brk()
			}
		}
		r.doTemplateParam(p)
	}
	if r.attr.Has(SPACE_BETWEEN_TEMPLATE_BRACKETS) {
		r.brk()
	}
	r.write(">")
}

func (r *renderer) doTemplateParam(p TemplateParameter) {
	if p.Type == nil {
		if p.HasConstant {
			r.write(strconv.FormatInt(p.Constant, 10))
		}
		return
	}
	if p.IsPointer {
		if p.Type.SymbolType == ClassMethod || (p.Type.IsFunc && p.Type.IsMember) {
			r.write("{")
			r.doType(p.Type, nil)
			if p.ConstantsCount >= 1 {
				r.write(",")
				r.write(strconv.FormatInt(p.Constants[0], 10))
			}
			if p.ConstantsCount >= 2 {
				r.write(",")
				r.write(strconv.FormatInt(p.Constants[1], 10))
			}
			r.write("}")
		} else {
			r.write("&")
			r.doType(p.Type, nil)
		}
		return
	}
	r.doType(p.Type, nil)
}

// ---- Types -------------------------------------------------------------------

// doType is the declarator-aware entry point: name, if given, is invoked at
// the point in the type expression where the identifier itself belongs
// (spec.md §4.2's "name sits inside the type").
func (r *renderer) doType(t *Node, name func()) {
	if t.IsPointer || t.IsReference || t.IsRefRef {
		r.doPointer(t, name)
		return
	}
	if t.IsArray {
		r.doArray(t, name)
		return
	}
	r.doNameOrPrimitive(t)
	if name != nil {
		r.brk()
		name()
	}
}

func (r *renderer) doNameOrPrimitive(t *Node) {
	switch t.SimpleCode {
	case UNDEFINED:
		if len(t.Name) > 0 {
			r.doName(t.Name)
		} else if t.SimpleString != "" {
			r.write(t.SimpleString)
		}
	case CLASS, STRUCT, UNION, ENUM:
		if !r.attr.Has(DISABLE_PREFIXES) {
			r.write(codeString(t.SimpleCode))
			r.brk()
		}
		r.doName(t.Name)
	case INT8:
		r.write(r.simpleTypeName(t.SimpleCode, "__int8"))
	case INT16:
		r.write(r.simpleTypeName(t.SimpleCode, "__int16"))
	case INT32:
		r.write(r.simpleTypeName(t.SimpleCode, "__int32"))
	case INT64:
		r.write(r.simpleTypeName(t.SimpleCode, "__int64"))
	case UINT8:
		r.write(r.simpleTypeName(t.SimpleCode, "unsigned __int8"))
	case UINT16:
		r.write(r.simpleTypeName(t.SimpleCode, "unsigned __int16"))
	case UINT32:
		r.write(r.simpleTypeName(t.SimpleCode, "unsigned __int32"))
	case UINT64:
		r.write(r.simpleTypeName(t.SimpleCode, "unsigned __int64"))
	default:
		r.write(codeString(t.SimpleCode))
	}
}

func (r *renderer) simpleTypeName(c Code, msName string) string {
	if r.attr.Has(MS_SIMPLE_TYPES) {
		return msName
	}
	return "std::" + codeString(c)
}

func (r *renderer) doPointerSigil(ptr *Node) {
	if ptr.IsPointer {
		if ptr.IsGC {
			r.write("^")
		} else {
			r.write("*")
		}
	}
	if ptr.IsReference {
		if ptr.IsGC {
			r.write("%")
		} else {
			r.write("&")
		}
	}
	if ptr.IsRefRef {
		r.write("&&")
	}
	if r.attr.Has(MS_QUALIFIERS) {
		if ptr.Restrict {
			r.write(" __restrict")
		}
		if ptr.Unaligned {
			r.write(" __unaligned")
		}
	}
	if r.attr.Has(OUTPUT_PTR64) && ptr.PtrBits > 0 {
		r.write(" __ptr64")
	}
}

func (r *renderer) doPointer(t *Node, name func()) {
	inner := t.InnerType
	if inner == nil {
		inner = newNode()
	}

	if inner.IsFunc {
		restore := r.tsetRetval(inner.Retval)
		wrapped := func() {
			r.write("(")
			r.doPointerSigil(t)
			r.doCV(t)
			if name != nil {
				name()
			}
			r.write(")")
			r.doArgs(inner.Args)
			r.doCV(inner)
			r.doRefspec(inner)
		}
		r.doType(r.retval, wrapped)
		restore()
		return
	}

	if inner.IsArray {
		wrapped := func() {
			r.write("(")
			r.doPointerSigil(t)
			r.doCV(t)
			if name != nil {
				name()
			}
			r.write(")")
			for _, dim := range inner.ArrayDims {
				r.write("[" + strconv.FormatUint(dim, 10) + "]")
			}
		}
		r.doType(inner, wrapped)
		return
	}

	r.doType(inner, nil)
	r.doPointerSigil(t)
	r.doCV(t)
	if name != nil {
		name()
	}
}

func (r *renderer) doArray(t *Node, name func()) {
	inner := t.InnerType
	if inner == nil {
		return
	}
	r.doType(inner, nil)
	if name != nil {
		name()
	}
	for _, dim := range t.ArrayDims {
		r.write("[" + strconv.FormatUint(dim, 10) + "]")
	}
}

func (r *renderer) doCV(t *Node) {
	if t.IsConst {
		r.write("const")
		r.brk()
	}
	if t.IsVolatile {
		r.write("volatile")
		r.brk()
	}
}

func (r *renderer) doRefspec(t *Node) {
	if t.IsReference {
		r.write("&")
		r.brk()
	}
	if t.IsRefRef {
		r.write("&&")
		r.brk()
	}
}

// ---- Functions ----------------------------------------------------------------

func (r *renderer) doArgs(args []*Node) {
	r.write("(")
	for i, a := range args {
		if i != 0 {
			r.write(",")
			if r.attr.Has(SPACE_AFTER_COMMA) {
				r.brk()
			}
		}
		r.doType(a, nil)
	}
	r.write(")")
}

// doMethodPrefix emits the access specifier and static/virtual property a
// class method carries (spec.md §8 examples 2 and 4), e.g. "public: " or
// "public: static ". Global functions carry ScopeUnspecified/
// MethodUnspecified and so emit nothing here.
func (r *renderer) doMethodPrefix(fn *Node) {
	switch fn.Scope {
	case ScopePublic:
		r.write("public:")
		r.brk()
	case ScopeProtected:
		r.write("protected:")
		r.brk()
	case ScopePrivate:
		r.write("private:")
		r.brk()
	}
	switch fn.MethodProperty {
	case MethodStatic:
		r.write("static")
		r.brk()
	case MethodVirtual:
		r.write("virtual")
		r.brk()
	}
}

func (r *renderer) doFunction(fn *Node) {
	r.doMethodPrefix(fn)
	name := func() {
		switch fn.SymbolType {
		case GlobalFunction, ClassMethod, VtorDisp, Unspecified:
			if r.attr.Has(OUTPUT_NEAR) && fn.Distance == DistanceNear {
				r.write("near")
				r.brk()
			}
			if fn.CallingConvention != "" {
				r.write(string(fn.CallingConvention))
				r.brk()
			}
			if len(fn.Name) > 0 {
				r.doName(fn.Name)
			}
			r.doArgs(fn.Args)
			r.doCV(fn)
			r.doRefspec(fn)
		}
	}
	restore := r.tsetRetval(fn.Retval)
	if fn.Retval != nil {
		r.doType(fn.Retval, name)
	} else {
		name()
	}
	restore()
}
