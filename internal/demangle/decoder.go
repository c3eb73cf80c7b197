package demangle

import (
	"fmt"
	"io"
)

// decoder is a left-to-right stateful reader over a mangled byte stream. It
// holds the input buffer, a monotonically advancing cursor, the two
// back-reference stacks, and optional debug tracing (spec.md §4.1).
//
// A decoder is not safe for concurrent use; Decode constructs a fresh one
// per call so callers may demangle many symbols concurrently from separate
// goroutines (spec.md §5).
type decoder struct {
	input []byte
	pos   int

	names refStack
	types refStack

	// savedScopes implements the scope-swap semantics across template
	// boundaries (spec.md §4.1.6): entering a template saves and empties
	// both stacks, exiting restores them.
	savedScopes []scope

	debug io.Writer
}

// Decode parses a single mangled name into a Symbol tree, or fails with a
// MalformedSymbol. There is no partial-success result (spec.md §4.1).
func Decode(mangled []byte, debug io.Writer) (*Symbol, error) {
	if len(mangled) == 0 {
		return nil, errEOF(CategoryLiteral)
	}

	d := &decoder{input: mangled, debug: debug}

	switch mangled[0] {
	case '?':
		d.pos = 1
		return d.parseSymbol()
	case '.':
		d.pos = 1
		t := newNode()
		if err := d.parseReturnType(t); err != nil {
			return nil, err
		}
		return t, nil
	case '_':
		return nil, errAt(0, CategoryLiteral, mangled[0])
	default:
		return nil, errAt(0, CategoryLiteral, mangled[0])
	}
}

func (d *decoder) trace(format string, args ...interface{}) {
	if d.debug == nil {
		return
	}
	fmt.Fprintf(d.debug, format+"\n", args...)
}

func (d *decoder) eof() bool { return d.pos >= len(d.input) }

func (d *decoder) cur() (byte, bool) {
	if d.eof() {
		return 0, false
	}
	return d.input[d.pos], true
}

func (d *decoder) peekAt(n int) (byte, bool) {
	p := d.pos + n
	if p < 0 || p >= len(d.input) {
		return 0, false
	}
	return d.input[p], true
}

func (d *decoder) advance() { d.pos++ }

// consume returns the current byte and advances past it.
func (d *decoder) consume() (byte, bool) {
	c, ok := d.cur()
	if !ok {
		return 0, false
	}
	d.advance()
	return c, true
}

func (d *decoder) expect(c byte, category string) error {
	got, ok := d.cur()
	if !ok {
		return errEOF(category)
	}
	if got != c {
		return errAt(d.pos, category, got)
	}
	d.advance()
	return nil
}

func (d *decoder) saveName(n *Node) { d.names.push(n) }
func (d *decoder) saveType(n *Node) { d.types.push(n) }

// pushScope implements the template scope-swap: save and empty both
// reference stacks.
func (d *decoder) pushScope() {
	d.savedScopes = append(d.savedScopes, scope{names: d.names, types: d.types})
	d.names = refStack{}
	d.types = refStack{}
}

func (d *decoder) popScope() {
	n := len(d.savedScopes)
	if n == 0 {
		d.names = refStack{}
		d.types = refStack{}
		return
	}
	saved := d.savedScopes[n-1]
	d.savedScopes = d.savedScopes[:n-1]
	d.names = saved.names
	d.types = saved.types
}

// ---- Top-level symbol -----------------------------------------------------

func (d *decoder) parseSymbol() (*Node, error) {
	t := newNode()

	if err := d.parseFullyQualifiedName(t, false); err != nil {
		return nil, err
	}

	if t.SymbolType == Unspecified {
		if err := d.parseSymbolType(t); err != nil {
			return nil, err
		}
	}

	switch t.SymbolType {
	case VTable:
		t.InstanceName = t.Name
		t.Name = nil
		if err := d.parseMethodStorageClass(t); err != nil {
			return nil, err
		}
		for {
			c, ok := d.cur()
			if !ok {
				return nil, errEOF(CategoryLiteral)
			}
			if c == '@' {
				d.advance()
				break
			}
			n := newNode()
			if err := d.parseFullyQualifiedName(n, false); err != nil {
				return nil, err
			}
			t.ComInterface = append(t.ComInterface, n.Name)
		}
		return t, nil

	case String, RTTI, HexSymbol:
		return t, nil

	case GlobalObject, StaticClassMember:
		t.InstanceName = t.Name
		t.Name = nil
		if err := d.parseType(t, true); err != nil {
			return nil, err
		}
		if err := d.parseStorageClassModifiers(t); err != nil {
			return nil, err
		}
		if err := d.parseStorageClass(t); err != nil {
			return nil, err
		}
		return t, nil

	case VtorDisp:
		n1, err := d.parseNumber()
		if err != nil {
			return nil, err
		}
		n2, err := d.parseNumber()
		if err != nil {
			return nil, err
		}
		t.N = append(t.N, n1, n2)
		return d.finishMethodLike(t)

	case ClassMethod:
		return d.finishMethodLike(t)

	case GlobalFunction:
		if err := d.parseFunction(t); err != nil {
			return nil, err
		}
		return t, nil

	case StaticGuard:
		n, err := d.parseNumber()
		if err != nil {
			return nil, err
		}
		t.N = append(t.N, n)
		return t, nil

	case MethodThunk:
		n, err := d.parseNumber()
		if err != nil {
			return nil, err
		}
		t.N = append(t.N, n)
		c, ok := d.cur()
		if !ok {
			return nil, errEOF(CategorySymbolType)
		}
		if c != 'A' {
			return nil, errAt(d.pos, CategorySymbolType, c)
		}
		d.advance()
		if err := d.parseCallingConvention(t); err != nil {
			return nil, err
		}
		return t, nil

	default:
		return nil, errAt(d.pos, CategorySymbolType, 0)
	}
}

// finishMethodLike implements the thunk-offset / method-storage-class /
// function-signature sequence shared by ClassMethod and (after VtorDisp's
// own offsets) VtorDisp symbols.
func (d *decoder) finishMethodLike(t *Node) (*Node, error) {
	if t.MethodProperty == MethodThunkProp {
		n, err := d.parseNumber()
		if err != nil {
			return nil, err
		}
		t.N = append(t.N, n)
	}
	if t.MethodProperty != MethodStatic {
		if err := d.parseMethodStorageClass(t); err != nil {
			return nil, err
		}
	}
	if err := d.parseFunction(t); err != nil {
		return nil, err
	}
	return t, nil
}

// ---- Fully-qualified names (spec.md §4.1.1) -------------------------------

func (d *decoder) parseFullyQualifiedName(t *Node, forcePush bool) error {
	argno := 0
	for {
		c, ok := d.cur()
		if !ok {
			return errEOF(CategoryLiteral)
		}
		if c == '@' {
			d.advance()
			break
		}

		first := argno == 0
		pushing := !first || forcePush

		switch {
		case c == '?':
			if err := d.advanceCheck(); err != nil {
				return err
			}
			c2, ok := d.cur()
			if !ok {
				return errEOF(CategorySpecialName)
			}
			if c2 == '$' {
				d.advance()
				tt, err := d.parseTemplatedName(t)
				if err != nil {
					return err
				}
				t.Name = append(t.Name, tt)
				if pushing {
					d.saveName(tt)
				}
			} else if first || c2 == '?' {
				tt, err := d.parseSpecialNameCode(t)
				if err != nil {
					return err
				}
				if tt != nil && tt.SymbolType != Unspecified && tt.SymbolType != t.SymbolType && !tt.IsEmbedded {
					*t = *tt
					return nil
				}
			} else if c2 == 'A' {
				ns, err := d.parseAnonymousNamespace()
				if err != nil {
					return err
				}
				t.Name = append(t.Name, ns)
				d.saveName(ns)
			} else {
				num, err := d.parseNumber()
				if err != nil {
					return err
				}
				ns := newNode()
				ns.SimpleString = fmt.Sprintf("`%d'", num)
				t.Name = append(t.Name, ns)
			}

		case c >= '0' && c <= '9':
			d.advance()
			t.Name = append(t.Name, d.names.at(int(c-'0')))

		default:
			lit, err := d.parseLiteral()
			if err != nil {
				return err
			}
			ns := newNode()
			ns.SimpleString = lit
			t.Name = append(t.Name, ns)
			d.saveName(ns)
		}

		argno++
	}

	return nil
}

func (d *decoder) advanceCheck() error {
	d.advance()
	if d.eof() {
		return errEOF(CategorySpecialName)
	}
	return nil
}

func (d *decoder) parseAnonymousNamespace() (*Node, error) {
	// Leading 'A' already confirmed by caller; consume it plus "0x<hex>@".
	d.advance()
	if err := d.expect('0', CategoryAnonymousNamespace); err != nil {
		return nil, err
	}
	if err := d.expect('x', CategoryAnonymousNamespace); err != nil {
		return nil, err
	}
	start := d.pos
	for {
		c, ok := d.cur()
		if !ok {
			return nil, errEOF(CategoryAnonymousNamespace)
		}
		if c == '@' {
			break
		}
		d.advance()
	}
	hexID := string(d.input[start:d.pos])
	d.advance() // consume '@'

	n := newNode()
	n.IsAnonymous = true
	n.SimpleString = hexID
	return n, nil
}

// ---- Special name codes (spec.md §4.1.2 / Table 14 extensions for ctor/
// dtor/operator names) ------------------------------------------------------

func (d *decoder) parseSpecialNameCode(t *Node) (*Node, error) {
	c, ok := d.cur()
	if !ok {
		return nil, errEOF(CategorySpecialName)
	}

	mk := func(code Code) (*Node, error) {
		n := newNode()
		n.SimpleCode = code
		t.Name = append(t.Name, n)
		d.advance()
		return n, nil
	}

	switch c {
	case '0':
		n := newNode()
		n.IsCtor = true
		t.Name = append(t.Name, n)
		d.advance()
		return n, nil
	case '1':
		n := newNode()
		n.IsDtor = true
		t.Name = append(t.Name, n)
		d.advance()
		return n, nil
	case '2':
		return mk(OP_NEW)
	case '3':
		return mk(OP_DELETE)
	case '4':
		return mk(OP_ASSIGN)
	case '5':
		return mk(OP_RSHIFT)
	case '6':
		return mk(OP_LSHIFT)
	case '7':
		return mk(OP_NOT)
	case '8':
		return mk(OP_EQUAL)
	case '9':
		return mk(OP_NOTEQUAL)
	case 'A':
		return mk(OP_INDEX)
	case 'B':
		d.advance()
		tt := newNode()
		tt.SymbolType = Unspecified
		target, err := d.parseTypeNew(true)
		if err != nil {
			return nil, err
		}
		tt.SimpleCode = OP_TYPE
		tt.Retval = target
		t.Name = append(t.Name, tt)
		return tt, nil
	case 'C':
		return mk(OP_INDIRECT)
	case 'D':
		return mk(OP_STAR)
	case 'E':
		return mk(OP_PLUSPLUS)
	case 'F':
		return mk(OP_MINUSMINUS)
	case 'G':
		return mk(OP_MINUS)
	case 'H':
		return mk(OP_PLUS)
	case 'I':
		return mk(OP_AMP)
	case 'J':
		return mk(OP_INDIRECT_METHOD)
	case 'K':
		return mk(OP_DIV)
	case 'L':
		return mk(OP_MOD)
	case 'M':
		return mk(OP_LESS)
	case 'N':
		return mk(OP_LESSEQ)
	case 'O':
		return mk(OP_GREATER)
	case 'P':
		return mk(OP_GREATEREQ)
	case 'Q':
		return mk(OP_COMMA)
	case 'R':
		return mk(OP_CALL)
	case 'S':
		return mk(OP_BNOT)
	case 'T':
		return mk(OP_BXOR)
	case 'U':
		return mk(OP_BOR)
	case 'V':
		return mk(OP_AND)
	case 'W':
		return mk(OP_OR)
	case 'X':
		return mk(OP_STAR_ASSIGN)
	case 'Y':
		return mk(OP_PLUS_ASSIGN)
	case 'Z':
		return mk(OP_MINUS_ASSIGN)
	case '?':
		embedded, err := d.parseSymbol()
		if err != nil {
			return nil, err
		}
		embedded.IsEmbedded = true
		t.Name = append(t.Name, embedded)
		return embedded, nil
	case '_':
		if err := d.advanceCheck(); err != nil {
			return nil, err
		}
		return d.parseExtendedSpecialNameCode(t)
	case '@':
		d.advance()
		n := newNode()
		n.SymbolType = HexSymbol
		lit, err := d.parseLiteral()
		if err != nil {
			return nil, err
		}
		n.SimpleString = lit
		t.Name = append(t.Name, n)
		return n, nil
	default:
		return nil, errAt(d.pos, CategorySpecialName, c)
	}
}

func (d *decoder) parseExtendedSpecialNameCode(t *Node) (*Node, error) {
	c, ok := d.cur()
	if !ok {
		return nil, errEOF(CategorySpecialName)
	}

	mk := func(code Code) (*Node, error) {
		n := newNode()
		n.SimpleCode = code
		t.Name = append(t.Name, n)
		d.advance()
		return n, nil
	}

	switch c {
	case '0':
		return mk(OP_DIV_ASSIGN)
	case '1':
		return mk(OP_MOD_ASSIGN)
	case '2':
		return mk(OP_RSHIFT_ASSIGN)
	case '3':
		return mk(OP_LSHIFT_ASSIGN)
	case '4':
		return mk(OP_AMP_ASSIGN)
	case '5':
		return mk(OP_BOR_ASSIGN)
	case '6':
		return mk(OP_BXOR_ASSIGN)
	case '7':
		return mk(VFTABLE)
	case '8':
		return mk(VBTABLE)
	case '9':
		return mk(VCALL)
	case 'A':
		return mk(TYPEOF)
	case 'B':
		return mk(LOCAL_STATIC_GUARD)
	case 'C':
		d.advance()
		n := newNode()
		if err := d.parseStringLiteral(n); err != nil {
			return nil, err
		}
		t.Name = append(t.Name, n)
		return n, nil
	case 'D':
		return mk(VBASE_DTOR)
	case 'E':
		return mk(VECTOR_DELETING_DTOR)
	case 'F':
		return mk(DEFAULT_CTOR_CLOSURE)
	case 'G':
		return mk(SCALAR_DELETING_DTOR)
	case 'H':
		return mk(VECTOR_CTOR_ITER)
	case 'I':
		return mk(VECTOR_DTOR_ITER)
	case 'J':
		return mk(VECTOR_VBASE_CTOR_ITER)
	case 'K':
		return mk(VIRTUAL_DISPLACEMENT_MAP)
	case 'L':
		return mk(EH_VECTOR_CTOR_ITER)
	case 'M':
		return mk(EH_VECTOR_DTOR_ITER)
	case 'N':
		return mk(EH_VECTOR_VBASE_CTOR_ITER)
	case 'O':
		return mk(COPY_CTOR_CLOSURE)
	case 'P':
		return mk(UDT_RETURNING)
	case 'R':
		d.advance()
		return d.parseRTTI(t)
	case 'S':
		return mk(LOCAL_VFTABLE)
	case 'T':
		return mk(LOCAL_VFTABLE_CTOR_CLOSURE)
	case 'U':
		return mk(OP_NEW_ARRAY)
	case 'V':
		return mk(OP_DELETE_ARRAY)
	case 'X':
		return mk(PLACEMENT_DELETE_CLOSURE)
	case 'Y':
		return mk(PLACEMENT_DELETE_ARRAY_CLOSURE)
	case '_':
		if err := d.advanceCheck(); err != nil {
			return nil, err
		}
		c2, _ := d.cur()
		switch c2 {
		case 'A':
			return mk(MANAGED_VECTOR_CTOR_ITER)
		case 'B':
			return mk(MANAGED_VECTOR_DTOR_ITER)
		case 'C':
			return mk(EH_VECTOR_COPY_CTOR_ITER)
		case 'D':
			return mk(EH_VECTOR_VBASE_COPY_CTOR_ITER)
		case 'E':
			return mk(DYNAMIC_INITIALIZER)
		case 'F':
			return mk(DYNAMIC_ATEXIT_DTOR)
		case 'G':
			return mk(VECTOR_COPY_CTOR_ITER)
		case 'H':
			return mk(VECTOR_VBASE_COPY_CTOR_ITER)
		case 'I':
			return mk(MANAGED_VECTOR_COPY_CTOR_ITER)
		case 'J':
			return mk(LOCAL_STATIC_THREAD_GUARD)
		case 'K':
			return mk(OP_DQUOTE)
		default:
			return nil, errAt(d.pos, CategorySpecialName, c2)
		}
	default:
		return nil, errAt(d.pos, CategorySpecialName, c)
	}
}

func (d *decoder) parseRTTI(t *Node) (*Node, error) {
	c, ok := d.cur()
	if !ok {
		return nil, errEOF(CategoryRTTI)
	}
	switch c {
	case '0':
		d.advance()
		n := newNode()
		n.SimpleCode = RTTI_TYPE_DESC
		n.Retval = newNode()
		if err := d.parseReturnType(n.Retval); err != nil {
			return nil, err
		}
		t.Name = append(t.Name, n)
		return n, nil
	case '1':
		d.advance()
		n := newNode()
		n.SimpleCode = RTTI_BASE_CLASS_DESC
		for i := 0; i < 4; i++ {
			v, err := d.parseNumber()
			if err != nil {
				return nil, err
			}
			n.N = append(n.N, v)
		}
		t.Name = append(t.Name, n)
		return n, nil
	case '2':
		d.advance()
		n := newNode()
		n.SimpleCode = RTTI_BASE_CLASS_ARRAY
		t.Name = append(t.Name, n)
		return n, nil
	case '3':
		d.advance()
		n := newNode()
		n.SimpleCode = RTTI_CLASS_HEIRARCHY_DESC
		t.Name = append(t.Name, n)
		return n, nil
	case '4':
		d.advance()
		n := newNode()
		n.SimpleCode = RTTI_COMPLETE_OBJ_LOCATOR
		t.Name = append(t.Name, n)
		return n, nil
	default:
		return nil, errAt(d.pos, CategoryRTTI, c)
	}
}

// ---- String literals (spec.md §4.1.5) -------------------------------------

var stringSpecials = [10]byte{',', '/', '\\', ':', '.', ' ', '\v', '\n', '\'', '-'}

func (d *decoder) parseStringLiteral(t *Node) error {
	if err := d.expect('@', CategoryStringConstant); err != nil {
		return err
	}
	if err := d.expect('_', CategoryStringConstant); err != nil {
		return err
	}
	c, ok := d.consume()
	if !ok {
		return errEOF(CategoryStringConstant)
	}
	var multibyte bool
	switch c {
	case '0':
	case '1':
		multibyte = true
	default:
		return errAt(d.pos-1, CategoryStringConstant, c)
	}

	realLen, err := d.parseNumber()
	if err != nil {
		return err
	}
	limit := int64(32)
	if multibyte {
		limit = 64
	}
	length := realLen
	if length > limit {
		length = limit
	}
	if _, err := d.parseNumber(); err != nil { // checksum, discarded
		return err
	}

	var raw []byte
	for i := int64(0); i < length; i++ {
		c, ok := d.cur()
		if !ok {
			return errEOF(CategoryStringConstant)
		}
		if c == '@' {
			break
		}
		var v byte
		if c == '?' {
			d.advance()
			c2, ok := d.cur()
			if !ok {
				return errEOF(CategoryStringConstant)
			}
			switch {
			case c2 == '$':
				d.advance()
				hi, ok := d.consume()
				if !ok {
					return errEOF(CategoryHexDigit)
				}
				lo, ok := d.consume()
				if !ok {
					return errEOF(CategoryHexDigit)
				}
				hv, err := hexDigitAP(hi)
				if err != nil {
					return errAt(d.pos-2, CategoryHexDigit, hi)
				}
				lv, err := hexDigitAP(lo)
				if err != nil {
					return errAt(d.pos-1, CategoryHexDigit, lo)
				}
				v = byte(hv*16 + lv)
			case c2 >= '0' && c2 <= '9':
				d.advance()
				v = stringSpecials[c2-'0']
			case (c2 >= 'a' && c2 <= 'z') || (c2 >= 'A' && c2 <= 'Z'):
				d.advance()
				v = c2 + 0x80
			default:
				return errAt(d.pos, CategoryStringConstant, c2)
			}
		} else {
			d.advance()
			v = c
		}
		raw = append(raw, v)
	}

	text := string(raw)
	if multibyte {
		text = utf16BEToUTF8(raw)
	}
	if len(text) > 0 && text[len(text)-1] == 0 {
		text = text[:len(text)-1]
	}

	t.SymbolType = String
	t.IsPointer = true
	t.SimpleString = "`string'"
	elem := newNode()
	if multibyte {
		elem.SimpleCode = CHAR16
	} else {
		elem.SimpleCode = CHAR
	}
	t.InnerType = elem
	if multibyte {
		t.N = append(t.N, realLen/2)
	} else {
		t.N = append(t.N, realLen)
	}
	nameNode := newNode()
	nameNode.SimpleString = text
	t.Name = append(t.Name, nameNode)
	return nil
}

func hexDigitAP(c byte) (int, error) {
	if c < 'A' || c > 'P' {
		return 0, errAt(0, CategoryHexDigit, c)
	}
	return int(c - 'A'), nil
}

func utf16BEToUTF8(raw []byte) string {
	var units []uint16
	for i := 0; i+1 < len(raw); i += 2 {
		units = append(units, uint16(raw[i])<<8|uint16(raw[i+1]))
	}
	runes := make([]rune, 0, len(units))
	for i := 0; i < len(units); i++ {
		u := units[i]
		if u >= 0xD800 && u <= 0xDBFF && i+1 < len(units) {
			lo := units[i+1]
			if lo >= 0xDC00 && lo <= 0xDFFF {
				r := (rune(u-0xD800)<<10 | rune(lo-0xDC00)) + 0x10000
				runes = append(runes, r)
				i++
				continue
			}
		}
		runes = append(runes, rune(u))
	}
	return string(runes)
}

// ---- Symbol-type code (spec.md §4.1.2, Table 14) --------------------------

func (d *decoder) parseSymbolType(t *Node) error {
	c, ok := d.consume()
	if !ok {
		return errEOF(CategorySymbolType)
	}

	method := func(scope Scope, prop MethodProperty, dist Distance) error {
		t.SymbolType = ClassMethod
		t.IsFunc = true
		t.IsMember = true
		t.Scope = scope
		t.MethodProperty = prop
		t.Distance = dist
		return nil
	}
	member := func(scope Scope, prop MethodProperty) error {
		t.IsMember = true
		t.SymbolType = StaticClassMember
		t.Scope = scope
		t.MethodProperty = prop
		return nil
	}

	switch c {
	case '0':
		return member(ScopePrivate, MethodStatic)
	case '1':
		return member(ScopeProtected, MethodStatic)
	case '2':
		return member(ScopePublic, MethodStatic)
	case '3', '4':
		t.SymbolType = GlobalObject
		return nil
	case '5':
		t.SymbolType = StaticGuard
		return nil
	case '6', '7':
		t.SymbolType = VTable
		return nil
	case '8', '9':
		t.SymbolType = RTTI
		return nil
	case 'A':
		return method(ScopePrivate, MethodOrdinary, DistanceNear)
	case 'B':
		return method(ScopePrivate, MethodOrdinary, DistanceFar)
	case 'C':
		return method(ScopePrivate, MethodStatic, DistanceNear)
	case 'D':
		return method(ScopePrivate, MethodStatic, DistanceFar)
	case 'E':
		return method(ScopePrivate, MethodVirtual, DistanceNear)
	case 'F':
		return method(ScopePrivate, MethodVirtual, DistanceFar)
	case 'G':
		return method(ScopePrivate, MethodThunkProp, DistanceNear)
	case 'H':
		return method(ScopePrivate, MethodThunkProp, DistanceFar)
	case 'I':
		return method(ScopeProtected, MethodOrdinary, DistanceNear)
	case 'J':
		return method(ScopeProtected, MethodOrdinary, DistanceFar)
	case 'K':
		return method(ScopeProtected, MethodStatic, DistanceNear)
	case 'L':
		return method(ScopeProtected, MethodStatic, DistanceFar)
	case 'M':
		return method(ScopeProtected, MethodVirtual, DistanceNear)
	case 'N':
		return method(ScopeProtected, MethodVirtual, DistanceFar)
	case 'O':
		return method(ScopeProtected, MethodThunkProp, DistanceNear)
	case 'P':
		return method(ScopeProtected, MethodThunkProp, DistanceFar)
	case 'Q':
		return method(ScopePublic, MethodOrdinary, DistanceNear)
	case 'R':
		return method(ScopePublic, MethodOrdinary, DistanceFar)
	case 'S':
		return method(ScopePublic, MethodStatic, DistanceNear)
	case 'T':
		return method(ScopePublic, MethodStatic, DistanceFar)
	case 'U':
		return method(ScopePublic, MethodVirtual, DistanceNear)
	case 'V':
		return method(ScopePublic, MethodVirtual, DistanceFar)
	case 'W':
		return method(ScopePublic, MethodThunkProp, DistanceNear)
	case 'X':
		return method(ScopePublic, MethodThunkProp, DistanceFar)
	case 'Y':
		t.SymbolType = GlobalFunction
		t.IsFunc = true
		t.Distance = DistanceNear
		return nil
	case 'Z':
		t.SymbolType = GlobalFunction
		t.IsFunc = true
		t.Distance = DistanceFar
		return nil
	case '$':
		c2, ok := d.consume()
		if !ok {
			return errEOF(CategorySymbolType)
		}
		switch c2 {
		case '0':
			_ = method(ScopePrivate, MethodThunkProp, DistanceNear)
		case '1':
			_ = method(ScopePrivate, MethodThunkProp, DistanceFar)
		case '2':
			_ = method(ScopeProtected, MethodThunkProp, DistanceNear)
		case '3':
			_ = method(ScopeProtected, MethodThunkProp, DistanceFar)
		case '4':
			_ = method(ScopePublic, MethodThunkProp, DistanceNear)
		case '5':
			_ = method(ScopePublic, MethodThunkProp, DistanceFar)
		case 'B':
			t.MethodProperty = MethodThunkProp
			t.SymbolType = MethodThunk
			return nil
		case '$':
			c3, ok := d.consume()
			if !ok {
				return errEOF(CategorySymbolType)
			}
			switch c3 {
			case 'J':
				t.ExternC = true
				n, err := d.parseNumber()
				if err != nil {
					return err
				}
				for i := int64(0); i < n-1; i++ {
					d.advance()
				}
			case 'F', 'H':
				// No difference in rendered output.
			default:
				return errAt(d.pos-1, CategorySymbolType, c3)
			}
			return d.parseSymbolType(t)
		default:
			return errAt(d.pos-1, CategorySymbolType, c2)
		}
		t.SymbolType = VtorDisp
		return nil
	default:
		return errAt(d.pos-1, CategorySymbolType, c)
	}
}

// ---- Storage classes (spec.md §4.1.3, Tables 10/12/15) --------------------

func (d *decoder) parseStorageClassModifiers(t *Node) error {
	for {
		c, ok := d.cur()
		if !ok {
			return nil
		}
		switch c {
		case 'E':
			t.PtrBits++
			if t.PtrBits > 2 {
				t.PtrBits = 2
			}
		case 'F':
			t.Unaligned = true
		case 'G':
			t.IsReference = true
		case 'H':
			t.IsRefRef = true
		case 'I':
			t.Restrict = true
		default:
			return nil
		}
		d.advance()
	}
}

func (d *decoder) parseManagedProperties(t *Node) (cliArray int, err error) {
	c, ok := d.cur()
	if !ok || c != '$' {
		return 0, nil
	}
	if err := d.advanceCheck(); err != nil {
		return 0, err
	}
	c2, _ := d.cur()
	switch c2 {
	case 'A':
		t.IsGC = true
	case 'B':
		t.IsPin = true
	case '0', '1', '2':
		hi, err := xdigit(c2)
		if err != nil {
			return 0, errAt(d.pos, CategoryHexDigit, c2)
		}
		if err := d.advanceCheck(); err != nil {
			return 0, err
		}
		c3, _ := d.cur()
		lo, err := xdigit(c3)
		if err != nil {
			return 0, errAt(d.pos, CategoryHexDigit, c3)
		}
		val := hi*16 + lo
		if val == 0 {
			cliArray = -1
		} else {
			cliArray = val
		}
	default:
		return 0, errAt(d.pos, "managed C++ property", c2)
	}
	d.advance()
	return cliArray, nil
}

func xdigit(c byte) (int, error) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), nil
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, nil
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, nil
	default:
		return 0, errAt(0, CategoryHexDigit, c)
	}
}

func (d *decoder) parseStorageClass(t *Node) error {
	c, ok := d.cur()
	if !ok {
		return errEOF(CategoryStorageClass)
	}

	set := func(dist Distance, isConst, isVolatile, isFunc, isBased, isMember bool) error {
		t.Distance = dist
		t.IsConst = isConst
		t.IsVolatile = isVolatile
		t.IsFunc = isFunc
		t.IsMember = isMember
		t.IsBased = isBased
		d.advance()
		return nil
	}

	switch c {
	case 'A':
		return set(DistanceNear, false, false, false, false, false)
	case 'B':
		return set(DistanceNear, true, false, false, false, false)
	case 'C':
		return set(DistanceNear, false, true, false, false, false)
	case 'D':
		return set(DistanceNear, true, true, false, false, false)
	case 'G':
		return set(DistanceNear, false, true, false, false, false)
	case 'H':
		return set(DistanceNear, true, true, false, false, false)
	case 'J':
		return set(DistanceNear, true, false, false, false, false)
	case 'K':
		return set(DistanceNear, false, true, false, false, false)
	case 'L':
		return set(DistanceNear, true, true, false, false, false)
	case 'M':
		return set(DistanceNear, false, false, false, true, false)
	case 'N':
		return set(DistanceNear, true, false, false, true, false)
	case 'O':
		return set(DistanceNear, false, true, false, true, false)
	case 'P':
		return set(DistanceNear, true, true, false, true, false)
	case 'Q':
		return set(DistanceNear, false, false, false, false, true)
	case 'R':
		return set(DistanceNear, true, false, false, false, true)
	case 'S':
		return set(DistanceNear, false, true, false, false, true)
	case 'T':
		return set(DistanceNear, true, true, false, false, true)
	case 'U':
		return set(DistanceFar, false, false, false, false, true)
	case 'V':
		return set(DistanceFar, true, false, false, false, true)
	case 'W':
		return set(DistanceFar, false, true, false, false, true)
	case 'X':
		return set(DistanceFar, true, true, false, false, true)
	case 'Y':
		return set(DistanceFar, false, false, false, false, true)
	case 'Z':
		return set(DistanceFar, true, false, false, false, true)
	case '0':
		return set(DistanceFar, false, true, false, false, true)
	case '1':
		return set(DistanceFar, true, true, false, false, true)
	case '2':
		return set(DistanceNear, false, false, false, true, true)
	case '3':
		return set(DistanceNear, true, false, false, true, true)
	case '4':
		return set(DistanceNear, false, true, false, true, true)
	case '5':
		return set(DistanceNear, true, true, false, true, true)
	case '6':
		return set(DistanceNear, false, false, true, false, false)
	case '7':
		return set(DistanceFar, false, false, true, false, false)
	case '8':
		return set(DistanceNear, false, false, true, false, true)
	case '9':
		return set(DistanceFar, false, false, true, false, true)
	case '_':
		if err := d.advanceCheck(); err != nil {
			return err
		}
		c2, _ := d.cur()
		switch c2 {
		case 'A':
			return set(DistanceNear, false, false, true, true, false)
		case 'B':
			return set(DistanceFar, false, false, true, true, false)
		case 'C':
			return set(DistanceNear, false, false, true, true, true)
		case 'D':
			return set(DistanceFar, false, false, true, true, true)
		default:
			return errAt(d.pos, CategoryStorageClass, c2)
		}
	default:
		return errAt(d.pos, CategoryStorageClass, c)
	}
}

func (d *decoder) parseReturnStorageClass(t *Node) error {
	c, ok := d.cur()
	if !ok || c != '?' {
		t.IsConst = false
		t.IsVolatile = false
		return nil
	}
	if err := d.advanceCheck(); err != nil {
		return err
	}
	c2, _ := d.cur()
	switch c2 {
	case 'A':
		t.IsConst, t.IsVolatile = false, false
	case 'B':
		t.IsConst, t.IsVolatile = true, false
	case 'C':
		t.IsConst, t.IsVolatile = false, true
	case 'D':
		t.IsConst, t.IsVolatile = true, true
	default:
		return errAt(d.pos, CategoryReturnStorageClass, c2)
	}
	d.advance()
	return nil
}

func (d *decoder) parseMethodStorageClass(t *Node) error {
	if err := d.parseStorageClassModifiers(t); err != nil {
		return err
	}
	if _, err := d.parseManagedProperties(t); err != nil {
		return err
	}
	c, ok := d.cur()
	if !ok {
		return errEOF(CategoryMethodStorageClass)
	}
	switch c {
	case 'A':
		t.IsConst, t.IsVolatile = false, false
	case 'B':
		t.IsConst, t.IsVolatile = true, false
	case 'C':
		t.IsConst, t.IsVolatile = false, true
	case 'D':
		t.IsConst, t.IsVolatile = true, true
	default:
		return errAt(d.pos, CategoryMethodStorageClass, c)
	}
	d.advance()
	return nil
}

// ---- Calling convention (part of spec.md §4.1.4) --------------------------

func (d *decoder) parseCallingConvention(t *Node) error {
	c, ok := d.consume()
	if !ok {
		return errEOF(CategoryCallingConvention)
	}
	set := func(exported bool, cc CallingConvention) error {
		t.IsExported = exported
		t.CallingConvention = cc
		return nil
	}
	switch c {
	case 'A':
		return set(false, CConvCdecl)
	case 'B':
		return set(true, CConvCdecl)
	case 'C':
		return set(false, CConvPascal)
	case 'D':
		return set(true, CConvPascal)
	case 'E':
		return set(false, CConvThiscall)
	case 'F':
		return set(true, CConvThiscall)
	case 'G':
		return set(false, CConvStdcall)
	case 'H':
		return set(true, CConvStdcall)
	case 'I':
		return set(false, CConvFastcall)
	case 'J':
		return set(true, CConvFastcall)
	case 'K':
		return set(false, CConvUnknown)
	case 'L':
		return set(true, CConvUnknown)
	case 'M':
		return set(false, CConvClrcall)
	default:
		return errAt(d.pos-1, CategoryCallingConvention, c)
	}
}

// ---- Return type / function signature (spec.md §4.1.4) --------------------

func (d *decoder) parseReturnType(t *Node) error {
	c, ok := d.cur()
	if ok && c == '@' {
		d.advance()
		return nil
	}
	if err := d.parseReturnStorageClass(t); err != nil {
		return err
	}
	return d.parseType(t, false)
}

func (d *decoder) parseFunction(t *Node) error {
	if t.SymbolType == Unspecified && t.IsFunc && t.IsMember {
		tmp := newNode()
		if err := d.parseStorageClassModifiers(tmp); err != nil {
			return err
		}
		if err := d.parseStorageClass(tmp); err != nil {
			return err
		}
		t.IsConst = tmp.IsConst
		t.IsVolatile = tmp.IsVolatile
		t.PtrBits += tmp.PtrBits
		t.Unaligned = tmp.Unaligned
		t.Restrict = tmp.Restrict
	}

	if err := d.parseCallingConvention(t); err != nil {
		return err
	}

	t.Retval = newNode()
	if err := d.parseReturnType(t.Retval); err != nil {
		return err
	}

	argno := 0
	for {
		c, ok := d.cur()
		if ok && argno > 0 && c == '@' {
			d.advance()
			break
		}
		arg, err := d.parseTypeNew(true)
		if err != nil {
			return err
		}
		t.Args = append(t.Args, arg)
		argno++
		if argno == 1 && arg.SimpleCode == VOID {
			break
		}
		if arg.SimpleCode == ELLIPSIS {
			break
		}
	}

	if c, ok := d.cur(); ok && c == 'Z' {
		d.advance()
	}

	return nil
}

// ---- Types (spec.md §4.1.8) -----------------------------------------------

func (d *decoder) parseTypeNew(push bool) (*Node, error) {
	t := newNode()
	if err := d.parseType(t, push); err != nil {
		return nil, err
	}
	return t, nil
}

// parseType fills in t (or, for primitive/back-reference forms, overwrites
// it) according to the type grammar.
func (d *decoder) parseType(t *Node, push bool) error {
	if t == nil {
		t = newNode()
	}
	c, ok := d.cur()
	if !ok {
		return errEOF(CategoryType)
	}

	simple := func(code Code) error {
		t.SimpleCode = code
		d.advance()
		return nil
	}

	switch c {
	case 'A':
		d.advance()
		t.IsReference = true
		return d.parsePointerType(t, push)
	case 'B':
		d.advance()
		t.IsReference = true
		t.IsVolatile = true
		return d.parsePointerType(t, push)
	case 'C':
		return simple(SIGNED_CHAR)
	case 'D':
		return simple(CHAR)
	case 'E':
		return simple(UNSIGNED_CHAR)
	case 'F':
		return simple(SHORT)
	case 'G':
		return simple(UNSIGNED_SHORT)
	case 'H':
		return simple(INT)
	case 'I':
		return simple(UNSIGNED_INT)
	case 'J':
		return simple(LONG)
	case 'K':
		return simple(UNSIGNED_LONG)
	case 'M':
		return simple(FLOAT)
	case 'N':
		return simple(DOUBLE)
	case 'O':
		return simple(LONG_DOUBLE)
	case 'P':
		d.advance()
		t.IsPointer = true
		return d.parsePointerType(t, push)
	case 'Q':
		d.advance()
		t.IsPointer = true
		t.IsConst = true
		return d.parsePointerType(t, push)
	case 'R':
		d.advance()
		t.IsPointer = true
		t.IsVolatile = true
		return d.parsePointerType(t, push)
	case 'S':
		d.advance()
		t.IsPointer = true
		t.IsConst = true
		t.IsVolatile = true
		return d.parsePointerType(t, push)
	case 'T':
		d.advance()
		t.SimpleCode = UNION
		if err := d.parseFullyQualifiedName(t, false); err != nil {
			return err
		}
		if push {
			d.saveType(t)
		}
		return nil
	case 'U':
		d.advance()
		t.SimpleCode = STRUCT
		if err := d.parseFullyQualifiedName(t, false); err != nil {
			return err
		}
		if push {
			d.saveType(t)
		}
		return nil
	case 'V':
		d.advance()
		t.SimpleCode = CLASS
		if err := d.parseFullyQualifiedName(t, false); err != nil {
			return err
		}
		if push {
			d.saveType(t)
		}
		return nil
	case 'W':
		d.advance()
		t.SimpleCode = ENUM
		if err := d.parseRealEnumType(t); err != nil {
			return err
		}
		if err := d.parseFullyQualifiedName(t, false); err != nil {
			return err
		}
		if push {
			d.saveType(t)
		}
		return nil
	case 'X':
		return simple(VOID)
	case 'Y':
		d.advance()
		if err := d.parseArrayType(t); err != nil {
			return err
		}
		if push {
			d.saveType(t)
		}
		return nil
	case 'Z':
		return simple(ELLIPSIS)
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		d.advance()
		*t = *d.types.at(int(c - '0'))
		return nil
	case '_':
		if err := d.advanceCheck(); err != nil {
			return err
		}
		c2, _ := d.cur()
		switch c2 {
		case 'D':
			return simple(INT8)
		case 'E':
			return simple(UINT8)
		case 'F':
			return simple(INT16)
		case 'G':
			return simple(UINT16)
		case 'H':
			return simple(INT32)
		case 'I':
			return simple(UINT32)
		case 'J':
			return simple(INT64)
		case 'K':
			return simple(UINT64)
		case 'L':
			return simple(INT128)
		case 'M':
			return simple(UINT128)
		case 'N':
			return simple(BOOL)
		case 'S':
			return simple(CHAR16)
		case 'U':
			return simple(CHAR32)
		case 'W':
			return simple(WCHAR)
		default:
			return errAt(d.pos, "extended '_' type", c2)
		}
	case '?':
		d.advance()
		if err := d.parseStorageClass(t); err != nil {
			return err
		}
		if err := d.parseType(t, push); err != nil {
			return err
		}
		return nil
	case '$':
		if err := d.advanceCheck(); err != nil {
			return err
		}
		c2, _ := d.cur()
		if c2 != '$' {
			return errAt(d.pos, CategoryType, c2)
		}
		if err := d.advanceCheck(); err != nil {
			return err
		}
		c3, _ := d.cur()
		switch c3 {
		case 'Q':
			d.advance()
			t.IsRefRef = true
			return d.parsePointerType(t, push)
		case 'R':
			d.advance()
			t.IsVolatile = true
			t.IsRefRef = true
			return d.parsePointerType(t, push)
		case 'A':
			d.advance()
			t.IsFunc = true
			return d.parsePointerType(t, push)
		case 'B':
			d.advance()
			return d.parseType(t, push)
		case 'C':
			d.advance()
			if err := d.parseStorageClass(t); err != nil {
				return err
			}
			return d.parseType(t, push)
		case 'T':
			d.advance()
			nullptrType := newNode()
			nullptrType.SimpleString = "nullptr_t"
			stdNode := newNode()
			stdNode.SimpleString = "std"
			t.Name = append(t.Name, nullptrType, stdNode)
			return nil
		case 'V', 'Z':
			d.advance()
			t.SimpleCode = VOID
			return nil
		default:
			return errAt(d.pos, "extended '$$' type", c3)
		}
	default:
		return errAt(d.pos, CategoryType, c)
	}
}

func (d *decoder) parseRealEnumType(t *Node) error {
	c, ok := d.cur()
	if !ok {
		return errEOF(CategoryType)
	}
	rt := newNode()
	var code Code
	switch c {
	case '0':
		code = SIGNED_CHAR
	case '1':
		code = UNSIGNED_CHAR
	case '2':
		code = SHORT
	case '3':
		code = UNSIGNED_SHORT
	case '4':
		code = INT
	case '5':
		code = UNSIGNED_INT
	case '6':
		code = LONG
	case '7':
		code = UNSIGNED_LONG
	default:
		return errAt(d.pos, "enum real type", c)
	}
	rt.SimpleCode = code
	d.advance()
	t.EnumRealType = rt
	return nil
}

func (d *decoder) parseArrayType(t *Node) error {
	t.IsArray = true
	numDim, err := d.parseNumber()
	if err != nil {
		return err
	}
	for i := int64(0); i < numDim; i++ {
		dim, err := d.parseNumber()
		if err != nil {
			return err
		}
		t.ArrayDims = append(t.ArrayDims, uint64(dim))
	}
	return d.parseType(t, false)
}

// parsePointerType handles the pointee's storage class, managed properties,
// and the pointee type itself, folding in the function-pointer special case
// (spec.md §4.1.8).
func (d *decoder) parsePointerType(t *Node, push bool) error {
	if err := d.parseStorageClassModifiers(t); err != nil {
		return err
	}
	cliArray, err := d.parseManagedProperties(t)
	if err != nil {
		return err
	}

	inner := newNode()
	if err := d.parseStorageClass(inner); err != nil {
		return err
	}
	t.InnerType = inner

	if inner.IsMember && !inner.IsBased {
		if err := d.parseFullyQualifiedName(t, false); err != nil {
			return err
		}
	}

	if inner.IsFunc {
		if err := d.parseFunction(inner); err != nil {
			return err
		}
	} else {
		if err := d.parseType(inner, true); err != nil {
			return err
		}
	}
	t.InnerType = inner

	if cliArray != 0 {
		at := newNode()
		arrName := newNode()
		arrName.SimpleString = "array"
		cliName := newNode()
		cliName.SimpleString = "cli"
		at.Name = append(at.Name, arrName, cliName)
		arrName.TemplateParameters = append(arrName.TemplateParameters, TemplateParameter{Type: t.InnerType})
		if cliArray > 1 {
			arrName.TemplateParameters = append(arrName.TemplateParameters, TemplateParameter{HasConstant: true, Constant: int64(cliArray)})
		}
		t.InnerType = at
		t.IsGC = true
	}

	if push {
		d.saveType(t)
	}
	return nil
}

// ---- Templated names (spec.md §4.1.6) -------------------------------------

func (d *decoder) parseTemplatedName(parent *Node) (*Node, error) {
	d.pushScope()
	defer d.popScope()

	c, ok := d.cur()
	if !ok {
		return nil, errEOF(CategoryTemplateArgument)
	}

	var templated *Node
	if c == '?' {
		d.advance()
		c2, ok := d.cur()
		if !ok {
			return nil, errEOF(CategoryTemplateArgument)
		}
		if c2 == '$' {
			d.advance()
			inner, err := d.parseTemplatedName(parent)
			if err != nil {
				return nil, err
			}
			templated = inner
			d.saveName(templated)
		} else {
			n, err := d.parseSpecialNameCode(newNode())
			if err != nil {
				return nil, err
			}
			templated = n
		}
	} else {
		lit, err := d.parseLiteral()
		if err != nil {
			return nil, err
		}
		templated = newNode()
		templated.SimpleString = lit
		d.saveName(templated)
	}

	for {
		c, ok := d.cur()
		if !ok {
			return nil, errEOF(CategoryTemplateArgument)
		}
		if c == '@' {
			break
		}

		param, err := d.parseTemplateParameter()
		if err != nil {
			return nil, err
		}
		templated.TemplateParameters = append(templated.TemplateParameters, param)
	}
	d.advance() // consume terminating '@'

	return templated, nil
}

func (d *decoder) parseTemplateParameter() (TemplateParameter, error) {
	c, ok := d.cur()
	if !ok {
		return TemplateParameter{}, errEOF(CategoryTemplateArgument)
	}
	if c != '$' {
		typ, err := d.parseTypeNew(true)
		if err != nil {
			return TemplateParameter{}, err
		}
		return TemplateParameter{Type: typ}, nil
	}

	if err := d.advanceCheck(); err != nil {
		return TemplateParameter{}, err
	}
	c2, _ := d.cur()
	switch c2 {
	case '0':
		d.advance()
		v, err := d.parseNumber()
		if err != nil {
			return TemplateParameter{}, err
		}
		return TemplateParameter{HasConstant: true, Constant: v}, nil
	case '1':
		d.advance()
		sym, err := d.parseSymbol()
		if err != nil {
			return TemplateParameter{}, err
		}
		return TemplateParameter{Type: sym, IsPointer: true}, nil
	case 'H':
		d.advance()
		sym, err := d.parseSymbol()
		if err != nil {
			return TemplateParameter{}, err
		}
		n, err := d.parseNumber()
		if err != nil {
			return TemplateParameter{}, err
		}
		return TemplateParameter{Type: sym, IsPointer: true, IsFunctionPtr: true, Constants: [2]int64{n, 0}, ConstantsCount: 1}, nil
	case 'I':
		d.advance()
		sym, err := d.parseSymbol()
		if err != nil {
			return TemplateParameter{}, err
		}
		n1, err := d.parseNumber()
		if err != nil {
			return TemplateParameter{}, err
		}
		n2, err := d.parseNumber()
		if err != nil {
			return TemplateParameter{}, err
		}
		return TemplateParameter{Type: sym, IsPointer: true, IsMemberPtr: true, Constants: [2]int64{n1, n2}, ConstantsCount: 2}, nil
	case 'S':
		d.advance()
		return TemplateParameter{}, nil
	case '$':
		// Any number of extra '$' before the real '$$' type code.
		for {
			d.advance()
			cn, ok := d.cur()
			if !ok {
				return TemplateParameter{}, errEOF(CategoryTemplateArgument)
			}
			if cn != '$' {
				break
			}
		}
		d.pos -= 2
		typ, err := d.parseTypeNew(false)
		if err != nil {
			return TemplateParameter{}, err
		}
		return TemplateParameter{Type: typ}, nil
	default:
		return TemplateParameter{}, errAt(d.pos, CategoryTemplateArgument, c2)
	}
}

// ---- MS numbers (spec.md §4.1.7) ------------------------------------------

func (d *decoder) parseNumber() (int64, error) {
	negative := false
	if c, ok := d.cur(); ok && c == '?' {
		d.advance()
		negative = true
	}

	c, ok := d.cur()
	if !ok {
		return 0, errEOF(CategoryNumber)
	}

	if c >= '0' && c <= '9' {
		d.advance()
		v := int64(c-'0') + 1
		if negative {
			v = -v
		}
		return v, nil
	}

	var val int64
	digits := 0
	for {
		c, ok := d.cur()
		if !ok {
			return 0, errEOF(CategoryNumber)
		}
		if c == '@' {
			d.advance()
			break
		}
		if c < 'A' || c > 'P' {
			return 0, errAt(d.pos, CategoryNumber, c)
		}
		val = val*16 + int64(c-'A')
		digits++
		if digits > 16 {
			return 0, errAt(d.pos, CategoryNumber, c)
		}
		d.advance()
	}
	if digits == 0 {
		return 0, errAt(d.pos-1, CategoryNumber, '@')
	}
	if negative {
		val = -val
	}
	return val, nil
}

// ---- Literal identifiers ---------------------------------------------------

// literalByteOK mirrors spec.md §6's input byte set for literal runs.
func literalByteOK(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '_' || c == '$' || c == '<' || c == '>' || c == '-' || c == '.':
		return true
	default:
		return false
	}
}

func (d *decoder) parseLiteral() (string, error) {
	start := d.pos
	for {
		c, ok := d.cur()
		if !ok {
			return "", errEOF(CategoryLiteral)
		}
		if c == '@' {
			break
		}
		if !literalByteOK(c) {
			return "", errAt(d.pos, CategoryLiteral, c)
		}
		d.advance()
	}
	if d.pos == start {
		return "", errAt(d.pos, CategoryLiteral, 0)
	}
	lit := string(d.input[start:d.pos])
	d.advance() // consume terminating '@'
	return lit, nil
}
