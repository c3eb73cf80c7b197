package demangle

// Code is a closed set of tags for primitive types, class/struct/union/enum
// keywords, operator names, and MSVC compiler-generated entity kinds. It
// keeps the enum and its canonical string table adjacent so the two can
// never drift apart (see codeTable below).
type Code int

const (
	UNDEFINED Code = iota

	BOOL
	SIGNED_CHAR
	CHAR
	UNSIGNED_CHAR
	SHORT
	UNSIGNED_SHORT
	INT
	UNSIGNED_INT
	LONG
	UNSIGNED_LONG
	FLOAT
	DOUBLE
	LONG_DOUBLE

	INT8
	UINT8
	INT16
	UINT16
	INT32
	UINT32
	INT64
	UINT64
	CHAR16
	CHAR32
	WCHAR

	INT128
	UINT128

	VOID
	ELLIPSIS

	UNION
	CLASS
	STRUCT
	ENUM

	CTOR
	DTOR
	OP_NEW
	OP_DELETE
	OP_ASSIGN
	OP_RSHIFT
	OP_LSHIFT
	OP_NOT
	OP_EQUAL
	OP_NOTEQUAL
	OP_INDEX
	OP_TYPE
	OP_INDIRECT
	OP_STAR
	OP_PLUSPLUS
	OP_MINUSMINUS
	OP_MINUS
	OP_PLUS
	OP_AMP
	OP_INDIRECT_METHOD
	OP_DIV
	OP_MOD
	OP_LESS
	OP_LESSEQ
	OP_GREATER
	OP_GREATEREQ
	OP_COMMA
	OP_CALL
	OP_BNOT
	OP_BXOR
	OP_BOR
	OP_AND
	OP_OR
	OP_STAR_ASSIGN
	OP_PLUS_ASSIGN
	OP_MINUS_ASSIGN
	OP_DIV_ASSIGN
	OP_MOD_ASSIGN
	OP_RSHIFT_ASSIGN
	OP_LSHIFT_ASSIGN
	OP_AMP_ASSIGN
	OP_BOR_ASSIGN
	OP_BXOR_ASSIGN

	VFTABLE
	VBTABLE
	VCALL
	TYPEOF
	LOCAL_STATIC_GUARD
	VBASE_DTOR
	VECTOR_DELETING_DTOR
	DEFAULT_CTOR_CLOSURE
	SCALAR_DELETING_DTOR
	VECTOR_CTOR_ITER
	VECTOR_DTOR_ITER
	VECTOR_VBASE_CTOR_ITER
	VIRTUAL_DISPLACEMENT_MAP
	EH_VECTOR_CTOR_ITER
	EH_VECTOR_DTOR_ITER
	EH_VECTOR_VBASE_CTOR_ITER
	COPY_CTOR_CLOSURE
	UDT_RETURNING
	LOCAL_VFTABLE
	LOCAL_VFTABLE_CTOR_CLOSURE
	OP_NEW_ARRAY
	OP_DELETE_ARRAY
	PLACEMENT_DELETE_CLOSURE
	PLACEMENT_DELETE_ARRAY_CLOSURE
	MANAGED_VECTOR_CTOR_ITER
	MANAGED_VECTOR_DTOR_ITER
	EH_VECTOR_COPY_CTOR_ITER
	EH_VECTOR_VBASE_COPY_CTOR_ITER
	DYNAMIC_INITIALIZER
	DYNAMIC_ATEXIT_DTOR
	VECTOR_COPY_CTOR_ITER
	VECTOR_VBASE_COPY_CTOR_ITER
	MANAGED_VECTOR_COPY_CTOR_ITER
	LOCAL_STATIC_THREAD_GUARD
	OP_DQUOTE
	OP_SPACESHIP
	OP_CO_AWAIT

	RTTI_TYPE_DESC
	RTTI_BASE_CLASS_DESC
	RTTI_BASE_CLASS_ARRAY
	RTTI_CLASS_HEIRARCHY_DESC
	RTTI_COMPLETE_OBJ_LOCATOR

	codeCount
)

// codeTable is the single source of truth for Code <-> canonical text.
// Index i must hold the entry for Code(i); codeString and the enum above
// are kept adjacent on purpose (see DESIGN NOTES in SPEC_FULL.md §9).
var codeTable = [codeCount]string{
	UNDEFINED: "",

	BOOL:           "bool",
	SIGNED_CHAR:    "signed char",
	CHAR:           "char",
	UNSIGNED_CHAR:  "unsigned char",
	SHORT:          "short",
	UNSIGNED_SHORT: "unsigned short",
	INT:            "int",
	UNSIGNED_INT:   "unsigned int",
	LONG:           "long",
	UNSIGNED_LONG:  "unsigned long",
	FLOAT:          "float",
	DOUBLE:         "double",
	LONG_DOUBLE:    "long double",

	INT8:   "int8_t",
	UINT8:  "uint8_t",
	INT16:  "int16_t",
	UINT16: "uint16_t",
	INT32:  "int32_t",
	UINT32: "uint32_t",
	INT64:  "int64_t",
	UINT64: "uint64_t",
	CHAR16: "char16_t",
	CHAR32: "char32_t",
	WCHAR:  "wchar_t",

	INT128:  "__int128",
	UINT128: "unsigned __int128",

	VOID:     "void",
	ELLIPSIS: "...",

	UNION:  "union",
	CLASS:  "class",
	STRUCT: "struct",
	ENUM:   "enum",

	CTOR:               "`constructor'",
	DTOR:               "`destructor'",
	OP_NEW:             "operator new",
	OP_DELETE:          "operator delete",
	OP_ASSIGN:          "operator=",
	OP_RSHIFT:          "operator>>",
	OP_LSHIFT:          "operator<<",
	OP_NOT:             "operator!",
	OP_EQUAL:           "operator==",
	OP_NOTEQUAL:        "operator!=",
	OP_INDEX:           "operator[]",
	OP_TYPE:            "operator `type'",
	OP_INDIRECT:        "operator->",
	OP_STAR:            "operator*",
	OP_PLUSPLUS:        "operator++",
	OP_MINUSMINUS:      "operator--",
	OP_MINUS:           "operator-",
	OP_PLUS:            "operator+",
	OP_AMP:             "operator&",
	OP_INDIRECT_METHOD: "operator->*",
	OP_DIV:             "operator/",
	OP_MOD:             "operator%",
	OP_LESS:            "operator<",
	OP_LESSEQ:          "operator<=",
	OP_GREATER:         "operator>",
	OP_GREATEREQ:       "operator>=",
	OP_COMMA:           "operator,",
	OP_CALL:            "operator()",
	OP_BNOT:            "operator~",
	OP_BXOR:            "operator^",
	OP_BOR:             "operator|",
	OP_AND:             "operator&&",
	OP_OR:              "operator||",
	OP_STAR_ASSIGN:     "operator*=",
	OP_PLUS_ASSIGN:     "operator+=",
	OP_MINUS_ASSIGN:    "operator-=",
	OP_DIV_ASSIGN:      "operator/=",
	OP_MOD_ASSIGN:      "operator%=",
	OP_RSHIFT_ASSIGN:   "operator>>=",
	OP_LSHIFT_ASSIGN:   "operator<<=",
	OP_AMP_ASSIGN:      "operator&=",
	OP_BOR_ASSIGN:      "operator|=",
	OP_BXOR_ASSIGN:     "operator^=",

	VFTABLE:                        "`vftable'",
	VBTABLE:                        "`vbtable'",
	VCALL:                          "`vcall'",
	TYPEOF:                         "`typeof'",
	LOCAL_STATIC_GUARD:             "`local static guard'",
	VBASE_DTOR:                     "`vbase destructor'",
	VECTOR_DELETING_DTOR:           "`vector deleting destructor'",
	DEFAULT_CTOR_CLOSURE:           "`default constructor closure'",
	SCALAR_DELETING_DTOR:           "`scalar deleting destructor'",
	VECTOR_CTOR_ITER:               "`vector constructor iterator'",
	VECTOR_DTOR_ITER:               "`vector destructor iterator'",
	VECTOR_VBASE_CTOR_ITER:         "`vector vbase constructor iterator'",
	VIRTUAL_DISPLACEMENT_MAP:       "`virtual displacement map'",
	EH_VECTOR_CTOR_ITER:            "`eh vector constructor iterator'",
	EH_VECTOR_DTOR_ITER:            "`eh vector destructor iterator'",
	EH_VECTOR_VBASE_CTOR_ITER:      "`eh vector vbase constructor iterator'",
	COPY_CTOR_CLOSURE:              "`copy constructor closure'",
	UDT_RETURNING:                  "`udt returning'",
	LOCAL_VFTABLE:                  "`local vftable'",
	LOCAL_VFTABLE_CTOR_CLOSURE:     "`local vftable constructor closure'",
	OP_NEW_ARRAY:                   "operator new[]",
	OP_DELETE_ARRAY:                "operator delete[]",
	PLACEMENT_DELETE_CLOSURE:       "`placement delete closure'",
	PLACEMENT_DELETE_ARRAY_CLOSURE: "`placement delete[] closure'",
	MANAGED_VECTOR_CTOR_ITER:       "`managed vector constructor iterator'",
	MANAGED_VECTOR_DTOR_ITER:       "`managed vector destructor iterator'",
	EH_VECTOR_COPY_CTOR_ITER:       "`eh vector copy constructor iterator'",
	EH_VECTOR_VBASE_COPY_CTOR_ITER: "`eh vector vbase copy constructor iterator'",
	DYNAMIC_INITIALIZER:            "`dynamic initializer'",
	DYNAMIC_ATEXIT_DTOR:            "`dynamic atexit destructor'",
	VECTOR_COPY_CTOR_ITER:          "`vector copy constructor iterator'",
	VECTOR_VBASE_COPY_CTOR_ITER:    "`vector vbase copy constructor iterator'",
	MANAGED_VECTOR_COPY_CTOR_ITER:  "`managed vector copy constructor iterator'",
	LOCAL_STATIC_THREAD_GUARD:      "`local static thread guard'",
	OP_DQUOTE:                      `operator""`,
	OP_SPACESHIP:                   "operator<=>",
	OP_CO_AWAIT:                    "operator co_await",

	RTTI_TYPE_DESC:            "`RTTI Type Descriptor'",
	RTTI_BASE_CLASS_DESC:      "`RTTI Base Class Descriptor'",
	RTTI_BASE_CLASS_ARRAY:     "`RTTI Base Class Array'",
	RTTI_CLASS_HEIRARCHY_DESC: "`RTTI Class Hierarchy Descriptor'",
	RTTI_COMPLETE_OBJ_LOCATOR: "`RTTI Complete Object Locator'",
}

// codeString returns the canonical textual form of c. The original source
// this grammar is drawn from carries two out-of-sync copies of this table
// under the names code_sring and code_string; only the correctly spelled
// name is exposed here.
func codeString(c Code) string {
	if c < 0 || int(c) >= len(codeTable) {
		return ""
	}
	return codeTable[c]
}

// isOperatorCode reports whether c names an operator or special-member
// spelling rather than a primitive/tag keyword.
func isOperatorCode(c Code) bool {
	return c >= CTOR && c <= RTTI_COMPLETE_OBJ_LOCATOR
}
