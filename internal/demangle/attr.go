package demangle

// Attribute is a single bit in an Attributes bitfield controlling renderer
// behavior: spacing, qualifier emission, and bug-for-bug compatibility with
// Microsoft's undname.exe.
type Attribute uint32

const (
	SPACE_AFTER_COMMA Attribute = 1 << iota
	SPACE_BETWEEN_TEMPLATE_BRACKETS
	VERBOSE_CONSTANT_STRING
	CDTOR_CLASS_TEMPLATE_PARAMETERS
	USER_DEFINED_CONVERSION_TEMPLATE_BEFORE_TYPE
	OUTPUT_NEAR
	MS_SIMPLE_TYPES
	OUTPUT_THUNKS
	OUTPUT_EXTERN
	OUTPUT_ANONYMOUS_NUMBERS
	DISCARD_CV_ON_RETURN_POINTER
	MS_QUALIFIERS
	OUTPUT_PTR64

	DISABLE_PREFIXES

	// BROKEN_UNDNAME occupies the high bit of the wire form (spec.md §6).
	BROKEN_UNDNAME Attribute = 1 << 31
)

// FlagDoc names one attribute and its effect, as returned by Explain.
type FlagDoc struct {
	Flag        Attribute
	Name        string
	Description string
}

var flagDocs = []FlagDoc{
	{SPACE_AFTER_COMMA, "SPACE_AFTER_COMMA", "insert \", \" rather than \",\""},
	{SPACE_BETWEEN_TEMPLATE_BRACKETS, "SPACE_BETWEEN_TEMPLATE_BRACKETS", "\"> >\" not \">>\" when adjacent"},
	{VERBOSE_CONSTANT_STRING, "VERBOSE_CONSTANT_STRING", "expand string literal payload and quote contents (not read by the renderer: string literals always render as their bare decoded text)"},
	{CDTOR_CLASS_TEMPLATE_PARAMETERS, "CDTOR_CLASS_TEMPLATE_PARAMETERS", "emit template params on the ctor/dtor spelling"},
	{USER_DEFINED_CONVERSION_TEMPLATE_BEFORE_TYPE, "USER_DEFINED_CONVERSION_TEMPLATE_BEFORE_TYPE", "operator<T> U vs operator U<T> (not read by the renderer)"},
	{OUTPUT_NEAR, "OUTPUT_NEAR", "emit the word \"near\" when distance=Near"},
	{MS_SIMPLE_TYPES, "MS_SIMPLE_TYPES", "__int64 rather than std::int64_t"},
	{OUTPUT_THUNKS, "OUTPUT_THUNKS", "prefix [thunk]: on thunk methods"},
	{OUTPUT_EXTERN, "OUTPUT_EXTERN", "emit extern \"C\" on marked symbols"},
	{OUTPUT_ANONYMOUS_NUMBERS, "OUTPUT_ANONYMOUS_NUMBERS", "include the anonymous-namespace hex id"},
	{DISCARD_CV_ON_RETURN_POINTER, "DISCARD_CV_ON_RETURN_POINTER", "drop cv on a pointer return value (undname quirk; not read by the renderer, which always emits that cv)"},
	{MS_QUALIFIERS, "MS_QUALIFIERS", "emit __unaligned, __restrict"},
	{OUTPUT_PTR64, "OUTPUT_PTR64", "emit __ptr64"},
	{DISABLE_PREFIXES, "DISABLE_PREFIXES", "drop class/struct/union/enum keywords"},
	{BROKEN_UNDNAME, "BROKEN_UNDNAME", "reproduce known undname.exe bugs (trailing ', extra }) (not read by the renderer)"},
}

// Attributes is the 32-bit wire form of the renderer's configuration.
type Attributes uint32

// Set returns a copy of a with the flag a set.
func (a Attributes) Set(flag Attribute) Attributes {
	return a | Attributes(flag)
}

// Unset returns a copy of a with the flag a cleared.
func (a Attributes) Unset(flag Attribute) Attributes {
	return a &^ Attributes(flag)
}

// Has reports whether flag is set.
func (a Attributes) Has(flag Attribute) bool {
	return a&Attributes(flag) != 0
}

// Undname returns the attribute set that best approximates Microsoft's own
// undname.exe, including its DISCARD_CV_ON_RETURN_POINTER quirk.
func Undname() Attributes {
	return Attributes(0).
		Set(SPACE_AFTER_COMMA).
		Set(MS_SIMPLE_TYPES).
		Set(OUTPUT_THUNKS).
		Set(OUTPUT_EXTERN).
		Set(DISCARD_CV_ON_RETURN_POINTER).
		Set(MS_QUALIFIERS).
		Set(OUTPUT_PTR64)
}

// Pretty returns a readable, non-MSVC-quirky attribute set.
func Pretty() Attributes {
	return Attributes(0).
		Set(SPACE_AFTER_COMMA).
		Set(SPACE_BETWEEN_TEMPLATE_BRACKETS).
		Set(VERBOSE_CONSTANT_STRING).
		Set(CDTOR_CLASS_TEMPLATE_PARAMETERS)
}

// Explain lists every attribute and its effect.
func (a Attributes) Explain() []FlagDoc {
	out := make([]FlagDoc, len(flagDocs))
	copy(out, flagDocs)
	return out
}

// FlagByName resolves a flag by its canonical name (as used by the CLI's
// --set/--unset options), reporting ok=false for an unknown name.
func FlagByName(name string) (Attribute, bool) {
	for _, fd := range flagDocs {
		if fd.Name == name {
			return fd.Flag, true
		}
	}
	return 0, false
}
