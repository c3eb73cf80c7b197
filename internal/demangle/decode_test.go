package demangle

import "testing"

func TestDecodeAndRenderGlobalFunction(t *testing.T) {
	tests := []struct {
		name    string
		mangled string
		want    string
	}{
		{
			name:    "free function taking int returning void",
			mangled: "?foo@@YAXH@Z",
			want:    "void __cdecl foo(int)",
		},
		{
			name:    "free function no args returning int",
			mangled: "?bar@@YAHXZ",
			want:    "int __cdecl bar(void)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sym, err := Decode([]byte(tt.mangled), nil)
			if err != nil {
				t.Fatalf("Decode(%q) error = %v", tt.mangled, err)
			}
			got, err := Render(sym, Undname())
			if err != nil {
				t.Fatalf("Render error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Render(Decode(%q)) = %q, want %q", tt.mangled, got, tt.want)
			}
		})
	}
}

func TestDecodeAndRenderClassMethod(t *testing.T) {
	tests := []struct {
		name    string
		mangled string
		want    string
	}{
		{
			name:    "public constructor",
			mangled: "??0Foo@@QAE@XZ",
			want:    "public: __thiscall Foo::Foo(void)",
		},
		{
			name:    "public static method",
			mangled: "?foo@Bar@@SAHH@Z",
			want:    "public: static int __cdecl Bar::foo(int)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sym, err := Decode([]byte(tt.mangled), nil)
			if err != nil {
				t.Fatalf("Decode(%q) error = %v", tt.mangled, err)
			}
			got, err := Render(sym, Undname())
			if err != nil {
				t.Fatalf("Render error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Render(Decode(%q)) = %q, want %q", tt.mangled, got, tt.want)
			}
		})
	}
}

func TestDecodeClassMethod(t *testing.T) {
	// ?foo@Bar@@QAEXH@Z -> public: void __thiscall Bar::foo(int)
	sym, err := Decode([]byte("?foo@Bar@@QAEXH@Z"), nil)
	if err != nil {
		t.Fatalf("Decode error = %v", err)
	}
	if sym.SymbolType != ClassMethod {
		t.Fatalf("SymbolType = %v, want ClassMethod", sym.SymbolType)
	}
	if sym.Scope != ScopePublic {
		t.Fatalf("Scope = %v, want ScopePublic", sym.Scope)
	}
	if len(sym.Name) != 2 {
		t.Fatalf("Name fragments = %d, want 2 (foo, Bar)", len(sym.Name))
	}
	if sym.Name[0].SimpleString != "foo" || sym.Name[1].SimpleString != "Bar" {
		t.Fatalf("Name = %+v, want [foo Bar]", sym.Name)
	}
}

func TestDecodeMalformedSymbol(t *testing.T) {
	tests := []struct {
		name    string
		mangled string
	}{
		{"empty input", ""},
		{"missing leading question mark", "foo@@YAXH@Z"},
		{"truncated type code", "?foo@@YAX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.mangled), nil)
			if err == nil {
				t.Fatalf("Decode(%q) succeeded, want MalformedSymbol error", tt.mangled)
			}
			if _, ok := err.(*MalformedSymbol); !ok {
				t.Fatalf("Decode(%q) error type = %T, want *MalformedSymbol", tt.mangled, err)
			}
		})
	}
}

func TestBackrefStackBoundedAndSnapshotted(t *testing.T) {
	var s refStack
	for i := 0; i < backrefStackCap+5; i++ {
		n := newNode()
		n.SimpleString = string(rune('a' + i))
		s.push(n)
	}
	if s.len() != backrefStackCap {
		t.Fatalf("refStack.len() = %d, want %d (capped)", s.len(), backrefStackCap)
	}

	n := newNode()
	n.SimpleString = "original"
	s.push(n)
	n.SimpleString = "mutated-after-push"

	got := s.at(backrefStackCap - 1)
	if got.SimpleString != "original" {
		t.Fatalf("refStack.at snapshot = %q, want %q (mutation after push must not leak)", got.SimpleString, "original")
	}
}

func TestRefStackOutOfRangePlaceholder(t *testing.T) {
	var s refStack
	got := s.at(3)
	if got.SimpleString != "ref#3" {
		t.Fatalf("refStack.at(3) on empty stack = %q, want ref#3", got.SimpleString)
	}
}

func TestAttributesSetUnsetHas(t *testing.T) {
	a := Undname()
	if !a.Has(OUTPUT_PTR64) {
		t.Fatalf("Undname() missing OUTPUT_PTR64")
	}
	a = a.Unset(OUTPUT_PTR64)
	if a.Has(OUTPUT_PTR64) {
		t.Fatalf("Unset(OUTPUT_PTR64) did not clear the bit")
	}
	a = a.Set(BROKEN_UNDNAME)
	if !a.Has(BROKEN_UNDNAME) {
		t.Fatalf("Set(BROKEN_UNDNAME) did not set the bit")
	}
}

func TestFlagByName(t *testing.T) {
	flag, ok := FlagByName("OUTPUT_PTR64")
	if !ok || flag != OUTPUT_PTR64 {
		t.Fatalf("FlagByName(OUTPUT_PTR64) = (%v, %v), want (OUTPUT_PTR64, true)", flag, ok)
	}
	if _, ok := FlagByName("NOT_A_FLAG"); ok {
		t.Fatalf("FlagByName(NOT_A_FLAG) ok = true, want false")
	}
}

func TestCodeStringOutOfRange(t *testing.T) {
	if codeString(Code(-1)) != "" {
		t.Fatalf("codeString(-1) = %q, want empty", codeString(Code(-1)))
	}
	if codeString(codeCount+100) != "" {
		t.Fatalf("codeString(out of range) should be empty")
	}
}
