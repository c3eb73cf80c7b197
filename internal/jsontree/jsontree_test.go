package jsontree

import (
	"testing"

	"github.com/relyze/undname/internal/demangle"
)

func TestConvertGlobalFunction(t *testing.T) {
	sym, err := demangle.Decode([]byte("?foo@@YAXH@Z"), nil)
	if err != nil {
		t.Fatalf("Decode error = %v", err)
	}

	obj := Convert(sym, demangle.Undname())
	if obj["symbol_type"] != "global_function" {
		t.Fatalf("symbol_type = %v, want global_function", obj["symbol_type"])
	}
	text, ok := obj["text"].(string)
	if !ok || text == "" {
		t.Fatalf("text field missing or empty: %v", obj["text"])
	}
}

func TestMinimalFallsBackToRawForNonFunction(t *testing.T) {
	sym, err := demangle.Decode([]byte("?x@@3HA"), nil)
	if err != nil {
		t.Fatalf("Decode error = %v", err)
	}
	if sym.SymbolType != demangle.GlobalObject {
		t.Fatalf("SymbolType = %v, want GlobalObject", sym.SymbolType)
	}

	got := Minimal(sym, demangle.Undname())
	if _, ok := got.(*demangle.Node); !ok {
		t.Fatalf("Minimal on a non-function symbol = %T, want *demangle.Node (Raw fallback)", got)
	}
}

func TestConvertNameIsOutermostFirst(t *testing.T) {
	sym, err := demangle.Decode([]byte("?foo@Bar@@SAHH@Z"), nil)
	if err != nil {
		t.Fatalf("Decode error = %v", err)
	}

	obj := Convert(sym, demangle.Undname())
	frags, ok := obj["name"].([]interface{})
	if !ok || len(frags) != 2 {
		t.Fatalf("name = %#v, want a 2-element reversed-order namespace list", obj["name"])
	}
	outer, ok := frags[0].(map[string]interface{})
	if !ok || outer["value"] != "Bar" {
		t.Fatalf("name[0] = %#v, want the enclosing class Bar", frags[0])
	}
	inner, ok := frags[1].(map[string]interface{})
	if !ok || inner["value"] != "foo" {
		t.Fatalf("name[1] = %#v, want the member foo", frags[1])
	}
}

func TestRawReturnsSameTree(t *testing.T) {
	sym, err := demangle.Decode([]byte("?foo@@YAXH@Z"), nil)
	if err != nil {
		t.Fatalf("Decode error = %v", err)
	}
	if Raw(sym) != sym {
		t.Fatalf("Raw() did not return the same tree pointer")
	}
}
