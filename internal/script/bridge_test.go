package script

import (
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func TestToLuaAndBack(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	in := map[string]any{
		"sheet":   "Sheet1",
		"cells":   int64(6),
		"ratio":   0.5,
		"changed": true,
		"rows":    []any{"a", "b"},
		"missing": nil,
	}

	out, ok := ToGo(ToLua(L, in)).(map[string]any)
	if !ok {
		t.Fatalf("ToGo() did not return a map")
	}

	if out["sheet"] != "Sheet1" {
		t.Errorf("sheet = %v", out["sheet"])
	}
	if out["cells"] != int64(6) {
		t.Errorf("cells = %v (%T), want int64 6", out["cells"], out["cells"])
	}
	if out["ratio"] != 0.5 {
		t.Errorf("ratio = %v", out["ratio"])
	}
	if out["changed"] != true {
		t.Errorf("changed = %v", out["changed"])
	}
	rows, ok := out["rows"].([]any)
	if !ok || len(rows) != 2 || rows[1] != "b" {
		t.Errorf("rows = %v", out["rows"])
	}
	if _, present := out["missing"]; present {
		t.Error("nil values should not create table entries")
	}
}

func TestToGoCycle(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	if err := L.DoString(`t = {name = "x"}; t.self = t`); err != nil {
		t.Fatal(err)
	}

	m, ok := ToGo(L.GetGlobal("t")).(map[string]any)
	if !ok {
		t.Fatal("ToGo() did not return a map")
	}
	if m["self"] != nil {
		t.Errorf("self = %v, want nil for a cycle", m["self"])
	}
}
