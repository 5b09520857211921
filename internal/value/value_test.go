package value

import "testing"

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Nil, false},
		{Bool(true), true},
		{Bool(false), false},
		{Number(0), false},
		{Number(1), true},
		{Number(-1), true},
		{String(""), false},
		{String("x"), true},
		{NewList(nil), false},
		{NewList([]Value{Number(1)}), true},
		{&Function{Name: "f"}, true},
	}
	for _, c := range cases {
		if got := Truthy(c.v); got != c.want {
			t.Errorf("Truthy(%#v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestEqualsTagMismatchIsFalse(t *testing.T) {
	if Equals(Number(1), String("1")) {
		t.Error("Number(1) should not equal String(\"1\")")
	}
	if Equals(Nil, Bool(false)) {
		t.Error("Null should not equal Bool(false)")
	}
}

func TestEqualsPrimitivesByValue(t *testing.T) {
	if !Equals(Number(3), Number(3)) {
		t.Error("Number(3) should equal Number(3)")
	}
	if !Equals(String("hi"), String("hi")) {
		t.Error("identical strings should be equal")
	}
	if Equals(String("hi"), String("HI")) {
		t.Error("string equality must be case-sensitive")
	}
}

func TestEqualsListsRecursive(t *testing.T) {
	a := NewList([]Value{Number(1), NewList([]Value{String("x")})})
	b := NewList([]Value{Number(1), NewList([]Value{String("x")})})
	if !Equals(a, b) {
		t.Error("structurally identical lists should be equal")
	}
	c := NewList([]Value{Number(1), NewList([]Value{String("y")})})
	if Equals(a, c) {
		t.Error("structurally different lists should not be equal")
	}
}

func TestEqualsReferenceVariantsByIdentity(t *testing.T) {
	f1 := &Function{Name: "f"}
	f2 := &Function{Name: "f"}
	if Equals(f1, f2) {
		t.Error("distinct Function values with the same name should not be equal")
	}
	if !Equals(f1, f1) {
		t.Error("a Function should equal itself")
	}
}

func TestRenderFormatsNumbersWithoutTrailingZeros(t *testing.T) {
	cases := map[float64]string{
		3:     "3",
		3.5:   "3.5",
		3.10:  "3.1",
		0:     "0",
		-2.0:  "-2",
		1.25:  "1.25",
	}
	for in, want := range cases {
		if got := Render(Number(in)); got != want {
			t.Errorf("Render(Number(%v)) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderList(t *testing.T) {
	l := NewList([]Value{Number(1), String("x"), Bool(true)})
	got := Render(l)
	want := `[1, "x", true]`
	if got != want {
		t.Errorf("Render(list) = %q, want %q", got, want)
	}
}

func TestRenderNullAndBool(t *testing.T) {
	if Render(Nil) != "null" {
		t.Error("Render(Null) should be \"null\"")
	}
	if Render(Bool(true)) != "true" || Render(Bool(false)) != "false" {
		t.Error("Render(Bool) should be \"true\"/\"false\"")
	}
}

func TestHandleTypeUsesKind(t *testing.T) {
	h := &Handle{Kind: "window"}
	if got, want := h.Type(), "WINDOW_HANDLE"; got != want {
		t.Errorf("Handle.Type() = %q, want %q", got, want)
	}
}

func TestHandleCloseAtMostOnce(t *testing.T) {
	var calls int
	h := &Handle{Kind: "font", Closer: func() error { calls++; return nil }}
	if err := h.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("unexpected error on second close: %v", err)
	}
	if calls != 1 {
		t.Errorf("Closer invoked %d times, want 1", calls)
	}
}

func TestStructInstGetSet(t *testing.T) {
	def := &StructDef{Name: "Point", Fields: []string{"x", "y"}, Indices: map[string]int{"x": 0, "y": 1}}
	inst := &StructInst{Def: def, Values: []Value{Number(1), Number(2)}}

	if v, ok := inst.Get("y"); !ok || v != Value(Number(2)) {
		t.Errorf("Get(y) = %v, %v", v, ok)
	}
	if !inst.Set("x", Number(9)) {
		t.Fatal("Set(x) should succeed")
	}
	if v, _ := inst.Get("x"); v != Value(Number(9)) {
		t.Errorf("after Set, Get(x) = %v", v)
	}
	if inst.Set("z", Number(0)) {
		t.Error("Set on unknown field should fail")
	}
}

func TestTypeNameMatchesType(t *testing.T) {
	vals := []Value{Nil, Bool(true), Number(1), String("s"), NewList(nil)}
	for _, v := range vals {
		if TypeName(v) != v.Type() {
			t.Errorf("TypeName(%v) = %q, want %q", v, TypeName(v), v.Type())
		}
	}
}
