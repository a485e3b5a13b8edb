package model

import (
	"encoding/json"
	"math"
	"testing"
)

func TestDisplayValue(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want string
	}{
		{"string", StringValue("hello"), "hello"},
		{"empty string", StringValue(""), ""},
		{"bool true", BoolValue(true), "true"},
		{"bool false", BoolValue(false), "false"},
		{"integer", NumberValue(42), "42"},
		{"decimal", NumberValue(3.14), "3.14"},
		{"negative", NumberValue(-0.5), "-0.5"},
		{"nan", NumberValue(math.NaN()), "NaN"},
	}
	for _, c := range cases {
		if got := DisplayValue(c.v); got != c.want {
			t.Fatalf("%s: DisplayValue=%q, want %q", c.name, got, c.want)
		}
	}
}

func TestParseValueKeepsKind(t *testing.T) {
	// 编辑框里输进来的都是文本，类型跟着既有值走
	cases := []struct {
		name string
		raw  string
		prev Value
		want Value
	}{
		{"string stays string", "42", StringValue("old"), StringValue("42")},
		{"number parses", "42.5", NumberValue(1), NumberValue(42.5)},
		{"empty number is zero", "", NumberValue(5), NumberValue(0)},
		{"blank number is zero", "   ", NumberValue(5), NumberValue(0)},
		{"bool true", "true", BoolValue(false), BoolValue(true)},
		{"bool anything else is false", "yes", BoolValue(true), BoolValue(false)},
		{"empty bool is false", "", BoolValue(true), BoolValue(false)},
	}
	for _, c := range cases {
		got := ParseValue(c.raw, c.prev)
		if got != c.want {
			t.Fatalf("%s: ParseValue(%q)=%+v, want %+v", c.name, c.raw, got, c.want)
		}
	}
}

func TestParseValueBadNumberIsNaN(t *testing.T) {
	got := ParseValue("not a number", NumberValue(7))
	if got.Kind != ValueNumber || !math.IsNaN(got.Num) {
		t.Fatalf("ParseValue on bad number = %+v, want NaN number", got)
	}
}

func TestDisplayParseRoundTrip(t *testing.T) {
	values := []Value{
		StringValue("some text"),
		NumberValue(123),
		NumberValue(-2.75),
		BoolValue(true),
		BoolValue(false),
	}
	for _, v := range values {
		got := ParseValue(DisplayValue(v), v)
		if got != v {
			t.Fatalf("round trip %+v -> %q -> %+v", v, DisplayValue(v), got)
		}
	}
}

func TestValueJSON(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{StringValue("abc"), `"abc"`},
		{NumberValue(5), `5`},
		{NumberValue(2.5), `2.5`},
		{BoolValue(true), `true`},
		{NumberValue(math.NaN()), `null`},
	}
	for _, c := range cases {
		b, err := json.Marshal(c.v)
		if err != nil {
			t.Fatalf("marshal %+v: %v", c.v, err)
		}
		if string(b) != c.want {
			t.Fatalf("marshal %+v = %s, want %s", c.v, b, c.want)
		}
	}

	wire := []struct {
		raw  string
		want Value
	}{
		{`"abc"`, StringValue("abc")},
		{`5`, NumberValue(5)},
		{`true`, BoolValue(true)},
		{`null`, StringValue("")},
	}
	for _, c := range wire {
		var v Value
		if err := json.Unmarshal([]byte(c.raw), &v); err != nil {
			t.Fatalf("unmarshal %s: %v", c.raw, err)
		}
		if v != c.want {
			t.Fatalf("unmarshal %s = %+v, want %+v", c.raw, v, c.want)
		}
	}
}

func TestOperatorText(t *testing.T) {
	cases := []struct {
		op   Operator
		want string
	}{
		{OperatorEQ, "equals"},
		{OperatorNE, "not equals"},
		{OperatorLT, "less than"},
		{OperatorGT, "greater than"},
		{OperatorLTE, "less or equal"},
		{OperatorGTE, "greater or equal"},
		{Operator("XX"), "XX"},
	}
	for _, c := range cases {
		if got := c.op.Text(); got != c.want {
			t.Fatalf("Text(%s)=%q, want %q", c.op, got, c.want)
		}
	}
	if Operator("XX").Valid() {
		t.Fatal("unknown operator should not be valid")
	}
	if len(Operators) != 6 {
		t.Fatalf("expected 6 operators, got %d", len(Operators))
	}
}
