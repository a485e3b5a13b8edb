package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Operator 表达式比较运算符（封闭枚举，仅用于展示，不做求值）
type Operator string

const (
	OperatorEQ  Operator = "EQ"
	OperatorNE  Operator = "NE"
	OperatorLT  Operator = "LT"
	OperatorGT  Operator = "GT"
	OperatorLTE Operator = "LTE"
	OperatorGTE Operator = "GTE"
)

// Operators 按展示顺序排列的全部运算符
var Operators = []Operator{
	OperatorEQ,
	OperatorNE,
	OperatorLT,
	OperatorGT,
	OperatorLTE,
	OperatorGTE,
}

var operatorText = map[Operator]string{
	OperatorEQ:  "equals",
	OperatorNE:  "not equals",
	OperatorLT:  "less than",
	OperatorGT:  "greater than",
	OperatorLTE: "less or equal",
	OperatorGTE: "greater or equal",
}

func (o Operator) Valid() bool {
	_, ok := operatorText[o]
	return ok
}

// Text 返回展示用文案，未知值原样返回，不会 panic
func (o Operator) Text() string {
	if t, ok := operatorText[o]; ok {
		return t
	}
	return string(o)
}

// ValueKind 表达式值的类型标签
type ValueKind string

const (
	ValueString  ValueKind = "string"
	ValueNumber  ValueKind = "number"
	ValueBoolean ValueKind = "boolean"
)

// Value 带类型的标量值（string | number | boolean）。
// 类型在记录创建时确定，之后的编辑经 ParseValue 保持原类型。
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
}

func StringValue(s string) Value  { return Value{Kind: ValueString, Str: s} }
func NumberValue(n float64) Value { return Value{Kind: ValueNumber, Num: n} }
func BoolValue(b bool) Value      { return Value{Kind: ValueBoolean, Bool: b} }

func (v Value) IsZero() bool {
	return v.Kind == "" || (v.Kind == ValueString && v.Str == "")
}

// MarshalJSON 序列化为裸标量，保持运行时类型
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueBoolean:
		return json.Marshal(v.Bool)
	case ValueNumber:
		if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.Num)
	default:
		return json.Marshal(v.Str)
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*v = Value{Kind: ValueString}
		return nil
	}
	switch data[0] {
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = BoolValue(b)
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringValue(s)
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = NumberValue(n)
	}
	return nil
}

// DisplayValue 值的编辑/展示文本：布尔 → "true"/"false"，未设置 → ""
func DisplayValue(v Value) string {
	switch v.Kind {
	case ValueBoolean:
		if v.Bool {
			return "true"
		}
		return "false"
	case ValueNumber:
		if math.IsNaN(v.Num) {
			return "NaN"
		}
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	default:
		return v.Str
	}
}

// ParseValue 按上一个值的类型解析输入文本。
// 数字解析失败得到 NaN，由保存前的校验拦截，不在这里报错。
func ParseValue(raw string, prev Value) Value {
	switch prev.Kind {
	case ValueBoolean:
		return BoolValue(raw == "true")
	case ValueNumber:
		// 清空输入得到 0，与 Number("") 的行为一致
		if strings.TrimSpace(raw) == "" {
			return NumberValue(0)
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return NumberValue(math.NaN())
		}
		return NumberValue(n)
	default:
		return StringValue(raw)
	}
}
