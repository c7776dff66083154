package geodata

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// 属性值类型标签
type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindDate
)

func (k ValueKind) String() string {
	switch k {
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindDate:
		return "date"
	default:
		return "null"
	}
}

// Value 带类型标签的属性值，避免interface{}在各处做分散的类型断言
type Value struct {
	kind ValueKind
	b    bool
	n    float64
	s    string
	t    time.Time
}

func NullValue() Value {
	return Value{kind: KindNull}
}

func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

func NumberValue(n float64) Value {
	return Value{kind: KindNumber, n: n}
}

func StringValue(s string) Value {
	return Value{kind: KindString, s: s}
}

func DateValue(t time.Time) Value {
	return Value{kind: KindDate, t: t}
}

// ParseValue 将JSON解码出的原始值归一化为Value
func ParseValue(raw interface{}) Value {
	if raw == nil {
		return NullValue()
	}
	switch v := raw.(type) {
	case Value:
		return v
	case bool:
		return BoolValue(v)
	case float64:
		return NumberValue(v)
	case float32:
		return NumberValue(float64(v))
	case int:
		return NumberValue(float64(v))
	case int32:
		return NumberValue(float64(v))
	case int64:
		return NumberValue(float64(v))
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return NumberValue(f)
		}
		return StringValue(v.String())
	case string:
		return StringValue(v)
	case time.Time:
		return DateValue(v)
	default:
		return StringValue(fmt.Sprintf("%v", v))
	}
}

func (v Value) Kind() ValueKind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// IsEmpty 空值判断：null或纯空白字符串
func (v Value) IsEmpty() bool {
	if v.kind == KindNull {
		return true
	}
	if v.kind == KindString {
		return strings.TrimSpace(v.s) == ""
	}
	return false
}

// Text 值的显示文本，null返回空字符串，数值不带多余的小数零
func (v Value) Text() string {
	switch v.kind {
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case KindString:
		return v.s
	case KindDate:
		return v.t.Format(time.RFC3339)
	default:
		return ""
	}
}

// Float64 数值转换，布尔按1/0处理，无法转换时第二个返回值为false
func (v Value) Float64() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.n, true
	case KindBool:
		if v.b {
			return 1, true
		}
		return 0, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func (v Value) Bool() (bool, bool) {
	if v.kind == KindBool {
		return v.b, true
	}
	return false, false
}

func (v Value) Time() (time.Time, bool) {
	if v.kind == KindDate {
		return v.t, true
	}
	return time.Time{}, false
}

// Equal 同类型比较，日期按时间点比较
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.n == o.n
	case KindString:
		return v.s == o.s
	case KindDate:
		return v.t.Equal(o.t)
	}
	return false
}

// Interface 还原为原生Go值，日期输出为ISO文本，用于JSON输出
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindDate:
		return v.t.Format(time.RFC3339)
	default:
		return nil
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// ParseDate 按ISO与常见日期格式解析字符串
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
