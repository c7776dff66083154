package transforms

import (
	"strings"

	"github.com/GrainArc/GeoPrep/geodata"
)

// FilterRule 单条过滤规则
type FilterRule struct {
	Field    string      `json:"field"`
	Operator string      `json:"operator"`
	Value    interface{} `json:"value"`
}

// Filter 过滤条件组合，Logic为AND或OR，默认AND
type Filter struct {
	Rules []FilterRule `json:"rules"`
	Logic string       `json:"logic"`
}

// ApplyFilters 按规则过滤要素，保留原有顺序。
// 数值比较对两侧做数值转换，任一侧转换失败按不通过处理；规则为空时全部通过
func ApplyFilters(records []geodata.Record, rules []FilterRule, logic string) []geodata.Record {
	or := strings.EqualFold(strings.TrimSpace(logic), "OR")
	out := make([]geodata.Record, 0, len(records))
	for _, rec := range records {
		if matchRules(rec, rules, or) {
			out = append(out, rec)
		}
	}
	return out
}

func matchRules(rec geodata.Record, rules []FilterRule, or bool) bool {
	if len(rules) == 0 {
		return true
	}
	for _, rule := range rules {
		ok := evalRule(rec, rule)
		if or && ok {
			return true
		}
		if !or && !ok {
			return false
		}
	}
	return !or
}

// evalRule 单条规则判断，未知操作符按不通过处理
func evalRule(rec geodata.Record, rule FilterRule) bool {
	v := rec.Props.Value(rule.Field)
	target := geodata.ParseValue(rule.Value)
	switch normalizeOperator(rule.Operator) {
	case "equals":
		return looseEqual(v, target)
	case "not_equals":
		return !looseEqual(v, target)
	case "contains":
		return strings.Contains(v.Text(), target.Text())
	case "not_contains":
		return !strings.Contains(v.Text(), target.Text())
	case "greater_than":
		a, b, ok := numericPair(v, target)
		return ok && a > b
	case "less_than":
		a, b, ok := numericPair(v, target)
		return ok && a < b
	case "greater_equal":
		a, b, ok := numericPair(v, target)
		return ok && a >= b
	case "less_equal":
		a, b, ok := numericPair(v, target)
		return ok && a <= b
	case "is_empty":
		return v.IsEmpty()
	case "is_not_empty":
		return !v.IsEmpty()
	}
	return false
}

// normalizeOperator 统一操作符写法，符号与单词两种形式都接受
func normalizeOperator(op string) string {
	op = strings.ToLower(strings.TrimSpace(op))
	op = strings.ReplaceAll(op, "-", "_")
	op = strings.ReplaceAll(op, " ", "_")
	switch op {
	case "=", "==", "eq":
		return "equals"
	case "!=", "<>", "ne":
		return "not_equals"
	case ">", "gt":
		return "greater_than"
	case "<", "lt":
		return "less_than"
	case ">=", "gte", "greater_or_equal":
		return "greater_equal"
	case "<=", "lte", "less_or_equal":
		return "less_equal"
	case "like":
		return "contains"
	case "not_like":
		return "not_contains"
	}
	return op
}

func numericPair(a, b geodata.Value) (float64, float64, bool) {
	af, ok1 := a.Float64()
	bf, ok2 := b.Float64()
	return af, bf, ok1 && ok2
}

// looseEqual 宽松相等：两侧都能转数值时按数值比较，否则按文本比较。
// null只与null相等
func looseEqual(a, b geodata.Value) bool {
	if a.IsNull() || b.IsNull() {
		return a.IsNull() && b.IsNull()
	}
	if af, ok := a.Float64(); ok {
		if bf, ok2 := b.Float64(); ok2 {
			return af == bf
		}
	}
	return a.Text() == b.Text()
}
