package transforms

import "testing"

func TestApplyFiltersNumeric(t *testing.T) {
	records := peopleRecords()

	out := ApplyFilters(records, []FilterRule{
		{Field: "age", Operator: "gt", Value: float64(10)},
	}, "and")
	if len(out) != 2 {
		t.Fatalf("matched = %d, want 2", len(out))
	}
	// 顺序保持原样
	if out[0].Props.Value("name").Text() != "张三" || out[1].Props.Value("name").Text() != "王五" {
		t.Error("filter should preserve record order")
	}
}

// 操作符的连字符全称与符号写法等效
func TestApplyFiltersSpelledOperators(t *testing.T) {
	records := tableRecords([]map[string]interface{}{
		{"age": float64(5)},
		{"age": float64(15)},
		{"age": float64(25)},
	}, []string{"age"})

	tests := []struct {
		operator string
		want     int
	}{
		{"greater-or-equal", 2},
		{">=", 2},
		{"less-or-equal", 1},
		{"<=", 1},
		{"greater-than", 2},
		{"less-than", 1},
		{"not-equals", 3},
	}

	for _, tt := range tests {
		out := ApplyFilters(records, []FilterRule{
			{Field: "age", Operator: tt.operator, Value: float64(10)},
		}, "and")
		if len(out) != tt.want {
			t.Errorf("ApplyFilters(age %s 10) matched %d, want %d", tt.operator, len(out), tt.want)
		}
	}
}

func TestApplyFiltersAndOr(t *testing.T) {
	records := peopleRecords()

	and := ApplyFilters(records, []FilterRule{
		{Field: "city", Operator: "equals", Value: "Provo"},
		{Field: "age", Operator: "lt", Value: float64(40)},
	}, "AND")
	if len(and) != 1 {
		t.Errorf("AND matched = %d, want 1", len(and))
	}

	or := ApplyFilters(records, []FilterRule{
		{Field: "city", Operator: "equals", Value: "Provo"},
		{Field: "age", Operator: "lt", Value: float64(40)},
	}, "or")
	if len(or) != 3 {
		t.Errorf("OR matched = %d, want 3", len(or))
	}
}

func TestApplyFiltersEmptyRules(t *testing.T) {
	records := peopleRecords()
	out := ApplyFilters(records, nil, "and")
	if len(out) != len(records) {
		t.Errorf("matched = %d, want all %d", len(out), len(records))
	}
}

func TestEvalRuleOperators(t *testing.T) {
	records := tableRecords([]map[string]interface{}{
		{"s": "hello world", "n": float64(5), "e": "", "x": nil},
	}, []string{"s", "n", "e", "x"})
	rec := records[0]

	tests := []struct {
		field    string
		operator string
		value    interface{}
		want     bool
	}{
		{"s", "equals", "hello world", true},
		{"s", "not_equals", "hello", true},
		{"s", "contains", "world", true},
		{"s", "not_contains", "mars", true},
		{"s", "like", "world", true},
		{"n", "gt", float64(4), true},
		{"n", ">", float64(5), false},
		{"n", ">=", float64(5), true},
		{"n", "lte", float64(5), true},
		{"n", "<", "6", true},
		{"n", "=", "5", true},
		{"e", "is_empty", nil, true},
		{"x", "is_empty", nil, true},
		{"s", "is_not_empty", nil, true},
		{"s", "unknown_op", "x", false},
		// 数值比较任一侧转换失败按不通过
		{"s", "gt", float64(1), false},
	}

	for _, tt := range tests {
		got := evalRule(rec, FilterRule{Field: tt.field, Operator: tt.operator, Value: tt.value})
		if got != tt.want {
			t.Errorf("evalRule(%s %s %v) = %v, want %v", tt.field, tt.operator, tt.value, got, tt.want)
		}
	}
}

func TestLooseEqual(t *testing.T) {
	records := tableRecords([]map[string]interface{}{
		{"n": float64(12), "s": "12"},
	}, []string{"n", "s"})
	rec := records[0]

	// 数值12与字符串"12"按数值比较视为相等
	if !evalRule(rec, FilterRule{Field: "n", Operator: "equals", Value: "12"}) {
		t.Error("number 12 should equal string \"12\"")
	}
	if !evalRule(rec, FilterRule{Field: "s", Operator: "equals", Value: float64(12)}) {
		t.Error("string \"12\" should equal number 12")
	}
	// null只与null相等
	if evalRule(rec, FilterRule{Field: "missing", Operator: "equals", Value: "12"}) {
		t.Error("null should not equal a value")
	}
	if !evalRule(rec, FilterRule{Field: "missing", Operator: "equals", Value: nil}) {
		t.Error("null should equal null")
	}
}

func TestNormalizeOperator(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"=", "equals"},
		{"==", "equals"},
		{"EQ", "equals"},
		{"!=", "not_equals"},
		{"<>", "not_equals"},
		{">", "greater_than"},
		{">=", "greater_equal"},
		{"GTE", "greater_equal"},
		{"greater-than", "greater_than"},
		{"greater-or-equal", "greater_equal"},
		{"less-or-equal", "less_equal"},
		{"like", "contains"},
		{"not like", "not_contains"},
		{"is-empty", "is_empty"},
	}

	for _, tt := range tests {
		if got := normalizeOperator(tt.in); got != tt.want {
			t.Errorf("normalizeOperator(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
