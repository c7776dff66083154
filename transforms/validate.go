package transforms

import (
	"fmt"
	"strings"

	"github.com/GrainArc/GeoPrep/geodata"
)

// ValidationRule 校验规则，Type为required、numeric_range或allowed_values
type ValidationRule struct {
	Field   string   `json:"field"`
	Type    string   `json:"type"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Allowed []string `json:"allowed,omitempty"`
}

// Violation 单条校验问题
type Violation struct {
	FeatureIndex int    `json:"featureIndex"`
	Field        string `json:"field"`
	Message      string `json:"message"`
}

// Validate 数据校验，只报告问题不修改数据。
// numeric_range与allowed_values跳过null值，空值检查由required负责
func Validate(records []geodata.Record, rules []ValidationRule) []Violation {
	violations := []Violation{}
	for i, rec := range records {
		for _, rule := range rules {
			v := rec.Props.Value(rule.Field)
			switch strings.ToLower(strings.TrimSpace(rule.Type)) {
			case "required":
				if v.IsEmpty() {
					violations = append(violations, Violation{FeatureIndex: i, Field: rule.Field, Message: "字段值不能为空"})
				}
			case "numeric_range":
				if v.IsNull() {
					continue
				}
				f, ok := v.Float64()
				if !ok {
					violations = append(violations, Violation{FeatureIndex: i, Field: rule.Field, Message: "不是有效的数值"})
					continue
				}
				if rule.Min != nil && f < *rule.Min {
					violations = append(violations, Violation{FeatureIndex: i, Field: rule.Field, Message: fmt.Sprintf("数值小于下限%v", *rule.Min)})
				}
				if rule.Max != nil && f > *rule.Max {
					violations = append(violations, Violation{FeatureIndex: i, Field: rule.Field, Message: fmt.Sprintf("数值大于上限%v", *rule.Max)})
				}
			case "allowed_values":
				if v.IsNull() {
					continue
				}
				text := v.Text()
				found := false
				for _, a := range rule.Allowed {
					if a == text {
						found = true
						break
					}
				}
				if !found {
					violations = append(violations, Violation{FeatureIndex: i, Field: rule.Field, Message: fmt.Sprintf("值%q不在允许范围内", text)})
				}
			}
		}
	}
	return violations
}
