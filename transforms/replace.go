package transforms

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/GrainArc/GeoPrep/geodata"
)

type ReplaceOptions struct {
	Find           string `json:"find"`
	Replace        string `json:"replace"`
	TrimWhitespace bool   `json:"trimWhitespace"`
	CollapseSpaces bool   `json:"collapseSpaces"`
	CaseTransform  string `json:"caseTransform"` // upper、lower、title，空串不处理
}

var multiSpaceRe = regexp.MustCompile(`\s+`)

// ReplaceText 文本替换。处理顺序固定：查找替换、去首尾空白、合并连续空白、大小写转换。
// null值保持不变，处理后的值一律为字符串
func ReplaceText(records []geodata.Record, field string, opts ReplaceOptions) []geodata.Record {
	out := make([]geodata.Record, len(records))
	for i, rec := range records {
		props := rec.Props.Clone()
		v := rec.Props.Value(field)
		if !v.IsNull() {
			s := v.Text()
			if opts.Find != "" {
				s = strings.ReplaceAll(s, opts.Find, opts.Replace)
			}
			if opts.TrimWhitespace {
				s = strings.TrimSpace(s)
			}
			if opts.CollapseSpaces {
				s = multiSpaceRe.ReplaceAllString(s, " ")
			}
			switch opts.CaseTransform {
			case "upper":
				s = strings.ToUpper(s)
			case "lower":
				s = strings.ToLower(s)
			case "title":
				s = titleCase(s)
			}
			props.Set(field, geodata.StringValue(s))
		}
		out[i] = geodata.Record{Geometry: rec.Geometry, Props: props}
	}
	return out
}

// titleCase 每个词首字母大写其余小写
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := true
	for _, r := range s {
		if unicode.IsSpace(r) {
			prevSpace = true
			b.WriteRune(r)
			continue
		}
		if prevSpace {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
		prevSpace = false
	}
	return b.String()
}
