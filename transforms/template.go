package transforms

import (
	"regexp"

	"github.com/GrainArc/GeoPrep/geodata"
	"strings"
)

type TemplateOptions struct {
	TrimWhitespace           bool `json:"trimWhitespace"`
	CollapseSpaces           bool `json:"collapseSpaces"`
	RemoveEmptyWrappers      bool `json:"removeEmptyWrappers"`
	RemoveDanglingSeparators bool `json:"removeDanglingSeparators"`
	CollapseSeparators       bool `json:"collapseSeparators"`
}

var placeholderRe = regexp.MustCompile(`\{([^{}]+)\}`)
var emptyWrapperRes = []*regexp.Regexp{
	regexp.MustCompile(`\(\s*\)`),
	regexp.MustCompile(`\[\s*\]`),
	regexp.MustCompile(`\{\s*\}`),
}
var leadingSepRe = regexp.MustCompile(`^[\s,\-|]+`)
var trailingSepRe = regexp.MustCompile(`[\s,\-|]+$`)
var repeatSepRe = regexp.MustCompile(`([,\-|])(\s*[,\-|])+`)

// RenderTemplate 渲染单个要素的模板。{字段名}占位符替换为属性文本，
// null与缺失字段替换为空串；清理步骤按固定顺序执行：
// 去首尾空白、合并连续空白、去空括号对、去首尾残留分隔符、合并连续分隔符
func RenderTemplate(template string, props *geodata.PropertyMap, opts TemplateOptions) string {
	s := placeholderRe.ReplaceAllStringFunc(template, func(m string) string {
		name := m[1 : len(m)-1]
		return props.Value(name).Text()
	})
	if opts.TrimWhitespace {
		s = strings.TrimSpace(s)
	}
	if opts.CollapseSpaces {
		s = multiSpaceRe.ReplaceAllString(s, " ")
	}
	if opts.RemoveEmptyWrappers {
		for {
			next := s
			for _, re := range emptyWrapperRes {
				next = re.ReplaceAllString(next, "")
			}
			if next == s {
				break
			}
			s = next
		}
	}
	if opts.RemoveDanglingSeparators {
		s = leadingSepRe.ReplaceAllString(s, "")
		s = trailingSepRe.ReplaceAllString(s, "")
	}
	if opts.CollapseSeparators {
		s = repeatSepRe.ReplaceAllString(s, "$1")
	}
	return s
}

// ApplyTemplate 把模板结果写入每个要素的目标字段
func ApplyTemplate(records []geodata.Record, template string, outputField string, opts TemplateOptions) []geodata.Record {
	out := make([]geodata.Record, len(records))
	for i, rec := range records {
		props := rec.Props.Clone()
		props.Set(outputField, geodata.StringValue(RenderTemplate(template, rec.Props, opts)))
		out[i] = geodata.Record{Geometry: rec.Geometry, Props: props}
	}
	return out
}

const previewLimit = 10

// PreviewTemplate 对前若干个要素试算模板，与ApplyTemplate走同一条渲染路径，
// 结果逐字节一致
func PreviewTemplate(records []geodata.Record, template string, opts TemplateOptions) []string {
	n := len(records)
	if n > previewLimit {
		n = previewLimit
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = RenderTemplate(template, records[i].Props, opts)
	}
	return out
}
