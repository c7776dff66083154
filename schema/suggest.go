package schema

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
)

var fieldNameFilterRe = regexp.MustCompile(`[^\p{Han}\p{Latin}\p{N}_]`)
var leadingDigitsRe = regexp.MustCompile(`^(\d+)(.*)$`)

func filterFieldName(str string) string {
	result := fieldNameFilterRe.ReplaceAllString(str, "")
	result = strings.ReplaceAll(result, " ", "")
	return result
}

func moveLeadingNumbersToEnd(s string) string {
	match := leadingDigitsRe.FindStringSubmatch(s)
	if len(match) == 3 {
		return match[2] + match[1]
	}
	return s
}

// SuggestOutputName 生成适合外部平台的导出字段名：
// 汉字转拼音首字母，去掉特殊字符，开头的数字移到末尾，统一小写。
// 只是建议值，不会自动写入结构
func SuggestOutputName(name string) string {
	name = filterFieldName(name)
	a := pinyin.NewArgs()
	a.Style = pinyin.FirstLetter
	var result string
	for _, runeValue := range name {
		if unicode.Is(unicode.Han, runeValue) {
			pinyinSlice := pinyin.SinglePinyin(runeValue, a)
			if len(pinyinSlice) > 0 {
				result += pinyinSlice[0]
			}
		} else {
			result += string(runeValue)
		}
	}
	processed := moveLeadingNumbersToEnd(result)
	return strings.ToLower(processed)
}

// SuggestOutputNames 为结构中全部字段生成导出名建议
func SuggestOutputNames(s *Schema) map[string]string {
	out := make(map[string]string, len(s.Fields))
	for _, f := range s.Fields {
		out[f.Name] = SuggestOutputName(f.Name)
	}
	return out
}
