package transforms

import (
	"strings"

	"github.com/GrainArc/GeoPrep/geodata"
)

// ConvertResult 类型转换结果，Failures为转换失败的值个数
type ConvertResult struct {
	Records  []geodata.Record
	Failures int
}

var truthyWords = map[string]bool{"1": true, "t": true, "true": true, "yes": true, "y": true}
var falsyWords = map[string]bool{"0": true, "f": true, "false": true, "no": true, "n": true}

// TypeConvert 字段类型转换，目标类型为number、string、boolean或date。
// 单个值转换失败时保留原值并计入失败数，整个操作不会中断；null值不参与转换
func TypeConvert(records []geodata.Record, field string, targetType string) ConvertResult {
	res := ConvertResult{Records: make([]geodata.Record, len(records))}
	target := strings.ToLower(strings.TrimSpace(targetType))
	for i, rec := range records {
		props := rec.Props.Clone()
		v := rec.Props.Value(field)
		if !v.IsNull() {
			if nv, ok := convertValue(v, target); ok {
				props.Set(field, nv)
			} else {
				res.Failures++
			}
		}
		res.Records[i] = geodata.Record{Geometry: rec.Geometry, Props: props}
	}
	return res
}

func convertValue(v geodata.Value, target string) (geodata.Value, bool) {
	switch target {
	case "number":
		if f, ok := v.Float64(); ok {
			return geodata.NumberValue(f), true
		}
	case "string":
		return geodata.StringValue(v.Text()), true
	case "boolean":
		if v.Kind() == geodata.KindBool {
			return v, true
		}
		w := strings.ToLower(strings.TrimSpace(v.Text()))
		if truthyWords[w] {
			return geodata.BoolValue(true), true
		}
		if falsyWords[w] {
			return geodata.BoolValue(false), true
		}
	case "date", "date-iso", "date_iso":
		if _, ok := v.Time(); ok {
			return v, true
		}
		if t, ok := geodata.ParseDate(v.Text()); ok {
			return geodata.DateValue(t), true
		}
	}
	return geodata.Value{}, false
}
