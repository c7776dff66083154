package transforms

import (
	"strings"

	"github.com/GrainArc/GeoPrep/geodata"
)

type CombineOptions struct {
	Delimiter   string `json:"delimiter"`
	OutputField string `json:"outputField"`
	SkipBlanks  bool   `json:"skipBlanks"`
}

// CombineColumns 按给定顺序把多个字段值拼接到目标字段。
// skipBlanks为true时跳过空值，否则空值按空串占位
func CombineColumns(records []geodata.Record, fields []string, opts CombineOptions) []geodata.Record {
	out := make([]geodata.Record, len(records))
	for i, rec := range records {
		parts := make([]string, 0, len(fields))
		for _, f := range fields {
			v := rec.Props.Value(f)
			if opts.SkipBlanks && v.IsEmpty() {
				continue
			}
			parts = append(parts, v.Text())
		}
		props := rec.Props.Clone()
		props.Set(opts.OutputField, geodata.StringValue(strings.Join(parts, opts.Delimiter)))
		out[i] = geodata.Record{Geometry: rec.Geometry, Props: props}
	}
	return out
}
