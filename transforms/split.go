package transforms

import (
	"fmt"
	"strings"

	"github.com/GrainArc/GeoPrep/geodata"
)

type SplitOptions struct {
	Delimiter string `json:"delimiter"`
	Trim      bool   `json:"trim"`
	MaxParts  int    `json:"maxParts"` // 0表示不限制
}

// SplitColumn 按分隔符把字段值拆分到field_1..field_N。
// N取maxParts与实际最大段数中生效的一个，超出maxParts的段被丢弃；
// 源值为null的要素各派生字段补null
func SplitColumn(records []geodata.Record, field string, opts SplitOptions) []geodata.Record {
	parts := make([][]string, len(records))
	n := 0
	for i, rec := range records {
		v := rec.Props.Value(field)
		if v.IsNull() {
			continue
		}
		text := v.Text()
		var ps []string
		if opts.Delimiter == "" {
			ps = []string{text}
		} else {
			ps = strings.Split(text, opts.Delimiter)
		}
		if opts.MaxParts > 0 && len(ps) > opts.MaxParts {
			ps = ps[:opts.MaxParts]
		}
		if opts.Trim {
			for j := range ps {
				ps[j] = strings.TrimSpace(ps[j])
			}
		}
		parts[i] = ps
		if len(ps) > n {
			n = len(ps)
		}
	}

	out := make([]geodata.Record, len(records))
	for i, rec := range records {
		props := rec.Props.Clone()
		for j := 0; j < n; j++ {
			key := fmt.Sprintf("%s_%d", field, j+1)
			if parts[i] != nil && j < len(parts[i]) {
				props.Set(key, geodata.StringValue(parts[i][j]))
			} else {
				props.Set(key, geodata.NullValue())
			}
		}
		out[i] = geodata.Record{Geometry: rec.Geometry, Props: props}
	}
	return out
}
