package transforms

import (
	"strings"

	"github.com/GrainArc/GeoPrep/geodata"
	"github.com/google/uuid"
)

// AddUniqueID 为每个要素写入唯一标识字段。strategy为sequence时生成1..N的序号，
// 其余情况生成uuid。唯一性只保证在本次调用的结果内，重复执行会生成新的标识
func AddUniqueID(records []geodata.Record, fieldName string, strategy string) []geodata.Record {
	seq := strings.EqualFold(strings.TrimSpace(strategy), "sequence")
	out := make([]geodata.Record, len(records))
	for i, rec := range records {
		props := rec.Props.Clone()
		if seq {
			props.Set(fieldName, geodata.NumberValue(float64(i+1)))
		} else {
			props.Set(fieldName, geodata.StringValue(uuid.New().String()))
		}
		out[i] = geodata.Record{Geometry: rec.Geometry, Props: props}
	}
	return out
}
