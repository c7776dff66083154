package transforms

import (
	"github.com/GrainArc/GeoPrep/geodata"
)

// JoinResult 关联结果，Matched与Unmatched分别为匹配和未匹配的要素数
type JoinResult struct {
	Records   []geodata.Record
	Matched   int
	Unmatched int
}

// JoinData 关联外部行数据。键值两侧统一转文本比较，字符串"12"与数值12视为相同键；
// 每个要素只取第一条匹配行；未匹配的要素属性保持原样，不补null。
// fieldsToJoin为空时复制除关联键外的全部字段
func JoinData(records []geodata.Record, joinRows []geodata.Record, leftKey, rightKey string, fieldsToJoin []string) JoinResult {
	index := make(map[string]geodata.Record, len(joinRows))
	for _, row := range joinRows {
		v := row.Props.Value(rightKey)
		if v.IsNull() {
			continue
		}
		k := v.Text()
		if _, ok := index[k]; !ok {
			index[k] = row
		}
	}

	res := JoinResult{Records: make([]geodata.Record, len(records))}
	for i, rec := range records {
		props := rec.Props.Clone()
		var row geodata.Record
		ok := false
		if v := rec.Props.Value(leftKey); !v.IsNull() {
			row, ok = index[v.Text()]
		}
		if ok {
			res.Matched++
			fields := fieldsToJoin
			if len(fields) == 0 {
				for _, k := range row.Props.Keys() {
					if k != rightKey {
						fields = append(fields, k)
					}
				}
			}
			for _, f := range fields {
				if fv, has := row.Props.Get(f); has {
					props.Set(f, fv)
				}
			}
		} else {
			res.Unmatched++
		}
		res.Records[i] = geodata.Record{Geometry: rec.Geometry, Props: props}
	}
	return res
}
