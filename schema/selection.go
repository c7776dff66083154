package schema

import (
	"github.com/GrainArc/GeoPrep/geodata"
	"github.com/paulmach/orb"
)

// SelectedFields 按显示顺序返回勾选的字段
func SelectedFields(s *Schema) []Field {
	out := make([]Field, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f.Selected {
			out = append(out, f)
		}
	}
	return out
}

// ApplyFieldSelection 按字段勾选与重命名生成新要素，原要素不做任何修改。
// 要素上没有的字段不补null；多个字段重命名为同一输出名时后者覆盖前者
func ApplyFieldSelection(records []geodata.Record, s *Schema) []geodata.Record {
	sel := SelectedFields(s)
	out := make([]geodata.Record, 0, len(records))
	for _, rec := range records {
		props := geodata.NewPropertyMap()
		for _, f := range sel {
			name := f.OutputName
			if name == "" {
				name = f.Name
			}
			if rec.Props != nil {
				if v, ok := rec.Props.Get(f.Name); ok {
					props.Set(name, v)
				}
			}
		}
		var g orb.Geometry
		if rec.Geometry != nil {
			g = orb.Clone(rec.Geometry)
		}
		out = append(out, geodata.Record{Geometry: g, Props: props})
	}
	return out
}

// MergeOverlay 把旧结构中用户设置的勾选与输出名转移到新结构，按字段名匹配。
// 新出现的字段保持默认勾选，不再存在的字段随之丢弃
func MergeOverlay(fresh *Schema, prior *Schema) {
	if fresh == nil || prior == nil {
		return
	}
	idx := make(map[string]Field, len(prior.Fields))
	for _, f := range prior.Fields {
		idx[f.Name] = f
	}
	for i := range fresh.Fields {
		if old, ok := idx[fresh.Fields[i].Name]; ok {
			fresh.Fields[i].Selected = old.Selected
			fresh.Fields[i].OutputName = old.OutputName
		}
	}
}

// SetFieldSelection 更新单个字段的勾选与输出名，输出名为空时还原为字段名。
// 找不到字段返回false
func SetFieldSelection(s *Schema, name string, selected bool, outputName string) bool {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			s.Fields[i].Selected = selected
			if outputName != "" {
				s.Fields[i].OutputName = outputName
			} else {
				s.Fields[i].OutputName = s.Fields[i].Name
			}
			return true
		}
	}
	return false
}
