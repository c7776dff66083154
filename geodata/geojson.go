package geodata

import (
	"sort"

	"github.com/paulmach/orb/geojson"
)

// FromFeatureCollection 将GeoJSON要素集合转换为空间数据集。
// orb的属性是无序map，这里按键名排序写入，同一份数据多次导入字段顺序一致
func FromFeatureCollection(name string, fc *geojson.FeatureCollection) *Dataset {
	ds := NewDataset(name, DatasetSpatial)
	if fc == nil {
		return ds
	}
	for _, f := range fc.Features {
		if f == nil {
			continue
		}
		rec := NewRecord(f.Geometry)
		keys := make([]string, 0, len(f.Properties))
		for k := range f.Properties {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			rec.Props.Set(k, ParseValue(f.Properties[k]))
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds
}

// FromRows 将行数据转换为表格数据集，fieldOrder指定字段顺序（如表头），
// 行中没有的表头字段补null，表头之外的字段按键名排序追加
func FromRows(name string, rows []map[string]interface{}, fieldOrder []string) *Dataset {
	ds := NewDataset(name, DatasetTable)
	known := make(map[string]bool, len(fieldOrder))
	for _, k := range fieldOrder {
		known[k] = true
	}
	for _, row := range rows {
		rec := NewRecord(nil)
		for _, k := range fieldOrder {
			if raw, ok := row[k]; ok {
				rec.Props.Set(k, ParseValue(raw))
			} else {
				rec.Props.Set(k, NullValue())
			}
		}
		rest := make([]string, 0)
		for k := range row {
			if !known[k] {
				rest = append(rest, k)
			}
		}
		sort.Strings(rest)
		for _, k := range rest {
			rec.Props.Set(k, ParseValue(row[k]))
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds
}

// ToFeatureCollection 转回GeoJSON要素集合，表格行输出为无几何要素
func ToFeatureCollection(records []Record) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, rec := range records {
		f := geojson.NewFeature(rec.Geometry)
		if rec.Props != nil {
			for _, k := range rec.Props.Keys() {
				f.Properties[k] = rec.Props.Value(k).Interface()
			}
		}
		fc.Append(f)
	}
	return fc
}
