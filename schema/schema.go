package schema

import (
	"strings"

	"github.com/GrainArc/GeoPrep/geodata"
)

// Field 单个字段的结构描述。Selected与OutputName由用户设置，
// 结构重算时按字段名转移，其余属性每次重算全部覆盖
type Field struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	NullCount   int      `json:"nullCount"`
	UniqueCount int      `json:"uniqueCount"`
	Samples     []string `json:"samples"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	OutputName  string   `json:"outputName"`
	Selected    bool     `json:"selected"`
	Order       int      `json:"order"`
}

// Schema 数据集的结构描述。数据每次变更后整体重算，不做增量修补，
// 相同的输入序列必然得到相同的结果
type Schema struct {
	Fields       []Field `json:"fields"`
	GeometryType string  `json:"geometryType,omitempty"`
	FeatureCount int     `json:"featureCount"`
	CRS          string  `json:"crs"`
}

const sampleLimit = 5

type fieldProbe struct {
	nonNull   int
	numCount  int
	distinct  map[string]struct{}
	samples   []string
	allNumber bool
	allBool   bool
	allDate   bool
	min       float64
	max       float64
}

func newFieldProbe() *fieldProbe {
	return &fieldProbe{
		distinct:  make(map[string]struct{}),
		allNumber: true,
		allBool:   true,
		allDate:   true,
	}
}

func (p *fieldProbe) observe(v geodata.Value) {
	text := v.Text()
	if _, ok := p.distinct[text]; !ok {
		p.distinct[text] = struct{}{}
		if len(p.samples) < sampleLimit {
			p.samples = append(p.samples, text)
		}
	}
	if f, ok := numericValue(v); ok {
		if p.numCount == 0 || f < p.min {
			p.min = f
		}
		if p.numCount == 0 || f > p.max {
			p.max = f
		}
		p.numCount++
	} else {
		p.allNumber = false
	}
	if !booleanLiteral(v) {
		p.allBool = false
	}
	if !dateLiteral(v) {
		p.allDate = false
	}
	p.nonNull++
}

// fieldType 类型推断优先级：数值、布尔、日期、字符串。无非空值时默认字符串
func (p *fieldProbe) fieldType() string {
	if p.nonNull == 0 {
		return "string"
	}
	if p.allNumber {
		return "number"
	}
	if p.allBool {
		return "boolean"
	}
	if p.allDate {
		return "date"
	}
	return "string"
}

func numericValue(v geodata.Value) (float64, bool) {
	if v.Kind() == geodata.KindNumber || v.Kind() == geodata.KindString {
		return v.Float64()
	}
	return 0, false
}

var boolLiterals = map[string]bool{"true": true, "false": true, "1": true, "0": true}

func booleanLiteral(v geodata.Value) bool {
	return boolLiterals[strings.ToLower(strings.TrimSpace(v.Text()))]
}

func dateLiteral(v geodata.Value) bool {
	if v.Kind() == geodata.KindDate {
		return true
	}
	if v.Kind() != geodata.KindString {
		return false
	}
	_, ok := geodata.ParseDate(v.Text())
	return ok
}

// Analyze 从要素序列推断结构。字段取全部要素属性键的并集，
// 按首次出现顺序排列；缺失的键按null计数
func Analyze(records []geodata.Record) *Schema {
	return analyze(records, nil, true)
}

// AnalyzeTable 表格行结构推断，fieldNames可指定字段顺序（如表头顺序）
func AnalyzeTable(rows []geodata.Record, fieldNames []string) *Schema {
	return analyze(rows, fieldNames, false)
}

func analyze(records []geodata.Record, fieldNames []string, withGeometry bool) *Schema {
	s := &Schema{
		Fields:       []Field{},
		FeatureCount: len(records),
		CRS:          geodata.DefaultCRS,
	}

	order := make([]string, 0)
	probes := make(map[string]*fieldProbe)
	addField := func(name string) *fieldProbe {
		p, ok := probes[name]
		if !ok {
			p = newFieldProbe()
			probes[name] = p
			order = append(order, name)
		}
		return p
	}

	for _, name := range fieldNames {
		addField(name)
	}
	for _, rec := range records {
		if rec.Props == nil {
			continue
		}
		for _, k := range rec.Props.Keys() {
			p := addField(k)
			v := rec.Props.Value(k)
			if !v.IsNull() {
				p.observe(v)
			}
		}
	}

	for i, name := range order {
		p := probes[name]
		f := Field{
			Name:        name,
			Type:        p.fieldType(),
			NullCount:   len(records) - p.nonNull,
			UniqueCount: len(p.distinct),
			Samples:     p.samples,
			OutputName:  name,
			Selected:    true,
			Order:       i,
		}
		if f.Samples == nil {
			f.Samples = []string{}
		}
		if p.allNumber && p.numCount > 0 {
			mn, mx := p.min, p.max
			f.Min = &mn
			f.Max = &mx
		}
		s.Fields = append(s.Fields, f)
	}

	if withGeometry {
		s.GeometryType = geometryType(records)
	}
	return s
}

// geometryType 全部非空几何类型一致时返回该类型，混合或无几何返回空串
func geometryType(records []geodata.Record) string {
	gtype := ""
	for _, rec := range records {
		if rec.Geometry == nil {
			continue
		}
		t := rec.Geometry.GeoJSONType()
		if gtype == "" {
			gtype = t
		} else if gtype != t {
			return ""
		}
	}
	return gtype
}
