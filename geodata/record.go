package geodata

import (
	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// 数据集类型
const (
	DatasetSpatial = "spatial"
	DatasetTable   = "table"
)

// 坐标系只做标记透传，不做任何转换
const DefaultCRS = "EPSG:4326"

// Record 空间要素与表格行的统一载体，表格行的Geometry为nil。
// 所有数据处理操作只通过Props访问属性，不区分两种形态
type Record struct {
	Geometry orb.Geometry
	Props    *PropertyMap
}

func NewRecord(g orb.Geometry) Record {
	return Record{Geometry: g, Props: NewPropertyMap()}
}

func (r Record) IsSpatial() bool {
	return r.Geometry != nil
}

// Clone 深拷贝，几何与属性均独立
func (r Record) Clone() Record {
	out := Record{}
	if r.Geometry != nil {
		out.Geometry = orb.Clone(r.Geometry)
	}
	if r.Props != nil {
		out.Props = r.Props.Clone()
	} else {
		out.Props = NewPropertyMap()
	}
	return out
}

// CloneRecords 要素序列深拷贝。历史快照与活动图层数据之间不允许共享底层对象
func CloneRecords(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}

// Dataset 一个图层持有的数据集
type Dataset struct {
	ID      string
	Name    string
	Kind    string
	CRS     string
	Records []Record
}

func NewDataset(name string, kind string) *Dataset {
	return &Dataset{
		ID:   uuid.New().String(),
		Name: name,
		Kind: kind,
		CRS:  DefaultCRS,
	}
}
