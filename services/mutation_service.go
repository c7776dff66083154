// services/mutation_service.go
package services

import (
	"errors"

	"github.com/GrainArc/GeoPrep/geodata"
	"github.com/GrainArc/GeoPrep/history"
	"github.com/GrainArc/GeoPrep/schema"
	"github.com/GrainArc/GeoPrep/transforms"
)

var (
	ErrNoActiveLayer = errors.New("没有选中的图层")
	ErrLayerRemoved  = errors.New("图层已被移除")
)

// TransformFunc 对要素序列的一次变换。入参是当前要素，返回新的序列，
// 实现方不能原地修改入参
type TransformFunc func(records []geodata.Record) ([]geodata.Record, error)

// MutationService 修改操作的统一入口，保证每次变更都走同一套流程：
// 先存快照，再执行变换，成功后重算结构并只发一次通知
type MutationService struct {
	Layers  *LayerService
	History *history.Manager
}

func NewMutationService(layers *LayerService, hist *history.Manager) *MutationService {
	return &MutationService{Layers: layers, History: hist}
}

// Apply 对活动图层执行一次变换。变换返回错误时数据保持原样，
// 预先入栈的快照也一并撤掉，不留无效历史
func (s *MutationService) Apply(label string, fn TransformFunc) (*Layer, error) {
	active := s.Layers.ActiveLayer()
	if active == nil {
		return nil, ErrNoActiveLayer
	}
	id := active.Dataset.ID

	lock := s.Layers.lockLayer(id)
	lock.Lock()
	defer lock.Unlock()

	layer := s.Layers.Layer(id)
	if layer == nil {
		return nil, ErrLayerRemoved
	}
	st, _ := s.Layers.CaptureState(id)
	s.History.SaveSnapshot(id, label, st)

	result, err := fn(st.Records)
	if err != nil {
		s.History.DropLast(id)
		return nil, err
	}

	fresh := schema.Analyze(result)
	schema.MergeOverlay(fresh, s.Layers.SchemaOf(id))
	if !s.Layers.install(id, result, fresh) {
		s.History.DropLast(id)
		return nil, ErrLayerRemoved
	}
	s.Layers.Notify(id, label)
	return s.Layers.Layer(id), nil
}

// Undo 撤销最近一次操作。没有可撤销的历史时返回(nil, nil)
func (s *MutationService) Undo() (*history.Entry, error) {
	entry, ok := s.History.Undo()
	if !ok {
		return nil, nil
	}
	if err := s.restore(entry, "撤销: "+entry.Label); err != nil {
		return nil, err
	}
	return entry, nil
}

// Redo 重做最近撤销的操作。重做栈空时返回(nil, nil)
func (s *MutationService) Redo() (*history.Entry, error) {
	entry, ok := s.History.Redo()
	if !ok {
		return nil, nil
	}
	if err := s.restore(entry, "重做: "+entry.Label); err != nil {
		return nil, err
	}
	return entry, nil
}

// restore 把快照装回图层，重算结构并还原当时的过滤簿记
func (s *MutationService) restore(entry *history.Entry, label string) error {
	lock := s.Layers.lockLayer(entry.LayerID)
	lock.Lock()
	defer lock.Unlock()

	records := geodata.CloneRecords(entry.Snapshot)
	fresh := schema.Analyze(records)
	schema.MergeOverlay(fresh, s.Layers.SchemaOf(entry.LayerID))
	if !s.Layers.install(entry.LayerID, records, fresh) {
		return ErrLayerRemoved
	}

	var f *transforms.Filter
	if entry.Filter != nil {
		cp := *entry.Filter
		cp.Rules = append([]transforms.FilterRule(nil), entry.Filter.Rules...)
		f = &cp
	}
	var base []geodata.Record
	if entry.FilterBase != nil {
		base = geodata.CloneRecords(entry.FilterBase)
	}
	s.Layers.setFilterState(entry.LayerID, f, base)

	s.Layers.Notify(entry.LayerID, label)
	return nil
}
