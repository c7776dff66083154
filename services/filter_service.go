// services/filter_service.go
package services

import (
	"errors"

	"github.com/GrainArc/GeoPrep/geodata"
	"github.com/GrainArc/GeoPrep/history"
	"github.com/GrainArc/GeoPrep/schema"
	"github.com/GrainArc/GeoPrep/transforms"
)

var ErrFilterStateInconsistent = errors.New("过滤状态不一致，已按未过滤处理，请使用撤销恢复数据")

// FilterService 过滤是一种特殊的修改：换条件时从过滤前的底数重新计算，
// 多次过滤不叠加。底数保存在图层的PreFilterBase里
type FilterService struct {
	Layers  *LayerService
	History *history.Manager
}

func NewFilterService(layers *LayerService, hist *history.Manager) *FilterService {
	return &FilterService{Layers: layers, History: hist}
}

// ApplyFilter 对活动图层应用过滤条件，返回命中数量。
// 已有过滤时不在过滤结果上再过滤，而是回到底数重算
func (s *FilterService) ApplyFilter(f transforms.Filter) (*Layer, int, error) {
	active := s.Layers.ActiveLayer()
	if active == nil {
		return nil, 0, ErrNoActiveLayer
	}
	id := active.Dataset.ID

	lock := s.Layers.lockLayer(id)
	lock.Lock()
	defer lock.Unlock()

	layer := s.Layers.Layer(id)
	if layer == nil {
		return nil, 0, ErrLayerRemoved
	}

	activeFilter, base := s.Layers.filterState(id)
	if activeFilter != nil && base == nil {
		// 有过滤标记却没有底数，状态被破坏了。按未过滤处理，
		// 数据不动，让用户用撤销找回
		s.Layers.setFilterState(id, nil, nil)
		return nil, 0, ErrFilterStateInconsistent
	}

	st, _ := s.Layers.CaptureState(id)
	s.History.SaveSnapshot(id, "应用过滤器", st)

	if base == nil {
		base = geodata.CloneRecords(st.Records)
	}
	result := geodata.CloneRecords(transforms.ApplyFilters(base, f.Rules, f.Logic))

	fresh := schema.Analyze(result)
	schema.MergeOverlay(fresh, s.Layers.SchemaOf(id))
	if !s.Layers.install(id, result, fresh) {
		return nil, 0, ErrLayerRemoved
	}
	s.Layers.setFilterState(id, &f, base)
	s.Layers.Notify(id, "应用过滤器")
	return s.Layers.Layer(id), len(result), nil
}

// RemoveFilter 取消过滤，恢复到过滤前的底数。没有过滤时是空操作
func (s *FilterService) RemoveFilter() (*Layer, error) {
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

	activeFilter, base := s.Layers.filterState(id)
	if activeFilter == nil && base == nil {
		return layer, nil
	}
	if base == nil {
		s.Layers.setFilterState(id, nil, nil)
		return nil, ErrFilterStateInconsistent
	}

	st, _ := s.Layers.CaptureState(id)
	s.History.SaveSnapshot(id, "取消过滤器", st)

	restored := geodata.CloneRecords(base)
	fresh := schema.Analyze(restored)
	schema.MergeOverlay(fresh, s.Layers.SchemaOf(id))
	if !s.Layers.install(id, restored, fresh) {
		return nil, ErrLayerRemoved
	}
	s.Layers.setFilterState(id, nil, nil)
	s.Layers.Notify(id, "取消过滤器")
	return s.Layers.Layer(id), nil
}
