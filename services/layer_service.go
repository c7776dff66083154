// services/layer_service.go
package services

import (
	"errors"
	"sync"
	"time"

	"github.com/GrainArc/GeoPrep/geodata"
	"github.com/GrainArc/GeoPrep/history"
	"github.com/GrainArc/GeoPrep/schema"
	"github.com/GrainArc/GeoPrep/transforms"
)

var (
	ErrLayerNotFound = errors.New("图层不存在")
	ErrFieldNotFound = errors.New("字段不存在")
)

// Layer 一个已加载的数据集及其工作状态。
// PreFilterBase保存过滤前的完整要素，换过滤条件时从它重新计算，过滤不会叠加
type Layer struct {
	Dataset       *geodata.Dataset
	Schema        *schema.Schema
	ActiveFilter  *transforms.Filter
	PreFilterBase []geodata.Record
}

const (
	EventLayerUpdated  = "layer:updated"
	EventLayersChanged = "layers:changed"
)

// Event 图层变化通知，推给websocket和操作记录
type Event struct {
	Type      string `json:"type"`
	LayerID   string `json:"layerId"`
	LayerName string `json:"layerName"`
	Label     string `json:"label"`
	Count     int    `json:"count"`
	Date      string `json:"date"`
}

type Listener func(Event)

// LayerInfo 图层列表项
type LayerInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	CRS      string `json:"crs"`
	Count    int    `json:"count"`
	Active   bool   `json:"active"`
	Filtered bool   `json:"filtered"`
}

// LayerService 管理会话内的全部图层。mu保护图层表本身，
// locks按图层串行化修改操作，避免两个请求同时改同一图层
type LayerService struct {
	mu        sync.RWMutex
	layers    []*Layer
	index     map[string]*Layer
	activeID  string
	locks     map[string]*sync.Mutex
	listeners []Listener
}

func NewLayerService() *LayerService {
	return &LayerService{
		index: make(map[string]*Layer),
		locks: make(map[string]*sync.Mutex),
	}
}

// AddLayer 加入数据集，分析结构并设为活动图层。
// fieldNames只对表格数据有意义，保持上传时的列顺序
func (s *LayerService) AddLayer(ds *geodata.Dataset, fieldNames []string) *Layer {
	var sch *schema.Schema
	if ds.Kind == geodata.DatasetTable {
		sch = schema.AnalyzeTable(ds.Records, fieldNames)
	} else {
		sch = schema.Analyze(ds.Records)
	}
	sch.CRS = ds.CRS
	layer := &Layer{Dataset: ds, Schema: sch}

	s.mu.Lock()
	s.layers = append(s.layers, layer)
	s.index[ds.ID] = layer
	s.activeID = ds.ID
	s.mu.Unlock()

	s.notify(Event{
		Type:      EventLayersChanged,
		LayerID:   ds.ID,
		LayerName: ds.Name,
		Label:     "图层导入",
		Count:     len(ds.Records),
		Date:      nowString(),
	})
	return layer
}

// RemoveLayer 移除图层，若删的是活动图层则清空活动状态
func (s *LayerService) RemoveLayer(id string) bool {
	s.mu.Lock()
	layer, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.index, id)
	delete(s.locks, id)
	for i, l := range s.layers {
		if l == layer {
			s.layers = append(s.layers[:i], s.layers[i+1:]...)
			break
		}
	}
	if s.activeID == id {
		s.activeID = ""
	}
	s.mu.Unlock()

	s.notify(Event{
		Type:      EventLayersChanged,
		LayerID:   id,
		LayerName: layer.Dataset.Name,
		Label:     "图层移除",
		Count:     0,
		Date:      nowString(),
	})
	return true
}

func (s *LayerService) SetActive(id string) bool {
	s.mu.Lock()
	layer, ok := s.index[id]
	if ok {
		s.activeID = id
	}
	s.mu.Unlock()
	if !ok {
		return false
	}
	s.notify(Event{
		Type:      EventLayersChanged,
		LayerID:   id,
		LayerName: layer.Dataset.Name,
		Label:     "切换活动图层",
		Count:     len(layer.Dataset.Records),
		Date:      nowString(),
	})
	return true
}

func (s *LayerService) ActiveLayer() *Layer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.activeID == "" {
		return nil
	}
	return s.index[s.activeID]
}

func (s *LayerService) Layer(id string) *Layer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index[id]
}

func (s *LayerService) Layers() []*Layer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Layer, len(s.layers))
	copy(out, s.layers)
	return out
}

// LayersInfo 图层列表，按加载顺序
func (s *LayerService) LayersInfo() []LayerInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]LayerInfo, 0, len(s.layers))
	for _, l := range s.layers {
		out = append(out, LayerInfo{
			ID:       l.Dataset.ID,
			Name:     l.Dataset.Name,
			Kind:     l.Dataset.Kind,
			CRS:      l.Dataset.CRS,
			Count:    len(l.Dataset.Records),
			Active:   l.Dataset.ID == s.activeID,
			Filtered: l.ActiveFilter != nil,
		})
	}
	return out
}

// CaptureState 历史管理器的取数回调，连同过滤簿记一起取，
// 撤销/重做时簿记随数据一并还原
func (s *LayerService) CaptureState(id string) (history.State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	layer, ok := s.index[id]
	if !ok {
		return history.State{}, false
	}
	return history.State{
		Records:    layer.Dataset.Records,
		Filter:     layer.ActiveFilter,
		FilterBase: layer.PreFilterBase,
	}, true
}

// CaptureRecords 只取要素序列
func (s *LayerService) CaptureRecords(id string) ([]geodata.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	layer, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return layer.Dataset.Records, true
}

func (s *LayerService) RecordsOf(id string) ([]geodata.Record, bool) {
	return s.CaptureRecords(id)
}

// SchemaOf 返回结构的浅拷贝，字段切片是复制的，调用方可以改Selected等标记
func (s *LayerService) SchemaOf(id string) *schema.Schema {
	s.mu.RLock()
	defer s.mu.RUnlock()
	layer, ok := s.index[id]
	if !ok || layer.Schema == nil {
		return nil
	}
	out := *layer.Schema
	out.Fields = make([]schema.Field, len(layer.Schema.Fields))
	copy(out.Fields, layer.Schema.Fields)
	return &out
}

// UpdateFieldSelection 更新单个字段的勾选状态和输出名
func (s *LayerService) UpdateFieldSelection(id, field string, selected bool, outputName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	layer, ok := s.index[id]
	if !ok {
		return ErrLayerNotFound
	}
	if !schema.SetFieldSelection(layer.Schema, field, selected, outputName) {
		return ErrFieldNotFound
	}
	return nil
}

// lockLayer 取图层的操作锁，没有就建一个
func (s *LayerService) lockLayer(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

// install 原子替换图层的要素和结构。图层已被移除时返回false
func (s *LayerService) install(id string, records []geodata.Record, sch *schema.Schema) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	layer, ok := s.index[id]
	if !ok {
		return false
	}
	layer.Dataset.Records = records
	if sch != nil {
		sch.CRS = layer.Dataset.CRS
		layer.Schema = sch
	}
	return true
}

func (s *LayerService) filterState(id string) (*transforms.Filter, []geodata.Record) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	layer, ok := s.index[id]
	if !ok {
		return nil, nil
	}
	return layer.ActiveFilter, layer.PreFilterBase
}

func (s *LayerService) setFilterState(id string, f *transforms.Filter, base []geodata.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	layer, ok := s.index[id]
	if !ok {
		return
	}
	layer.ActiveFilter = f
	layer.PreFilterBase = base
}

// Subscribe 注册事件监听，回调在发通知的goroutine里执行
func (s *LayerService) Subscribe(fn Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// notify 在锁外调用监听器，避免回调里再进服务时死锁
func (s *LayerService) notify(ev Event) {
	s.mu.RLock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()
	for _, fn := range listeners {
		fn(ev)
	}
}

// Notify 给其他服务发图层更新事件用
func (s *LayerService) Notify(id, label string) {
	s.mu.RLock()
	layer, ok := s.index[id]
	var name string
	var count int
	if ok {
		name = layer.Dataset.Name
		count = len(layer.Dataset.Records)
	}
	s.mu.RUnlock()
	if !ok {
		return
	}
	s.notify(Event{
		Type:      EventLayerUpdated,
		LayerID:   id,
		LayerName: name,
		Label:     label,
		Count:     count,
		Date:      nowString(),
	})
}

func nowString() string {
	return time.Now().Format("2006-01-02 15:04:05")
}
