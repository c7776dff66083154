package history

import (
	"sync"

	"github.com/GrainArc/GeoPrep/geodata"
	"github.com/GrainArc/GeoPrep/transforms"
)

// State 图层某一时刻的可恢复状态。Filter与FilterBase是过滤簿记，
// 没有生效的过滤时均为nil
type State struct {
	Records    []geodata.Record
	Filter     *transforms.Filter
	FilterBase []geodata.Record
}

// Entry 一次操作前的图层快照。Snapshot是完整的要素序列深拷贝，
// Filter与FilterBase记录快照时刻的过滤簿记，撤销/重做时一并还原
type Entry struct {
	LayerID    string
	Label      string
	Snapshot   []geodata.Record
	Filter     *transforms.Filter
	FilterBase []geodata.Record
}

// CaptureFunc 取指定图层当前状态的回调，图层不存在时第二个返回值为false
type CaptureFunc func(layerID string) (State, bool)

// HistoryState 撤销/重做可用状态，供界面控制按钮
type HistoryState struct {
	CanUndo bool `json:"canUndo"`
	CanRedo bool `json:"canRedo"`
}

// Manager 会话级撤销/重做双栈。栈是全局的，不同图层的条目按时间顺序交错；
// 所有修改操作在改动数据之前调用SaveSnapshot
type Manager struct {
	mu        sync.Mutex
	undoStack []Entry
	redoStack []Entry
	maxDepth  int
	capture   CaptureFunc
}

// NewManager 创建历史管理器。maxDepth为0时不限制栈深，
// 超过深度时最早的条目被静默丢弃
func NewManager(maxDepth int, capture CaptureFunc) *Manager {
	return &Manager{maxDepth: maxDepth, capture: capture}
}

func cloneFilter(f *transforms.Filter) *transforms.Filter {
	if f == nil {
		return nil
	}
	out := *f
	out.Rules = append([]transforms.FilterRule(nil), f.Rules...)
	return &out
}

// cloneBase 保留nil：底数为nil表示没有生效的过滤
func cloneBase(records []geodata.Record) []geodata.Record {
	if records == nil {
		return nil
	}
	return geodata.CloneRecords(records)
}

func cloneEntry(layerID, label string, st State) Entry {
	return Entry{
		LayerID:    layerID,
		Label:      label,
		Snapshot:   geodata.CloneRecords(st.Records),
		Filter:     cloneFilter(st.Filter),
		FilterBase: cloneBase(st.FilterBase),
	}
}

// SaveSnapshot 压入当前状态的深拷贝并清空重做栈
func (m *Manager) SaveSnapshot(layerID, label string, st State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.undoStack = append(m.undoStack, cloneEntry(layerID, label, st))
	m.redoStack = m.redoStack[:0]
	if m.maxDepth > 0 && len(m.undoStack) > m.maxDepth {
		drop := len(m.undoStack) - m.maxDepth
		m.undoStack = append([]Entry(nil), m.undoStack[drop:]...)
	}
}

// DropLast 丢弃撤销栈顶中属于指定图层的条目，用于清掉失败操作预先压入的快照。
// 栈顶属于其他图层时不动
func (m *Manager) DropLast(layerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.undoStack)
	if n == 0 || m.undoStack[n-1].LayerID != layerID {
		return
	}
	m.undoStack = m.undoStack[:n-1]
}

// Undo 弹出撤销栈顶。弹出前把该图层的当前状态压入重做栈，
// 这样重做能回到撤销前的样子。栈空时返回false，不是错误
func (m *Manager) Undo() (*Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.undoStack)
	if n == 0 {
		return nil, false
	}
	entry := m.undoStack[n-1]
	m.undoStack = m.undoStack[:n-1]
	if m.capture != nil {
		if cur, ok := m.capture(entry.LayerID); ok {
			m.redoStack = append(m.redoStack, cloneEntry(entry.LayerID, entry.Label, cur))
		}
	}
	out := cloneEntry(entry.LayerID, entry.Label, State{
		Records:    entry.Snapshot,
		Filter:     entry.Filter,
		FilterBase: entry.FilterBase,
	})
	return &out, true
}

// Redo 与Undo对称，弹出重做栈顶并把当前状态压回撤销栈
func (m *Manager) Redo() (*Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.redoStack)
	if n == 0 {
		return nil, false
	}
	entry := m.redoStack[n-1]
	m.redoStack = m.redoStack[:n-1]
	if m.capture != nil {
		if cur, ok := m.capture(entry.LayerID); ok {
			m.undoStack = append(m.undoStack, cloneEntry(entry.LayerID, entry.Label, cur))
		}
	}
	out := cloneEntry(entry.LayerID, entry.Label, State{
		Records:    entry.Snapshot,
		Filter:     entry.Filter,
		FilterBase: entry.FilterBase,
	})
	return &out, true
}

// State 当前可撤销/可重做状态
func (m *Manager) State() HistoryState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return HistoryState{
		CanUndo: len(m.undoStack) > 0,
		CanRedo: len(m.redoStack) > 0,
	}
}
