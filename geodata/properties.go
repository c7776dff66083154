package geodata

import (
	"bytes"
	"encoding/json"
)

// PropertyMap 有序属性表，保持字段写入顺序，保证结构推断结果稳定
type PropertyMap struct {
	keys   []string
	values map[string]Value
}

func NewPropertyMap() *PropertyMap {
	return &PropertyMap{values: make(map[string]Value)}
}

// Set 写入属性，已存在的键保持原有位置
func (m *PropertyMap) Set(key string, v Value) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

func (m *PropertyMap) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Value 读取属性，缺失的键按null处理
func (m *PropertyMap) Value(key string) Value {
	if v, ok := m.values[key]; ok {
		return v
	}
	return NullValue()
}

func (m *PropertyMap) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Delete 删除属性，其余键保持相对顺序
func (m *PropertyMap) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys 按写入顺序返回全部键
func (m *PropertyMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *PropertyMap) Len() int {
	return len(m.keys)
}

// Clone 深拷贝
func (m *PropertyMap) Clone() *PropertyMap {
	out := &PropertyMap{
		keys:   make([]string, len(m.keys)),
		values: make(map[string]Value, len(m.values)),
	}
	copy(out.keys, m.keys)
	for k, v := range m.values {
		out.values[k] = v
	}
	return out
}

// ToMap 转换为普通map，供geojson属性输出使用
func (m *PropertyMap) ToMap() map[string]interface{} {
	out := make(map[string]interface{}, len(m.keys))
	for _, k := range m.keys {
		out[k] = m.values[k].Interface()
	}
	return out
}

// MarshalJSON 按键的写入顺序序列化
func (m *PropertyMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
