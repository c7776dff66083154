package schema

import (
	"testing"

	"github.com/GrainArc/GeoPrep/geodata"
	"github.com/go-test/deep"
	"github.com/paulmach/orb"
)

func rowRecords(rows []map[string]interface{}, fields []string) []geodata.Record {
	return geodata.FromRows("t", rows, fields).Records
}

func TestAnalyzeTypes(t *testing.T) {
	rows := []map[string]interface{}{
		{"num": float64(1), "txt": "a", "flag": "true", "day": "2024-03-15", "mixed": "1"},
		{"num": "2.5", "txt": "b", "flag": "false", "day": "2024-03-16", "mixed": "abc"},
	}
	s := Analyze(rowRecords(rows, []string{"num", "txt", "flag", "day", "mixed"}))

	want := map[string]string{
		"num":   "number",
		"txt":   "string",
		"flag":  "boolean",
		"day":   "date",
		"mixed": "string",
	}
	for _, f := range s.Fields {
		if f.Type != want[f.Name] {
			t.Errorf("field %s type = %q, want %q", f.Name, f.Type, want[f.Name])
		}
	}
	if s.FeatureCount != 2 {
		t.Errorf("FeatureCount = %d, want 2", s.FeatureCount)
	}
}

// 数值串同时也是合法布尔字面量时优先判成数值
func TestAnalyzeNumberBeatsBoolean(t *testing.T) {
	rows := []map[string]interface{}{
		{"v": "1"},
		{"v": "0"},
	}
	s := Analyze(rowRecords(rows, []string{"v"}))
	if s.Fields[0].Type != "number" {
		t.Errorf("type = %q, want number", s.Fields[0].Type)
	}
}

func TestAnalyzeNullAndUnique(t *testing.T) {
	rows := []map[string]interface{}{
		{"v": "a"},
		{"v": "a"},
		{"v": "b"},
		{"v": nil},
		{},
	}
	s := Analyze(rowRecords(rows, []string{"v"}))
	f := s.Fields[0]
	if f.NullCount != 2 {
		t.Errorf("NullCount = %d, want 2", f.NullCount)
	}
	if f.UniqueCount != 2 {
		t.Errorf("UniqueCount = %d, want 2", f.UniqueCount)
	}
	if diff := deep.Equal(f.Samples, []string{"a", "b"}); diff != nil {
		t.Error(diff)
	}
}

func TestAnalyzeSampleLimit(t *testing.T) {
	rows := make([]map[string]interface{}, 0, 10)
	vals := []string{"a", "b", "c", "d", "e", "f", "g"}
	for _, v := range vals {
		rows = append(rows, map[string]interface{}{"v": v})
	}
	s := Analyze(rowRecords(rows, []string{"v"}))
	if len(s.Fields[0].Samples) != sampleLimit {
		t.Errorf("samples = %d, want %d", len(s.Fields[0].Samples), sampleLimit)
	}
	if s.Fields[0].UniqueCount != len(vals) {
		t.Errorf("UniqueCount = %d, want %d", s.Fields[0].UniqueCount, len(vals))
	}
}

func TestAnalyzeMinMax(t *testing.T) {
	rows := []map[string]interface{}{
		{"n": float64(5), "s": "x"},
		{"n": float64(-2), "s": "y"},
		{"n": float64(10), "s": "z"},
	}
	s := Analyze(rowRecords(rows, []string{"n", "s"}))

	var numField, strField Field
	for _, f := range s.Fields {
		switch f.Name {
		case "n":
			numField = f
		case "s":
			strField = f
		}
	}
	if numField.Min == nil || *numField.Min != -2 {
		t.Errorf("Min = %v, want -2", numField.Min)
	}
	if numField.Max == nil || *numField.Max != 10 {
		t.Errorf("Max = %v, want 10", numField.Max)
	}
	if strField.Min != nil || strField.Max != nil {
		t.Error("string field should not carry min/max")
	}
}

func TestAnalyzeFieldOrder(t *testing.T) {
	rows := []map[string]interface{}{
		{"b": "1"},
		{"a": "2", "b": "3"},
	}
	// 无表头时按首次出现顺序：首行只有b，a在第二行才出现
	s := Analyze(rowRecords(rows, nil))
	if len(s.Fields) != 2 {
		t.Fatalf("fields = %d, want 2", len(s.Fields))
	}
	if s.Fields[0].Name != "b" || s.Fields[1].Name != "a" {
		t.Errorf("order = %s,%s want b,a", s.Fields[0].Name, s.Fields[1].Name)
	}
	for i, f := range s.Fields {
		if f.Order != i {
			t.Errorf("field %s Order = %d, want %d", f.Name, f.Order, i)
		}
	}
}

func TestAnalyzeTableHeaderOrder(t *testing.T) {
	rows := []map[string]interface{}{
		{"c": "1"},
	}
	s := AnalyzeTable(rowRecords(rows, []string{"a", "b", "c"}), []string{"a", "b", "c"})
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	if diff := deep.Equal(names, []string{"a", "b", "c"}); diff != nil {
		t.Error(diff)
	}
	if s.GeometryType != "" {
		t.Errorf("GeometryType = %q, want empty for table", s.GeometryType)
	}
}

func TestAnalyzeAllNullField(t *testing.T) {
	rows := []map[string]interface{}{
		{"v": nil},
		{"v": nil},
	}
	s := Analyze(rowRecords(rows, []string{"v"}))
	f := s.Fields[0]
	if f.Type != "string" {
		t.Errorf("all-null type = %q, want string", f.Type)
	}
	if f.NullCount != 2 {
		t.Errorf("NullCount = %d, want 2", f.NullCount)
	}
	if f.Samples == nil || len(f.Samples) != 0 {
		t.Errorf("Samples = %v, want empty slice", f.Samples)
	}
}

func TestAnalyzeGeometryType(t *testing.T) {
	uniform := []geodata.Record{
		geodata.NewRecord(orb.Point{1, 1}),
		geodata.NewRecord(orb.Point{2, 2}),
	}
	if s := Analyze(uniform); s.GeometryType != "Point" {
		t.Errorf("GeometryType = %q, want Point", s.GeometryType)
	}

	mixed := []geodata.Record{
		geodata.NewRecord(orb.Point{1, 1}),
		geodata.NewRecord(orb.LineString{{0, 0}, {1, 1}}),
	}
	if s := Analyze(mixed); s.GeometryType != "" {
		t.Errorf("GeometryType = %q, want empty for mixed", s.GeometryType)
	}
}
