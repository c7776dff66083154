package geodata

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func TestFromFeatureCollection(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	f := geojson.NewFeature(orb.Point{116.4, 39.9})
	f.Properties["name"] = "北京"
	f.Properties["pop"] = float64(2154)
	f.Properties["active"] = true
	fc.Append(f)

	ds := FromFeatureCollection("城市", fc)
	if ds.Kind != DatasetSpatial {
		t.Errorf("Kind = %q, want %q", ds.Kind, DatasetSpatial)
	}
	if ds.ID == "" {
		t.Error("dataset ID should be generated")
	}
	if len(ds.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(ds.Records))
	}

	rec := ds.Records[0]
	// 属性按键名排序写入
	if diff := deep.Equal(rec.Props.Keys(), []string{"active", "name", "pop"}); diff != nil {
		t.Error(diff)
	}
	if rec.Props.Value("name").Text() != "北京" {
		t.Errorf("name = %q", rec.Props.Value("name").Text())
	}
	if !rec.IsSpatial() {
		t.Error("record should be spatial")
	}
}

func TestFromRows(t *testing.T) {
	rows := []map[string]interface{}{
		{"name": "甲", "age": float64(30)},
		{"name": "乙", "extra": "x"},
	}
	ds := FromRows("人员", rows, []string{"name", "age"})
	if ds.Kind != DatasetTable {
		t.Errorf("Kind = %q, want %q", ds.Kind, DatasetTable)
	}
	if len(ds.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(ds.Records))
	}

	// 表头字段按顺序在前，行里缺的补null
	second := ds.Records[1]
	if diff := deep.Equal(second.Props.Keys(), []string{"name", "age", "extra"}); diff != nil {
		t.Error(diff)
	}
	if !second.Props.Value("age").IsNull() {
		t.Error("missing header field should be null")
	}
	if second.IsSpatial() {
		t.Error("table record should not be spatial")
	}
}

func TestToFeatureCollectionRoundTrip(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	f := geojson.NewFeature(orb.Point{1, 2})
	f.Properties["a"] = "x"
	f.Properties["n"] = float64(5)
	fc.Append(f)

	ds := FromFeatureCollection("t", fc)
	out := ToFeatureCollection(ds.Records)
	if len(out.Features) != 1 {
		t.Fatalf("features = %d, want 1", len(out.Features))
	}
	got := out.Features[0]
	if got.Properties["a"] != "x" {
		t.Errorf("a = %v, want x", got.Properties["a"])
	}
	if got.Properties["n"] != float64(5) {
		t.Errorf("n = %v, want 5", got.Properties["n"])
	}
	if got.Geometry.(orb.Point) != (orb.Point{1, 2}) {
		t.Errorf("geometry = %v", got.Geometry)
	}
}

func TestCloneRecordsIsolation(t *testing.T) {
	rec := NewRecord(orb.Point{1, 1})
	rec.Props.Set("a", StringValue("x"))
	clones := CloneRecords([]Record{rec})

	clones[0].Props.Set("a", StringValue("y"))
	if rec.Props.Value("a").Text() != "x" {
		t.Error("clone property mutation leaked into original")
	}
}
