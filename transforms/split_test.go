package transforms

import (
	"testing"

	"github.com/go-test/deep"
)

func TestSplitColumn(t *testing.T) {
	rows := []map[string]interface{}{
		{"addr": "Provo, UT, 84601"},
		{"addr": "Orem, UT"},
		{"addr": nil},
	}
	records := tableRecords(rows, []string{"addr"})

	out := SplitColumn(records, "addr", SplitOptions{Delimiter: ",", Trim: true})
	if len(out) != 3 {
		t.Fatalf("records = %d, want 3", len(out))
	}

	first := out[0]
	if diff := deep.Equal(first.Props.Keys(), []string{"addr", "addr_1", "addr_2", "addr_3"}); diff != nil {
		t.Error(diff)
	}
	if first.Props.Value("addr_2").Text() != "UT" {
		t.Errorf("addr_2 = %q, want UT", first.Props.Value("addr_2").Text())
	}

	// 段数不足的要素补null
	second := out[1]
	if !second.Props.Value("addr_3").IsNull() {
		t.Error("addr_3 should be null for two-part value")
	}

	// 源值为null的要素所有派生字段都是null
	third := out[2]
	for _, k := range []string{"addr_1", "addr_2", "addr_3"} {
		if !third.Props.Value(k).IsNull() {
			t.Errorf("%s should be null for null source", k)
		}
	}

	// 原要素不变
	if records[0].Props.Has("addr_1") {
		t.Error("split should not mutate source records")
	}
}

func TestSplitColumnMaxParts(t *testing.T) {
	rows := []map[string]interface{}{
		{"v": "a|b|c|d"},
	}
	records := tableRecords(rows, []string{"v"})

	out := SplitColumn(records, "v", SplitOptions{Delimiter: "|", MaxParts: 2})
	props := out[0].Props
	if props.Has("v_3") {
		t.Error("parts beyond maxParts should be dropped, not merged")
	}
	if props.Value("v_1").Text() != "a" || props.Value("v_2").Text() != "b" {
		t.Errorf("v_1 = %q, v_2 = %q", props.Value("v_1").Text(), props.Value("v_2").Text())
	}
}

func TestSplitColumnNoTrim(t *testing.T) {
	rows := []map[string]interface{}{
		{"v": "a, b"},
	}
	records := tableRecords(rows, []string{"v"})

	out := SplitColumn(records, "v", SplitOptions{Delimiter: ","})
	if got := out[0].Props.Value("v_2").Text(); got != " b" {
		t.Errorf("v_2 = %q, want %q", got, " b")
	}
}

func TestSplitColumnNumberSource(t *testing.T) {
	rows := []map[string]interface{}{
		{"v": float64(3.5)},
	}
	records := tableRecords(rows, []string{"v"})

	out := SplitColumn(records, "v", SplitOptions{Delimiter: "."})
	if got := out[0].Props.Value("v_1").Text(); got != "3" {
		t.Errorf("v_1 = %q, want 3", got)
	}
	if got := out[0].Props.Value("v_2").Text(); got != "5" {
		t.Errorf("v_2 = %q, want 5", got)
	}
}
