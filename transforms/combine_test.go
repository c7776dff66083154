package transforms

import "testing"

func TestCombineColumns(t *testing.T) {
	rows := []map[string]interface{}{
		{"city": "Provo", "state": "UT"},
		{"city": "Orem", "state": nil},
	}
	records := tableRecords(rows, []string{"city", "state"})

	out := CombineColumns(records, []string{"city", "state"}, CombineOptions{
		Delimiter:   ", ",
		OutputField: "label",
	})
	if got := out[0].Props.Value("label").Text(); got != "Provo, UT" {
		t.Errorf("label = %q, want %q", got, "Provo, UT")
	}
	// 不跳过空值时null按空串占位
	if got := out[1].Props.Value("label").Text(); got != "Orem, " {
		t.Errorf("label = %q, want %q", got, "Orem, ")
	}
}

func TestCombineColumnsSkipBlanks(t *testing.T) {
	rows := []map[string]interface{}{
		{"a": "x", "b": nil, "c": "z"},
		{"a": "", "b": "  ", "c": "z"},
	}
	records := tableRecords(rows, []string{"a", "b", "c"})

	out := CombineColumns(records, []string{"a", "b", "c"}, CombineOptions{
		Delimiter:   "-",
		OutputField: "joined",
		SkipBlanks:  true,
	})
	if got := out[0].Props.Value("joined").Text(); got != "x-z" {
		t.Errorf("joined = %q, want x-z", got)
	}
	if got := out[1].Props.Value("joined").Text(); got != "z" {
		t.Errorf("joined = %q, want z", got)
	}
}

func TestCombineColumnsNumberText(t *testing.T) {
	rows := []map[string]interface{}{
		{"n": float64(12), "s": "km"},
	}
	records := tableRecords(rows, []string{"n", "s"})

	out := CombineColumns(records, []string{"n", "s"}, CombineOptions{OutputField: "v"})
	if got := out[0].Props.Value("v").Text(); got != "12km" {
		t.Errorf("v = %q, want 12km", got)
	}
}

// 两段值不去空白拆分后，按同一分隔符合并能还原原值
func TestSplitCombineRoundTrip(t *testing.T) {
	rows := []map[string]interface{}{
		{"code": "A-1"},
		{"code": "qh-371522"},
		{"code": "x- y"},
	}
	records := tableRecords(rows, []string{"code"})

	split := SplitColumn(records, "code", SplitOptions{Delimiter: "-"})
	out := CombineColumns(split, []string{"code_1", "code_2"}, CombineOptions{
		Delimiter:   "-",
		OutputField: "rebuilt",
	})

	for i, rec := range out {
		want := records[i].Props.Value("code").Text()
		if got := rec.Props.Value("rebuilt").Text(); got != want {
			t.Errorf("rebuilt[%d] = %q, want %q", i, got, want)
		}
	}
}
