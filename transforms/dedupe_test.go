package transforms

import "testing"

func TestDeduplicate(t *testing.T) {
	rows := []map[string]interface{}{
		{"k": "a", "v": "1"},
		{"k": "b", "v": "2"},
		{"k": "a", "v": "3"},
	}
	records := tableRecords(rows, []string{"k", "v"})

	res := Deduplicate(records, []string{"k"}, "first")
	if res.Removed != 1 {
		t.Errorf("Removed = %d, want 1", res.Removed)
	}
	if len(res.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(res.Records))
	}
	// 保留首次出现
	if res.Records[0].Props.Value("v").Text() != "1" {
		t.Errorf("kept v = %q, want 1", res.Records[0].Props.Value("v").Text())
	}
}

func TestDeduplicateKeepLast(t *testing.T) {
	rows := []map[string]interface{}{
		{"k": "a", "v": "1"},
		{"k": "b", "v": "2"},
		{"k": "a", "v": "3"},
	}
	records := tableRecords(rows, []string{"k", "v"})

	res := Deduplicate(records, []string{"k"}, "last")
	if len(res.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(res.Records))
	}
	// 保留最后一次出现，顺序按原序列
	if res.Records[0].Props.Value("v").Text() != "2" {
		t.Errorf("first kept v = %q, want 2", res.Records[0].Props.Value("v").Text())
	}
	if res.Records[1].Props.Value("v").Text() != "3" {
		t.Errorf("second kept v = %q, want 3", res.Records[1].Props.Value("v").Text())
	}
}

func TestDeduplicateMultiField(t *testing.T) {
	rows := []map[string]interface{}{
		{"a": "x", "b": "1"},
		{"a": "x", "b": "2"},
		{"a": "x", "b": "1"},
	}
	records := tableRecords(rows, []string{"a", "b"})

	res := Deduplicate(records, []string{"a", "b"}, "")
	if len(res.Records) != 2 || res.Removed != 1 {
		t.Errorf("records = %d removed = %d, want 2/1", len(res.Records), res.Removed)
	}
}

// 对已去重的数据再次去重是空操作
func TestDeduplicateIdempotent(t *testing.T) {
	rows := []map[string]interface{}{
		{"k": "a"},
		{"k": "a"},
		{"k": "b"},
	}
	records := tableRecords(rows, []string{"k"})

	first := Deduplicate(records, []string{"k"}, "first")
	second := Deduplicate(first.Records, []string{"k"}, "first")
	if second.Removed != 0 {
		t.Errorf("second pass Removed = %d, want 0", second.Removed)
	}
	if len(second.Records) != len(first.Records) {
		t.Errorf("second pass records = %d, want %d", len(second.Records), len(first.Records))
	}
}

// 键按文本比较，null与空串的键文本相同，会合并
func TestDeduplicateNullMergesWithEmpty(t *testing.T) {
	rows := []map[string]interface{}{
		{"k": nil},
		{"k": ""},
	}
	records := tableRecords(rows, []string{"k"})

	res := Deduplicate(records, []string{"k"}, "first")
	if len(res.Records) != 1 {
		t.Errorf("records = %d, want 1", len(res.Records))
	}
}
