package schema

import "testing"

func TestSuggestOutputName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"地块名称", "dkmc"},
		{"地块 编号", "dkbh"},
		{"2024面积", "mj2024"},
		{"Name", "name"},
		{"Name-1", "name1"},
		{"field_a", "field_a"},
		{"面积(亩)", "mjm"},
	}

	for _, tt := range tests {
		if got := SuggestOutputName(tt.in); got != tt.want {
			t.Errorf("SuggestOutputName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSuggestOutputNames(t *testing.T) {
	s := &Schema{Fields: []Field{
		{Name: "地块名称"},
		{Name: "area"},
	}}
	got := SuggestOutputNames(s)
	if got["地块名称"] != "dkmc" {
		t.Errorf("地块名称 = %q, want dkmc", got["地块名称"])
	}
	if got["area"] != "area" {
		t.Errorf("area = %q, want area", got["area"])
	}
}
