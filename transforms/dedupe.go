package transforms

import (
	"strings"

	"github.com/GrainArc/GeoPrep/geodata"
)

// DedupeResult 去重结果，Removed为被移除的要素数
type DedupeResult struct {
	Records []geodata.Record
	Removed int
}

// Deduplicate 按关键字段值组合去重。keep为last时保留每组最后一次出现，
// 其余情况保留第一次出现；结果保持原有相对顺序
func Deduplicate(records []geodata.Record, keyFields []string, keep string) DedupeResult {
	keys := make([]string, len(records))
	for i, rec := range records {
		parts := make([]string, len(keyFields))
		for j, f := range keyFields {
			parts[j] = rec.Props.Value(f).Text()
		}
		// 用不可见分隔符拼键，避免字段值里的普通字符造成键冲突
		keys[i] = strings.Join(parts, "\x1f")
	}

	keepLast := strings.EqualFold(strings.TrimSpace(keep), "last")
	picked := make(map[string]int, len(records))
	for i, k := range keys {
		if _, ok := picked[k]; !ok || keepLast {
			picked[k] = i
		}
	}

	res := DedupeResult{Records: make([]geodata.Record, 0, len(picked))}
	for i, rec := range records {
		if picked[keys[i]] == i {
			res.Records = append(res.Records, rec)
		}
	}
	res.Removed = len(records) - len(res.Records)
	return res
}
