package transforms

import (
	"github.com/GrainArc/GeoPrep/geodata"
)

// tableRecords 测试用的行数据构造
func tableRecords(rows []map[string]interface{}, fields []string) []geodata.Record {
	return geodata.FromRows("t", rows, fields).Records
}

// peopleRecords 常用测试数据：姓名、年龄、城市
func peopleRecords() []geodata.Record {
	rows := []map[string]interface{}{
		{"name": "张三", "age": float64(30), "city": "Provo"},
		{"name": "李四", "age": float64(8), "city": "Orem"},
		{"name": "王五", "age": float64(45), "city": "Provo"},
		{"name": "赵六", "age": nil, "city": ""},
	}
	return tableRecords(rows, []string{"name", "age", "city"})
}
