package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/rushteam/modulerec/core"
)

// ReadRecords 从 CSV 读出按表头取键的记录列表，所有值为字符串。
// 第一行是表头，空文件返回空切片。
func ReadRecords(r io.Reader) ([]map[string]any, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("dataset: read csv header: %w", err)
	}

	var records []map[string]any
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: read csv row: %w", err)
		}
		rec := make(map[string]any, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// LoadModulesCSV 从 CSV 文件加载物品列表。
func LoadModulesCSV(path string) ([]core.Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return nil, err
	}
	return ParseModules(records)
}

// LoadUsersCSV 从 CSV 文件加载用户画像列表。
func LoadUsersCSV(path string) ([]core.UserRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return nil, err
	}
	return ParseUsers(records), nil
}
