// Package dataset 负责把原始数据（CSV、JSON 记录）解析为领域对象：
// 物品（教学模块）与用户画像。解析层对脏数据宽容：标签列支持多种
// 形态，数值列缺失时跳过，但物品 id 必须存在且唯一。
package dataset

import (
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/rushteam/modulerec/core"
	"github.com/rushteam/modulerec/pkg/conv"
)

// tagColumns 按优先级尝试的标签列名
var tagColumns = []string{"tags_list", "module_tags_str", "tags"}

// featureColumns 进入 Features 的数值列
var featureColumns = []string{
	"studycredit",
	"estimated_difficulty",
	"interests_match_score",
	"popularity_score",
}

// ParseModules 把一批记录解析为物品列表。
// 每条记录必须带唯一的 "id"，否则返回 INVALID_INPUT。
func ParseModules(records []map[string]any) ([]core.Module, error) {
	modules := make([]core.Module, 0, len(records))
	seen := make(map[int64]struct{}, len(records))

	for i, rec := range records {
		raw, ok := rec["id"]
		if !ok {
			return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
				fmt.Sprintf("dataset: record %d has no id", i))
		}
		id, ok := conv.ToInt64(raw)
		if !ok {
			return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
				fmt.Sprintf("dataset: record %d has non-numeric id %v", i, raw))
		}
		if _, dup := seen[id]; dup {
			return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
				fmt.Sprintf("dataset: duplicate module id %d", id))
		}
		seen[id] = struct{}{}

		m := core.Module{
			ID:               id,
			Name:             stringField(rec, "name"),
			ShortDescription: stringField(rec, "shortdescription"),
			Description:      stringField(rec, "description"),
			Tags:             extractTags(rec),
			Features:         make(map[string]float64),
		}
		for _, col := range featureColumns {
			if v, ok := rec[col]; ok {
				if f, ok := conv.ToFloat64(v); ok {
					m.Features[col] = f
				}
			}
		}
		modules = append(modules, m)
	}
	return modules, nil
}

// ParseUsers 把一批记录解析为用户画像列表。
// 没有 user_id 的记录被跳过，收藏列表中的非数值项被丢弃。
func ParseUsers(records []map[string]any) []core.UserRecord {
	users := make([]core.UserRecord, 0, len(records))
	for _, rec := range records {
		uid := stringField(rec, "user_id")
		if uid == "" {
			uid = stringField(rec, "id")
		}
		if uid == "" {
			continue
		}
		u := core.UserRecord{
			UserID:      uid,
			Name:        stringField(rec, "name"),
			ProfileText: stringField(rec, "profile_text"),
		}
		if raw, ok := rec["favorite_id"]; ok {
			u.Favorites = parseFavorites(raw)
		}
		users = append(users, u)
	}
	return users
}

// ParseTags 把任意形态的标签值解析为去重后的标签列表：
//   - 列表（[]any / []string）直接展开
//   - JSON 数组字符串，如 `["python","ml"]`
//   - 逗号或分号分隔的字符串
//   - 其余标量当作单个标签
func ParseTags(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return nil
	case []string:
		return dedupTags(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return dedupTags(out)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		if strings.HasPrefix(s, "[") {
			var arr []any
			if err := json.Unmarshal([]byte(s), &arr); err == nil {
				return ParseTags(arr)
			}
		}
		sep := ","
		if !strings.Contains(s, ",") && strings.Contains(s, ";") {
			sep = ";"
		}
		return dedupTags(strings.Split(s, sep))
	default:
		return dedupTags([]string{fmt.Sprint(v)})
	}
}

func extractTags(rec map[string]any) []string {
	for _, col := range tagColumns {
		if raw, ok := rec[col]; ok {
			if tags := ParseTags(raw); len(tags) > 0 {
				return tags
			}
		}
	}
	return nil
}

func parseFavorites(raw any) []int64 {
	var favs []int64
	switch v := raw.(type) {
	case []int64:
		favs = append(favs, v...)
	case []any:
		for _, item := range v {
			if id, ok := conv.ToInt64(item); ok {
				favs = append(favs, id)
			}
		}
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		if strings.HasPrefix(s, "[") {
			var arr []any
			if err := json.Unmarshal([]byte(s), &arr); err == nil {
				return parseFavorites(arr)
			}
		}
		for _, part := range strings.Split(s, ",") {
			if id, ok := conv.ToInt64(strings.TrimSpace(part)); ok {
				favs = append(favs, id)
			}
		}
	default:
		if id, ok := conv.ToInt64(v); ok {
			favs = append(favs, id)
		}
	}
	return favs
}

func dedupTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		t := strings.TrimSpace(tag)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func stringField(rec map[string]any, key string) string {
	if v, ok := rec[key]; ok && v != nil {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprint(v)
	}
	return ""
}
