package core

import "sort"

// Snapshot 是一份版本化、不可变的模型快照（bundle）：
// 物品表、按行对齐的内容向量 / TF-IDF 矩阵、流行度列、
// 协同模型及其用户/物品行号映射、用户画像表、拟合后的文本嵌入器。
//
// 生命周期：由训练管线整体创建，创建后不再修改，由更新的快照整体
// 替换。排序/评估引擎只读消费；并发安全依赖于这份不可变约定。
type Snapshot struct {
	Version string

	Modules []Module

	// ContentVectors 与 Modules 按行号对齐（降维后的共享嵌入空间）
	ContentVectors [][]float64

	// TFIDF 与 Modules 按行号对齐（原始文本特征空间）
	TFIDF [][]float64

	// Popularity 是流行度列；为空表示该信号不可用
	Popularity []float64

	// Users 是评估用的用户画像表（可选）
	Users []UserRecord

	// UserIndex / ItemIndex 是协同模型内部行号映射
	UserIndex map[string]int
	ItemIndex map[int64]int

	Transformer TextEmbedder
	CF          CFModel

	rowByID map[int64]int
}

// Reindex 重建 ID → 行号索引。训练管线构建或反序列化之后调用一次；
// 之后快照只读，索引可被任意并发读取。
func (s *Snapshot) Reindex() {
	s.rowByID = make(map[int64]int, len(s.Modules))
	for i, m := range s.Modules {
		s.rowByID[m.ID] = i
	}
}

// Len 返回快照内的物品数。
func (s *Snapshot) Len() int { return len(s.Modules) }

// RowByID 返回物品 ID 对应的目录行号。
func (s *Snapshot) RowByID(id int64) (int, bool) {
	if s.rowByID != nil {
		row, ok := s.rowByID[id]
		return row, ok
	}
	for i, m := range s.Modules {
		if m.ID == id {
			return i, true
		}
	}
	return 0, false
}

// ResolveFavorites 将收藏 ID 列表解析为目录行号。
// 不存在于快照的 ID 被静默丢弃；结果去重并升序排列，保证确定性。
func (s *Snapshot) ResolveFavorites(favorites []int64) []int {
	if len(favorites) == 0 {
		return nil
	}
	seen := make(map[int]struct{}, len(favorites))
	rows := make([]int, 0, len(favorites))
	for _, id := range favorites {
		row, ok := s.RowByID(id)
		if !ok {
			continue
		}
		if _, dup := seen[row]; dup {
			continue
		}
		seen[row] = struct{}{}
		rows = append(rows, row)
	}
	sort.Ints(rows)
	return rows
}

// HasPopularity 判断流行度信号是否可用（列存在且与物品表对齐）。
func (s *Snapshot) HasPopularity() bool {
	return len(s.Popularity) == len(s.Modules) && len(s.Popularity) > 0
}

// IsKnownUser 判断用户是否被协同模型覆盖。
func (s *Snapshot) IsKnownUser(userID string) bool {
	if userID == "" || s.UserIndex == nil {
		return false
	}
	_, ok := s.UserIndex[userID]
	return ok
}

// UserByID 从快照的用户画像表中查找用户记录。
func (s *Snapshot) UserByID(userID string) (*UserRecord, bool) {
	for i := range s.Users {
		if s.Users[i].UserID == userID {
			return &s.Users[i], true
		}
	}
	return nil, false
}
