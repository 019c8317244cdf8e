package model

import "github.com/rushteam/modulerec/core"

// ALS 是矩阵分解协同模型的查表实现：离线训练得到用户/物品隐向量，
// 在线只做向量点积。
//
// 预测分数 = 用户隐向量 · 物品隐向量
type ALS struct {
	// UserFactors 按模型内部用户行号对齐
	UserFactors [][]float64 `json:"user_factors"`

	// ItemFactors 按模型内部物品行号对齐
	ItemFactors [][]float64 `json:"item_factors"`
}

var _ core.CFModel = (*ALS)(nil)

// ScoreAllItems 计算 userRow 对所有物品的亲和分。
// userRow 越界返回 nil（调用方视为无信号）。
func (m *ALS) ScoreAllItems(userRow int) map[int]float64 {
	if userRow < 0 || userRow >= len(m.UserFactors) {
		return nil
	}
	userVec := m.UserFactors[userRow]
	out := make(map[int]float64, len(m.ItemFactors))
	for itemRow, itemVec := range m.ItemFactors {
		out[itemRow] = dotProduct(userVec, itemVec)
	}
	return out
}

// dotProduct 计算两个向量的点积。
func dotProduct(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
