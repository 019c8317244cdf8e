package signal

import "math"

// Epsilon 保护退化情形：所有物品原始分相同（max-min=0）时，
// 缩放结果collapse为全零向量，而不是除零错误。
const Epsilon = 1e-9

// MinMaxScale 将原始分数向量线性缩放到 [0,1]：
//
//	(x - min(x)) / max(ε, max(x) - min(x))
//
// 融合前对每路信号统一应用。常数向量缩放后为全零。
func MinMaxScale(v []float64) []float64 {
	if len(v) == 0 {
		return nil
	}
	min, max := v[0], v[0]
	for _, x := range v[1:] {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}
	denom := math.Max(Epsilon, max-min)
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = (x - min) / denom
	}
	return out
}

// L2Normalize 返回 v 的单位向量；全零向量原样返回（拷贝）。
func L2Normalize(v []float64) []float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	out := make([]float64, len(v))
	if sum == 0 {
		return out
	}
	norm := math.Sqrt(sum)
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

// Cosine 计算余弦相似度。任一方为全零向量时按约定返回 0，不报错。
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// MeanVector 计算矩阵中若干行的均值向量。
func MeanVector(matrix [][]float64, rows []int) []float64 {
	if len(rows) == 0 || len(matrix) == 0 {
		return nil
	}
	dim := len(matrix[rows[0]])
	out := make([]float64, dim)
	for _, r := range rows {
		for j, x := range matrix[r] {
			out[j] += x
		}
	}
	n := float64(len(rows))
	for j := range out {
		out[j] /= n
	}
	return out
}
