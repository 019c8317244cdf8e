package core

import "github.com/rushteam/modulerec/pkg/utils"

// Module 是推荐目录中的一个条目（教学模块）。
// 快照内不可变：每个 Module 在一个快照中只有一行，ID 在快照内唯一。
type Module struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	ShortDescription string   `json:"shortdescription"`
	Description      string   `json:"description"`
	Tags             []string `json:"tags"`

	// Features 是数值特征列（studycredit、estimated_difficulty、
	// popularity_score 等），由训练管线在构建快照时写入。
	Features map[string]float64 `json:"features"`
}

// Recommendation 是一次推荐请求的单行结果：带完整的分数拆解。
// 请求级临时对象，不落库。
type Recommendation struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	ShortDescription string `json:"shortdescription"`

	// 四路归一化信号分 + 融合终分
	ContentScore       float64 `json:"content_score"`
	ProfileScore       float64 `json:"profile_score"`
	PopularityScore    float64 `json:"popularity_score"`
	CollaborativeScore float64 `json:"collaborative_score"`
	FinalScore         float64 `json:"final_score"`

	// Rank 是最终排序位次（从 1 开始）
	Rank int `json:"rank"`

	// Labels 用于解释与策略驱动：active_signals、filtered 等。
	Labels map[string]utils.Label `json:"labels,omitempty"`
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (r *Recommendation) PutLabel(key string, lbl utils.Label) {
	if r.Labels == nil {
		r.Labels = make(map[string]utils.Label)
	}
	if old, ok := r.Labels[key]; ok {
		r.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	r.Labels[key] = lbl
}

// EvalMetrics 是评估引擎的输出：per-user、per-k 的离线指标。
// 三个值都落在 [0,1]；HitRateAtK 只取 0 或 1。
type EvalMetrics struct {
	PrecisionAtK float64 `json:"precision_at_k"`
	RecallAtK    float64 `json:"recall_at_k"`
	HitRateAtK   float64 `json:"hit_rate_at_k"`
}
