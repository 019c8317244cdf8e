package rank

import (
	"strings"

	"github.com/rushteam/modulerec/core"
)

// Explanation 是单行推荐的可读解释：逐信号的理由文案、触发的信号分、
// 所用权重和分数拆解。
type Explanation struct {
	Summary        string             `json:"summary"`
	Reasons        []string           `json:"reasons"`
	Signals        map[string]float64 `json:"signals"`
	FinalScore     float64            `json:"final_score"`
	ScoreBreakdown map[string]float64 `json:"score_breakdown"`
}

// 解释文案的分档阈值，按归一化信号分划分。
const (
	contentStrong = 0.7
	contentClear  = 0.4
	profileStrong = 0.65
	profileClear  = 0.40
	popularHigh   = 0.6
	popularMid    = 0.3
	cfStrong      = 0.7
	cfClear       = 0.4
	traceFloor    = 0.01
)

// Explain 根据一行推荐的分数拆解生成解释。
func Explain(rec *core.Recommendation) *Explanation {
	if rec == nil {
		return nil
	}
	return ExplainScores(
		rec.ContentScore,
		rec.ProfileScore,
		rec.PopularityScore,
		rec.CollaborativeScore,
		rec.FinalScore,
	)
}

// ExplainScores 按四路归一化分数生成解释。
func ExplainScores(content, profile, popularity, collaborative, final float64) *Explanation {
	reasons := make([]string, 0, 4)
	signals := make(map[string]float64, 4)

	switch {
	case content >= contentStrong:
		reasons = append(reasons, "This module closely matches your favorite modules.")
		signals["content_match"] = content
	case content >= contentClear:
		reasons = append(reasons, "This module shows clear overlap with your favorite modules.")
		signals["content_match"] = content
	case content >= traceFloor:
		reasons = append(reasons, "This module has some overlap with your favorite modules.")
		signals["content_match"] = content
	}

	switch {
	case profile >= profileStrong:
		reasons = append(reasons, "This module fits the interests in your profile very well.")
		signals["profile_match"] = profile
	case profile >= profileClear:
		reasons = append(reasons, "This module reasonably fits your profile interests.")
		signals["profile_match"] = profile
	case profile >= traceFloor:
		reasons = append(reasons, "This module loosely fits your profile interests.")
		signals["profile_match"] = profile
	}

	switch {
	case popularity > popularHigh:
		reasons = append(reasons, "This module is frequently chosen by other users.")
		signals["popularity"] = popularity
	case popularity > popularMid:
		reasons = append(reasons, "This module has average popularity among users.")
	default:
		reasons = append(reasons, "This module is chosen less often, but can still be a good fit.")
	}

	switch {
	case collaborative > cfStrong:
		reasons = append(reasons, "Users with similar interests rate this module highly.")
		signals["collaborative"] = collaborative
	case collaborative > cfClear:
		reasons = append(reasons, "Users with similar interests tend to find this module interesting.")
		signals["collaborative"] = collaborative
	case collaborative > 0:
		reasons = append(reasons, "Users with similar interests occasionally pick this module.")
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "Recommended based on a combination of general content characteristics.")
	}

	return &Explanation{
		Summary:    strings.Join(reasons, " • "),
		Reasons:    reasons,
		Signals:    signals,
		FinalScore: final,
		ScoreBreakdown: map[string]float64{
			"content_similarity": content,
			"profile_similarity": profile,
			"popularity":         popularity,
			"collaborative":      collaborative,
		},
	}
}
