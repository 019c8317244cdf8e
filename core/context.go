package core

import "strings"

// UserContext 承载一次推荐请求的用户信息，请求级透传，不落库。
//
// 三个字段都是可选的：
//   - UserID 为空表示冷启动用户（协同信号对其不可用）
//   - Favorites 中不存在于当前快照的 ID 会被静默丢弃，不报错
//   - ProfileText 为空表示没有画像文本信号
type UserContext struct {
	UserID      string
	Favorites   []int64
	ProfileText string
}

// HasProfile 判断用户是否带有画像文本信号。
func (uc *UserContext) HasProfile() bool {
	return uc != nil && strings.TrimSpace(uc.ProfileText) != ""
}

// FavoriteSet 返回收藏 ID 集合（用于排除已收藏物品）。
func (uc *UserContext) FavoriteSet() map[int64]struct{} {
	if uc == nil || len(uc.Favorites) == 0 {
		return nil
	}
	set := make(map[int64]struct{}, len(uc.Favorites))
	for _, id := range uc.Favorites {
		set[id] = struct{}{}
	}
	return set
}

// UserRecord 是快照内的用户画像行，供评估引擎按 user_id 解析
// favorites / profile 使用。由训练管线随快照一并写入。
type UserRecord struct {
	UserID      string  `json:"user_id"`
	Name        string  `json:"name,omitempty"`
	Favorites   []int64 `json:"favorite_id"`
	ProfileText string  `json:"profile_text"`
}

// Context 将一条用户记录转为请求上下文。
func (u *UserRecord) Context() *UserContext {
	return &UserContext{
		UserID:      u.UserID,
		Favorites:   append([]int64(nil), u.Favorites...),
		ProfileText: u.ProfileText,
	}
}
