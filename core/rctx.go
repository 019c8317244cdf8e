package core

// RecommendContext 承载一次请求在 Pipeline 中透传的全部上下文：
// 用户、请求绑定的快照引用、请求参数。
//
// Snapshot 是请求开始时加载到的那一份不可变快照；重训产生的新快照
// 不影响进行中的请求。
type RecommendContext struct {
	User     *UserContext
	Snapshot *Snapshot

	// TopN 是请求的截断长度（引擎会做边界钳制）
	TopN int

	// Params 请求级上下文参数（debug 开关等）
	Params map[string]any
}
