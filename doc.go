// Package modulerec 是一个混合推荐系统（教学模块推荐）工具包。
//
// 设计要点：
//   - Signal-fusion: 四路信号（内容 / 画像 / 流行度 / 协同）各自归一化后
//     按激活权重融合为单一排序，未激活信号权重重归一化
//   - Snapshot-first: 排序与评估只读消费版本化的不可变模型快照，
//     快照由训练管线整体构建、modelstore 原子切换
//   - Labels-first: 激活信号等解释信息随结果全链路透传，支持 explain
//   - Node 可扩展: 排序之后的过滤 / 重排通过 Node 串联，自定义 Node 即可插拔
package modulerec

import (
	"github.com/rushteam/modulerec/core"
	"github.com/rushteam/modulerec/pipeline"
)

// 轻量 facade：便于用户直接 import "modulerec" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

type Module = core.Module
type UserContext = core.UserContext
type Recommendation = core.Recommendation
type Snapshot = core.Snapshot
type EvalMetrics = core.EvalMetrics

const (
	KindRank        = pipeline.KindRank
	KindFilter      = pipeline.KindFilter
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
