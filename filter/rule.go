package filter

import (
	"context"
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/modulerec/core"
)

// RuleFilter 是基于 CEL 表达式的规则过滤器。
// 表达式求值为 true 时该行被过滤，例如：
//
//	item.score < 0.1
//	"beginner" in item.tags && user.id == "u42"
type RuleFilter struct {
	name    string
	expr    string
	program cel.Program
}

// NewRuleFilter 编译表达式并创建规则过滤器。编译只发生一次，
// 求值阶段零编译开销。
func NewRuleFilter(name, expr string) (*RuleFilter, error) {
	env, err := cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("user", cel.DynType),
	)
	if err != nil {
		return nil, fmt.Errorf("rule filter env: %w", err)
	}
	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("rule filter compile %q: %w", expr, iss.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("rule filter program: %w", err)
	}
	if name == "" {
		name = "filter.rule"
	}
	return &RuleFilter{name: name, expr: expr, program: prg}, nil
}

func (f *RuleFilter) Name() string { return f.name }

// Expr 返回规则的原始表达式文本。
func (f *RuleFilter) Expr() string { return f.expr }

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	rec *core.Recommendation,
) (bool, error) {
	if rec == nil {
		return true, nil
	}

	item := map[string]any{
		"id":    rec.ID,
		"name":  rec.Name,
		"score": rec.FinalScore,
	}
	if rctx != nil && rctx.Snapshot != nil {
		if row, ok := rctx.Snapshot.RowByID(rec.ID); ok {
			m := rctx.Snapshot.Modules[row]
			item["tags"] = m.Tags
			item["features"] = m.Features
		}
	}

	user := map[string]any{}
	if rctx != nil && rctx.User != nil {
		user["id"] = rctx.User.UserID
		user["favorites"] = rctx.User.Favorites
	}

	out, _, err := f.program.Eval(map[string]any{
		"item": item,
		"user": user,
	})
	if err != nil {
		return false, fmt.Errorf("rule filter eval %q: %w", f.expr, err)
	}
	matched, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("rule filter %q: expression is not boolean", f.expr)
	}
	return matched, nil
}
