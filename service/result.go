package service

import "errors"

// ErrUnauthenticated 调用方身份缺失
var ErrUnauthenticated = errors.New("未登录")

// SkipReason 操作被静默忽略的原因
type SkipReason string

const (
	ReasonInvalidAmount       SkipReason = "invalid_amount"
	ReasonInvalidTarget       SkipReason = "invalid_target_amount"
	ReasonInvalidIncrement    SkipReason = "invalid_monthly_increment"
	ReasonEmptyInstrument     SkipReason = "empty_instrument"
	ReasonEmptyName           SkipReason = "empty_name"
	ReasonNotFoundOrForbidden SkipReason = "not_found_or_forbidden"
	ReasonGoalAtTarget        SkipReason = "goal_at_target"
)

var reasonMessages = map[SkipReason]string{
	ReasonInvalidAmount:       "金额必须为大于 0 的有效数字",
	ReasonInvalidTarget:       "目标金额必须为大于 0 的有效数字",
	ReasonInvalidIncrement:    "每月递增金额必须为大于 0 的有效数字",
	ReasonEmptyInstrument:     "投资品种不能为空",
	ReasonEmptyName:           "目标名称不能为空",
	ReasonNotFoundOrForbidden: "记录不存在",
	ReasonGoalAtTarget:        "目标已达成",
}

// Message 面向用户的提示
func (r SkipReason) Message() string {
	if msg, ok := reasonMessages[r]; ok {
		return msg
	}
	return string(r)
}

// Result 操作结果。外部接口对 Skipped 保持静默，内部保留原因便于测试与审计
type Result struct {
	Skipped bool
	Reason  SkipReason
}

// Applied 操作已执行
func Applied() Result {
	return Result{}
}

// Skip 操作被忽略
func Skip(reason SkipReason) Result {
	return Result{Skipped: true, Reason: reason}
}

// IsValidation 是否为输入校验失败
func (r Result) IsValidation() bool {
	if !r.Skipped {
		return false
	}
	switch r.Reason {
	case ReasonNotFoundOrForbidden, ReasonGoalAtTarget:
		return false
	}
	return true
}
