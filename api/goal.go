package api

import (
	"log"

	"budget/middleware"
	"budget/models"
	"budget/service"

	"github.com/gin-gonic/gin"
)

// GoalNotifier 目标达成通知
type GoalNotifier interface {
	Enabled() bool
	SendGoalReachedEmail(toEmail string, goal models.SavingsGoal) error
}

// GoalHandler 储蓄目标处理器
type GoalHandler struct {
	recordBase
	notifier GoalNotifier
}

// NewGoalHandler 创建储蓄目标处理器，notifier 可以为 nil
func NewGoalHandler(records *service.RecordService, strict bool, notifier GoalNotifier) *GoalHandler {
	return &GoalHandler{
		recordBase: recordBase{records: records, strict: strict},
		notifier:   notifier,
	}
}

// CreateGoalRequest 创建储蓄目标请求
type CreateGoalRequest struct {
	Name             string  `json:"name" example:"New bike"`
	TargetAmount     float64 `json:"target_amount" example:"1200"`
	MonthlyIncrement float64 `json:"monthly_increment" example:"100"`
}

// Create 创建储蓄目标
// @Summary 创建储蓄目标
// @Description 名称不能为空，目标金额与每月递增必须大于 0。当前金额从 0 开始
// @Tags 储蓄目标
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateGoalRequest true "目标信息"
// @Success 200 {object} Response{data=models.SavingsGoal} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/goals [post]
func (h *GoalHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	goal, res, err := h.records.AddGoal(c.Request.Context(), userID, service.GoalInput{
		Name:             req.Name,
		TargetAmount:     req.TargetAmount,
		MonthlyIncrement: req.MonthlyIncrement,
	})
	if err != nil {
		serviceError(c, err, "创建储蓄目标失败")
		return
	}
	h.respondCreated(c, goal, res)
}

// List 获取储蓄目标列表
// @Summary 获取储蓄目标列表
// @Tags 储蓄目标
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.SavingsGoal} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/goals [get]
func (h *GoalHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	list, err := h.records.ListGoals(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err, "查询失败")
		return
	}
	Success(c, list)
}

// Increment 目标递增一个月
// @Summary 储蓄目标递增
// @Description 当前金额增加一次每月递增额，默认不封顶。目标不存在或不属于当前用户时同样返回成功
// @Tags 储蓄目标
// @Produce json
// @Security BearerAuth
// @Param id path int true "目标ID"
// @Success 200 {object} Response "更新成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/goals/{id}/increment [post]
func (h *GoalHandler) Increment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	progress, res, err := h.records.IncrementGoal(c.Request.Context(), userID, id)
	if err != nil {
		serviceError(c, err, "更新失败")
		return
	}
	if !res.Skipped && progress.ReachedTarget {
		h.notifyReached(middleware.GetCurrentUserEmail(c), *progress.Goal)
	}
	SuccessWithMessage(c, "更新成功", nil)
}

// notifyReached 异步发送达成通知，失败只记录日志
func (h *GoalHandler) notifyReached(email string, goal models.SavingsGoal) {
	if h.notifier == nil || !h.notifier.Enabled() || email == "" {
		return
	}
	go func() {
		if err := h.notifier.SendGoalReachedEmail(email, goal); err != nil {
			log.Printf("发送目标达成通知失败 (goal=%d): %v", goal.ID, err)
		}
	}()
}

// Delete 删除储蓄目标
// @Summary 删除储蓄目标
// @Tags 储蓄目标
// @Produce json
// @Security BearerAuth
// @Param id path int true "目标ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/goals/{id} [delete]
func (h *GoalHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	res, err := h.records.DeleteGoal(c.Request.Context(), userID, id)
	respondDeleted(c, res, err)
}
