package api

import (
	"budget/service"

	"github.com/gin-gonic/gin"
)

// SavingHandler 储蓄记录处理器
type SavingHandler struct {
	recordBase
}

// NewSavingHandler 创建储蓄记录处理器
func NewSavingHandler(records *service.RecordService, strict bool) *SavingHandler {
	return &SavingHandler{recordBase{records: records, strict: strict}}
}

// CreateSavingRequest 创建储蓄请求
type CreateSavingRequest struct {
	Amount float64 `json:"amount" example:"500"`
	Note   string  `json:"note" example:"Emergency fund"`
}

// Create 创建储蓄
// @Summary 创建储蓄
// @Description 新增一条储蓄，金额必须为大于 0 的数字
// @Tags 储蓄
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateSavingRequest true "储蓄信息"
// @Success 200 {object} Response{data=models.Saving} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/savings [post]
func (h *SavingHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateSavingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	saving, res, err := h.records.AddSaving(c.Request.Context(), userID, service.SavingInput{
		Amount: req.Amount,
		Note:   req.Note,
	})
	if err != nil {
		serviceError(c, err, "创建储蓄失败")
		return
	}
	h.respondCreated(c, saving, res)
}

// List 获取储蓄列表
// @Summary 获取储蓄列表
// @Tags 储蓄
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Saving} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/savings [get]
func (h *SavingHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	list, err := h.records.ListSavings(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err, "查询失败")
		return
	}
	Success(c, list)
}

// Delete 删除储蓄
// @Summary 删除储蓄
// @Tags 储蓄
// @Produce json
// @Security BearerAuth
// @Param id path int true "储蓄ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/savings/{id} [delete]
func (h *SavingHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	res, err := h.records.DeleteSaving(c.Request.Context(), userID, id)
	respondDeleted(c, res, err)
}
