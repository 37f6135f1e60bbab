package api

import (
	"budget/service"

	"github.com/gin-gonic/gin"
)

// InvestmentHandler 投资记录处理器
type InvestmentHandler struct {
	recordBase
}

// NewInvestmentHandler 创建投资记录处理器
func NewInvestmentHandler(records *service.RecordService, strict bool) *InvestmentHandler {
	return &InvestmentHandler{recordBase{records: records, strict: strict}}
}

// CreateInvestmentRequest 创建投资请求
type CreateInvestmentRequest struct {
	Amount     float64 `json:"amount" example:"1000"`
	Instrument string  `json:"instrument" example:"ETF - VOO"`
	Note       string  `json:"note" example:"Monthly DCA"`
}

// Create 创建投资
// @Summary 创建投资
// @Description 新增一条投资，金额必须大于 0 且投资品种不能为空
// @Tags 投资
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateInvestmentRequest true "投资信息"
// @Success 200 {object} Response{data=models.Investment} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/investments [post]
func (h *InvestmentHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	investment, res, err := h.records.AddInvestment(c.Request.Context(), userID, service.InvestmentInput{
		Amount:     req.Amount,
		Instrument: req.Instrument,
		Note:       req.Note,
	})
	if err != nil {
		serviceError(c, err, "创建投资失败")
		return
	}
	h.respondCreated(c, investment, res)
}

// List 获取投资列表
// @Summary 获取投资列表
// @Tags 投资
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Investment} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/investments [get]
func (h *InvestmentHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	list, err := h.records.ListInvestments(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err, "查询失败")
		return
	}
	Success(c, list)
}

// Delete 删除投资
// @Summary 删除投资
// @Tags 投资
// @Produce json
// @Security BearerAuth
// @Param id path int true "投资ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/investments/{id} [delete]
func (h *InvestmentHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	res, err := h.records.DeleteInvestment(c.Request.Context(), userID, id)
	respondDeleted(c, res, err)
}
