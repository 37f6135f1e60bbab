package api

import (
	"budget/models"
	"budget/service"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler 支出记录处理器
type ExpenseHandler struct {
	recordBase
}

// NewExpenseHandler 创建支出记录处理器
func NewExpenseHandler(records *service.RecordService, strict bool) *ExpenseHandler {
	return &ExpenseHandler{recordBase{records: records, strict: strict}}
}

// CreateExpenseRequest 创建支出请求
type CreateExpenseRequest struct {
	Amount      float64 `json:"amount" example:"54.99"`
	Category    string  `json:"category" example:"Groceries"`
	Name        string  `json:"name" example:"Weekly shop"`
	Description string  `json:"description" example:"Supermarket run"`
}

// Create 创建支出
// @Summary 创建支出
// @Description 新增一条支出。金额必须为大于 0 的数字，否则请求被忽略（严格模式下返回 400）。图标由服务端随机分配
// @Tags 支出
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateExpenseRequest true "支出信息"
// @Success 200 {object} Response{data=models.Expense} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	expense, res, err := h.records.AddExpense(c.Request.Context(), userID, service.ExpenseInput{
		Amount:      req.Amount,
		Category:    req.Category,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		serviceError(c, err, "创建支出失败")
		return
	}
	h.respondCreated(c, expense, res)
}

// List 获取支出列表
// @Summary 获取支出列表
// @Description 当前用户的全部支出，按创建时间倒序
// @Tags 支出
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Expense} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	list, err := h.records.ListExpenses(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err, "查询失败")
		return
	}
	Success(c, list)
}

// Delete 删除支出
// @Summary 删除支出
// @Description 删除当前用户的一条支出。记录不存在或不属于当前用户时同样返回成功
// @Tags 支出
// @Produce json
// @Security BearerAuth
// @Param id path int true "支出ID"
// @Success 200 {object} Response "删除成功"
// @Failure 400 {object} Response "无效的ID"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	res, err := h.records.DeleteExpense(c.Request.Context(), userID, id)
	respondDeleted(c, res, err)
}

// GetCategories 获取预设支出类别
// @Summary 获取支出类别
// @Description 预设的支出类别列表，创建支出时也可以使用自定义类别
// @Tags 支出
// @Produce json
// @Success 200 {object} Response{data=[]string} "获取成功"
// @Router /api/v1/categories [get]
func (h *ExpenseHandler) GetCategories(c *gin.Context) {
	Success(c, models.GetCategories())
}
