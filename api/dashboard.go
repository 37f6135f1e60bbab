package api

import (
	"strings"
	"time"

	"budget/service"

	"github.com/gin-gonic/gin"
)

// DashboardHandler 图表数据处理器
type DashboardHandler struct {
	records *service.RecordService
	loc     *time.Location
}

// NewDashboardHandler 创建图表数据处理器，loc 为月份统计使用的时区
func NewDashboardHandler(records *service.RecordService, loc *time.Location) *DashboardHandler {
	return &DashboardHandler{records: records, loc: loc}
}

// Get 获取图表数据
// @Summary 获取图表数据
// @Description 返回按类别、月份、名称汇总的支出，储蓄与投资明细，储蓄目标以及各类合计。
// @Description 传入 category 时额外返回该类别的月度趋势
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param category query string false "类别（如 Groceries）"
// @Success 200 {object} Response{data=service.Dashboard} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	snap, err := h.records.Snapshot(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err, "查询失败")
		return
	}
	Success(c, service.BuildDashboard(snap, strings.TrimSpace(c.Query("category")), h.loc))
}
