package api

import (
	"time"

	"budget/service"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// SummaryResponse 时间范围内的合计
type SummaryResponse struct {
	StartTime string         `json:"start_time,omitempty" example:"2024-01-01"`
	EndTime   string         `json:"end_time,omitempty" example:"2024-12-31"`
	Totals    service.Totals `json:"totals"`
	Expenses  int            `json:"expense_count" example:"4"`
}

// parseDateRange 解析 start_time/end_time，结束日期包含当天
func parseDateRange(c *gin.Context, loc *time.Location) (start, end time.Time, ok bool) {
	if loc == nil {
		loc = time.Local
	}
	if s := c.Query("start_time"); s != "" {
		t, err := time.ParseInLocation(dateLayout, s, loc)
		if err != nil {
			BadRequest(c, "start_time 格式错误，应为 YYYY-MM-DD")
			return start, end, false
		}
		start = t
	}
	if s := c.Query("end_time"); s != "" {
		t, err := time.ParseInLocation(dateLayout, s, loc)
		if err != nil {
			BadRequest(c, "end_time 格式错误，应为 YYYY-MM-DD")
			return start, end, false
		}
		end = t.Add(24*time.Hour - time.Nanosecond)
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		BadRequest(c, "结束时间不能早于开始时间")
		return start, end, false
	}
	return start, end, true
}

// Summary 获取支出、储蓄、投资合计
// @Summary 获取合计
// @Description 按时间范围统计当前用户的支出、储蓄、投资总和。不传 start_time/end_time 则统计全部时间
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param start_time query string false "开始时间 (YYYY-MM-DD)，例如 2024-01-01"
// @Param end_time query string false "结束时间 (YYYY-MM-DD)，例如 2024-12-31"
// @Success 200 {object} Response{data=SummaryResponse} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	start, end, ok := parseDateRange(c, h.loc)
	if !ok {
		return
	}

	snap, err := h.records.Snapshot(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err, "查询失败")
		return
	}
	snap = snap.Within(start, end)

	Success(c, SummaryResponse{
		StartTime: c.Query("start_time"),
		EndTime:   c.Query("end_time"),
		Totals:    service.ComputeTotals(snap.Expenses, snap.Savings, snap.Investments),
		Expenses:  len(snap.Expenses),
	})
}
