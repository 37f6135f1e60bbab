package api

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"budget/models"
	"budget/service"

	"github.com/gin-gonic/gin"
)

// ExportHandler 导出处理器
type ExportHandler struct {
	records *service.RecordService
	loc     *time.Location
}

// NewExportHandler 创建导出处理器
func NewExportHandler(records *service.RecordService, loc *time.Location) *ExportHandler {
	return &ExportHandler{records: records, loc: loc}
}

// ExportCSV 导出一类记录为 CSV
// @Summary 导出 CSV
// @Description 导出当前用户的一类记录，kind 可选 expenses、savings、investments、goals
// @Tags 导出
// @Produce text/csv
// @Security BearerAuth
// @Param kind query string false "记录类型" Enums(expenses,savings,investments,goals) default(expenses)
// @Success 200 {file} file "CSV 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	kind, ok := models.ParseKind(c.DefaultQuery("kind", string(models.KindExpense)))
	if !ok {
		BadRequest(c, "kind 参数错误，可选值：expenses、savings、investments、goals")
		return
	}

	snap, err := h.records.Snapshot(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err, "查询数据失败")
		return
	}

	buf := new(bytes.Buffer)
	if err := service.WriteCSV(buf, kind, snap, h.loc); err != nil {
		InternalError(c, SafeErrorMessage(err, "生成 CSV 失败"))
		return
	}

	filename := fmt.Sprintf("%s_%s.csv", kind, time.Now().In(h.location()).Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportExcel 导出全部记录为 Excel
// @Summary 导出 Excel
// @Description 每类记录一个工作表，另附汇总表
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file "Excel 文件"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/export/xlsx [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	snap, err := h.records.Snapshot(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err, "查询数据失败")
		return
	}

	f, err := service.BuildWorkbook(snap, h.loc)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "生成 Excel 失败"))
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "生成 Excel 失败"))
		return
	}

	filename := fmt.Sprintf("记账数据_%s.xlsx", time.Now().In(h.location()).Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(filename)))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *ExportHandler) location() *time.Location {
	if h.loc == nil {
		return time.Local
	}
	return h.loc
}
