package api

import (
	"errors"
	"strconv"

	"budget/middleware"
	"budget/service"

	"github.com/gin-gonic/gin"
)

// 跳过的新增操作返回的提示
const msgSkipped = "已忽略"

// recordBase 各记录处理器共用的依赖
type recordBase struct {
	records *service.RecordService
	// strict 为 true 时校验失败返回 400，否则与原有行为一致静默忽略
	strict bool
}

// parseID 解析路径中的记录 ID
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		BadRequest(c, "无效的ID")
		return 0, false
	}
	return uint(id), true
}

// currentUser 当前用户，缺失时直接返回 401
func currentUser(c *gin.Context) (string, bool) {
	userID := middleware.GetCurrentUserID(c)
	if userID == "" {
		Unauthorized(c, "请先登录")
		return "", false
	}
	return userID, true
}

// serviceError 服务层错误转为响应
func serviceError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, service.ErrUnauthenticated) {
		Unauthorized(c, "请先登录")
		return
	}
	InternalError(c, SafeErrorMessage(err, fallback))
}

// respondCreated 新增结果。被跳过时默认静默成功
func (b recordBase) respondCreated(c *gin.Context, data interface{}, res service.Result) {
	if res.Skipped {
		if b.strict && res.IsValidation() {
			BadRequest(c, res.Reason.Message())
			return
		}
		SuccessWithMessage(c, msgSkipped, nil)
		return
	}
	SuccessWithMessage(c, "创建成功", data)
}

// respondDeleted 删除结果。不存在与无权限均视为成功，不泄露他人记录
func respondDeleted(c *gin.Context, _ service.Result, err error) {
	if err != nil {
		serviceError(c, err, "删除失败")
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}
