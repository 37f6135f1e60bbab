package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"budget/middleware"
	"budget/repository"
	"budget/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func setUserMiddleware(userID, email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			middleware.SetCurrentUser(c, userID, email)
		}
		c.Next()
	}
}

func newTestService() *service.RecordService {
	return service.NewRecordService(repository.NewMemoryStore(), service.Options{})
}

// doJSON 发送请求并解析统一响应结构
func doJSON(t *testing.T, router *gin.Engine, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func init() {
	gin.SetMode(gin.TestMode)
}
