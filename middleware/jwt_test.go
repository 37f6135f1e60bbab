package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"budget/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initJWTTestConfig(issuer string) {
	InitJWT(&config.Config{
		JWT: config.JWTConfig{Secret: "test-jwt-secret-key", Issuer: issuer},
	})
}

func TestGenerateToken(t *testing.T) {
	initJWTTestConfig("")

	token, err := GenerateToken("user-1", "a@example.com", 24*time.Hour)
	require.NoError(t, err)
	assert.Greater(t, len(token), 20)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "a@example.com", claims.Email)

	_, err = GenerateToken("", "", time.Hour)
	assert.Error(t, err)
}

func TestParseToken(t *testing.T) {
	initJWTTestConfig("")

	// 空字符串
	_, err := ParseToken("")
	assert.Error(t, err)

	// 无效格式
	_, err = ParseToken("not.a.valid.jwt")
	assert.Error(t, err)
	_, err = ParseToken("eyJhbGciOiJmb29iIn0.xxxx.yyyy")
	assert.Error(t, err)

	// 过期
	expired, _ := GenerateToken("user-1", "", -time.Minute)
	_, err = ParseToken(expired)
	assert.Error(t, err)

	// 其他密钥签发
	other := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"}})
	signed, _ := other.SignedString([]byte("another-secret"))
	_, err = ParseToken(signed)
	assert.Error(t, err)

	// 缺少 sub
	noSub := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Email: "a@example.com"})
	signed, _ = noSub.SignedString([]byte("test-jwt-secret-key"))
	_, err = ParseToken(signed)
	assert.Error(t, err)
}

func TestParseToken_Issuer(t *testing.T) {
	initJWTTestConfig("auth.example.com")
	defer initJWTTestConfig("")

	token, _ := GenerateToken("user-1", "", time.Hour)
	_, err := ParseToken(token)
	require.NoError(t, err)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    "evil.example.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}})
	signed, _ := foreign.SignedString([]byte("test-jwt-secret-key"))
	_, err = ParseToken(signed)
	assert.Error(t, err)
}

func TestJWTAuth(t *testing.T) {
	initJWTTestConfig("")
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(JWTAuth())
	router.GET("/protected", func(c *gin.Context) {
		c.String(200, "id:%s email:%s", GetCurrentUserID(c), GetCurrentUserEmail(c))
	})

	// 无 token
	req := httptest.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "401")

	// 格式错误（非 Bearer）
	req2 := httptest.NewRequest("GET", "/protected", nil)
	req2.Header.Set("Authorization", "Basic xyz")
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusUnauthorized, w2.Code)

	// 格式错误（仅 Bearer 无 token）
	req3 := httptest.NewRequest("GET", "/protected", nil)
	req3.Header.Set("Authorization", "Bearer ")
	w3 := httptest.NewRecorder()
	router.ServeHTTP(w3, req3)
	assert.Equal(t, http.StatusUnauthorized, w3.Code)

	// 有效 token
	token, _ := GenerateToken("user-42", "u42@example.com", time.Hour)
	req4 := httptest.NewRequest("GET", "/protected", nil)
	req4.Header.Set("Authorization", "Bearer "+token)
	w4 := httptest.NewRecorder()
	router.ServeHTTP(w4, req4)
	assert.Equal(t, 200, w4.Code)
	assert.Equal(t, "id:user-42 email:u42@example.com", w4.Body.String())
}

func TestGetCurrentUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, "", GetCurrentUserID(c))

	SetCurrentUser(c, "user-99", "")
	assert.Equal(t, "user-99", GetCurrentUserID(c))
	assert.Equal(t, "", GetCurrentUserEmail(c))
}
