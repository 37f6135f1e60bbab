package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"budget/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ctxUserIDKey    = "userID"
	ctxUserEmailKey = "userEmail"
)

var (
	jwtSecret []byte
	jwtIssuer string
)

// Claims 身份提供方签发的令牌，sub 为用户标识
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// InitJWT 初始化签名密钥
func InitJWT(cfg *config.Config) {
	jwtSecret = []byte(cfg.JWT.Secret)
	jwtIssuer = cfg.JWT.Issuer
}

// GenerateToken 生成令牌，供本地调试使用
func GenerateToken(userID, email string, expire time.Duration) (string, error) {
	if userID == "" {
		return "", errors.New("用户标识不能为空")
	}
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    jwtIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expire)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseToken 校验并解析令牌
func ParseToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if jwtIssuer != "" {
		opts = append(opts, jwt.WithIssuer(jwtIssuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("无效的令牌")
	}
	if claims.Subject == "" {
		return nil, errors.New("令牌缺少用户标识")
	}
	return claims, nil
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"code":    http.StatusUnauthorized,
		"message": message,
	})
	c.Abort()
}

// JWTAuth Bearer 令牌认证中间件
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "请先登录")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			abortUnauthorized(c, "认证格式错误")
			return
		}

		claims, err := ParseToken(strings.TrimSpace(parts[1]))
		if err != nil {
			abortUnauthorized(c, "令牌无效或已过期")
			return
		}

		c.Set(ctxUserIDKey, claims.Subject)
		c.Set(ctxUserEmailKey, claims.Email)
		c.Next()
	}
}

// GetCurrentUserID 当前用户标识，未认证时为空字符串
func GetCurrentUserID(c *gin.Context) string {
	return c.GetString(ctxUserIDKey)
}

// GetCurrentUserEmail 令牌中的邮箱，可能为空
func GetCurrentUserEmail(c *gin.Context) string {
	return c.GetString(ctxUserEmailKey)
}

// SetCurrentUser 写入当前用户，测试与内部调用使用
func SetCurrentUser(c *gin.Context, userID, email string) {
	c.Set(ctxUserIDKey, userID)
	c.Set(ctxUserEmailKey, email)
}
