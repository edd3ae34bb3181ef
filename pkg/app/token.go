package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// 默认 Token 签发者
const DefaultTokenIssuer = "storyboard-studio-service"

// TokenConfig 定义 Token 管理器的配置
type TokenConfig struct {
	SecretKey string        `yaml:"secret-key"` // JWT 签名密钥
	Expiry    time.Duration `yaml:"expiry"`     // Token 过期时间，默认 7 天
	Issuer    string        `yaml:"issuer"`     // Token 签发者
}

// TokenManager 定义 Token 管理接口
type TokenManager interface {
	Generate(uid int64, nickname, ip string) (string, error)
	Parse(token string) (*UserEntity, error)
	Validate(token string) error
	GetSecretKey() string
}

// tokenManager 实现 TokenManager 接口
type tokenManager struct {
	config TokenConfig
}

// NewTokenManager 创建一个新的 TokenManager 实例
func NewTokenManager(cfg TokenConfig) TokenManager {
	if cfg.Expiry == 0 {
		cfg.Expiry = 7 * 24 * time.Hour
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultTokenIssuer
	}
	return &tokenManager{config: cfg}
}

// UserEntity represents the user data stored in the JWT
// UserEntity 表示存储在 JWT 中的用户数据
type UserEntity struct {
	UID      int64  `json:"uid"`
	Nickname string `json:"nickname"`
	IP       string `json:"ip"`
	jwt.RegisteredClaims
}

// Generate 生成一个新的 JWT Token
func (t *tokenManager) Generate(uid int64, nickname, ip string) (string, error) {
	expirationTime := time.Now().Add(t.config.Expiry)
	claims := &UserEntity{
		UID:      uid,
		Nickname: nickname,
		IP:       ip,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    t.config.Issuer,
			Subject:   "user-token",
			ID:        fmt.Sprintf("%d", uid),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(t.config.SecretKey))
}

// Parse 解析并校验 Token，返回其中的用户数据
func (t *tokenManager) Parse(tokenStr string) (*UserEntity, error) {
	claims := &UserEntity{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(t.config.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// Validate 仅校验 Token 是否有效
func (t *tokenManager) Validate(tokenStr string) error {
	_, err := t.Parse(tokenStr)
	return err
}

func (t *tokenManager) GetSecretKey() string {
	return t.config.SecretKey
}

// GetToken extracts the auth token from header or query
// GetToken 从请求头或查询参数中提取认证 Token
func GetToken(c *gin.Context, headerKey string) string {
	token := c.GetHeader(headerKey)
	if token == "" {
		token = c.Query("token")
	}
	return token
}
