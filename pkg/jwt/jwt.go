package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/checkproof/inventory/pkg/errors"
)

// Manager JWT管理器
// 设计说明：
// 1. 本服务是内部库存系统，没有终端用户账号体系
// 2. 调用方（订单系统、盘点工具等）用API密钥换取短期Access Token
// 3. Token使用HS256签名，Subject记录调用方标识
type Manager struct {
	secret      string        // JWT签名密钥
	tokenExpire time.Duration // Access Token有效期
}

// Claims 自定义JWT Claims
type Claims struct {
	Client string `json:"client"` // 调用方标识
	jwt.RegisteredClaims
}

// NewManager 创建JWT管理器
func NewManager(secret string, tokenExpire time.Duration) *Manager {
	return &Manager{
		secret:      secret,
		tokenExpire: tokenExpire,
	}
}

// GenerateToken 签发Access Token
func (m *Manager) GenerateToken(client string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Client: client,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   client,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenExpire)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secret))
	if err != nil {
		return "", apperrors.Wrap(err, "签发Token失败")
	}

	return signed, nil
}

// ParseToken 验证并解析Token
// 错误映射：
// - 过期 → ErrTokenExpired（客户端应重新获取Token）
// - 其他（签名错误、格式错误） → ErrInvalidToken
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// 只接受HS256，防止算法替换攻击
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidToken
		}
		return []byte(m.secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}

// TokenExpire 返回Token有效期（用于响应中提示客户端）
func (m *Manager) TokenExpire() time.Duration {
	return m.tokenExpire
}
