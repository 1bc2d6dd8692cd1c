package handler

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/checkproof/inventory/internal/interface/http/dto"
	apperrors "github.com/checkproof/inventory/pkg/errors"
	"github.com/checkproof/inventory/pkg/jwt"
	"github.com/checkproof/inventory/pkg/response"
)

// AuthHandler 鉴权HTTP处理器
// 设计说明:
// 1. 本服务是内部库存系统,没有终端用户账号体系
// 2. 调用方用API密钥换取短期Access Token,后续请求携带Bearer Token
// 3. 配置中只存API密钥的bcrypt哈希,不存明文
type AuthHandler struct {
	jwtManager *jwt.Manager
	apiKeyHash string
}

// NewAuthHandler 创建鉴权处理器
func NewAuthHandler(jwtManager *jwt.Manager, apiKeyHash string) *AuthHandler {
	return &AuthHandler{
		jwtManager: jwtManager,
		apiKeyHash: apiKeyHash,
	}
}

// Token 获取访问凭证
// @Summary      获取访问凭证
// @Description  调用方用API密钥换取短期Access Token
// @Tags         鉴权
// @Accept       json
// @Produce      json
// @Param        request body dto.TokenRequest true "凭证请求"
// @Success      200 {object} response.Response{data=dto.TokenResponse}
// @Failure      200 {object} response.Response "API密钥错误"
// @Router       /api/v1/auth/token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	// 校验API密钥(配置中存bcrypt哈希)
	if err := bcrypt.CompareHashAndPassword([]byte(h.apiKeyHash), []byte(req.APIKey)); err != nil {
		response.Error(c, apperrors.ErrInvalidAPIKey)
		return
	}

	token, err := h.jwtManager.GenerateToken(req.Client)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.jwtManager.TokenExpire().Seconds()),
	})
}
