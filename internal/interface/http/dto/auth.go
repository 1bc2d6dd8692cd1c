package dto

// TokenRequest HTTP获取访问凭证请求
// 调用方(订单系统、盘点工具等)用API密钥换取短期Access Token
type TokenRequest struct {
	Client string `json:"client" binding:"required,max=64" example:"order-service"`
	APIKey string `json:"api_key" binding:"required" example:"sk-xxxxxx"`
}

// TokenResponse HTTP访问凭证响应
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"Bearer"`
	ExpiresIn   int64  `json:"expires_in" example:"7200"` // 有效期(秒)
}
