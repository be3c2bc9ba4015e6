package api

import (
	"time"

	"budgetbuddy/config"
	"budgetbuddy/database"
	"budgetbuddy/models"
	"budgetbuddy/service"
	"budgetbuddy/store"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// 验证码有效期
const resetCodeTTL = 15 * time.Minute

// PasswordResetHandler 密码重置处理器
type PasswordResetHandler struct {
	cfg          *config.Config
	users        *store.UserStore
	emailService *service.EmailService
}

// NewPasswordResetHandler 创建密码重置处理器
func NewPasswordResetHandler(cfg *config.Config, users *store.UserStore) *PasswordResetHandler {
	return &PasswordResetHandler{
		cfg:          cfg,
		users:        users,
		emailService: service.NewEmailService(&cfg.Email),
	}
}

// RequestResetRequest 请求密码重置
type RequestResetRequest struct {
	Email string `json:"email" binding:"required,email" example:"alice@example.com"`
}

// RequestReset 请求密码重置验证码
// @Summary 请求密码重置
// @Description 向指定邮箱发送密码重置验证码。无论邮箱是否注册，返回同一提示
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body RequestResetRequest true "邮箱"
// @Success 200 {object} Response "已发送"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/auth/password/request-reset [post]
func (h *PasswordResetHandler) RequestReset(c *gin.Context) {
	var req RequestResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请输入有效的邮箱地址")
		return
	}

	// 不暴露邮箱是否已注册
	const sentMessage = "如果该邮箱已注册，您将收到密码重置验证码"

	user, err := h.users.FindByEmail(req.Email)
	if err != nil {
		SuccessWithMessage(c, sentMessage, nil)
		return
	}

	// 防止频繁发送：1 分钟内已有未使用的有效验证码则拒绝
	var existing models.PasswordReset
	if err := database.DB.Where("email = ? AND used = ? AND expires_at > ?",
		req.Email, false, time.Now()).
		Order("created_at DESC").First(&existing).Error; err == nil {
		if time.Since(existing.CreatedAt) < time.Minute {
			Error(c, 429, "请求过于频繁，请稍后再试")
			return
		}
		database.DB.Model(&existing).Update("used", true)
	}

	code, err := models.GenerateVerificationCode()
	if err != nil {
		InternalError(c, "生成验证码失败")
		return
	}

	reset := models.PasswordReset{
		UserID:    user.ID,
		Code:      code,
		Email:     req.Email,
		ExpiresAt: time.Now().Add(resetCodeTTL),
	}

	if err := database.DB.Create(&reset).Error; err != nil {
		InternalError(c, config.SafeErrorMessage(err, "保存验证码失败"))
		return
	}

	if err := h.emailService.SendPasswordResetEmail(req.Email, user.Username, code); err != nil {
		database.DB.Delete(&reset)
		InternalError(c, config.SafeErrorMessage(err, "邮件发送失败"))
		return
	}

	SuccessWithMessage(c, sentMessage, nil)
}

// VerifyCodeRequest 校验验证码
type VerifyCodeRequest struct {
	Email string `json:"email" binding:"required,email" example:"alice@example.com"`
	Code  string `json:"code" binding:"required,len=6" example:"123456"`
}

// VerifyCode 校验密码重置验证码
// @Summary 校验验证码
// @Description 校验密码重置验证码是否有效
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body VerifyCodeRequest true "邮箱和验证码"
// @Success 200 {object} Response "验证码有效"
// @Failure 400 {object} Response "验证码无效或已过期"
// @Router /api/v1/auth/password/verify-code [post]
func (h *PasswordResetHandler) VerifyCode(c *gin.Context) {
	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	if _, ok := h.findValidReset(req.Email, req.Code); !ok {
		BadRequest(c, "验证码无效或已过期")
		return
	}

	SuccessWithMessage(c, "验证码有效", nil)
}

// ResetPasswordRequest 重置密码
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email" example:"alice@example.com"`
	Code        string `json:"code" binding:"required,len=6" example:"123456"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=50" example:"newpassword123"`
}

// ResetPassword 通过验证码重置密码
// @Summary 重置密码
// @Description 使用邮箱验证码重置密码，验证码一次有效
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "重置信息"
// @Success 200 {object} Response "重置成功"
// @Failure 400 {object} Response "验证码无效或已过期"
// @Router /api/v1/auth/password/reset [post]
func (h *PasswordResetHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	reset, ok := h.findValidReset(req.Email, req.Code)
	if !ok {
		BadRequest(c, "验证码无效或已过期")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, "密码加密失败")
		return
	}

	if err := h.users.UpdatePassword(reset.UserID, string(hashedPassword)); err != nil {
		InternalError(c, config.SafeErrorMessage(err, "更新密码失败"))
		return
	}

	// 验证码一次有效，同邮箱其余未使用的验证码一并作废
	database.DB.Model(&models.PasswordReset{}).
		Where("email = ? AND used = ?", req.Email, false).
		Update("used", true)

	SuccessWithMessage(c, "密码重置成功，请使用新密码登录", nil)
}

func (h *PasswordResetHandler) findValidReset(email, code string) (*models.PasswordReset, bool) {
	var reset models.PasswordReset
	if err := database.DB.Where("email = ? AND code = ? AND used = ?",
		email, code, false).
		Order("created_at DESC").First(&reset).Error; err != nil {
		return nil, false
	}
	if !reset.IsValid() {
		return nil, false
	}
	return &reset, true
}
