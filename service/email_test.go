package service

import (
	"testing"

	"budgetbuddy/config"

	"github.com/stretchr/testify/assert"
)

func newTestEmailService() *EmailService {
	return NewEmailService(&config.EmailConfig{})
}

func TestGenerateResetEmailBody(t *testing.T) {
	s := newTestEmailService()
	body := s.generateResetEmailBody("张三", "123456")
	assert.Contains(t, body, "张三")
	assert.Contains(t, body, "123456")
	assert.Contains(t, body, "密码重置")
	assert.Contains(t, body, "15 分钟")
}

func TestSendPasswordResetEmailDisabled(t *testing.T) {
	s := newTestEmailService()
	err := s.SendPasswordResetEmail("user@example.com", "张三", "123456")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "邮件服务未启用")
}
