package store

import (
	"errors"

	"budgetbuddy/models"

	"gorm.io/gorm"
)

// UserStore 用户数据访问层
type UserStore struct {
	db *gorm.DB
}

// NewUserStore 创建用户数据访问层
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create 创建用户
// 用户名唯一性由调用方预检，唯一索引兜底并发注册
func (s *UserStore) Create(user *models.User) error {
	return s.db.Create(user).Error
}

// FindByUsername 按用户名查询，不存在时返回 ErrNotFound
func (s *UserStore) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail 按邮箱查询，不存在时返回 ErrNotFound
func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID 按 ID 查询，不存在时返回 ErrNotFound
func (s *UserStore) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePassword 更新密码哈希
func (s *UserStore) UpdatePassword(userID uint, hashedPassword string) error {
	return s.db.Model(&models.User{}).Where("id = ?", userID).
		Update("password", hashedPassword).Error
}
