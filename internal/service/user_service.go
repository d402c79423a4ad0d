package service

import (
	"errors"
	"strings"

	"github.com/shelora/shelora/internal/constants"
	"github.com/shelora/shelora/internal/models"
	"github.com/shelora/shelora/internal/repository"
)

// ErrUserNotFound 用户不存在
var ErrUserNotFound = errors.New("user not found")

// UserService 用户档案服务
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ProfileInput 更新档案输入
type ProfileInput struct {
	Name       string
	Phone      string
	Address    string
	City       string
	PostalCode string
}

// GetProfile 获取用户档案
func (s *UserService) GetProfile(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// EnsureProfile 按网关注入的身份确保本地档案存在
func (s *UserService) EnsureProfile(userID uint, email string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}
	user = &models.User{
		ID:     userID,
		Email:  strings.ToLower(strings.TrimSpace(email)),
		Status: constants.UserStatusActive,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile 更新用户档案（收件信息供下单预填）
func (s *UserService) UpdateProfile(userID uint, input ProfileInput) (*models.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	user.Name = strings.TrimSpace(input.Name)
	user.Phone = strings.TrimSpace(input.Phone)
	user.Address = strings.TrimSpace(input.Address)
	user.City = strings.TrimSpace(input.City)
	user.PostalCode = strings.TrimSpace(input.PostalCode)
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
