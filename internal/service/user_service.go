package service

import (
	"context"
	"errors"

	"github.com/haierkeys/storyboard-studio-service/internal/domain"
	"github.com/haierkeys/storyboard-studio-service/internal/dto"
	"github.com/haierkeys/storyboard-studio-service/pkg/app"
	"github.com/haierkeys/storyboard-studio-service/pkg/code"
	"github.com/haierkeys/storyboard-studio-service/pkg/timex"
	"github.com/haierkeys/storyboard-studio-service/pkg/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserService 定义用户业务服务接口
type UserService interface {
	// Register 用户注册
	Register(ctx context.Context, params *dto.UserCreateRequest) (*dto.UserDTO, error)

	// Login 用户登录
	Login(ctx context.Context, params *dto.UserLoginRequest, clientIP string) (*dto.UserDTO, error)

	// GetInfo 获取用户信息
	GetInfo(ctx context.Context, uid int64) (*dto.UserDTO, error)
}

// userService 实现 UserService 接口
type userService struct {
	userRepo     domain.UserRepository
	tokenManager app.TokenManager
	logger       *zap.Logger
	config       *ServiceConfig
}

// NewUserService 创建 UserService 实例
func NewUserService(userRepo domain.UserRepository, tokenManager app.TokenManager, logger *zap.Logger, config *ServiceConfig) UserService {
	return &userService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
		logger:       logger,
		config:       config,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *userService) domainToDTO(user *domain.User) *dto.UserDTO {
	if user == nil {
		return nil
	}
	return &dto.UserDTO{
		UID:       user.UID,
		Email:     user.Email,
		Nickname:  user.Nickname,
		Token:     user.Token,
		Avatar:    user.Avatar,
		UpdatedAt: timex.Time(user.UpdatedAt),
		CreatedAt: timex.Time(user.CreatedAt),
	}
}

// Register 用户注册
func (s *userService) Register(ctx context.Context, params *dto.UserCreateRequest) (*dto.UserDTO, error) {
	if s.config == nil || !s.config.User.RegisterIsEnable {
		return nil, code.ErrorUserRegisterDisabled
	}

	if params.Password != params.ConfirmPassword {
		return nil, code.ErrorUserRegisterFailed.WithDetails("password mismatch")
	}

	existing, err := s.userRepo.GetByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	if existing != nil {
		return nil, code.ErrorUserEmailExists
	}

	password, err := util.GeneratePasswordHash(params.Password)
	if err != nil {
		return nil, code.ErrorUserRegisterFailed.WithDetails(err.Error())
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Email:    params.Email,
		Nickname: params.Nickname,
		Password: password,
	})
	if err != nil {
		return nil, code.ErrorUserRegisterFailed.WithDetails(err.Error())
	}

	token, err := s.tokenManager.Generate(user.UID, user.Nickname, "")
	if err != nil {
		return nil, code.ErrorUserGenerateTokenFailed.WithDetails(err.Error())
	}

	result := s.domainToDTO(user)
	result.Token = token
	return result, nil
}

// Login 用户登录
func (s *userService) Login(ctx context.Context, params *dto.UserLoginRequest, clientIP string) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByEmail(ctx, params.Email)
	if err != nil {
		// 不暴露用户是否存在，统一返回登录失败
		return nil, code.ErrorUserLoginFailed
	}

	if !util.CheckPasswordHash(params.Password, user.Password) {
		return nil, code.ErrorUserLoginFailed
	}

	token, err := s.tokenManager.Generate(user.UID, user.Nickname, clientIP)
	if err != nil {
		return nil, code.ErrorUserGenerateTokenFailed.WithDetails(err.Error())
	}

	user.Token = token
	if err := s.userRepo.Update(ctx, user, user.UID); err != nil {
		s.logger.Warn("login: token persist failed",
			zap.Int64("uid", user.UID), zap.Error(err))
	}

	result := s.domainToDTO(user)
	result.Token = token
	return result, nil
}

// GetInfo 获取用户信息
func (s *userService) GetInfo(ctx context.Context, uid int64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, code.ErrorNotFound
	}
	return s.domainToDTO(user), nil
}
