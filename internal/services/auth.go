package services

import (
	"errors"
	"time"

	"github.com/caseflow/caseflow/internal/config"
	"github.com/caseflow/caseflow/internal/models"
	"github.com/caseflow/caseflow/internal/utils"
	"github.com/caseflow/caseflow/pkg/logger"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthService struct {
	db  *gorm.DB
	jwt *config.JWTConfig
}

func NewAuthService(db *gorm.DB, jwt *config.JWTConfig) *AuthService {
	return &AuthService{db: db, jwt: jwt}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, error) {
	var user models.User
	if err := s.db.Where("username = ? AND is_active = ?", req.Username, true).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Role, s.jwt.ExpireHour)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s.db.Model(&user).Update("last_login", now)
	user.LastLogin = &now

	return &LoginResponse{Token: token, User: &user}, nil
}

func (s *AuthService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateAdminIfNotExists seeds the default admin account on first boot.
func (s *AuthService) CreateAdminIfNotExists() error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("role = ?", "admin").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := utils.HashPassword("admin123")
	if err != nil {
		return err
	}
	admin := models.User{
		Username: "admin",
		Password: hashed,
		Nickname: "Administrator",
		Role:     "admin",
		IsActive: true,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}
	logger.Warn().Msg("default admin account created, change the password")
	return nil
}
