package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/argon2"
	"gorm.io/gorm"

	"trailangels/db"
	"trailangels/models"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AccountService handles registration, login and token lifecycle.
type AccountService struct{}

func NewAccountService() *AccountService {
	return &AccountService{}
}

// Register creates an account. The handle ("user-<nickname>") is the opaque
// participant id messages carry.
func (as *AccountService) Register(nickname, password string) (*models.User, error) {
	if nickname == "" || password == "" {
		return nil, errors.New("nickname and password are required")
	}

	var exists int64
	if err := db.ORM.Model(&models.User{}).Where("nickname = ?", nickname).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists > 0 {
		return nil, ErrUserExists
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Nickname: nickname,
		Handle:   "user-" + strings.ToLower(nickname),
		Password: hash,
	}
	if err := db.ORM.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies the password and issues a fresh token, dropping old ones.
func (as *AccountService) Login(nickname, password string) (string, *models.User, error) {
	var user models.User
	err := db.ORM.Where("nickname = ?", nickname).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if !verifyPassword(user.Password, password) {
		return "", nil, ErrInvalidCredentials
	}

	// Drop old tokens before issuing a new one.
	_ = db.ORM.Where("user_id = ?", user.ID).Delete(&models.UserTokens{}).Error

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", nil, err
	}
	token := hex.EncodeToString(tokenBytes)
	if err := db.ORM.Create(&models.UserTokens{UserID: user.ID, Token: token}).Error; err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// Logout invalidates a token.
func (as *AccountService) Logout(token string) error {
	if token == "" {
		return errors.New("token is empty")
	}
	return db.ORM.Where("token = ?", token).Delete(&models.UserTokens{}).Error
}

// UserByToken resolves a bearer token to its account.
func (as *AccountService) UserByToken(token string) (*models.User, error) {
	var row models.UserTokens
	if err := db.ORM.Where("token = ?", token).First(&row).Error; err != nil {
		return nil, err
	}
	var user models.User
	if err := db.ORM.First(&user, row.UserID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(hash), nil
}

func verifyPassword(stored, password string) bool {
	parts := strings.Split(stored, "$")
	if len(parts) != 2 {
		return false
	}
	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return false
	}
	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return hex.EncodeToString(hash) == parts[1]
}
