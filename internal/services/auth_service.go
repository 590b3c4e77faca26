package services

import (
	"errors"
	"strings"

	"github.com/terraincognita07/lunacy/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadySetUp       = errors.New("account already set up")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrEmailRequired      = errors.New("email required")
)

const minPasswordLength = 8

type AuthUserRepository interface {
	Count() (int64, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
	Save(user *models.User) error
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (service *AuthService) IsSetUp() (bool, error) {
	count, err := service.users.Count()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Register creates the owner account. This is a single-household deployment:
// registration is a one-time setup and closes afterwards.
func (service *AuthService) Register(email string, password string) (models.User, error) {
	setUp, err := service.IsSetUp()
	if err != nil {
		return models.User{}, err
	}
	if setUp {
		return models.User{}, ErrAlreadySetUp
	}

	normalizedEmail := NormalizeEmail(email)
	if normalizedEmail == "" {
		return models.User{}, ErrEmailRequired
	}
	if len(password) < minPasswordLength {
		return models.User{}, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Email:        normalizedEmail,
		PasswordHash: string(hash),
		CycleLength:  models.DefaultCycleLength,
		PeriodLength: models.DefaultPeriodLength,
		TTC:          true,
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (service *AuthService) Login(email string, password string) (models.User, error) {
	user, err := service.users.FindByNormalizedEmail(NormalizeEmail(email))
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

func (service *AuthService) SaveUser(user *models.User) error {
	return service.users.Save(user)
}
