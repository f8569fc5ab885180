package service

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/VerdeSupply/storefront_api/internal/models"
	"github.com/VerdeSupply/storefront_api/internal/repository"
	"github.com/VerdeSupply/storefront_api/internal/utils"
)

// AuthService handles registration, login, and profile management.
type AuthService struct {
	customerRepo *repository.CustomerRepository
}

// NewAuthService constructs an AuthService.
func NewAuthService(customerRepo *repository.CustomerRepository) *AuthService {
	return &AuthService{customerRepo: customerRepo}
}

// RegisterRequest carries the registration payload.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Language string `json:"language"`
}

// Register creates a retail account. Contractor/wholesale upgrades are an
// admin action, never self-service.
func (s *AuthService) Register(req *RegisterRequest) (*models.Customer, string, error) {
	exists, err := s.customerRepo.EmailExists(req.Email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", utils.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	lang := models.LangEnglish
	if req.Language == string(models.LangSpanish) {
		lang = models.LangSpanish
	}

	customer := &models.Customer{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Phone:        req.Phone,
		AccountType:  models.AccountRetail,
		Language:     lang,
		IsActive:     true,
	}
	if err := s.customerRepo.Create(customer); err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateJWT(customer.ID, customer.Email, string(customer.AccountType))
	if err != nil {
		return nil, "", err
	}
	log.Info().Str("email", customer.Email).Msg("Customer registered")
	return customer, token, nil
}

// Login verifies credentials and issues a JWT.
func (s *AuthService) Login(email, password string) (*models.Customer, string, error) {
	customer, err := s.customerRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", utils.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !customer.IsActive {
		log.Warn().Str("email", email).Msg("Login attempt on inactive account")
		return nil, "", utils.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)); err != nil {
		return nil, "", utils.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(customer.ID, customer.Email, string(customer.AccountType))
	if err != nil {
		return nil, "", err
	}
	log.Info().Str("email", email).Msg("Login successful")
	return customer, token, nil
}

// GetProfile returns the customer profile.
func (s *AuthService) GetProfile(userID int) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return customer, nil
}

// UpdateProfile updates user-editable fields. Account type and Zoho links
// are not user-editable.
func (s *AuthService) UpdateProfile(userID int, name, phone, language string) (*models.Customer, error) {
	lang := models.LangEnglish
	if language == string(models.LangSpanish) {
		lang = models.LangSpanish
	}
	if err := s.customerRepo.UpdateProfile(userID, name, phone, lang); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return s.customerRepo.GetByID(userID)
}
