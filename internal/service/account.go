package service

import (
	"context"
	"fmt"
	"net/mail"
	"storefront-commerce/internal/apperror"
	"storefront-commerce/internal/config"
	"storefront-commerce/internal/dto"
	"storefront-commerce/internal/model"
	"storefront-commerce/internal/repository"
	"strings"
)

const (
	CodeInvalidCredentials = "invalid_credentials"
	CodeAdminNotConfigured = "admin_not_configured"

	minPasswordLength = 8
	// bcrypt only reads the first 72 bytes and refuses anything longer
	maxPasswordBytes = 72
)

type AccountService interface {
	AdminLogin(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.CustomerAuthResponse, error)
	CustomerLogin(ctx context.Context, req *dto.LoginRequest) (*dto.CustomerAuthResponse, error)
	Profile(ctx context.Context, customerID uint) (*model.Customer, error)
	UpdateProfile(ctx context.Context, customerID uint, req *dto.ProfileRequest) (*model.Customer, error)
}

type accountServiceImpl struct {
	admin        config.Admin
	tokens       TokenService
	hasher       PasswordHasher
	customerRepo repository.CustomerRepository
}

func NewAccountService(
	adminCfg *config.Admin,
	tokens TokenService,
	hasher PasswordHasher,
	customerRepo repository.CustomerRepository,
) AccountService {
	return &accountServiceImpl{
		admin:        *adminCfg,
		tokens:       tokens,
		hasher:       hasher,
		customerRepo: customerRepo,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *accountServiceImpl) AdminLogin(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if s.admin.PasswordHash == "" {
		return nil, &apperror.ConfigError{Code: CodeAdminNotConfigured}
	}

	email := normalizeEmail(req.Email)
	if email != normalizeEmail(s.admin.Email) || !s.hasher.Verify(req.Password, s.admin.PasswordHash) {
		return nil, apperror.Auth(CodeInvalidCredentials)
	}

	token, err := s.tokens.Issue(email, RoleAdmin, nil)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{Token: token}, nil
}

func (s *accountServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.CustomerAuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, apperror.Validation("email", "required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperror.Validation("email", "invalid")
	}
	if len(req.Password) < minPasswordLength {
		return nil, apperror.Validation("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}
	if len(req.Password) > maxPasswordBytes {
		return nil, apperror.Validation("password", fmt.Sprintf("must be at most %d bytes", maxPasswordBytes))
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	id, err := s.customerRepo.Create(ctx, &model.Customer{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Phone:        strings.TrimSpace(req.Phone),
	})
	if err != nil {
		return nil, err
	}

	return s.issueCustomerToken(ctx, id)
}

func (s *accountServiceImpl) CustomerLogin(ctx context.Context, req *dto.LoginRequest) (*dto.CustomerAuthResponse, error) {
	customer, err := s.customerRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.Auth(CodeInvalidCredentials)
		}
		return nil, err
	}
	if !s.hasher.Verify(req.Password, customer.PasswordHash) {
		return nil, apperror.Auth(CodeInvalidCredentials)
	}

	if err := s.customerRepo.TouchLogin(ctx, customer.ID); err != nil {
		return nil, err
	}

	return s.issueCustomerToken(ctx, customer.ID)
}

func (s *accountServiceImpl) issueCustomerToken(ctx context.Context, customerID uint) (*dto.CustomerAuthResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(customer.Email, RoleCustomer, &customer.ID)
	if err != nil {
		return nil, err
	}
	return &dto.CustomerAuthResponse{Token: token, Customer: customer}, nil
}

func (s *accountServiceImpl) Profile(ctx context.Context, customerID uint) (*model.Customer, error) {
	return s.customerRepo.FindByID(ctx, customerID)
}

func (s *accountServiceImpl) UpdateProfile(ctx context.Context, customerID uint, req *dto.ProfileRequest) (*model.Customer, error) {
	err := s.customerRepo.UpdateProfile(ctx, customerID,
		strings.TrimSpace(req.FirstName),
		strings.TrimSpace(req.LastName),
		strings.TrimSpace(req.Phone),
	)
	if err != nil {
		return nil, err
	}
	return s.customerRepo.FindByID(ctx, customerID)
}
