package service

import (
	"context"
	"errors"
	"storefront-commerce/internal/apperror"
	"storefront-commerce/internal/config"
	"storefront-commerce/internal/dto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminLoginNotConfigured(t *testing.T) {
	svc := newTestServices(t, nil)

	_, err := svc.accounts.AdminLogin(context.Background(), &dto.LoginRequest{Email: "admin@example.com", Password: "x"})
	var cfgErr *apperror.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, CodeAdminNotConfigured, cfgErr.Code)
}

func TestAdminLogin(t *testing.T) {
	hash, err := NewPasswordHasher(4).Hash("letmein!")
	require.NoError(t, err)
	svc := newTestServices(t, &config.Admin{Email: "Admin@Example.com", PasswordHash: hash})
	ctx := context.Background()

	resp, err := svc.accounts.AdminLogin(ctx, &dto.LoginRequest{Email: "  admin@example.COM ", Password: "letmein!"})
	require.NoError(t, err)
	claims, err := svc.tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "admin@example.com", claims.Subject)

	_, err = svc.accounts.AdminLogin(ctx, &dto.LoginRequest{Email: "admin@example.com", Password: "wrong"})
	assert.Equal(t, CodeInvalidCredentials, apperror.AuthCode(err))

	_, err = svc.accounts.AdminLogin(ctx, &dto.LoginRequest{Email: "someone@example.com", Password: "letmein!"})
	assert.Equal(t, CodeInvalidCredentials, apperror.AuthCode(err))
}

func TestSignupValidation(t *testing.T) {
	svc := newTestServices(t, nil)

	tests := []struct {
		name  string
		req   dto.SignupRequest
		field string
	}{
		{name: "missing email", req: dto.SignupRequest{Password: "longenough"}, field: "email"},
		{name: "bad email", req: dto.SignupRequest{Email: "not-an-email", Password: "longenough"}, field: "email"},
		{name: "short password", req: dto.SignupRequest{Email: "a@b.com", Password: "short"}, field: "password"},
		{name: "password over 72 bytes", req: dto.SignupRequest{Email: "a@b.com", Password: strings.Repeat("p", 80)}, field: "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.accounts.Signup(context.Background(), &tt.req)
			var validation *apperror.ValidationError
			require.True(t, errors.As(err, &validation))
			assert.Equal(t, tt.field, validation.Field)
		})
	}
}

func TestSignupAndLogin(t *testing.T) {
	svc := newTestServices(t, nil)
	ctx := context.Background()

	signup, err := svc.accounts.Signup(ctx, &dto.SignupRequest{
		Email:     "Ada@Example.com",
		Password:  "analytical",
		FirstName: "Ada",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", signup.Customer.Email)

	claims, err := svc.tokens.Verify(signup.Token)
	require.NoError(t, err)
	assert.Equal(t, RoleCustomer, claims.Role)
	require.NotNil(t, claims.CustomerID)
	assert.Equal(t, signup.Customer.ID, *claims.CustomerID)

	_, err = svc.accounts.Signup(ctx, &dto.SignupRequest{Email: "ada@example.com", Password: "analytical"})
	assert.True(t, apperror.IsConflict(err))

	_, err = svc.accounts.CustomerLogin(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "wrong-password"})
	assert.Equal(t, CodeInvalidCredentials, apperror.AuthCode(err))

	_, err = svc.accounts.CustomerLogin(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "analytical"})
	assert.Equal(t, CodeInvalidCredentials, apperror.AuthCode(err))

	login, err := svc.accounts.CustomerLogin(ctx, &dto.LoginRequest{Email: "ADA@example.com", Password: "analytical"})
	require.NoError(t, err)
	assert.NotNil(t, login.Customer.LastLoginAt)
}

func TestUpdateProfile(t *testing.T) {
	svc := newTestServices(t, nil)
	ctx := context.Background()

	signup, err := svc.accounts.Signup(ctx, &dto.SignupRequest{Email: "a@b.com", Password: "password1"})
	require.NoError(t, err)

	customer, err := svc.accounts.UpdateProfile(ctx, signup.Customer.ID, &dto.ProfileRequest{FirstName: " Grace ", Phone: "555"})
	require.NoError(t, err)
	assert.Equal(t, "Grace", customer.FirstName)
	assert.Equal(t, "555", customer.Phone)

	profile, err := svc.accounts.Profile(ctx, signup.Customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grace", profile.FirstName)
}
