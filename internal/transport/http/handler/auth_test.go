package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auth-flow-api/internal/application/auth"
	"github.com/auth-flow-api/internal/domain"
	jwtinfra "github.com/auth-flow-api/internal/infrastructure/jwt"
	"github.com/auth-flow-api/internal/transport/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mock ---

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) SignUp(ctx context.Context, req domain.SignUpRequest) (*domain.Account, error) {
	args := m.Called(ctx, req)
	if a, _ := args.Get(0).(*domain.Account); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) ResendSignupOTP(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockAuthSvc) VerifySignupOTP(ctx context.Context, email, code string) error {
	return m.Called(ctx, email, code).Error(0)
}

func (m *mockAuthSvc) Login(ctx context.Context, req domain.LoginRequest) (*auth.LoginResult, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*auth.LoginResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockAuthSvc) VerifyResetOTP(ctx context.Context, email, code string) (string, error) {
	args := m.Called(ctx, email, code)
	return args.String(0), args.Error(1)
}

func (m *mockAuthSvc) ResetPassword(ctx context.Context, token, newPassword string) error {
	return m.Called(ctx, token, newPassword).Error(0)
}

func (m *mockAuthSvc) ChangePassword(ctx context.Context, accountID, oldPassword, newPassword string) error {
	return m.Called(ctx, accountID, oldPassword, newPassword).Error(0)
}

// --- helpers ---

func jsonReq(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	return httptest.NewRequest(method, target, bytes.NewReader(b))
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorEnvelope {
	t.Helper()
	var env ErrorEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	return env
}

// --- SignUp ---

func TestSignUp_Created(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("SignUp", mock.Anything, mock.AnythingOfType("domain.SignUpRequest")).Return(&domain.Account{
		AccountID: "a1", Name: "Ada", Email: "a@b.com", Status: domain.StatusPending,
	}, nil)

	req := jsonReq(t, http.MethodPost, "/v1/auth/signup", domain.SignUpRequest{
		Name: "Ada", Email: "a@b.com", Password: "secret1234",
	})
	rr := httptest.NewRecorder()
	NewAuthHandler(svc).SignUp(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	var got domain.Account
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, domain.StatusPending, got.Status)
}

func TestSignUp_ValidationFailure_ListsFields(t *testing.T) {
	svc := &mockAuthSvc{}
	req := jsonReq(t, http.MethodPost, "/v1/auth/signup", domain.SignUpRequest{
		Name: "Ada", Email: "not-an-email", Password: "short",
	})
	rr := httptest.NewRecorder()
	NewAuthHandler(svc).SignUp(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	env := decodeError(t, rr)
	assert.NotEmpty(t, env.ErrorSources)
	svc.AssertNotCalled(t, "SignUp")
}

func TestSignUp_Conflict(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("SignUp", mock.Anything, mock.Anything).Return(nil,
		domain.E(domain.KindConflict, "you already have an account, please log in"))

	req := jsonReq(t, http.MethodPost, "/v1/auth/signup", domain.SignUpRequest{
		Name: "Ada", Email: "a@b.com", Password: "secret1234",
	})
	rr := httptest.NewRecorder()
	NewAuthHandler(svc).SignUp(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	env := decodeError(t, rr)
	assert.Contains(t, env.Message, "log in")
}

func TestSignUp_InternalErrorMasked(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("SignUp", mock.Anything, mock.Anything).Return(nil,
		domain.Wrap(domain.KindInternal, "signup failed", assert.AnError))

	req := jsonReq(t, http.MethodPost, "/v1/auth/signup", domain.SignUpRequest{
		Name: "Ada", Email: "a@b.com", Password: "secret1234",
	})
	rr := httptest.NewRecorder()
	NewAuthHandler(svc).SignUp(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	env := decodeError(t, rr)
	assert.Equal(t, "something went wrong", env.Message)
	assert.NotContains(t, env.Message, assert.AnError.Error())
}

// --- VerifyOTP ---

func TestVerifyOTP_OK(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("VerifySignupOTP", mock.Anything, "a@b.com", "123456").Return(nil)

	req := jsonReq(t, http.MethodPost, "/v1/auth/verify-otp", domain.VerifyOTPRequest{
		Email: "a@b.com", OTP: "123456",
	})
	rr := httptest.NewRecorder()
	NewAuthHandler(svc).VerifyOTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestVerifyOTP_NonNumericCode_BadRequest(t *testing.T) {
	svc := &mockAuthSvc{}
	req := jsonReq(t, http.MethodPost, "/v1/auth/verify-otp", domain.VerifyOTPRequest{
		Email: "a@b.com", OTP: "abc123",
	})
	rr := httptest.NewRecorder()
	NewAuthHandler(svc).VerifyOTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "VerifySignupOTP")
}

// --- Login ---

func TestLogin_ReturnsTokenPair(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Login", mock.Anything, mock.AnythingOfType("domain.LoginRequest")).Return(&auth.LoginResult{
		AccessToken: "access-token", RefreshToken: "refresh-token",
	}, nil)

	req := jsonReq(t, http.MethodPost, "/v1/auth/login", domain.LoginRequest{
		Email: "a@b.com", Password: "secret1234",
	})
	rr := httptest.NewRecorder()
	NewAuthHandler(svc).Login(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var env AuthEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	assert.Equal(t, "access-token", env.AccessToken)
	assert.Equal(t, "refresh-token", env.RefreshToken)
}

func TestLogin_Blocked_Forbidden(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Login", mock.Anything, mock.Anything).Return(nil,
		domain.E(domain.KindForbidden, "your account has been blocked"))

	req := jsonReq(t, http.MethodPost, "/v1/auth/login", domain.LoginRequest{
		Email: "a@b.com", Password: "secret1234",
	})
	rr := httptest.NewRecorder()
	NewAuthHandler(svc).Login(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

// --- password flows ---

func TestForgotPassword_TooManyRequests(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("ForgotPassword", mock.Anything, "a@b.com").Return(
		domain.E(domain.KindTooManyRequests, "a reset code was already sent, please wait for it to expire"))

	req := jsonReq(t, http.MethodPost, "/v1/auth/forgot-password", domain.EmailRequest{Email: "a@b.com"})
	rr := httptest.NewRecorder()
	NewAuthHandler(svc).ForgotPassword(rr, req)

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
}

func TestVerifyResetOTP_ReturnsResetToken(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("VerifyResetOTP", mock.Anything, "a@b.com", "123456").Return("reset-token", nil)

	req := jsonReq(t, http.MethodPost, "/v1/auth/verify-reset-otp", domain.VerifyOTPRequest{
		Email: "a@b.com", OTP: "123456",
	})
	rr := httptest.NewRecorder()
	NewAuthHandler(svc).VerifyResetOTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "reset-token", body["reset_token"])
}

func TestResetPassword_OK(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("ResetPassword", mock.Anything, "reset-token", "newsecret1234").Return(nil)

	req := jsonReq(t, http.MethodPost, "/v1/auth/reset-password", domain.ResetPasswordRequest{
		Token: "reset-token", NewPassword: "newsecret1234",
	})
	rr := httptest.NewRecorder()
	NewAuthHandler(svc).ResetPassword(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestChangePassword_NoClaims_Unauthorized(t *testing.T) {
	svc := &mockAuthSvc{}
	req := jsonReq(t, http.MethodPost, "/v1/auth/change-password", domain.ChangePasswordRequest{
		OldPassword: "oldsecret1234", NewPassword: "newsecret1234",
	})
	rr := httptest.NewRecorder()
	NewAuthHandler(svc).ChangePassword(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	svc.AssertNotCalled(t, "ChangePassword")
}

func TestChangePassword_UsesAccountIDFromClaims(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("ChangePassword", mock.Anything, "a1", "oldsecret1234", "newsecret1234").Return(nil)

	req := jsonReq(t, http.MethodPost, "/v1/auth/change-password", domain.ChangePasswordRequest{
		OldPassword: "oldsecret1234", NewPassword: "newsecret1234",
	})
	ctx := context.WithValue(req.Context(), middleware.ClaimsKey, &jwtinfra.Claims{AccountID: "a1"})
	rr := httptest.NewRecorder()
	NewAuthHandler(svc).ChangePassword(rr, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}
