package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/auth-flow-api/internal/domain"
	"github.com/auth-flow-api/internal/email"
	"github.com/auth-flow-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/auth-flow-api/internal/infrastructure/jwt"
	"github.com/auth-flow-api/internal/infrastructure/mail"
	"github.com/auth-flow-api/internal/pkg/id"
	pkgotp "github.com/auth-flow-api/internal/pkg/otp"
	"golang.org/x/crypto/bcrypt"
)

// LoginResult carries the issued token pair plus the two-factor flag the
// client needs to decide whether a second step follows.
type LoginResult struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	TwoFactorEnabled bool   `json:"two_factor_enabled"`
}

type Service interface {
	SignUp(ctx context.Context, req domain.SignUpRequest) (*domain.Account, error)
	ResendSignupOTP(ctx context.Context, email string) error
	VerifySignupOTP(ctx context.Context, email, code string) error
	Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error)
	ForgotPassword(ctx context.Context, email string) error
	VerifyResetOTP(ctx context.Context, email, code string) (resetToken string, err error)
	ResetPassword(ctx context.Context, token, newPassword string) error
	ChangePassword(ctx context.Context, accountID, oldPassword, newPassword string) error
}

type accountStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByEmailWithPassword(ctx context.Context, email string) (*domain.Account, error)
	GetWithPassword(ctx context.Context, accountID string) (*domain.Account, error)
	Update(ctx context.Context, accountID string, updates map[string]interface{}) error
}

type otpStore interface {
	Put(ctx context.Context, o *domain.OTP) error
	FindValid(ctx context.Context, accountID, purpose string) (*domain.OTP, error)
	VerifyAndConsume(ctx context.Context, accountID, purpose, code string) (*domain.OTP, error)
}

type registrationStore interface {
	Create(ctx context.Context, a *domain.Account, o *domain.OTP) error
	Rollback(ctx context.Context, accountID, purpose string) error
}

type tokenProvider interface {
	Sign(a *domain.Account, purpose jwtinfra.Purpose) (string, error)
	Verify(token string, purpose jwtinfra.Purpose) (*jwtinfra.Claims, error)
}

type service struct {
	accounts     accountStore
	otps         otpStore
	registration registrationStore
	tokens       tokenProvider
	mailer       mail.Mailer

	otpDigits int
	otpExpiry time.Duration
	hashCost  int
	appName   string
	appLogo   string
}

type ServiceDeps struct {
	AccountRepo      accountStore
	OTPRepo          otpStore
	RegistrationRepo registrationStore
	Tokens           tokenProvider
	Mailer           mail.Mailer

	OTPDigits        int
	OTPExpiry        time.Duration
	PasswordHashCost int
	AppName          string
	AppLogo          string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		accounts:     deps.AccountRepo,
		otps:         deps.OTPRepo,
		registration: deps.RegistrationRepo,
		tokens:       deps.Tokens,
		mailer:       deps.Mailer,
		otpDigits:    deps.OTPDigits,
		otpExpiry:    deps.OTPExpiry,
		hashCost:     deps.PasswordHashCost,
		appName:      deps.AppName,
		appLogo:      deps.AppLogo,
	}
}

// lookupErr passes an account-store miss through untouched and classifies
// everything else as internal, so an infrastructure failure never reads as
// an absent account.
func lookupErr(err error) error {
	if domain.KindOf(err) == domain.KindNotFound {
		return err
	}
	return domain.Wrap(domain.KindInternal, "lookup account", err)
}

// guard applies the fixed gate order every sensitive flow shares: blocked
// before deleted before the verification gate, so an account in several bad
// states always reports the most severe one.
func guard(a *domain.Account, requireVerified bool) error {
	if a.IsBlocked() {
		return domain.E(domain.KindForbidden, "your account has been blocked")
	}
	if a.IsDeleted() {
		return domain.E(domain.KindGone, "your account has been deleted")
	}
	if requireVerified && !a.OTPVerified {
		return domain.E(domain.KindBadRequest, "please verify your account first")
	}
	return nil
}

func (s *service) SignUp(ctx context.Context, req domain.SignUpRequest) (*domain.Account, error) {
	existing, err := s.accounts.GetByEmail(ctx, req.Email)
	if err == nil {
		switch {
		case existing.IsBlocked():
			return nil, domain.E(domain.KindForbidden, "this account has been blocked")
		case existing.IsDeleted():
			return nil, domain.E(domain.KindGone, "this account has been deleted")
		case existing.IsPending():
			return nil, domain.E(domain.KindConflict, "you already signed up, please verify the OTP sent to your email")
		default:
			return nil, domain.E(domain.KindConflict, "you already have an account, please log in")
		}
	}
	if domain.KindOf(err) != domain.KindNotFound {
		return nil, domain.Wrap(domain.KindInternal, "lookup account", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, domain.Wrap(domain.KindInternal, "hash password", err)
	}

	code, err := pkgotp.Generate(s.otpDigits)
	if err != nil {
		return nil, domain.Wrap(domain.KindInternal, "generate otp", err)
	}

	now := time.Now().UTC()
	account := &domain.Account{
		AccountID:    id.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Status:       domain.StatusPending,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	rec := &domain.OTP{
		AccountID: account.AccountID,
		Purpose:   domain.OTPPurposeSignup,
		Code:      code,
		ExpiresAt: now.Add(s.otpExpiry).Unix(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Account and OTP commit together; a pending account without its OTP
	// must never exist.
	if err := s.registration.Create(ctx, account, rec); err != nil {
		return nil, domain.Wrap(domain.KindInternal, "signup failed", err)
	}

	if err := s.sendOTPEmail(ctx, account, code, domain.OTPPurposeSignup); err != nil {
		// Compensate: an account whose verification code never arrived is
		// unusable, so undo both writes and let the user retry signup.
		if rbErr := s.registration.Rollback(ctx, account.AccountID, domain.OTPPurposeSignup); rbErr != nil {
			slog.Error("signup rollback failed", "account_id", account.AccountID, "err", rbErr)
		}
		return nil, domain.Wrap(domain.KindInternal, "could not send verification email, please try again", err)
	}

	account.PasswordHash = ""
	return account, nil
}

func (s *service) ResendSignupOTP(ctx context.Context, emailAddr string) error {
	a, err := s.accounts.GetByEmail(ctx, emailAddr)
	if err != nil {
		return lookupErr(err)
	}
	if err := guard(a, false); err != nil {
		return err
	}
	if a.OTPVerified {
		return domain.E(domain.KindConflict, "your account is already verified, please log in")
	}

	if rec, err := s.otps.FindValid(ctx, a.AccountID, domain.OTPPurposeSignup); err == nil {
		// The previous code is still live: resend it, then reject so the
		// client backs off instead of hammering new codes.
		if sendErr := s.sendOTPEmail(ctx, a, rec.Code, domain.OTPPurposeSignup); sendErr != nil {
			slog.Warn("resend signup otp email failed", "account_id", a.AccountID, "err", sendErr)
		}
		return domain.E(domain.KindConflict, "an OTP has already been sent and is still valid, please check your email")
	}

	code, err := pkgotp.Generate(s.otpDigits)
	if err != nil {
		return domain.Wrap(domain.KindInternal, "generate otp", err)
	}
	if err := s.issueOTP(ctx, a.AccountID, domain.OTPPurposeSignup, code); err != nil {
		return err
	}
	if err := s.sendOTPEmail(ctx, a, code, domain.OTPPurposeSignup); err != nil {
		// The code is durably stored; the user can ask for a resend.
		slog.Warn("signup otp email failed", "account_id", a.AccountID, "err", err)
	}
	return nil
}

func (s *service) VerifySignupOTP(ctx context.Context, emailAddr, code string) error {
	a, err := s.accounts.GetByEmail(ctx, emailAddr)
	if err != nil {
		return lookupErr(err)
	}
	if err := guard(a, false); err != nil {
		return err
	}
	if a.OTPVerified {
		return domain.E(domain.KindConflict, "your account is already verified, please log in")
	}

	if _, err := s.otps.VerifyAndConsume(ctx, a.AccountID, domain.OTPPurposeSignup, code); err != nil {
		return domain.E(domain.KindBadRequest, "invalid or expired OTP")
	}

	// Verification is the only path from pending to active; the two fields
	// move together.
	return s.accounts.Update(ctx, a.AccountID, map[string]interface{}{
		dynamo.FieldOTPVerified: true,
		dynamo.FieldStatus:      domain.StatusActive,
	})
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error) {
	a, err := s.accounts.GetByEmailWithPassword(ctx, req.Email)
	if err != nil {
		return nil, lookupErr(err)
	}
	if err := guard(a, true); err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.E(domain.KindBadRequest, "incorrect email or password")
	}

	a.PasswordHash = ""
	access, err := s.tokens.Sign(a, jwtinfra.PurposeAccess)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.Sign(a, jwtinfra.PurposeRefresh)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		AccessToken:      access,
		RefreshToken:     refresh,
		TwoFactorEnabled: a.TwoFactorEnabled,
	}, nil
}

func (s *service) ForgotPassword(ctx context.Context, emailAddr string) error {
	a, err := s.accounts.GetByEmail(ctx, emailAddr)
	if err != nil {
		return lookupErr(err)
	}
	if err := guard(a, true); err != nil {
		return err
	}

	if _, err := s.otps.FindValid(ctx, a.AccountID, domain.OTPPurposeReset); err == nil {
		return domain.E(domain.KindTooManyRequests, "a reset code was already sent, please wait for it to expire")
	}

	code, err := pkgotp.Generate(s.otpDigits)
	if err != nil {
		return domain.Wrap(domain.KindInternal, "generate otp", err)
	}
	if err := s.issueOTP(ctx, a.AccountID, domain.OTPPurposeReset, code); err != nil {
		return err
	}
	if err := s.sendOTPEmail(ctx, a, code, domain.OTPPurposeReset); err != nil {
		slog.Warn("reset otp email failed", "account_id", a.AccountID, "err", err)
	}
	return nil
}

func (s *service) VerifyResetOTP(ctx context.Context, emailAddr, code string) (string, error) {
	a, err := s.accounts.GetByEmail(ctx, emailAddr)
	if err != nil {
		return "", lookupErr(err)
	}
	if err := guard(a, true); err != nil {
		return "", err
	}

	if _, err := s.otps.VerifyAndConsume(ctx, a.AccountID, domain.OTPPurposeReset, code); err != nil {
		return "", domain.E(domain.KindBadRequest, "invalid or expired OTP")
	}

	// The short-lived reset token, not the consumed OTP, authorizes the
	// subsequent password change.
	return s.tokens.Sign(a, jwtinfra.PurposeReset)
}

func (s *service) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := s.tokens.Verify(token, jwtinfra.PurposeReset)
	if err != nil {
		return err
	}
	if claims.Email == "" {
		return domain.E(domain.KindUnauthorized, "invalid reset token")
	}
	a, err := s.accounts.GetByEmail(ctx, claims.Email)
	if err != nil {
		return lookupErr(err)
	}
	if err := guard(a, false); err != nil {
		return err
	}
	if claims.IssuedAt != nil && domain.IssuedBeforePasswordChange(a.PasswordChangedAt, claims.IssuedAt.Time) {
		return domain.E(domain.KindUnauthorized, "reset token is no longer valid, please request a new one")
	}
	return s.updatePassword(ctx, a.AccountID, newPassword)
}

func (s *service) ChangePassword(ctx context.Context, accountID, oldPassword, newPassword string) error {
	a, err := s.accounts.GetWithPassword(ctx, accountID)
	if err != nil {
		return lookupErr(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(oldPassword)); err != nil {
		return domain.E(domain.KindConflict, "current password is incorrect")
	}
	return s.updatePassword(ctx, accountID, newPassword)
}

func (s *service) updatePassword(ctx context.Context, accountID, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.hashCost)
	if err != nil {
		return domain.Wrap(domain.KindInternal, "hash password", err)
	}
	// Stamping password_changed_at invalidates every token issued before
	// this moment.
	return s.accounts.Update(ctx, accountID, map[string]interface{}{
		dynamo.FieldPasswordHash:      string(hash),
		dynamo.FieldPasswordChangedAt: time.Now().UTC(),
	})
}

func (s *service) issueOTP(ctx context.Context, accountID, purpose, code string) error {
	now := time.Now().UTC()
	return s.otps.Put(ctx, &domain.OTP{
		AccountID: accountID,
		Purpose:   purpose,
		Code:      code,
		ExpiresAt: now.Add(s.otpExpiry).Unix(),
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *service) sendOTPEmail(ctx context.Context, a *domain.Account, code, purpose string) error {
	data := email.OTPData{
		Name:        a.Name,
		Code:        code,
		CompanyName: s.appName,
		CompanyLogo: s.appLogo,
		Expiry:      s.otpExpiry,
	}
	var rendered email.Rendered
	if purpose == domain.OTPPurposeReset {
		rendered = email.ResetOTP(data)
	} else {
		rendered = email.SignupOTP(data)
	}
	return s.mailer.Send(ctx, mail.Message{
		To:      a.Email,
		Subject: rendered.Subject,
		HTML:    rendered.HTML,
		Text:    rendered.Text,
	})
}
