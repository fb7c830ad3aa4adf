// Package account registers members, checks logins and resets passwords
// with one-time codes.
package account

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/brewlogic/BrewLogic/app/models"
	"github.com/brewlogic/BrewLogic/internal/pkg/apperror"
	"github.com/brewlogic/BrewLogic/internal/pkg/billing"
	"github.com/brewlogic/BrewLogic/internal/pkg/mail"
)

// OTPTTL is how long a password reset code stays valid.
const OTPTTL = 5 * time.Minute

// LoginError is a rejected login. It matches apperror.ErrUnauthorized.
type LoginError struct {
	Message string
}

func (e *LoginError) Error() string { return e.Message }

func (e *LoginError) Unwrap() error { return apperror.ErrUnauthorized }

var (
	ErrUnknownUser   = &LoginError{Message: "Username atau email tidak terdaftar"}
	ErrWrongPassword = &LoginError{Message: "Password salah"}
)

// Repository is the user storage the service needs.
type Repository interface {
	GetByUsername(username string) (*models.User, error)
	GetByUsernameOrEmail(identifier string) (*models.User, error)
	Create(user *models.User) error
	Save(user *models.User) error
}

// CodeStore keeps one-time codes with a TTL.
type CodeStore interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// RegisterRequest is the body of POST /api/users.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=200"`
	Password string `json:"password" validate:"required,min=1,max=200"`
	Name     string `json:"name" validate:"max=150"`
	Email    string `json:"email" validate:"max=200"`
	Phone    string `json:"phone" validate:"max=40"`
	Role     string `json:"role" validate:"omitempty,oneof=member admin"`
	Plan     string `json:"plan" validate:"max=150"`
}

type Service struct {
	repo     Repository
	codes    CodeStore
	mailer   mail.Sender
	validate *validator.Validate
	now      func() time.Time
	newCode  func() string
}

func NewService(repo Repository, codes CodeStore, mailer mail.Sender) *Service {
	return &Service{
		repo:     repo,
		codes:    codes,
		mailer:   mailer,
		validate: validator.New(),
		now:      time.Now,
		newCode:  randomOTP,
	}
}

// Register creates a member. A username that is already taken yields
// apperror.ErrDuplicateUser, also when a concurrent signup wins the race.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	_ = ctx
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Password == "" {
		return nil, apperror.Invalid("", "Username and password are required")
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, apperror.FromValidator(err)
	}

	if _, err := s.repo.GetByUsername(req.Username); err == nil {
		return nil, apperror.ErrDuplicateUser
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.External("datastore", err)
	}

	u := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     req.Role,
	}
	if u.Email == "" {
		u.Email = u.Username
	}
	if u.Role == "" {
		u.Role = models.ROLE_MEMBER
	}
	if err := u.SetPassword(req.Password); err != nil {
		return nil, err
	}
	billing.ApplyPlan(u, req.Plan, s.now())

	if err := s.repo.Create(u); err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.ErrDuplicateUser
		}
		return nil, apperror.External("datastore", err)
	}
	log.Infof("[Account] registered %s (plan %q)", u.Username, u.PlanName())
	return u, nil
}

// Login matches identifier against username or email and checks the
// password. Surrounding whitespace in the password is tolerated.
func (s *Service) Login(ctx context.Context, identifier, password string) (*models.User, error) {
	_ = ctx
	u, err := s.repo.GetByUsernameOrEmail(strings.TrimSpace(identifier))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, apperror.External("datastore", err)
	}
	if !u.CheckPassword(password) && !u.CheckPassword(strings.TrimSpace(password)) {
		log.Infof("[Account] password mismatch for %s", u.Username)
		return nil, ErrWrongPassword
	}

	now := s.now()
	u.LastLoginAt = &now
	if err := s.repo.Save(u); err != nil {
		log.Warnf("[Account] could not record login for %s: %v", u.Username, err)
	}
	return u, nil
}

// ForgotPassword sends a six digit code to the address on file for
// identifier (an email or a username).
func (s *Service) ForgotPassword(ctx context.Context, identifier string) error {
	identifier = strings.TrimSpace(identifier)
	u, err := s.repo.GetByUsernameOrEmail(identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.Invalid("email", "Email/Username tidak terdaftar")
		}
		return apperror.External("datastore", err)
	}
	target := u.Email
	if target == "" {
		target = u.Username
	}

	code := s.newCode()
	if err := s.codes.Set(ctx, otpKey(target), code, OTPTTL); err != nil {
		return apperror.External("cache", err)
	}

	err = s.mailer.Send(ctx, mail.Message{
		ToName:  u.Name,
		ToEmail: target,
		Subject: "Reset Password OTP",
		Body:    fmt.Sprintf("Kode OTP Anda adalah: %s", code),
	})
	if err != nil {
		log.Errorf("[Account] OTP email to %s failed: %v", target, err)
		return apperror.External("email", errors.New("Gagal mengirim email OTP"))
	}
	return nil
}

// VerifyOTP checks a code without consuming it.
func (s *Service) VerifyOTP(ctx context.Context, email, otp string) error {
	stored, err := s.codes.Get(ctx, otpKey(strings.TrimSpace(email)))
	if err != nil || stored == "" || stored != strings.TrimSpace(otp) {
		return apperror.Invalid("otp", "Kode OTP salah atau kadaluarsa")
	}
	return nil
}

// ResetPassword re-checks the code, stores the new password and consumes
// the code.
func (s *Service) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	email = strings.TrimSpace(email)
	if err := s.VerifyOTP(ctx, email, otp); err != nil {
		return apperror.Invalid("otp", "Invalid or expired OTP")
	}
	if strings.TrimSpace(newPassword) == "" {
		return apperror.Invalid("newPassword", "is required")
	}

	u, err := s.repo.GetByUsernameOrEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.Invalid("email", "User tidak ditemukan")
		}
		return apperror.External("datastore", err)
	}
	if err := u.SetPassword(newPassword); err != nil {
		return err
	}
	if err := s.repo.Save(u); err != nil {
		return apperror.External("datastore", err)
	}
	_ = s.codes.Delete(ctx, otpKey(email))
	log.Infof("[Account] password updated for %s", u.Username)
	return nil
}

func otpKey(email string) string {
	return "otp:" + strings.ToLower(email)
}

func randomOTP() string {
	return fmt.Sprintf("%06d", 100000+rand.IntN(900000))
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(strings.ToLower(msg), "duplicate key")
}
