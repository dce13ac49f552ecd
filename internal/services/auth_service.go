package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/vitalrecife/storefront/internal/config"
	"github.com/vitalrecife/storefront/internal/dto"
	"github.com/vitalrecife/storefront/internal/email"
	"github.com/vitalrecife/storefront/internal/models"
)

// ReferralSignupBonus is credited to points and affiliate points when a
// visitor registers with someone's referral code.
const ReferralSignupBonus = 100

// AuthResult is what a simulated login or registration produces.
type AuthResult struct {
	User         *models.User
	PasswordHash []byte
	// UsedReferralCode is the code typed at signup, if any.
	UsedReferralCode string
}

// AuthService synthesizes users after a fixed latency. Nothing is checked
// against a real account store.
type AuthService struct {
	loginDelay    time.Duration
	registerDelay time.Duration
	resetDelay    time.Duration
	siteURL       string
	mailer        email.Service
	intn          func(n int) int
	hashCost      int
}

func NewAuthService(cfg *config.Config, mailer email.Service) *AuthService {
	return &AuthService{
		loginDelay:    cfg.LoginDelay,
		registerDelay: cfg.RegisterDelay,
		resetDelay:    cfg.ResetDelay,
		siteURL:       cfg.SiteURL,
		mailer:        mailer,
		intn:          rand.IntN,
		hashCost:      bcrypt.DefaultCost,
	}
}

// DemoUser is the fixed account every successful login yields.
func DemoUser(email string) *models.User {
	return &models.User{
		Name:              "João Silva",
		Email:             email,
		Phone:             "(81) 99999-0000",
		Points:            1250,
		Level:             3,
		ReferralCode:      "JOAO123",
		Referrals:         5,
		Cashback:          45.50,
		AffiliatePoints:   850,
		NextLevelProgress: 65,
		LevelUpRewards:    []models.LevelUpReward{{Level: 3, Cashback: 50.00}},
	}
}

// Login validates the form and, after the login delay, returns the demo user.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*AuthResult, error) {
	if err := ValidateLogin(req); err != nil {
		return nil, err
	}
	if err := sleep(ctx, s.loginDelay); err != nil {
		return nil, err
	}
	hash, err := s.hash(req.Password)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: DemoUser(strings.TrimSpace(req.Email)), PasswordHash: hash}, nil
}

// Register validates the form and, after the register delay, returns a new
// Bronze member with a freshly generated referral code.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*AuthResult, error) {
	if err := ValidateRegister(req); err != nil {
		return nil, err
	}
	if err := sleep(ctx, s.registerDelay); err != nil {
		return nil, err
	}
	hash, err := s.hash(req.Password)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	usedCode := strings.TrimSpace(req.ReferralCode)
	bonus := 0
	if usedCode != "" {
		bonus = ReferralSignupBonus
	}

	user := &models.User{
		Name:            name,
		Email:           strings.TrimSpace(req.Email),
		Phone:           strings.TrimSpace(req.Phone),
		Points:          bonus,
		Level:           1,
		ReferralCode:    GenerateReferralCode(name, s.intn),
		AffiliatePoints: bonus,
		LevelUpRewards:  []models.LevelUpReward{},
	}
	return &AuthResult{User: user, PasswordHash: hash, UsedReferralCode: usedCode}, nil
}

// ResetPassword validates the address and, after the reset delay, mails a
// recovery link.
func (s *AuthService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	addr := strings.TrimSpace(req.Email)
	if err := ValidateResetEmail(addr); err != nil {
		return err
	}
	if err := sleep(ctx, s.resetDelay); err != nil {
		return err
	}
	resetURL := strings.TrimRight(s.siteURL, "/") + "/reset-password?token=" + ulid.Make().String()
	if err := s.mailer.SendPasswordReset(ctx, addr, resetURL); err != nil {
		slog.Error("password reset email failed", "action", "reset_password", "error", err)
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}

// CheckPassword compares a candidate against the hash kept for the session.
// A session without a stored hash accepts any non-empty candidate.
func CheckPassword(hash []byte, candidate string) error {
	if len(hash) == 0 {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(truncate72(candidate))); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// HashPassword hashes a new session password.
func (s *AuthService) HashPassword(password string) ([]byte, error) {
	return s.hash(password)
}

func (s *AuthService) hash(password string) ([]byte, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(truncate72(password)), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return h, nil
}

// truncate72 keeps passwords within bcrypt's 72 byte input limit.
func truncate72(password string) string {
	if len(password) > 72 {
		return password[:72]
	}
	return password
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
