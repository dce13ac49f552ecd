package services

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/vitalrecife/storefront/internal/dto"
)

// MinPasswordLength applies to registration and password changes.
const MinPasswordLength = 6

var (
	ErrMissingFields         = errors.New("email and password are required")
	ErrMissingRequiredFields = errors.New("required fields are missing")
	ErrMissingPasswordFields = errors.New("all password fields are required")
	ErrMissingEmail          = errors.New("email is required")
	ErrInvalidEmail          = errors.New("email format is invalid")
	ErrPasswordMismatch      = errors.New("passwords do not match")
	ErrPasswordTooShort      = errors.New("password is too short")
	ErrNewPasswordTooShort   = errors.New("new password is too short")
	ErrTermsNotAccepted      = errors.New("terms of use not accepted")
	ErrWrongPassword         = errors.New("current password is incorrect")
)

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// noticeMessages are the messages shown to the visitor for each
// validation failure.
var noticeMessages = map[error]string{
	ErrMissingFields:         "Preencha todos os campos",
	ErrMissingRequiredFields: "Preencha todos os campos obrigatórios",
	ErrMissingPasswordFields: "Preencha todos os campos de senha",
	ErrMissingEmail:          "Digite seu e-mail",
	ErrInvalidEmail:          "Digite um e-mail válido",
	ErrPasswordMismatch:      "As senhas não coincidem",
	ErrPasswordTooShort:      "A senha deve ter pelo menos 6 caracteres",
	ErrNewPasswordTooShort:   "A nova senha deve ter pelo menos 6 caracteres",
	ErrTermsNotAccepted:      "Você deve aceitar os termos de uso",
	ErrWrongPassword:         "Senha atual incorreta",
}

// IsValidationError reports whether err is a form validation failure.
func IsValidationError(err error) bool {
	for sentinel := range noticeMessages {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// NoticeMessage returns the visitor-facing text for a validation error.
func NoticeMessage(err error) string {
	for sentinel, msg := range noticeMessages {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	return "Algo deu errado. Tente novamente."
}

func ValidateLogin(req *dto.LoginRequest) error {
	if blank(req.Email) || req.Password == "" {
		return ErrMissingFields
	}
	return nil
}

func ValidateRegister(req *dto.RegisterRequest) error {
	if blank(req.Name) || blank(req.Email) || blank(req.Phone) || req.Password == "" {
		return ErrMissingRequiredFields
	}
	if req.Password != req.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if utf8.RuneCountInString(req.Password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if !req.AcceptTerms {
		return ErrTermsNotAccepted
	}
	return nil
}

func ValidateProfile(req *dto.UpdateProfileRequest) error {
	if blank(req.Name) || blank(req.Email) || blank(req.Phone) {
		return ErrMissingRequiredFields
	}
	return nil
}

func ValidatePasswordChange(req *dto.ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" || req.ConfirmPassword == "" {
		return ErrMissingPasswordFields
	}
	if req.NewPassword != req.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if utf8.RuneCountInString(req.NewPassword) < MinPasswordLength {
		return ErrNewPasswordTooShort
	}
	return nil
}

func ValidateResetEmail(email string) error {
	if blank(email) {
		return ErrMissingEmail
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
