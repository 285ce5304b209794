package services

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

var (
	validate   = validator.New()
	phoneShape = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// DefaultPasswordMinLength applies to every path that sets a password.
const DefaultPasswordMinLength = 8

func checkName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", validationError("name must not be blank")
	}
	return name, nil
}

func checkEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if err := validate.Var(email, "required,email"); err != nil {
		return "", validationError("invalid email address")
	}
	return email, nil
}

func checkPhone(phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	if !phoneShape.MatchString(phone) {
		return "", validationError("phone must be 7 to 15 digits with an optional leading +")
	}
	return phone, nil
}

func checkPassword(password string, min int) error {
	if len(password) < min {
		return validationError("password must be at least %d characters", min)
	}
	if len(password) > 72 {
		return validationError("password must be at most 72 bytes")
	}
	return nil
}

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}

// BcryptHasher hashes with bcrypt; a zero Cost means bcrypt.DefaultCost.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(plain string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h BcryptHasher) Compare(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
