package services

import (
	"context"

	logrus "github.com/sirupsen/logrus"

	"cabsy/internal/models"
)

type RegisterUserInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// UserService manages rider accounts.
type UserService struct {
	users       UserStore
	hasher      PasswordHasher
	minPassword int
}

func NewUserService(users UserStore, hasher PasswordHasher, minPassword int) *UserService {
	if minPassword <= 0 {
		minPassword = DefaultPasswordMinLength
	}
	return &UserService{users: users, hasher: hasher, minPassword: minPassword}
}

func (s *UserService) Register(ctx context.Context, in RegisterUserInput) (*models.User, error) {
	name, err := checkName(in.Name)
	if err != nil {
		return nil, err
	}
	email, err := checkEmail(in.Email)
	if err != nil {
		return nil, err
	}
	phone, err := checkPhone(in.Phone)
	if err != nil {
		return nil, err
	}
	if err := checkPassword(in.Password, s.minPassword); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}
	if err := s.ensurePhoneFree(ctx, phone, 0); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	u := &models.User{Name: name, Email: email, Phone: phone, Password: hash}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, conflict(err, "email or phone")
	}
	logrus.WithField("user_id", u.ID).Info("user registered")
	return u, nil
}

// Login returns the user whose email and password match, or ErrUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || !s.hasher.Compare(u.Password, password) {
		return nil, ErrUnauthorized
	}
	return u, nil
}

// Get returns nil when the user does not exist.
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) UpdateName(ctx context.Context, id uint, name string) (*models.User, error) {
	name, err := checkName(name)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, id, "account", func(u *models.User) error {
		u.Name = name
		return nil
	})
}

func (s *UserService) UpdateEmail(ctx context.Context, id uint, email string) (*models.User, error) {
	email, err := checkEmail(email)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, id, "email", func(u *models.User) error {
		if err := s.ensureEmailFree(ctx, email, u.ID); err != nil {
			return err
		}
		u.Email = email
		return nil
	})
}

func (s *UserService) UpdatePhone(ctx context.Context, id uint, phone string) (*models.User, error) {
	phone, err := checkPhone(phone)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, id, "phone", func(u *models.User) error {
		if err := s.ensurePhoneFree(ctx, phone, u.ID); err != nil {
			return err
		}
		u.Phone = phone
		return nil
	})
}

// UpdatePassword fails with ErrUnauthorized when oldPassword does not verify.
func (s *UserService) UpdatePassword(ctx context.Context, id uint, oldPassword, newPassword string) (*models.User, error) {
	return s.update(ctx, id, "account", func(u *models.User) error {
		if !s.hasher.Compare(u.Password, oldPassword) {
			return ErrUnauthorized
		}
		if err := checkPassword(newPassword, s.minPassword); err != nil {
			return err
		}
		if newPassword == oldPassword {
			return validationError("new password must differ from the old one")
		}
		hash, err := s.hasher.Hash(newPassword)
		if err != nil {
			return err
		}
		u.Password = hash
		return nil
	})
}

func (s *UserService) update(ctx context.Context, id uint, field string, fn func(*models.User) error) (*models.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, notFound("user", id)
	}
	if err := fn(u); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, u); err != nil {
		return nil, conflict(err, field)
	}
	return u, nil
}

func (s *UserService) ensureEmailFree(ctx context.Context, email string, self uint) error {
	other, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if other != nil && other.ID != self {
		return validationError("email already in use")
	}
	return nil
}

func (s *UserService) ensurePhoneFree(ctx context.Context, phone string, self uint) error {
	other, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		return err
	}
	if other != nil && other.ID != self {
		return validationError("phone already in use")
	}
	return nil
}
