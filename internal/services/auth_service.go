package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/repos"
	"storefront/internal/validate"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmailTaken is returned by Signup for an already registered address.
var ErrEmailTaken = conflict("User with this email already exists")

// compared against when the email is unknown so both failure paths cost a bcrypt round
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("storefront-dummy"), bcrypt.DefaultCost)

type SignupInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type SigninInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthService struct {
	Users *repos.UserRepo
	Cost  int
}

func NewAuthService(users *repos.UserRepo) *AuthService {
	return &AuthService{Users: users, Cost: bcrypt.DefaultCost}
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	if _, err := s.Users.ByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(storeErr(err, ""), ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.Cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	id, err := s.Users.Create(ctx, in.Name, in.Email, string(hash))
	if err != nil {
		// a concurrent signup can still win the race to the unique index
		if errors.Is(storeErr(err, ""), ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return s.Users.ByID(ctx, id)
}

// Signin answers ErrBadCreds for both an unknown email and a wrong password.
func (s *AuthService) Signin(ctx context.Context, in SigninInput) (*domain.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	u, err := s.Users.ByEmail(ctx, in.Email)
	if err != nil {
		if !errors.Is(storeErr(err, ""), ErrNotFound) {
			return nil, err
		}
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(in.Password))
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(in.Password)) != nil {
		return nil, ErrBadCreds
	}
	return u, nil
}

// SeedAdmin makes sure the configured admin account exists. It is a no-op when
// email or password is empty.
func (s *AuthService) SeedAdmin(ctx context.Context, name, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.Cost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	return s.Users.EnsureAdmin(ctx, name, email, string(hash))
}
