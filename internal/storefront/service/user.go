package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/idx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// NewUser is the input for registering or creating a user.
type NewUser struct {
	FirstName string
	LastName  string
	Email     string
	Age       int
	Password  string
	Role      domain.Role
}

func (n *NewUser) normalise() error {
	n.FirstName = strings.TrimSpace(n.FirstName)
	n.LastName = strings.TrimSpace(n.LastName)
	n.Email = normaliseEmail(n.Email)

	if n.FirstName == "" || n.LastName == "" || n.Email == "" || n.Password == "" {
		return fmt.Errorf("%w: first_name, last_name, email and password are required", ErrInvalidInput)
	}
	return validateProfile(n.Email, n.Age)
}

// UserUpdate carries the profile fields an admin may change. Nil fields are
// left as they are. Passwords and roles are not editable through it.
type UserUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Age       *int
}

// normaliseEmail lower-cases so that addresses differing only in case are
// one account.
func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateProfile(email string, age int) error {
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: email is not valid", ErrInvalidInput)
	}
	if age < 0 {
		return fmt.Errorf("%w: age must not be negative", ErrInvalidInput)
	}
	return nil
}

type UserService struct {
	Store store.Store
}

// Register is public sign-up. The role is always user.
func (s *UserService) Register(ctx context.Context, in NewUser) (domain.User, error) {
	in.Role = domain.RoleUser
	return s.create(ctx, in)
}

// Create is the admin path, the caller picks the role.
func (s *UserService) Create(ctx context.Context, in NewUser) (domain.User, error) {
	if !in.Role.Valid() {
		return domain.User{}, fmt.Errorf("%w: role must be user or admin", ErrInvalidInput)
	}
	return s.create(ctx, in)
}

func (s *UserService) create(ctx context.Context, in NewUser) (domain.User, error) {
	if err := in.normalise(); err != nil {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := domain.User{
		ID:           idx.New().String(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Age:          in.Age,
		PasswordHash: hash,
		Role:         in.Role,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, fmt.Errorf("%w: email already registered", ErrAlreadyExists)
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user created",
		slog.String("user_id", u.ID),
		slog.String("role", u.Role.String()),
	)
	return s.Store.Users().GetUserByID(ctx, u.ID)
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	return u, mapStoreErr(err)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

// Update applies the non-nil fields of in to the user's profile.
func (s *UserService) Update(ctx context.Context, userID string, in UserUpdate) (domain.User, error) {
	u, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}

	if in.FirstName != nil {
		u.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		u.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Email != nil {
		u.Email = normaliseEmail(*in.Email)
	}
	if in.Age != nil {
		u.Age = *in.Age
	}

	if u.FirstName == "" || u.LastName == "" || u.Email == "" {
		return domain.User{}, fmt.Errorf("%w: first_name, last_name and email must not be empty", ErrInvalidInput)
	}
	if err := validateProfile(u.Email, u.Age); err != nil {
		return domain.User{}, err
	}

	if err := s.Store.Users().UpdateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, fmt.Errorf("%w: email already registered", ErrAlreadyExists)
		}
		return domain.User{}, mapStoreErr(err)
	}
	slogx.FromContext(ctx).Info("user updated", slog.String("target_user_id", userID))
	return s.GetUserByID(ctx, userID)
}

func (s *UserService) UpdateRole(ctx context.Context, userID string, role domain.Role) (domain.User, error) {
	if !role.Valid() {
		return domain.User{}, fmt.Errorf("%w: role must be user or admin", ErrInvalidInput)
	}
	if err := s.Store.Users().UpdateRole(ctx, userID, role); err != nil {
		return domain.User{}, mapStoreErr(err)
	}
	slogx.FromContext(ctx).Info("user role changed",
		slog.String("target_user_id", userID),
		slog.String("role", role.String()),
	)
	return s.GetUserByID(ctx, userID)
}

func (s *UserService) Delete(ctx context.Context, userID string) error {
	if err := s.Store.Users().DeleteUser(ctx, userID); err != nil {
		return mapStoreErr(err)
	}
	slogx.FromContext(ctx).Info("user deleted", slog.String("target_user_id", userID))
	return nil
}

// SeedAdmin creates an admin account when the user table is empty. If
// password is empty one is generated and returned so the caller can show it
// once. created is false when users already exist.
func (s *UserService) SeedAdmin(ctx context.Context, email, password string) (created bool, generated string, err error) {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, "", err
	}
	if !empty {
		return false, "", nil
	}

	if password == "" {
		if generated, err = cryptox.GeneratePassword(); err != nil {
			return false, "", err
		}
		password = generated
	}

	_, err = s.Create(ctx, NewUser{
		FirstName: "Store",
		LastName:  "Admin",
		Email:     email,
		Password:  password,
		Role:      domain.RoleAdmin,
	})
	if err != nil {
		return false, "", err
	}
	return true, generated, nil
}

func mapStoreErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, store.ErrAlreadyExists):
		return fmt.Errorf("%w: %w", ErrAlreadyExists, err)
	default:
		return err
	}
}
