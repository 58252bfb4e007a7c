package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"products-api/internal/core/auth"
	"products-api/internal/core/config"
	"products-api/internal/domain"
	"products-api/pkg/utils"
)

// UserService handles registration, role management and login. Foreseeable
// outcomes (bad password, duplicate role, unknown user, bad credentials) are
// returned as values; errors mean the identity store itself failed.
type UserService struct {
	users  domain.UserRepository
	jwter  *auth.JWTer
	policy config.Password
}

func NewUserService(users domain.UserRepository, jwter *auth.JWTer, policy config.Password) *UserService {
	return &UserService{users: users, jwter: jwter, policy: policy}
}

func (s *UserService) Register(ctx context.Context, username, email, password string) ([]domain.FieldError, error) {
	username = strings.TrimSpace(username)
	var errs []domain.FieldError
	if username == "" {
		errs = append(errs, domain.FieldError{Code: "InvalidUserName", Description: "Username must not be empty."})
	}
	errs = append(errs, s.validatePassword(password)...)
	if len(errs) > 0 {
		return errs, nil
	}

	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return []domain.FieldError{{
			Code:        "DuplicateUserName",
			Description: fmt.Sprintf("Username '%s' is already taken.", username),
		}}, nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := domain.User{Username: username, Email: email, PasswordHash: hash}
	if err := s.users.CreateUser(ctx, &u); err != nil {
		return nil, err
	}
	return nil, nil
}

// CreateRole is idempotency-guarded: an existing role name is a domain
// conflict, not a second row.
func (s *UserService) CreateRole(ctx context.Context, name string) ([]domain.FieldError, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return []domain.FieldError{{Code: "InvalidRoleName", Description: "Role name must not be empty."}}, nil
	}
	existing, err := s.users.FindRole(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return []domain.FieldError{{
			Code:        "DuplicateRoleName",
			Description: fmt.Sprintf("%s role already exists", name),
		}}, nil
	}
	return nil, s.users.CreateRole(ctx, &domain.Role{Name: name})
}

// AssignRole adds role membership. found=false reports an unknown username.
func (s *UserService) AssignRole(ctx context.Context, username, role string) (found bool, errs []domain.FieldError, err error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return false, nil, err
	}
	if u == nil {
		return false, nil, nil
	}
	r, err := s.users.FindRole(ctx, role)
	if err != nil {
		return true, nil, err
	}
	if r == nil {
		return true, []domain.FieldError{{
			Code:        "RoleNotFound",
			Description: fmt.Sprintf("Role '%s' does not exist.", role),
		}}, nil
	}
	return true, nil, s.users.AddToRole(ctx, u, r)
}

// Login verifies the credentials and issues a signed token carrying the
// username and every role currently assigned. ok=false is the unauthorized
// outcome; no detail beyond that is surfaced.
func (s *UserService) Login(ctx context.Context, username, password string) (token string, ok bool, err error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", false, err
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return "", false, nil
	}
	roles, err := s.users.RolesOf(ctx, u)
	if err != nil {
		return "", false, err
	}
	token, err = s.jwter.Issue(u.Username, roles)
	if err != nil {
		return "", false, err
	}
	return token, true, nil
}

func (s *UserService) validatePassword(pw string) []domain.FieldError {
	var errs []domain.FieldError
	if len(pw) < s.policy.MinLength {
		errs = append(errs, domain.FieldError{
			Code:        "PasswordTooShort",
			Description: fmt.Sprintf("Passwords must be at least %d characters.", s.policy.MinLength),
		})
	}
	var hasUpper, hasLower bool
	for _, r := range pw {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if unicode.IsLower(r) {
			hasLower = true
		}
	}
	if s.policy.RequireUppercase && !hasUpper {
		errs = append(errs, domain.FieldError{
			Code:        "PasswordRequiresUpper",
			Description: "Passwords must have at least one uppercase ('A'-'Z').",
		})
	}
	if s.policy.RequireLowercase && !hasLower {
		errs = append(errs, domain.FieldError{
			Code:        "PasswordRequiresLower",
			Description: "Passwords must have at least one lowercase ('a'-'z').",
		})
	}
	return errs
}
