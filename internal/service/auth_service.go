package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"usercenter/internal/apperr"
	"usercenter/internal/model"
	"usercenter/internal/repository"
	"usercenter/internal/session"
)

// ProfilePatch carries a self-service partial update. Nil fields are left
// untouched.
type ProfilePatch struct {
	Name      *string
	Email     *string
	Phone     *string
	AvatarURL *string
	Gender    *int
}

// AuthService handles registration and the login state machine.
type AuthService interface {
	Register(ctx context.Context, account, password, confirmPassword string) (int64, error)
	Login(ctx context.Context, sess session.Session, account, password string) (*model.SafeUser, error)
	Logout(ctx context.Context, sess session.Session) (bool, error)
	Current(ctx context.Context, sess session.Session) (*model.SafeUser, error)
	UpdateProfile(ctx context.Context, sess session.Session, patch ProfilePatch) (*model.SafeUser, error)
}

type authService struct {
	users repository.UserRepository
	salt  string
}

// NewAuthService creates a new authentication service. salt is the process-wide
// password salt.
func NewAuthService(users repository.UserRepository, salt string) AuthService {
	return &authService{users: users, salt: salt}
}

// digest computes the stored password form: hex md5 over password+salt. The
// fixed global salt and the md5 primitive are part of the stored-data contract;
// changing either invalidates every existing digest.
func (s *authService) digest(password string) string {
	sum := md5.Sum([]byte(password + s.salt))
	return hex.EncodeToString(sum[:])
}

// Register creates a new user. Pure creation: the caller still has to log in.
func (s *authService) Register(ctx context.Context, account, password, confirmPassword string) (int64, error) {
	if strings.TrimSpace(account) == "" || strings.TrimSpace(password) == "" || strings.TrimSpace(confirmPassword) == "" {
		return 0, apperr.Invalid("account and password are required")
	}
	if password != confirmPassword {
		return 0, apperr.Invalid("passwords do not match")
	}

	count, err := s.users.CountByAccount(ctx, account, 0)
	if err != nil {
		return 0, fmt.Errorf("check account existence: %w", err)
	}
	if count > 0 {
		return 0, apperr.Invalid("account already exists")
	}

	user := &model.User{
		Name:         account,
		UserAccount:  account,
		UserPassword: s.digest(password),
		UserStatus:   model.StatusActive,
		UserRole:     model.RoleOrdinary,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}
	return user.ID, nil
}

// Login verifies credentials with a single account+digest lookup, rotates the
// session handle and stores the sanitized snapshot under the fresh one. A
// missing account and a wrong password produce the same error, so accounts
// cannot be enumerated.
func (s *authService) Login(ctx context.Context, sess session.Session, account, password string) (*model.SafeUser, error) {
	if strings.TrimSpace(account) == "" || strings.TrimSpace(password) == "" {
		return nil, apperr.Invalid("account and password are required")
	}

	user, err := s.users.FindByAccountAndDigest(ctx, account, s.digest(password))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Failed("incorrect account or password")
		}
		return nil, fmt.Errorf("look up credentials: %w", err)
	}

	// The pre-login handle is never reused: the snapshot only ever lands on a
	// handle issued after the credentials checked out.
	if err := sess.Rotate(ctx); err != nil {
		return nil, fmt.Errorf("rotate session: %w", err)
	}

	safe := user.Sanitize()
	if err := session.SetIdentity(ctx, sess, safe); err != nil {
		return nil, fmt.Errorf("store login state: %w", err)
	}
	return safe, nil
}

// Logout is idempotent: it always reports success, with or without an active
// session. This is the one operation defined to swallow its errors.
func (s *authService) Logout(ctx context.Context, sess session.Session) (bool, error) {
	if sess == nil {
		return true, nil
	}
	_ = session.RemoveIdentity(ctx, sess)
	_ = sess.Invalidate(ctx)
	return true, nil
}

// Current returns the session's identity snapshot.
func (s *authService) Current(ctx context.Context, sess session.Session) (*model.SafeUser, error) {
	user, ok, err := session.Identity(ctx, sess)
	if err != nil {
		return nil, fmt.Errorf("read login state: %w", err)
	}
	if !ok {
		return nil, apperr.NotLogin()
	}
	return user, nil
}

// UpdateProfile applies the non-nil patch fields to the caller's own record,
// then re-reads it and replaces the session snapshot so the change is visible
// to subsequent Current calls in the same session.
func (s *authService) UpdateProfile(ctx context.Context, sess session.Session, patch ProfilePatch) (*model.SafeUser, error) {
	ident, ok, err := session.Identity(ctx, sess)
	if err != nil {
		return nil, fmt.Errorf("read login state: %w", err)
	}
	if !ok {
		return nil, apperr.NotLogin()
	}
	if ident.UserStatus == model.StatusBanned {
		return nil, apperr.NoAuth("account is banned")
	}

	fields := map[string]interface{}{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Email != nil {
		fields["email"] = *patch.Email
	}
	if patch.Phone != nil {
		fields["phone"] = *patch.Phone
	}
	if patch.AvatarURL != nil {
		fields["avatar_url"] = *patch.AvatarURL
	}
	if patch.Gender != nil {
		fields["gender"] = *patch.Gender
	}
	if len(fields) > 0 {
		if err := s.users.UpdateFields(ctx, ident.ID, fields); err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}

	fresh, err := s.users.FindByID(ctx, ident.ID)
	if err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}
	safe := fresh.Sanitize()
	if err := session.SetIdentity(ctx, sess, safe); err != nil {
		return nil, fmt.Errorf("refresh login state: %w", err)
	}
	return safe, nil
}
