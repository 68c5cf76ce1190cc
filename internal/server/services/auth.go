// Package services contains server-side business logic. AuthService handles
// sign-in, self sign-up and session verification; LocationService owns the
// location create path; ConfigService wraps the settings table.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/odyssey/internal/common"
	"github.com/dmitrijs2005/odyssey/internal/dbx"
	"github.com/dmitrijs2005/odyssey/internal/logging"
	"github.com/dmitrijs2005/odyssey/internal/server/auth"
	"github.com/dmitrijs2005/odyssey/internal/server/config"
	"github.com/dmitrijs2005/odyssey/internal/server/models"
	"github.com/dmitrijs2005/odyssey/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/odyssey/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

// Credentials is a sign-up payload after trimming.
type Credentials struct {
	Name     string `json:"name" validate:"required"`
	UserName string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthService provides authentication-related operations:
// - Authenticate: verify credentials and mint a session token
// - Register / CreateUser: create users with bcrypt-hashed passwords
// - Verify: resolve a session token to an identity
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	jwtSecret   []byte
	bcryptCost  int
	now         func() time.Time
	logger      logging.Logger
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		jwtSecret:   []byte(cfg.SecretKey),
		bcryptCost:  bcrypt.DefaultCost,
		now:         time.Now,
		logger:      logger.With("module", "auth"),
	}
}

var (
	dummyHash     []byte
	dummyHashOnce sync.Once
)

// burnCompare spends roughly the time of a real bcrypt comparison so an
// unknown username cannot be told apart from a wrong password by latency.
func burnCompare(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("odyssey"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// Authenticate checks username and password and returns a signed session
// token. Unknown users and wrong passwords both yield
// common.ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (string, error) {
	var user *models.User
	err := dbx.WithTx(ctx, s.db, dbx.ReadOnly, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		user, err = s.repomanager.Users(tx).GetUserByLogin(ctx, username)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			burnCompare(password)
			return "", common.ErrInvalidCredentials
		}
		return "", fmt.Errorf("error looking up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.UserName, s.jwtSecret, s.now())
	if err != nil {
		return "", fmt.Errorf("%w: sign token: %w", common.ErrorInternal, err)
	}
	return token, nil
}

// Register creates a user if self sign-up is enabled. The flag is checked
// before the payload is looked at, so a disabled sign-up always reports
// common.ErrRegistrationDisabled.
func (s *AuthService) Register(ctx context.Context, name, username, password string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		value, err := s.repomanager.Configs(tx).Get(ctx, common.ConfigAllowRegistration)
		if err != nil && !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("error reading registration flag: %w", err)
		}
		if !strings.EqualFold(value, "true") {
			return common.ErrRegistrationDisabled
		}
		return s.createUser(ctx, tx, name, username, password)
	})
}

// CreateUser creates a user regardless of the sign-up flag. Used by the
// admin CLI.
func (s *AuthService) CreateUser(ctx context.Context, name, username, password string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.createUser(ctx, tx, name, username, password)
	})
}

func (s *AuthService) createUser(ctx context.Context, tx dbx.DBTX, name, username, password string) error {
	creds := Credentials{
		Name:     strings.TrimSpace(name),
		UserName: strings.TrimSpace(username),
		Password: password,
	}
	if err := validation.ValidateStruct(&creds); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return &validation.Error{Field: "password", Tag: "max", Message: "password must be at most 72 bytes"}
		}
		return fmt.Errorf("%w: hash password: %w", common.ErrorInternal, err)
	}

	_, err = s.repomanager.Users(tx).Create(ctx, &models.User{
		Name:     creds.Name,
		UserName: creds.UserName,
		Password: string(hash),
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return common.ErrUsernameTaken
		}
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// Verify resolves token to the identity of an existing user. Any failure,
// including storage errors, reports false; storage errors are logged.
func (s *AuthService) Verify(ctx context.Context, token string) (*models.Identity, bool) {
	if token == "" {
		return nil, false
	}

	username, err := auth.GetSubjectFromToken(token, s.jwtSecret, s.now())
	if err != nil {
		s.logger.Debug(ctx, "session token rejected", "error", err)
		return nil, false
	}

	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, username)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(ctx, "session user lookup failed", "username", username, "error", err)
		}
		return nil, false
	}

	return &models.Identity{
		UserName:    user.UserName,
		DisplayName: strings.TrimSpace(user.Name),
	}, true
}
