package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/renato0307/maint/internal/adapters/authevents"
	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/logging"
	"github.com/renato0307/maint/internal/ports"
)

const (
	accessTokenTTL  = time.Hour
	jwtSecretKey    = "jwt_secret"
	localIssuer     = "maint-local"
	refreshTokenTTL = 30 * 24 * time.Hour
)

var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong password
	ErrInvalidCredentials = errors.New("Invalid login credentials")
	// ErrInvalidRefreshToken is returned when a refresh token is unknown or expired
	ErrInvalidRefreshToken = errors.New("Invalid Refresh Token: Refresh Token Not Found")
)

// localClaims is the payload of locally issued access tokens
type localClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// LocalBackend is a self-contained backend on a sqlite file. It issues its
// own signed tokens and serves the same tables as the hosted store.
type LocalBackend struct {
	db     *gorm.DB
	keeper *authevents.Keeper
	now    func() time.Time
	ownsDB bool
	secret []byte
	tables map[string]*localTable
}

// Verify interface compliance at compile time
var _ ports.RemoteDataService = (*LocalBackend)(nil)

// OpenLocalDB opens and migrates the local backend database at dbPath
func OpenLocalDB(dbPath string) (*gorm.DB, error) {
	return Open(dbPath, localModels()...)
}

// OpenLocalBackend opens the local database at dbPath. Sessions are persisted
// through sessions. Close releases the database.
func OpenLocalBackend(dbPath string, sessions ports.SessionStore) (*LocalBackend, error) {
	db, err := OpenLocalDB(dbPath)
	if err != nil {
		return nil, err
	}

	backend, err := NewLocalBackend(db, sessions)
	if err != nil {
		_ = CloseDB(db)
		return nil, err
	}
	backend.ownsDB = true
	return backend, nil
}

// NewLocalBackend wraps an already migrated database. The caller keeps
// ownership of db; Close leaves it open.
func NewLocalBackend(db *gorm.DB, sessions ports.SessionStore) (*LocalBackend, error) {
	tables, err := buildLocalTables(db)
	if err != nil {
		return nil, err
	}

	b := &LocalBackend{
		db:     db,
		now:    time.Now,
		tables: tables,
	}

	secret, err := b.loadSecret()
	if err != nil {
		return nil, err
	}
	b.secret = secret
	b.keeper = authevents.NewKeeper(sessions, b.refresh)
	return b, nil
}

// loadSecret returns the token signing secret, generating it on first use
func (b *LocalBackend) loadSecret() ([]byte, error) {
	var meta MetaModel
	err := b.db.Where("key = ?", jwtSecretKey).First(&meta).Error
	if err == nil {
		return hex.DecodeString(meta.Value)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load signing secret: %w", err)
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate signing secret: %w", err)
	}
	meta = MetaModel{Key: jwtSecretKey, Value: hex.EncodeToString(secret)}
	if err := withRetry(func() error { return b.db.Create(&meta).Error }, defaultRetries); err != nil {
		return nil, fmt.Errorf("failed to store signing secret: %w", err)
	}
	logging.Logger.Info("Generated local signing secret")
	return secret, nil
}

// Close releases the database when the backend opened it
func (b *LocalBackend) Close() error {
	if !b.ownsDB {
		return nil
	}
	return CloseDB(b.db)
}

// SignInWithPassword checks the bcrypt hash of the account and issues a session
func (b *LocalBackend) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	var user UserModel
	err := b.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	session, err := b.issueSession(ctx, domain.User{Email: user.Email, ID: user.ID})
	if err != nil {
		return nil, err
	}
	if err := b.keeper.Establish(ctx, session, domain.AuthEventSignedIn); err != nil {
		return nil, err
	}

	logging.Logger.Info("Local sign in", "user_id", user.ID)
	return session, nil
}

// SignOut revokes the refresh tokens of the current user and drops the session
func (b *LocalBackend) SignOut(ctx context.Context) error {
	session, err := b.keeper.Peek(ctx)
	if err != nil {
		return err
	}
	if session != nil {
		err := withRetry(func() error {
			return b.db.WithContext(ctx).Where("user_id = ?", session.User.ID).Delete(&RefreshTokenModel{}).Error
		}, defaultRetries)
		if err != nil {
			return fmt.Errorf("failed to revoke refresh tokens: %w", err)
		}
	}

	b.keeper.Clear(ctx)
	return nil
}

func (b *LocalBackend) GetSession(ctx context.Context) (*domain.Session, error) {
	return b.keeper.Current(ctx)
}

// GetUser verifies the access token of the current session
func (b *LocalBackend) GetUser(ctx context.Context) (*domain.User, error) {
	session, err := b.keeper.Current(ctx)
	if err != nil || session == nil {
		return nil, err
	}

	claims := &localClaims{}
	_, err = jwt.ParseWithClaims(session.AccessToken, claims, func(token *jwt.Token) (any, error) {
		return b.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(localIssuer),
		jwt.WithTimeFunc(b.now),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid access token: %w", err)
	}

	return &domain.User{Email: claims.Email, ID: claims.Subject}, nil
}

func (b *LocalBackend) OnAuthStateChange(handler ports.AuthStateHandler) func() {
	return b.keeper.Subscribe(handler)
}

// refresh rotates a refresh token into a new session
func (b *LocalBackend) refresh(ctx context.Context, refreshToken string) (*domain.Session, error) {
	var user domain.User
	err := withRetry(func() error {
		return b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var token RefreshTokenModel
			err := tx.Where("token = ?", refreshToken).First(&token).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidRefreshToken
			}
			if err != nil {
				return err
			}
			if err := tx.Delete(&token).Error; err != nil {
				return err
			}
			if b.now().After(token.ExpiresAt) {
				return ErrInvalidRefreshToken
			}

			var account UserModel
			if err := tx.Where("id = ?", token.UserID).First(&account).Error; err != nil {
				return fmt.Errorf("failed to load user: %w", err)
			}
			user = domain.User{Email: account.Email, ID: account.ID}
			return nil
		})
	}, defaultRetries)
	if err != nil {
		return nil, err
	}

	return b.issueSession(ctx, user)
}

func (b *LocalBackend) issueSession(ctx context.Context, user domain.User) (*domain.Session, error) {
	now := b.now().UTC()
	expiresAt := now.Add(accessTokenTTL)

	claims := localClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    localIssuer,
			Subject:   user.ID,
		},
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(b.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken := RefreshTokenModel{
		ExpiresAt: now.Add(refreshTokenTTL),
		Token:     uuid.NewString(),
		UserID:    user.ID,
	}
	if err := withRetry(func() error { return b.db.WithContext(ctx).Create(&refreshToken).Error }, defaultRetries); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &domain.Session{
		AccessToken:  accessToken,
		ExpiresAt:    expiresAt.Truncate(time.Second),
		RefreshToken: refreshToken.Token,
		TokenType:    "bearer",
		User:         user,
	}, nil
}
