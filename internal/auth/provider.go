package auth

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/applytrack/applytrack/internal/apperr"
	"github.com/applytrack/applytrack/internal/models"
	"github.com/applytrack/applytrack/internal/session"
	"github.com/applytrack/applytrack/internal/validate"
)

const defaultTokenTTL = 24 * time.Hour

// Provider is the identity provider: it verifies credentials, issues
// and verifies session tokens, and materializes one Profile row per
// user on first sign-up.
type Provider struct {
	DB     *gorm.DB
	secret []byte
	ttl    time.Duration
}

func NewProvider(db *gorm.DB) *Provider {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "applytrack_dev_secret_change_me"
	}
	return &Provider{DB: db, secret: []byte(secret), ttl: defaultTokenTTL}
}

// SignUp creates the Profile for a new user. Duplicate emails surface
// as a generic AuthError so sign-up failures never confirm whether an
// address is registered.
func (p *Provider) SignUp(ctx context.Context, email, password string) (*models.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validate.Credentials(email, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{Email: email, PasswordHash: string(hash)}
	if err := p.DB.WithContext(ctx).Create(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &apperr.AuthError{Reason: "email already registered"}
		}
		return nil, err
	}
	return profile, nil
}

// SignIn exchanges credentials for a session. Unknown email and wrong
// password are deliberately the same AuthError.
func (p *Provider) SignIn(ctx context.Context, email, password string) (session.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var profile models.Profile
	err := p.DB.WithContext(ctx).Where("email = ?", email).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return session.Session{}, &apperr.AuthError{Reason: "unknown email"}
		}
		return session.Session{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)) != nil {
		return session.Session{}, &apperr.AuthError{Reason: "wrong password"}
	}

	token, err := p.issue(profile)
	if err != nil {
		return session.Session{}, err
	}
	return session.Session{UserID: profile.ID, Email: profile.Email, Token: token}, nil
}

// Verify checks a previously issued token and rebuilds its session.
// Expired, malformed, or orphaned tokens all fail with AuthError.
func (p *Provider) Verify(ctx context.Context, tokenStr string) (session.Session, error) {
	token, err := jwt.Parse(strings.TrimSpace(tokenStr), func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return session.Session{}, &apperr.AuthError{Reason: "invalid token"}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return session.Session{}, &apperr.AuthError{Reason: "invalid claims"}
	}
	sub, _ := claims["sub"].(string)
	uid, err := uuid.Parse(sub)
	if err != nil {
		return session.Session{}, &apperr.AuthError{Reason: "invalid subject"}
	}

	// The profile must still exist; tokens do not outlive their user.
	var profile models.Profile
	if err := p.DB.WithContext(ctx).First(&profile, "id = ?", uid).Error; err != nil {
		return session.Session{}, &apperr.AuthError{Reason: "profile gone"}
	}
	return session.Session{UserID: profile.ID, Email: profile.Email, Token: tokenStr}, nil
}

func (p *Provider) issue(profile models.Profile) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   profile.ID.String(),
		"email": profile.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(p.ttl).Unix(),
	})
	return token.SignedString(p.secret)
}
