package api

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shaj13/go-guardian/auth"
	"github.com/shaj13/go-guardian/auth/strategies/basic"
	"github.com/shaj13/go-guardian/auth/strategies/bearer"
	"github.com/shaj13/go-guardian/store"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/linesmerrill/civic-report-api/databases"
	"github.com/linesmerrill/civic-report-api/models"
)

const departmentExtension = "department"

// Claims are the JWT claims issued by CreateToken. The subject is the user ID.
type Claims struct {
	Role       models.Role `json:"role"`
	Department string      `json:"department,omitempty"`
	jwt.RegisteredClaims
}

// MiddlewareDB is a struct that holds the user database and token settings
type MiddlewareDB struct {
	DB         databases.UserDatabase
	Secret     []byte
	Expiration time.Duration
}

var authenticator auth.Authenticator
var cache store.Cache

// Middleware authenticates the request and stores the resulting principal in
// its context
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		user, err := authenticator.Authenticate(r)
		if err != nil {
			zap.S().Errorw("unauthorized",
				"url", r.URL)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "unauthorized"}`))
			return
		}
		zap.S().Debugf("User %s Authenticated\n", user.UserName())
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principalOf(user))))
	})
}

// RequireRole rejects principals whose role is not among roles
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error": "unauthorized"}`))
				return
			}
			for _, role := range roles {
				if p.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error": "insufficient permissions"}`))
		})
	}
}

func principalOf(info auth.Info) models.Principal {
	p := models.Principal{ID: info.ID()}
	if groups := info.Groups(); len(groups) > 0 && groups[0] != "" {
		p.Role = models.Role(groups[0])
	} else {
		p.Role = models.RoleCitizen
	}
	if dept := info.Extensions()[departmentExtension]; len(dept) > 0 {
		p.Department = dept[0]
	}
	return p
}

func infoOf(name string, p models.Principal) auth.Info {
	var ext map[string][]string
	if p.Department != "" {
		ext = map[string][]string{departmentExtension: {p.Department}}
	}
	return auth.NewDefaultUser(name, p.ID, []string{string(p.Role)}, ext)
}

// CreateToken issues a signed JWT for the principal authenticated with basic auth
func (m MiddlewareDB) CreateToken(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		http.Error(w, "basic auth failed", http.StatusUnauthorized)
		return
	}

	token, expiresAt, err := m.IssueToken(p)
	if err != nil {
		zap.S().Errorw("failed to sign token", "user", p.ID, "error", err)
		http.Error(w, "failed to sign token", http.StatusInternalServerError)
		return
	}

	responseBody, err := json.Marshal(map[string]interface{}{
		"token":     token,
		"expiresAt": expiresAt,
		"_id":       p.ID,
		"role":      p.Role,
	})
	if err != nil {
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}

	w.Write(responseBody)
}

// IssueToken signs an HS256 token for p
func (m MiddlewareDB) IssueToken(p models.Principal) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.Expiration)
	claims := Claims{
		Role:       p.Role,
		Department: p.Department,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseToken verifies the signature and expiry of token
func (m MiddlewareDB) ParseToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func (m MiddlewareDB) verifyToken(ctx context.Context, r *http.Request, token string) (auth.Info, error) {
	claims, err := m.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return infoOf(claims.Subject, models.Principal{
		ID:         claims.Subject,
		Role:       claims.Role,
		Department: claims.Department,
	}), nil
}

// SetupGoGuardian sets up the go-guardian middleware. Verified bearer tokens
// are cached for a minute so expiry is enforced close to on time.
func (m MiddlewareDB) SetupGoGuardian() {
	authenticator = auth.New()
	cache = store.NewFIFO(context.Background(), time.Minute)
	basicStrategy := basic.New(m.ValidateUser, cache)
	tokenStrategy := bearer.New(m.verifyToken, cache)

	authenticator.EnableStrategy(basic.StrategyKey, basicStrategy)
	authenticator.EnableStrategy(bearer.CachedStrategyKey, tokenStrategy)
}

// ValidateUser validates a user's email and password
func (m MiddlewareDB) ValidateUser(ctx context.Context, r *http.Request, email, password string) (auth.Info, error) {
	usernameHash := sha256.Sum256([]byte(strings.ToLower(email)))

	user, err := m.DB.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email")
	}

	expectedUsernameHash := sha256.Sum256([]byte(strings.ToLower(user.Email)))
	usernameMatch := subtle.ConstantTimeCompare(usernameHash[:], expectedUsernameHash[:]) == 1

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	if err != nil {
		return nil, fmt.Errorf("failed to compare password")
	}

	if !usernameMatch {
		return nil, fmt.Errorf("invalid credentials")
	}
	return infoOf(user.Email, models.Principal{
		ID:         user.ID.Hex(),
		Role:       user.Role,
		Department: user.Department,
	}), nil
}
