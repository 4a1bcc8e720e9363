package v1handler

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"ordersync/internal/config"
	"ordersync/pkg/domain"
	"ordersync/pkg/logger"
	"ordersync/pkg/serrors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ctxKey string

// UserIDKey is the context key under which the authenticated caller is stored.
const UserIDKey ctxKey = "userID"

// GetUserIDFromContext returns the authenticated caller, or the zero ID.
func GetUserIDFromContext(ctx context.Context) domain.UserID {
	id, _ := ctx.Value(UserIDKey).(domain.UserID)

	return id
}

// SecHandlerOptions configure bearer token verification.
type SecHandlerOptions struct {
	// PublicKey is the PEM encoded RSA key that verifies RS256 tokens.
	PublicKey string
}

// NewSecHandlerOptions reads the JWT settings from cfg.
func NewSecHandlerOptions(cfg *config.Config) *SecHandlerOptions {
	return &SecHandlerOptions{PublicKey: cfg.JWT.PublicKey}
}

// SecHandler authenticates API callers with RS256 bearer tokens whose subject
// is the caller's UUID.
type SecHandler struct {
	key    *rsa.PublicKey
	parser *jwt.Parser
}

// NewSecHandler parses the public key in opts.
func NewSecHandler(opts *SecHandlerOptions) (*SecHandler, error) {
	if opts == nil || strings.TrimSpace(opts.PublicKey) == "" {
		return nil, errors.New("jwt public key is required")
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(opts.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA public key: %w", err)
	}

	return &SecHandler{
		key: key,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

// HandleBearerAuth verifies token and returns ctx carrying the caller's ID.
// Every failure is serrors.ErrUnauthorized.
func (s SecHandler) HandleBearerAuth(ctx context.Context, token string) (context.Context, error) {
	var claims jwt.RegisteredClaims
	if _, err := s.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	}); err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token")
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token subject")
	}

	ctx = context.WithValue(ctx, UserIDKey, domain.UserID(id))
	ctx = logger.WithFields(ctx, zap.String("userID", id.String()))

	return ctx, nil
}

// Middleware rejects requests without a valid "Authorization: Bearer" header.
func (s SecHandler) Middleware(h *Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				h.writeError(w, r, serrors.With(serrors.ErrUnauthorized, "missing bearer token"))

				return
			}

			ctx, err := s.HandleBearerAuth(r.Context(), strings.TrimSpace(token))
			if err != nil {
				h.writeError(w, r, err)

				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
