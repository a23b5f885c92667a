package transport

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// requireJWT rejects requests without a valid HS256 bearer token signed with secret.
func requireJWT(secret []byte, logger *zap.Logger) func(http.Handler) http.Handler {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	keyFunc := func(*jwt.Token) (any, error) { return secret, nil }

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				writeJSON(w, logger, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
				return
			}

			var claims jwt.RegisteredClaims
			token, err := parser.ParseWithClaims(raw, &claims, keyFunc)
			if err != nil || !token.Valid {
				logger.Debug("rejected bearer token", zap.Error(err))
				writeJSON(w, logger, http.StatusUnauthorized, errorResponse{Error: "invalid or expired token"})
				return
			}
			if claims.Subject == "" {
				writeJSON(w, logger, http.StatusUnauthorized, errorResponse{Error: "token subject is required"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
