package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"os"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/ndewijer/Trading-Journal-Backend/internal/api/response"
)

// TimeTokenTTL is how long a generated time token is accepted.
const TimeTokenTTL = 5 * time.Minute

// APIKeyEnv names the environment variable holding the shared admin secret.
const APIKeyEnv = "INTERNAL_API_KEY"

// Header names carrying the admin credentials.
const (
	APIKeyHeader    = "X-API-Key"
	TimeTokenHeader = "X-Time-Token"
)

// fernetKey derives the token signing key from the API key.
func fernetKey(apiKey string) *fernet.Key {
	sum := sha256.Sum256([]byte(apiKey))
	k := fernet.Key(sum)
	return &k
}

// GenerateTimeToken issues a short-lived token for the given API key. The token
// carries its creation time and is valid for TimeTokenTTL.
func GenerateTimeToken(apiKey string) string {
	payload := []byte(time.Now().UTC().Format(time.RFC3339))
	tok, err := fernet.EncryptAndSign(payload, fernetKey(apiKey))
	if err != nil {
		return ""
	}
	return string(tok)
}

// validTimeToken reports whether token was issued for apiKey within TimeTokenTTL.
func validTimeToken(apiKey, token string) bool {
	return fernet.VerifyAndDecrypt([]byte(token), TimeTokenTTL, []*fernet.Key{fernetKey(apiKey)}) != nil
}

// APIKeyMiddleware protects admin routes. Requests must carry the shared secret
// in X-API-Key and a fresh token from GenerateTimeToken in X-Time-Token.
//
// The key is read from INTERNAL_API_KEY on every request; when it is not set
// the route answers 500 rather than running unprotected.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := os.Getenv(APIKeyEnv)
		if expected == "" {
			response.RespondError(w, http.StatusInternalServerError, "authentication error", "Authentication not loaded")
			return
		}

		apiKey := r.Header.Get(APIKeyHeader)
		if apiKey == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
			return
		}
		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) != 1 {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
			return
		}

		timeToken := r.Header.Get(TimeTokenHeader)
		if timeToken == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing Time token")
			return
		}
		if !validTimeToken(expected, timeToken) {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Time token is invalid or expired")
			return
		}

		next.ServeHTTP(w, r)
	})
}
