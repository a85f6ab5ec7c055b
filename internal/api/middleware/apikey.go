package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"os"
	"time"

	"github.com/Ayushkalathiya945/investment--sub001/internal/api/response"
	"github.com/fernet/fernet-go"
)

// timeTokenTTL is the maximum age of an X-Time-Token before it is rejected.
// Replayed tokens older than this fail verification.
const timeTokenTTL = 5 * time.Minute

// tokenKey derives the fernet signing key from the shared API key.
// Fernet keys are 32 bytes; the SHA-256 of the API key fits exactly.
func tokenKey(apiKey string) (*fernet.Key, error) {
	sum := sha256.Sum256([]byte(apiKey))
	return fernet.DecodeKey(base64.URLEncoding.EncodeToString(sum[:]))
}

// GenerateTimeToken creates a short-lived token proving the caller holds the
// API key at the current time. Internal callers attach it as X-Time-Token.
// Returns an empty string if the key cannot be derived.
func GenerateTimeToken(apiKey string) string {
	key, err := tokenKey(apiKey)
	if err != nil {
		return ""
	}

	token, err := fernet.EncryptAndSign([]byte(time.Now().UTC().Format(time.RFC3339)), key)
	if err != nil {
		return ""
	}

	return string(token)
}

// APIKeyMiddleware guards internal mutation endpoints. Requests must present
// the shared key in X-API-Key and a fresh fernet token in X-Time-Token.
// Returns 401 Unauthorized for missing or invalid credentials and 500 when
// the server itself has no INTERNAL_API_KEY configured.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := os.Getenv("INTERNAL_API_KEY")
		if expected == "" {
			response.RespondError(w, http.StatusInternalServerError, "server configuration error", "Authentication not loaded")
			return
		}

		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
			return
		}
		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) != 1 {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
			return
		}

		timeToken := r.Header.Get("X-Time-Token")
		if timeToken == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing Time token")
			return
		}

		key, err := tokenKey(expected)
		if err != nil || fernet.VerifyAndDecrypt([]byte(timeToken), timeTokenTTL, []*fernet.Key{key}) == nil {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Time token is invalid or expired")
			return
		}

		next.ServeHTTP(w, r)
	})
}
