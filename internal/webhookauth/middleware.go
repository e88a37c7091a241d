// Package webhookauth verifies HMAC-SHA256 webhook signatures with
// per-source shared secrets.
package webhookauth

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"

	"lead_gateway_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// SignatureHeader is the header carrying the hex HMAC-SHA256 signature.
const SignatureHeader = "X-Webhook-Signature"

// Verify checks the signature over the raw body. An empty secret is the
// documented dev-mode bypass: verification is skipped entirely. A missing
// signature with a configured secret fails.
func Verify(rawBody []byte, signature, secret string) bool {
	if secret == "" {
		return true
	}
	if signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}

// Middleware returns a gin middleware verifying the source's signature
// before any parsing or persistence happens. The raw body is restored for
// downstream handlers. Notion-style sources prefix their signature with
// "sha256=", which stripPrefix removes before comparison.
func Middleware(source string, secret func() string, stripPrefix bool, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		configured := secret()
		if configured == "" {
			log.WebhookAuthEvent(source, true, "secret not configured, verification skipped")
			c.Next()
			return
		}

		rawBody, err := io.ReadAll(c.Request.Body)
		if err != nil {
			log.WebhookAuthEvent(source, false, "unreadable body")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(rawBody))

		signature := c.GetHeader(SignatureHeader)
		if stripPrefix {
			signature = strings.TrimPrefix(signature, "sha256=")
		}

		if !Verify(rawBody, signature, configured) {
			log.WebhookAuthEvent(source, false, "invalid signature")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid signature"})
			return
		}

		log.WebhookAuthEvent(source, true, "")
		c.Next()
	}
}
