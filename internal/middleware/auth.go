package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/deep-thoughts-api/internal/auth"
)

// ResolveIdentity extracts a token from the request, verifies it, and
// attaches the decoded identity to the request context. It never rejects
// a request: a missing or invalid token just leaves the request anonymous,
// and each resolver decides whether that is acceptable.
func ResolveIdentity(tokens *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			// Invalid or expired token: downgrade to anonymous. The
			// resolver raises its own error if it needed an identity.
			log.Printf("invalid token: %v", err)
			c.Next()
			return
		}

		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), claims))
		c.Next()
	}
}

// tokenFromRequest looks for a token in the request body, then the query
// string, then the Authorization header. Only the header form carries a
// scheme prefix to strip.
func tokenFromRequest(c *gin.Context) string {
	if token := tokenFromBody(c); token != "" {
		return token
	}

	if token := c.Query("token"); token != "" {
		return token
	}

	if header := c.GetHeader("Authorization"); header != "" {
		// Separate "Bearer" from "<tokenvalue>".
		parts := strings.Fields(header)
		if len(parts) > 0 {
			return strings.TrimSpace(parts[len(parts)-1])
		}
	}

	return ""
}

func tokenFromBody(c *gin.Context) string {
	if c.Request.Method != http.MethodPost || c.Request.Body == nil {
		return ""
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	// Rewind so the GraphQL handler can still bind the body.
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))

	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return body.Token
}
