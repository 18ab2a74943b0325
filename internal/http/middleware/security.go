// Package middleware — hardening headers for the diagnostics server.
// The surface is loopback-only JSON, so the set is conservative: no
// CSP, no HSTS (the listener is plain HTTP on localhost), just the
// headers that stop sniffing, framing, and caching of debug payloads.
package middleware

import "github.com/gin-gonic/gin"

// SecurityHeaders adds a fixed set of response headers:
//
//	X-Content-Type-Options: nosniff
//	X-Frame-Options: DENY
//	Referrer-Policy: no-referrer
//	Cache-Control: no-store
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cache-Control", "no-store")
		c.Next()
	}
}
