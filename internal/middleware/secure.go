package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/unrolled/secure"
)

// SecureHeaders sets the standard security response headers. Production also redirects to https.
func SecureHeaders(production bool) echo.MiddlewareFunc {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		SSLRedirect:           production,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:         !production,
	})
	return echo.WrapMiddleware(secureMiddleware.Handler)
}
