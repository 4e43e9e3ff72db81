package http

import (
	"net/http"

	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/constants"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/httpmetrics"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/logger"
)

// BuildBaseHandler wraps the router in the shared middleware chain, outermost first.
// trustProxy enables X-Real-IP and X-Forwarded-For for client addressing.
func BuildBaseHandler(log *logger.Logger, trustProxy bool, handler http.Handler) http.Handler {
	metrics := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)
	csp := ContentSecurityPolicyMiddleware("")
	proxy := ProxyHeadersMiddleware(trustProxy)

	return SecurityHeadersMiddleware(csp(TraceIDMiddleware(proxy(recovery(maxRequestSize(metrics.Wrap(handler)))))))
}
