package http

import (
	"net/http"
	"strconv"

	commonerrors "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/errors"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/httpmetrics"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/logger"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/observability/metrics"
)

type ErrorHandler struct {
	log *logger.Logger
}

func NewErrorHandler(log *logger.Logger) *ErrorHandler {
	return &ErrorHandler{log: log}
}

// HandleError writes the JSON error body. Errors outside the domain taxonomy
// are logged and answered as a bare 500 so no internal detail reaches the client.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	domainErr, ok := commonerrors.AsDomainError(err)
	if !ok {
		h.log.WithFields(r.Context(), logger.Fields{
			"action": "unhandled_error",
			"path":   r.URL.Path,
		}).Errorf("unhandled error: %v", err)

		metrics.HTTPErrorsTotal.WithLabelValues(
			strconv.Itoa(http.StatusInternalServerError),
			httpmetrics.NormalizePath(r.URL.Path),
			r.Method,
		).Inc()

		WriteError(w, http.StatusInternalServerError, CodeInternal, commonerrors.ErrInternalError.Message())
		return
	}

	status := domainErr.HTTPStatus()
	fields := logger.Fields{
		"error_code": domainErr.Code(),
		"category":   string(domainErr.Category()),
		"status":     status,
		"action":     "domain_error",
	}

	if status >= http.StatusInternalServerError {
		h.log.WithFields(r.Context(), fields).Errorf("domain error: %s", domainErr.Error())
	} else if h.log.ShouldLog(logger.DEBUG) {
		h.log.WithFields(r.Context(), fields).Debugf("domain error: %s", domainErr.Error())
	}

	metrics.DomainErrorsTotal.WithLabelValues(
		string(domainErr.Category()),
		domainErr.Code(),
		strconv.Itoa(status),
	).Inc()

	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(status),
		httpmetrics.NormalizePath(r.URL.Path),
		r.Method,
	).Inc()

	WriteError(w, status, domainErr.Code(), domainErr.Message())
}
