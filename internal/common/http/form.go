package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	commonerrors "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/errors"
)

var errRequestTooLarge = commonerrors.NewDomainError(
	CodeRequestTooLarge,
	commonerrors.CategoryValidation,
	http.StatusRequestEntityTooLarge,
	"request body too large",
)

// ParseForm accepts urlencoded and multipart bodies alike.
func ParseForm(r *http.Request) error {
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(DefaultMaxRequestSize)
	} else {
		err = r.ParseForm()
	}
	if err == nil {
		return nil
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return errRequestTooLarge
	}
	return commonerrors.ErrValidation.WithMessage("malformed request body").WithCause(err)
}

// FormID parses a positive integer identifier from the request body only;
// ok is false for missing or malformed input.
func FormID(r *http.Request, key string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(r.PostFormValue(key)), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
