package httperrors

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github/chapool/sol-explorer/internal/util"
)

const (
	TypeGeneric             = "generic"
	TypeInvalidAddress      = "INVALID_ADDRESS"
	TypeInvalidSignature    = "INVALID_SIGNATURE"
	TypeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
)

// HTTPError is the JSON body of every error response.
type HTTPError struct {
	Code     int    `json:"status"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Detail   string `json:"detail,omitempty"`
	Attempts int    `json:"attempts,omitempty"`
	Cause    string `json:"cause,omitempty"`
	Internal error  `json:"-"`
}

func NewHTTPError(code int, errorType string, title string) *HTTPError {
	return &HTTPError{
		Code:  code,
		Type:  errorType,
		Title: title,
	}
}

// NewFromEcho converts an echo error, e.g. echo.ErrNotFound.
func NewFromEcho(e *echo.HTTPError) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Type:     TypeGeneric,
		Title:    fmt.Sprint(e.Message),
		Internal: e.Internal,
	}
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("HTTPError %d (%s): %s", e.Code, e.Type, e.Title)
	if e.Detail != "" {
		msg = fmt.Sprintf("%s - %s", msg, e.Detail)
	}
	if e.Internal != nil {
		msg = fmt.Sprintf("%s, %v", msg, e.Internal)
	}

	return msg
}

func (e *HTTPError) Unwrap() error {
	return e.Internal
}

// WithDetail returns a copy of e with detail set.
func (e *HTTPError) WithDetail(detail string) *HTTPError {
	c := *e
	c.Detail = detail

	return &c
}

// HTTPErrorHandler renders every error returned by a handler as HTTPError JSON.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	log := util.LogFromContext(c.Request().Context())

	var (
		httpErr *HTTPError
		echoErr *echo.HTTPError
		body    *HTTPError
	)

	switch {
	case errors.As(err, &httpErr):
		body = httpErr
	case errors.As(err, &echoErr):
		body = NewFromEcho(echoErr)
	default:
		log.Error().Err(err).Msg("Unhandled error in handler")
		body = NewHTTPError(http.StatusInternalServerError, TypeGeneric, http.StatusText(http.StatusInternalServerError))
	}

	if body.Code >= http.StatusInternalServerError {
		log.Warn().Err(err).Int("status", body.Code).Msg("Request failed")
	} else {
		log.Debug().Err(err).Int("status", body.Code).Msg("Request rejected")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(body.Code)
	} else {
		err = c.JSON(body.Code, body)
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to write error response")
	}
}
