package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/mapledash/character-api/internal/core/domain"
	"github.com/mapledash/character-api/internal/pkg/i18n"
)

type errorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	Details any    `json:"details,omitempty"`
}

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error errorBody `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain errors to their HTTP status codes.
//   - Localizes not-found messages from Accept-Language, falling back to locale.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(locale language.Tag, log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		body := resolveError(err, locale, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(body.Status)
			return
		}
		_ = c.JSON(body.Status, errorResponse{Error: body})
	}
}

func resolveError(err error, locale language.Tag, log zerolog.Logger, c echo.Context) errorBody {
	var (
		he  *echo.HTTPError
		ve  *domain.ValidationError
		nf  *domain.NotFoundError
		ue  *domain.UpstreamError
		cfg *domain.ConfigurationError
	)

	switch {
	case errors.As(err, &ve):
		return errorBody{Message: ve.Message, Status: http.StatusBadRequest}

	case errors.As(err, &nf):
		tag := i18n.Match(c.Request().Header.Get("Accept-Language"), locale)
		return errorBody{
			Message: i18n.Sprintf(tag, i18n.CharacterNotFoundKey, nf.CharacterName),
			Status:  http.StatusNotFound,
		}

	case errors.As(err, &ue):
		log.Warn().
			Err(err).
			Str("endpoint", ue.Path).
			Int("upstream_status", ue.Status).
			Msg("upstream request failed")
		return errorBody{Message: domain.MessageOf(ue), Status: ue.Status, Details: ue.Details}

	case errors.As(err, &cfg):
		log.Error().Err(err).Msg("service misconfigured")
		return errorBody{Message: cfg.Message, Status: http.StatusInternalServerError}

	case errors.As(err, &he):
		// Echo's own errors: bind failures, unknown routes, rate limiting.
		return errorBody{Message: fmt.Sprintf("%v", he.Message), Status: he.Code}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	tag := i18n.Match(c.Request().Header.Get("Accept-Language"), language.English)
	return errorBody{
		Message: i18n.Sprintf(tag, i18n.FetchFailedKey),
		Status:  http.StatusInternalServerError,
	}
}
