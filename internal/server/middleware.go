package server

import (
	"github.com/labstack/echo/v4"

	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/platform/correlation"
)

const correlationHeader = "X-Correlation-ID"

// correlationMiddleware tags every request with a correlation ID, honoring
// one supplied by the caller, and echoes it back in the response.
func correlationMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Request().Header.Get(correlationHeader)
		if id == "" {
			id = correlation.NewID()
		}

		ctx := correlation.WithID(c.Request().Context(), id)
		c.SetRequest(c.Request().WithContext(ctx))
		c.Response().Header().Set(correlationHeader, id)
		return next(c)
	}
}
