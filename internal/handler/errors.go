package handler

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/view"
)

// HTTPErrorHandler renders error pages. 404 and 500 have their own page;
// other statuses share a generic one. Server errors are logged.
func HTTPErrorHandler(logger *log.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := http.StatusText(code)
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if s, ok := he.Message.(string); ok {
				msg = s
			} else {
				msg = http.StatusText(code)
			}
		}
		if code >= http.StatusInternalServerError {
			logger.Error("request failed", "method", c.Request().Method, "uri", c.Request().RequestURI, "err", err)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}

		name := "errors/error"
		switch code {
		case http.StatusNotFound:
			name = "errors/404"
		case http.StatusInternalServerError:
			name = "errors/500"
		}
		page := view.Page{
			Title:   http.StatusText(code),
			Content: view.ErrorPage{Code: code, Message: msg},
		}
		if rerr := c.Render(code, name, page); rerr != nil {
			logger.Error("render error page", "err", rerr)
			_ = c.String(code, msg)
		}
	}
}
