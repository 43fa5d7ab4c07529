package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/form"
)

// bindForm binds and validates the request into f. It returns the messages
// to show next to the form, or nil when f is valid.
func (h *Handler) bindForm(c echo.Context, f any) []string {
	if err := c.Bind(f); err != nil {
		if he, ok := err.(*echo.HTTPError); ok {
			return []string{formatMessage(he.Message)}
		}
		return []string{err.Error()}
	}
	if err := c.Validate(f); err != nil {
		return form.Messages(err)
	}
	return nil
}

func formatMessage(m interface{}) string {
	if s, ok := m.(string); ok {
		return s
	}
	return "invalid form submission"
}
