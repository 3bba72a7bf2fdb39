// Package handler exposes the HTTP handlers of the web server.  Handlers
// parse the request, call a service and render a page; they hold no state
// of their own.
package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/nikosDal/fyyur-01/internal/form"
	"github.com/nikosDal/fyyur-01/internal/repository"
	"github.com/nikosDal/fyyur-01/internal/service"
	"github.com/nikosDal/fyyur-01/internal/view"
)

// pathID reads the :id path parameter.  Anything but a positive integer
// does not name a record, so it answers 404.
func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.ErrNotFound
	}
	return id, nil
}

// formValues returns the submitted form fields.
func formValues(c echo.Context) (url.Values, error) {
	values, err := c.FormParams()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "malformed form submission").SetInternal(err)
	}
	return values, nil
}

// rejectForm re-renders a form page after a failed submission.  Validation
// errors answer 422 with every problem listed; other errors go to the
// error handler.
func rejectForm(c echo.Context, err error, page, title string, data any) error {
	var errs form.Errors
	if !errors.As(err, &errs) {
		return err
	}
	return c.Render(http.StatusUnprocessableEntity, page, view.Page{
		Title:  title,
		Errors: errs.Messages(),
		Data:   data,
	})
}

// Home renders the landing page.
func Home(c echo.Context) error {
	return c.Render(http.StatusOK, "pages/home", view.Page{Title: "Home"})
}

// ErrorHandler renders error pages.  Install it as echo's HTTPErrorHandler.
// repository.ErrNotFound anywhere in the chain answers 404; errors that
// are not an *echo.HTTPError answer 500, with the failed operation named
// when it is a *service.PersistenceError.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var he *echo.HTTPError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		code = http.StatusNotFound
	case errors.As(err, &he):
		code = he.Code
	}

	if code >= http.StatusInternalServerError {
		logrus.WithError(err).WithFields(logrus.Fields{
			"method":     c.Request().Method,
			"path":       c.Request().URL.Path,
			"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
		}).Error("request failed")
	}

	var rerr error
	switch {
	case c.Request().Method == http.MethodHead:
		rerr = c.NoContent(code)
	case code == http.StatusNotFound:
		rerr = c.Render(code, "errors/404", view.Page{Title: "Not Found"})
	case code >= http.StatusInternalServerError:
		page := view.Page{Title: "Server Error"}
		var pe *service.PersistenceError
		if errors.As(err, &pe) {
			page.Flash = pe.Message()
		}
		rerr = c.Render(code, "errors/500", page)
	default:
		msg := http.StatusText(code)
		if he != nil {
			if s, ok := he.Message.(string); ok && s != "" {
				msg = s
			}
		}
		rerr = c.String(code, msg)
	}
	if rerr != nil && !c.Response().Committed {
		_ = c.String(code, http.StatusText(code))
	}
}
