// Package api holds what the JSON handlers share.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"festive-foliage/core"

	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"
)

// maxBodyBytes leaves room for a photo sent as a data URL.
const maxBodyBytes = 4 << 20

// Error writes err as {"error": "..."} with the matching status.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status, message := http.StatusInternalServerError, "Internal server error"

	var verr *core.ValidationError
	switch {
	case errors.As(err, &verr):
		status, message = http.StatusBadRequest, verr.Reason
	case errors.Is(err, core.ErrBadRequest):
		status, message = http.StatusBadRequest, "Bad request"
	case errors.Is(err, core.ErrBlocked):
		status, message = http.StatusForbidden, "Blocked"
	case errors.Is(err, core.ErrNotFound):
		status, message = http.StatusNotFound, "Not found"
	case errors.Is(err, core.ErrUnauthorized):
		status, message = http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, core.ErrServerMisconfigured):
		status, message = http.StatusInternalServerError, "Server not configured"
	case errors.Is(err, core.ErrStorage):
		status, message = http.StatusInternalServerError, "Storage failure"
	}

	if status == http.StatusInternalServerError {
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("Request failed")
	}

	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": message})
}

// Decode reads a JSON request body into v. An empty body leaves v untouched.
func Decode(r *http.Request, v any) error {
	defer r.Body.Close()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return core.BadRequest("Failed to read request body")
	}
	if len(body) > maxBodyBytes {
		return core.BadRequest("Request body too large")
	}
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return core.BadRequest("Invalid JSON")
	}
	return nil
}
