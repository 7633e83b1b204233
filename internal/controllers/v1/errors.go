package v1

import (
	"errors"
	"net/http"

	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/reconciler"
)

type httpError struct {
	Error string `json:"error" example:"there is no budget matching your query"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	var validationErr reconciler.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}

	return http.StatusBadRequest
}

// Cleanup errors
var errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")

// Import errors
var (
	errNoFilePost      = errors.New("you must send a file to this endpoint")
	errWrongFileSuffix = errors.New("this endpoint only supports files of the following types")
)

// Edit errors
var (
	errEditOperationUnknown = errors.New("the specified edit operation does not exist")
	errEditNoOperations     = errors.New("the edit request must contain at least one operation")
)

// Sync errors
var errSyncNotConfigured = errors.New("no transaction provider is configured, set PROVIDER_URL to enable syncing")
