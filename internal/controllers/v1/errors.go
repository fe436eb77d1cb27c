package v1

import (
	"errors"
	"net/http"

	"github.com/hearthledger/backend/internal/importer"
	"github.com/hearthledger/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, models.ErrNoPermission) {
		return http.StatusForbidden
	}

	for _, conflict := range []error{
		models.ErrCategoryHasChildren,
		models.ErrCategoryCycle,
		models.ErrCategoryTypeMismatch,
		models.ErrAccountNameNotUnique,
		models.ErrCategoryNameNotUnique,
		importer.ErrPairConflict,
	} {
		if errors.Is(err, conflict) {
			return http.StatusConflict
		}
	}

	return http.StatusBadRequest
}

// Budget errors
var (
	errAsOfInvalid  = errors.New("the asOf query parameter must be a date in the format YYYY-MM-DD")
	errPeriodFilter = errors.New("the specified budget period is invalid")
)

// Transaction errors
var (
	errTransactionTypeInvalid   = errors.New("the specified transaction type is invalid")
	errTransfersFilterInvalid   = errors.New("the transfers parameter must be either only or none")
	errTransactionIsTransferLeg = errors.New("this transaction is part of a transfer and cannot be edited directly")
)

// Import errors
var (
	errNoFilePost        = errors.New("you must send a file to this endpoint")
	errWrongFileSuffix   = errors.New("this endpoint only supports csv files")
	errAccountIDRequired = errors.New("the accountId parameter must be set")
	errImportIDRequired  = errors.New("the importId parameter must be set")
)
