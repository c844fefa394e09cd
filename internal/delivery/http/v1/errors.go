package v1

import (
	"errors"
	"net/http"

	"shipzone-backend/internal/domain"
	"shipzone-backend/pkg/logger"
	"shipzone-backend/pkg/utils"
)

type restError struct {
	status  int
	code    string
	message string
}

var errorTable = []struct {
	err error
	restError
}{
	{domain.ErrZoneNotFound, restError{http.StatusNotFound, "shipping_zone_invalid", "Invalid resource id."}},
	{domain.ErrMethodNotFound, restError{http.StatusNotFound, "shipping_zone_method_invalid", "Resource does not exist."}},
	{domain.ErrMethodTypeNotFound, restError{http.StatusNotFound, "shipping_method_invalid", "Resource does not exist."}},
	{domain.ErrMethodNotCreated, restError{http.StatusInternalServerError, "shipping_zone_method_not_created", "Resource cannot be created. Check to make sure 'order' and 'method_id' are present."}},
	{domain.ErrTrashNotSupported, restError{http.StatusNotImplemented, "rest_trash_not_supported", "Shipping methods do not support trashing."}},
	{domain.ErrInvalidMethodType, restError{http.StatusBadRequest, "rest_invalid_param", "Invalid parameter(s): method_id"}},
	{domain.ErrInvalidParam, restError{http.StatusBadRequest, "rest_invalid_param", "Invalid parameter(s)."}},
	{domain.ErrReservedZone, restError{http.StatusBadRequest, "shipping_zone_reserved", "The \"locations not covered\" zone cannot be changed."}},
}

// writeDomainError maps err onto the REST error envelope. Parameter errors
// carry their detail in the message; unknown errors are logged and hidden.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	for _, e := range errorTable {
		if errors.Is(err, e.err) {
			msg := e.message
			if e.err == domain.ErrInvalidParam || e.err == domain.ErrInvalidMethodType {
				msg = err.Error()
			}
			utils.WriteRESTError(w, e.status, e.code, msg)
			return
		}
	}

	logger.WithContext(r.Context()).Error().Err(err).Msg("shipping request failed")
	utils.WriteRESTError(w, http.StatusInternalServerError, "internal_error", "Internal server error.")
}
