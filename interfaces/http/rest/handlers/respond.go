package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"creativerse-backend/pkg/common"
	pkgerrors "creativerse-backend/pkg/errors"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	common.RespondJSON(w, status, data)
}

// respondAppError maps an AppError to its HTTP status and envelope; anything
// untyped is masked as a 500.
func respondAppError(logger *zap.Logger, w http.ResponseWriter, err error) {
	var appErr *pkgerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			logger.Error("request failed", zap.Error(err))
		}
		common.RespondErrorWithDetails(w, appErr.HTTPStatus, string(appErr.Type), appErr.Message, appErr.Details)
		return
	}

	logger.Error("unhandled error", zap.Error(err))
	common.RespondError(w, http.StatusInternalServerError, string(pkgerrors.ErrorTypeInternal), "internal server error")
}

func respondBadRequest(w http.ResponseWriter, message string) {
	common.RespondError(w, http.StatusBadRequest, string(pkgerrors.ErrorTypeValidation), message)
}
