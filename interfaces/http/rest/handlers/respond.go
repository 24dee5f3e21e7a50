package handlers

import (
	"net/http"

	"clickstream-backend/pkg/common"
	appErrors "clickstream-backend/pkg/errors"
)

// maxBodyBytes caps request bodies; pipeline configs are the largest payloads
// and stay well under this.
const maxBodyBytes = 1 << 20

// respondServiceError translates a service error into the API envelope
func respondServiceError(w http.ResponseWriter, err error) {
	status := appErrors.HTTPStatusOf(err)
	code := common.StandardErrorCodes.InternalError
	message := "Internal server error"

	if appErr := appErrors.GetAppError(err); appErr != nil {
		code = string(appErr.Type)
		message = appErr.Message
	}

	common.RespondError(w, status, code, message)
}
