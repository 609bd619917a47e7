package http

import (
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/greetr/pkg/domain/model/errs"
	"github.com/secmon-lab/greetr/pkg/utils/logging"
)

type errorResponse struct {
	Error string `json:"error"`
}

func handleError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.From(r.Context())

	switch {
	case goerr.HasTag(err, errs.TagValidation), goerr.HasTag(err, errs.TagInvalidRequest):
		logger.Warn("Bad Request", "error", err)
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: err.Error()})

	case goerr.HasTag(err, errs.TagUnavailable):
		logger.Warn("Service Unavailable", "error", err)
		writeJSON(w, r, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})

	case goerr.HasTag(err, errs.TagExternal):
		logger.Error("External Service Error", "error", err)
		writeJSON(w, r, http.StatusBadGateway, errorResponse{Error: err.Error()})

	default:
		errs.Handle(r.Context(), err)
		writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
