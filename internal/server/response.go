package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tartampluch/go-ethiocal/internal/config"
	"github.com/tartampluch/go-ethiocal/internal/ethiopic"
)

// Response is the envelope of every JSON API answer.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo contains error details.
type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompAPI,
			config.LogKeyError, err)
	}
}

func writeSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, Response{Error: &ErrorInfo{Message: message, Code: code}})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, message, config.APICodeBadRequest)
}

func writeNotFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, message, config.APICodeNotFound)
}

// writeDateError maps engine validation failures to 400 INVALID_DATE and
// anything else to 500.
func writeDateError(w http.ResponseWriter, err error) {
	if errors.Is(err, ethiopic.ErrInvalidDate) {
		writeError(w, http.StatusBadRequest, err.Error(), config.APICodeInvalidDate)
		return
	}
	slog.Error(config.HTTPMsgInternalErr,
		config.LogKeyComponent, config.CompAPI,
		config.LogKeyError, err)
	writeError(w, http.StatusInternalServerError, config.HTTPMsgInternalErr, config.APICodeInternal)
}
