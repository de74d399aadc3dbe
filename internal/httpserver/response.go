package httpserver

import (
	"encoding/json"
	"net/http"
)

type msgResponse struct {
	Msg string `json:"msg"`
}

type errorsResponse struct {
	Errors []msgResponse `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeMsg renders the single-message form used by middleware and resource
// errors: {"msg": ...}.
func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, msgResponse{Msg: msg})
}

// writeErrors renders the array form used by validation and auth-flow
// failures: {"errors":[{"msg":...},...]}.
func writeErrors(w http.ResponseWriter, status int, msgs ...string) {
	resp := errorsResponse{Errors: make([]msgResponse, 0, len(msgs))}
	for _, m := range msgs {
		resp.Errors = append(resp.Errors, msgResponse{Msg: m})
	}
	writeJSON(w, status, resp)
}

// writeServerError hides internal failure detail from clients; the cause is
// logged at the handler boundary.
func writeServerError(w http.ResponseWriter) {
	http.Error(w, "Server Error", http.StatusInternalServerError)
}
