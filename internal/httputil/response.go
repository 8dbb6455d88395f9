// Package httputil holds the JSON response envelopes shared by every handler.
package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type pageMeta struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func write(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// JSON writes data in the standard {"data": ...} envelope.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	write(w, status, struct {
		Data interface{} `json:"data"`
	}{data})
}

// JSONList writes a paginated list: the data envelope plus page metadata.
func JSONList(w http.ResponseWriter, data interface{}, page, pageSize int, total int64) {
	write(w, http.StatusOK, struct {
		Data interface{} `json:"data"`
		Meta pageMeta    `json:"meta"`
	}{data, pageMeta{Page: page, PageSize: pageSize, Total: total}})
}

// Error writes the {"error":{code,message}} envelope.
func Error(w http.ResponseWriter, status int, code, message string) {
	write(w, status, struct {
		Error errorBody `json:"error"`
	}{errorBody{Code: code, Message: message}})
}
