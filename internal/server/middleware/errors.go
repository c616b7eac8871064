package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/iudanet/gymkeeper/pkg/api"
)

// writeJSONError отправляет ошибку в формате api.ErrorResponse
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: msg})
}
