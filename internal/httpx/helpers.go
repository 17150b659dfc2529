package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"

	"plantstore-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

func decodeJSON(r *http.Request, dest any) error {
	return json.NewDecoder(r.Body).Decode(dest)
}

func parseID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		utils.WriteJSONError(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return uint(id), true
}
