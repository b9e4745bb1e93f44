package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"event-booking-api/internal/models"
)

// respondJSON writes any payload as JSON with the given status
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// respondSuccess writes the success envelope {type, message, <key>: entity}
func respondSuccess(w http.ResponseWriter, status int, message, key string, entity interface{}) {
	respondJSON(w, status, map[string]interface{}{
		"type":    "Success",
		"message": message,
		key:       entity,
	})
}

// respondError translates any service failure into the error envelope.
// Unexpected errors are logged server-side and reported as a bare
// serverError; nothing internal leaks to the client.
func respondError(w http.ResponseWriter, err error) {
	appErr := models.AsAppError(err)
	if appErr.StatusCode == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
	}
	respondJSON(w, appErr.StatusCode, appErr)
}

// decodeJSON parses a request body into dst
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return models.NewValidationError("invalidRequestBody")
	}
	return nil
}

// filterFields applies the query pipeline's field selection to an entity or
// a list of entities: the result keeps only the selected JSON fields (plus
// id). With no selection the entity passes through untouched.
func filterFields(entity interface{}, fields []string) interface{} {
	if len(fields) == 0 {
		return entity
	}

	raw, err := json.Marshal(entity)
	if err != nil {
		return entity
	}

	keep := make(map[string]bool, len(fields)+1)
	keep["id"] = true
	for _, f := range fields {
		keep[f] = true
	}

	var asList []map[string]interface{}
	if err := json.Unmarshal(raw, &asList); err == nil {
		out := make([]map[string]interface{}, 0, len(asList))
		for _, item := range asList {
			out = append(out, pickFields(item, keep))
		}
		return out
	}

	var asObject map[string]interface{}
	if err := json.Unmarshal(raw, &asObject); err == nil {
		return pickFields(asObject, keep)
	}
	return entity
}

func pickFields(item map[string]interface{}, keep map[string]bool) map[string]interface{} {
	out := make(map[string]interface{}, len(keep))
	for key, value := range item {
		if keep[key] {
			out[key] = value
		}
	}
	return out
}
