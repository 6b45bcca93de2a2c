// Package http exposes the development commerce backend over HTTP.
//
// Every endpoint lives under /api/mobile/{endpoint}. Reads are GET with
// query parameters, writes are POST with form encoded bodies, and all
// responses are JSON in the storefront's envelope shapes.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/atinyakov/storefront/internal/service"
)

// envelope is the common {success, data, error, errors} response body.
type envelope struct {
	Success any               `json:"success"`
	Data    any               `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func ok(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

func fail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Error: msg})
}

// changed writes the {"success": "<message>"} body of a successful mutation.
func changed(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, map[string]string{"success": msg})
}

// rejected writes the {"error": "<message>"} body of a refused mutation.
func rejected(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, map[string]string{"error": msg})
}

const msgLogin = "Please login"

// serverError maps unexpected service errors to 500.
func serverError(w http.ResponseWriter) {
	fail(w, http.StatusInternalServerError, "internal error")
}

// validation returns the messages of err when it is a service.ValidationError.
func validation(err error) (service.ValidationError, bool) {
	var v service.ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// summary returns the duplicate-account warning, or all messages of v in key order.
func summary(v service.ValidationError) string {
	if msg, ok := v["warning"]; ok {
		return msg
	}
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, v[k])
	}
	return strings.Join(msgs, " ")
}

// intParam parses a query parameter, returning 0 when absent or malformed.
func intParam(r *http.Request, name string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return n
}

// bracketed collects form fields named prefix[key] into a map keyed by key.
func bracketed(r *http.Request, prefix string) map[string]string {
	out := map[string]string{}
	for k, vs := range r.PostForm {
		inner, found := strings.CutPrefix(k, prefix+"[")
		if !found || !strings.HasSuffix(inner, "]") || len(vs) == 0 {
			continue
		}
		out[strings.TrimSuffix(inner, "]")] = vs[0]
	}
	return out
}
