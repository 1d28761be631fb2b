package httpx

import (
	"net/http"
	"strconv"
	"strings"
)

const msgInvalidNumber = "Debe ser un número."

// formString returns the trimmed posted value for key.
func formString(r *http.Request, key string) string {
	return strings.TrimSpace(r.PostFormValue(key))
}

// formInt64 parses a positive integer field. Empty values yield 0 with no
// error so the validator can report them as required.
func formInt64(r *http.Request, key string, errs map[string]string) int64 {
	v := formString(r, key)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		errs[key] = msgInvalidNumber
		return 0
	}
	return n
}

// queryString returns the trimmed query value for key.
func queryString(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// queryFlag reports whether a checkbox-style query parameter is on.
func queryFlag(r *http.Request, key string) bool {
	switch strings.ToLower(queryString(r, key)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}
