package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/itchan-dev/feedback/shared/errors"
	"github.com/itchan-dev/feedback/shared/logger"
)

const internalErrorMessage = "internal server error"

// WriteText writes body as plain text, without the trailing newline http.Error adds.
func WriteText(w http.ResponseWriter, statusCode int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)
	_, _ = io.WriteString(w, body)
}

// WriteErrorAndStatusCode is the single place errors become responses.
func WriteErrorAndStatusCode(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.StatusCode(err)
	if errors.KindOf(err) == errors.KindInternal {
		logger.FromContext(r.Context()).Error("request failed", "error", err)
		WriteText(w, status, internalErrorMessage)
		return
	}
	WriteText(w, status, err.Error())
}

func WriteJSON(w http.ResponseWriter, r *http.Request, statusCode int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		WriteErrorAndStatusCode(w, r, fmt.Errorf("encode response: %w", err))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}

// Decode reads a JSON body; malformed bodies are validation errors.
// Anything after the first JSON value is rejected.
func Decode(r io.Reader, body any) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(body); err != nil {
		logger.Log.Debug("invalid json body", "error", err)
		return errors.Validation("body is invalid json")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		logger.Log.Debug("trailing data after json body", "error", err)
		return errors.Validation("body is invalid json")
	}
	return nil
}

// GetIP extracts the client IP from RemoteAddr.
// Forwarding headers are not trusted.
func GetIP(r *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("invalid IP address: %s", ip)
	}
	return ip, nil
}
