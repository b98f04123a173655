package insight

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/tbckr/insight/internal/apperr"
)

// RemoteError is an API answer with a status outside 200, 202 and 404.
type RemoteError struct {
	Status  int
	Code    string
	Message string
}

// Error returns the remote "<error>: <message>" pair.
func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap lets errors.Is(err, apperr.ErrRequestFailed) match remote errors.
func (e *RemoteError) Unwrap() error { return apperr.ErrRequestFailed }

type remoteErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// normalize maps a response status and raw body into the decoded body, nil
// for "no data", or an error. Array bodies are cut to pageSize when positive.
func normalize(status int, raw []byte, pageSize int) (any, error) {
	switch status {
	case http.StatusOK:
		body, err := decodeBody(raw)
		if err != nil {
			return nil, err
		}
		return truncate(body, pageSize), nil
	case http.StatusAccepted, http.StatusNotFound:
		return nil, nil
	default:
		return nil, newRemoteError(status, raw)
	}
}

func newRemoteError(status int, raw []byte) *RemoteError {
	var eb remoteErrorBody
	if err := json.Unmarshal(raw, &eb); err == nil && (eb.Error != "" || eb.Message != "") {
		return &RemoteError{Status: status, Code: eb.Error, Message: eb.Message}
	}
	msg := strings.TrimSpace(string(raw))
	if len(msg) > 200 {
		msg = msg[:200] + "..."
	}
	return &RemoteError{Status: status, Code: http.StatusText(status), Message: msg}
}

// decodeBody decodes a JSON body keeping numbers verbatim. An empty body
// decodes to nil.
func decodeBody(raw []byte) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var body any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %s", apperr.ErrRequestFailed, err)
	}
	return body, nil
}

func truncate(body any, pageSize int) any {
	list, ok := body.([]any)
	if !ok || pageSize <= 0 || len(list) <= pageSize {
		return body
	}
	return list[:pageSize]
}

// isMiss reports whether body carries no information.
func isMiss(body any) bool {
	switch v := body.(type) {
	case nil:
		return true
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	case string:
		return v == ""
	}
	return false
}

// formatPhones rewrites the phone list of every WHOIS record from
// [{"phone": "+1..."}] into [{"number": "+1...", "link": ...}]. Non-array
// bodies and entries without a phone string are returned unchanged.
func formatPhones(body any, uiURL string) any {
	list, ok := body.([]any)
	if !ok {
		return body
	}
	out := make([]any, len(list))
	for i, item := range list {
		record, ok := item.(map[string]any)
		if !ok {
			out[i] = item
			continue
		}
		phones, ok := record["phone"].([]any)
		if !ok || len(phones) == 0 {
			out[i] = record
			continue
		}
		copied := make(map[string]any, len(record))
		for k, v := range record {
			copied[k] = v
		}
		formatted := make([]any, 0, len(phones))
		for _, p := range phones {
			entry, ok := p.(map[string]any)
			if !ok {
				formatted = append(formatted, p)
				continue
			}
			number, ok := entry["phone"].(string)
			if !ok || number == "" {
				formatted = append(formatted, p)
				continue
			}
			// The leading character is the "+" of the E.164 form.
			formatted = append(formatted, map[string]any{
				"number": number,
				"link":   detailsLink(uiURL, "phone", "%2B"+number[1:]),
			})
		}
		copied["phone"] = formatted
		out[i] = copied
	}
	return out
}
