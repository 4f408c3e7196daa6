package api

import (
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// Error is a non-2xx backend response. Detail carries the backend-supplied
// reason when the body had one; user-facing messages prefer it over the
// generic status line.
type Error struct {
	StatusCode int
	Status     string
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("server error: %s", e.Status)
}

// wrapError turns an error response into an *Error, extracting the FastAPI
// style {"detail": "..."} body when present.
func wrapError(r *resty.Response) error {
	e := &Error{
		StatusCode: r.StatusCode(),
		Status:     r.Status(),
	}
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(r.Body(), &body); err == nil {
		e.Detail = body.Detail
	}
	return e
}
