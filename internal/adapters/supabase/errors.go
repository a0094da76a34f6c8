package supabase

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// noRowsCode is the PostgREST error code for a singular request matching no rows
const noRowsCode = "PGRST116"

// APIError is an error response from GoTrue or PostgREST
type APIError struct {
	Code    string
	Details string
	Hint    string
	Message string
	Status  int
}

func (e *APIError) Error() string {
	return e.Message
}

// errorBody covers both GoTrue and PostgREST error shapes
type errorBody struct {
	Code             json.RawMessage `json:"code"`
	Details          string          `json:"details"`
	Error            string          `json:"error"`
	ErrorCode        string          `json:"error_code"`
	ErrorDescription string          `json:"error_description"`
	Hint             string          `json:"hint"`
	Message          string          `json:"message"`
	Msg              string          `json:"msg"`
}

// parseAPIError builds an APIError from a failed response
func parseAPIError(resp *resty.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode()}

	var body errorBody
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		// PostgREST sends a string code, GoTrue a numeric status
		var code string
		if json.Unmarshal(body.Code, &code) == nil {
			apiErr.Code = code
		}
		if body.ErrorCode != "" {
			apiErr.Code = body.ErrorCode
		}
		apiErr.Details = body.Details
		apiErr.Hint = body.Hint
		apiErr.Message = firstNonEmpty(body.Msg, body.ErrorDescription, body.Message, body.Error)
	}

	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(resp.Body()))
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("request failed: %s", http.StatusText(apiErr.Status))
	}
	return apiErr
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
