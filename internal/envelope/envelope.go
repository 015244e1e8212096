// Package envelope turns the raw invocation payload into the caller's
// request mapping. A Lambda can be invoked directly with the request
// itself, or through an API Gateway proxy that wraps it in a body
// string, optionally base64-encoded.
package envelope

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"unicode/utf8"
)

const maxPromptLen = 800

// ClientError is a caller mistake: the envelope or the request inside
// it is malformed. It maps to a 400 and never reaches an upstream
// service.
type ClientError struct {
	Message string
}

func (e *ClientError) Error() string { return e.Message }

// Parse extracts the request mapping from a raw invocation payload.
// Any returned error is a *ClientError.
func Parse(raw []byte) (map[string]any, error) {
	var event map[string]any
	if err := json.Unmarshal(raw, &event); err != nil {
		// Not a mapping at all; let prompt validation reject it.
		return map[string]any{}, nil
	}

	body, proxied := event["body"]
	if !proxied {
		return event, nil
	}

	if truthy(event["isBase64Encoded"]) {
		if s, ok := body.(string); ok {
			decoded, err := base64.StdEncoding.DecodeString(s)
			if err != nil || !utf8.Valid(decoded) {
				return nil, &ClientError{"Invalid base64-encoded body"}
			}
			body = string(decoded)
		}
	}

	switch b := body.(type) {
	case string:
		var payload map[string]any
		if err := json.Unmarshal([]byte(b), &payload); err != nil {
			return nil, &ClientError{"Invalid JSON in request body"}
		}
		return payload, nil
	case map[string]any:
		return b, nil
	default:
		return nil, &ClientError{"Unsupported body format"}
	}
}

// Prompt validates and extracts the prompt from a parsed request
// mapping.
func Prompt(payload map[string]any) (string, error) {
	s, _ := payload["prompt"].(string)
	s = strings.TrimSpace(s)
	if s == "" {
		return "", &ClientError{"Missing 'prompt'"}
	}
	if utf8.RuneCountInString(s) > maxPromptLen {
		return "", &ClientError{"Prompt too long (max 800 chars)"}
	}
	return s, nil
}

// truthy mirrors how a JSON value reads as a boolean: false, 0, "",
// null, and absence are all false.
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return false
	}
}
