package image

import (
	"context"
	"errors"
)

// Result is one generated image plus the seed the model reported, if
// any.
type Result struct {
	Data []byte
	Seed *int64
}

type Generator interface {
	Generate(context.Context, string) (*Result, error)
}

// FilteredError means the model declined to generate: a content
// decision by the model, not an infrastructure failure. Reasons are
// echoed to the caller verbatim, nulls included.
type FilteredError struct {
	Reasons []*string
}

func (e *FilteredError) Error() string { return "Filtered/failed" }

// UpstreamError wraps a model-side failure. Reason is the only text
// shown to the caller; the cause stays in the logs.
type UpstreamError struct {
	Reason string
	cause  error
}

func (e *UpstreamError) Error() string { return e.Reason }
func (e *UpstreamError) Unwrap() error { return e.cause }

// UpstreamReason extracts the caller-visible message from a Generate
// error.
func UpstreamReason(err error) string {
	var up *UpstreamError
	if errors.As(err, &up) {
		return up.Reason
	}
	return "Bedrock invoke failed"
}
