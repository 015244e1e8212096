package store

import "context"

type UploadParams struct {
	Key         string
	Data        []byte
	ContentType string
}

type Uploader interface {
	Upload(context.Context, UploadParams) error
}

// Presigner grants time-limited read access to one stored object.
type Presigner interface {
	Presign(ctx context.Context, key string) (string, error)
}
