package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/dmorgan81/posterbot/internal/envelope"
	"github.com/dmorgan81/posterbot/internal/image"
	"github.com/dmorgan81/posterbot/internal/log"
	"github.com/dmorgan81/posterbot/internal/store"
	"github.com/samber/do"
)

type successBody struct {
	Bucket  string `json:"bucket"`
	Key     string `json:"key"`
	URL     string `json:"url"`
	Seed    *int64 `json:"seed"`
	ModelID string `json:"modelId"`
}

type errorBody struct {
	Error         string    `json:"error"`
	FinishReasons []*string `json:"finish_reasons,omitempty"`
}

type Handler struct {
	generator image.Generator
	uploader  store.Uploader
	presigner store.Presigner
	bucket    string
	keyPrefix string
	modelID   string
}

func NewHandler(i *do.Injector) (*Handler, error) {
	return &Handler{
		generator: do.MustInvoke[image.Generator](i),
		uploader:  do.MustInvoke[store.Uploader](i),
		presigner: do.MustInvoke[store.Presigner](i),
		bucket:    do.MustInvokeNamed[string](i, "bucket"),
		keyPrefix: do.MustInvokeNamed[string](i, "key_prefix"),
		modelID:   do.MustInvokeNamed[string](i, "model_id"),
	}, nil
}

// Handle runs one invocation end to end: normalize, validate, invoke
// the model, upload, presign. The error return is always nil; every
// failure becomes a well-formed response.
func (h *Handler) Handle(ctx context.Context, raw json.RawMessage) (events.APIGatewayProxyResponse, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("Handler")
	log.Info("handling lambda invocation")

	payload, err := envelope.Parse(raw)
	if err != nil {
		return resp(http.StatusBadRequest, errorBody{Error: err.Error()}), nil
	}

	prompt, err := envelope.Prompt(payload)
	if err != nil {
		return resp(http.StatusBadRequest, errorBody{Error: err.Error()}), nil
	}

	result, err := h.generator.Generate(ctx, prompt)
	if err != nil {
		var filtered *image.FilteredError
		if errors.As(err, &filtered) {
			return resp(http.StatusBadRequest, errorBody{
				Error:         filtered.Error(),
				FinishReasons: filtered.Reasons,
			}), nil
		}
		return resp(http.StatusBadGateway, errorBody{Error: image.UpstreamReason(err)}), nil
	}

	key := store.ObjectKey(h.keyPrefix, time.Now())
	if err := h.uploader.Upload(ctx, store.UploadParams{
		Key:         key,
		Data:        result.Data,
		ContentType: "image/png",
	}); err != nil {
		log.Error("upload failed", "key", key, "err", err)
		return resp(http.StatusBadGateway, errorBody{Error: "S3 upload failed"}), nil
	}

	url, err := h.presigner.Presign(ctx, key)
	if err != nil {
		log.Error("presign failed", "key", key, "err", err)
		return resp(http.StatusBadGateway, errorBody{Error: "Failed to generate presigned URL"}), nil
	}

	log.Info("invocation complete", "key", key)
	return resp(http.StatusOK, successBody{
		Bucket:  h.bucket,
		Key:     key,
		URL:     url,
		Seed:    result.Seed,
		ModelID: h.modelID,
	}), nil
}

func resp(status int, body any) events.APIGatewayProxyResponse {
	data, _ := json.Marshal(body)
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(data),
	}
}
