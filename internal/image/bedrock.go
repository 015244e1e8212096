package image

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/dmorgan81/posterbot/internal/log"
)

// BedrockAPI is the slice of the bedrock-runtime client we use.
type BedrockAPI interface {
	InvokeModel(context.Context, *bedrockruntime.InvokeModelInput, ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

type BedrockGenerator struct {
	Client BedrockAPI
	Model  string
}

type generateRequest struct {
	Prompt       string `json:"prompt"`
	OutputFormat string `json:"output_format"`
}

// generateResponse is destructured defensively; every field the model
// may omit is optional.
type generateResponse struct {
	Images        []string  `json:"images"`
	FinishReasons []*string `json:"finish_reasons"`
	Seeds         []int64   `json:"seeds"`
}

func (g *BedrockGenerator) Generate(ctx context.Context, prompt string) (*Result, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("bedrock").With("model", g.Model)
	log.Info("invoking model")

	body, err := json.Marshal(generateRequest{Prompt: prompt, OutputFormat: "png"})
	if err != nil {
		return nil, &UpstreamError{Reason: "Bedrock invoke failed", cause: err}
	}

	out, err := g.Client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(g.Model),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		log.Error("model invocation failed", "err", err)
		return nil, &UpstreamError{Reason: "Bedrock invoke failed", cause: err}
	}

	var resp generateResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return nil, &UpstreamError{Reason: "Invalid Bedrock response", cause: err}
	}

	// A non-null first finish reason means the model filtered or
	// failed the generation.
	if len(resp.FinishReasons) > 0 && resp.FinishReasons[0] != nil {
		log.Info("generation filtered", "reasons", resp.FinishReasons)
		return nil, &FilteredError{Reasons: resp.FinishReasons}
	}

	if len(resp.Images) == 0 {
		return nil, &UpstreamError{Reason: "No image returned from model"}
	}

	data, err := base64.StdEncoding.DecodeString(resp.Images[0])
	if err != nil {
		return nil, &UpstreamError{Reason: "Image decode failed", cause: err}
	}

	var seed *int64
	if len(resp.Seeds) > 0 {
		seed = &resp.Seeds[0]
	}
	log.Info("received image", "bytes", len(data))
	return &Result{Data: data, Seed: seed}, nil
}
