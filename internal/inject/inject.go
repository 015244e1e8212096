package inject

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmorgan81/posterbot/internal/config"
	"github.com/dmorgan81/posterbot/internal/handler"
	"github.com/dmorgan81/posterbot/internal/image"
	"github.com/dmorgan81/posterbot/internal/log"
	"github.com/dmorgan81/posterbot/internal/store"
	"github.com/samber/do"
)

func Setup(ctx context.Context) *do.Injector {
	log := log.FromContextOrDiscard(ctx)

	injector := do.NewWithOpts(&do.InjectorOpts{
		Logf: func(format string, args ...any) {
			log.Info(fmt.Sprintf(format, args...))
		},
	})
	do.Provide[config.Config](injector, func(i *do.Injector) (config.Config, error) {
		return config.Load()
	})
	do.Provide[aws.Config](injector, func(i *do.Injector) (aws.Config, error) {
		return awsconfig.LoadDefaultConfig(ctx)
	})
	do.Provide[*bedrockruntime.Client](injector, func(i *do.Injector) (*bedrockruntime.Client, error) {
		cfg := do.MustInvoke[config.Config](i)
		return bedrockruntime.NewFromConfig(do.MustInvoke[aws.Config](i), func(o *bedrockruntime.Options) {
			o.Region = cfg.BedrockRegion
		}), nil
	})
	do.Provide[*s3.Client](injector, func(i *do.Injector) (*s3.Client, error) {
		return s3.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.Provide[*s3.PresignClient](injector, func(i *do.Injector) (*s3.PresignClient, error) {
		return s3.NewPresignClient(do.MustInvoke[*s3.Client](i)), nil
	})

	do.ProvideNamed[string](injector, "bucket", func(i *do.Injector) (string, error) {
		return do.MustInvoke[config.Config](i).OutputBucket, nil
	})
	do.ProvideNamed[string](injector, "key_prefix", func(i *do.Injector) (string, error) {
		return do.MustInvoke[config.Config](i).KeyPrefix, nil
	})
	do.ProvideNamed[string](injector, "model_id", func(i *do.Injector) (string, error) {
		return do.MustInvoke[config.Config](i).ModelID, nil
	})

	do.Provide[image.Generator](injector, func(i *do.Injector) (image.Generator, error) {
		return &image.BedrockGenerator{
			Client: do.MustInvoke[*bedrockruntime.Client](i),
			Model:  do.MustInvoke[config.Config](i).ModelID,
		}, nil
	})
	do.Provide[store.Uploader](injector, store.NewS3Uploader)
	do.Provide[store.Presigner](injector, store.NewS3Presigner)

	do.Provide[*handler.Handler](injector, handler.NewHandler)

	return injector
}
