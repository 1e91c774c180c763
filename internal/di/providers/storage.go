package providers

import (
	"context"
	"fmt"

	"github.com/samber/do/v2"

	"github.com/editorcraftapp/editorcraft-server/internal/blob"
	"github.com/editorcraftapp/editorcraft-server/internal/config"
	"github.com/editorcraftapp/editorcraft-server/internal/embed"
	"github.com/editorcraftapp/editorcraft-server/internal/logger"
)

// ProvideObjectStore provides the S3 uploader backing image uploads.
func ProvideObjectStore(i do.Injector) (*blob.Uploader, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	uploader, err := blob.NewUploader(context.Background(), blob.Options{
		Bucket:        cfg.Upload.Bucket,
		Region:        cfg.Upload.Region,
		Endpoint:      cfg.Upload.Endpoint,
		PublicBaseURL: cfg.Upload.PublicBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("object store: %w", err)
	}

	log.Info("Object store initialized",
		"bucket", cfg.Upload.Bucket,
		"region", cfg.Upload.Region,
	)

	return uploader, nil
}

// ProvideEmbedGenerator provides the embed snippet generator.
func ProvideEmbedGenerator(i do.Injector) (*embed.Generator, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return embed.NewGenerator(cfg.Server.PublicURL), nil
}
