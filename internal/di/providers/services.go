package providers

import (
	"github.com/samber/do/v2"

	"github.com/editorcraftapp/editorcraft-server/internal/auth"
	"github.com/editorcraftapp/editorcraft-server/internal/blob"
	"github.com/editorcraftapp/editorcraft-server/internal/config"
	"github.com/editorcraftapp/editorcraft-server/internal/embed"
	"github.com/editorcraftapp/editorcraft-server/internal/logger"
	"github.com/editorcraftapp/editorcraft-server/internal/service"
)

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, log.Logger), nil
}

// ProvideEditorService provides the editor configuration service.
func ProvideEditorService(i do.Injector) (*service.EditorService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	generator := do.MustInvoke[*embed.Generator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewEditorService(storeHandle.Store, generator, log.Logger), nil
}

// ProvideContentService provides the content snapshot service.
func ProvideContentService(i do.Injector) (*service.ContentService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	editorService := do.MustInvoke[*service.EditorService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewContentService(storeHandle.Store, editorService, log.Logger), nil
}

// ProvideUploadService provides the image upload relay service.
func ProvideUploadService(i do.Injector) (*service.UploadService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	uploader := do.MustInvoke[*blob.Uploader](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewUploadService(uploader, cfg.Upload.MaxFileSize, cfg.Upload.MaxBatchSize, log.Logger), nil
}
