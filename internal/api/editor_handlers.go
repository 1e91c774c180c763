package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/editorcraftapp/editorcraft-server/internal/domain"
	"github.com/editorcraftapp/editorcraft-server/internal/service"
)

func (s *Server) registerEditorRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-configs",
		Method:      http.MethodGet,
		Path:        "/api/editors",
		Summary:     "List configurations",
		Description: "Returns the caller's editor configurations, newest first.",
		Tags:        []string{"Editors"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListConfigs)

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-config",
		Method:        http.MethodPost,
		Path:          "/api/editors",
		Summary:       "Create configuration",
		Description:   "Creates a named editor configuration and derives its embed snippet.",
		Tags:          []string{"Editors"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateConfig)

	huma.Register(s.api, huma.Operation{
		OperationID: "update-config",
		Method:      http.MethodPut,
		Path:        "/api/editors/{id}",
		Summary:     "Update configuration",
		Description: "Replaces name and configuration data, regenerating the embed snippet.",
		Tags:        []string{"Editors"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateConfig)

	huma.Register(s.api, huma.Operation{
		OperationID: "set-config-active",
		Method:      http.MethodPatch,
		Path:        "/api/editors/{id}",
		Summary:     "Toggle configuration visibility",
		Description: "Sets the is_active flag without touching configuration data.",
		Tags:        []string{"Editors"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSetConfigActive)

	huma.Register(s.api, huma.Operation{
		OperationID: "delete-config",
		Method:      http.MethodDelete,
		Path:        "/api/editors/{id}",
		Summary:     "Delete configuration",
		Description: "Deletes a configuration and all of its content snapshots.",
		Tags:        []string{"Editors"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteConfig)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-latest-content",
		Method:      http.MethodGet,
		Path:        "/api/editors/{id}/content",
		Summary:     "Latest content",
		Description: "Returns the newest content snapshot, or null if nothing has been saved.",
		Tags:        []string{"Content"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetLatestContent)

	huma.Register(s.api, huma.Operation{
		OperationID:   "save-content",
		Method:        http.MethodPost,
		Path:          "/api/editors/{id}/content",
		Summary:       "Save content",
		Description:   "Appends a new content snapshot with the next version number.",
		Tags:          []string{"Content"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleSaveContent)

	huma.Register(s.api, huma.Operation{
		OperationID: "list-content-versions",
		Method:      http.MethodGet,
		Path:        "/api/editors/{id}/content/versions",
		Summary:     "List content versions",
		Description: "Returns all content snapshots for a configuration, newest first.",
		Tags:        []string{"Content"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListContentVersions)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-content-version",
		Method:      http.MethodGet,
		Path:        "/api/editors/{id}/content/versions/{version}",
		Summary:     "Get content version",
		Description: "Returns one specific content snapshot.",
		Tags:        []string{"Content"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetContentVersion)
}

// === DTOs ===

// ConfigBody is the request body for creating or updating a configuration.
type ConfigBody struct {
	Name       string            `json:"name" doc:"Configuration name"`
	ConfigData domain.ConfigData `json:"configData" doc:"Editor rendering options"`
}

// CreateConfigInput wraps the config body for Huma.
type CreateConfigInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Body          ConfigBody
}

// UpdateConfigInput wraps the config body and path ID for Huma.
type UpdateConfigInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            string `path:"id" doc:"Configuration ID"`
	Body          ConfigBody
}

// SetActiveBody toggles a configuration's visibility.
type SetActiveBody struct {
	IsActive bool `json:"is_active" doc:"Whether the configuration is publicly visible"`
}

// SetActiveInput wraps the toggle body and path ID for Huma.
type SetActiveInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            string `path:"id" doc:"Configuration ID"`
	Body          SetActiveBody
}

// ConfigPathInput identifies a configuration by path.
type ConfigPathInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            string `path:"id" doc:"Configuration ID"`
}

// ConfigEnvelope wraps one configuration.
type ConfigEnvelope struct {
	Config *domain.EditorConfig `json:"config" doc:"Editor configuration"`
}

// ConfigOutput wraps the config envelope for Huma.
type ConfigOutput struct {
	Body ConfigEnvelope
}

// ConfigListEnvelope wraps a configuration list.
type ConfigListEnvelope struct {
	Configs []*domain.EditorConfig `json:"configs" doc:"Editor configurations, newest first"`
}

// ConfigListOutput wraps the config list for Huma.
type ConfigListOutput struct {
	Body ConfigListEnvelope
}

// ContentBody is the request body for saving content.
type ContentBody struct {
	ContentData any `json:"contentData" doc:"Opaque content document"`
}

// SaveContentInput wraps the content body and config ID for Huma.
type SaveContentInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            string `path:"id" doc:"Configuration ID"`
	Body          ContentBody
}

// SaveContentResponse reports the version assigned to a saved snapshot.
type SaveContentResponse struct {
	Message string `json:"message" doc:"Status message"`
	Version int64  `json:"version" doc:"Assigned version number"`
}

// SaveContentOutput wraps the save response for Huma.
type SaveContentOutput struct {
	Body SaveContentResponse
}

// ContentEnvelope wraps one content snapshot. Content is null when the
// configuration has no snapshots yet.
type ContentEnvelope struct {
	Content *domain.EditorContent `json:"content" doc:"Content snapshot, or null"`
}

// ContentOutput wraps the content envelope for Huma.
type ContentOutput struct {
	Body ContentEnvelope
}

// ContentListEnvelope wraps a version list.
type ContentListEnvelope struct {
	Versions []*domain.EditorContent `json:"versions" doc:"Content snapshots, newest first"`
}

// ContentListOutput wraps the version list for Huma.
type ContentListOutput struct {
	Body ContentListEnvelope
}

// VersionPathInput identifies one content version by path.
type VersionPathInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            string `path:"id" doc:"Configuration ID"`
	Version       int64  `path:"version" doc:"Version number"`
}

// === Handlers ===

func (s *Server) handleListConfigs(ctx context.Context, input *AuthenticatedInput) (*ConfigListOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	configs, err := s.services.Editor.ListConfigs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if configs == nil {
		configs = []*domain.EditorConfig{}
	}

	return &ConfigListOutput{Body: ConfigListEnvelope{Configs: configs}}, nil
}

func (s *Server) handleCreateConfig(ctx context.Context, input *CreateConfigInput) (*ConfigOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	cfg, err := s.services.Editor.CreateConfig(ctx, userID, service.SaveConfigRequest{
		Name:       input.Body.Name,
		ConfigData: input.Body.ConfigData,
	})
	if err != nil {
		return nil, err
	}

	return &ConfigOutput{Body: ConfigEnvelope{Config: cfg}}, nil
}

func (s *Server) handleUpdateConfig(ctx context.Context, input *UpdateConfigInput) (*ConfigOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	cfg, err := s.services.Editor.UpdateConfig(ctx, userID, input.ID, service.SaveConfigRequest{
		Name:       input.Body.Name,
		ConfigData: input.Body.ConfigData,
	})
	if err != nil {
		return nil, err
	}

	return &ConfigOutput{Body: ConfigEnvelope{Config: cfg}}, nil
}

func (s *Server) handleSetConfigActive(ctx context.Context, input *SetActiveInput) (*ConfigOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	cfg, err := s.services.Editor.SetActive(ctx, userID, input.ID, input.Body.IsActive)
	if err != nil {
		return nil, err
	}

	return &ConfigOutput{Body: ConfigEnvelope{Config: cfg}}, nil
}

func (s *Server) handleDeleteConfig(ctx context.Context, input *ConfigPathInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Editor.DeleteConfig(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Configuration deleted successfully"}}, nil
}

func (s *Server) handleGetLatestContent(ctx context.Context, input *ConfigPathInput) (*ContentOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	content, err := s.services.Content.GetLatestContent(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &ContentOutput{Body: ContentEnvelope{Content: content}}, nil
}

func (s *Server) handleSaveContent(ctx context.Context, input *SaveContentInput) (*SaveContentOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	version, err := s.services.Content.SaveContent(ctx, userID, input.ID, service.SaveContentRequest{
		ContentData: input.Body.ContentData,
	})
	if err != nil {
		return nil, err
	}

	return &SaveContentOutput{
		Body: SaveContentResponse{
			Message: "Content saved successfully",
			Version: version,
		},
	}, nil
}

func (s *Server) handleListContentVersions(ctx context.Context, input *ConfigPathInput) (*ContentListOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	versions, err := s.services.Content.ListVersions(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}
	if versions == nil {
		versions = []*domain.EditorContent{}
	}

	return &ContentListOutput{Body: ContentListEnvelope{Versions: versions}}, nil
}

func (s *Server) handleGetContentVersion(ctx context.Context, input *VersionPathInput) (*ContentOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	content, err := s.services.Content.GetVersion(ctx, userID, input.ID, input.Version)
	if err != nil {
		return nil, err
	}

	return &ContentOutput{Body: ContentEnvelope{Content: content}}, nil
}
