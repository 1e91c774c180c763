package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/editorcraftapp/editorcraft-server/internal/domain"
)

func (s *Server) registerConfigRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-public-config",
		Method:      http.MethodGet,
		Path:        "/api/configs/{id}",
		Summary:     "Public configuration",
		Description: "Returns an active configuration for third-party embedding. No authentication.",
		Tags:        []string{"Public"},
	}, s.handleGetPublicConfig)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-embed-code",
		Method:      http.MethodGet,
		Path:        "/api/configs/{id}/embed",
		Summary:     "Embed snippet",
		Description: "Returns the embed snippet for an active configuration. No authentication.",
		Tags:        []string{"Public"},
	}, s.handleGetEmbedCode)
}

// === DTOs ===

// PublicConfigPathInput identifies a configuration by path, no auth.
type PublicConfigPathInput struct {
	ID string `path:"id" doc:"Configuration ID"`
}

// PublicConfigEnvelope wraps the public projection of a configuration.
type PublicConfigEnvelope struct {
	Config *domain.PublicConfig `json:"config" doc:"Public configuration"`
}

// PublicConfigOutput wraps the public config envelope for Huma.
type PublicConfigOutput struct {
	Body PublicConfigEnvelope
}

// EmbedCodeEnvelope wraps an embed snippet.
type EmbedCodeEnvelope struct {
	EmbedCode string `json:"embedCode" doc:"Embed snippet markup"`
}

// EmbedCodeOutput wraps the embed snippet envelope for Huma.
type EmbedCodeOutput struct {
	Body EmbedCodeEnvelope
}

// === Handlers ===

func (s *Server) handleGetPublicConfig(ctx context.Context, input *PublicConfigPathInput) (*PublicConfigOutput, error) {
	cfg, err := s.services.Editor.GetPublicConfig(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &PublicConfigOutput{Body: PublicConfigEnvelope{Config: cfg}}, nil
}

func (s *Server) handleGetEmbedCode(ctx context.Context, input *PublicConfigPathInput) (*EmbedCodeOutput, error) {
	code, err := s.services.Editor.GetEmbedCode(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &EmbedCodeOutput{Body: EmbedCodeEnvelope{EmbedCode: code}}, nil
}
