package api

import (
	"net/http"

	"github.com/editorcraftapp/editorcraft-server/internal/embed"
)

// registerAssetRoutes serves the embed client script referenced by every
// generated snippet.
func (s *Server) registerAssetRoutes() {
	s.router.Get("/js/editorcraft-embed.js", s.handleEmbedScript)
}

func (s *Server) handleEmbedScript(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", embed.ScriptContentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := w.Write(embed.Script); err != nil {
		s.logger.Error("failed to write embed script", "error", err)
	}
}
