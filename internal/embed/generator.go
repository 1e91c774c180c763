// Package embed generates the copy-paste snippet for embedding an editor
// into a third-party page, and serves the client script it references.
package embed

import (
	"encoding/json/jsontext"
	"encoding/json/v2"
	"fmt"
	"strings"

	"github.com/editorcraftapp/editorcraft-server/internal/domain"
)

// Generator builds embed snippets for editor configurations.
type Generator struct {
	baseURL string
}

// NewGenerator creates a generator. baseURL is the public address of this
// server, without a trailing slash; the snippet loads the client script from it.
func NewGenerator(baseURL string) *Generator {
	return &Generator{baseURL: strings.TrimRight(baseURL, "/")}
}

// Generate returns the embed snippet for the given configuration data.
// The snippet contains the configuration as an inline JSON literal, so it
// only changes when the configuration does. Angle brackets and ampersands
// in values are emitted as JSON escape sequences so the literal cannot
// close the surrounding <script> block.
func (g *Generator) Generate(data domain.ConfigData) (string, error) {
	encoded, err := json.Marshal(data,
		json.Deterministic(true),
		jsontext.EscapeForHTML(true),
		jsontext.EscapeForJS(true),
	)
	if err != nil {
		return "", fmt.Errorf("encode config data: %w", err)
	}

	return fmt.Sprintf(`
<script src="%s/js/editorcraft-embed.js"></script>
<div id="editorcraft-container"></div>
<script>
  EditorCraft.init({
    containerId: 'editorcraft-container',
    config: %s
  });
</script>`, g.baseURL, encoded), nil
}
