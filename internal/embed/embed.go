package embed

import (
	_ "embed"
)

// Script is the embeddable editor client, served at /js/editorcraft-embed.js.
//
//go:embed static/editorcraft-embed.js
var Script []byte

// ScriptContentType is the Content-Type the script is served with.
const ScriptContentType = "application/javascript; charset=utf-8"
