package main

import "embed"

//go:embed static
var staticFiles embed.FS

//go:embed snippets/apl.json
var bundledSnippets []byte
