package appfs

import "embed"

// FS holds static assets baked into the binary.
//
//go:embed migrations
var FS embed.FS
