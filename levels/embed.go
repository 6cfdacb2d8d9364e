// Package levels embeds the demo arenas shipped with the binary.
package levels

import _ "embed"

//go:embed arena.yaml
var Arena []byte
