// Package shaders embeds the GLSL sources of the scene programs.
package shaders

import "embed"

// FS holds every *.vert and *.frag file of this directory.
//
//go:embed *.vert *.frag
var FS embed.FS
