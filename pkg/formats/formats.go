// Package formats parses the Wavefront OBJ geometry and MTL material
// libraries the viewer loads.
//
// Parsing is pure: callers fetch the bytes, and the parsers never touch the
// file system or the GPU. Geometry comes out de-indexed and triangulated,
// grouped by object and then by material.
package formats

import (
	"bufio"
	"bytes"
)

// maxLineSize bounds a single OBJ or MTL line.
const maxLineSize = 1024 * 1024

func newScanner(data []byte) *bufio.Scanner {
	s := bufio.NewScanner(bytes.NewReader(data))
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return s
}
