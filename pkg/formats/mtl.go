package formats

import (
	"fmt"
	"strconv"
	"strings"
)

// Material is one newmtl record from a Wavefront material library.
// Pointer fields are nil when the directive was absent from the file;
// use the accessor methods to get values with defaults applied.
type Material struct {
	Name       string
	Diffuse    *[3]float32 // Kd
	Opacity    *float32    // d (or 1 - Tr)
	DiffuseMap string      // map_Kd, relative to the model directory
	Shininess  *float32    // Ns
	Ambient    *[3]float32 // Ka
	Specular   *[3]float32 // Ks
	Emissive   *[3]float32 // Ke
}

// DiffuseColor returns Kd, or opaque white when unset.
func (m *Material) DiffuseColor() [3]float32 {
	if m == nil || m.Diffuse == nil {
		return [3]float32{1, 1, 1}
	}
	return *m.Diffuse
}

// Alpha returns the opacity, defaulting to 1.0.
func (m *Material) Alpha() float32 {
	if m == nil || m.Opacity == nil {
		return 1
	}
	return *m.Opacity
}

// Transparent reports whether meshes using this material must be drawn
// after the opaque geometry.
func (m *Material) Transparent() bool {
	return m.Alpha() < 1
}

// SpecularColor returns Ks, or black when unset.
func (m *Material) SpecularColor() [3]float32 {
	if m == nil || m.Specular == nil {
		return [3]float32{}
	}
	return *m.Specular
}

// SpecularExponent returns Ns, defaulting to 1.
func (m *Material) SpecularExponent() float32 {
	if m == nil || m.Shininess == nil || *m.Shininess < 1 {
		return 1
	}
	return *m.Shininess
}

// ParseMTL parses a material library into a map keyed by material name.
// A later newmtl with the same name replaces the earlier record.
func ParseMTL(data []byte) (map[string]*Material, error) {
	materials := make(map[string]*Material)
	var cur *Material

	scanner := newScanner(data)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		keyword, args := splitDirective(scanner.Text())
		if keyword == "" {
			continue
		}

		if keyword == "newmtl" {
			name := strings.Join(args, " ")
			if name == "" {
				return nil, fmt.Errorf("mtl line %d: newmtl without a name", lineNo)
			}
			cur = &Material{Name: name}
			materials[name] = cur
			continue
		}

		if cur == nil {
			// Directives before the first newmtl have nothing to apply to.
			continue
		}

		var err error
		switch keyword {
		case "Kd":
			cur.Diffuse, err = parseColor(args)
		case "Ka":
			cur.Ambient, err = parseColor(args)
		case "Ks":
			cur.Specular, err = parseColor(args)
		case "Ke":
			cur.Emissive, err = parseColor(args)
		case "Ns":
			cur.Shininess, err = parseScalar(args)
		case "d":
			cur.Opacity, err = parseScalar(args)
		case "Tr":
			if cur.Opacity == nil {
				var tr *float32
				tr, err = parseScalar(args)
				if err == nil {
					d := 1 - *tr
					cur.Opacity = &d
				}
			}
		case "map_Kd":
			cur.DiffuseMap = strings.Join(args, " ")
		}
		if err != nil {
			return nil, fmt.Errorf("mtl line %d: %s: %w", lineNo, keyword, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan mtl: %w", err)
	}

	return materials, nil
}

// splitDirective trims comments and whitespace and splits a line into its
// keyword and arguments. Blank and comment lines return an empty keyword.
func splitDirective(line string) (string, []string) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}

func parseColor(args []string) (*[3]float32, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("expected 3 components, got %d", len(args))
	}
	var c [3]float32
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return nil, err
		}
		c[i] = float32(v)
	}
	return &c, nil
}

func parseScalar(args []string) (*float32, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("missing value")
	}
	v, err := strconv.ParseFloat(args[0], 32)
	if err != nil {
		return nil, err
	}
	f := float32(v)
	return &f, nil
}
