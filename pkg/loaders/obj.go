package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// LoadOBJ loads a Wavefront OBJ file
func LoadOBJ(filename string) (*MeshData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	mesh, err := ParseOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OBJ file %s: %w", filename, err)
	}
	return mesh, nil
}

// ParseOBJ reads vertex positions ("v") and faces ("f") from OBJ text.
// Faces may use the v/vt/vn forms and negative indices; polygons with more
// than three corners are fan triangulated. All other statements are ignored.
func ParseOBJ(r io.Reader) (*MeshData, error) {
	mesh := &MeshData{}
	scanner := bufio.NewScanner(r)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNumber)
			}
			var coords [3]float64
			for i := range coords {
				value, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid vertex coordinate %q: %w", lineNumber, fields[i+1], err)
				}
				coords[i] = value
			}
			mesh.Positions = append(mesh.Positions, core.NewVec3(coords[0], coords[1], coords[2]))

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNumber)
			}
			polygon := make([]int, 0, len(fields)-1)
			for _, field := range fields[1:] {
				index, err := parseOBJIndex(field, len(mesh.Positions))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNumber, err)
				}
				polygon = append(polygon, index)
			}
			mesh.Indices = fan(mesh.Indices, polygon)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if err := mesh.validate(); err != nil {
		return nil, err
	}
	mesh.computeFaceNormals()
	return mesh, nil
}

// parseOBJIndex converts a face corner such as "3", "3/1" or "-1//2" to a
// 0-based vertex index.
func parseOBJIndex(field string, vertexCount int) (int, error) {
	if slash := strings.IndexByte(field, '/'); slash >= 0 {
		field = field[:slash]
	}
	index, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("invalid face index %q: %w", field, err)
	}
	switch {
	case index > 0:
		return index - 1, nil
	case index < 0:
		return vertexCount + index, nil
	default:
		return 0, fmt.Errorf("face index 0 is not valid")
	}
}
