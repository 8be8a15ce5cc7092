package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

const (
	// maxPLYElementCount bounds the element counts accepted from a header
	maxPLYElementCount = 1 << 24
	// maxPLYListCount bounds the length of one list property, such as a face
	maxPLYListCount = 1 << 16
	// maxPLYPrealloc caps slice preallocation from header counts
	maxPLYPrealloc = 1 << 16
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format      string // "ascii", "binary_little_endian" or "binary_big_endian"
	Version     string
	Elements    []PLYElement
	VertexCount int
	FaceCount   int
}

// PLYElement is one "element" block of the header with its properties
type PLYElement struct {
	Name       string
	Count      int
	Properties []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string // Scalar type, or the item type of a list
	IsList   bool
	ListType string // For list properties, the type of the count
}

// LoadPLY loads a PLY file
func LoadPLY(filename string) (*MeshData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	mesh, err := ParsePLY(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY file %s: %w", filename, err)
	}
	return mesh, nil
}

// ParsePLY reads vertex positions and faces from ASCII or binary PLY data.
// Only the x, y, z vertex properties and the vertex index list of faces are
// kept; polygons are fan triangulated.
func ParsePLY(r io.Reader) (*MeshData, error) {
	reader := bufio.NewReader(r)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var source plyValueReader
	switch header.Format {
	case "ascii":
		scanner := bufio.NewScanner(reader)
		scanner.Split(bufio.ScanWords)
		source = &plyASCIIReader{scanner: scanner}
	case "binary_little_endian":
		source = &plyBinaryReader{reader: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		source = &plyBinaryReader{reader: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %s", header.Format)
	}

	mesh := &MeshData{
		Positions: make([]core.Vec3, 0, min(header.VertexCount, maxPLYPrealloc)),
		Indices:   make([]int, 0, min(header.FaceCount, maxPLYPrealloc)*3),
	}
	for _, element := range header.Elements {
		for i := 0; i < element.Count; i++ {
			if err := readPLYElement(source, element, mesh); err != nil {
				return nil, fmt.Errorf("failed to read %s %d: %w", element.Name, i, err)
			}
		}
	}

	if err := mesh.validate(); err != nil {
		return nil, err
	}
	mesh.computeFaceNormals()
	return mesh, nil
}

// parsePLYHeader reads the header up to and including "end_header"
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}
	first := true

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("unexpected end of header: %w", err)
		}
		parts := strings.Fields(line)
		if first {
			if len(parts) != 1 || parts[0] != "ply" {
				return nil, fmt.Errorf("missing ply magic number")
			}
			first = false
			continue
		}
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			if header.Format == "" {
				return nil, fmt.Errorf("missing format line")
			}
			return header, nil
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid format line: %q", strings.TrimSpace(line))
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line: %q", strings.TrimSpace(line))
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			if count > maxPLYElementCount {
				return nil, fmt.Errorf("element count %d exceeds limit %d", count, maxPLYElementCount)
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
			switch parts[1] {
			case "vertex":
				header.VertexCount = count
			case "face":
				header.FaceCount = count
			}
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("property before any element")
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			element := &header.Elements[len(header.Elements)-1]
			element.Properties = append(element.Properties, prop)
		}
	}
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("invalid property definition")
	}
	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("invalid list property definition")
		}
		return PLYProperty{IsList: true, ListType: parts[1], Type: parts[2], Name: parts[3]}, nil
	}
	return PLYProperty{Type: parts[0], Name: parts[1]}, nil
}

// readPLYElement reads one element instance, keeping what the mesh needs
func readPLYElement(source plyValueReader, element PLYElement, mesh *MeshData) error {
	var position core.Vec3
	for _, prop := range element.Properties {
		if prop.IsList {
			count, err := source.read(prop.ListType)
			if err != nil {
				return err
			}
			if count < 0 || count > maxPLYListCount || count != math.Trunc(count) {
				return fmt.Errorf("invalid list count %v for %s", count, prop.Name)
			}
			polygon := make([]int, int(count))
			for j := range polygon {
				value, err := source.read(prop.Type)
				if err != nil {
					return err
				}
				polygon[j] = int(value)
			}
			if element.Name == "face" && (prop.Name == "vertex_indices" || prop.Name == "vertex_index") {
				if len(polygon) < 3 {
					return fmt.Errorf("face has only %d vertices", len(polygon))
				}
				mesh.Indices = fan(mesh.Indices, polygon)
			}
			continue
		}

		value, err := source.read(prop.Type)
		if err != nil {
			return err
		}
		if element.Name == "vertex" {
			switch prop.Name {
			case "x":
				position.X = value
			case "y":
				position.Y = value
			case "z":
				position.Z = value
			}
		}
	}

	if element.Name == "vertex" {
		mesh.Positions = append(mesh.Positions, position)
	}
	return nil
}

// plyValueReader reads one scalar of the named PLY type
type plyValueReader interface {
	read(plyType string) (float64, error)
}

type plyASCIIReader struct {
	scanner *bufio.Scanner
}

func (r *plyASCIIReader) read(plyType string) (float64, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	value, err := strconv.ParseFloat(r.scanner.Text(), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", plyType, r.scanner.Text(), err)
	}
	return value, nil
}

type plyBinaryReader struct {
	reader io.Reader
	order  binary.ByteOrder
	buf    [8]byte
}

func (r *plyBinaryReader) read(plyType string) (float64, error) {
	size, err := plyTypeSize(plyType)
	if err != nil {
		return 0, err
	}
	b := r.buf[:size]
	if _, err := io.ReadFull(r.reader, b); err != nil {
		return 0, err
	}

	switch plyType {
	case "char", "int8":
		return float64(int8(b[0])), nil
	case "uchar", "uint8":
		return float64(b[0]), nil
	case "short", "int16":
		return float64(int16(r.order.Uint16(b))), nil
	case "ushort", "uint16":
		return float64(r.order.Uint16(b)), nil
	case "int", "int32":
		return float64(int32(r.order.Uint32(b))), nil
	case "uint", "uint32":
		return float64(r.order.Uint32(b)), nil
	case "float", "float32":
		return float64(math.Float32frombits(r.order.Uint32(b))), nil
	default: // double, float64
		return math.Float64frombits(r.order.Uint64(b)), nil
	}
}

// plyTypeSize returns the size in bytes of a PLY scalar type
func plyTypeSize(plyType string) (int, error) {
	switch plyType {
	case "char", "int8", "uchar", "uint8":
		return 1, nil
	case "short", "int16", "ushort", "uint16":
		return 2, nil
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4, nil
	case "double", "float64":
		return 8, nil
	default:
		return 0, fmt.Errorf("unsupported property type: %s", plyType)
	}
}
