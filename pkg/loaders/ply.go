package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// ErrInvalidPLY is returned for malformed or unsupported PLY files
var ErrInvalidPLY = errors.New("loaders: invalid PLY file")

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version  string // Usually "1.0"
	Elements []PLYElement
}

// PLYElement is one element declaration with its properties, in file order
type PLYElement struct {
	Name       string
	Count      int
	Properties []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
}

// PLYData contains the geometry loaded from a PLY file
type PLYData struct {
	Vertices []core.Vec3 // Vertex positions (x, y, z)
	Faces    []int       // Triangle indices (3 per triangle), polygons are fan triangulated
}

// TriangleCount returns the number of triangles
func (d *PLYData) TriangleCount() int {
	return len(d.Faces) / 3
}

// LoadPLY loads a PLY file and returns its vertices and triangles
func LoadPLY(filename string) (*PLYData, error) {
	startTime := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	data, err := ReadPLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	logger.Infof("loaded %s: %d vertices, %d triangles in %v",
		filename, len(data.Vertices), data.TriangleCount(), time.Since(startTime))
	return data, nil
}

// ReadPLY parses PLY data in ascii, binary little endian or binary big endian format
func ReadPLY(r io.Reader) (*PLYData, error) {
	reader := bufio.NewReaderSize(r, 1<<20)
	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, err
	}

	var values valueReader
	switch header.Format {
	case "ascii":
		values = &asciiReader{reader: reader}
	case "binary_little_endian":
		values = &binaryReader{reader: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryReader{reader: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidPLY, header.Format)
	}

	data := &PLYData{}
	for _, element := range header.Elements {
		switch element.Name {
		case "vertex":
			err = readVertices(values, element, data)
		case "face":
			err = readFaces(values, element, data)
		default:
			err = skipElement(values, element)
		}
		if err != nil {
			return nil, err
		}
	}

	for i, index := range data.Faces {
		if index < 0 || index >= len(data.Vertices) {
			return nil, fmt.Errorf("%w: face index %d out of range at position %d", ErrInvalidPLY, index, i)
		}
	}
	return data, nil
}

// parsePLYHeader reads header lines up to end_header, leaving the reader at the first data byte
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}
	first := true

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("%w: header ended early: %v", ErrInvalidPLY, err)
		}
		line = strings.TrimSpace(line)

		if first {
			if line != "ply" {
				return nil, fmt.Errorf("%w: missing magic number", ErrInvalidPLY)
			}
			first = false
			continue
		}
		if line == "end_header" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: bad format line %q", ErrInvalidPLY, line)
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "comment", "obj_info":
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: bad element line %q", ErrInvalidPLY, line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("%w: invalid element count %q", ErrInvalidPLY, parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("%w: property before any element", ErrInvalidPLY)
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			current := &header.Elements[len(header.Elements)-1]
			current.Properties = append(current.Properties, prop)
		}
	}

	if header.Format == "" {
		return nil, fmt.Errorf("%w: missing format line", ErrInvalidPLY)
	}
	return header, nil
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("%w: invalid property definition", ErrInvalidPLY)
	}
	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("%w: invalid list property definition", ErrInvalidPLY)
		}
		return PLYProperty{IsList: true, ListType: parts[1], Type: parts[2], Name: parts[3]}, nil
	}
	return PLYProperty{Type: parts[0], Name: parts[1]}, nil
}

func readVertices(values valueReader, element PLYElement, data *PLYData) error {
	data.Vertices = make([]core.Vec3, 0, element.Count)
	for i := 0; i < element.Count; i++ {
		var position [3]float64
		for _, prop := range element.Properties {
			if prop.IsList {
				if err := skipList(values, prop); err != nil {
					return err
				}
				continue
			}
			v, err := values.scalar(prop.Type)
			if err != nil {
				return fmt.Errorf("%w: vertex %d: %v", ErrInvalidPLY, i, err)
			}
			switch prop.Name {
			case "x":
				position[0] = v
			case "y":
				position[1] = v
			case "z":
				position[2] = v
			}
		}
		data.Vertices = append(data.Vertices, core.NewVec3(position[0], position[1], position[2]))
	}
	return values.endRecord()
}

func readFaces(values valueReader, element PLYElement, data *PLYData) error {
	data.Faces = make([]int, 0, element.Count*3)
	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Properties {
			if !prop.IsList || (prop.Name != "vertex_indices" && prop.Name != "vertex_index") {
				if err := skipProperty(values, prop); err != nil {
					return err
				}
				continue
			}

			n, err := values.scalar(prop.ListType)
			if err != nil {
				return fmt.Errorf("%w: face %d: %v", ErrInvalidPLY, i, err)
			}
			if n < 3 {
				return fmt.Errorf("%w: face %d has %v vertices", ErrInvalidPLY, i, n)
			}
			indices := make([]int, int(n))
			for j := range indices {
				v, err := values.scalar(prop.Type)
				if err != nil {
					return fmt.Errorf("%w: face %d: %v", ErrInvalidPLY, i, err)
				}
				indices[j] = int(v)
			}
			// Fan triangulation
			for j := 1; j+1 < len(indices); j++ {
				data.Faces = append(data.Faces, indices[0], indices[j], indices[j+1])
			}
		}
	}
	return values.endRecord()
}

func skipElement(values valueReader, element PLYElement) error {
	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Properties {
			if err := skipProperty(values, prop); err != nil {
				return err
			}
		}
	}
	return values.endRecord()
}

func skipProperty(values valueReader, prop PLYProperty) error {
	if prop.IsList {
		return skipList(values, prop)
	}
	_, err := values.scalar(prop.Type)
	return err
}

func skipList(values valueReader, prop PLYProperty) error {
	n, err := values.scalar(prop.ListType)
	if err != nil {
		return err
	}
	for j := 0; j < int(n); j++ {
		if _, err := values.scalar(prop.Type); err != nil {
			return err
		}
	}
	return nil
}

// valueReader reads scalar values of a PLY type in file order
type valueReader interface {
	scalar(plyType string) (float64, error)
	endRecord() error
}

type binaryReader struct {
	reader *bufio.Reader
	order  binary.ByteOrder
	buf    [8]byte
}

func (b *binaryReader) scalar(plyType string) (float64, error) {
	size := plyTypeSize(plyType)
	if size == 0 {
		return 0, fmt.Errorf("%w: unknown property type %q", ErrInvalidPLY, plyType)
	}
	if _, err := io.ReadFull(b.reader, b.buf[:size]); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPLY, err)
	}
	raw := b.buf[:size]

	switch plyType {
	case "char", "int8":
		return float64(int8(raw[0])), nil
	case "uchar", "uint8":
		return float64(raw[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(raw))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(raw)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(raw))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(raw)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(raw))), nil
	default: // double, float64
		return math.Float64frombits(b.order.Uint64(raw)), nil
	}
}

func (b *binaryReader) endRecord() error {
	return nil
}

// asciiReader reads whitespace-separated tokens
type asciiReader struct {
	reader *bufio.Reader
	tokens []string
}

func (a *asciiReader) scalar(plyType string) (float64, error) {
	if plyTypeSize(plyType) == 0 {
		return 0, fmt.Errorf("%w: unknown property type %q", ErrInvalidPLY, plyType)
	}
	for len(a.tokens) == 0 {
		line, err := a.reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return 0, fmt.Errorf("%w: %v", ErrInvalidPLY, err)
		}
		a.tokens = strings.Fields(line)
	}
	token := a.tokens[0]
	a.tokens = a.tokens[1:]
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad value %q", ErrInvalidPLY, token)
	}
	return v, nil
}

func (a *asciiReader) endRecord() error {
	a.tokens = nil
	return nil
}

func plyTypeSize(plyType string) int {
	switch plyType {
	case "char", "int8", "uchar", "uint8":
		return 1
	case "short", "int16", "ushort", "uint16":
		return 2
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	}
	return 0
}
