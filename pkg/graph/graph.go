package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/kintree/pkg/core/family"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a family graph to bytes in the given format.
// People are sorted by ID for deterministic output.
func MarshalGraph(g *family.Graph, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(g, &buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraphFile writes a family graph to path, choosing the format from the
// file extension. The file is created with 0644 permissions.
func WriteGraphFile(g *family.Graph, path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()
	return writeGraphTo(g, out, f)
}

// WriteGraph writes a family graph to an io.Writer in the given format.
func WriteGraph(g *family.Graph, w io.Writer, f Format) error {
	return writeGraphTo(g, w, f)
}

// ReadGraphFile reads a graph file, choosing the decoder from the file
// extension, and returns the decoded family graph.
func ReadGraphFile(path string) (*family.Graph, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer in.Close()
	return readGraphFrom(in, f)
}

// ReadGraph decodes a graph in the given format from an io.Reader.
func ReadGraph(r io.Reader, f Format) (*family.Graph, error) {
	return readGraphFrom(r, f)
}

// UnmarshalGraph decodes bytes into the interchange Graph without building
// a family graph.
func UnmarshalGraph(data []byte, f Format) (Graph, error) {
	return decode(bytes.NewReader(data), f)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeGraphTo(g *family.Graph, w io.Writer, f Format) error {
	out := FromFamily(g)
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(out); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	default:
		return fmt.Errorf("unsupported graph format %q", f)
	}
	return nil
}

func readGraphFrom(r io.Reader, f Format) (*family.Graph, error) {
	data, err := decode(r, f)
	if err != nil {
		return nil, err
	}
	return ToFamily(data)
}

func decode(r io.Reader, f Format) (Graph, error) {
	var data Graph
	var err error
	switch f {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&data)
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&data)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&data)
		if err == io.EOF {
			err = nil
		}
	default:
		return Graph{}, fmt.Errorf("unsupported graph format %q", f)
	}
	if err != nil {
		return Graph{}, fmt.Errorf("decode %s: %w", f, err)
	}
	return data, nil
}
