package store

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ErrNotMapping is returned when a document's root is not a mapping.
var ErrNotMapping = errors.New("document root is not a mapping")

// File is a YAML document bound to its backing file.
type File struct {
	*Section

	fs   afero.Fs
	path string
}

// Load reads and parses the YAML file at path. An empty file yields an
// empty document.
func Load(fs afero.Fs, path string) (*File, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	sec, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &File{Section: sec, fs: fs, path: path}, nil
}

// Parse parses YAML data into a root section.
func Parse(data []byte) (*Section, error) {
	var doc yaml.Node

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if doc.Kind == 0 || len(doc.Content) == 0 {
		root := newMapping()
		doc = yaml.Node{Kind: yaml.DocumentNode, HeadComment: doc.HeadComment, Content: []*yaml.Node{root}}

		return &Section{node: root, doc: &doc}, nil
	}

	root := doc.Content[0]
	switch {
	case isNull(root):
		root = newMapping()
		doc.Content[0] = root
	case root.Kind != yaml.MappingNode:
		return nil, ErrNotMapping
	case len(root.Content) == 0:
		// an empty "{}" would otherwise keep flow style once keys are added
		root.Style = 0
	}

	return &Section{node: root, doc: &doc}, nil
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Save writes the document back to its file.
func (f *File) Save() error {
	data, err := Marshal(f.Section)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(f.fs, f.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", f.path, err)
	}

	return nil
}

// Marshal serializes a section, including head comments, to YAML.
func Marshal(s *Section) ([]byte, error) {
	node := s.node
	if s.doc != nil {
		node = s.doc
	}

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(node); err != nil {
		return nil, err
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
