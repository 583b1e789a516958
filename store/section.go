package store

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when nothing is stored at a path.
var ErrNotFound = errors.New("path not found")

const (
	tagMap  = "!!map"
	tagStr  = "!!str"
	tagNull = "!!null"
)

// Section is a mapping node of a YAML document addressed by dotted paths.
// Sections returned by Section share nodes with their parent, so writes
// through a child are visible from the root document.
type Section struct {
	node *yaml.Node
	doc  *yaml.Node // document node, set only for the root of a loaded file
}

// NewSection creates an empty detached section.
func NewSection() *Section {
	return &Section{node: newMapping()}
}

func newMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: tagMap}
}

func newKey(key string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tagStr, Value: key}
}

// resolve follows alias nodes to their anchors.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}

	return n
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.ShortTag() == tagNull)
}

// indexOf returns the position of key's key node in mapping m.
func indexOf(m *yaml.Node, key string) (int, bool) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return i, true
		}
	}

	return -1, false
}

// lookup walks path and returns the mapping holding the last key together
// with the index of that key inside the mapping.
func (s *Section) lookup(path string) (*yaml.Node, int, bool) {
	keys, err := ParsePath(path)
	if err != nil {
		return nil, -1, false
	}

	m := resolve(s.node)
	for i, key := range keys {
		if m == nil || m.Kind != yaml.MappingNode {
			return nil, -1, false
		}

		idx, ok := indexOf(m, key)
		if !ok {
			return nil, -1, false
		}

		if i == len(keys)-1 {
			return m, idx, true
		}

		m = resolve(m.Content[idx+1])
	}

	return nil, -1, false
}

// Node returns the value node stored at path, following aliases.
func (s *Section) Node(path string) (*yaml.Node, bool) {
	m, idx, ok := s.lookup(path)
	if !ok {
		return nil, false
	}

	n := resolve(m.Content[idx+1])
	if isNull(n) {
		return nil, false
	}

	return n, true
}

// Get returns the raw value stored at path. Mappings decode to
// map[string]any and sequences to []any. A null value counts as absent.
func (s *Section) Get(path string) (any, bool) {
	n, ok := s.Node(path)
	if !ok {
		return nil, false
	}

	var v any
	if err := n.Decode(&v); err != nil {
		return nil, false
	}

	return v, true
}

// GetDefault returns the raw value stored at path or def when absent.
func (s *Section) GetDefault(path string, def any) any {
	if v, ok := s.Get(path); ok {
		return v
	}

	return def
}

// Decode decodes the value stored at path into out.
func (s *Section) Decode(path string, out any) error {
	n, ok := s.Node(path)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	if err := n.Decode(out); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	return nil
}

// Contains reports whether a non-null value is stored at path.
func (s *Section) Contains(path string) bool {
	_, ok := s.Node(path)
	return ok
}

// IsList reports whether a sequence is stored at path.
func (s *Section) IsList(path string) bool {
	n, ok := s.Node(path)
	return ok && n.Kind == yaml.SequenceNode
}

// IsSection reports whether a mapping is stored at path.
func (s *Section) IsSection(path string) bool {
	n, ok := s.Node(path)
	return ok && n.Kind == yaml.MappingNode
}

// Set encodes v and stores it at path, creating intermediate sections and
// replacing non-mapping values on the way. A nil v removes the path.
func (s *Section) Set(path string, v any) error {
	if v == nil {
		s.Remove(path)
		return nil
	}

	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return fmt.Errorf("encoding value for %s: %w", path, err)
	}

	return s.setNode(path, &n)
}

func (s *Section) setNode(path string, n *yaml.Node) error {
	keys, err := ParsePath(path)
	if err != nil {
		return err
	}

	m := resolve(s.node)
	for i, key := range keys {
		idx, ok := indexOf(m, key)

		if i == len(keys)-1 {
			if !ok {
				m.Content = append(m.Content, newKey(key), n)
				return nil
			}

			old := m.Content[idx+1]
			if n.LineComment == "" {
				n.LineComment = old.LineComment
			}
			m.Content[idx+1] = n

			return nil
		}

		if !ok {
			next := newMapping()
			m.Content = append(m.Content, newKey(key), next)
			m = next

			continue
		}

		next := resolve(m.Content[idx+1])
		if next == nil || next.Kind != yaml.MappingNode {
			next = newMapping()
			m.Content[idx+1] = next
		}
		m = next
	}

	return nil
}

// Remove deletes path and reports whether anything was stored there.
func (s *Section) Remove(path string) bool {
	m, idx, ok := s.lookup(path)
	if !ok {
		return false
	}

	m.Content = append(m.Content[:idx], m.Content[idx+2:]...)

	return true
}

// Section returns the mapping stored at path as a section view.
func (s *Section) Section(path string) (*Section, bool) {
	n, ok := s.Node(path)
	if !ok || n.Kind != yaml.MappingNode {
		return nil, false
	}

	return &Section{node: n}, true
}

// CreateSection returns the mapping at path, replacing whatever else is
// stored there with an empty one.
func (s *Section) CreateSection(path string) (*Section, error) {
	if sec, ok := s.Section(path); ok {
		return sec, nil
	}

	n := newMapping()
	if err := s.setNode(path, n); err != nil {
		return nil, err
	}

	return &Section{node: n}, nil
}

// Keys returns the direct child keys in document order.
func (s *Section) Keys() []string {
	m := resolve(s.node)
	keys := make([]string, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		keys = append(keys, m.Content[i].Value)
	}

	return keys
}

// Len returns the number of direct children.
func (s *Section) Len() int {
	return len(resolve(s.node).Content) / 2
}

// Values returns the direct children decoded to raw values. Nested
// mappings are kept as map[string]any rather than flattened.
func (s *Section) Values() map[string]any {
	m := resolve(s.node)
	values := make(map[string]any, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		n := resolve(m.Content[i+1])
		if isNull(n) {
			values[m.Content[i].Value] = nil
			continue
		}

		var v any
		if err := n.Decode(&v); err == nil {
			values[m.Content[i].Value] = v
		}
	}

	return values
}

// SetComment renders lines as the head comment of the key at path.
func (s *Section) SetComment(path string, lines []string) error {
	m, idx, ok := s.lookup(path)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	m.Content[idx].HeadComment = formatComment(lines)

	return nil
}

// Comment returns the head comment lines of the key at path.
func (s *Section) Comment(path string) []string {
	text := s.headComment(path)
	if text == "" {
		return nil
	}

	return parseComment(text)
}

// HasComment reports whether the key at path carries a head comment.
func (s *Section) HasComment(path string) bool {
	return s.headComment(path) != ""
}

// CommentMatches reports whether the key at path carries exactly the comment
// SetComment would render for lines.
func (s *Section) CommentMatches(path string, lines []string) bool {
	text := s.headComment(path)
	if text == "" {
		return len(lines) == 0
	}

	return slices.Equal(parseComment(text), parseComment(formatComment(lines)))
}

// headComment returns the comment above the key at path. The parser
// attaches a comment above the first key of a mapping to the mapping or
// document itself, so those count too.
func (s *Section) headComment(path string) string {
	m, idx, ok := s.lookup(path)
	if !ok {
		return ""
	}

	if text := m.Content[idx].HeadComment; text != "" || idx != 0 {
		return text
	}

	if m.HeadComment != "" {
		return m.HeadComment
	}

	if s.doc != nil && m == resolve(s.node) {
		return s.doc.HeadComment
	}

	return ""
}

func formatComment(lines []string) string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			out = append(out, "#")
			continue
		}
		out = append(out, "# "+line)
	}

	return strings.Join(out, "\n")
}

func parseComment(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimPrefix(strings.TrimSpace(line), "#")
		lines = append(lines, strings.TrimPrefix(line, " "))
	}

	return lines
}
