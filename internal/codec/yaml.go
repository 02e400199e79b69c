package codec

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/barrage-tui/barrage/internal/pattern"
)

// MarshalYAML renders a pattern tree as YAML.
func MarshalYAML(p pattern.Pattern) ([]byte, error) {
	doc, err := encode(p)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

// UnmarshalYAML rebuilds a pattern tree from YAML. Documents use the same
// field names as the JSON form.
func UnmarshalYAML(data []byte) (pattern.Pattern, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: type", ErrMissingField)
	}
	return build(normalizeYAML(doc).(map[string]any))
}

// DecodeYAML rebuilds a pattern tree from YAML read from r.
func DecodeYAML(r io.Reader) (pattern.Pattern, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return UnmarshalYAML(data)
}

// EncodeYAML writes a pattern tree as YAML to w.
func EncodeYAML(w io.Writer, p pattern.Pattern) error {
	data, err := MarshalYAML(p)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// normalizeYAML rewrites yaml.v3's map[string]any / []any values so the
// shared builder sees the same shapes the JSON decoder produces. yaml.v3
// already yields string keys for string-keyed maps; only nesting needs the
// walk.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeYAML(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalizeYAML(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeYAML(item)
		}
		return out
	default:
		return v
	}
}
