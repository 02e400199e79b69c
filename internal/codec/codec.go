// Package codec serializes pattern trees to tagged documents and rebuilds
// them. Every document carries a "type" tag naming the variant plus that
// variant's construction parameters; combinators nest their children under
// "pattern" or "patterns". JSON is the primary format; a YAML front-end
// shares the same generic document builder.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/barrage-tui/barrage/internal/geom"
	"github.com/barrage-tui/barrage/internal/pattern"
)

// Decode error kinds. Construction failures surface as
// pattern.ErrInvalidArgument wrapped with the offending document path.
var (
	// ErrMalformed marks input that does not parse as a document at all.
	ErrMalformed = errors.New("codec: malformed document")

	// ErrMissingField marks a document lacking a required field, including
	// the "type" tag itself.
	ErrMissingField = errors.New("codec: missing field")

	// ErrUnknownVariant marks an unrecognized "type" tag.
	ErrUnknownVariant = errors.New("codec: unknown pattern type")
)

// Variant tags as they appear in documents.
const (
	tagSingleShot = "single_shot"
	tagBurst      = "burst"
	tagSpread     = "spread"
	tagRing       = "ring"
	tagSpiral     = "spiral"
	tagAimed      = "aimed"
	tagWave       = "wave"
	tagSequence   = "sequence"
	tagParallel   = "parallel"
	tagRepeat     = "repeat"
	tagLoop       = "loop"
	tagRotating   = "rotating"
)

// Marshal renders a pattern tree as JSON.
func Marshal(p pattern.Pattern) ([]byte, error) {
	doc, err := encode(p)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Unmarshal rebuilds a pattern tree from JSON.
func Unmarshal(data []byte) (pattern.Pattern, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return build(doc)
}

// Encode writes a pattern tree as JSON to w.
func Encode(w io.Writer, p pattern.Pattern) error {
	data, err := Marshal(p)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Decode rebuilds a pattern tree from JSON read from r.
func Decode(r io.Reader) (pattern.Pattern, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return Unmarshal(data)
}

// encode renders one pattern node as a generic document. The switch is
// exhaustive over the sealed variant set.
func encode(p pattern.Pattern) (map[string]any, error) {
	switch v := p.(type) {
	case *pattern.SingleShot:
		return withPayload(map[string]any{
			"type":      tagSingleShot,
			"direction": vecDoc(v.Direction()),
			"speed":     v.Speed(),
		}, v.Payload()), nil

	case *pattern.Burst:
		return withPayload(map[string]any{
			"type":      tagBurst,
			"count":     v.Count(),
			"direction": vecDoc(v.Direction()),
			"speed":     v.Speed(),
			"delay":     v.Delay(),
		}, v.Payload()), nil

	case *pattern.Spread:
		return withPayload(map[string]any{
			"type":       tagSpread,
			"count":      v.Count(),
			"arc":        v.Arc(),
			"base_angle": v.BaseAngle(),
			"speed":      v.Speed(),
		}, v.Payload()), nil

	case *pattern.Ring:
		return withPayload(map[string]any{
			"type":        tagRing,
			"count":       v.Count(),
			"speed":       v.Speed(),
			"start_angle": v.StartAngle(),
		}, v.Payload()), nil

	case *pattern.Spiral:
		doc := map[string]any{
			"type":            tagSpiral,
			"bullets_per_rev": v.BulletsPerRev(),
			"rotation_speed":  v.RotationSpeed(),
			"start_angle":     v.StartAngle(),
			"speed":           v.Speed(),
			"looping":         v.Looping(),
		}
		if !v.Looping() {
			doc["revolutions"] = v.Revolutions()
		}
		return withPayload(doc, v.Payload()), nil

	case *pattern.Aimed:
		return withPayload(map[string]any{
			"type":  tagAimed,
			"count": v.Count(),
			"arc":   v.Arc(),
			"speed": v.Speed(),
		}, v.Payload()), nil

	case *pattern.Wave:
		return withPayload(map[string]any{
			"type":       tagWave,
			"count":      v.Count(),
			"base_angle": v.BaseAngle(),
			"amplitude":  v.Amplitude(),
			"frequency":  v.Frequency(),
			"speed":      v.Speed(),
		}, v.Payload()), nil

	case *pattern.Sequence:
		children, err := encodeChildren(v.Children())
		if err != nil {
			return nil, err
		}
		looping := false
		if v.Looping() && !anyChildLoops(v.Children()) {
			looping = true
		}
		return map[string]any{
			"type":     tagSequence,
			"looping":  looping,
			"patterns": children,
		}, nil

	case *pattern.Parallel:
		children, err := encodeChildren(v.Children())
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"type":     tagParallel,
			"patterns": children,
		}, nil

	case *pattern.Repeat:
		child, err := encode(v.Child())
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"type":    tagRepeat,
			"count":   v.Count(),
			"delay":   v.Delay(),
			"pattern": child,
		}, nil

	case *pattern.Loop:
		child, err := encode(v.Child())
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"type":    tagLoop,
			"pattern": child,
		}, nil

	case *pattern.Rotating:
		child, err := encode(v.Child())
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"type":           tagRotating,
			"rotation_speed": v.Speed(),
			"pattern":        child,
		}, nil
	}

	return nil, fmt.Errorf("%w: unencodable pattern %T", ErrUnknownVariant, p)
}

func encodeChildren(children []pattern.Pattern) ([]any, error) {
	out := make([]any, len(children))
	for i, c := range children {
		doc, err := encode(c)
		if err != nil {
			return nil, err
		}
		out[i] = doc
	}
	return out, nil
}

func anyChildLoops(children []pattern.Pattern) bool {
	for _, c := range children {
		if c.Looping() {
			return true
		}
	}
	return false
}

func withPayload(doc map[string]any, payload any) map[string]any {
	if payload != nil {
		doc["payload"] = payload
	}
	return doc
}

func vecDoc(v geom.Vec2) map[string]any {
	return map[string]any{"x": v.X, "y": v.Y}
}

// build rebuilds one pattern node from a generic document.
func build(doc map[string]any) (pattern.Pattern, error) {
	tag, ok := doc["type"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: type", ErrMissingField)
	}

	switch tag {
	case tagSingleShot:
		dir, err := vecField(doc, "direction")
		if err != nil {
			return nil, err
		}
		speed, err := numField(doc, "speed")
		if err != nil {
			return nil, err
		}
		return pattern.NewSingleShot(dir, speed, doc["payload"])

	case tagBurst:
		count, err := intField(doc, "count")
		if err != nil {
			return nil, err
		}
		dir, err := vecField(doc, "direction")
		if err != nil {
			return nil, err
		}
		speed, err := numField(doc, "speed")
		if err != nil {
			return nil, err
		}
		delay, err := numField(doc, "delay")
		if err != nil {
			return nil, err
		}
		return pattern.NewBurst(count, dir, speed, delay, doc["payload"])

	case tagSpread:
		count, err := intField(doc, "count")
		if err != nil {
			return nil, err
		}
		arc, err := numField(doc, "arc")
		if err != nil {
			return nil, err
		}
		base, err := numField(doc, "base_angle")
		if err != nil {
			return nil, err
		}
		speed, err := numField(doc, "speed")
		if err != nil {
			return nil, err
		}
		return pattern.NewSpread(count, arc, base, speed, doc["payload"])

	case tagRing:
		count, err := intField(doc, "count")
		if err != nil {
			return nil, err
		}
		speed, err := numField(doc, "speed")
		if err != nil {
			return nil, err
		}
		start, err := numField(doc, "start_angle")
		if err != nil {
			return nil, err
		}
		return pattern.NewRing(count, speed, start, doc["payload"])

	case tagSpiral:
		return buildSpiral(doc)

	case tagAimed:
		count, err := intField(doc, "count")
		if err != nil {
			return nil, err
		}
		arc, err := numField(doc, "arc")
		if err != nil {
			return nil, err
		}
		speed, err := numField(doc, "speed")
		if err != nil {
			return nil, err
		}
		return pattern.NewAimed(count, arc, speed, doc["payload"])

	case tagWave:
		count, err := intField(doc, "count")
		if err != nil {
			return nil, err
		}
		base, err := numField(doc, "base_angle")
		if err != nil {
			return nil, err
		}
		amp, err := numField(doc, "amplitude")
		if err != nil {
			return nil, err
		}
		freq, err := numField(doc, "frequency")
		if err != nil {
			return nil, err
		}
		speed, err := numField(doc, "speed")
		if err != nil {
			return nil, err
		}
		return pattern.NewWave(count, base, amp, freq, speed, doc["payload"])

	case tagSequence:
		children, err := childrenField(doc)
		if err != nil {
			return nil, err
		}
		if looping, _ := doc["looping"].(bool); looping {
			return pattern.NewLoopingSequence(children...)
		}
		return pattern.NewSequence(children...)

	case tagParallel:
		children, err := childrenField(doc)
		if err != nil {
			return nil, err
		}
		return pattern.NewParallel(children...)

	case tagRepeat:
		count, err := intField(doc, "count")
		if err != nil {
			return nil, err
		}
		delay, err := numField(doc, "delay")
		if err != nil {
			return nil, err
		}
		child, err := childField(doc)
		if err != nil {
			return nil, err
		}
		return pattern.NewRepeat(child, count, delay)

	case tagLoop:
		child, err := childField(doc)
		if err != nil {
			return nil, err
		}
		return pattern.NewLoop(child)

	case tagRotating:
		speed, err := numField(doc, "rotation_speed")
		if err != nil {
			return nil, err
		}
		child, err := childField(doc)
		if err != nil {
			return nil, err
		}
		return pattern.NewRotating(child, speed)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, tag)
}

func buildSpiral(doc map[string]any) (pattern.Pattern, error) {
	bpr, err := intField(doc, "bullets_per_rev")
	if err != nil {
		return nil, err
	}
	rate, err := numField(doc, "rotation_speed")
	if err != nil {
		return nil, err
	}
	start, err := numField(doc, "start_angle")
	if err != nil {
		return nil, err
	}
	speed, err := numField(doc, "speed")
	if err != nil {
		return nil, err
	}
	if looping, _ := doc["looping"].(bool); looping {
		return pattern.NewLoopingSpiral(bpr, rate, start, speed, doc["payload"])
	}
	revs, err := intField(doc, "revolutions")
	if err != nil {
		return nil, err
	}
	return pattern.NewSpiral(bpr, rate, revs, start, speed, doc["payload"])
}

// numField extracts a required numeric field. JSON decodes numbers as
// float64; the YAML front-end may hand over ints.
func numField(doc map[string]any, key string) (float64, error) {
	raw, ok := doc[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	n, ok := asFloat(raw)
	if !ok {
		return 0, fmt.Errorf("%w: field %s is not a number", pattern.ErrInvalidArgument, key)
	}
	return n, nil
}

func intField(doc map[string]any, key string) (int, error) {
	n, err := numField(doc, key)
	if err != nil {
		return 0, err
	}
	if n != math.Trunc(n) {
		return 0, fmt.Errorf("%w: field %s is not an integer", pattern.ErrInvalidArgument, key)
	}
	return int(n), nil
}

func vecField(doc map[string]any, key string) (geom.Vec2, error) {
	raw, ok := doc[key]
	if !ok {
		return geom.Vec2{}, fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return geom.Vec2{}, fmt.Errorf("%w: field %s is not a vector", pattern.ErrInvalidArgument, key)
	}
	x, err := numField(m, "x")
	if err != nil {
		return geom.Vec2{}, fmt.Errorf("%s.%w", key, err)
	}
	y, err := numField(m, "y")
	if err != nil {
		return geom.Vec2{}, fmt.Errorf("%s.%w", key, err)
	}
	return geom.V(x, y), nil
}

func childField(doc map[string]any) (pattern.Pattern, error) {
	raw, ok := doc["pattern"]
	if !ok {
		return nil, fmt.Errorf("%w: pattern", ErrMissingField)
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: field pattern is not a document", ErrMalformed)
	}
	return build(m)
}

func childrenField(doc map[string]any) ([]pattern.Pattern, error) {
	raw, ok := doc["patterns"]
	if !ok {
		return nil, fmt.Errorf("%w: patterns", ErrMissingField)
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: field patterns is not a list", ErrMalformed)
	}
	out := make([]pattern.Pattern, len(list))
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: patterns[%d] is not a document", ErrMalformed, i)
		}
		child, err := build(m)
		if err != nil {
			return nil, err
		}
		out[i] = child
	}
	return out, nil
}

// asFloat accepts the numeric representations the JSON and YAML decoders
// produce.
func asFloat(raw any) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
