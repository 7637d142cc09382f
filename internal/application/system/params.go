package system

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Params are the decoded YAML parameters of one component entry. YAML numbers
// arrive as int or float64 and lists as []any.
type Params map[string]any

func (p Params) Float(key string, def float64) (float64, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, fmt.Errorf("param %q: expected number, got %T", key, v)
	}
	return f, nil
}

func (p Params) Int(key string, def int) (int, error) {
	f, err := p.Float(key, float64(def))
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func (p Params) String(key, def string) (string, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("param %q: expected string, got %T", key, v)
	}
	return s, nil
}

func (p Params) Vec3(key string, def mgl32.Vec3) (mgl32.Vec3, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	fs, err := floats(key, v, 3)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	return mgl32.Vec3{float32(fs[0]), float32(fs[1]), float32(fs[2])}, nil
}

// Color reads [r, g, b] or [r, g, b, a] with 0-255 channels.
func (p Params) Color(key string, def color.RGBA) (color.RGBA, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	list, ok := v.([]any)
	if !ok || (len(list) != 3 && len(list) != 4) {
		return color.RGBA{}, fmt.Errorf("param %q: expected [r, g, b] or [r, g, b, a]", key)
	}
	fs, err := floats(key, v, len(list))
	if err != nil {
		return color.RGBA{}, err
	}
	c := color.RGBA{A: 255}
	ch := []*uint8{&c.R, &c.G, &c.B, &c.A}
	for i, f := range fs {
		if f < 0 || f > 255 {
			return color.RGBA{}, fmt.Errorf("param %q: channel %d out of range", key, i)
		}
		*ch[i] = uint8(f)
	}
	return c, nil
}

func floats(key string, v any, n int) ([]float64, error) {
	list, ok := v.([]any)
	if !ok || len(list) != n {
		return nil, fmt.Errorf("param %q: expected list of %d numbers", key, n)
	}
	out := make([]float64, n)
	for i, e := range list {
		f, ok := toFloat(e)
		if !ok {
			return nil, fmt.Errorf("param %q: element %d is %T", key, i, e)
		}
		out[i] = f
	}
	return out, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
