package config

// SceneLayout is the root config for scenes/<name>.yaml
type SceneLayout struct {
	Name    string       `yaml:"name"`
	Objects []ObjectSpec `yaml:"objects"`
}

// ObjectSpec describes one object. Parent refers to another object's Name in
// the same layout.
type ObjectSpec struct {
	Name       string          `yaml:"name"`
	Tag        string          `yaml:"tag"`
	Active     *bool           `yaml:"active"`
	Parent     string          `yaml:"parent"`
	Position   Vec3            `yaml:"position"`
	Rotation   Vec3            `yaml:"rotation"` // euler degrees
	Scale      *Vec3           `yaml:"scale"`
	Components []ComponentSpec `yaml:"components"`
}

// IsActive defaults to true when the field is omitted.
func (o ObjectSpec) IsActive() bool {
	return o.Active == nil || *o.Active
}

// ComponentSpec names a component kind and its parameters.
type ComponentSpec struct {
	Kind   string         `yaml:"kind"`
	Params map[string]any `yaml:"params"`
}

// Vec3 is written as a three element list: [x, y, z].
type Vec3 [3]float32
