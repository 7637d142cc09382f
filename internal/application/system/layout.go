package system

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/younwookim/scenekit/internal/domain/entity"
	"github.com/younwookim/scenekit/internal/infrastructure/config"
)

// ValidateLayout checks names, tags, parents and component kinds without
// creating anything. All problems are reported together.
func ValidateLayout(layout *config.SceneLayout, kinds *Kinds) error {
	if layout == nil {
		return errors.New("nil layout")
	}

	var errs []error
	seen := make(map[string]int, len(layout.Objects))
	for i, obj := range layout.Objects {
		if obj.Name == "" {
			errs = append(errs, fmt.Errorf("object %d: missing name", i))
			continue
		}
		if _, dup := seen[obj.Name]; dup {
			errs = append(errs, fmt.Errorf("object %s: duplicate name", obj.Name))
			continue
		}
		seen[obj.Name] = i
	}

	for _, obj := range layout.Objects {
		if _, ok := entity.ParseTag(obj.Tag); !ok {
			errs = append(errs, fmt.Errorf("object %s: unknown tag %q", obj.Name, obj.Tag))
		}
		if obj.Parent != "" {
			if _, ok := seen[obj.Parent]; !ok {
				errs = append(errs, fmt.Errorf("object %s: unknown parent %q", obj.Name, obj.Parent))
			} else if obj.Parent == obj.Name {
				errs = append(errs, fmt.Errorf("object %s: parented to itself", obj.Name))
			}
		}
		for _, c := range obj.Components {
			if !kinds.Has(c.Kind) {
				errs = append(errs, fmt.Errorf("object %s: unknown component kind %q", obj.Name, c.Kind))
			}
		}
	}

	if err := parentCycle(layout, seen); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func parentCycle(layout *config.SceneLayout, index map[string]int) error {
	for _, obj := range layout.Objects {
		steps := 0
		for p := obj.Parent; p != ""; steps++ {
			if steps > len(layout.Objects) {
				return fmt.Errorf("object %s: parent cycle", obj.Name)
			}
			i, ok := index[p]
			if !ok {
				break
			}
			p = layout.Objects[i].Parent
		}
	}
	return nil
}

// BuildLayout instantiates every object of layout in m, in file order, then
// links parents. The objects join m's init queue and initialize on the next
// FlushInitialize. On error nothing built so far is kept: the created objects
// are marked for destruction.
func BuildLayout(m *entity.Manager, layout *config.SceneLayout, kinds *Kinds) ([]*entity.GameObject, error) {
	if err := ValidateLayout(layout, kinds); err != nil {
		return nil, fmt.Errorf("invalid layout %s: %w", layoutName(layout), err)
	}

	built := make([]*entity.GameObject, 0, len(layout.Objects))
	byName := make(map[string]*entity.GameObject, len(layout.Objects))
	abort := func(err error) ([]*entity.GameObject, error) {
		for _, o := range built {
			o.OnDestroy()
		}
		return nil, fmt.Errorf("failed to build layout %s: %w", layout.Name, err)
	}

	for _, spec := range layout.Objects {
		tag, _ := entity.ParseTag(spec.Tag)
		opts := []entity.ObjectOption{entity.WithTag(tag)}
		if !spec.IsActive() {
			opts = append(opts, entity.Inactive())
		}
		o := m.Instantiate(spec.Name, opts...)
		built = append(built, o)
		byName[spec.Name] = o

		tr := o.Transform()
		tr.SetLocalPosition(vec(spec.Position))
		tr.SetLocalRotationEuler(spec.Rotation[0], spec.Rotation[1], spec.Rotation[2])
		if spec.Scale != nil {
			tr.SetLocalScale(vec(*spec.Scale))
		}

		for _, cs := range spec.Components {
			c, err := kinds.Build(cs)
			if err != nil {
				return abort(fmt.Errorf("object %s: %w", spec.Name, err))
			}
			entity.AddComponent(o, c)
		}
	}

	for _, spec := range layout.Objects {
		if spec.Parent == "" {
			continue
		}
		if !byName[spec.Name].SetParent(byName[spec.Parent]) {
			return abort(fmt.Errorf("object %s: cannot parent to %s", spec.Name, spec.Parent))
		}
	}

	return built, nil
}

func layoutName(layout *config.SceneLayout) string {
	if layout == nil {
		return "<nil>"
	}
	return layout.Name
}

func vec(v config.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[1], v[2]}
}
