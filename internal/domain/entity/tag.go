package entity

// Tag is a coarse category used to find objects.
type Tag int

const (
	TagUntagged Tag = iota
	TagPlayer
	TagEnemy
	TagProjectile
	TagCamera
	TagUI
	TagEnvironment
)

var tagNames = map[Tag]string{
	TagUntagged:    "Untagged",
	TagPlayer:      "Player",
	TagEnemy:       "Enemy",
	TagProjectile:  "Projectile",
	TagCamera:      "Camera",
	TagUI:          "UI",
	TagEnvironment: "Environment",
}

// String returns the string representation of the tag
func (t Tag) String() string {
	if s, ok := tagNames[t]; ok {
		return s
	}
	return "Unknown"
}

// ParseTag maps a tag name back to a Tag. The empty string is Untagged.
func ParseTag(s string) (Tag, bool) {
	if s == "" {
		return TagUntagged, true
	}
	for t, name := range tagNames {
		if name == s {
			return t, true
		}
	}
	return TagUntagged, false
}
