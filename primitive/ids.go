package primitive

import "github.com/google/uuid"

// newID returns a stable unique instance id. Derived ids ("<id>-title")
// hang off it for ARIA wiring.
func newID(kind string) string {
	return kind + "-" + uuid.NewString()
}
