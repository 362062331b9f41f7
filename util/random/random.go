// Package random provides generation of random secrets.
package random

import (
	"github.com/google/uuid"
)

// Secret returns a fresh random string suitable as a cookie signing key.
// Sessions signed with a generated secret do not survive a restart.
func Secret() string {
	return uuid.NewString() + uuid.NewString()
}
