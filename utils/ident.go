package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// NewAnonymousID returns an opaque identifier for clients that did not
// supply one. The id is only meaningful to the client that holds it.
func NewAnonymousID() string {
	return fmt.Sprintf("anon_%s", uuid.NewString())
}
