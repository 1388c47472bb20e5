// Package uuid implements ringchat.IDSource with random UUIDs.
package uuid

import (
	"github.com/fwojciec/ringchat"
	"github.com/google/uuid"
)

// IDs generates identifiers of the form "<prefix>-<uuid v4>".
type IDs struct{}

// NewID returns a fresh identifier under prefix.
func (IDs) NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

var _ ringchat.IDSource = IDs{}
