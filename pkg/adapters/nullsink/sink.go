// Package nullsink provides the DebugSink used when debug output is off.
package nullsink

import (
	"image"

	"github.com/user/ffpp/pkg/ports"
)

// Sink reports itself disabled, so the output stage never builds debug
// images for it. Calls made anyway succeed and discard their input.
type Sink struct{}

func New() *Sink { return &Sink{} }

func (*Sink) Enabled() bool                                      { return false }
func (*Sink) SaveRunJSON([]byte) error                           { return nil }
func (*Sink) SaveSourceFrame(int, image.Image) error             { return nil }
func (*Sink) SaveOutputFrame(int, image.Image) error             { return nil }
func (*Sink) SaveComparison(int, image.Image, image.Image) error { return nil }

var _ ports.DebugSink = (*Sink)(nil)
