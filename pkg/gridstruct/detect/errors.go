package detect

import (
	"errors"
	"fmt"

	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/grid"
)

// ErrDepthExceeded indicates nested domain parsing reached the depth limit.
var ErrDepthExceeded = errors.New("nested domain depth limit exceeded")

// DepthError reports a domain whose nested parse was not run.
type DepthError struct {
	// Depth is the depth the nested parse would have run at.
	Depth int
	// Limit is the configured maximum depth.
	Limit int
	// At is the position of the parent element owning the domain.
	At grid.Position
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("domain of %s: depth %d exceeds limit %d", e.At, e.Depth, e.Limit)
}

func (e *DepthError) Unwrap() error {
	return ErrDepthExceeded
}
