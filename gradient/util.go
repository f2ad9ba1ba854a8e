package gradient

import (
	"errors"
	"fmt"

	"github.com/dimreduce/tsne/internal/parallel"
)

// wrapParallelErr reclassifies a recovered worker panic as ErrAllocation
// (spec.md §7 ResourceFailure); any other error from internal/parallel.For
// passes through unchanged (it is already one of this package's sentinels).
func wrapParallelErr(err error) error {
	if errors.Is(err, parallel.ErrWorkerPanic) {
		return fmt.Errorf("%w: %v", ErrAllocation, err)
	}
	return err
}
