package usecase

import (
	"context"

	"github.com/atelier-lab/atelier/pkg/utils/errutil"
)

// logActivityError reports a failed activity append without failing the
// operation that triggered it
func logActivityError(ctx context.Context, err error) {
	_ = errutil.Handle(ctx, err, "failed to record activity")
}
