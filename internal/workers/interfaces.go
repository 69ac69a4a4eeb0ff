// Package workers schedules the background sync jobs of the field agent.
//
// A Workers aggregate holds named jobs with their intervals. Run starts the
// enabled ones; Pause and Resume toggle a single job at runtime, which is how
// the cloud job follows sign-in and sign-out.
package workers

import (
	"context"
	"time"
)

// Worker is a restartable periodic job. service.SyncJob satisfies it.
type Worker interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
}
