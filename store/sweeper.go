package store

import (
	"time"

	"github.com/devaforgestudios-afk/takneek/utils"
)

const sweepBatchSize = 100

// StartStagedSweeper launches a background goroutine that periodically
// reclaims staged uploads nobody adopted. It is best-effort and logs
// failures. The returned stop func ends the loop.
func StartStagedSweeper(staged *StagedUploadStore, interval time.Duration) (stop func()) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				n, err := staged.SweepExpired(sweepBatchSize)
				if err != nil {
					utils.Sugar.Warnf("staged upload sweep failed: %v", err)
					continue
				}
				if n > 0 {
					utils.Sugar.Infof("swept %d expired staged uploads", n)
				}
			}
		}
	}()
	return func() { close(done) }
}
