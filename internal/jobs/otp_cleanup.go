package jobs

import (
	"time"

	"go.uber.org/zap"

	"github.com/nearhood/nearhood-backend/internal/storage"
)

// OTPCleanupJob periodically deletes expired OTP records. Verification
// itself never garbage-collects, so without this sweep the table grows
// without bound.
type OTPCleanupJob struct {
	store    storage.Store
	interval time.Duration
	logger   *zap.Logger
	stop     chan struct{}
	done     chan struct{}
}

// NewOTPCleanupJob creates a sweep job.
func NewOTPCleanupJob(store storage.Store, interval time.Duration, logger *zap.Logger) *OTPCleanupJob {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &OTPCleanupJob{
		store:    store,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the background sweep loop.
func (j *OTPCleanupJob) Start() {
	go j.run()
	j.logger.Info("otp cleanup job started", zap.Duration("interval", j.interval))
}

// Stop halts the loop and waits for the current sweep to finish.
func (j *OTPCleanupJob) Stop() {
	close(j.stop)
	<-j.done
	j.logger.Info("otp cleanup job stopped")
}

func (j *OTPCleanupJob) run() {
	defer close(j.done)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.sweep()
		case <-j.stop:
			return
		}
	}
}

func (j *OTPCleanupJob) sweep() {
	removed, err := j.store.DeleteExpiredOTPs()
	if err != nil {
		j.logger.Error("otp sweep failed", zap.Error(err))
		return
	}
	if removed > 0 {
		j.logger.Info("expired otps purged", zap.Int64("count", removed))
	}
}
