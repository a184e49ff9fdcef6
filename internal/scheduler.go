package internal

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rm-hull/frame-interpolator/internal/frames"
	log "github.com/sirupsen/logrus"
)

// NewReloadScheduler re-reads the store's source directory every interval so
// that frames added to or replaced in the directory are picked up. A failed
// reload keeps the frames already loaded.
func NewReloadScheduler(store *frames.Store, interval time.Duration, opts ...frames.LoadOption) (gocron.Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("reload interval must be positive, got %s", interval)
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(reloadFrames, store, opts),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	log.Infof("Reloading frames from %s every %s", store.Source(), interval)
	scheduler.Start()
	return scheduler, nil
}

func reloadFrames(store *frames.Store, opts []frames.LoadOption) error {
	before := store.Len()
	if err := store.Reload(opts...); err != nil {
		log.Warnf("Failed to reload frames from %s, keeping %d frames: %v", store.Source(), before, err)
		return err
	}

	if after := store.Len(); after != before {
		log.Infof("Reloaded frames from %s: %d -> %d", store.Source(), before, after)
	}
	return nil
}
