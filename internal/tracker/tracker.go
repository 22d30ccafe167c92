package tracker

import (
	"time"
	"tracker/internal/config"
	"tracker/pkg/storage"
)

// Options configure the behavioral knobs of the tracker use cases. These
// settings are typically derived from application configuration.
type Options struct {
	// MaxDaysPerCall caps how many days one AddMealsToDays call may target.
	MaxDaysPerCall int
	// TemplatePurgeRetention is how long a soft-deleted workout template is
	// kept before the scheduled purge job removes it physically.
	TemplatePurgeRetention time.Duration
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		MaxDaysPerCall:         cfg.Tracker.MaxDaysPerCall,
		TemplatePurgeRetention: cfg.Tracker.TemplatePurgeRetention,
	}
}

// tracker is the concrete implementation of the Tracker interface. It
// coordinates the domain aggregates with the storage layer; every
// multi-aggregate mutation runs inside one storage session.
type tracker struct {
	// options holds runtime configuration affecting caps and retention.
	options Options
	// storage is the persistence layer.
	storage storage.Storage
}

// New creates a new Tracker backed by the provided storage and configured
// with the given options.
func New(storage storage.Storage, options Options) Tracker {
	return &tracker{
		options: options,
		storage: storage,
	}
}
