package dataset

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// LoadWarning is shown on every page when the dataset could not be loaded.
const LoadWarning = "We couldn't load the travel guide data, so lists may be empty. Please try again later."

const defaultLoadTimeout = 15 * time.Second

// Load fetches and decodes the dataset from src. On any failure it returns
// the empty-shaped dataset together with the error.
func Load(ctx context.Context, src Source) (Dataset, error) {
	if src == nil {
		return Empty(), fmt.Errorf("%w: nil source", ErrUnsupportedSource)
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultLoadTimeout)
		defer cancel()
	}
	rc, err := src.Open(ctx)
	if err != nil {
		return Empty(), err
	}
	defer rc.Close()
	d, err := Decode(rc)
	if err != nil {
		return Empty(), fmt.Errorf("dataset: %s: %w", src, err)
	}
	return d, nil
}

// Snapshot is an immutable view of the loaded dataset.
type Snapshot struct {
	Data     Dataset
	Warning  string
	Source   string
	LoadedAt time.Time
}

// Store holds the current snapshot. Readers never block.
type Store struct {
	src    Source
	logger *zap.Logger
	cur    atomic.Pointer[Snapshot]
}

// NewStore returns a store reading from src. Until Load runs it serves the
// empty dataset.
func NewStore(src Source, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{src: src, logger: logger}
	s.cur.Store(&Snapshot{Data: Empty()})
	return s
}

// NewStaticStore wraps an already decoded dataset.
func NewStaticStore(d Dataset) *Store {
	d.normalize()
	s := &Store{logger: zap.NewNop()}
	s.cur.Store(&Snapshot{Data: d, Source: "static", LoadedAt: time.Now().UTC()})
	return s
}

// Current returns the active snapshot.
func (s *Store) Current() Snapshot {
	return *s.cur.Load()
}

// Load performs the startup fetch. A failure installs the empty dataset with
// LoadWarning so the site keeps serving; the error is returned for logging.
func (s *Store) Load(ctx context.Context) (Snapshot, error) {
	d, err := Load(ctx, s.src)
	snap := &Snapshot{Data: d, Source: sourceName(s.src), LoadedAt: time.Now().UTC()}
	if err != nil {
		snap.Warning = LoadWarning
		s.logger.Warn("dataset load failed; serving empty dataset",
			zap.String("source", snap.Source), zap.Error(err))
	} else {
		s.logger.Info("dataset loaded",
			zap.String("source", snap.Source),
			zap.Int("stays", len(d.Stays)),
			zap.Int("dining", len(d.Dining)),
			zap.Int("itineraries", len(d.Itineraries)),
			zap.Int("activities", len(d.Activities)),
		)
	}
	s.cur.Store(snap)
	return *snap, err
}

// Reload refetches the dataset. Unlike Load, a failure keeps the previous
// snapshot in place.
func (s *Store) Reload(ctx context.Context) error {
	d, err := Load(ctx, s.src)
	if err != nil {
		s.logger.Warn("dataset reload failed; keeping previous snapshot", zap.Error(err))
		return err
	}
	s.cur.Store(&Snapshot{Data: d, Source: sourceName(s.src), LoadedAt: time.Now().UTC()})
	s.logger.Info("dataset reloaded", zap.String("source", sourceName(s.src)))
	return nil
}

func sourceName(src Source) string {
	if src == nil {
		return ""
	}
	return src.String()
}
