package versions

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/junovet/booking-engine/internal/observability/metrics"
	"github.com/junovet/booking-engine/pkg/logging"
)

var versionsTracer = otel.Tracer("junovet.internal.versions")

// Service layers the fixed seed entries over the persisted user saves. Seeds
// never reach the store: hiding or renaming a seed is tracked in memory only,
// so a restart brings the stock shelf back.
type Service struct {
	store   Store
	metrics *metrics.BookingMetrics
	logger  *logging.Logger
	now     func() time.Time

	mu            sync.Mutex
	seeds         []DesignVersion
	hiddenSeeds   map[string]bool
	seedOverrides map[string]Patch
}

// NewService constructs a versions service. A nil now falls back to the wall
// clock.
func NewService(store Store, m *metrics.BookingMetrics, logger *logging.Logger, now func() time.Time) *Service {
	if store == nil {
		panic("versions: store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:         store,
		metrics:       m,
		logger:        logger,
		now:           now,
		seeds:         SeedVersions(now()),
		hiddenSeeds:   make(map[string]bool),
		seedOverrides: make(map[string]Patch),
	}
}

// List returns the visible shelf: surviving seeds first, then user saves in
// store order.
func (s *Service) List(ctx context.Context) ([]DesignVersion, error) {
	ctx, span := versionsTracer.Start(ctx, "versions.list")
	defer span.End()

	user, err := s.store.List(ctx)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveVersionOp("list", "error")
		return nil, err
	}

	out := append(s.visibleSeeds(), user...)
	span.SetAttributes(attribute.Int("junovet.version_count", len(out)))
	s.metrics.ObserveVersionOp("list", "ok")
	return out, nil
}

// Save appends a new user version capturing the given state.
func (s *Service) Save(ctx context.Context, state VersionState, title, note string) (DesignVersion, error) {
	ctx, span := versionsTracer.Start(ctx, "versions.save")
	defer span.End()

	user, err := s.store.List(ctx)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveVersionOp("save", "error")
		return DesignVersion{}, err
	}

	savedAt := s.now()
	number := len(s.visibleSeeds()) + len(user) + 1
	entry := DesignVersion{
		ID:            NewID(number, savedAt),
		VersionNumber: number,
		Title:         title,
		Note:          note,
		SavedAt:       savedAt,
		State:         state,
	}
	if err := s.store.Replace(ctx, append(user, entry)); err != nil {
		span.RecordError(err)
		s.metrics.ObserveVersionOp("save", "error")
		return DesignVersion{}, err
	}

	span.SetAttributes(attribute.String("junovet.version_id", entry.ID))
	s.metrics.ObserveVersionOp("save", "ok")
	s.logger.Info("version saved", "version_id", entry.ID, "version_number", number)
	return entry, nil
}

// Remove deletes a user version, or hides a seed for the life of the process.
func (s *Service) Remove(ctx context.Context, id string) error {
	ctx, span := versionsTracer.Start(ctx, "versions.remove")
	defer span.End()
	span.SetAttributes(attribute.String("junovet.version_id", id))

	if s.isSeed(id) {
		s.mu.Lock()
		s.hiddenSeeds[id] = true
		s.mu.Unlock()
		s.metrics.ObserveVersionOp("remove", "ok")
		s.logger.Info("seed version hidden", "version_id", id)
		return nil
	}

	user, err := s.store.List(ctx)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveVersionOp("remove", "error")
		return err
	}
	kept := user[:0:0]
	for _, entry := range user {
		if entry.ID != id {
			kept = append(kept, entry)
		}
	}
	if len(kept) == len(user) {
		s.metrics.ObserveVersionOp("remove", "not_found")
		return ErrVersionNotFound
	}
	if err := s.store.Replace(ctx, kept); err != nil {
		span.RecordError(err)
		s.metrics.ObserveVersionOp("remove", "error")
		return err
	}
	s.metrics.ObserveVersionOp("remove", "ok")
	s.logger.Info("version removed", "version_id", id)
	return nil
}

// Update patches title and note. Seed patches live in memory only.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (DesignVersion, error) {
	ctx, span := versionsTracer.Start(ctx, "versions.update")
	defer span.End()
	span.SetAttributes(attribute.String("junovet.version_id", id))

	if s.isSeed(id) {
		s.mu.Lock()
		if s.hiddenSeeds[id] {
			s.mu.Unlock()
			s.metrics.ObserveVersionOp("update", "not_found")
			return DesignVersion{}, ErrVersionNotFound
		}
		existing := s.seedOverrides[id]
		if patch.Title != nil {
			existing.Title = patch.Title
		}
		if patch.Note != nil {
			existing.Note = patch.Note
		}
		s.seedOverrides[id] = existing
		s.mu.Unlock()

		for _, seed := range s.visibleSeeds() {
			if seed.ID == id {
				s.metrics.ObserveVersionOp("update", "ok")
				return seed, nil
			}
		}
		s.metrics.ObserveVersionOp("update", "not_found")
		return DesignVersion{}, ErrVersionNotFound
	}

	user, err := s.store.List(ctx)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveVersionOp("update", "error")
		return DesignVersion{}, err
	}
	idx := -1
	for i, entry := range user {
		if entry.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.metrics.ObserveVersionOp("update", "not_found")
		return DesignVersion{}, ErrVersionNotFound
	}
	if patch.Title != nil {
		user[idx].Title = *patch.Title
	}
	if patch.Note != nil {
		user[idx].Note = *patch.Note
	}
	if err := s.store.Replace(ctx, user); err != nil {
		span.RecordError(err)
		s.metrics.ObserveVersionOp("update", "error")
		return DesignVersion{}, err
	}
	s.metrics.ObserveVersionOp("update", "ok")
	return user[idx], nil
}

// Revert returns the stored state for the given id so the caller can feed it
// straight into a selection restore. The state is handed back verbatim.
func (s *Service) Revert(ctx context.Context, id string) (VersionState, error) {
	ctx, span := versionsTracer.Start(ctx, "versions.revert")
	defer span.End()
	span.SetAttributes(attribute.String("junovet.version_id", id))

	entries, err := s.List(ctx)
	if err != nil {
		s.metrics.ObserveVersionOp("revert", "error")
		return VersionState{}, err
	}
	for _, entry := range entries {
		if entry.ID == id {
			s.metrics.ObserveVersionOp("revert", "ok")
			s.logger.Info("reverted to version", "version_id", id)
			return entry.State, nil
		}
	}
	s.metrics.ObserveVersionOp("revert", "not_found")
	return VersionState{}, ErrVersionNotFound
}

// ReplaceUser swaps the persisted user saves wholesale, sorted by version
// number so the shelf reads in save order regardless of payload order.
func (s *Service) ReplaceUser(ctx context.Context, entries []DesignVersion) error {
	ctx, span := versionsTracer.Start(ctx, "versions.replace")
	defer span.End()
	span.SetAttributes(attribute.Int("junovet.version_count", len(entries)))

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].VersionNumber < entries[j].VersionNumber
	})
	if err := s.store.Replace(ctx, entries); err != nil {
		span.RecordError(err)
		s.metrics.ObserveVersionOp("replace", "error")
		return err
	}
	s.metrics.ObserveVersionOp("replace", "ok")
	return nil
}

// UserSaves returns only the persisted entries, no seeds.
func (s *Service) UserSaves(ctx context.Context) ([]DesignVersion, error) {
	return s.store.List(ctx)
}

func (s *Service) isSeed(id string) bool {
	for _, seed := range s.seeds {
		if seed.ID == id {
			return true
		}
	}
	return false
}

func (s *Service) visibleSeeds() []DesignVersion {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []DesignVersion
	for _, seed := range s.seeds {
		if s.hiddenSeeds[seed.ID] {
			continue
		}
		if patch, ok := s.seedOverrides[seed.ID]; ok {
			if patch.Title != nil {
				seed.Title = *patch.Title
			}
			if patch.Note != nil {
				seed.Note = *patch.Note
			}
		}
		out = append(out, seed)
	}
	return out
}
