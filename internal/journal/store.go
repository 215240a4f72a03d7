package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/curahealth/cura/backend/go-services/internal/storage"
	"github.com/curahealth/cura/backend/go-services/pkg/logger"
	"github.com/curahealth/cura/backend/go-services/pkg/metrics"
)

// DefaultKey matches the localStorage key used by the web client.
const DefaultKey = "cura_journal"

// corruptSuffix names the keys that receive unreadable state before a
// lenient store overwrites it: <key>.corrupt first, then <key>.corrupt.1,
// <key>.corrupt.2 and so on. Existing backups are never overwritten.
const corruptSuffix = ".corrupt"

// KV is the persistence surface a Store needs. Get must return an error
// wrapping storage.ErrNotFound when the key has never been written.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Option configures a Store.
type Option func(*Store)

// WithStrictDecode makes Load and Append fail with ErrCorruptStore instead
// of treating unreadable state as an empty log.
func WithStrictDecode() Option {
	return func(s *Store) { s.strict = true }
}

// WithClock overrides the time source used to stamp new entries.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store is an append-only journal persisted as one JSON array under a
// single key. Every Append rewrites the whole array.
type Store struct {
	mu     sync.Mutex
	kv     KV
	key    string
	strict bool
	now    func() time.Time
}

// NewStore binds a journal to key on kv.
func NewStore(kv KV, key string, opts ...Option) (*Store, error) {
	if kv == nil {
		return nil, errors.New("journal: nil kv handle")
	}
	if key == "" {
		return nil, errors.New("journal: empty storage key")
	}
	s := &Store{kv: kv, key: key, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Key returns the storage key the log lives under.
func (s *Store) Key() string { return s.key }

// Load returns the persisted log, oldest first.
func (s *Store) Load(ctx context.Context) ([]Entry, error) {
	entries, _, err := s.load(ctx)
	return entries, err
}

// Append validates the inputs, appends a new entry and persists the log.
func (s *Store) Append(ctx context.Context, text string, mood, rating int) (Entry, error) {
	e, err := NewEntry(text, mood, rating, s.now())
	if err != nil {
		metrics.JournalAppendFailures.WithLabelValues("validation").Inc()
		return Entry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, corrupt, err := s.load(ctx)
	if err != nil {
		metrics.JournalAppendFailures.WithLabelValues(failureReason(err)).Inc()
		return Entry{}, err
	}
	if corrupt != nil {
		backup, err := s.freeBackupKey(ctx)
		if err != nil {
			metrics.JournalAppendFailures.WithLabelValues("storage").Inc()
			return Entry{}, err
		}
		if err := s.kv.Put(ctx, backup, corrupt); err != nil {
			metrics.JournalAppendFailures.WithLabelValues("storage").Inc()
			return Entry{}, fmt.Errorf("%w: back up corrupt log to %q: %w", ErrStorageUnavailable, backup, err)
		}
		logger.Warnf("journal: moved unreadable log %q to %q before overwrite", s.key, backup)
	}

	entries = append(entries, e)
	b, err := json.Marshal(entries)
	if err != nil {
		metrics.JournalAppendFailures.WithLabelValues("other").Inc()
		return Entry{}, fmt.Errorf("journal: encode log: %w", err)
	}
	if err := s.kv.Put(ctx, s.key, b); err != nil {
		metrics.JournalAppendFailures.WithLabelValues("storage").Inc()
		return Entry{}, fmt.Errorf("%w: put %q: %w", ErrStorageUnavailable, s.key, err)
	}
	metrics.JournalAppends.Inc()
	logger.Debugf("journal: appended entry to %q (now %d entries)", s.key, len(entries))
	return e, nil
}

// freeBackupKey returns the first backup key that has never been written.
func (s *Store) freeBackupKey(ctx context.Context) (string, error) {
	for i := 0; ; i++ {
		k := s.key + corruptSuffix
		if i > 0 {
			k = fmt.Sprintf("%s.%d", k, i)
		}
		_, err := s.kv.Get(ctx, k)
		if errors.Is(err, storage.ErrNotFound) {
			return k, nil
		}
		if err != nil {
			return "", fmt.Errorf("%w: check backup key %q: %w", ErrStorageUnavailable, k, err)
		}
	}
}

// ListDescending returns the log newest first. It never writes.
func (s *Store) ListDescending(ctx context.Context) ([]Entry, error) {
	entries, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out, nil
}

// load returns the decoded log. When lenient decoding discards unreadable
// state, the raw bytes are returned alongside an empty log.
func (s *Store) load(ctx context.Context) ([]Entry, []byte, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []Entry{}, nil, nil
		}
		return nil, nil, fmt.Errorf("%w: get %q: %w", ErrStorageUnavailable, s.key, err)
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		metrics.JournalCorruptLoads.Inc()
		if s.strict {
			return nil, nil, fmt.Errorf("%w: %q: %w", ErrCorruptStore, s.key, err)
		}
		logger.Warnf("journal: treating unreadable log %q as empty: %v", s.key, err)
		return []Entry{}, raw, nil
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil, nil
}

// failureReason labels a load error; load only fails on storage or decode.
func failureReason(err error) string {
	if errors.Is(err, ErrCorruptStore) {
		return "corrupt"
	}
	return "storage"
}
