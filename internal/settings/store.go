package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vvka-141/projgen/pkg/projgen"
)

// FlagsKey is the key the GenerationFlags integer is stored under.
const FlagsKey = "generation_flags"

// Store reads and writes GenerationFlags through a KVStore.
type Store struct {
	kv KVStore
}

// NewStore wraps kv. Panics if kv is nil.
func NewStore(kv KVStore) *Store {
	if kv == nil {
		panic("kv cannot be nil")
	}
	return &Store{kv: kv}
}

// Flags returns the persisted flags, or projgen.DefaultGenerationFlags when
// nothing has been stored yet.
func (s *Store) Flags() (projgen.GenerationFlags, error) {
	raw, ok, err := s.kv.Get(FlagsKey)
	if err != nil {
		return projgen.DefaultGenerationFlags, fmt.Errorf("read %s: %w", FlagsKey, err)
	}
	if !ok {
		return projgen.DefaultGenerationFlags, nil
	}
	v, err := strconv.ParseUint(strings.TrimSpace(string(raw)), 10, 32)
	if err != nil {
		return projgen.DefaultGenerationFlags, fmt.Errorf("decode %s %q: %w", FlagsKey, raw, err)
	}
	return projgen.GenerationFlags(v), nil
}

// Set persists flags.
func (s *Store) Set(flags projgen.GenerationFlags) error {
	if err := s.kv.Set(FlagsKey, []byte(strconv.FormatUint(uint64(flags), 10))); err != nil {
		return fmt.Errorf("write %s: %w", FlagsKey, err)
	}
	return nil
}

// Toggle flips flag in the persisted value and returns the result.
func (s *Store) Toggle(flag projgen.GenerationFlags) (projgen.GenerationFlags, error) {
	current, err := s.Flags()
	if err != nil {
		return current, err
	}
	next := current.Toggle(flag)
	if err := s.Set(next); err != nil {
		return current, err
	}
	return next, nil
}

// Reset forgets the persisted value so the defaults apply again.
func (s *Store) Reset() error {
	if err := s.kv.Delete(FlagsKey); err != nil {
		return fmt.Errorf("delete %s: %w", FlagsKey, err)
	}
	return nil
}

// Close releases the underlying KVStore.
func (s *Store) Close() error {
	return s.kv.Close()
}
