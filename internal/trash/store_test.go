package trash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/babarot/sweep/internal/kv"
)

// fakeStorage wraps kv.Memory with call counters and injectable failures.
type fakeStorage struct {
	*kv.Memory

	mu     sync.Mutex
	gets   int
	sets   int
	getErr error
	setErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{Memory: kv.NewMemory()}
}

func (f *fakeStorage) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	f.gets++
	err := f.getErr
	f.mu.Unlock()
	if err != nil {
		return "", false, err
	}
	return f.Memory.Get(ctx, key)
}

func (f *fakeStorage) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	f.sets++
	err := f.setErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Memory.Set(ctx, key, value)
}

func (f *fakeStorage) persisted(t *testing.T, key string) []string {
	t.Helper()
	raw, found, err := f.Memory.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("reading persisted value: %v", err)
	}
	if !found {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		t.Fatalf("persisted value %q is not a JSON array: %v", raw, err)
	}
	return ids
}

type errorRecorder struct {
	mu   sync.Mutex
	errs []*StoreError
}

func (r *errorRecorder) handle(err *StoreError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *errorRecorder) ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ops []Op
	for _, err := range r.errs {
		ops = append(ops, err.Op)
	}
	return ops
}

func sorted(ids []string) []string {
	ids = slices.Clone(ids)
	slices.Sort(ids)
	return ids
}

func TestStoreScenarios(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate add counts once", func(t *testing.T) {
		s := New(newFakeStorage())
		s.Add(ctx, "a")
		s.Add(ctx, "b")
		s.Add(ctx, "a")

		if got := s.Count(ctx); got != 2 {
			t.Errorf("Count() = %d, want 2", got)
		}
		if diff := cmp.Diff([]string{"a", "b"}, sorted(s.List(ctx))); diff != "" {
			t.Errorf("List() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("add then remove", func(t *testing.T) {
		s := New(newFakeStorage())
		s.Add(ctx, "a")
		s.Remove(ctx, "a")
		if s.Contains(ctx, "a") {
			t.Error("Contains(a) = true after Remove")
		}
	})

	t.Run("read failure yields empty list", func(t *testing.T) {
		storage := newFakeStorage()
		storage.getErr = errors.New("disk on fire")
		rec := &errorRecorder{}
		s := New(storage, WithErrorHandler(rec.handle))

		got := s.List(ctx)
		if got == nil || len(got) != 0 {
			t.Errorf("List() = %#v, want empty non-nil slice", got)
		}
		if diff := cmp.Diff([]Op{OpLoad}, rec.ops()); diff != "" {
			t.Errorf("reported ops mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestStoreIdempotence(t *testing.T) {
	ctx := context.Background()

	once := New(newFakeStorage())
	once.Add(ctx, "x")

	twice := New(newFakeStorage())
	twice.Add(ctx, "x")
	twice.Add(ctx, "x")

	if diff := cmp.Diff(once.List(ctx), twice.List(ctx)); diff != "" {
		t.Errorf("double add differs from single add (-once +twice):\n%s", diff)
	}

	s := New(newFakeStorage())
	s.Add(ctx, "y")
	s.Remove(ctx, "absent")
	if diff := cmp.Diff([]string{"y"}, s.List(ctx)); diff != "" {
		t.Errorf("removing absent id changed the set (-want +got):\n%s", diff)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()

	type op struct {
		add bool
		id  string
	}

	tests := []struct {
		name string
		ops  []op
	}{
		{name: "empty"},
		{name: "adds only", ops: []op{{true, "a"}, {true, "b"}, {true, "c"}}},
		{name: "interleaved", ops: []op{{true, "a"}, {true, "b"}, {false, "a"}, {true, "c"}, {true, "a"}, {false, "c"}}},
		{name: "remove everything", ops: []op{{true, "a"}, {false, "a"}, {false, "a"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := newFakeStorage()
			s := New(storage)
			want := map[string]bool{}
			for _, o := range tt.ops {
				if o.add {
					s.Add(ctx, o.id)
					want[o.id] = true
				} else {
					s.Remove(ctx, o.id)
					delete(want, o.id)
				}
			}

			var wantIDs []string
			for id := range want {
				wantIDs = append(wantIDs, id)
			}
			slices.Sort(wantIDs)

			got := sorted(s.List(ctx))
			if len(got) == 0 && len(wantIDs) == 0 {
				return
			}
			if diff := cmp.Diff(wantIDs, got); diff != "" {
				t.Errorf("List() mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(wantIDs, sorted(storage.persisted(t, DefaultKey))); diff != "" {
				t.Errorf("persisted mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStorePersistenceSurvival(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()

	first := New(storage)
	first.Add(ctx, "p1")

	second := New(storage)
	if !second.Contains(ctx, "p1") {
		t.Error("fresh store does not contain p1")
	}
}

func TestStoreClear(t *testing.T) {
	ctx := context.Background()

	t.Run("clears loaded state", func(t *testing.T) {
		storage := newFakeStorage()
		s := New(storage)
		s.Add(ctx, "a")
		s.Add(ctx, "b")
		s.Clear(ctx)

		if got := s.Count(ctx); got != 0 {
			t.Errorf("Count() = %d, want 0", got)
		}
		if got := s.List(ctx); got == nil || len(got) != 0 {
			t.Errorf("List() = %#v, want non-nil empty slice", got)
		}
		raw, _, _ := storage.Memory.Get(ctx, DefaultKey)
		if raw != "[]" {
			t.Errorf("persisted %q, want []", raw)
		}
	})

	t.Run("does not read prior state", func(t *testing.T) {
		storage := newFakeStorage()
		if err := storage.Memory.Set(ctx, DefaultKey, `["old"]`); err != nil {
			t.Fatal(err)
		}
		s := New(storage)
		s.Clear(ctx)

		if storage.gets != 0 {
			t.Errorf("Clear() read storage %d times, want 0", storage.gets)
		}
		if s.Contains(ctx, "old") {
			t.Error("old payload resurrected after Clear")
		}
		if storage.gets != 0 {
			t.Errorf("access after Clear read storage %d times, want 0", storage.gets)
		}
	})

	t.Run("concurrent adds before clear", func(t *testing.T) {
		storage := newFakeStorage()
		s := New(storage)

		var wg sync.WaitGroup
		for i := range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.Add(ctx, fmt.Sprintf("id-%d", i))
			}()
		}
		wg.Wait()
		s.Clear(ctx)

		if got := s.Count(ctx); got != 0 {
			t.Errorf("Count() = %d, want 0", got)
		}
		if got := storage.persisted(t, DefaultKey); len(got) != 0 {
			t.Errorf("persisted %v, want empty", got)
		}
	})
}

func TestStoreLazyLoadOnce(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()
	if err := storage.Memory.Set(ctx, DefaultKey, `["a","b"]`); err != nil {
		t.Fatal(err)
	}

	s := New(storage)
	if storage.gets != 0 {
		t.Fatalf("New() read storage %d times, want 0", storage.gets)
	}

	s.Preload(ctx)
	s.Preload(ctx)
	_ = s.List(ctx)
	_ = s.Contains(ctx, "a")
	_ = s.Count(ctx)
	s.Add(ctx, "c")

	if storage.gets != 1 {
		t.Errorf("storage read %d times, want 1", storage.gets)
	}
}

func TestStoreReadFailureLoadsOnce(t *testing.T) {
	ctx := context.Background()
	readErr := errors.New("timeout")
	storage := newFakeStorage()
	storage.getErr = readErr
	rec := &errorRecorder{}
	s := New(storage, WithErrorHandler(rec.handle))

	s.Preload(ctx)
	storage.getErr = nil
	if got := s.Count(ctx); got != 0 {
		t.Errorf("Count() = %d, want 0", got)
	}
	if storage.gets != 1 {
		t.Errorf("storage read %d times, want 1", storage.gets)
	}

	if len(rec.errs) != 1 {
		t.Fatalf("reported %d errors, want 1", len(rec.errs))
	}
	if got := rec.errs[0]; !errors.Is(got, readErr) || got.Key != DefaultKey || got.Op != OpLoad {
		t.Errorf("reported error = %v, want load failure wrapping %v", got, readErr)
	}
}

func TestStoreDecodeFailure(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()
	if err := storage.Memory.Set(ctx, DefaultKey, `{not json`); err != nil {
		t.Fatal(err)
	}
	rec := &errorRecorder{}
	s := New(storage, WithErrorHandler(rec.handle))

	if got := s.List(ctx); len(got) != 0 {
		t.Errorf("List() = %v, want empty", got)
	}
	if diff := cmp.Diff([]Op{OpDecode}, rec.ops()); diff != "" {
		t.Errorf("reported ops mismatch (-want +got):\n%s", diff)
	}

	s.Add(ctx, "fresh")
	if diff := cmp.Diff([]string{"fresh"}, storage.persisted(t, DefaultKey)); diff != "" {
		t.Errorf("corrupt payload not overwritten (-want +got):\n%s", diff)
	}
}

func TestStoreWriteFailureKeepsMemory(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()
	storage.setErr = errors.New("read-only filesystem")
	rec := &errorRecorder{}
	s := New(storage, WithErrorHandler(rec.handle))

	s.Add(ctx, "a")
	s.Remove(ctx, "missing")
	s.Clear(ctx)
	s.Add(ctx, "b")

	if diff := cmp.Diff([]string{"b"}, s.List(ctx)); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Op{OpPersist, OpPersist, OpPersist, OpPersist}, rec.ops()); diff != "" {
		t.Errorf("reported ops mismatch (-want +got):\n%s", diff)
	}
	for _, err := range rec.errs {
		if !errors.Is(err, storage.setErr) {
			t.Errorf("error %v does not wrap the storage failure", err)
		}
	}
}

func TestStoreDeduplicatesOnLoad(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()
	if err := storage.Memory.Set(ctx, "custom", `["a","b","a","c","b"]`); err != nil {
		t.Fatal(err)
	}

	s := New(storage, WithKey("custom"))
	if diff := cmp.Diff([]string{"a", "b", "c"}, s.List(ctx)); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreSerializesMutations(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()
	s := New(storage)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(2)
		id := fmt.Sprintf("id-%d", i)
		go func() {
			defer wg.Done()
			s.Add(ctx, id)
		}()
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				s.Remove(ctx, id)
			}
		}()
	}
	wg.Wait()

	if diff := cmp.Diff(sorted(s.List(ctx)), sorted(storage.persisted(t, DefaultKey))); diff != "" {
		t.Errorf("persisted set diverged from memory (-memory +persisted):\n%s", diff)
	}
}

func TestStoreErrorMessage(t *testing.T) {
	err := &StoreError{Op: OpPersist, Key: DefaultKey, Err: errors.New("boom")}
	want := `trash persist "trashed_photo_ids": boom`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
