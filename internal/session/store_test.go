package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"entregas/internal/deliveries"
)

var tzMty = time.FixedZone("UTC-6", -6*3600)

type fakeFetcher struct {
	records []deliveries.RawRecord
	err     error
	calls   int
}

func (f *fakeFetcher) FetchRaw(ctx context.Context) ([]deliveries.RawRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func TestStoreLifecycle(t *testing.T) {
	fetcher := &fakeFetcher{records: []deliveries.RawRecord{{"client": "a"}, {"client": "b"}}}
	store := NewStore(fetcher, tzMty)

	if _, ok := store.Dataset(); ok {
		t.Fatal("new store should be Empty")
	}
	if !store.LoadedAt().IsZero() {
		t.Error("LoadedAt() should be zero while Empty")
	}

	n, err := store.Reload(context.Background())
	if err != nil {
		t.Fatalf("Reload() error: %v", err)
	}
	if n != 2 {
		t.Errorf("Reload() = %d records, want 2", n)
	}

	ds, ok := store.Dataset()
	if !ok || ds.Len() != 2 {
		t.Fatalf("Dataset() = (%v, %v), want loaded 2-record dataset", ds, ok)
	}

	// A new successful load replaces the dataset wholesale.
	fetcher.records = []deliveries.RawRecord{{"client": "c"}}
	if _, err := store.Reload(context.Background()); err != nil {
		t.Fatalf("second Reload() error: %v", err)
	}
	ds, _ = store.Dataset()
	if ds.Len() != 1 || ds.Records[0].Fields["client"] != "c" {
		t.Errorf("dataset after second load = %v, want single record c", ds.Records)
	}
}

func TestStoreKeepsPreviousDatasetOnFailure(t *testing.T) {
	fetcher := &fakeFetcher{records: []deliveries.RawRecord{{"client": "a"}}}
	store := NewStore(fetcher, tzMty)

	if _, err := store.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error: %v", err)
	}
	loadedAt := store.LoadedAt()

	fetcher.err = errors.New("api down")
	if _, err := store.Reload(context.Background()); err == nil {
		t.Fatal("Reload() should surface the fetch error")
	}

	ds, ok := store.Dataset()
	if !ok || ds.Len() != 1 {
		t.Fatal("previous dataset must survive a failed reload")
	}
	if !store.LoadedAt().Equal(loadedAt) {
		t.Error("LoadedAt() changed on a failed reload")
	}
}

func TestStoreFailedFirstLoadStaysEmpty(t *testing.T) {
	store := NewStore(&fakeFetcher{err: errors.New("api down")}, tzMty)

	if _, err := store.Reload(context.Background()); err == nil {
		t.Fatal("Reload() should fail")
	}
	if _, ok := store.Dataset(); ok {
		t.Error("store should remain Empty after a failed first load")
	}
}
