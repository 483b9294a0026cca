package cache

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/yourusername/transcript-forge/internal/transcript"
)

func testLogger(t *testing.T) *log.Logger {
	t.Helper()
	return log.New(io.Discard, "", 0)
}

func TestStoreStartsEmptyWhenFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	store := NewStore(path, testLogger(t))

	if err := store.LoadErr(); err != nil {
		t.Fatalf("missing file should not count as a load failure: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d entries", store.Len())
	}
}

func TestStoreStartsEmptyOnCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o640); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	store := NewStore(path, testLogger(t))
	if store.LoadErr() == nil {
		t.Fatal("expected LoadErr for corrupt cache file")
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store after corrupt load, got %d entries", store.Len())
	}
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	store := NewStore(path, testLogger(t))

	want := map[string]*transcript.Result{
		"abc123def45": {Title: "エピソード 1", Markdown: "# 第一章\n本文", Filename: "エピソード-1.md", VideoID: "abc123def45"},
		"xyz789ghi01": {Title: "Episode 2", Markdown: "# Chapter\nbody", Filename: "episode-2.md", VideoID: "xyz789ghi01"},
	}
	for id, result := range want {
		if err := store.Put(id, result); err != nil {
			t.Fatalf("Put(%s) returned error: %v", id, err)
		}
	}

	reopened := NewStore(path, testLogger(t))
	if err := reopened.LoadErr(); err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if !reflect.DeepEqual(reopened.Snapshot(), want) {
		t.Fatalf("round trip mismatch:\ngot  %#v\nwant %#v", reopened.Snapshot(), want)
	}
}

func TestStorePutPersistsKeyOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	store := NewStore(path, testLogger(t))

	result := &transcript.Result{Title: "t", Markdown: "m", Filename: "f.md"}
	if err := store.Put("abc123def45", result); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read cache file: %v", err)
	}
	var onDisk map[string]*transcript.Result
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatalf("cache file is not valid JSON: %v", err)
	}
	if _, ok := onDisk["abc123def45"]; !ok {
		t.Fatalf("cache file missing key abc123def45: %s", data)
	}
}

func TestStorePutValidatesInput(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "cache.json"), testLogger(t))
	if err := store.Put("", &transcript.Result{}); err == nil {
		t.Fatal("expected error for empty videoID")
	}
	if err := store.Put("abc123def45", nil); err == nil {
		t.Fatal("expected error for nil result")
	}
}

func TestStoreConcurrentPutsDoNotCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	store := NewStore(path, testLogger(t))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			result := &transcript.Result{Title: "t", Markdown: "m", Filename: "f.md", ChapterCount: n}
			if err := store.Put("abc123def45", result); err != nil {
				t.Errorf("Put returned error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	reopened := NewStore(path, testLogger(t))
	if err := reopened.LoadErr(); err != nil {
		t.Fatalf("cache file corrupted by concurrent writes: %v", err)
	}
	if _, ok := reopened.Get("abc123def45"); !ok {
		t.Fatal("expected entry to survive concurrent writes")
	}
}
