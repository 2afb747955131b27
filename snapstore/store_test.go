package snapstore

import (
	"context"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func TestPutAndLatest(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()

	html := []byte("<html><body>hello</body></html>")
	snap := &Snapshot{URL: "https://example.com", HTML: html}
	if err := s.Put(ctx, snap); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if snap.ID == "" {
		t.Error("ID not assigned")
	}
	if snap.HTMLHash != HashHTML(html) {
		t.Errorf("hash: got %q, want %q", snap.HTMLHash, HashHTML(html))
	}
	if snap.FetchedAt == 0 {
		t.Error("FetchedAt not assigned")
	}

	got, err := s.Latest(ctx, "https://example.com")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if got == nil {
		t.Fatal("Latest: got nil")
	}
	if got.ID != snap.ID {
		t.Errorf("ID: got %q, want %q", got.ID, snap.ID)
	}
	if string(got.HTML) != string(html) {
		t.Errorf("HTML roundtrip: got %q", got.HTML)
	}
}

func TestLatestPicksNewest(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()

	old := &Snapshot{URL: "https://example.com", HTML: []byte("old"), FetchedAt: 1000}
	fresh := &Snapshot{URL: "https://example.com", HTML: []byte("new"), FetchedAt: 2000}
	for _, snap := range []*Snapshot{old, fresh} {
		if err := s.Put(ctx, snap); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	got, err := s.Latest(ctx, "https://example.com")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if string(got.HTML) != "new" {
		t.Errorf("Latest: got %q, want %q", got.HTML, "new")
	}
}

func TestLatestMissing(t *testing.T) {
	s := OpenMemory(t)
	got, err := s.Latest(context.Background(), "https://nowhere.invalid")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if got != nil {
		t.Errorf("Latest: got %+v, want nil", got)
	}
}

func TestPutRequiresURL(t *testing.T) {
	s := OpenMemory(t)
	if err := s.Put(context.Background(), &Snapshot{HTML: []byte("x")}); err == nil {
		t.Error("Put without URL: got nil error")
	}
}

func TestPurge(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()

	keep := time.Now().UnixMilli()
	for _, snap := range []*Snapshot{
		{URL: "https://a.example", HTML: []byte("a"), FetchedAt: 1000},
		{URL: "https://b.example", HTML: []byte("b"), FetchedAt: 2000},
		{URL: "https://c.example", HTML: []byte("c"), FetchedAt: keep},
	} {
		if err := s.Put(ctx, snap); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	n, err := s.Purge(ctx, time.UnixMilli(keep-1))
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if n != 2 {
		t.Errorf("purged: got %d, want 2", n)
	}

	got, err := s.Latest(ctx, "https://c.example")
	if err != nil || got == nil {
		t.Fatalf("survivor lost: %v %v", got, err)
	}
}
