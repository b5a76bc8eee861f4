package uploads

import (
	"bytes"
	"crypto/rand"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/preston-bernstein/sunday-game-service/internal/testutil"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "uploads"), 0)
	s.Clock = testutil.FixedClock(testutil.MustParseRFC3339("2024-05-29T16:26:40Z"))
	return s
}

func dirEntries(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return 0
	}
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	return len(entries)
}

func TestSaveStoresImageByteForByte(t *testing.T) {
	s := newTestStore(t)
	payload := make([]byte, 2*1024*1024)
	if _, err := rand.Read(payload); err != nil {
		t.Fatalf("rand: %v", err)
	}

	up, err := s.Save("Keeper Photo.PNG", "image/png", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !regexp.MustCompile(`^player-1717000000000-[0-9a-f-]{36}\.png$`).MatchString(up.Filename) {
		t.Fatalf("unexpected filename %q", up.Filename)
	}
	if up.URL != "/uploads/"+up.Filename {
		t.Fatalf("unexpected url %q", up.URL)
	}
	if up.OriginalName != "Keeper Photo.PNG" || up.Size != int64(len(payload)) {
		t.Fatalf("unexpected upload %+v", up)
	}

	stored, err := os.ReadFile(filepath.Join(s.Dir, up.Filename))
	if err != nil {
		t.Fatalf("read stored: %v", err)
	}
	if !bytes.Equal(stored, payload) {
		t.Fatal("stored file differs from upload")
	}
	if !s.Exists(up.Filename) {
		t.Fatal("expected Exists to report saved file")
	}
}

func TestSaveRejectsOversizedWithoutWriting(t *testing.T) {
	s := newTestStore(t)
	payload := bytes.Repeat([]byte{0xff}, 6*1024*1024)

	_, err := s.Save("big.jpg", "image/jpeg", bytes.NewReader(payload))
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if n := dirEntries(t, s.Dir); n != 0 {
		t.Fatalf("expected no files written, found %d", n)
	}
}

func TestSaveAcceptsExactLimit(t *testing.T) {
	s := newTestStore(t)
	s.MaxBytes = 1024
	if _, err := s.Save("a.gif", "image/gif", bytes.NewReader(make([]byte, 1024))); err != nil {
		t.Fatalf("expected exact-limit upload to pass, got %v", err)
	}
	if _, err := s.Save("b.gif", "image/gif", bytes.NewReader(make([]byte, 1025))); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge one byte over, got %v", err)
	}
}

func TestSaveRejectsNonImage(t *testing.T) {
	s := newTestStore(t)
	for _, ct := range []string{"text/plain", "application/pdf", ""} {
		_, err := s.Save("notes.txt", ct, strings.NewReader("hello"))
		if !errors.Is(err, ErrNotImage) {
			t.Fatalf("%q: expected ErrNotImage, got %v", ct, err)
		}
	}
	if n := dirEntries(t, s.Dir); n != 0 {
		t.Fatalf("expected no files written, found %d", n)
	}
}

func TestSaveRetriesOnNameCollision(t *testing.T) {
	s := newTestStore(t)
	ids := []string{"same", "same", "other"}
	orig := newID
	newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	t.Cleanup(func() { newID = orig })

	first, err := s.Save("a.png", "image/png", strings.NewReader("one"))
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	second, err := s.Save("b.png", "image/png", strings.NewReader("two"))
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if first.Filename == second.Filename || !strings.Contains(second.Filename, "other") {
		t.Fatalf("expected regenerated name, got %q and %q", first.Filename, second.Filename)
	}
	got, _ := os.ReadFile(filepath.Join(s.Dir, first.Filename))
	if string(got) != "one" {
		t.Fatalf("expected first file untouched, got %q", got)
	}
}

func TestExistsRejectsTraversal(t *testing.T) {
	s := newTestStore(t)
	if s.Exists("../secret") || s.Exists("") {
		t.Fatal("expected traversal names to be rejected")
	}
}

func TestIsImage(t *testing.T) {
	cases := map[string]bool{
		"image/png":        true,
		"IMAGE/JPEG":       true,
		" image/webp":      true,
		"text/html":        false,
		"application/json": false,
	}
	for ct, want := range cases {
		if got := IsImage(ct); got != want {
			t.Fatalf("IsImage(%q) = %v, want %v", ct, got, want)
		}
	}
}
