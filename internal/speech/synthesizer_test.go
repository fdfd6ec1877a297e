package speech

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAudioPath(t *testing.T) {
	got := AudioPath("/tmp", "68b0c0ffee")
	want := filepath.Join("/tmp", "audio_68b0c0ffee.mp3")
	if got != want {
		t.Fatalf("AudioPath = %q, want %q", got, want)
	}
}

func TestWriteAtomic_Overwrites(t *testing.T) {
	dir := t.TempDir()
	path := AudioPath(dir, "abc123")

	if err := writeAtomic(path, []byte("first")); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := writeAtomic(path, []byte("second")); err != nil {
		t.Fatalf("second write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "second" {
		t.Fatalf("expected last write to win, got %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected no leftover temp files, found %d entries", len(entries))
	}
}
