package blob

import (
	"bytes"
	"errors"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("open in-memory blob store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGet(t *testing.T) {
	s := newTestStore(t)

	if err := s.Put("file-1", []byte("content")); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get("file-1")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte("content")) {
		t.Fatalf("unexpected content: %q", got)
	}
}

func TestPutReplaces(t *testing.T) {
	s := newTestStore(t)
	s.Put("file-1", []byte("v1"))
	s.Put("file-1", []byte("v2"))

	got, _ := s.Get("file-1")
	if string(got) != "v2" {
		t.Fatalf("expected v2, got %q", got)
	}
}

func TestGetMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get("file-missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	s.Put("file-1", []byte("content"))

	if err := s.Delete("file-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get("file-1"); !errors.Is(err, ErrNotFound) {
		t.Fatal("blob should be gone")
	}
}

func TestDeleteMissingIsNotError(t *testing.T) {
	s := newTestStore(t)
	if err := s.Delete("file-missing"); err != nil {
		t.Fatalf("deleting a missing blob should not fail: %v", err)
	}
}

func TestDeleteAll(t *testing.T) {
	s := newTestStore(t)
	s.Put("file-1", []byte("a"))
	s.Put("file-2", []byte("b"))

	if err := s.DeleteAll(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get("file-1"); !errors.Is(err, ErrNotFound) {
		t.Fatal("file-1 should be gone")
	}
	if _, err := s.Get("file-2"); !errors.Is(err, ErrNotFound) {
		t.Fatal("file-2 should be gone")
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put("file-1", []byte("persistent")); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s2, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	got, err := s2.Get("file-1")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "persistent" {
		t.Fatalf("unexpected content after reopen: %q", got)
	}
}
