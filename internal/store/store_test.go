package store

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
)

func TestMemoryKV_RoundTrip(t *testing.T) {
	kv := NewMemoryKV()

	if _, err := kv.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing key, got %v", err)
	}

	if err := kv.Set("a", []byte(`{"x":1}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, err := kv.Get("a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(v, []byte(`{"x":1}`)) {
		t.Errorf("unexpected value: %s", v)
	}

	// Overwrite wins.
	if err := kv.Set("a", []byte(`{"x":2}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, _ = kv.Get("a")
	if !bytes.Equal(v, []byte(`{"x":2}`)) {
		t.Errorf("expected overwrite, got %s", v)
	}
}

func TestMemoryKV_GetReturnsCopy(t *testing.T) {
	kv := NewMemoryKV()
	if err := kv.Set("k", []byte("abc")); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, _ := kv.Get("k")
	v[0] = 'z'
	v2, _ := kv.Get("k")
	if !bytes.Equal(v2, []byte("abc")) {
		t.Error("mutating a returned value should not affect the store")
	}
}

func TestSQLiteKV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	kv, err := NewSQLiteKV(path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer kv.Close()

	if _, err := kv.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing key, got %v", err)
	}

	if err := kv.Set("exp", []byte(`[]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set("exp", []byte(`[{"id":"X-1"}]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, err := kv.Get("exp")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(v, []byte(`[{"id":"X-1"}]`)) {
		t.Errorf("unexpected value: %s", v)
	}
}
