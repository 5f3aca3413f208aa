package cache

import (
	"testing"
	"time"
)

func TestKey_Deterministic(t *testing.T) {
	a := Key("sentiment", "fp1", "hello world")
	b := Key("sentiment", "fp1", "hello world")
	c := Key("sentiment", "fp2", "hello world")

	if a != b {
		t.Error("Expected identical inputs to produce identical keys")
	}
	if a == c {
		t.Error("Expected different fingerprints to produce different keys")
	}
}

func TestFingerprint_Deterministic(t *testing.T) {
	a := Fingerprint("x", "y")
	b := Fingerprint("x", "y")
	c := Fingerprint("x", "z")

	if a != b {
		t.Error("Expected stable fingerprint")
	}
	if a == c {
		t.Error("Expected different inputs to differ")
	}
}

func TestMemoryCache_SetGetDelete(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("Expected miss for unknown key")
	}

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	val, found := c.Get("k")
	if !found || string(val) != "v" {
		t.Errorf("Expected hit with value 'v', got %q found=%v", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("Expected miss after delete")
	}
}

func TestDiskCache_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	c1 := NewDiskCache(dir, time.Hour)
	if err := c1.Set(Key("disposition", "fp", "interested"), []byte(`{"category":"positive_outcome"}`), time.Hour); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	c2 := NewDiskCache(dir, time.Hour)
	val, found := c2.Get(Key("disposition", "fp", "interested"))
	if !found {
		t.Fatal("Expected disk entry to survive a new cache instance")
	}
	if string(val) != `{"category":"positive_outcome"}` {
		t.Errorf("Unexpected value %q", val)
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	seed := NewDiskCache(dir, time.Hour)
	if err := seed.Set("k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	layered := NewLayeredCache(time.Minute, dir, time.Hour)
	val, found := layered.Get("k")
	if !found || string(val) != "v" {
		t.Fatalf("Expected layered cache to fall through to disk, got %q found=%v", val, found)
	}

	// Promoted entry answers from memory now
	if val, found := layered.memory.Get("k"); !found || string(val) != "v" {
		t.Error("Expected disk hit promoted into the memory layer")
	}
}
