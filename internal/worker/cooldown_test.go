package worker

import (
	"testing"
	"time"
)

func TestDispatchCooldown_ZeroWindowAlwaysReady(t *testing.T) {
	cd := NewDispatchCooldown()
	key := cd.Key("rule-1", "c-1")

	cd.Mark(key)
	if !cd.Ready(key, 0) {
		t.Error("Expected zero window to always be ready")
	}
	if !cd.Ready(key, -time.Second) {
		t.Error("Expected negative window to always be ready")
	}
}

func TestDispatchCooldown_HoldsInsideWindow(t *testing.T) {
	cd := NewDispatchCooldown()
	key := cd.Key("rule-1", "c-1")

	if !cd.Ready(key, time.Hour) {
		t.Fatal("Expected unmarked key to be ready")
	}
	cd.Mark(key)
	if cd.Ready(key, time.Hour) {
		t.Error("Expected key to be held inside the cooldown window")
	}
}

func TestDispatchCooldown_ReadyAfterWindow(t *testing.T) {
	cd := NewDispatchCooldown()
	key := cd.Key("rule-1", "c-1")

	cd.Mark(key)
	time.Sleep(30 * time.Millisecond)

	if !cd.Ready(key, 20*time.Millisecond) {
		t.Error("Expected key to be ready once the window elapsed")
	}
}

func TestDispatchCooldown_KeysIndependent(t *testing.T) {
	cd := NewDispatchCooldown()

	cd.Mark(cd.Key("rule-1", "c-1"))

	if !cd.Ready(cd.Key("rule-1", "c-2"), time.Hour) {
		t.Error("Expected a different contact to be unaffected")
	}
	if !cd.Ready(cd.Key("rule-2", "c-1"), time.Hour) {
		t.Error("Expected a different rule to be unaffected")
	}
}

func TestDispatchCooldown_KeySeparator(t *testing.T) {
	cd := NewDispatchCooldown()

	// "ab"+"c" and "a"+"bc" must not collide
	cd.Mark(cd.Key("ab", "c"))
	if !cd.Ready(cd.Key("a", "bc"), time.Hour) {
		t.Error("Expected distinct rule/contact pairs to have distinct keys")
	}
}
