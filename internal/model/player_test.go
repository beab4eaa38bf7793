package model

import "testing"

func TestNewPlayer_Defaults(t *testing.T) {
	p := NewPlayer(2, "peppy")
	if p.ID != 2 || p.Name != "peppy" {
		t.Fatalf("identity: %+v", p)
	}
	if p.Accuracy != 100.0 {
		t.Fatalf("accuracy = %v, want 100", p.Accuracy)
	}
	if p.Spectators == nil || p.Spectators.Len() != 0 {
		t.Fatal("spectator set not initialized")
	}
	if !p.HasPresence() {
		t.Fatal("named player must have presence")
	}
}

func TestPlayer_HasPresencePlaceholder(t *testing.T) {
	p := NewPlayer(7, "")
	if p.HasPresence() {
		t.Fatal("placeholder must not report presence")
	}
}

func TestPlayerSet_AddRemove(t *testing.T) {
	set := NewPlayerSet()
	a := NewPlayer(1, "a")
	b := NewPlayer(2, "b")

	set.Add(a)
	set.Add(b)
	if set.Len() != 2 {
		t.Fatalf("len = %d, want 2", set.Len())
	}
	if !set.Contains(a) {
		t.Fatal("set must contain a")
	}

	// Re-adding the same id replaces, not duplicates.
	set.Add(NewPlayer(1, "a2"))
	if set.Len() != 2 {
		t.Fatalf("len after replace = %d, want 2", set.Len())
	}

	set.Remove(a)
	if set.Contains(a) {
		t.Fatal("set still contains a after Remove")
	}

	// Removing an absent player is a no-op.
	set.Remove(a)
	if set.Len() != 1 {
		t.Fatalf("len = %d, want 1", set.Len())
	}
}

func TestPlayerSet_Snapshot(t *testing.T) {
	set := NewPlayerSet()
	set.Add(NewPlayer(1, "a"))
	set.Add(NewPlayer(2, "b"))

	snap := set.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("snapshot len = %d, want 2", len(snap))
	}

	// Mutating the set must not affect an existing snapshot.
	set.Remove(snap[0])
	if len(snap) != 2 {
		t.Fatal("snapshot changed after mutation")
	}
}
