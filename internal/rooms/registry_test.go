package rooms

import (
	"reflect"
	"testing"
)

func TestJoinCreatesRoomAndPreservesOrder(t *testing.T) {
	r := NewRegistry()

	members, grew := r.Join("abc", "h1")
	if !grew {
		t.Fatal("expected first join to grow the room")
	}
	if !reflect.DeepEqual(members, []string{"h1"}) {
		t.Errorf("expected [h1], got %v", members)
	}

	members, grew = r.Join("abc", "h2")
	if !grew {
		t.Fatal("expected second join to grow the room")
	}
	if !reflect.DeepEqual(members, []string{"h1", "h2"}) {
		t.Errorf("expected join order preserved, got %v", members)
	}
}

func TestJoinIsIdempotent(t *testing.T) {
	r := NewRegistry()
	r.Join("abc", "h1")

	members, grew := r.Join("abc", "h1")
	if grew {
		t.Error("expected duplicate join to be a no-op")
	}
	if len(members) != 1 {
		t.Errorf("expected 1 member after duplicate join, got %d", len(members))
	}
}

func TestJoinThenLeaveDeletesRoom(t *testing.T) {
	r := NewRegistry()
	r.Join("abc", "h1")

	remaining, removed := r.Leave("abc", "h1")
	if !removed {
		t.Fatal("expected leave to remove the handle")
	}
	if len(remaining) != 0 {
		t.Errorf("expected empty room, got %v", remaining)
	}
	if got := r.MembersOf("abc"); len(got) != 0 {
		t.Errorf("expected no members, got %v", got)
	}
	if r.Len() != 0 {
		t.Errorf("expected room deleted, registry has %d rooms", r.Len())
	}
}

func TestLeaveMissingRoomIsNoop(t *testing.T) {
	r := NewRegistry()
	if _, removed := r.Leave("nope", "h1"); removed {
		t.Error("expected leave on missing room to be a no-op")
	}
}

func TestLeaveMissingHandleIsNoop(t *testing.T) {
	r := NewRegistry()
	r.Join("abc", "h1")

	remaining, removed := r.Leave("abc", "h2")
	if removed {
		t.Error("expected leave of absent handle to be a no-op")
	}
	if !reflect.DeepEqual(remaining, []string{"h1"}) {
		t.Errorf("expected [h1] untouched, got %v", remaining)
	}
}

func TestRemoveEverywhere(t *testing.T) {
	r := NewRegistry()
	r.Join("r1", "h1")
	r.Join("r1", "h")
	r.Join("r2", "h")

	affected := r.RemoveEverywhere("h")
	if len(affected) != 2 {
		t.Fatalf("expected 2 affected rooms, got %d", len(affected))
	}
	if !reflect.DeepEqual(affected["r1"], []string{"h1"}) {
		t.Errorf("expected r1 to keep h1, got %v", affected["r1"])
	}
	if len(affected["r2"]) != 0 {
		t.Errorf("expected r2 emptied, got %v", affected["r2"])
	}
	if r.State("r2") != StateEmpty {
		t.Error("expected r2 deleted")
	}
	if !reflect.DeepEqual(r.MembersOf("r1"), []string{"h1"}) {
		t.Errorf("expected r1 to survive with h1, got %v", r.MembersOf("r1"))
	}
}

func TestRemoveEverywhereUnknownHandle(t *testing.T) {
	r := NewRegistry()
	r.Join("r1", "h1")

	if affected := r.RemoveEverywhere("ghost"); len(affected) != 0 {
		t.Errorf("expected no affected rooms, got %v", affected)
	}
}

func TestState(t *testing.T) {
	r := NewRegistry()
	if r.State("abc") != StateEmpty {
		t.Error("expected empty state for missing room")
	}
	r.Join("abc", "h1")
	if r.State("abc") != StateOneJoined {
		t.Error("expected one_joined after first join")
	}
	r.Join("abc", "h2")
	if r.State("abc") != StateTwoJoined {
		t.Error("expected two_joined after second join")
	}
	r.Join("abc", "h3")
	if r.State("abc") != StateTwoJoined {
		t.Error("expected two_joined to hold beyond two members")
	}
}

func TestMembersOfReturnsCopy(t *testing.T) {
	r := NewRegistry()
	r.Join("abc", "h1")
	r.Join("abc", "h2")

	snapshot := r.MembersOf("abc")
	snapshot[0] = "tampered"

	if !reflect.DeepEqual(r.MembersOf("abc"), []string{"h1", "h2"}) {
		t.Error("expected registry state to be isolated from returned slices")
	}
}
