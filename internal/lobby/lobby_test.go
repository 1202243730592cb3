package lobby_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sagrada/internal/lobby"
)

func TestJoinAndStart(t *testing.T) {
	l := lobby.NewLobby("g", 4)
	if err := l.Start(); !errors.Is(err, lobby.ErrNotEnough) {
		t.Fatalf("empty start: %v", err)
	}
	if err := l.Join("a", "Ann"); err != nil {
		t.Fatal(err)
	}
	if l.CanStart() {
		t.Fatal("unready player can start")
	}
	if err := l.SetReady("a", true); err != nil {
		t.Fatal(err)
	}
	if !l.CanStart() {
		t.Fatal("a single ready player should be able to start a solo game")
	}
	if err := l.Start(); err != nil {
		t.Fatal(err)
	}
	if err := l.Start(); !errors.Is(err, lobby.ErrStarted) {
		t.Errorf("second start: %v", err)
	}
	if err := l.Join("b", "Bob"); !errors.Is(err, lobby.ErrStarted) {
		t.Errorf("join after start: %v", err)
	}
	if err := l.Join("a", "Annie"); err != nil {
		t.Errorf("rejoin after start: %v", err)
	}
	if got := l.GetPlayers(); len(got) != 1 || got[0].Name != "Annie" {
		t.Errorf("players = %+v", got)
	}
}

func TestLobbyLimits(t *testing.T) {
	l := lobby.NewLobby("g", 4)
	for _, id := range []string{"a", "b", "c", "d"} {
		if err := l.Join(id, "P"+id); err != nil {
			t.Fatal(err)
		}
	}
	if err := l.Join("e", "Pe"); !errors.Is(err, lobby.ErrFull) {
		t.Errorf("fifth player: %v", err)
	}
	if err := l.Join("", "x"); !errors.Is(err, lobby.ErrMissingDetails) {
		t.Errorf("blank id: %v", err)
	}
	if err := l.SetReady("z", true); !errors.Is(err, lobby.ErrUnknownPlayer) {
		t.Errorf("unknown ready: %v", err)
	}
	l.Leave("b")
	if n := len(l.GetPlayers()); n != 3 {
		t.Errorf("after leave: %d players", n)
	}
	for _, id := range []string{"a", "c", "d"} {
		_ = l.SetReady(id, true)
	}
	if !l.CanStart() {
		t.Error("all ready but cannot start")
	}
}

func TestManager(t *testing.T) {
	m := lobby.NewManager(3, zap.NewNop())
	id := m.Create()
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("lobby id %q: %v", id, err)
	}
	l := m.Get(id)
	if l == nil || l.MaxPlayers != 3 {
		t.Fatalf("lobby = %+v", l)
	}
	if m.Create() == id {
		t.Error("duplicate lobby id")
	}
	m.Remove(id)
	if m.Get(id) != nil || m.Len() != 1 {
		t.Error("remove did not forget the lobby")
	}
}
