package registry

import (
	"testing"

	"github.com/vovakirdan/strafe/internal/combat"
)

type nopStrategy struct{}

func (nopStrategy) Kind() string         { return "nop" }
func (nopStrategy) Fire(_ *combat.Shot) {}

func TestRegisterAndCreate(t *testing.T) {
	Register("test-nop", "does nothing", func() combat.SpawnStrategy { return nopStrategy{} })

	if !Exists("test-nop") {
		t.Fatal("Exists(test-nop) = false, expected true")
	}

	s, err := Create("test-nop")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if s.Kind() != "nop" {
		t.Errorf("Kind() = %q, expected nop", s.Kind())
	}

	found := false
	for _, info := range List() {
		if info.Kind == "test-nop" && info.Description == "does nothing" {
			found = true
		}
	}
	if !found {
		t.Error("List() does not contain test-nop")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-weapon"); err == nil {
		t.Error("Create(unknown) expected error")
	}
	if Exists("no-such-weapon") {
		t.Error("Exists(unknown) = true, expected false")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test-dup", "", func() combat.SpawnStrategy { return nopStrategy{} })

	defer func() {
		if recover() == nil {
			t.Error("Register(duplicate) did not panic")
		}
	}()
	Register("test-dup", "", func() combat.SpawnStrategy { return nopStrategy{} })
}

func TestListSorted(t *testing.T) {
	Register("test-z", "", func() combat.SpawnStrategy { return nopStrategy{} })
	Register("test-a", "", func() combat.SpawnStrategy { return nopStrategy{} })

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].Kind > list[i].Kind {
			t.Errorf("List() not sorted: %q before %q", list[i-1].Kind, list[i].Kind)
		}
	}
}
