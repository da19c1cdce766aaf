package registry

import (
	"context"
	"testing"
	"time"
)

type stubFrontend struct{ id string }

func (s stubFrontend) ID() string    { return s.id }
func (s stubFrontend) Title() string { return "Stub " + s.id }
func (s stubFrontend) Run(context.Context, Env) (Result, error) {
	return Result{Frontend: s.id}, nil
}

func TestRegistry(t *testing.T) {
	Register("zz-stub", func() Frontend { return stubFrontend{id: "zz-stub"} })
	Register("aa-stub", func() Frontend { return stubFrontend{id: "aa-stub"} })

	if !Exists("zz-stub") || Exists("missing") {
		t.Error("Exists() does not reflect registrations")
	}

	list := List()
	if len(list) < 2 || list[0].ID != "aa-stub" {
		t.Errorf("List() not sorted: %+v", list)
	}
	for _, info := range list {
		if info.ID == "zz-stub" && info.Title != "Stub zz-stub" {
			t.Errorf("title = %q", info.Title)
		}
	}

	f, err := Create("aa-stub")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if f.ID() != "aa-stub" {
		t.Errorf("created %q", f.ID())
	}

	if _, err := Create("missing"); err == nil {
		t.Error("Create() of an unknown ID should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup-stub", func() Frontend { return stubFrontend{id: "dup-stub"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("dup-stub", func() Frontend { return stubFrontend{id: "dup-stub"} })
}

func TestResultTicksPerSec(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		want float64
	}{
		{"zero elapsed", Result{Ticks: 100}, 0},
		{"two seconds", Result{Ticks: 1000, Elapsed: 2 * time.Second}, 500},
	}
	for _, tc := range tests {
		if got := tc.res.TicksPerSec(); got != tc.want {
			t.Errorf("%s: TicksPerSec() = %v, expected %v", tc.name, got, tc.want)
		}
	}
}
