package vars_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/ardnew/varsub/env"
	"github.com/ardnew/varsub/vars"
)

func TestEnviron_Declare(t *testing.T) {
	t.Parallel()

	p := env.NewMap()
	s := vars.NewEnviron(p)

	v, err := s.Declare("TEST_VAR", "value")
	if err != nil {
		t.Fatalf("Declare() error = %v", err)
	}

	if got, ok := p.Getenv("TEST_VAR"); !ok || got != "value" {
		t.Errorf("Getenv() = %q, %v", got, ok)
	}

	if v.Get() != "value" || v.Type() != reflect.TypeFor[string]() || v.String() != "TEST_VAR=value" {
		t.Errorf("variable = %v (%v)", v, v.Type())
	}

	if s.Variable("TEST_VAR") != v {
		t.Error("Variable() did not return the tracked proxy")
	}

	if _, err := s.Declare("TEST_VAR", "other"); !errors.Is(err, vars.ErrDuplicateDeclaration) {
		t.Errorf("second Declare() error = %v, want ErrDuplicateDeclaration", err)
	} else if name, _ := vars.NameOf(err); name != "TEST_VAR" {
		t.Errorf("NameOf() = %q", name)
	}

	if got, _ := p.Getenv("TEST_VAR"); got != "value" {
		t.Errorf("duplicate declaration changed value to %q", got)
	}
}

func TestEnviron_DeclareRejects(t *testing.T) {
	t.Parallel()

	type label string

	p := env.NewMap()
	s := vars.NewEnviron(p)

	tests := []struct {
		name    string
		typ     reflect.Type
		value   any
		wantErr error
		text    string
	}{
		{"undefined", nil, nil, vars.ErrNotSupported, "cannot declare undefined environment variables"},
		{"int", nil, 1, vars.ErrNotSupported, "cannot declare int variables"},
		{"declared_int", reflect.TypeFor[int](), "1", vars.ErrNotSupported, "cannot declare int variables"},
		{"named_string", nil, label("x"), vars.ErrNotSupported, "variables"},
		{"string_type_int_value", reflect.TypeFor[string](), 1, vars.ErrInvalidValueType, "invalid value type"},
	}

	for _, tt := range tests {
		_, err := s.DeclareType("X", tt.typ, tt.value)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: error = %v, want %v", tt.name, err, tt.wantErr)

			continue
		}

		if !strings.Contains(err.Error(), tt.text) {
			t.Errorf("%s: error %q does not contain %q", tt.name, err, tt.text)
		}
	}

	if _, err := s.Declare("1X", "v"); !errors.Is(err, vars.ErrIllegalName) {
		t.Errorf("Declare(1X) error = %v, want ErrIllegalName", err)
	}

	if len(p.Names()) != 0 || len(s.Declared()) != 0 {
		t.Errorf("rejected declarations left state: %v %v", p.Names(), s.Declared())
	}
}

func TestEnviron_Variable(t *testing.T) {
	t.Parallel()

	p := env.NewMap("EXTERNAL", "ext", "EMPTY", "")
	s := vars.NewEnviron(p)

	if s.Variable("I_AM_PRETTY_SURE_THERE_IS_NO_SUCH_ENVIRONMENT_VARIABLE") != nil {
		t.Error("expected nil for missing variable")
	}

	v := s.Variable("EXTERNAL")
	if v == nil || v.Get() != "ext" {
		t.Fatalf("Variable(EXTERNAL) = %v", v)
	}

	if e := s.Variable("EMPTY"); e == nil || e.Get() != "" {
		t.Errorf("Variable(EMPTY) = %v", e)
	}

	// external changes are visible through the proxy
	_ = p.Export("EXTERNAL", "changed")

	if v.Get() != "changed" {
		t.Errorf("Get() = %v, want changed", v.Get())
	}

	prev, err := v.Set("set")
	if err != nil || prev != "changed" {
		t.Errorf("Set() = %v, %v", prev, err)
	}

	if got, _ := p.Getenv("EXTERNAL"); got != "set" {
		t.Errorf("Set() did not export: %q", got)
	}

	if len(s.Declared()) != 0 {
		t.Errorf("Declared() = %v, want none", s.Declared())
	}
}

func TestEnviron_Undeclare(t *testing.T) {
	t.Parallel()

	p := env.NewMap()
	s := vars.NewEnviron(p)

	v, err := s.Declare("TEST_VAR", "value")
	if err != nil {
		t.Fatalf("Declare() error = %v", err)
	}

	u, err := s.Undeclare("TEST_VAR")
	if err != nil || u != v {
		t.Fatalf("Undeclare() = %v, %v", u, err)
	}

	if _, ok := p.Getenv("TEST_VAR"); ok {
		t.Error("variable still present in environment")
	}

	if s.Variable("TEST_VAR") != nil {
		t.Error("scope still reports a binding")
	}

	if len(s.Declared()) != 0 {
		t.Errorf("Declared() = %v", s.Declared())
	}

	// the proxy keeps its snapshot
	if v.Get() != "value" {
		t.Errorf("Get() after Undeclare = %v, want value", v.Get())
	}

	prev, err := v.Set("local")
	if err != nil || prev != "value" || v.Get() != "local" {
		t.Errorf("Set() after Undeclare = %v, %v; Get() = %v", prev, err, v.Get())
	}

	if _, ok := p.Getenv("TEST_VAR"); ok {
		t.Error("detached proxy exported its value")
	}

	// the name can be declared again
	if _, err := s.Declare("TEST_VAR", "again"); err != nil {
		t.Errorf("re-Declare() error = %v", err)
	}

	if v.Get() != "local" {
		t.Errorf("detached proxy reattached: %v", v.Get())
	}

	if u, err := s.Undeclare("MISSING"); u != nil || err != nil {
		t.Errorf("Undeclare(MISSING) = %v, %v", u, err)
	}
}

func TestEnviron_UndeclareExternal(t *testing.T) {
	t.Parallel()

	p := env.NewMap("EXTERNAL", "ext")
	s := vars.NewEnviron(p)

	u, err := s.Undeclare("EXTERNAL")
	if err != nil || u == nil || u.Get() != "ext" {
		t.Fatalf("Undeclare() = %v, %v", u, err)
	}

	if _, ok := p.Getenv("EXTERNAL"); ok {
		t.Error("variable still present")
	}

	// externally removed after declaration
	v, _ := s.Declare("GONE", "x")
	_ = p.Unset("GONE")

	if u, err := s.Undeclare("GONE"); u != nil || err != nil {
		t.Errorf("Undeclare(GONE) = %v, %v", u, err)
	}

	if v.Get() != nil {
		t.Errorf("Get() = %v, want nil", v.Get())
	}

	if len(s.Declared()) != 0 {
		t.Errorf("Declared() = %v", s.Declared())
	}
}

// lockedMap is a provider that refuses to unset names.
type lockedMap struct{ *env.Map }

var errLocked = errors.New("locked")

func (lockedMap) Unset(string) error { return errLocked }

func TestEnviron_UndeclareUnsetFails(t *testing.T) {
	t.Parallel()

	p := lockedMap{env.NewMap()}
	s := vars.NewEnviron(p)

	v, err := s.Declare("A", "a")
	if err != nil {
		t.Fatalf("Declare() error = %v", err)
	}

	if got, err := s.Undeclare("A"); !errors.Is(err, vars.ErrNotSupported) ||
		!errors.Is(err, errLocked) || got != nil {
		t.Fatalf("Undeclare() = %v, %v", got, err)
	}

	if got, ok := p.Getenv("A"); !ok || got != "a" {
		t.Errorf("Getenv() = %q, %v", got, ok)
	}

	if got := s.Declared(); len(got) != 1 || got[0] != v {
		t.Errorf("Declared() = %v, want [%v]", got, v)
	}

	if s.Variable("A") != v {
		t.Error("Variable() is not the tracked variable")
	}

	if _, err := s.Declare("A", "b"); !errors.Is(err, vars.ErrDuplicateDeclaration) {
		t.Errorf("redeclare error = %v, want ErrDuplicateDeclaration", err)
	}

	if _, err := v.Set("c"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if got, _ := p.Getenv("A"); got != "c" {
		t.Errorf("Set() on still-declared variable exported %q", got)
	}
}

func TestEnviron_SetRejects(t *testing.T) {
	t.Parallel()

	s := vars.NewEnviron(env.NewMap())

	v, err := s.Declare("TEST_VAR", "value")
	if err != nil {
		t.Fatalf("Declare() error = %v", err)
	}

	if _, err := v.Set(nil); !errors.Is(err, vars.ErrNotSupported) {
		t.Errorf("Set(nil) error = %v", err)
	}

	if _, err := v.Set(1); !errors.Is(err, vars.ErrNotSupported) {
		t.Errorf("Set(1) error = %v", err)
	}

	if v.Get() != "value" {
		t.Errorf("rejected Set changed value to %v", v.Get())
	}
}

func TestEnviron_Declared(t *testing.T) {
	t.Parallel()

	s := vars.NewEnviron(env.NewMap("OTHER", "o"))
	declare(t, s, "B", "b", "A", "a", "C", "c")

	if _, err := s.Undeclare("A"); err != nil {
		t.Fatal(err)
	}

	got := s.Declared()
	if len(got) != 2 || got[0].Name() != "B" || got[1].Name() != "C" {
		t.Errorf("Declared() = %v", got)
	}
}

func TestEnviron_Resolve(t *testing.T) {
	t.Parallel()

	p := env.NewMap("HOME", "/home/x")
	s := vars.NewEnviron(p)

	got, err := vars.Resolve("$HOME/${SUB}", false, s)
	if err != nil || got != "/home/x/${SUB}" {
		t.Fatalf("Resolve() = %q, %v", got, err)
	}

	declare(t, s, "SUB", "bin")

	got, err = vars.Resolve("$HOME/${SUB}", true, s)
	if err != nil || got != "/home/x/bin" {
		t.Errorf("Resolve() = %q, %v", got, err)
	}

	// a memory scope chained to the environment
	m := vars.New(vars.WithEnclosing(s))
	declare(t, m, "HOME", "/override")

	got, err = vars.Resolve("$HOME/${SUB}", true, m)
	if err != nil || got != "/override/bin" {
		t.Errorf("Resolve() = %q, %v", got, err)
	}
}

//nolint:paralleltest // mutates the process environment
func TestEnviron_System(t *testing.T) {
	t.Setenv("VARSUB_ENVIRON_TEST", "sys")
	t.Cleanup(env.Reset)

	s := vars.NewEnviron(nil)
	if _, ok := s.Provider().(env.System); !ok {
		t.Fatalf("Provider() = %T, want env.System", s.Provider())
	}

	if v := s.Variable("VARSUB_ENVIRON_TEST"); v == nil || v.Get() != "sys" {
		t.Errorf("Variable() = %v", v)
	}

	m := env.NewMap("VARSUB_ENVIRON_TEST", "fake")
	env.SetDefault(m)

	if v := vars.NewEnviron(nil).Variable("VARSUB_ENVIRON_TEST"); v == nil || v.Get() != "fake" {
		t.Errorf("Variable() with default override = %v", v)
	}
}
