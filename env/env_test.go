package env

import (
	"slices"
	"testing"
)

func TestSystem_Getenv(t *testing.T) {
	t.Setenv("VARSUB_TEST_PRESENT", "value")
	t.Setenv("VARSUB_TEST_EMPTY", "")

	var p System

	if v, ok := p.Getenv("VARSUB_TEST_PRESENT"); !ok || v != "value" {
		t.Errorf("Getenv = %q, %v; want %q, true", v, ok, "value")
	}

	if v, ok := p.Getenv("VARSUB_TEST_EMPTY"); !ok || v != "" {
		t.Errorf("Getenv = %q, %v; want empty, true", v, ok)
	}

	if _, ok := p.Getenv("I_AM_PRETTY_SURE_THERE_IS_NO_SUCH_ENVIRONMENT_VARIABLE"); ok {
		t.Error("expected missing variable")
	}
}

func TestSystem_ExportUnset(t *testing.T) {
	// registers cleanup of the variable
	t.Setenv("VARSUB_TEST_EXPORT", "before")

	var p System

	if err := p.Export("VARSUB_TEST_EXPORT", "after"); err != nil {
		t.Fatalf("Export: %v", err)
	}

	if v, _ := p.Getenv("VARSUB_TEST_EXPORT"); v != "after" {
		t.Errorf("expected after, got %q", v)
	}

	if !slices.Contains(p.Names(), "VARSUB_TEST_EXPORT") {
		t.Error("expected exported name in Names")
	}

	if err := p.Unset("VARSUB_TEST_EXPORT"); err != nil {
		t.Fatalf("Unset: %v", err)
	}

	if _, ok := p.Getenv("VARSUB_TEST_EXPORT"); ok {
		t.Error("expected variable unset")
	}
}

func TestMap(t *testing.T) {
	m := NewMap("A", "1", "B", "2", "dangling")

	if v, ok := m.Getenv("A"); !ok || v != "1" {
		t.Errorf("Getenv(A) = %q, %v", v, ok)
	}

	if _, ok := m.Getenv("dangling"); ok {
		t.Error("expected dangling name to be ignored")
	}

	_ = m.Export("C", "3")
	_ = m.Unset("A")

	if got := m.Names(); !slices.Equal(got, []string{"B", "C"}) {
		t.Errorf("Names = %v", got)
	}

	var zero Map
	if err := zero.Export("X", "y"); err != nil {
		t.Fatalf("zero Map Export: %v", err)
	}

	if v, ok := zero.Getenv("X"); !ok || v != "y" {
		t.Errorf("zero Map Getenv = %q, %v", v, ok)
	}
}

func TestNames(t *testing.T) {
	got := names([]string{"B=1", "A=2", "B=3", "=hidden", "noequals", "C="})

	if !slices.Equal(got, []string{"A", "B", "C"}) {
		t.Errorf("names = %v", got)
	}
}

func TestDefault(t *testing.T) {
	t.Cleanup(Reset)

	if _, ok := Default().(System); !ok {
		t.Fatalf("expected System default, got %T", Default())
	}

	m := NewMap()

	prev := SetDefault(m)
	if _, ok := prev.(System); !ok {
		t.Errorf("expected previous System, got %T", prev)
	}

	if Default() != Provider(m) {
		t.Error("expected Map default after SetDefault")
	}

	Reset()

	if _, ok := Default().(System); !ok {
		t.Errorf("expected System after Reset, got %T", Default())
	}
}
