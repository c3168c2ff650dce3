package effectchain

import (
	"errors"
	"testing"
)

func dummyFactory(_ Context) (Runtime, error) {
	return &stubRuntime{}, nil
}

func TestRegistryRegister(t *testing.T) {
	t.Parallel()

	t.Run("registers and looks up factory", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry()

		err := r.Register("tube", dummyFactory)
		if err != nil {
			t.Fatalf("Register returned unexpected error: %v", err)
		}

		if r.Lookup("tube") == nil {
			t.Fatal("Lookup returned nil for registered type")
		}

		if r.Lookup("missing") != nil {
			t.Fatal("Lookup returned factory for unknown type")
		}
	})

	t.Run("rejects empty effect type", func(t *testing.T) {
		t.Parallel()

		if err := NewRegistry().Register("", dummyFactory); err == nil {
			t.Fatal("expected error for empty effect type")
		}
	})

	t.Run("rejects nil factory", func(t *testing.T) {
		t.Parallel()

		if err := NewRegistry().Register("tube", nil); err == nil {
			t.Fatal("expected error for nil factory")
		}
	})

	t.Run("rejects duplicate registration", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry()
		_ = r.Register("tube", dummyFactory)

		err := r.Register("tube", dummyFactory)
		if !errors.Is(err, errDuplicateEffect) {
			t.Fatalf("error = %v, want errDuplicateEffect", err)
		}
	})
}

func TestRegistryMustRegisterPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()

	r := NewRegistry()
	r.MustRegister("x", dummyFactory)
	r.MustRegister("x", dummyFactory)
}

func TestRegistryTypesSorted(t *testing.T) {
	t.Parallel()

	got := testRegistry().Types()
	want := []string{"add", "gain", "stub"}

	if len(got) != len(want) {
		t.Fatalf("Types() = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Types() = %v, want %v", got, want)
		}
	}
}
