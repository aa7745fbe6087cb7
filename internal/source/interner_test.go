package source

import (
	"sync"
	"testing"
)

func TestInternerBasic(t *testing.T) {
	in := NewInterner()
	a := in.Intern("felt252")
	b := in.Intern("felt252")
	if a != b || a == NoStringID {
		t.Fatalf("expected stable non-zero id, got %d and %d", a, b)
	}
	if s := in.MustLookup(a); s != "felt252" {
		t.Fatalf("MustLookup = %q", s)
	}
	if _, ok := in.Find("missing"); ok {
		t.Fatal("Find must not insert")
	}
	if in.Len() != 2 {
		t.Fatalf("Len = %d, want 2", in.Len())
	}
}

func TestInternerNormalizesNFC(t *testing.T) {
	in := NewInterner()
	composed := in.Intern("café")
	decomposed := in.Intern("café")
	if composed != decomposed {
		t.Fatalf("canonically equal identifiers got ids %d and %d", composed, decomposed)
	}
}

func TestInternerConcurrentIntern(t *testing.T) {
	in := NewInterner()
	names := []string{"a", "b", "c", "d"}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, n := range names {
				in.Intern(n)
			}
		}()
	}
	wg.Wait()

	if in.Len() != len(names)+1 {
		t.Fatalf("Len = %d, want %d", in.Len(), len(names)+1)
	}
}
