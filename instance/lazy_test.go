package instance

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestLazyZeroValue(t *testing.T) {
	var lazy Lazy[counter]

	if lazy.Initialized() {
		t.Fatal("zero-value Lazy reports initialized")
	}

	c := lazy.Get()
	if c == nil {
		t.Fatal("Get returned nil")
	}
	if !lazy.Initialized() {
		t.Error("Lazy does not report initialized after Get")
	}
	if lazy.Get() != c {
		t.Error("second Get returned a different instance")
	}
}

func TestLazyRunsInitializerHook(t *testing.T) {
	var lazy Lazy[hooked]

	if !lazy.Get().Ready {
		t.Error("InitInstance did not run during lazy construction")
	}
}

func TestLazyCustomConstructor(t *testing.T) {
	lazy := Lazy[counter]{New: func() *counter {
		return &counter{N: 10}
	}}

	if got := lazy.Get().N; got != 10 {
		t.Errorf("custom constructor not used, N = %d", got)
	}
}

func TestLazyConstructsOnceUnderContention(t *testing.T) {
	var constructions atomic.Int32
	lazy := Lazy[counter]{New: func() *counter {
		constructions.Add(1)
		return &counter{}
	}}

	const goroutines = 64
	var wg sync.WaitGroup
	ptrs := make([]*counter, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ptrs[i] = lazy.Get()
		}(i)
	}
	wg.Wait()

	if got := constructions.Load(); got != 1 {
		t.Errorf("constructor ran %d times, want 1", got)
	}
	for i := 1; i < goroutines; i++ {
		if ptrs[i] != ptrs[0] {
			t.Fatalf("goroutine %d saw a different instance", i)
		}
	}
}
