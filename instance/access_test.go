package instance

import (
	"sync"
	"sync/atomic"
	"testing"
)

type counter struct {
	N int
}

type gadget struct {
	Name string
}

var hookedInits atomic.Int32

type hooked struct {
	Ready bool
}

func (h *hooked) InitInstance() {
	h.Ready = true
	hookedInits.Add(1)
}

// catchViolation runs fn and returns the *Violation it panics with.
// Fails the test if fn does not panic or panics with something else.
func catchViolation(t *testing.T, fn func()) (v *Violation) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a violation panic")
		}
		var ok bool
		v, ok = r.(*Violation)
		if !ok {
			t.Fatalf("panic value is %T, want *Violation", r)
		}
	}()
	fn()
	return nil
}

func TestAccessorsReturnSameInstance(t *testing.T) {
	m := NewModule()

	mutable := MutableIn[counter](m)
	shared := SharedIn[counter](m)

	if mutable == nil {
		t.Fatal("expected a constructed instance")
	}
	if mutable != shared {
		t.Error("mutable and shared accessors returned different instances")
	}
	if again := MutableIn[counter](m); again != mutable {
		t.Error("repeated access returned a different instance")
	}
}

func TestDistinctTypesGetDistinctInstances(t *testing.T) {
	m := NewModule()

	c := MutableIn[counter](m)
	g := MutableIn[gadget](m)

	if c == nil || g == nil {
		t.Fatal("expected both instances to construct")
	}
	if m.Len() != 2 {
		t.Errorf("expected 2 constructed instances, got %d", m.Len())
	}
}

func TestConstructionIsLazy(t *testing.T) {
	m := NewModule()

	if m.Len() != 0 {
		t.Fatalf("expected no instances before first access, got %d", m.Len())
	}

	TouchIn[counter](m)

	if m.Len() != 1 {
		t.Errorf("expected 1 instance after touch, got %d", m.Len())
	}
	if DestroyedIn[counter](m) {
		t.Error("freshly constructed instance reports destroyed")
	}
}

func TestCounterAccumulatesAcrossAccessors(t *testing.T) {
	m := NewModule()

	MutableIn[counter](m).N++
	MutableIn[counter](m).N++
	MutableIn[counter](m).N++

	if got := SharedIn[counter](m).N; got != 3 {
		t.Errorf("expected counter at 3, got %d", got)
	}
}

func TestInitializerRunsOnce(t *testing.T) {
	m := NewModule()
	before := hookedInits.Load()

	h := SharedIn[hooked](m)
	if !h.Ready {
		t.Error("InitInstance did not run before first access returned")
	}

	SharedIn[hooked](m)
	MutableIn[hooked](m)

	if got := hookedInits.Load() - before; got != 1 {
		t.Errorf("InitInstance ran %d times, want 1", got)
	}
}

func TestMutableWhileLockedPanics(t *testing.T) {
	m := NewModule()
	m.Lock()

	v := catchViolation(t, func() {
		MutableIn[counter](m)
	})
	if v.Handle != m.Handle() {
		t.Errorf("violation names module %q, want %q", v.Handle, m.Handle())
	}
	if v.Error() == "" {
		t.Error("violation has empty error text")
	}
}

func TestSharedAccessIgnoresGate(t *testing.T) {
	m := NewModule()
	TouchIn[counter](m)
	m.Lock()

	// Shared access keeps working while locked, including first-time
	// construction of a type not seen before the lock.
	if SharedIn[counter](m) == nil {
		t.Error("shared access failed while locked")
	}
	if SharedIn[gadget](m) == nil {
		t.Error("shared construction failed while locked")
	}
}

func TestUnlockRestoresMutableAccess(t *testing.T) {
	m := NewModule()
	m.Lock()
	m.Unlock()

	if MutableIn[counter](m) == nil {
		t.Error("mutable access failed after unlock")
	}
}

func TestUncheckedModeSkipsPanic(t *testing.T) {
	m := NewModule()
	m.SetEnforcement(Unchecked)
	m.Lock()

	c := MutableIn[counter](m)
	if c == nil {
		t.Fatal("unchecked mutable access did not proceed")
	}
	c.N = 7
	if SharedIn[counter](m).N != 7 {
		t.Error("unchecked mutable access did not reach the instance")
	}
}

func TestDestroyedNeverConstructedReportsFalse(t *testing.T) {
	m := NewModule()
	TouchIn[counter](m)
	m.Shutdown()

	if DestroyedIn[gadget](m) {
		t.Error("never-constructed type reports destroyed after shutdown")
	}
	if !DestroyedIn[counter](m) {
		t.Error("constructed type does not report destroyed after shutdown")
	}
}

func TestAccessAfterShutdownPanics(t *testing.T) {
	tests := []struct {
		name   string
		access func(m *Module)
	}{
		{"mutable", func(m *Module) { MutableIn[counter](m) }},
		{"shared", func(m *Module) { SharedIn[counter](m) }},
		{"touch", func(m *Module) { TouchIn[counter](m) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModule()
			TouchIn[counter](m)
			m.Shutdown()

			catchViolation(t, func() {
				tt.access(m)
			})
		})
	}
}

func TestUncheckedAccessAfterShutdownProceeds(t *testing.T) {
	m := NewModule()
	m.SetEnforcement(Unchecked)
	m.Shutdown()

	if MutableIn[counter](m) == nil {
		t.Error("unchecked access after shutdown did not proceed")
	}
	// Constructed after teardown, so never finalized: the flag stays false.
	if DestroyedIn[counter](m) {
		t.Error("post-shutdown construction reports destroyed")
	}
}

func TestConcurrentAccessConstructsOnce(t *testing.T) {
	m := NewModule()

	const goroutines = 64
	var wg sync.WaitGroup
	ptrs := make([]*counter, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ptrs[i] = SharedIn[counter](m)
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		if ptrs[i] != ptrs[0] {
			t.Fatalf("goroutine %d saw a different instance", i)
		}
	}
	if m.Len() != 1 {
		t.Errorf("expected 1 constructed instance, got %d", m.Len())
	}
}
