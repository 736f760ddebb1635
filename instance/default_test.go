package instance

import "testing"

func TestDefaultCreatesOnFirstUse(t *testing.T) {
	ResetDefault()
	defer ResetDefault()

	m := Default()
	if m == nil {
		t.Fatal("Default returned nil")
	}
	if m != Default() {
		t.Error("Default returned a different module on second call")
	}
}

func TestInitDefaultWinsWhenFirst(t *testing.T) {
	ResetDefault()
	defer ResetDefault()

	custom := NewModule()
	InitDefault(custom)

	if Default() != custom {
		t.Error("InitDefault before first use did not take effect")
	}

	// A second init is a no-op once the default exists.
	other := NewModule()
	InitDefault(other)
	if Default() != custom {
		t.Error("second InitDefault replaced the default module")
	}
}

func TestPackageLevelAccessorsUseDefault(t *testing.T) {
	ResetDefault()
	defer ResetDefault()

	Mutable[counter]().N = 41
	Mutable[counter]().N++

	if got := Shared[counter]().N; got != 42 {
		t.Errorf("expected counter at 42, got %d", got)
	}
	if Destroyed[counter]() {
		t.Error("live instance reports destroyed")
	}
}

func TestPackageLevelGate(t *testing.T) {
	ResetDefault()
	defer ResetDefault()

	if Locked() {
		t.Fatal("default module starts locked")
	}

	Lock()
	if !Locked() {
		t.Error("Lock did not close the default gate")
	}

	catchViolation(t, func() {
		Mutable[counter]()
	})

	Unlock()
	if Locked() {
		t.Error("Unlock did not open the default gate")
	}
	if Mutable[counter]() == nil {
		t.Error("mutable access failed after unlock")
	}
}

func TestPackageLevelShutdown(t *testing.T) {
	ResetDefault()
	defer ResetDefault()

	Touch[counter]()
	Shutdown()

	if !Destroyed[counter]() {
		t.Error("counter not destroyed after package-level shutdown")
	}
	if !Default().Down() {
		t.Error("default module not down after shutdown")
	}
}
