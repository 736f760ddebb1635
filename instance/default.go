package instance

import "sync"

// Default module instance and initialization guard.
var (
	defaultModule *Module
	defaultOnce   sync.Once
)

// Default returns the process-wide default module.
// Creates a module on first call if not already initialized.
func Default() *Module {
	defaultOnce.Do(func() {
		defaultModule = NewModule()
	})
	return defaultModule
}

// InitDefault initializes the default module with a custom instance.
// Must be called before any call to Default() to take effect.
// Safe for concurrent use but only the first call has any effect.
func InitDefault(m *Module) {
	defaultOnce.Do(func() {
		defaultModule = m
	})
}

// ResetDefault resets the default module for testing purposes.
// This is NOT thread-safe and should only be used in tests.
func ResetDefault() {
	defaultOnce = sync.Once{}
	defaultModule = nil
}

// Lock closes the default module's gate.
func Lock() {
	Default().Lock()
}

// Unlock opens the default module's gate.
func Unlock() {
	Default().Unlock()
}

// Locked reports whether the default module's gate is closed.
func Locked() bool {
	return Default().Locked()
}

// Shutdown tears down the default module.
func Shutdown() {
	Default().Shutdown()
}
