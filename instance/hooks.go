package instance

// Initializer is implemented by instance types that need setup beyond their
// zero value. InitInstance runs exactly once, immediately after allocation
// and before any accessor returns the instance.
type Initializer interface {
	InitInstance()
}

// Finalizer is implemented by instance types that hold resources to release
// at teardown. FinalizeInstance runs during module shutdown, in reverse
// construction order, before the instance's destroyed flag is set.
type Finalizer interface {
	FinalizeInstance()
}
