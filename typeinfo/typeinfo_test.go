package typeinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semreg/instance"
)

type exported struct {
	Name string
}

func TestPackageRegistration(t *testing.T) {
	instance.ResetDefault()
	defer instance.ResetDefault()

	require.NoError(t, Register[exported]("test.exported.v1", WithDescription("exported test type")))

	key, ok := KeyFor[exported]()
	require.True(t, ok)
	assert.Equal(t, "test.exported.v1", key)

	info, ok := Lookup("test.exported.v1")
	require.True(t, ok)
	assert.Equal(t, "exported test type", info.Description)

	v, err := New("test.exported.v1")
	require.NoError(t, err)
	assert.IsType(t, &exported{}, v)

	assert.Contains(t, Keys(), "test.exported.v1")
}

func TestMustRegisterPanicsOnConflict(t *testing.T) {
	instance.ResetDefault()
	defer instance.ResetDefault()

	MustRegister[exported]("conflict.key")

	require.Panics(t, func() {
		MustRegister[exported]("conflict.key.other")
	}, "re-registering the same type must panic")
}

func TestRegistrationAfterGateLockPanics(t *testing.T) {
	instance.ResetDefault()
	defer instance.ResetDefault()

	// Registration while the process initializes works.
	require.NoError(t, Register[exported]("locked.before"))

	// Once startup locks the gate, registration is a mutable access into
	// the locked module and fails loudly.
	instance.Lock()
	defer instance.Unlock()

	require.Panics(t, func() {
		_ = Register[otherPayload]("locked.after")
	})

	// Lookups keep working: they are shared access.
	_, ok := Lookup("locked.before")
	assert.True(t, ok)
}
