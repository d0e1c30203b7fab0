package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultRegistryPreregistersBaseline(t *testing.T) {
	r := NewDefaultRegistry()
	m, err := r.Get("baseline-d20")
	require.NoError(t, err)
	assert.Equal(t, "Baseline d20", m.Name())
}

func TestRegistryGetUnknownModuleErrors(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("does-not-exist")
	assert.Error(t, err)
}

func TestRegistryRegisterOverwritesSameID(t *testing.T) {
	r := NewRegistry()
	r.Register(NewBaseline())
	r.Register(NewBaseline())
	assert.Len(t, r.IDs(), 1)
}

func TestRegistryIDsIncludesEveryRegisteredModule(t *testing.T) {
	r := NewRegistry()
	r.Register(NewBaseline())
	h, err := NewHomebrew(nil)
	require.NoError(t, err)
	r.Register(h)

	ids := r.IDs()
	assert.Contains(t, ids, "baseline-d20")
	assert.Contains(t, ids, "homebrew")
}
