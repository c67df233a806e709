package chains

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryResolvesSeededChains(t *testing.T) {
	reg := New()

	name, ok := reg.Resolve(1)
	assert.True(t, ok)
	assert.Equal(t, "Ethereum", name)

	name, ok = reg.Resolve(42161)
	assert.True(t, ok)
	assert.Equal(t, "Arbitrum One", name)

	_, ok = reg.Resolve(424242)
	assert.False(t, ok)
}

func TestRegistryRegisterOverridesAndAdds(t *testing.T) {
	reg := New()

	reg.Register(31337, "Localnet")
	name, ok := reg.Resolve(31337)
	assert.True(t, ok)
	assert.Equal(t, "Localnet", name)

	reg.Register(1, "Ethereum Mainnet")
	name, _ = reg.Resolve(1)
	assert.Equal(t, "Ethereum Mainnet", name)
}
