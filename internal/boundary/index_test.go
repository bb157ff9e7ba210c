package boundary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionIDs_KnownCountries(t *testing.T) {
	idx, err := New()
	require.NoError(t, err)

	// Ankara
	assert.Contains(t, idx.RegionIDs(39.93, 32.86), "TR")
	// Berlin
	assert.Contains(t, idx.RegionIDs(52.52, 13.40), "DE")
	// Oklahoma City
	assert.Contains(t, idx.RegionIDs(35.47, -97.52), "US")
}

func TestRegionIDs_ReturnsBothISOForms(t *testing.T) {
	idx, err := New()
	require.NoError(t, err)

	ids := idx.RegionIDs(39.93, 32.86)
	assert.Contains(t, ids, "TR")
	assert.Contains(t, ids, "TUR")
}

func TestRegionIDs_OpenOcean(t *testing.T) {
	idx, err := New()
	require.NoError(t, err)

	assert.Empty(t, idx.RegionIDs(0, -30))
}

func TestShared_ReturnsSameIndex(t *testing.T) {
	a, err := Shared()
	require.NoError(t, err)
	b, err := Shared()
	require.NoError(t, err)

	assert.Same(t, a, b)
}
