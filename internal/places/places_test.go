package places

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/morsel/internal/morse"
)

func TestFindCollisionsGroupsSharedCodes(t *testing.T) {
	// ETA and AA both encode as .-.-, NA and X both as -..-
	names := []string{"Eta", "aa", "Na", "X", "Zzz", "eta"}
	got := FindCollisions(names, morse.Standard())
	require.Len(t, got, 2)
	assert.Equal(t, Collision{Code: "-..-", Names: []string{"Na", "X"}}, got[0])
	assert.Equal(t, Collision{Code: ".-.-", Names: []string{"Eta", "aa"}}, got[1])
}

func TestFindCollisionsIgnoresRepeatedNames(t *testing.T) {
	got := FindCollisions([]string{"Georgia", "Georgia", "São Tomé", "Sao Tome"}, morse.Standard())
	assert.Empty(t, got, "spellings of one name do not collide")
}

func TestAllTables(t *testing.T) {
	all := All()
	assert.Len(t, all, len(Countries)+len(USStates)+len(Capitals))
	assert.Len(t, USStates, 50)
	for _, c := range FindCollisions(all, morse.Standard()) {
		assert.GreaterOrEqual(t, len(c.Names), 2, "collision %+v", c)
	}
}
