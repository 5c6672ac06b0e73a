package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	assert.Equal(t, 1200.0, ParseAmount("RM 1,200.00"))
	assert.Equal(t, 350500.5, ParseAmount("RM350,500.50"))
	assert.Equal(t, 99.0, ParseAmount("  99 "))
	assert.Equal(t, 0.0, ParseAmount(""))
	assert.Equal(t, 0.0, ParseAmount("garbage"))
	assert.Equal(t, 0.0, ParseAmount("RM"))
}

func TestIsSold(t *testing.T) {
	assert.True(t, IsSold("Telah Dijual"))
	assert.True(t, IsSold("TELAH DIJUAL"))
	assert.True(t, IsSold("Sold"))
	assert.False(t, IsSold("Belum Dijual"))
	assert.False(t, IsSold("Unsold"))
	assert.False(t, IsSold(""))
	assert.False(t, IsSold("Dalam Pembinaan"))
}

func TestIsUnsold(t *testing.T) {
	assert.True(t, IsUnsold("Belum Dijual"))
	assert.True(t, IsUnsold("Unsold"))
	assert.False(t, IsUnsold("Telah Dijual"))
	assert.False(t, IsUnsold(""))
}

// A status matching neither predicate stays in neither bucket.
func TestStatusNeitherSoldNorUnsold(t *testing.T) {
	s := "Tempahan"
	assert.False(t, IsSold(s))
	assert.False(t, IsUnsold(s))
}

func TestIsBumiQuota(t *testing.T) {
	assert.True(t, IsBumiQuota("Ya"))
	assert.True(t, IsBumiQuota("  ya "))
	assert.False(t, IsBumiQuota("Tidak"))
	assert.False(t, IsBumiQuota(""))
	assert.False(t, IsBumiQuota("Yes"))
}
