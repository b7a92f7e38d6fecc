package config

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestNamingConventionToBlockType(t *testing.T) {
	nc := NewDefaultNaming()
	assert.NotNil(t, nc)
	assert.Equal(t, "StatsCard", nc.ToBlockType("StatsCard"))
	assert.Equal(t, "StatsCard", nc.ToBlockType("stats-card"))
	assert.Equal(t, "StatsCard", nc.ToBlockType("stats_card"))
	assert.Equal(t, "StatsCard", nc.ToBlockType("statsCard"))
	assert.Equal(t, "Number", nc.ToBlockType("number"))
	assert.Equal(t, "Hero", nc.ToBlockType("hero"))
}

func TestNamingConventionToPathSegment(t *testing.T) {
	nc := NewDefaultNaming()
	assert.Equal(t, "stats-card", nc.ToPathSegment("StatsCard"))
	assert.Equal(t, "columns", nc.ToPathSegment("Columns"))
	assert.Equal(t, "StatsCard", nc.ToBlockType(nc.ToPathSegment("StatsCard")))
}
