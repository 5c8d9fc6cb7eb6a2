package services

import (
	"testing"

	"boulder-session-system/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedGymAttrsKeepsSlugOutOfUpdates(t *testing.T) {
	lat, lng := 35.68, 139.76
	name, created, assigned := seedGymAttrs(utils.SeedGym{
		Name:       "  Base   Camp ",
		Area:       "north",
		ProfileURL: "https://example.com/base-camp",
		Lat:        &lat,
		Lng:        &lng,
	})

	assert.Equal(t, "Base Camp", name)
	assert.Equal(t, "base-camp", created.Slug)
	assert.Empty(t, assigned.Slug)
	assert.Equal(t, "north", assigned.AreaTag)
	require.NotNil(t, assigned.ProfileURL)
	assert.Equal(t, "https://example.com/base-camp", *assigned.ProfileURL)
	assert.Equal(t, &lat, assigned.Lat)
}

func TestSeedGymAttrsFallbackSlugOnlyOnCreate(t *testing.T) {
	_, created, assigned := seedGymAttrs(utils.SeedGym{Name: "!!!"})
	assert.Regexp(t, `^gym-[0-9a-f]{8}$`, created.Slug)
	assert.Empty(t, assigned.Slug)
	assert.Nil(t, assigned.ProfileURL)
}
