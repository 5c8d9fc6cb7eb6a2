package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReasonLabels(t *testing.T) {
	tags := []ReasonTag{ReasonFreshSet, ReasonFriendsHere, ReasonUnvisited}
	assert.Equal(t, []string{"🔥 new set", "👥 friends here", "🆕 unvisited"}, ReasonLabels(tags))
	assert.Equal(t, "mystery", ReasonTag("mystery").Label())
	assert.Empty(t, ReasonLabels(nil))
}

func TestRankModeValid(t *testing.T) {
	assert.True(t, RankByOverdue.Valid())
	assert.False(t, RankMode("alphabetical").Valid())
}

func TestEdgeOther(t *testing.T) {
	e := Edge{UserA: "alice", UserB: "bob"}
	assert.Equal(t, "bob", e.Other("alice"))
	assert.Equal(t, "alice", e.Other("bob"))
	assert.True(t, e.Touches("bob"))
	assert.False(t, e.Touches("carol"))
}
