package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSeed = `
users:
  - name: alice
    color: "#e91e63"
    icon: "🦊"
  - name: bob
gyms:
  - name: Base Camp
    area: north
    lat: 35.68
    lng: 139.76
  - name: Rock Hall
    area: south
`

func TestParseSeed(t *testing.T) {
	seed, err := ParseSeed([]byte(sampleSeed))
	require.NoError(t, err)

	require.Len(t, seed.Users, 2)
	assert.Equal(t, "alice", seed.Users[0].Name)
	assert.Equal(t, "🦊", seed.Users[0].Icon)
	assert.Equal(t, "", seed.Users[1].Color)

	require.Len(t, seed.Gyms, 2)
	require.NotNil(t, seed.Gyms[0].Lat)
	assert.InDelta(t, 35.68, *seed.Gyms[0].Lat, 1e-9)
	assert.Nil(t, seed.Gyms[1].Lat)
	assert.Nil(t, seed.Gyms[1].Lng)
}

func TestParseSeedRejectsBadEntries(t *testing.T) {
	tests := map[string]string{
		"unnamed user":    "users:\n  - color: red\n",
		"unnamed gym":     "gyms:\n  - area: north\n",
		"half coordinate": "gyms:\n  - name: Base Camp\n    lat: 35.0\n",
		"not yaml":        "users: [",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSeed([]byte(body))
			assert.Error(t, err)
		})
	}
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleSeed), 0o600))

	seed, err := LoadSeedFile(path)
	require.NoError(t, err)
	assert.Len(t, seed.Gyms, 2)

	_, err = LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
