package utils

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedFile is the YAML roster loaded at startup:
//
//	users:
//	  - name: alice
//	    color: "#e91e63"
//	    icon: "🦊"
//	gyms:
//	  - name: Base Camp
//	    area: north
//	    lat: 35.68
//	    lng: 139.76
type SeedFile struct {
	Users []SeedUser `yaml:"users"`
	Gyms  []SeedGym  `yaml:"gyms"`
}

type SeedUser struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
	Icon  string `yaml:"icon"`
}

type SeedGym struct {
	Name       string   `yaml:"name"`
	Area       string   `yaml:"area"`
	ProfileURL string   `yaml:"profile_url"`
	Lat        *float64 `yaml:"lat"`
	Lng        *float64 `yaml:"lng"`
}

// ParseSeed decodes seed YAML and rejects entries without a name.
func ParseSeed(data []byte) (*SeedFile, error) {
	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("invalid seed yaml: %w", err)
	}
	for i, u := range seed.Users {
		if u.Name == "" {
			return nil, fmt.Errorf("seed user #%d has no name", i)
		}
	}
	for i, g := range seed.Gyms {
		if NormalizeGymName(g.Name) == "" {
			return nil, fmt.Errorf("seed gym #%d has no name", i)
		}
		if (g.Lat == nil) != (g.Lng == nil) {
			return nil, fmt.Errorf("seed gym %q needs both lat and lng", g.Name)
		}
	}
	return &seed, nil
}

// LoadSeedFile reads and parses path.
func LoadSeedFile(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(data)
}
