// Package catalog serves the static medical directory: areas, their
// hospitals and each hospital's staff doctors. The data is embedded and
// immutable for the process lifetime.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/spf13/viper"
)

//go:embed directory.yaml
var directoryYAML []byte

type Hospital struct {
	Name    string   `mapstructure:"name"`
	Doctors []string `mapstructure:"doctors"`
}

type Area struct {
	Name      string     `mapstructure:"name"`
	Hospitals []Hospital `mapstructure:"hospitals"`
}

// Catalog is a read-only nested lookup over the embedded directory.
type Catalog struct {
	areas []Area
}

// Load parses the embedded directory. Called once at startup.
func Load() (*Catalog, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(directoryYAML)); err != nil {
		return nil, fmt.Errorf("failed to parse embedded directory: %w", err)
	}

	var areas []Area
	if err := v.UnmarshalKey("areas", &areas); err != nil {
		return nil, fmt.Errorf("failed to decode directory areas: %w", err)
	}
	if len(areas) == 0 {
		return nil, fmt.Errorf("embedded directory has no areas")
	}
	return &Catalog{areas: areas}, nil
}

// Areas returns area names in directory order.
func (c *Catalog) Areas() []string {
	names := make([]string, 0, len(c.areas))
	for _, a := range c.areas {
		names = append(names, a.Name)
	}
	return names
}

// Hospitals returns the hospital names for an area, in directory order.
// An unknown area yields an empty list.
func (c *Catalog) Hospitals(area string) []string {
	for _, a := range c.areas {
		if a.Name != area {
			continue
		}
		names := make([]string, 0, len(a.Hospitals))
		for _, h := range a.Hospitals {
			names = append(names, h.Name)
		}
		return names
	}
	return nil
}

// StaffDoctors returns the staff doctor display names for a hospital, in
// directory order. Hospital names are unique across areas in the directory,
// so the first match wins.
func (c *Catalog) StaffDoctors(hospital string) []string {
	for _, a := range c.areas {
		for _, h := range a.Hospitals {
			if h.Name == hospital {
				out := make([]string, len(h.Doctors))
				copy(out, h.Doctors)
				return out
			}
		}
	}
	return nil
}
