// Package ast defines the in-memory model of a weather configuration file:
// one Config per file holding an ordered list of weather types.
package ast

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// WeatherType is one weather variant inside a config.
type WeatherType struct {
	Name   string
	Params map[string]Value
}

// NewWeatherType returns an empty weather type called name.
func NewWeatherType(name string) *WeatherType {
	return &WeatherType{Name: name, Params: make(map[string]Value)}
}

// Clone returns an independent copy of w. The copy always has a non-nil
// Params map.
func (w *WeatherType) Clone() *WeatherType {
	params := make(map[string]Value, len(w.Params))
	maps.Copy(params, w.Params)
	return &WeatherType{Name: w.Name, Params: params}
}

// RawParam is a top-level field kept exactly as it appeared in the source.
type RawParam struct {
	Name  string
	Value string
}

// Config is one parsed weather-selection file.
type Config struct {
	Filename string
	// ID is the header token, either a bracketed index like [0] or a bare
	// identifier.
	ID string
	// RefKey is the optional {refkey=...} back-reference. Empty means absent.
	RefKey string
	// SID is the semantic key patches are matched against.
	SID string
	// Priority is nil when the source had no Priority line.
	Priority *int

	WeatherTypes map[string]*WeatherType
	// WeatherOrder is the declaration order of WeatherTypes.
	WeatherOrder []string

	extra []RawParam
}

// NewConfig returns an empty config with the given header id.
func NewConfig(id string) *Config {
	return &Config{ID: id, WeatherTypes: make(map[string]*WeatherType)}
}

// Extra returns the raw value of a top-level field other than SID and
// Priority.
func (c *Config) Extra(name string) (string, bool) {
	for _, p := range c.extra {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// SetExtra stores a raw top-level field. A repeated name keeps its first
// position and takes the new value.
func (c *Config) SetExtra(name, value string) {
	for i := range c.extra {
		if c.extra[i].Name == name {
			c.extra[i].Value = value
			return
		}
	}
	c.extra = append(c.extra, RawParam{Name: name, Value: value})
}

// ExtraParams returns the raw top-level fields in first-seen order.
func (c *Config) ExtraParams() []RawParam {
	return slices.Clone(c.extra)
}

// AddWeatherType appends w to the config. It reports false if a weather type
// with the same name already exists.
func (c *Config) AddWeatherType(w *WeatherType) bool {
	if c.WeatherTypes == nil {
		c.WeatherTypes = make(map[string]*WeatherType)
	}
	if _, ok := c.WeatherTypes[w.Name]; ok {
		return false
	}
	c.WeatherTypes[w.Name] = w
	c.WeatherOrder = append(c.WeatherOrder, w.Name)
	return true
}

// Weathers returns the weather types in declaration order.
func (c *Config) Weathers() []*WeatherType {
	out := make([]*WeatherType, 0, len(c.WeatherOrder))
	for _, name := range c.WeatherOrder {
		out = append(out, c.WeatherTypes[name])
	}
	return out
}

// Clone returns a deep copy of c that shares no mutable state with it.
func (c *Config) Clone() *Config {
	out := *c
	if c.Priority != nil {
		p := *c.Priority
		out.Priority = &p
	}
	out.WeatherOrder = slices.Clone(c.WeatherOrder)
	out.WeatherTypes = make(map[string]*WeatherType, len(c.WeatherTypes))
	for name, w := range c.WeatherTypes {
		out.WeatherTypes[name] = w.Clone()
	}
	out.extra = slices.Clone(c.extra)
	return &out
}

// Validate checks that WeatherOrder and WeatherTypes describe the same set of
// weather types.
func (c *Config) Validate() error {
	if len(c.WeatherOrder) != len(c.WeatherTypes) {
		return fmt.Errorf("weathercfg: config %s: %d weather types but %d in order", c.SID, len(c.WeatherTypes), len(c.WeatherOrder))
	}
	for _, name := range c.WeatherOrder {
		w, ok := c.WeatherTypes[name]
		if !ok || w == nil {
			return fmt.Errorf("weathercfg: config %s: weather type %q listed in order but missing", c.SID, name)
		}
	}
	return nil
}

// String returns a short summary of c for logs and test failures.
func (c *Config) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", c.ID, c.SID)
	if c.Filename != "" {
		fmt.Fprintf(&b, " (%s)", c.Filename)
	}
	fmt.Fprintf(&b, " [%s]", strings.Join(c.WeatherOrder, " "))
	return b.String()
}
