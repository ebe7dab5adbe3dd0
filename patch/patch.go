// Package patch applies sparse overrides to parsed weather configs.
//
// A Patch is keyed by config SID, then weather-type name, then field name:
//
//	{
//	  "VortexWeatherSelection": {
//	    "Clearly": {"BlendWeight": 80.0, "WeatherDurationMin": 800.0},
//	    "Cloudy":  {"BlendWeight": 20.0}
//	  }
//	}
//
// Only the named fields change. Patches never add or remove weather types and
// never reorder them.
package patch

import (
	"maps"
	"slices"

	"github.com/KimNorgaard/go-weathercfg/ast"
)

// Fields maps field names to their new values.
type Fields map[string]ast.Value

// Patch maps SID → weather-type name → field overrides.
type Patch map[string]map[string]Fields

// Set adds a single override to p.
func (p Patch) Set(sid, weather, field string, v ast.Value) {
	if p[sid] == nil {
		p[sid] = make(map[string]Fields)
	}
	if p[sid][weather] == nil {
		p[sid][weather] = make(Fields)
	}
	p[sid][weather][field] = v
}

// Change records one override that was applied.
type Change struct {
	SID     string
	File    string
	Weather string
	Field   string
	// Old is invalid when the field did not exist before.
	Old ast.Value
	New ast.Value
}

// Target names a weather type inside a config.
type Target struct {
	SID     string
	Weather string
}

// Report describes what Apply did.
type Report struct {
	Changes []Change
	// MissingWeathers lists patched weather types the config does not have.
	MissingWeathers []Target
	// UnusedSIDs lists patch entries that matched no config.
	UnusedSIDs []string
}

// Apply returns configs with p applied. See ApplyWithReport.
func Apply(configs []*ast.Config, p Patch) []*ast.Config {
	out, _ := ApplyWithReport(configs, p)
	return out
}

// ApplyWithReport returns a slice of the same length and order as configs.
// A config whose SID has no entry in p is returned as is; every other config
// is replaced by a deep copy carrying the overrides. Overrides for weather
// types the config does not have are skipped and reported. The inputs are
// never modified.
func ApplyWithReport(configs []*ast.Config, p Patch) ([]*ast.Config, Report) {
	var rep Report
	out := make([]*ast.Config, len(configs))
	used := make(map[string]bool, len(p))

	for i, cfg := range configs {
		weathers, ok := p[cfg.SID]
		if !ok {
			out[i] = cfg
			continue
		}
		used[cfg.SID] = true

		patched := cfg.Clone()
		for _, name := range slices.Sorted(maps.Keys(weathers)) {
			w, ok := patched.WeatherTypes[name]
			if !ok {
				rep.MissingWeathers = append(rep.MissingWeathers, Target{SID: cfg.SID, Weather: name})
				continue
			}
			fields := weathers[name]
			for _, field := range slices.Sorted(maps.Keys(fields)) {
				rep.Changes = append(rep.Changes, Change{
					SID:     cfg.SID,
					File:    cfg.Filename,
					Weather: name,
					Field:   field,
					Old:     w.Params[field],
					New:     fields[field],
				})
				w.Params[field] = fields[field]
			}
		}
		out[i] = patched
	}

	for _, sid := range slices.Sorted(maps.Keys(p)) {
		if !used[sid] {
			rep.UnusedSIDs = append(rep.UnusedSIDs, sid)
		}
	}
	return out, rep
}
