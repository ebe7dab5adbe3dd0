// Package export builds reduced views of a corpus for reviewing weather
// balance: an ordered YAML document and a one-row-per-region table.
package export

import (
	"slices"

	"github.com/KimNorgaard/go-weathercfg/ast"
)

const (
	fieldBlendWeight = "BlendWeight"
	fieldCooldown    = "MaximumCooldownWeatherAmount"
)

// Selection names the weather types and fields a view keeps. Weathers also
// gives the column order of tables.
type Selection struct {
	Weathers []string
	Fields   []string
}

// DefaultSelection returns the weather types and fields that matter for
// balancing the open-world weather cycle.
func DefaultSelection() Selection {
	return Selection{
		Weathers: []string{"Clearly", "Cloudy", "Stormy", "LightRainy", "Rainy"},
		Fields: []string{
			"BlendWeight",
			"WeatherDurationMin",
			"WeatherDurationMax",
			"MaximumRepeatAmount",
			"MaximumCooldownWeatherAmount",
		},
	}
}

// Field is one kept field.
type Field struct {
	Name  string
	Value ast.Value
}

// Weather is one kept weather type with its fields in selection order.
type Weather struct {
	Name   string
	Fields []Field
}

// Get returns the value of the named field.
func (w Weather) Get(name string) (ast.Value, bool) {
	for _, f := range w.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return ast.Value{}, false
}

// Region is the view of one config, keyed by SID.
type Region struct {
	SID      string
	Weathers []Weather
}

// Weather returns the named weather type.
func (r Region) Weather(name string) (Weather, bool) {
	for _, w := range r.Weathers {
		if w.Name == name {
			return w, true
		}
	}
	return Weather{}, false
}

// View is an ordered, filtered projection of a corpus.
type View struct {
	Regions []Region
}

// NewView projects cfgs through sel. Weather types keep their config order.
// A weather type is dropped when its BlendWeight is zero or missing, a
// MaximumCooldownWeatherAmount of zero is dropped, and weather types and
// configs left empty are dropped. When several configs share a SID the last
// non-empty one wins but the region keeps its first position.
func NewView(cfgs []*ast.Config, sel Selection) View {
	var v View
	index := make(map[string]int)
	for _, cfg := range cfgs {
		weathers := project(cfg, sel)
		if len(weathers) == 0 {
			continue
		}
		if i, ok := index[cfg.SID]; ok {
			v.Regions[i].Weathers = weathers
			continue
		}
		index[cfg.SID] = len(v.Regions)
		v.Regions = append(v.Regions, Region{SID: cfg.SID, Weathers: weathers})
	}
	return v
}

func project(cfg *ast.Config, sel Selection) []Weather {
	var out []Weather
	for _, name := range cfg.WeatherOrder {
		if !slices.Contains(sel.Weathers, name) {
			continue
		}
		wt := cfg.WeatherTypes[name]
		if bw, ok := wt.Params[fieldBlendWeight]; !ok || bw.IsZero() {
			continue
		}

		w := Weather{Name: name}
		for _, field := range sel.Fields {
			val, ok := wt.Params[field]
			if !ok {
				continue
			}
			if field == fieldCooldown && val.IsZero() {
				continue
			}
			w.Fields = append(w.Fields, Field{Name: field, Value: val})
		}
		if len(w.Fields) > 0 {
			out = append(out, w)
		}
	}
	return out
}
