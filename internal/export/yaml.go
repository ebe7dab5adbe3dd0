package export

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KimNorgaard/go-weathercfg/ast"
	"github.com/KimNorgaard/go-weathercfg/internal/marshaler"
)

// Text returns the display form of a value. Floats always carry a decimal
// point, so 50 reads back as a float.
func Text(v ast.Value) string {
	switch v.Kind() {
	case ast.FloatKind:
		f, _ := v.AsFloat()
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return strconv.FormatFloat(f, 'g', -1, 64)
		}
		s := strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	case ast.StringKind:
		s, _ := v.AsString()
		return s
	case ast.InvalidKind:
		return ""
	default:
		return v.String()
	}
}

func scalar(v ast.Value) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: Text(v)}
	switch v.Kind() {
	case ast.BoolKind:
		n.Tag = "!!bool"
	case ast.IntKind:
		n.Tag = "!!int"
	case ast.FloatKind:
		n.Tag = "!!float"
	}
	return n
}

func key(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// Node returns the view as an ordered YAML mapping of
// SID → weather type → field → value.
func (v View) Node() *yaml.Node {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, r := range v.Regions {
		weathers := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, w := range r.Weathers {
			fields := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			for _, f := range w.Fields {
				fields.Content = append(fields.Content, key(f.Name), scalar(f.Value))
			}
			weathers.Content = append(weathers.Content, key(w.Name), fields)
		}
		root.Content = append(root.Content, key(r.SID), weathers)
	}
	return root
}

// WriteYAML writes the view as a block-style YAML document indented by two
// spaces.
func (v View) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v.Node()); err != nil {
		return fmt.Errorf("weathercfg: encoding view: %w", err)
	}
	return enc.Close()
}

// ReadView reads a view written by WriteYAML, or edited by hand, keeping the
// document order. A region whose value is empty is kept with no weathers.
func ReadView(r io.Reader) (View, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return View{}, nil
		}
		return View{}, fmt.Errorf("weathercfg: decoding view: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if isNull(root) {
		return View{}, nil
	}
	if root.Kind != yaml.MappingNode {
		return View{}, fmt.Errorf("weathercfg: view line %d: expected a mapping of regions", root.Line)
	}

	var v View
	for i := 0; i+1 < len(root.Content); i += 2 {
		region := Region{SID: root.Content[i].Value}
		weathers := root.Content[i+1]
		if !isNull(weathers) {
			if weathers.Kind != yaml.MappingNode {
				return View{}, fmt.Errorf("weathercfg: view line %d: region %s: expected a mapping of weather types", weathers.Line, region.SID)
			}
			for j := 0; j+1 < len(weathers.Content); j += 2 {
				w, err := readWeather(region.SID, weathers.Content[j].Value, weathers.Content[j+1])
				if err != nil {
					return View{}, err
				}
				region.Weathers = append(region.Weathers, w)
			}
		}
		v.Regions = append(v.Regions, region)
	}
	return v, nil
}

func readWeather(sid, name string, n *yaml.Node) (Weather, error) {
	w := Weather{Name: name}
	if isNull(n) {
		return w, nil
	}
	if n.Kind != yaml.MappingNode {
		return w, fmt.Errorf("weathercfg: view line %d: %s.%s: expected a mapping of fields", n.Line, sid, name)
	}
	for k := 0; k+1 < len(n.Content); k += 2 {
		field := n.Content[k].Value
		var raw any
		if err := n.Content[k+1].Decode(&raw); err != nil {
			return w, fmt.Errorf("weathercfg: view line %d: %s.%s.%s: %w", n.Content[k+1].Line, sid, name, field, err)
		}
		val, err := marshaler.Value(raw)
		if err != nil {
			return w, fmt.Errorf("weathercfg: view line %d: %s.%s.%s: %w", n.Content[k+1].Line, sid, name, field, err)
		}
		w.Fields = append(w.Fields, Field{Name: field, Value: val})
	}
	return w, nil
}

func isNull(n *yaml.Node) bool {
	return n == nil || n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}
