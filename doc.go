/*
Package weathercfg reads, patches and writes the weather-selection
configuration files of STALKER 2. The files use the engine's whitespace
significant struct format:

	[1] : struct.begin {refkey=[0]}
	   SID = VortexWeatherSelection
	   Priority = 1
	   Clearly : struct.begin
	      BlendWeight = 50.f
	      MaximumRepeatAmount = -1
	   struct.end
	   Underground: struct.begin
	      BlendWeight = 0.f
	   struct.end
	struct.end

The package guarantees that parsing a file and rendering it again reproduces
the file, so only the values a caller changes differ in the output. Top-level
fields the package does not model are kept verbatim, weather types keep their
declaration order, a missing Priority stays missing, and quirks of the game's
own files (the "Underground:" spelling, the ".f" float suffix) are reproduced.

Parsing

	cfg, err := weathercfg.Parse(data, weathercfg.Filename("vortex.cfg"))
	if err != nil {
		// err is a *weathercfg.ParseError; use errors.Is with the
		// weathercfg.Err* kinds to tell failures apart.
	}

Parameter values inside weather blocks are decoded into ast.Value, a tagged
union of bool, int, float and string. Top-level fields other than SID and
Priority stay raw strings.

Patching

Package patch applies sparse overrides, keyed by SID, weather type and field,
to parsed configs. Patched configs are deep copies; the inputs are never
modified.

Rendering

	out, err := weathercfg.RenderAll(cfgs)

Weather-type fields are written in a fixed canonical order. The order and the
weather types written with a tight colon can be changed with the FieldOrder
and TightColon options.
*/
package weathercfg
