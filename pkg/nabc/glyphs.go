package nabc

// Glyphs maps the two letter neume codes to their names.
var Glyphs = map[string]string{
	"vi": "virga",
	"pu": "punctum",
	"ta": "tractulus",
	"gr": "gravis",
	"cl": "clivis",
	"pe": "pes",
	"po": "porrectus",
	"to": "torculus",
	"ci": "climacus",
	"sc": "scandicus",
	"pf": "porrectus flexus",
	"sf": "scandicus flexus",
	"tr": "torculus resupinus",
	"st": "stropha",
	"ds": "distropha",
	"ts": "tristropha",
	"tg": "trigonus",
	"bv": "bivirga",
	"tv": "trivirga",
	"pr": "pressus maior",
	"pi": "pressus minor",
	"vs": "virga strata",
	"or": "oriscus",
	"sa": "salicus",
	"pq": "pes quassus",
	"ql": "quilisma (3 loops)",
	"qi": "quilisma (2 loops)",
	"pt": "pes stratus",
	"ni": "nihil",
	"un": "uncinus",
	"oc": "oriscus-clivis",
}

// Modifiers maps glyph modifier characters to their names.
var Modifiers = map[byte]string{
	'S': "mark modification",
	'G': "grouping modification",
	'M': "melodic modification",
	'-': "episema",
	'>': "augmentive liquescence",
	'~': "diminutive liquescence",
}

// GlyphName returns the name of a glyph code.
func GlyphName(code string) (string, bool) {
	name, ok := Glyphs[code]
	return name, ok
}
