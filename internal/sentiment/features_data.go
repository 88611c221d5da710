package sentiment

import "regexp"

// sarcasmPatterns are language-keyed regex lists; each full match counts as
// one sarcasm indicator. English is the fallback for unknown languages.
var sarcasmPatterns = map[string][]*regexp.Regexp{
	"en": compileAll(
		`(?i)\boh,?\s+(great|wonderful|fantastic|perfect|lovely|brilliant|joy)\b`,
		`(?i)\bjust\s+(great|perfect|wonderful|brilliant|fantastic|lovely)\b`,
		`(?i)\byeah,?\s*right\b`,
		`(?i)\bthanks\s+a\s+lot\b`,
		`(?i)\bas\s+if\b`,
		`(?i)\bhow\s+(original|surprising|convenient)\b`,
		`(?i)\bwhat\s+a\s+surprise\b`,
		`(?i)\blucky\s+me\b`,
		`(?i)\bsure,?\s+(thing|whatever)\b`,
		`(?i)\bexactly\s+what\s+i\s+needed\b`,
	),
	"es": compileAll(
		`(?i)\bqué\s+(bien|maravilla|sorpresa|alegría)\b`,
		`(?i)\bclaro,?\s+que\s+sí\b`,
		`(?i)\bjusto\s+lo\s+que\s+necesitaba\b`,
		`(?i)\bno\s+me\s+digas\b`,
		`(?i)\bqué\s+suerte\s+la\s+mía\b`,
	),
	"fr": compileAll(
		`(?i)\boh\s+(génial|super|formidable|parfait)\b`,
		`(?i)\bcomme\s+par\s+hasard\b`,
		`(?i)\bquelle\s+surprise\b`,
		`(?i)\bc'est\s+du\s+joli\b`,
		`(?i)\bexactement\s+ce\s+qu'il\s+me\s+fallait\b`,
	),
	"de": compileAll(
		`(?i)\bna\s+(toll|super|klasse|prima)\b`,
		`(?i)\bwie\s+überraschend\b`,
		`(?i)\bdas\s+ist\s+ja\s+toll\b`,
		`(?i)\bgenau\s+was\s+ich\s+brauchte\b`,
		`(?i)\bach\s+was\b`,
	),
}

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}

// emotionalWords is a fixed multilingual lexicon of emotionally charged
// tokens, matched against lowercased letter runs.
var emotionalWords = map[string]struct{}{
	// English
	"love": {}, "hate": {}, "amazing": {}, "terrible": {}, "awesome": {},
	"awful": {}, "wonderful": {}, "horrible": {}, "excited": {}, "angry": {},
	"happy": {}, "sad": {}, "fantastic": {}, "disgusting": {}, "perfect": {},
	"worst": {}, "best": {}, "incredible": {}, "furious": {}, "thrilled": {},
	"miserable": {}, "delighted": {}, "devastated": {}, "ecstatic": {},
	"scared": {}, "terrified": {}, "joyful": {}, "heartbroken": {},
	// Spanish ("horrible" and "triste" are shared with French)
	"amor": {}, "odio": {}, "increíble": {}, "feliz": {},
	"triste": {}, "furioso": {}, "encantado": {}, "maravilloso": {},
	// French
	"adore": {}, "déteste": {}, "merveilleux": {},
	"heureux": {}, "furieux": {}, "magnifique": {},
	// German
	"liebe": {}, "hasse": {}, "wunderbar": {}, "schrecklich": {},
	"glücklich": {}, "traurig": {}, "wütend": {}, "begeistert": {},
}
