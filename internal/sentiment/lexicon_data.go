package sentiment

// Static multilingual sentiment tables. They are decoupled from the scoring
// logic so they can be extended and tested independently; all words are
// normalized (lowercased, diacritics stripped) at scorer construction.

var positiveWords = map[string][]string{
	"en": {
		"good", "great", "excellent", "amazing", "awesome", "fantastic",
		"wonderful", "love", "loved", "loving", "best", "perfect", "brilliant",
		"beautiful", "happy", "glad", "delighted", "superb", "outstanding",
		"impressive", "enjoy", "enjoyed", "nice", "recommend", "recommended",
		"incredible", "thrilled", "pleasant", "smooth", "fast", "reliable",
		"helpful", "friendly", "satisfied", "win", "winner", "success",
	},
	"es": {
		"bueno", "buena", "genial", "excelente", "increíble", "maravilloso",
		"maravillosa", "perfecto", "perfecta", "encanta", "encantó", "feliz",
		"contento", "contenta", "mejor", "hermoso", "hermosa", "fantástico",
		"fantástica", "recomiendo", "espectacular", "éxito", "alegría",
	},
	"fr": {
		"bon", "bonne", "génial", "excellent", "incroyable", "merveilleux",
		"merveilleuse", "parfait", "parfaite", "adore", "aime", "heureux",
		"heureuse", "meilleur", "magnifique", "fantastique", "superbe",
		"recommande", "formidable", "réussite",
	},
	"de": {
		"gut", "toll", "großartig", "ausgezeichnet", "unglaublich",
		"wunderbar", "perfekt", "liebe", "glücklich", "beste", "schön",
		"fantastisch", "empfehlen", "hervorragend", "super", "erfolg",
	},
}

var negativeWords = map[string][]string{
	"en": {
		"bad", "terrible", "awful", "horrible", "hate", "hated", "worst",
		"poor", "disappointing", "disappointed", "broken", "useless", "waste",
		"slow", "buggy", "bug", "bugs", "crash", "crashed", "fail", "failed",
		"failure", "annoying", "frustrating", "frustrated", "angry", "sad",
		"ugly", "expensive", "scam", "refund", "problem", "problems", "issue",
		"issues", "wrong", "never", "disgusting", "pathetic", "garbage",
	},
	"es": {
		"malo", "mala", "terrible", "horrible", "odio", "peor", "pésimo",
		"pésima", "decepcionante", "decepcionado", "roto", "inútil", "lento",
		"error", "errores", "falla", "fallo", "problema", "problemas",
		"molesto", "enojado", "triste", "feo", "estafa", "basura",
	},
	"fr": {
		"mauvais", "mauvaise", "terrible", "horrible", "déteste", "pire",
		"décevant", "déçu", "cassé", "inutile", "lent", "erreur", "erreurs",
		"panne", "problème", "problèmes", "agaçant", "fâché", "triste",
		"laid", "arnaque", "nul",
	},
	"de": {
		"schlecht", "schrecklich", "furchtbar", "hasse", "schlimmste",
		"enttäuschend", "enttäuscht", "kaputt", "nutzlos", "langsam",
		"fehler", "absturz", "problem", "probleme", "ärgerlich", "wütend",
		"traurig", "hässlich", "betrug", "müll",
	},
}

// emojiValence maps emoji to a polarity in [-1, 1].
var emojiValence = map[rune]float64{
	'😀': 0.7, '😃': 0.7, '😄': 0.8, '😁': 0.7, '😊': 0.8, '🙂': 0.4,
	'😍': 1.0, '🥰': 1.0, '😘': 0.8, '🤩': 0.9, '😂': 0.6, '🤣': 0.6,
	'👍': 0.7, '👏': 0.7, '🙌': 0.8, '💪': 0.6, '🎉': 0.9, '✨': 0.6,
	'❤': 1.0, '💕': 0.9, '💖': 0.9, '🔥': 0.5, '⭐': 0.7, '🚀': 0.6,
	'😐': 0.0, '🤔': 0.0, '😶': 0.0,
	'😞': -0.7, '😔': -0.6, '😟': -0.6, '😠': -0.8, '😡': -1.0, '🤬': -1.0,
	'😢': -0.7, '😭': -0.8, '😩': -0.7, '😫': -0.7, '😤': -0.6, '☹': -0.6,
	'👎': -0.7, '💔': -0.9, '🤮': -1.0, '🤢': -0.8, '😨': -0.6, '😱': -0.5,
	'😒': -0.5, '🙄': -0.4,
}

// negators flip the polarity of a following sentiment token.
var negators = map[string]struct{}{
	"not": {}, "never": {}, "no": {}, "dont": {}, "don": {}, "doesnt": {},
	"isnt": {}, "wasnt": {}, "cant": {}, "wont": {}, "didnt": {},
	"nunca": {}, "jamas": {}, "ne": {}, "pas": {}, "jamais": {},
	"nicht": {}, "nie": {}, "kein": {}, "keine": {},
}

// intensifiers boost the weight of a following sentiment token.
var intensifiers = map[string]struct{}{
	"very": {}, "really": {}, "extremely": {}, "so": {}, "totally": {},
	"absolutely": {}, "incredibly": {}, "super": {},
	"muy": {}, "tan": {}, "tres": {}, "vraiment": {}, "sehr": {}, "echt": {},
}

// languageHints are frequent function words used for the best-effort language
// guess; matched against normalized tokens.
var languageHints = map[string][]string{
	"en": {"the", "is", "and", "you", "this", "that", "with", "have", "are"},
	"es": {"el", "la", "los", "las", "es", "que", "de", "para", "una", "esta"},
	"fr": {"le", "la", "les", "est", "et", "que", "de", "pour", "une", "cette"},
	"de": {"der", "die", "das", "ist", "und", "mit", "für", "ich", "eine"},
}

// hintLanguages fixes the iteration order for deterministic guesses.
var hintLanguages = []string{"en", "es", "fr", "de"}
