package sentiment

import (
	"context"
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/domain"
)

const (
	tokenScoreWeight      = 0.25
	intensifierMultiplier = 1.5
	emojiCountFactor      = 0.15
	emojiScoreCap         = 0.5
	maxKeywords           = 5
	minKeywordLength      = 4
	negationWindow        = 2
)

// LexiconScorer is the deterministic rule-based predictor. It scores text
// against multilingual word sets and an emoji valence table. Safe for
// concurrent use; all state is immutable after construction.
type LexiconScorer struct {
	positive map[string]map[string]struct{}
	negative map[string]map[string]struct{}
	hints    map[string]map[string]struct{}
}

// LexiconAnalysis is the full output of the scorer, including the auxiliary
// signals the engine surfaces in the final result.
type LexiconAnalysis struct {
	Prediction       domain.ModelPrediction
	Keywords         []string
	DetectedLanguage string
	TokenCount       int
	NegationFlips    int
	IntensifierBoost float64
}

// NewLexiconScorer builds a scorer with normalized copies of the static
// language tables, so lookups and input normalization agree on diacritics.
func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{
		positive: normalizeTables(positiveWords),
		negative: normalizeTables(negativeWords),
		hints:    normalizeTables(languageHints),
	}
}

// Predict implements domain.Predictor.
func (s *LexiconScorer) Predict(_ context.Context, text, language string) (domain.ModelPrediction, error) {
	return s.Analyze(text, language).Prediction, nil
}

// Analyze normalizes and tokenizes text, scores word and emoji polarity, and
// returns the prediction together with keywords and a language guess.
func (s *LexiconScorer) Analyze(text, language string) LexiconAnalysis {
	lang := normalizeLanguage(language)
	normalized := normalizeText(text)
	tokens := tokenizeLetters(normalized)

	analysis := LexiconAnalysis{TokenCount: len(tokens)}

	wordScore := 0.0
	for i, tok := range tokens {
		polarity := s.polarity(tok, lang)
		if polarity == 0 {
			continue
		}

		weight := 1.0
		if i > 0 && isIntensifier(tokens[i-1]) {
			weight = intensifierMultiplier
			analysis.IntensifierBoost += tokenScoreWeight * (intensifierMultiplier - 1)
		}

		if s.negated(tokens, i) {
			polarity = -polarity
			analysis.NegationFlips++
		}

		wordScore += float64(polarity) * tokenScoreWeight * weight
	}

	emojiScore := scoreEmoji(text)
	score := clamp(wordScore+emojiScore, -1, 1)

	analysis.Prediction = domain.ModelPrediction{
		Label:      domain.LabelForScore(score),
		Score:      score,
		Confidence: math.Min(0.99, 0.6+math.Abs(score)),
		Method:     domain.MethodLexicon,
	}
	analysis.Keywords = keywords(tokens)
	analysis.DetectedLanguage = s.guessLanguage(tokens, lang)

	return analysis
}

// polarity returns +1/-1/0 for a token, consulting the requested language's
// table first and English as the universal fallback.
func (s *LexiconScorer) polarity(token, lang string) int {
	for _, l := range []string{lang, domain.DefaultLanguage} {
		if _, ok := s.positive[l][token]; ok {
			return 1
		}
		if _, ok := s.negative[l][token]; ok {
			return -1
		}
		if l == domain.DefaultLanguage {
			break
		}
	}
	return 0
}

// negated reports whether any of the preceding tokens inside the negation
// window is a negator.
func (s *LexiconScorer) negated(tokens []string, position int) bool {
	start := position - negationWindow
	if start < 0 {
		start = 0
	}
	for i := start; i < position; i++ {
		if isNegator(tokens[i]) {
			return true
		}
	}
	return false
}

// scoreEmoji averages the valence of all known emoji in the text and scales
// the average by how many there are, capped at ±0.5.
func scoreEmoji(text string) float64 {
	sum := 0.0
	count := 0
	for _, r := range text {
		if valence, ok := emojiValence[r]; ok {
			sum += valence
			count++
		}
	}
	if count == 0 {
		return 0
	}

	avg := sum / float64(count)
	score := avg * math.Min(1, float64(count)*emojiCountFactor)
	return clamp(score, -emojiScoreCap, emojiScoreCap)
}

// keywords returns up to five distinct tokens longer than three letters, in
// order of first appearance.
func keywords(tokens []string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, tok := range tokens {
		if len([]rune(tok)) < minKeywordLength {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
		if len(out) == maxKeywords {
			break
		}
	}
	return out
}

// guessLanguage picks the language whose hint words overlap the tokens most.
// The requested language wins ties and serves as the fallback.
func (s *LexiconScorer) guessLanguage(tokens []string, requested string) string {
	tokenSet := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		tokenSet[tok] = struct{}{}
	}

	best := requested
	bestCount := 0
	for _, lang := range hintLanguages {
		count := 0
		for hint := range s.hints[lang] {
			if _, ok := tokenSet[hint]; ok {
				count++
			}
		}
		if count > bestCount {
			best = lang
			bestCount = count
		}
	}
	return best
}

var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeText lowercases and strips combining diacritical marks.
func normalizeText(text string) string {
	stripped, _, err := transform.String(diacriticStripper, strings.ToLower(text))
	if err != nil {
		return strings.ToLower(text)
	}
	return stripped
}

func normalizeTables(tables map[string][]string) map[string]map[string]struct{} {
	out := make(map[string]map[string]struct{}, len(tables))
	for lang, words := range tables {
		set := make(map[string]struct{}, len(words))
		for _, w := range words {
			set[normalizeText(w)] = struct{}{}
		}
		out[lang] = set
	}
	return out
}

func isNegator(token string) bool {
	_, ok := negators[token]
	return ok
}

func isIntensifier(token string) bool {
	_, ok := intensifiers[token]
	return ok
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
