package sentiment

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/domain"
)

// Weights contributed to the sarcasm score. Every full pattern match counts
// as one indicator; ellipses and sarcastic emoji only nudge the score.
const (
	sarcasmPatternWeight = 1.0
	sarcasmEllipsisBonus = 0.3
	sarcasmEmojiBonus    = 0.4
)

var ellipsisPattern = regexp.MustCompile(`\.{3,}|…`)

// sarcasticEmoji are emoji that commonly flag an ironic register.
var sarcasticEmoji = []rune{'🙄', '🙃', '😏', '😒', '🫠'}

// ExtractFeatures derives contextual features from text. It is pure and
// deterministic: the same text and language always produce the same features,
// and empty text yields zero-valued features with the language filled in.
func ExtractFeatures(text, language string) domain.ContextualFeatures {
	lang := normalizeLanguage(language)
	features := domain.ContextualFeatures{Language: lang}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return features
	}

	features.TextLength = utf8.RuneCountInString(trimmed)
	features.HasEmojis = containsEmoji(trimmed)
	features.HasExclamation = strings.ContainsRune(trimmed, '!')
	features.HasQuestion = strings.ContainsRune(trimmed, '?')

	tokens := tokenizeLetters(trimmed)
	for _, tok := range tokens {
		if _, ok := emotionalWords[tok]; ok {
			features.EmotionalWords++
		}
	}

	features.SarcasmIndicators, features.SarcasmScore = sarcasmSignals(trimmed, lang)
	features.Complexity = complexity(trimmed, tokens)

	return features
}

// sarcasmSignals counts matching sarcasm patterns for the language (falling
// back to English) and accumulates the weighted score.
func sarcasmSignals(text, lang string) (int, float64) {
	patterns, ok := sarcasmPatterns[lang]
	if !ok {
		patterns = sarcasmPatterns[domain.DefaultLanguage]
	}

	indicators := 0
	score := 0.0
	for _, p := range patterns {
		matches := p.FindAllStringIndex(text, -1)
		indicators += len(matches)
		score += float64(len(matches)) * sarcasmPatternWeight
	}

	if ellipsisPattern.MatchString(text) {
		score += sarcasmEllipsisBonus
	}
	for _, r := range text {
		if isSarcasticEmoji(r) {
			score += sarcasmEmojiBonus
			break
		}
	}

	return indicators, score
}

// complexity is (average word length + average sentence length in words)/10.
func complexity(text string, tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}

	letters := 0
	for _, tok := range tokens {
		letters += utf8.RuneCountInString(tok)
	}
	avgWordLen := float64(letters) / float64(len(tokens))

	sentences := countSentences(text)
	avgSentenceLen := float64(len(tokens)) / float64(sentences)

	return (avgWordLen + avgSentenceLen) / 10
}

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

func countSentences(text string) int {
	parts := sentenceBoundary.Split(text, -1)
	count := 0
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			count++
		}
	}
	if count == 0 {
		return 1
	}
	return count
}

// tokenizeLetters lowercases text and splits it into maximal letter runs.
func tokenizeLetters(text string) []string {
	var tokens []string
	var current strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) {
			current.WriteRune(r)
			continue
		}
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// containsEmoji scans for runes in the common emoji blocks.
func containsEmoji(text string) bool {
	for _, r := range text {
		if isEmoji(r) {
			return true
		}
	}
	return false
}

func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1F5FF, // symbols & pictographs
		r >= 0x1F600 && r <= 0x1F64F, // emoticons
		r >= 0x1F680 && r <= 0x1F6FF, // transport
		r >= 0x1F900 && r <= 0x1F9FF, // supplemental symbols
		r >= 0x1FA70 && r <= 0x1FAFF, // extended-A
		r >= 0x2600 && r <= 0x26FF, // miscellaneous symbols
		r >= 0x2700 && r <= 0x27BF: // dingbats
		return true
	}
	return false
}

func isSarcasticEmoji(r rune) bool {
	for _, e := range sarcasticEmoji {
		if r == e {
			return true
		}
	}
	return false
}

func normalizeLanguage(language string) string {
	lang := strings.ToLower(strings.TrimSpace(language))
	if lang == "" {
		return domain.DefaultLanguage
	}
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	return lang
}
