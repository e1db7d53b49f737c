package bundle

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// textAnalyzer turns a document into the terms counted by the vectorizer:
// preprocess, tokenize, drop stop words, expand n-grams.
type textAnalyzer struct {
	lowercase    bool
	stripAccents string
	pattern      *regexp.Regexp
	minRunes     int
	stopWords    map[string]struct{}
	minN, maxN   int
}

func newTextAnalyzer(spec VectorizerSpec) (*textAnalyzer, error) {
	ta := &textAnalyzer{
		lowercase:    spec.Lowercase == nil || *spec.Lowercase,
		stripAccents: spec.StripAccents,
		minRunes:     2,
		minN:         1,
		maxN:         1,
	}

	switch spec.StripAccents {
	case "", "ascii", "unicode":
	default:
		return nil, malformed("unknown strip_accents %q", spec.StripAccents)
	}

	if n, ok := wordRunPatterns[strings.TrimPrefix(spec.TokenPattern, "(?u)")]; ok {
		ta.minRunes = n
	} else if spec.TokenPattern != "" {
		re, err := compileTokenPattern(spec.TokenPattern)
		if err != nil {
			return nil, err
		}
		ta.pattern = re
	}

	if len(spec.NgramRange) != 0 {
		if len(spec.NgramRange) != 2 {
			return nil, malformed("ngram_range must have two elements, got %d", len(spec.NgramRange))
		}
		ta.minN, ta.maxN = spec.NgramRange[0], spec.NgramRange[1]
		if ta.minN < 1 || ta.maxN < ta.minN {
			return nil, malformed("invalid ngram_range [%d, %d]", ta.minN, ta.maxN)
		}
	}

	if len(spec.StopWords) > 0 {
		ta.stopWords = make(map[string]struct{}, len(spec.StopWords))
		for _, w := range spec.StopWords {
			ta.stopWords[w] = struct{}{}
		}
	}

	return ta, nil
}

// wordRunPatterns are token patterns that select maximal word runs, keyed to
// the minimum run length. They are tokenized by wordTokens, which applies
// Unicode word boundaries.
var wordRunPatterns = map[string]int{
	`\b\w\w+\b`: 2,
	`\b\w+\b`:   1,
}

// Unicode classes matching the shorthands of Python str patterns
const (
	wordClass  = `\p{L}\p{N}_`
	digitClass = `\p{Nd}`
	spaceClass = `\s\v\p{Z}\x{85}\x{1c}-\x{1f}`
)

// compileTokenPattern compiles an exported token pattern. The (?u) flag has no
// RE2 equivalent and is dropped; at most one capturing group is allowed.
// \b keeps its ASCII meaning.
func compileTokenPattern(pattern string) (*regexp.Regexp, error) {
	pattern = unicodeClasses(strings.TrimPrefix(pattern, "(?u)"))
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, malformed("invalid token_pattern: %v", err)
	}
	if re.NumSubexp() > 1 {
		return nil, malformed("token_pattern has %d capturing groups, at most one is allowed", re.NumSubexp())
	}
	return re, nil
}

// unicodeClasses rewrites the \w, \d and \s shorthands and their negations to
// Unicode classes. Negated shorthands inside a bracket class are left as is.
func unicodeClasses(pattern string) string {
	var b strings.Builder
	inClass := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\' && i+1 < len(pattern):
			i++
			b.WriteString(shorthand(pattern[i:i+1], inClass))
		case c == '[' && inClass && strings.HasPrefix(pattern[i:], "[:"):
			end := strings.Index(pattern[i+2:], ":]")
			if end < 0 {
				b.WriteString(pattern[i:])
				return b.String()
			}
			b.WriteString(pattern[i : i+2+end+2])
			i += 2 + end + 1
		case c == '[' && !inClass:
			inClass = true
			b.WriteByte(c)
			if strings.HasPrefix(pattern[i+1:], "^") {
				b.WriteByte('^')
				i++
			}
			if strings.HasPrefix(pattern[i+1:], "]") {
				b.WriteByte(']')
				i++
			}
		case c == ']' && inClass:
			inClass = false
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func shorthand(c string, inClass bool) string {
	var class string
	negated := false
	switch c {
	case "w", "W":
		class, negated = wordClass, c == "W"
	case "d", "D":
		class, negated = digitClass, c == "D"
	case "s", "S":
		class, negated = spaceClass, c == "S"
	default:
		return `\` + c
	}
	switch {
	case inClass && negated:
		return `\` + c
	case inClass:
		return class
	case negated:
		return "[^" + class + "]"
	default:
		return "[" + class + "]"
	}
}

// analyze returns the terms of a document in order of appearance
func (ta *textAnalyzer) analyze(doc string) []string {
	return ta.ngrams(ta.tokenize(ta.preprocess(doc)))
}

func (ta *textAnalyzer) preprocess(doc string) string {
	if ta.lowercase {
		doc = strings.ToLower(doc)
	}
	switch ta.stripAccents {
	case "unicode":
		doc = removeRunes(doc, runes.In(unicode.Mn))
	case "ascii":
		doc = removeRunes(doc, runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII }))
	}
	return doc
}

// removeRunes decomposes s and drops the runes in set.
// transform chains are stateful, so one is built per call.
func removeRunes(s string, set runes.Set) string {
	t := transform.Chain(norm.NFKD, runes.Remove(set))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func (ta *textAnalyzer) tokenize(doc string) []string {
	var tokens []string
	if ta.pattern == nil {
		tokens = wordTokens(doc, ta.minRunes)
	} else if ta.pattern.NumSubexp() == 1 {
		for _, m := range ta.pattern.FindAllStringSubmatch(doc, -1) {
			tokens = append(tokens, m[1])
		}
	} else {
		tokens = ta.pattern.FindAllString(doc, -1)
	}

	if ta.stopWords == nil {
		return tokens
	}
	kept := tokens[:0]
	for _, tok := range tokens {
		if _, stop := ta.stopWords[tok]; !stop {
			kept = append(kept, tok)
		}
	}
	return kept
}

// wordTokens emits maximal runs of word characters that are at least minRunes long
func wordTokens(doc string, minRunes int) []string {
	var tokens []string
	start, n := -1, 0
	for i, r := range doc {
		if isWordRune(r) {
			if start < 0 {
				start, n = i, 0
			}
			n++
			continue
		}
		if start >= 0 && n >= minRunes {
			tokens = append(tokens, doc[start:i])
		}
		start = -1
	}
	if start >= 0 && n >= minRunes {
		tokens = append(tokens, doc[start:])
	}
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func (ta *textAnalyzer) ngrams(tokens []string) []string {
	if ta.maxN == 1 {
		return tokens
	}

	original := tokens
	minN := ta.minN
	var terms []string
	if minN == 1 {
		terms = append(terms, original...)
		minN++
	}

	for n := minN; n <= ta.maxN && n <= len(original); n++ {
		for i := 0; i+n <= len(original); i++ {
			terms = append(terms, strings.Join(original[i:i+n], " "))
		}
	}
	return terms
}
