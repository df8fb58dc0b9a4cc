package typeset

import (
	"image/color"
	"math"
	"unicode"
	"unicode/utf8"
)

// measureFunc returns the advance width of text in points, under the markup
// kind that would style it. Injected so the wrapping logic is testable
// without a font backend.
type measureFunc func(text string, kind Kind) float64

type tokenClass int

const (
	tokenWord tokenClass = iota
	tokenSpace
	tokenNewline
)

type token struct {
	start, end int
	text       string
	class      tokenClass
}

// tokenize splits text into word runs, space runs and single newlines.
// Carriage returns are folded into the space run preceding a newline so the
// token spans still tile the input exactly.
func tokenize(text string) []token {
	var tokens []token
	start := -1
	var class tokenClass
	flush := func(end int) {
		if start >= 0 {
			tokens = append(tokens, token{start: start, end: end, text: text[start:end], class: class})
			start = -1
		}
	}
	for i, r := range text {
		if r == '\n' {
			flush(i)
			tokens = append(tokens, token{start: i, end: i + 1, text: "\n", class: tokenNewline})
			continue
		}
		c := tokenWord
		if unicode.IsSpace(r) {
			c = tokenSpace
		}
		if start >= 0 && c != class {
			flush(i)
		}
		if start < 0 {
			start = i
			class = c
		}
	}
	flush(len(text))
	return tokens
}

// wordRun is one word (or word fragment) placed on a line, with the natural
// gap separating it from the previous run.
type wordRun struct {
	start, end int
	text       string
	width      float64
	gapBefore  float64
	kind       Kind
	color      color.RGBA
}

// rawLine is a wrapped line before alignment and direction resolution. Its
// byte span [start, end) includes trailing whitespace and the newline, so
// consecutive spans tile the input text.
type rawLine struct {
	start, end int
	words      []wordRun

	// inkWidth is the natural width of the words and their interior gaps.
	inkWidth float64

	// broken is set when the line ended because the next word would not
	// fit, as opposed to an explicit newline or the end of the text.
	// Only broken lines are stretched by justification.
	broken bool
}

type lineBuilder struct {
	start, end   int
	words        []wordRun
	penWidth     float64
	pendingSpace float64
}

func (b *lineBuilder) addWord(start, end int, text string, width float64, span Span, tagged bool) {
	w := wordRun{start: start, end: end, text: text, width: width, gapBefore: b.pendingSpace}
	if tagged {
		w.kind = span.Kind
		w.color = span.Color
	}
	b.words = append(b.words, w)
	b.penWidth += b.pendingSpace + width
	b.pendingSpace = 0
	b.end = end
}

func (b *lineBuilder) addSpace(end int, width float64) {
	b.pendingSpace += width
	b.end = end
}

func (b *lineBuilder) take(broken bool) rawLine {
	line := rawLine{start: b.start, end: b.end, words: b.words, inkWidth: b.penWidth, broken: broken}
	b.start = b.end
	b.words = nil
	b.penWidth = 0
	b.pendingSpace = 0
	return line
}

// wrapTokens lays text into lines at most limit points wide with a greedy
// first-fit. Breaks happen at whitespace; a single word wider than the limit
// is split character by character. Trailing whitespace stays with the line
// it follows and never triggers a break.
func wrapTokens(text string, limit float64, spans []Span, measure measureFunc) []rawLine {
	if limit <= 0 {
		limit = math.MaxFloat64
	}

	var lines []rawLine
	b := &lineBuilder{}

	placeWord := func(tok token, chunkStart, chunkEnd int, chunk string) {
		span, tagged := spanAt(spans, chunkStart, chunkEnd)
		w := measure(chunk, spanKind(span, tagged))
		if len(b.words) > 0 && b.penWidth+b.pendingSpace+w > limit {
			lines = append(lines, b.take(true))
		}
		b.addWord(chunkStart, chunkEnd, chunk, w, span, tagged)
	}

	for _, tok := range tokenize(text) {
		switch tok.class {
		case tokenNewline:
			b.end = tok.end
			lines = append(lines, b.take(false))
		case tokenSpace:
			b.addSpace(tok.end, measure(tok.text, ""))
		default:
			span, tagged := spanAt(spans, tok.start, tok.end)
			w := measure(tok.text, spanKind(span, tagged))
			if w <= limit {
				placeWord(tok, tok.start, tok.end, tok.text)
				continue
			}
			for _, chunk := range splitByWidth(tok, limit, func(s string) float64 {
				return measure(s, spanKind(span, tagged))
			}) {
				placeWord(tok, chunk.start, chunk.end, chunk.text)
			}
		}
	}
	if b.end > b.start || len(b.words) > 0 {
		lines = append(lines, b.take(false))
	}
	return lines
}

func spanKind(span Span, tagged bool) Kind {
	if !tagged {
		return ""
	}
	return span.Kind
}

type chunk struct {
	start, end int
	text       string
}

// splitByWidth cuts an oversized word into the largest prefixes that fit the
// limit, never producing an empty chunk.
func splitByWidth(tok token, limit float64, width func(string) float64) []chunk {
	var chunks []chunk
	start := 0
	for i, r := range tok.text {
		end := i + utf8.RuneLen(r)
		if i > start && width(tok.text[start:end]) > limit {
			chunks = append(chunks, chunk{start: tok.start + start, end: tok.start + i, text: tok.text[start:i]})
			start = i
		}
	}
	if start < len(tok.text) {
		chunks = append(chunks, chunk{start: tok.start + start, end: tok.end, text: tok.text[start:]})
	}
	return chunks
}
