package model

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Token represents one OCR-recognized word with its bounding box and
// optional confidence. Confidence, when set, is a percentage in [0, 100].
// Tokens are produced by an external OCR engine and are immutable inputs
// to the detection pipeline.
type Token struct {
	Text       string
	BBox       BBox
	Confidence *float64
}

// Conf returns a pointer to v, for constructing tokens with a reported
// confidence.
func Conf(v float64) *float64 {
	return &v
}

// QuadBBox reduces a four-corner polygon (as emitted by engines that
// report rotated word quadrilaterals) to its axis-aligned bounding box.
func QuadBBox(quad [4]Point) BBox {
	b := BBox{X1: quad[0].X, Y1: quad[0].Y, X2: quad[0].X, Y2: quad[0].Y}
	for _, p := range quad[1:] {
		if p.X < b.X1 {
			b.X1 = p.X
		}
		if p.X > b.X2 {
			b.X2 = p.X
		}
		if p.Y < b.Y1 {
			b.Y1 = p.Y
		}
		if p.Y > b.Y2 {
			b.Y2 = p.Y
		}
	}
	return b
}

// NormalizeTokens prepares raw OCR output for detection:
//
//   - text is NFC-normalized and whitespace-trimmed
//   - tokens with empty text or an empty bounding box are dropped
//   - a negative confidence is an engine sentinel for "no estimate" and
//     is mapped to unset
//
// The input slice is not modified; token order is preserved.
func NormalizeTokens(tokens []Token) []Token {
	if len(tokens) == 0 {
		return nil
	}

	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		text := strings.TrimSpace(norm.NFC.String(tok.Text))
		if text == "" || !tok.BBox.IsValid() {
			continue
		}

		conf := tok.Confidence
		if conf != nil && *conf < 0 {
			conf = nil
		}

		out = append(out, Token{Text: text, BBox: tok.BBox, Confidence: conf})
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
