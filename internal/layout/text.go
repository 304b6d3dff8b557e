package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// hyphenGlyphs is the set of line-final hyphen glyphs considered for
// dehyphenation, taken from the OCR-D transcription guidelines.
var hyphenGlyphs = []rune{'-', '‐', '⹀', '⸗'}

func isHyphen(r rune) bool {
	for _, h := range hyphenGlyphs {
		if r == h {
			return true
		}
	}
	return false
}

// Dehyphenate joins hyphen-terminated lines with the following line's
// leading word, unless that word starts with an uppercase letter, in which
// case the hyphen is kept and the lines stay separate. Empty lines are
// dropped; all lines are whitespace-trimmed.
func Dehyphenate(lines []string) []string {
	if len(lines) == 0 {
		return nil
	}
	work := make([]string, 0, len(lines))
	for _, l := range lines {
		if l == "" {
			continue
		}
		work = append(work, strings.TrimSpace(l))
	}
	return dehyphenateInPlace(work)
}

// DehyphenateRows is the row-preserving variant used for tabular exports:
// joined words migrate between rows but the row count never changes, so
// text stays aligned with per-row geometry columns.
func DehyphenateRows(lines []string) []string {
	work := make([]string, len(lines))
	for i, l := range lines {
		work[i] = strings.TrimSpace(l)
	}
	dehyphenateInPlace(work)
	return work
}

func dehyphenateInPlace(work []string) []string {
	for i := range work {
		cur := work[i]
		last, size := utf8.DecodeLastRuneInString(cur)
		if i == len(work)-1 || cur == "" || size == 0 || !isHyphen(last) {
			work[i] = cur
			continue
		}
		next := work[i+1]
		firstWord, rest, _ := strings.Cut(next, " ")
		if firstWord == "" {
			continue
		}
		firstRune, _ := utf8.DecodeRuneInString(firstWord)
		if !unicode.IsUpper(firstRune) {
			work[i] = strings.TrimRightFunc(cur, isHyphen) + firstWord
			work[i+1] = strings.TrimLeft(rest, " ")
		}
	}
	return work
}

// FullText concatenates the canonical line texts of the whole document.
// With useReadingOrder set, regions are visited in the order resolved by
// the given mode; otherwise lines are visited in raw document order.
func (d *Document) FullText(dehyphenate, useReadingOrder bool, mode ReadingOrderMode, delimiter string) string {
	var lines []string
	if useReadingOrder {
		for _, id := range d.ReadingOrderIDs(mode) {
			for _, tr := range d.textRegionsForRegionID(id) {
				lines = append(lines, regionLineTexts(tr)...)
			}
		}
	} else {
		for _, tr := range d.TextRegions {
			lines = append(lines, regionLineTexts(tr)...)
		}
		for _, tb := range d.TableRegions {
			for _, c := range tb.Cells {
				lines = append(lines, regionLineTexts(&c.TextRegion)...)
			}
		}
	}

	if dehyphenate && len(lines) > 0 {
		lines = Dehyphenate(lines)
	}
	return strings.Join(lines, delimiter)
}

func regionLineTexts(tr *TextRegion) []string {
	var out []string
	for _, l := range tr.Lines {
		if t, ok := l.Text(); ok {
			out = append(out, t)
		}
	}
	return out
}

// TextLevel selects what DeleteTextLevel removes.
type TextLevel string

const (
	// LevelWord removes all word elements.
	LevelWord TextLevel = "word"
	// LevelLine removes line-level transcriptions.
	LevelLine TextLevel = "line"
	// LevelRegion removes region-level transcriptions.
	LevelRegion TextLevel = "region"
)

// DeleteTextLevel removes text-bearing elements at the given level across
// the document.
func (d *Document) DeleteTextLevel(level TextLevel) {
	for _, tr := range d.AllTextRegions() {
		switch level {
		case LevelWord:
			for _, l := range tr.Lines {
				l.Words = nil
			}
		case LevelLine:
			for _, l := range tr.Lines {
				l.Texts = nil
			}
		case LevelRegion:
			tr.Texts = nil
		}
	}
}

// AllTextRegions returns every plain text region plus every table cell.
func (d *Document) AllTextRegions() []*TextRegion {
	out := make([]*TextRegion, 0, len(d.TextRegions))
	out = append(out, d.TextRegions...)
	for _, tb := range d.TableRegions {
		for _, c := range tb.Cells {
			out = append(out, &c.TextRegion)
		}
	}
	return out
}
