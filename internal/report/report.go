// Package report renders slop analyses for people and for machines.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	jsoniter "github.com/json-iterator/go"

	"github.com/julienpequegnot/slopmon/internal/slop"
)

type Options struct {
	// Styled enables terminal colors.
	Styled bool
}

var (
	scoreStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	countStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Render writes the overall score followed by one section per n-gram length.
func Render(w io.Writer, a *slop.Analysis, opts Options) error {
	style := func(s lipgloss.Style, text string) string {
		if !opts.Styled {
			return text
		}
		return s.Render(text)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Slop Score for the entire corpus: %s\n", style(scoreStyle, FormatScore(a.Result.Score, a.Result.Total)))

	for _, s := range a.PerN {
		fmt.Fprintf(&b, "\n%s\n", style(headerStyle, fmt.Sprintf("Top %d %d-grams:", a.TopX, s.N)))
		for _, e := range s.Top {
			fmt.Fprintf(&b, "%s %s\n", e.Gram.String(), style(countStyle, fmt.Sprintf("(count: %d)", e.Count)))
		}
		fmt.Fprintf(&b, "Total unique %d-grams: %d\n", s.N, s.Distinct)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// FormatScore prints a score the way the report has always shown it: "0" when
// no n-grams were counted, otherwise the shortest decimal with a trailing ".0"
// for whole numbers, switching to exponent notation below 1e-4 or from 1e16.
func FormatScore(score float64, total int) string {
	if total == 0 {
		return "0"
	}

	sci := strconv.FormatFloat(score, 'e', -1, 64)
	if score != 0 {
		exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
		if err == nil && (exp < -4 || exp >= 16) {
			return sci
		}
	}

	s := strconv.FormatFloat(score, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

type jsonNgram struct {
	Ngram string `json:"ngram"`
	Count int    `json:"count"`
}

type jsonLength struct {
	N        int         `json:"n"`
	Distinct int         `json:"distinct"`
	Total    int         `json:"total"`
	Top      []jsonNgram `json:"top"`
}

type jsonReport struct {
	Score       float64      `json:"score"`
	RawScore    int          `json:"raw_score"`
	TotalNgrams int          `json:"total_ngrams"`
	Distinct    int          `json:"distinct_ngrams"`
	Documents   int          `json:"documents"`
	MinNgram    int          `json:"min_ngram"`
	MaxNgram    int          `json:"max_ngram"`
	Lengths     []jsonLength `json:"lengths"`
}

// JSON writes the analysis as an indented JSON document.
func JSON(w io.Writer, a *slop.Analysis) error {
	out := jsonReport{
		Score:       a.Result.Score,
		RawScore:    a.Result.Raw,
		TotalNgrams: a.Result.Total,
		Distinct:    a.Result.Table.Len(),
		Documents:   a.Documents,
		MinNgram:    a.Range.Min,
		MaxNgram:    a.Range.Max,
		Lengths:     make([]jsonLength, 0, len(a.PerN)),
	}
	for _, s := range a.PerN {
		l := jsonLength{N: s.N, Distinct: s.Distinct, Total: s.Total, Top: make([]jsonNgram, 0, len(s.Top))}
		for _, e := range s.Top {
			l.Top = append(l.Top, jsonNgram{Ngram: e.Gram.String(), Count: e.Count})
		}
		out.Lengths = append(out.Lengths, l)
	}

	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
