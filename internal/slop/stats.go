package slop

import (
	"fmt"

	"github.com/julienpequegnot/slopmon/internal/ngram"
)

// NgramStats summarizes the n-grams of a single length.
type NgramStats struct {
	N        int
	Top      []ngram.Entry
	Distinct int
	Total    int
}

// Stats builds a separate table for every n in r and reports its topX most
// frequent n-grams along with the number of distinct n-grams of that length.
func Stats(corpus []string, r ngram.Range, topX int) ([]NgramStats, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("failed to compute n-gram stats: %w", err)
	}

	// Tokenize once; each n still gets its own table.
	tokenized := make([][]string, len(corpus))
	for i, text := range corpus {
		tokenized[i] = ngram.Tokenize(text)
	}

	stats := make([]NgramStats, 0, r.Max-r.Min+1)
	for _, n := range r.Sizes() {
		table := ngram.NewTable()
		for _, tokens := range tokenized {
			table.AddAll(ngram.Window(tokens, n))
		}
		stats = append(stats, NgramStats{
			N:        n,
			Top:      table.MostCommon(topX),
			Distinct: table.Len(),
			Total:    table.Total(),
		})
	}
	return stats, nil
}

// Analysis is a full report for one corpus snapshot.
type Analysis struct {
	Range     ngram.Range
	TopX      int
	Documents int
	Result    Result
	PerN      []NgramStats
}

// Analyze scores corpus and collects the per-length statistics.
func Analyze(corpus []string, r ngram.Range, topX int) (*Analysis, error) {
	result, err := Score(corpus, r)
	if err != nil {
		return nil, err
	}

	perN, err := Stats(corpus, r, topX)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		Range:     r,
		TopX:      topX,
		Documents: len(corpus),
		Result:    result,
		PerN:      perN,
	}, nil
}
