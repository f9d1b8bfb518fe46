// Package slop measures how repetitive a text corpus is by counting repeated
// word n-grams.
package slop

import (
	"fmt"

	"github.com/julienpequegnot/slopmon/internal/ngram"
)

// Result is the outcome of scoring one corpus snapshot.
type Result struct {
	Score float64
	// Raw is the unnormalized sum of c*(c-1) over repeated n-grams.
	Raw   int
	Total int
	Table *ngram.Table
}

// Score pools the n-grams of every length in r across all texts and returns
// the collision score: sum of c*(c-1) for every n-gram seen c > 1 times,
// divided by the total number of n-grams counted.
func Score(corpus []string, r ngram.Range) (Result, error) {
	if err := r.Validate(); err != nil {
		return Result{}, fmt.Errorf("failed to score corpus: %w", err)
	}

	table := ngram.NewTable()
	for _, text := range corpus {
		tokens := ngram.Tokenize(text)
		for _, n := range r.Sizes() {
			table.AddAll(ngram.Window(tokens, n))
		}
	}

	raw := 0
	for _, e := range table.Entries() {
		if e.Count > 1 {
			raw += e.Count * (e.Count - 1)
		}
	}

	score := float64(raw)
	total := table.Total()
	if total > 0 {
		score /= float64(total)
	}

	return Result{
		Score: score,
		Raw:   raw,
		Total: total,
		Table: table,
	}, nil
}
