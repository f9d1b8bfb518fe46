package ngram

import "sort"

// Entry is one row of a frequency table.
type Entry struct {
	Gram  Gram
	Count int
}

// Table counts n-grams and remembers the order in which keys were first seen.
type Table struct {
	counts map[string]int
	order  []string
	total  int
}

func NewTable() *Table {
	return &Table{
		counts: make(map[string]int),
	}
}

func (t *Table) Add(g Gram) {
	t.AddKey(g.Key())
}

func (t *Table) AddKey(key string) {
	if _, ok := t.counts[key]; !ok {
		t.order = append(t.order, key)
	}
	t.counts[key]++
	t.total++
}

// AddAll counts every gram in grams.
func (t *Table) AddAll(grams []Gram) {
	for _, g := range grams {
		t.Add(g)
	}
}

func (t *Table) Count(g Gram) int {
	return t.counts[g.Key()]
}

// Len returns the number of distinct n-grams.
func (t *Table) Len() int {
	return len(t.order)
}

// Total returns the sum of all counts.
func (t *Table) Total() int {
	return t.total
}

// Entries returns every row in first-seen order.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, len(t.order))
	for _, key := range t.order {
		entries = append(entries, Entry{Gram: FromKey(key), Count: t.counts[key]})
	}
	return entries
}

// Counts returns a copy of the key -> count mapping.
func (t *Table) Counts() map[string]int {
	out := make(map[string]int, len(t.counts))
	for k, v := range t.counts {
		out[k] = v
	}
	return out
}

// MostCommon returns the k most frequent rows, highest count first.
// Equal counts keep first-seen order.
func (t *Table) MostCommon(k int) []Entry {
	if k < 1 {
		return nil
	}
	entries := t.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if k < len(entries) {
		entries = entries[:k]
	}
	return entries
}
