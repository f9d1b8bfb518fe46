// Package corpus holds the growing collection of text lines under analysis
// and the suppliers that feed it.
package corpus

import "sync"

// Corpus is an append-only collection of text lines.
type Corpus struct {
	mu    sync.RWMutex
	lines []string
}

func New() *Corpus {
	return &Corpus{}
}

func (c *Corpus) Append(lines ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, lines...)
}

func (c *Corpus) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lines)
}

// Lines returns a snapshot of the corpus.
func (c *Corpus) Lines() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.lines))
	copy(out, c.lines)
	return out
}

// Item is one unit of input delivered by a supplier: a file or a feed entry.
type Item struct {
	Name  string
	Lines []string
}

// Batch is the new input found by a single supplier pass.
type Batch struct {
	Items  []Item
	Errors []error
}

func (b Batch) Empty() bool {
	return len(b.Items) == 0
}

// Lines flattens the batch in item order.
func (b Batch) Lines() []string {
	var lines []string
	for _, item := range b.Items {
		lines = append(lines, item.Lines...)
	}
	return lines
}

// Merge appends other to b.
func (b *Batch) Merge(other Batch) {
	b.Items = append(b.Items, other.Items...)
	b.Errors = append(b.Errors, other.Errors...)
}
