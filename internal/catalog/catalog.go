// Package catalog holds the read-only quotes and jokes and the selection
// logic over them: filtering, uniform sampling and random picks.
package catalog

import (
	"math/rand/v2"
	"sync"

	"github.com/MrSnakeDoc/quotewits/internal/domain"
)

// Catalog is built once at startup and never mutated.
type Catalog struct {
	Quotes *Collection[domain.Quote]
	Jokes  *Collection[domain.Joke]
}

// Option customizes a Catalog.
type Option func(*options)

type options struct {
	intN func(int) int
}

// WithRand makes sampling deterministic for tests. r is guarded by a mutex
// because *rand.Rand is not safe for concurrent use.
func WithRand(r *rand.Rand) Option {
	var mu sync.Mutex
	return func(o *options) {
		o.intN = func(n int) int {
			mu.Lock()
			defer mu.Unlock()
			return r.IntN(n)
		}
	}
}

// New builds a catalog from already validated items.
func New(quotes []domain.Quote, jokes []domain.Joke, opts ...Option) *Catalog {
	o := options{intN: defaultIntN}
	for _, opt := range opts {
		opt(&o)
	}

	return &Catalog{
		Quotes: newCollection(quotes,
			func(q domain.Quote) string { return q.Category },
			func(q domain.Quote) string { return q.Author },
			func(q domain.Quote) string { return q.Text },
			o.intN,
		),
		Jokes: newCollection(jokes,
			func(j domain.Joke) string { return j.Category },
			nil,
			func(j domain.Joke) string { return j.Text },
			o.intN,
		),
	}
}

// Selection is the outcome of a list request: the items to return and the
// size of the filtered set before any limit was applied.
type Selection[T any] struct {
	Items []T
	Total int
}

// SelectQuotes filters quotes and samples at most limit of them.
func (c *Catalog) SelectQuotes(f Filter, limit int) Selection[domain.Quote] {
	filtered := c.Quotes.Filter(f)
	return Selection[domain.Quote]{
		Items: c.Quotes.Sample(filtered, limit),
		Total: len(filtered),
	}
}

// SelectJokes filters jokes and keeps the first limit of them in catalog
// order. limit <= 0 keeps all. Jokes are not sampled; callers that want a
// random joke use Jokes.RandomOne.
func (c *Catalog) SelectJokes(f Filter, limit int) Selection[domain.Joke] {
	filtered := c.Jokes.Filter(f)
	items := filtered
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return Selection[domain.Joke]{
		Items: items,
		Total: len(filtered),
	}
}
