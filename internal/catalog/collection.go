package catalog

import (
	"math/rand/v2"
	"strings"

	"github.com/MrSnakeDoc/quotewits/internal/domain"
)

// Sentinel labels sent by clients to mean "no filter".
const (
	AllCategories = "Все категории"
	AllAuthors    = "Все авторы"
)

// Filter narrows a collection. Empty fields and sentinels are ignored.
type Filter struct {
	Category string
	Author   string
	Keyword  string
}

// Collection is an immutable list of items with the accessors needed to
// filter it. It is safe for concurrent use.
type Collection[T any] struct {
	items      []T
	categories []string
	authors    []string

	category func(T) string
	author   func(T) string // nil when items have no author
	text     func(T) string

	intN func(n int) int
}

func newCollection[T any](items []T, category, author, text func(T) string, intN func(int) int) *Collection[T] {
	c := &Collection[T]{
		items:    append([]T(nil), items...),
		category: category,
		author:   author,
		text:     text,
		intN:     intN,
	}
	c.categories = distinct(c.items, category)
	if author != nil {
		c.authors = distinct(c.items, author)
	}
	return c
}

// Len returns the number of items.
func (c *Collection[T]) Len() int { return len(c.items) }

// All returns a copy of every item in catalog order.
func (c *Collection[T]) All() []T {
	return append([]T(nil), c.items...)
}

// Categories returns distinct category labels in first-seen order.
func (c *Collection[T]) Categories() []string {
	return append([]string{}, c.categories...)
}

// Authors returns distinct author labels in first-seen order.
// Collections without authors return an empty slice.
func (c *Collection[T]) Authors() []string {
	return append([]string{}, c.authors...)
}

// Filter applies category, author and keyword, in that order, and keeps
// items matching all of them. The result is a new slice in catalog order.
func (c *Collection[T]) Filter(f Filter) []T {
	category := f.Category
	if category == AllCategories {
		category = ""
	}
	author := f.Author
	if author == AllAuthors || c.author == nil {
		author = ""
	}
	keyword := strings.ToLower(strings.TrimSpace(f.Keyword))

	out := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if category != "" && c.category(item) != category {
			continue
		}
		if author != "" && c.author(item) != author {
			continue
		}
		if keyword != "" && !c.matchKeyword(item, keyword) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (c *Collection[T]) matchKeyword(item T, lowered string) bool {
	if strings.Contains(strings.ToLower(c.text(item)), lowered) {
		return true
	}
	return c.author != nil && strings.Contains(strings.ToLower(c.author(item)), lowered)
}

// Sample returns at most limit items picked uniformly from items, in random
// order. items is not modified. It runs a partial Fisher–Yates shuffle on a
// copy, so every subset and every order is equally likely.
func (c *Collection[T]) Sample(items []T, limit int) []T {
	if limit <= 0 || len(items) == 0 {
		return []T{}
	}
	pool := append([]T(nil), items...)
	k := min(limit, len(pool))
	for i := 0; i < k; i++ {
		j := i + c.intN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

// RandomOne picks one item uniformly from the whole collection.
func (c *Collection[T]) RandomOne() (T, error) {
	var zero T
	if len(c.items) == 0 {
		return zero, domain.ErrEmptyCollection
	}
	return c.items[c.intN(len(c.items))], nil
}

func distinct[T any](items []T, label func(T) string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		l := label(item)
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}

func defaultIntN(n int) int { return rand.IntN(n) }
