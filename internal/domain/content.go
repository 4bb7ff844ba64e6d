package domain

// Quote is an immutable catalog quote.
type Quote struct {
	ID       string `json:"id" yaml:"id"`
	Text     string `json:"text" yaml:"text"`
	Author   string `json:"author" yaml:"author"`
	Category string `json:"category" yaml:"category"`
}

// Joke is an immutable catalog joke. Jokes have no author.
type Joke struct {
	ID       string `json:"id" yaml:"id"`
	Text     string `json:"text" yaml:"text"`
	Category string `json:"category" yaml:"category"`
}

// ContentType tells which collection a favorite was saved from.
type ContentType string

const (
	ContentQuote ContentType = "quote"
	ContentJoke  ContentType = "joke"
)

// Valid reports whether t is one of the known content types.
func (t ContentType) Valid() bool {
	return t == ContentQuote || t == ContentJoke
}
