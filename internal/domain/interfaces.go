package domain

// Document represents a single text loaded into the system.
type Document struct {
	ID      string
	Path    string
	Content string
}

// Sentence is one segmented sentence of a document and its ordinal position.
type Sentence struct {
	Text  string
	Index int
}

// ScoredSentence pairs a sentence with its aggregate word-frequency score.
type ScoredSentence struct {
	Sentence Sentence
	Score    int
}

// Stats describes the unfiltered tokenization of a document.
type Stats struct {
	SentenceCount       int     `json:"sentence_count" yaml:"sentence_count"`
	WordCount           int     `json:"word_count" yaml:"word_count"`
	AvgWordsPerSentence float64 `json:"avg_words_per_sentence" yaml:"avg_words_per_sentence"`
}

// Style selects how selected sentences are rendered.
type Style string

const (
	StylePlain    Style = "plain"
	StyleBullets  Style = "bullets"
	StyleNumbered Style = "numbered"
)

// Styles lists the supported styles in display order.
var Styles = []Style{StylePlain, StyleBullets, StyleNumbered}

// SentenceSegmenter splits raw text into ordered sentences.
type SentenceSegmenter interface {
	Sentences(text string) []Sentence
}

// WordSegmenter splits raw text into ordered word tokens.
type WordSegmenter interface {
	Words(text string) []string
}

// Segmenter splits text into both sentences and words.
type Segmenter interface {
	SentenceSegmenter
	WordSegmenter
}

// Selector picks the most informative sentences of a text, in reading order.
type Selector interface {
	Select(text string, n int) []Sentence
}
