package summarizer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"textsum/internal/domain"
)

// ErrInvalidStyle is returned for a style tag outside plain, bullets and numbered.
var ErrInvalidStyle = errors.New("invalid summary style")

// BulletMarker prefixes each entry of the bullets style.
const BulletMarker = "•"

// ParseStyle validates a caller supplied style tag. Empty means plain.
func ParseStyle(s string) (domain.Style, error) {
	switch st := domain.Style(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return domain.StylePlain, nil
	case domain.StylePlain, domain.StyleBullets, domain.StyleNumbered:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStyle, s)
	}
}

// Format renders sentences in style. Bullet and numbered entries each start
// with a blank line and are joined by newlines.
func Format(sentences []domain.Sentence, style domain.Style) (string, error) {
	switch style {
	case domain.StylePlain:
		texts := make([]string, len(sentences))
		for i, s := range sentences {
			texts[i] = s.Text
		}
		return strings.Join(texts, " "), nil
	case domain.StyleBullets:
		entries := make([]string, len(sentences))
		for i, s := range sentences {
			entries[i] = "\n" + BulletMarker + " " + s.Text
		}
		return strings.Join(entries, "\n"), nil
	case domain.StyleNumbered:
		entries := make([]string, len(sentences))
		for i, s := range sentences {
			entries[i] = "\n" + strconv.Itoa(i+1) + ". " + s.Text
		}
		return strings.Join(entries, "\n"), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStyle, string(style))
	}
}
