package model

import (
	"fmt"

	"github.com/lox/cropdss/internal/recommend"
)

// LabelEncoder maps class indices to category names in the order the
// classifier was trained with.
type LabelEncoder []string

func (l LabelEncoder) Decode(class int) (string, error) {
	if class < 0 || class >= len(l) {
		return "", fmt.Errorf("class %d of %d: %w", class, len(l), recommend.ErrUnknownClass)
	}
	return l[class], nil
}
