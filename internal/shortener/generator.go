package shortener

import (
	"fmt"

	"github.com/jaevor/go-nanoid"
)

// DefaultCodeLength gives 64^7 (about 4.4e12) possible codes.
const DefaultCodeLength = 7

// CodeGenerator generates short codes. It is not required to return unique values.
type CodeGenerator func() string

// NewCodeGenerator returns a generator drawing length symbols uniformly from
// the URL-safe alphabet A-Z, a-z, 0-9, '-' and '_'.
func NewCodeGenerator(length int) (CodeGenerator, error) {
	if length <= 0 {
		length = DefaultCodeLength
	}

	gen, err := nanoid.Standard(length)
	if err != nil {
		return nil, fmt.Errorf("create code generator: %w", err)
	}

	return gen, nil
}
