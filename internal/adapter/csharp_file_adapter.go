package adapter

import (
	"context"
	"fmt"

	"forgeguard.dev/pkg/forgeguard/internal/syntax"
)

// CSharpFileAdapter encapsulates C# parsing so the domain layer can focus on
// attribute rules while delegating grammar details to an infrastructure component.
type CSharpFileAdapter interface {
	// Parse builds a syntax unit for the provided filename/source pair.
	Parse(ctx context.Context, filename string, src []byte) (*syntax.Unit, error)
}

// LocalCSharpFileAdapter provides a CSharpFileAdapter backed by tree-sitter.
type LocalCSharpFileAdapter struct{}

// NewLocalCSharpFileAdapter constructs a LocalCSharpFileAdapter.
func NewLocalCSharpFileAdapter() *LocalCSharpFileAdapter {
	return &LocalCSharpFileAdapter{}
}

// Parse builds a syntax unit, naming the file in any error.
func (a *LocalCSharpFileAdapter) Parse(ctx context.Context, filename string, src []byte) (*syntax.Unit, error) {
	unit, err := syntax.Parse(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	return unit, nil
}
