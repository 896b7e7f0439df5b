package search

import (
	"context"

	"github.com/RepertoireLLC/A1x6nd7a-sub000/internal/repository/archive"
)

// Archive fetches raw record pages from the upstream archive API.
type Archive interface {
	Search(ctx context.Context, q archive.Query) (archive.Page, error)
}
