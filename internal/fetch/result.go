package fetch

import (
	"context"

	"github.com/jonathan/persona-agent/internal/types"
)

// KindResult is the explicit outcome of fetching one record kind. A failed
// kind carries its error alongside an empty record list; the caller decides
// how to report it.
type KindResult struct {
	Kind    types.Kind
	Records []types.TextRecord
	Err     error
}

// OK reports whether the kind was fetched without error
func (r KindResult) OK() bool {
	return r.Err == nil
}

// FetchUser retrieves both kinds for one user, each independently: a failure
// fetching comments never aborts fetching posts, and vice versa.
func FetchUser(ctx context.Context, src Source, username string, limit int) (posts, comments KindResult) {
	posts = fetchKind(ctx, src, username, types.KindPost, limit)
	comments = fetchKind(ctx, src, username, types.KindComment, limit)
	return posts, comments
}

func fetchKind(ctx context.Context, src Source, username string, kind types.Kind, limit int) KindResult {
	records, err := src.Listing(ctx, username, kind, limit)
	if err != nil {
		return KindResult{Kind: kind, Err: err}
	}
	return KindResult{Kind: kind, Records: records}
}
