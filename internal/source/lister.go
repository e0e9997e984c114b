package source

import (
	"context"
	"net/http"

	"github.com/mvp-joe/fileicons/internal/langmap"
	"github.com/shurcooL/graphql"
)

// MaxEntries caps the listing. It is far above any real directory size, so
// a single page is treated as complete.
const MaxEntries = 50000

// Lister lists directory entries through the Sourcegraph GraphQL API.
type Lister struct {
	endpoint string
	client   *graphql.Client
}

// NewLister creates a Lister for the given GraphQL endpoint.
func NewLister(endpoint string, httpClient *http.Client) *Lister {
	return &Lister{
		endpoint: endpoint,
		client:   graphql.NewClient(endpoint, httpClient),
	}
}

// treeQuery mirrors:
//
//	repository(name: $repository) {
//	  commit(rev: $ref) {
//	    tree(path: $path) {
//	      entries(first: $first, recursive: $recursive, recursiveSingleChild: false) { path isDirectory }
//	    }
//	  }
//	}
type treeQuery struct {
	Repository *struct {
		Commit *struct {
			Tree *struct {
				Entries []struct {
					Path        graphql.String
					IsDirectory graphql.Boolean
				} `graphql:"entries(first: $first, recursive: $recursive, recursiveSingleChild: false)"`
			} `graphql:"tree(path: $path)"`
		} `graphql:"commit(rev: $ref)"`
	} `graphql:"repository(name: $repository)"`
}

// List returns the top-level entries under path in repository at ref, in
// the order the service returns them.
func (l *Lister) List(ctx context.Context, repository, ref, path string) ([]langmap.DirectoryEntry, error) {
	var q treeQuery
	variables := map[string]interface{}{
		"repository": graphql.String(repository),
		"ref":        graphql.String(ref),
		"path":       graphql.String(path),
		"recursive":  graphql.Boolean(false),
		"first":      graphql.Int(MaxEntries),
	}

	if err := l.client.Query(ctx, &q, variables); err != nil {
		return nil, &langmap.TransportError{Op: "list", URL: l.endpoint, Err: err}
	}

	if q.Repository == nil || q.Repository.Commit == nil || q.Repository.Commit.Tree == nil {
		return nil, &langmap.TransportError{Op: "list", URL: l.endpoint, Err: langmap.ErrNoTree}
	}

	raw := q.Repository.Commit.Tree.Entries
	entries := make([]langmap.DirectoryEntry, 0, len(raw))
	for _, e := range raw {
		entries = append(entries, langmap.DirectoryEntry{
			Path:        string(e.Path),
			IsDirectory: bool(e.IsDirectory),
		})
	}
	return entries, nil
}
