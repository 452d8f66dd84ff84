package logging

import "context"

type contextKey string

const (
	documentKey contextKey = "document"
	pageKey     contextKey = "page"
)

// WithDocument adds the path of the open document to the context.
func WithDocument(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, documentKey, path)
}

// WithPage adds a page index to the context.
func WithPage(ctx context.Context, page int) context.Context {
	return context.WithValue(ctx, pageKey, page)
}

// GetDocument retrieves the document path from the context.
// Returns empty string if not present.
func GetDocument(ctx context.Context) string {
	if p, ok := ctx.Value(documentKey).(string); ok {
		return p
	}
	return ""
}

// GetPage retrieves the page index from the context.
func GetPage(ctx context.Context) (int, bool) {
	p, ok := ctx.Value(pageKey).(int)
	return p, ok
}
