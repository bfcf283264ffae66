package services

import (
	"context"
	"strings"
)

// ensureContext guards against nil contexts from direct service callers.
func ensureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// slugify lower-cases a name and collapses whitespace runs into single
// hyphens, matching the slug derivation rule for organizations created
// without an explicit slug.
func slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
