package advisor

import "context"

// Advisor produces a natural-language review of source text.
//
// Implementations may fail; callers treat failure as "no advisory" and
// never propagate it into the analysis result.
type Advisor interface {
	Review(ctx context.Context, text string) (string, error)
}
