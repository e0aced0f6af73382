// ABOUTME: Builds the assessment pipeline from configuration
// ABOUTME: Shared by serve, assess, and mcp so all three answer the same way

package main

import (
	"context"

	"github.com/harper/aquaguard/internal/assessment"
)

// buildAssessor wires the Gemini client, the optional cache, and the Assessor.
// The returned close func releases the cache.
func buildAssessor(ctx context.Context) (*assessment.Assessor, func(), error) {
	m := appMetrics()

	client, err := assessment.NewClient(ctx, assessment.ClientOptions{
		APIKey: cfg.GeminiAPIKey,
		Model:  cfg.GeminiModel,
	}, logger)
	if err != nil {
		return nil, nil, err
	}

	var source assessment.Source = client
	closeFn := func() {}
	if cfg.AssessmentCacheTTL > 0 {
		cached, err := assessment.NewCachedSource(client, cfg.AssessmentCacheTTL, m)
		if err != nil {
			return nil, nil, err
		}
		source = cached
		closeFn = func() {
			if err := cached.Close(); err != nil {
				logger.Warn("close assessment cache", "error", err)
			}
		}
	}

	return assessment.NewAssessor(source, cfg.AssessmentTimeout, logger, m), closeFn, nil
}
