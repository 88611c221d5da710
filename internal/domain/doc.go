// Package domain holds the core types of the sentiment service: analysis
// requests and results, contextual features, predictor contracts, and the
// sentinel errors shared across layers. It has no dependencies on transport,
// storage, or other infrastructure.
package domain
