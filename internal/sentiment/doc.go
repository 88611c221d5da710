// Package sentiment implements the hybrid scoring engine: a pure contextual
// feature extractor, a multilingual lexicon scorer, a trainable Naive Bayes
// classifier, an optional LLM-backed external predictor, and the ensemble
// combiner that merges their predictions with dynamic contextual reweighting
// and a sarcasm override.
package sentiment
