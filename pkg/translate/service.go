// Package translate memoizes best-effort text translations. Translation is
// never load-bearing: every failure falls back to the original text and is
// only logged.
package translate

import (
	"context"
	"log/slog"
	"sync"
)

// SolutionBatchSize is how many solutions are translated concurrently per
// batch.
const SolutionBatchSize = 5

// TranslationService translates text through a Translator, memoizing results
// in an injected Cache.
type TranslationService struct {
	translator Translator
	cache      *Cache
}

// NewTranslationService creates a translation service.
func NewTranslationService(translator Translator, cache *Cache) *TranslationService {
	if cache == nil {
		cache = NewCache()
	}
	return &TranslationService{translator: translator, cache: cache}
}

// TranslateText translates text into target. Empty text and source==target
// short-circuit to the original without a network call. Any transport or
// endpoint failure logs a warning and returns the original text; callers
// never see an error.
func (s *TranslationService) TranslateText(ctx context.Context, text, target, source string) string {
	if source == "" {
		source = "auto"
	}
	if text == "" || source == target {
		return text
	}

	key := CacheKey(source, target, text)
	if cached, ok := s.cache.Get(key); ok {
		return cached
	}

	translated, err := s.translator.Translate(ctx, text, source, target)
	if err != nil {
		slog.Warn("Translation failed, returning original text", "target", target, "err", err)
		return text
	}

	s.cache.Set(key, translated)
	return translated
}

// TranslateTexts translates each text independently and concurrently,
// preserving order. One item's failure falls back to that item's original
// value without affecting siblings.
func (s *TranslationService) TranslateTexts(ctx context.Context, texts []string, target, source string) []string {
	results := make([]string, len(texts))

	var wg sync.WaitGroup
	for i, text := range texts {
		wg.Add(1)
		go func(i int, text string) {
			defer wg.Done()
			results[i] = s.TranslateText(ctx, text, target, source)
		}(i, text)
	}
	wg.Wait()

	return results
}

// SolutionText is the translatable surface of a catalog solution.
type SolutionText struct {
	Name    string
	Summary string
}

// TranslateSolutions translates solution names and summaries in batches of
// SolutionBatchSize, order-preserving, with per-item fallback.
func (s *TranslationService) TranslateSolutions(ctx context.Context, items []SolutionText, target, source string) []SolutionText {
	results := make([]SolutionText, len(items))

	for start := 0; start < len(items); start += SolutionBatchSize {
		end := start + SolutionBatchSize
		if end > len(items) {
			end = len(items)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = SolutionText{
					Name:    s.TranslateText(ctx, items[i].Name, target, source),
					Summary: s.TranslateText(ctx, items[i].Summary, target, source),
				}
			}(i)
		}
		wg.Wait()
	}

	return results
}

// ClearCache empties the translation cache.
func (s *TranslationService) ClearCache() {
	s.cache.Clear()
}

// CacheStats reports the cache size and keys.
func (s *TranslationService) CacheStats() CacheStats {
	return s.cache.Stats()
}
