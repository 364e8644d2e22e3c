package segment

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of words an Engine remembers.
const DefaultCacheSize = 1024

// Engine binds one code set and remembers FindMinimal results per word.
// The cache belongs to the engine, so a result can never be served for a
// different lexicon. Engine is safe for concurrent use.
type Engine struct {
	codes CodeSet
	cache *lru.Cache[string, cached]
}

type cached struct {
	d  Decomposition
	ok bool
}

// NewEngine returns an Engine over codes. size <= 0 selects DefaultCacheSize.
func NewEngine(codes CodeSet, size int) (*Engine, error) {
	if codes == nil || codes.Len() == 0 {
		return nil, ErrEmptyCodeSet
	}
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[string, cached](size)
	if err != nil {
		return nil, err
	}
	return &Engine{codes: codes, cache: c}, nil
}

// Decompose is FindMinimal with memoisation. Invalid input is not cached.
func (e *Engine) Decompose(word string) (Decomposition, bool, error) {
	if hit, ok := e.cache.Get(word); ok {
		return hit.d.clone(), hit.ok, nil
	}
	d, ok, err := FindMinimal(word, e.codes)
	if err != nil {
		return nil, false, err
	}
	e.cache.Add(word, cached{d: d.clone(), ok: ok})
	return d, ok, nil
}

// Codes returns the code set the engine was built with.
func (e *Engine) Codes() CodeSet { return e.codes }

// Cached returns the number of remembered words.
func (e *Engine) Cached() int { return e.cache.Len() }
