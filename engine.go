// ═══════════════════════════════════════════════════════════════════════════════
// ENGINE: The glue between a sealed index and the query/rank pipeline
// ═══════════════════════════════════════════════════════════════════════════════
// Engine wraps the three sealed artifacts an Indexer produces and exposes
// the single entry point most callers want: Search. It also exposes the
// lower-level lookups for callers that want to resolve a DocID back to
// an external id, or inspect a term's raw TF/Z-score directly.
// ═══════════════════════════════════════════════════════════════════════════════

package radixsearch

import (
	"log/slog"
)

// Engine is a loaded, read-only search index: a sealed trie, per-term
// statistics, and the map from internal DocID back to external id.
type Engine struct {
	trie      *Trie
	stats     map[string]TermStats
	docMap    map[DocID]string
	totalDocs int
}

// NewEngine wraps a freshly sealed (or freshly loaded) set of artifacts in
// an Engine.
func NewEngine(a *Artifacts) *Engine {
	return &Engine{
		trie:      a.Trie,
		stats:     a.Stats,
		docMap:    a.DocMap,
		totalDocs: a.TotalDocs,
	}
}

// LoadEngine reads the three artifact files from disk and wraps them in
// an Engine, ready to serve queries.
func LoadEngine(triePath, docMapPath, statsPath string) (*Engine, error) {
	a, err := LoadArtifacts(triePath, docMapPath, statsPath)
	if err != nil {
		return nil, err
	}
	return NewEngine(a), nil
}

// LoadOrBuild loads an Engine from the three artifact paths if they all
// exist, and otherwise builds a fresh index from docs, persists it to
// those paths, and returns the result — so re-running the same command
// against a corpus reuses the previous build instead of reindexing it.
func LoadOrBuild(triePath, docMapPath, statsPath string, cfg IndexerConfig, docs <-chan Document) (*Engine, error) {
	if artifactsExist(triePath, docMapPath, statsPath) {
		slog.Info("loading existing index", slog.String("trie", triePath))
		return LoadEngine(triePath, docMapPath, statsPath)
	}

	slog.Info("building new index", slog.String("trie", triePath))
	sink := &FileSink{TriePath: triePath, DocMapPath: docMapPath, StatsPath: statsPath}
	a, err := Build(cfg, docs, sink)
	if err != nil {
		return nil, err
	}
	return NewEngine(a), nil
}

func artifactsExist(paths ...string) bool {
	for _, p := range paths {
		if !fileExists(p) {
			return false
		}
	}
	return true
}

// Search runs a boolean query end-to-end: tokenize, convert to postfix,
// evaluate against the trie to get a candidate bitmap, then rank the
// candidates by mean Z-score. A query that tokenizes to nothing returns
// an empty result rather than an error — it is a valid query that simply
// matches nothing, not a malformed one.
func (e *Engine) Search(query string) ([]DocID, error) {
	tokens := tokenizeQuery(query)
	if len(tokens) == 0 {
		slog.Info("search", slog.String("query", query), slog.Int("result_count", 0))
		return nil, nil
	}

	postfix, err := toPostfix(tokens)
	if err != nil {
		return nil, err
	}

	candidates, err := evaluate(e.trie, postfix)
	if err != nil {
		return nil, err
	}

	terms := queryTerms(tokens)
	results := rank(e.trie, e.stats, candidates, terms)

	slog.Info("search", slog.String("query", query), slog.Int("result_count", len(results)))
	return results, nil
}

// Resolve maps an internal DocID back to the external id supplied at
// index time.
func (e *Engine) Resolve(id DocID) (string, bool) {
	ext, ok := e.docMap[id]
	return ext, ok
}

// LookupTF returns the recorded term frequency for (term, id), or 0 if
// the term never occurred in that document.
func (e *Engine) LookupTF(term string, id DocID) int {
	return e.trie.LookupTF(term, id)
}

// ZScore computes the Z-score a given tf would have for term, using this
// engine's corpus-wide statistics.
func (e *Engine) ZScore(term string, tf int) float64 {
	return zScore(e.stats, term, tf)
}

// TotalDocs returns the number of documents the engine was built from.
func (e *Engine) TotalDocs() int {
	return e.totalDocs
}
