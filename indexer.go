// ═══════════════════════════════════════════════════════════════════════════════
// INDEXING: Building the Search Index
// ═══════════════════════════════════════════════════════════════════════════════
// The indexer consumes documents one at a time, tokenizes each, inserts
// every (term, tf) pair into the trie, and accumulates the raw per-term
// statistics (sum of TF, sum of TF², document frequency) needed to compute
// each term's mean and standard deviation once the stream ends.
//
// Document order determines DocID assignment: the first document indexed
// gets DocID 1, the next DocID 2, and so on with no holes.
// ═══════════════════════════════════════════════════════════════════════════════

package radixsearch

import (
	"log/slog"
	"math"

	"github.com/RoaringBitmap/roaring"
)

// IndexerConfig holds the indexer's (few) tunables. The tokenizer's
// character class is fixed and not configurable; the only knob is how
// often Index reports progress on a long-running batch.
type IndexerConfig struct {
	// ProgressEvery controls how often Index emits a slog.Debug progress
	// line while consuming a large batch. 0 disables progress logging.
	ProgressEvery int
}

// DefaultIndexerConfig returns the indexer's standard configuration.
func DefaultIndexerConfig() IndexerConfig {
	return IndexerConfig{ProgressEvery: 1000}
}

// rawTermStats accumulates the raw sums the sealing pass needs to derive
// mu and sigma for one term. docs tracks which DocIDs contain the term;
// its cardinality is the term's document frequency.
type rawTermStats struct {
	sumTF  uint64
	sumTF2 uint64
	docs   *roaring.Bitmap
}

// Indexer builds a trie, a doc-id map, and per-term statistics from a
// stream of documents in a single batch pass. It is not safe for
// concurrent use — callers that want to index from multiple goroutines
// must serialize their own calls to Index.
type Indexer struct {
	cfg IndexerConfig

	trie   *TrieBuilder
	docMap map[DocID]string
	stats  map[string]*rawTermStats

	nextDocID DocID
	totalDocs int
}

// NewIndexer returns an empty Indexer ready to consume documents.
func NewIndexer(cfg IndexerConfig) *Indexer {
	return &Indexer{
		cfg:       cfg,
		trie:      NewTrieBuilder(),
		docMap:    make(map[DocID]string),
		stats:     make(map[string]*rawTermStats),
		nextDocID: 1,
	}
}

// Index assigns the next DocID to (externalID, text), tokenizes it,
// inserts every (term, tf) pair into the trie, and updates the raw
// per-term accumulators.
func (ix *Indexer) Index(externalID, text string) DocID {
	doc := ix.nextDocID
	ix.nextDocID++

	ix.docMap[doc] = externalID

	tokens := tokenizeDocument(text)
	tf := termFrequencies(tokens)

	for term, count := range tf {
		ix.trie.Insert(term, doc, count)

		rs, ok := ix.stats[term]
		if !ok {
			rs = &rawTermStats{docs: roaring.NewBitmap()}
			ix.stats[term] = rs
		}
		rs.docs.Add(uint32(doc))
		rs.sumTF += uint64(count)
		rs.sumTF2 += uint64(count) * uint64(count)
	}

	ix.totalDocs++
	slog.Info("indexed document", slog.Uint64("doc_id", uint64(doc)), slog.Int("term_count", len(tf)))

	if ix.cfg.ProgressEvery > 0 && ix.totalDocs%ix.cfg.ProgressEvery == 0 {
		slog.Debug("indexing progress", slog.Int("documents", ix.totalDocs))
	}

	return doc
}

// Seal computes mu/sigma for every distinct term and returns the three
// artifacts a caller can persist or query directly. After Seal the
// Indexer should not be reused for further Index calls; the trie
// builder it wraps has been consumed into a sealed Trie.
func (ix *Indexer) Seal() (*Artifacts, error) {
	stats := make(map[string]TermStats, len(ix.stats))
	for term, rs := range ix.stats {
		df := rs.docs.GetCardinality()
		if df == 0 {
			continue
		}
		mu := float64(rs.sumTF) / float64(df)
		variance := float64(rs.sumTF2)/float64(df) - mu*mu
		if variance < 0 {
			variance = 0
		}
		stats[term] = TermStats{
			Mu:    mu,
			Sigma: math.Sqrt(variance),
			DF:    int(df),
		}
	}

	docMap := make(map[DocID]string, len(ix.docMap))
	for k, v := range ix.docMap {
		docMap[k] = v
	}

	slog.Info("sealed index", slog.Int("total_docs", ix.totalDocs), slog.Int("distinct_terms", len(stats)))

	return &Artifacts{
		Trie:      ix.trie.Seal(),
		DocMap:    docMap,
		Stats:     stats,
		TotalDocs: ix.totalDocs,
	}, nil
}

// Document is one (external id, text) pair from a corpus stream. The
// core never opens files or walks directories; it only consumes
// whatever Documents the caller hands it.
type Document struct {
	ExternalID string
	Text       string
}

// Sink receives the three sealed artifacts once an Indexer is done.
// FileSink is the persistence-backed implementation; tests and
// in-memory callers may supply their own.
type Sink interface {
	Write(a *Artifacts) error
}

// Build drains docs through a fresh Indexer, seals it, and — if sink is
// non-nil — hands the result to sink.Write. It returns the sealed
// artifacts either way, so callers that only want an in-memory index can
// pass a nil sink.
func Build(cfg IndexerConfig, docs <-chan Document, sink Sink) (*Artifacts, error) {
	ix := NewIndexer(cfg)
	for d := range docs {
		ix.Index(d.ExternalID, d.Text)
	}

	artifacts, err := ix.Seal()
	if err != nil {
		return nil, err
	}

	if sink != nil {
		if err := sink.Write(artifacts); err != nil {
			return nil, err
		}
	}

	return artifacts, nil
}
