// ═══════════════════════════════════════════════════════════════════════════════
// RANKING: Z-score relevance over the query's own term set
// ═══════════════════════════════════════════════════════════════════════════════
// This ranker needs no document length or term positions, just the raw
// TF already stored in the trie: it scores a document by how many
// standard deviations its TF for a term sits above that term's
// corpus-wide mean, averaged over whichever query terms actually occur
// in the document.
// ═══════════════════════════════════════════════════════════════════════════════

package radixsearch

import (
	"sort"

	"github.com/RoaringBitmap/roaring"
)

// TermStats holds the corpus-wide statistics the sealing pass computes
// for one term: mean and population standard deviation of TF across the
// documents containing it, and document frequency.
type TermStats struct {
	Mu    float64 `json:"mu"`
	Sigma float64 `json:"sigma"`
	DF    int     `json:"df"`
}

// zScore computes a term's Z-score for an observed tf:
//   - no stats for the term at all → 0
//   - sigma <= 0 (every document containing the term had the same TF) →
//     1.0 if this tf exceeds that constant, else 0.0
//   - otherwise the standard (tf - mu) / sigma
func zScore(stats map[string]TermStats, term string, tf int) float64 {
	st, ok := stats[term]
	if !ok {
		return 0
	}
	if st.Sigma <= 0 {
		if float64(tf) > st.Mu {
			return 1.0
		}
		return 0.0
	}
	return (float64(tf) - st.Mu) / st.Sigma
}

type scoredDoc struct {
	doc DocID
	rel float64
}

// rank scores every candidate document by the mean Z-score of the query
// terms it actually contains, drops documents that matched the boolean
// expression without directly containing any query term themselves, and
// returns the survivors ordered by descending relevance, ties broken by
// ascending DocID.
func rank(trie *Trie, stats map[string]TermStats, candidates *roaring.Bitmap, terms []string) []DocID {
	scored := make([]scoredDoc, 0, candidates.GetCardinality())

	it := candidates.Iterator()
	for it.HasNext() {
		doc := DocID(it.Next())

		var sum float64
		var count int
		for _, term := range terms {
			tf := trie.LookupTF(term, doc)
			if tf <= 0 {
				continue
			}
			sum += zScore(stats, term, tf)
			count++
		}
		if count == 0 {
			continue
		}
		scored = append(scored, scoredDoc{doc: doc, rel: sum / float64(count)})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].rel != scored[j].rel {
			return scored[i].rel > scored[j].rel
		}
		return scored[i].doc < scored[j].doc
	})

	out := make([]DocID, len(scored))
	for i, s := range scored {
		out[i] = s.doc
	}
	return out
}
