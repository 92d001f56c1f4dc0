// Package radixsearch implements a compact radix-tree inverted index, a
// boolean query pipeline over it, and a Z-score ranking function.
//
// ═══════════════════════════════════════════════════════════════════════════════
// WHAT IS A COMPACT RADIX TRIE?
// ═══════════════════════════════════════════════════════════════════════════════
// A plain trie spends one node per character. A compact (radix) trie merges
// any run of single-child nodes into one edge labeled with the whole run, so
// space grows with the number of distinct characters on disk, not with the
// sum of all term lengths.
//
// Example: inserting "carro" then "carga" produces
//
//	root --"car"--> (internal) --"ro"--> leaf[carro]
//	                           --"ga"--> leaf[carga]
//
// instead of seven single-character nodes.
// ═══════════════════════════════════════════════════════════════════════════════
package radixsearch

import (
	"sort"
)

// DocID is a dense, positive, monotonically assigned document identifier.
// DocIDs start at 1 (see Indexer); 0 is never assigned to a document.
type DocID uint32

// InvertedListEntry pairs a document with the number of times a term
// occurred in it. A term appears in a given document's inverted list at
// most once; TF is the total occurrence count for that document.
type InvertedListEntry struct {
	DocID DocID
	TF    int
}

// InvertedList is a term's inverted list: an ordered sequence of
// (doc id, tf) entries. Order is insertion order; callers must not depend
// on anything beyond uniqueness of DocID.
type InvertedList []InvertedListEntry

// trieNode carries the path fragment from its parent (label), its children
// keyed by the first byte of the child's label, whether a term ends here,
// and (only when terminal) the inverted list for that term.
type trieNode struct {
	label      string
	children   map[byte]*trieNode
	isTerminal bool
	postings   InvertedList
}

func newTrieNode(label string) *trieNode {
	return &trieNode{label: label}
}

// lcp returns the length of the longest common prefix of a and b.
func lcp(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// TrieBuilder is the mutable, build-time half of the trie: a separate
// type from Trie so the compiler stops an in-progress index from being
// queried before it's ready. Insert is total for any non-empty term;
// passing an empty term is undefined.
type TrieBuilder struct {
	root *trieNode
}

// NewTrieBuilder returns an empty builder, ready for Insert.
func NewTrieBuilder() *TrieBuilder {
	return &TrieBuilder{root: newTrieNode("")}
}

// Insert adds (term, doc, tf) to the trie. Five cases can happen on the
// way down: no child starts with the term's next byte, the term matches
// a child's label exactly, the term is a strict prefix of the child's
// label, the child's label is a strict prefix of the term, or the two
// diverge partway through.
//
// Duplicate (term, doc) inserts are NOT deduplicated here: the inverted
// list simply grows another entry. Callers that want one entry per
// document must aggregate TF themselves before calling Insert — which is
// exactly what Indexer does.
func (b *TrieBuilder) Insert(term string, doc DocID, tf int) {
	current := b.root
	remaining := term

	for {
		c := remaining[0]
		child, ok := current.children[c]
		if !ok {
			leaf := newTrieNode(remaining)
			leaf.isTerminal = true
			leaf.postings = append(leaf.postings, InvertedListEntry{DocID: doc, TF: tf})
			if current.children == nil {
				current.children = make(map[byte]*trieNode)
			}
			current.children[c] = leaf
			return
		}

		m := lcp(remaining, child.label)

		switch {
		case m == len(remaining) && m == len(child.label):
			// Case A: exact match.
			child.isTerminal = true
			child.postings = append(child.postings, InvertedListEntry{DocID: doc, TF: tf})
			return

		case m == len(remaining):
			// Case B: term is a strict prefix of the child's label. Split:
			// new terminal node takes `remaining`, the old child is
			// trimmed and re-hung underneath it.
			split := newTrieNode(remaining)
			split.isTerminal = true
			split.postings = append(split.postings, InvertedListEntry{DocID: doc, TF: tf})

			child.label = child.label[m:]
			split.children = map[byte]*trieNode{child.label[0]: child}

			current.children[c] = split
			return

		case m == len(child.label):
			// Case C: the child's label is a strict prefix of term.
			// Descend and continue the loop with the remainder.
			current = child
			remaining = remaining[m:]

		default:
			// Case D: divergence. Introduce a non-terminal split node
			// holding the common prefix, with the trimmed old child and a
			// brand new leaf for the remainder of `remaining` as its two
			// children.
			split := newTrieNode(child.label[:m])

			child.label = child.label[m:]

			leaf := newTrieNode(remaining[m:])
			leaf.isTerminal = true
			leaf.postings = append(leaf.postings, InvertedListEntry{DocID: doc, TF: tf})

			split.children = map[byte]*trieNode{
				child.label[0]: child,
				leaf.label[0]:  leaf,
			}

			current.children[c] = split
			return
		}
	}
}

// Seal freezes the builder into an immutable Trie. After Seal, the
// builder must not be reused — an index is built once while documents
// stream in, then served read-only for the rest of its life.
func (b *TrieBuilder) Seal() *Trie {
	return &Trie{root: b.root}
}

// Trie is the sealed, read-only radix trie. Lookup is total and never
// fails on well-formed input.
type Trie struct {
	root *trieNode
}

// Lookup walks the trie for term and returns its inverted list, or an
// empty list if term was never inserted, or was inserted only as a
// non-terminal prefix of some other term.
func (t *Trie) Lookup(term string) InvertedList {
	current := t.root
	remaining := term

	for remaining != "" {
		c := remaining[0]
		child, ok := current.children[c]
		if !ok {
			return nil
		}

		m := lcp(remaining, child.label)

		if m == len(remaining) && m == len(child.label) {
			if !child.isTerminal {
				return nil
			}
			return child.postings
		}

		if m == len(child.label) && m < len(remaining) {
			current = child
			remaining = remaining[m:]
			continue
		}

		return nil
	}

	return nil
}

// LookupTF returns the TF recorded for (term, doc), or 0 if the term was
// never indexed or doesn't occur in that document.
func (t *Trie) LookupTF(term string, doc DocID) int {
	for _, e := range t.Lookup(term) {
		if e.DocID == doc {
			return e.TF
		}
	}
	return 0
}

// sortedChildKeys returns a node's child keys in ascending order, so
// serialization always walks the trie in the same deterministic order.
func sortedChildKeys(children map[byte]*trieNode) []byte {
	keys := make([]byte, 0, len(children))
	for k := range children {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
