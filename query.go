// ═══════════════════════════════════════════════════════════════════════════════
// QUERY PIPELINE: Tokenize → Shunting-Yard → Evaluate
// ═══════════════════════════════════════════════════════════════════════════════
// A query string like "a AND (b OR c)" goes through three stages:
//
//  1. tokenizeQuery splits it into TERM/AND/OR/LPAREN/RPAREN tokens.
//  2. toPostfix runs the shunting-yard algorithm to produce RPN, honoring
//     AND's tighter, left-associative precedence over OR.
//  3. evaluate walks the RPN with a stack of *roaring.Bitmap doc-id sets,
//     looking up each TERM in the trie and intersecting/unioning bitmaps
//     for AND/OR.
//
// Roaring bitmaps carry the doc-id sets between stages: the evaluator
// never depends on iteration order, only on bitmap membership, and
// roaring.And/roaring.Or give fast chunk-at-a-time boolean ops.
// ═══════════════════════════════════════════════════════════════════════════════

package radixsearch

import (
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring"
)

type tokenKind int

const (
	tokTerm tokenKind = iota
	tokAnd
	tokOr
	tokLParen
	tokRParen
)

type queryToken struct {
	kind tokenKind
	term string // set only when kind == tokTerm
}

// tokenizeQuery splits a query string into tokens. Recognition is
// literal: the uppercase keywords AND and OR, parentheses as standalone
// characters, and any other whitespace-separated substring (lowercased)
// as a term. Parentheses glued to a term without whitespace are split off
// by injecting whitespace around every '(' and ')' before splitting.
func tokenizeQuery(query string) []queryToken {
	var spaced strings.Builder
	spaced.Grow(len(query) + 8)
	for _, r := range query {
		if r == '(' || r == ')' {
			spaced.WriteByte(' ')
			spaced.WriteRune(r)
			spaced.WriteByte(' ')
			continue
		}
		spaced.WriteRune(r)
	}

	fields := strings.Fields(spaced.String())
	tokens := make([]queryToken, 0, len(fields))
	for _, f := range fields {
		switch f {
		case "(":
			tokens = append(tokens, queryToken{kind: tokLParen})
		case ")":
			tokens = append(tokens, queryToken{kind: tokRParen})
		case "AND":
			tokens = append(tokens, queryToken{kind: tokAnd})
		case "OR":
			tokens = append(tokens, queryToken{kind: tokOr})
		default:
			tokens = append(tokens, queryToken{kind: tokTerm, term: strings.ToLower(f)})
		}
	}
	return tokens
}

// precedence returns a binary operator's shunting-yard precedence. AND
// binds tighter than OR; parentheses have no precedence of their own.
func precedence(k tokenKind) int {
	switch k {
	case tokAnd:
		return 2
	case tokOr:
		return 1
	default:
		return 0
	}
}

// toPostfix converts infix tokens to postfix (RPN) via shunting-yard.
// Both operators are left-associative, so an operator only pops another
// operator of >= its own precedence.
func toPostfix(tokens []queryToken) ([]queryToken, error) {
	output := make([]queryToken, 0, len(tokens))
	var ops []queryToken

	for _, tok := range tokens {
		switch tok.kind {
		case tokTerm:
			output = append(output, tok)

		case tokLParen:
			ops = append(ops, tok)

		case tokRParen:
			closed := false
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if top.kind == tokLParen {
					closed = true
					break
				}
				output = append(output, top)
			}
			if !closed {
				return nil, fmt.Errorf("unmatched ')': %w", ErrMalformedQuery)
			}

		case tokAnd, tokOr:
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.kind == tokLParen || precedence(top.kind) < precedence(tok.kind) {
					break
				}
				output = append(output, top)
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, tok)
		}
	}

	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if top.kind == tokLParen {
			return nil, fmt.Errorf("unmatched '(': %w", ErrMalformedQuery)
		}
		output = append(output, top)
	}

	return output, nil
}

// evaluate walks postfix tokens with an operand stack of doc-id bitmaps.
// A TERM token looks the term up in the trie and pushes the set of doc
// ids that contain it; AND/OR pop two operands and push their
// intersection/union. Underflow and leftover operands both fail with
// ErrMalformedQuery.
func evaluate(trie *Trie, postfix []queryToken) (*roaring.Bitmap, error) {
	var stack []*roaring.Bitmap

	for _, tok := range postfix {
		switch tok.kind {
		case tokTerm:
			bm := roaring.NewBitmap()
			for _, e := range trie.Lookup(tok.term) {
				bm.Add(uint32(e.DocID))
			}
			stack = append(stack, bm)

		case tokAnd, tokOr:
			if len(stack) < 2 {
				return nil, fmt.Errorf("operator underflow: %w", ErrMalformedQuery)
			}
			b := stack[len(stack)-1]
			a := stack[len(stack)-2]
			stack = stack[:len(stack)-2]

			var result *roaring.Bitmap
			if tok.kind == tokAnd {
				result = roaring.And(a, b)
			} else {
				result = roaring.Or(a, b)
			}
			stack = append(stack, result)

		case tokLParen, tokRParen:
			// Never present in postfix output; toPostfix consumes them.
		}
	}

	if len(stack) != 1 {
		return nil, fmt.Errorf("leftover operands: %w", ErrMalformedQuery)
	}
	return stack[0], nil
}

// queryTerms returns the distinct TERM tokens in tokens, in first-seen
// order, with operators and parentheses excluded and duplicates
// collapsed.
func queryTerms(tokens []queryToken) []string {
	seen := make(map[string]struct{}, len(tokens))
	var terms []string
	for _, tok := range tokens {
		if tok.kind != tokTerm {
			continue
		}
		if _, ok := seen[tok.term]; ok {
			continue
		}
		seen[tok.term] = struct{}{}
		terms = append(terms, tok.term)
	}
	return terms
}
