package radixsearch

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// ═══════════════════════════════════════════════════════════════════════════════
// TRIE SERIALIZATION ROUND-TRIP TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestTrieSerializeRoundTrip(t *testing.T) {
	b := NewTrieBuilder()
	b.Insert("carro", 1, 3)
	b.Insert("carga", 2, 1)
	b.Insert("car", 3, 7)
	trie := b.Seal()

	var buf bytes.Buffer
	if err := trie.Serialize(&buf); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	reloaded, err := DeserializeTrie(&buf)
	if err != nil {
		t.Fatalf("DeserializeTrie failed: %v", err)
	}

	for _, term := range []string{"carro", "carga", "car"} {
		want := trie.Lookup(term)
		got := reloaded.Lookup(term)
		if len(want) != len(got) {
			t.Fatalf("term %q: posting count mismatch, want %v got %v", term, want, got)
		}
		for i := range want {
			if want[i] != got[i] {
				t.Fatalf("term %q: posting %d mismatch, want %+v got %+v", term, i, want[i], got[i])
			}
		}
	}

	if reloaded.Lookup("c") != nil {
		t.Fatalf("expected non-terminal prefix 'c' to not match after reload")
	}
}

func TestDeserializeTrie_EmptyInputIsCorrupt(t *testing.T) {
	_, err := DeserializeTrie(bytes.NewReader(nil))
	if !errors.Is(err, ErrFormatCorrupt) {
		t.Fatalf("expected ErrFormatCorrupt, got %v", err)
	}
}

func TestDeserializeTrie_MalformedLine(t *testing.T) {
	_, err := DeserializeTrie(bytes.NewBufferString("not-enough-fields\n"))
	if !errors.Is(err, ErrFormatCorrupt) {
		t.Fatalf("expected ErrFormatCorrupt, got %v", err)
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// DOC MAP / STATS ROUND-TRIP TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestDocMapRoundTrip(t *testing.T) {
	docMap := map[DocID]string{1: "doc-a.txt", 2: "doc-b.txt"}

	var buf bytes.Buffer
	if err := serializeDocMap(&buf, docMap); err != nil {
		t.Fatalf("serializeDocMap failed: %v", err)
	}

	got, err := deserializeDocMap(&buf)
	if err != nil {
		t.Fatalf("deserializeDocMap failed: %v", err)
	}
	if len(got) != len(docMap) {
		t.Fatalf("doc map size mismatch: got %v want %v", got, docMap)
	}
	for id, ext := range docMap {
		if got[id] != ext {
			t.Fatalf("doc %d: got %q want %q", id, got[id], ext)
		}
	}
}

func TestStatsRoundTrip(t *testing.T) {
	stats := map[string]TermStats{
		"machine": {Mu: 2.5, Sigma: 1.1, DF: 3},
	}

	var buf bytes.Buffer
	if err := serializeStats(&buf, stats); err != nil {
		t.Fatalf("serializeStats failed: %v", err)
	}

	got, err := deserializeStats(&buf)
	if err != nil {
		t.Fatalf("deserializeStats failed: %v", err)
	}
	if got["machine"] != stats["machine"] {
		t.Fatalf("got %+v want %+v", got["machine"], stats["machine"])
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// ARTIFACTS SAVE/LOAD TESTS (atomic write, full artifact round-trip)
// ═══════════════════════════════════════════════════════════════════════════════

func TestArtifactsSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	triePath := filepath.Join(dir, "trie.txt")
	docMapPath := filepath.Join(dir, "docmap.json")
	statsPath := filepath.Join(dir, "stats.json")

	ix := NewIndexer(DefaultIndexerConfig())
	ix.Index("a.txt", "machine learning")
	ix.Index("b.txt", "deep learning")
	artifacts, err := ix.Seal()
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	if err := artifacts.Save(triePath, docMapPath, statsPath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	for _, p := range []string{triePath, docMapPath, statsPath} {
		if !fileExists(p) {
			t.Fatalf("expected %s to exist after Save", p)
		}
		if fileExists(p + ".tmp") {
			t.Fatalf("expected tmp file %s.tmp to be gone after Save", p)
		}
	}

	loaded, err := LoadArtifacts(triePath, docMapPath, statsPath)
	if err != nil {
		t.Fatalf("LoadArtifacts failed: %v", err)
	}
	if loaded.TotalDocs != 2 {
		t.Fatalf("expected 2 total docs, got %d", loaded.TotalDocs)
	}
	if len(loaded.Trie.Lookup("machine")) != 1 {
		t.Fatalf("expected 'machine' in reloaded trie")
	}
}

func TestArtifactsSave_CleansUpOnFailure(t *testing.T) {
	dir := t.TempDir()
	// statsPath points at a directory, so renaming the stats tmp file onto
	// it fails after all three tmp writes succeeded, exercising the
	// cleanup path.
	badStatsDir := filepath.Join(dir, "stats-as-dir")
	if err := os.Mkdir(badStatsDir, 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	triePath := filepath.Join(dir, "trie.txt")
	docMapPath := filepath.Join(dir, "docmap.json")

	ix := NewIndexer(DefaultIndexerConfig())
	ix.Index("a.txt", "hello")
	artifacts, err := ix.Seal()
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	err = artifacts.Save(triePath, docMapPath, badStatsDir)
	if err == nil {
		t.Fatalf("expected Save to fail when statsPath is a directory")
	}
	if fileExists(triePath) || fileExists(triePath+".tmp") {
		t.Fatalf("expected trie artifact to be cleaned up after failed Save")
	}
	if fileExists(docMapPath) || fileExists(docMapPath+".tmp") {
		t.Fatalf("expected doc map artifact to be cleaned up after failed Save")
	}
}
