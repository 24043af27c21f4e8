package vectorindex

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bivav/code-cognitio/internal/chunk"
	"github.com/bivav/code-cognitio/internal/logging"
	"github.com/bivav/code-cognitio/internal/storage"
)

// metadata is the on-disk shape of index_metadata.json.
type metadata struct {
	EmbedderIdentifier string `json:"embedder_identifier"`
	Dimension          int    `json:"dimension"`
	TotalChunks        int    `json:"total_chunks"`
	CodeChunks         int    `json:"code_chunks"`
	DocChunks          int    `json:"doc_chunks"`
}

const (
	metadataFile   = "index_metadata.json"
	allChunksFile  = "chunks.json"
	codeChunksFile = "code_chunks.json"
	docChunksFile  = "doc_chunks.json"
	allBinFile     = "index.bin"
	codeBinFile    = "code_index.bin"
	docBinFile     = "doc_index.bin"
)

// ErrIndexMissing is returned by Load when the index directory has no
// index_metadata.json.
var ErrIndexMissing = fmt.Errorf("index not found")

// Save persists the index as the seven-file flat layout: metadata, three
// chunk JSON arrays, and three embedding binaries. Every file is written to
// a temp path in dir and renamed into place, so a reader never observes a
// partially written file.
func (idx *Index) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating index dir: %w", err)
	}

	meta := metadata{
		EmbedderIdentifier: idx.EmbedderIdentifier,
		Dimension:          idx.Dimension,
		TotalChunks:        idx.All.Len(),
		CodeChunks:         idx.Code.Len(),
		DocChunks:          idx.Doc.Len(),
	}
	if err := writeJSONAtomic(filepath.Join(dir, metadataFile), meta); err != nil {
		return err
	}

	if err := writeJSONAtomic(filepath.Join(dir, allChunksFile), idx.All.Chunks); err != nil {
		return err
	}
	if err := writeJSONAtomic(filepath.Join(dir, codeChunksFile), idx.Code.Chunks); err != nil {
		return err
	}
	if err := writeJSONAtomic(filepath.Join(dir, docChunksFile), idx.Doc.Chunks); err != nil {
		return err
	}

	if err := writeEmbeddingsAtomic(filepath.Join(dir, allBinFile), idx.All.Embeddings); err != nil {
		return err
	}
	if err := writeEmbeddingsAtomic(filepath.Join(dir, codeBinFile), idx.Code.Embeddings); err != nil {
		return err
	}
	if err := writeEmbeddingsAtomic(filepath.Join(dir, docBinFile), idx.Doc.Embeddings); err != nil {
		return err
	}

	return nil
}

// Load reads the seven-file layout back from dir. If the persisted
// embedder_identifier doesn't match expectedEmbedderIdentifier (when
// non-empty), Load logs a warning via logger and continues loading rather
// than failing; the stored index may still be usable.
func Load(dir string, expectedEmbedderIdentifier string, dimension int, logger *logging.Logger) (*Index, error) {
	metaPath := filepath.Join(dir, metadataFile)
	if _, err := os.Stat(metaPath); err != nil {
		return nil, ErrIndexMissing
	}

	var meta metadata
	if err := readJSON(metaPath, &meta); err != nil {
		return nil, fmt.Errorf("reading %s: %w", metadataFile, err)
	}

	if expectedEmbedderIdentifier != "" && meta.EmbedderIdentifier != expectedEmbedderIdentifier {
		if logger != nil {
			logger.Warnf("index embedder identifier %q does not match configured %q; continuing with stored index",
				meta.EmbedderIdentifier, expectedEmbedderIdentifier)
		}
	}

	idx := New(meta.EmbedderIdentifier, meta.Dimension)

	allChunks, err := readChunks(filepath.Join(dir, allChunksFile))
	if err != nil {
		return nil, err
	}
	codeChunks, err := readChunks(filepath.Join(dir, codeChunksFile))
	if err != nil {
		return nil, err
	}
	docChunks, err := readChunks(filepath.Join(dir, docChunksFile))
	if err != nil {
		return nil, err
	}

	allVecs, err := readEmbeddings(filepath.Join(dir, allBinFile), meta.Dimension)
	if err != nil {
		return nil, err
	}
	codeVecs, err := readEmbeddings(filepath.Join(dir, codeBinFile), meta.Dimension)
	if err != nil {
		return nil, err
	}
	docVecs, err := readEmbeddings(filepath.Join(dir, docBinFile), meta.Dimension)
	if err != nil {
		return nil, err
	}

	if err := attach(idx.All, allChunks, allVecs); err != nil {
		return nil, err
	}
	if err := attach(idx.Code, codeChunks, codeVecs); err != nil {
		return nil, err
	}
	if err := attach(idx.Doc, docChunks, docVecs); err != nil {
		return nil, err
	}

	if dimension > 0 && meta.Dimension != dimension && logger != nil {
		logger.Warnf("index dimension %d does not match configured embedder dimension %d; continuing with stored index",
			meta.Dimension, dimension)
	}
	return idx, nil
}

func attach(coll *Collection, chunks []*chunk.Chunk, vecs [][]float32) error {
	if len(chunks) != len(vecs) {
		return fmt.Errorf("chunk/embedding row count mismatch: %d chunks, %d vectors", len(chunks), len(vecs))
	}
	coll.Chunks = chunks
	coll.Embeddings = vecs
	return nil
}

func readChunks(path string) ([]*chunk.Chunk, error) {
	var chunks []*chunk.Chunk
	if err := readJSON(path, &chunks); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return chunks, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	return writeFileAtomic(path, data)
}

// writeEmbeddingsAtomic concatenates each row's little-endian float32 blob
// (internal/storage.SerializeEmbedding) back to back; readEmbeddings splits
// them again by the fixed per-row byte width.
func writeEmbeddingsAtomic(path string, rows [][]float32) error {
	var buf []byte
	for _, row := range rows {
		buf = append(buf, storage.SerializeEmbedding(row)...)
	}
	return writeFileAtomic(path, buf)
}

func readEmbeddings(path string, dimension int) ([][]float32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if dimension <= 0 {
		if len(data) != 0 {
			return nil, fmt.Errorf("%s: non-empty embeddings but zero dimension recorded", filepath.Base(path))
		}
		return nil, nil
	}

	rowBytes := dimension * 4
	if len(data)%rowBytes != 0 {
		return nil, fmt.Errorf("%s: length %d not divisible by row width %d", filepath.Base(path), len(data), rowBytes)
	}

	rows := make([][]float32, len(data)/rowBytes)
	for i := range rows {
		row, err := storage.DeserializeEmbedding(data[i*rowBytes : (i+1)*rowBytes])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", filepath.Base(path), i, err)
		}
		rows[i] = row
	}
	return rows, nil
}

// writeFileAtomic writes data to a temp file in the same directory as path
// and renames it into place, so readers never see a partial write.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", filepath.Base(path), err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming into %s: %w", filepath.Base(path), err)
	}
	return nil
}
