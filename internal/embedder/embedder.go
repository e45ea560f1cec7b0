// Package embedder generates dense vector embeddings for symbols using a
// local ONNX Runtime session (BGE-small-en-v1.5, 384-dim) and a
// HuggingFace tokenizer, so semantic search never leaves the machine.
// Grounded on the teacher's provider/base split: one long-lived session
// object wraps the native library handle the way base.Provider wraps a
// tree-sitter grammar, and callers never touch the C-level handles
// directly.
package embedder

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/daulet/tokenizers"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/oxhq/julie/internal/errs"
)

const (
	Dimensions = 384
	maxSeqLen  = 256
	modelFile  = "model.onnx"
	vocabFile  = "tokenizer.json"

	// ModelName tags every vector persisted via store.UpsertEmbedding so a
	// future model swap can be detected instead of silently mixing spaces.
	ModelName = "bge-small-en-v1.5"
)

// Engine wraps one loaded model + tokenizer pair. Zero value is not
// usable; construct with Open.
type Engine struct {
	mu        sync.Mutex
	session   *ort.DynamicAdvancedSession
	tokenizer *tokenizers.Tokenizer
	available bool
}

// Open loads model.onnx and tokenizer.json from modelDir. If either file
// is missing, Open returns a non-nil Engine with Available() == false
// instead of an error: callers degrade to FTS-only search rather than
// failing the whole indexing pipeline (SPEC_FULL.md Open Question #3).
func Open(modelDir string) (*Engine, error) {
	modelPath := filepath.Join(modelDir, modelFile)
	vocabPath := filepath.Join(modelDir, vocabFile)

	if !fileExists(modelPath) || !fileExists(vocabPath) {
		return &Engine{available: false}, nil
	}

	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, errs.New(errs.KindEmbed, "embedder.Open", err)
		}
	}

	tk, err := tokenizers.FromFile(vocabPath)
	if err != nil {
		return nil, errs.New(errs.KindEmbed, "embedder.Open(tokenizer)", err)
	}

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		[]string{"input_ids", "attention_mask", "token_type_ids"},
		[]string{"last_hidden_state"},
		nil,
	)
	if err != nil {
		tk.Close()
		return nil, errs.New(errs.KindEmbed, "embedder.Open(session)", err)
	}

	return &Engine{session: session, tokenizer: tk, available: true}, nil
}

// Available reports whether a real model was loaded.
func (e *Engine) Available() bool { return e != nil && e.available }

func (e *Engine) Close() {
	if e == nil || !e.available {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != nil {
		e.session.Destroy()
	}
	if e.tokenizer != nil {
		e.tokenizer.Close()
	}
}

// EmbedBatch encodes a batch of texts (typically a symbol's signature +
// doc comment) into mean-pooled, L2-normalized 384-dim vectors.
func (e *Engine) EmbedBatch(texts []string) ([][]float32, error) {
	if !e.Available() {
		return nil, errs.New(errs.KindEmbed, "Engine.EmbedBatch", fmt.Errorf("no model loaded"))
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.embedOne(text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (e *Engine) embedOne(text string) ([]float32, error) {
	enc := e.tokenizer.EncodeWithOptions(text, false, tokenizers.WithReturnTypeIDs(), tokenizers.WithReturnAttentionMask())
	ids := enc.IDs
	if len(ids) > maxSeqLen {
		ids = ids[:maxSeqLen]
	}
	mask := enc.AttentionMask
	if len(mask) > maxSeqLen {
		mask = mask[:maxSeqLen]
	}
	tokenTypes := make([]int64, len(ids))

	seqLen := len(ids)
	inputIDs := make([]int64, seqLen)
	attnMask := make([]int64, seqLen)
	for i := range ids {
		inputIDs[i] = int64(ids[i])
		attnMask[i] = int64(mask[i])
	}

	shape := ort.NewShape(1, int64(seqLen))
	idsTensor, err := ort.NewTensor(shape, inputIDs)
	if err != nil {
		return nil, errs.New(errs.KindEmbed, "Engine.embedOne", err)
	}
	defer idsTensor.Destroy()
	maskTensor, err := ort.NewTensor(shape, attnMask)
	if err != nil {
		return nil, errs.New(errs.KindEmbed, "Engine.embedOne", err)
	}
	defer maskTensor.Destroy()
	typeTensor, err := ort.NewTensor(shape, tokenTypes)
	if err != nil {
		return nil, errs.New(errs.KindEmbed, "Engine.embedOne", err)
	}
	defer typeTensor.Destroy()

	outputShape := ort.NewShape(1, int64(seqLen), Dimensions)
	outputTensor, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		return nil, errs.New(errs.KindEmbed, "Engine.embedOne", err)
	}
	defer outputTensor.Destroy()

	if err := e.session.Run(
		[]ort.Value{idsTensor, maskTensor, typeTensor},
		[]ort.Value{outputTensor},
	); err != nil {
		return nil, errs.New(errs.KindEmbed, "Engine.embedOne(run)", err)
	}

	return meanPoolAndNormalize(outputTensor.GetData(), seqLen, attnMask), nil
}

// meanPoolAndNormalize averages token embeddings weighted by the
// attention mask, then L2-normalizes the result -- the standard
// sentence-embedding pooling strategy for BGE-family models.
func meanPoolAndNormalize(hidden []float32, seqLen int, attnMask []int64) []float32 {
	sum := make([]float64, Dimensions)
	var count float64
	for t := range seqLen {
		if attnMask[t] == 0 {
			continue
		}
		count++
		base := t * Dimensions
		for d := range Dimensions {
			sum[d] += float64(hidden[base+d])
		}
	}
	if count == 0 {
		count = 1
	}
	out := make([]float32, Dimensions)
	var norm float64
	for d := range Dimensions {
		v := sum[d] / count
		out[d] = float32(v)
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return out
	}
	for d := range out {
		out[d] = float32(float64(out[d]) / norm)
	}
	return out
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
