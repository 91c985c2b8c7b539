package risk

import (
	"context"
	"fmt"
	"sync"
)

// maxBatchConcurrency bounds in-flight validations per batch so a large
// grid render cannot exhaust provider connections.
const maxBatchConcurrency = 8

// BatchItem is one token in a batch validation request.
type BatchItem struct {
	Address  string         `json:"address"`
	ChainID  ChainID        `json:"chainId"`
	Metadata *TokenMetadata `json:"metadata,omitempty"`
}

// BatchResult pairs an item with its outcome. Exactly one of Validation
// and Err is set.
type BatchResult struct {
	Address    string      `json:"address"`
	ChainID    ChainID     `json:"chainId"`
	Validation *Validation `json:"validation,omitempty"`
	Err        error       `json:"-"`
}

// ValidateBatch validates every item independently. One item's failure,
// even a panic inside a provider, never aborts its siblings. Results are
// aggregated after all items settle, in input order.
func (e *Engine) ValidateBatch(ctx context.Context, items []BatchItem, cfg Config) []BatchResult {
	results := make([]BatchResult, len(items))
	sem := make(chan struct{}, maxBatchConcurrency)
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		go func(i int, item BatchItem) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = e.validateOne(ctx, item, cfg)
		}(i, item)
	}

	wg.Wait()
	return results
}

func (e *Engine) validateOne(ctx context.Context, item BatchItem, cfg Config) (out BatchResult) {
	out = BatchResult{Address: item.Address, ChainID: item.ChainID}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("validation panicked", "address", item.Address, "panic", r)
			out.Validation = nil
			out.Err = fmt.Errorf("risk: validation panicked: %v", r)
		}
	}()

	v, err := e.Validate(ctx, item.Address, item.ChainID, item.Metadata, cfg)
	if err != nil {
		out.Err = err
		return out
	}
	out.Validation = v
	return out
}
