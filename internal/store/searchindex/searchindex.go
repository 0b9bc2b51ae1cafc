// Package searchindex mirrors a feature store's display names into
// Meilisearch, giving the admin surface free-text lookup ("which master
// features mention Peachtree") that a spatial index can't answer.
package searchindex

import (
	"context"
	"fmt"
	"time"

	ms "github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"

	"github.com/roadlink/conflate/internal/store"
)

// Config points Index at a running Meilisearch instance.
type Config struct {
	Host      string
	APIKey    string
	IndexName string
	Timeout   time.Duration
}

// Index wraps a Meilisearch client scoped to one index of feature names.
type Index struct {
	client    ms.ServiceManager
	indexName string
	timeout   time.Duration
	logger    *zap.Logger
}

// document is the shape stored in Meilisearch, one per Feature.
type document struct {
	ID        string   `json:"id"`
	FeatureID int64    `json:"feature_id"`
	Names     []string `json:"names"`
}

// New connects to Meilisearch and verifies it's reachable before returning.
func New(cfg Config, logger *zap.Logger) (*Index, error) {
	client := ms.New(cfg.Host, ms.WithAPIKey(cfg.APIKey))
	if _, err := client.Health(); err != nil {
		return nil, fmt.Errorf("searchindex: connecting to meilisearch: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Index{client: client, indexName: cfg.IndexName, timeout: timeout, logger: logger}, nil
}

// documentsFor converts features to their Meilisearch document form. Split
// out from Rebuild so the conversion can be tested without a live server.
func documentsFor(features []store.Feature) []document {
	docs := make([]document, len(features))
	for i, f := range features {
		names := make([]string, len(f.Names.Names))
		for j, n := range f.Names.Names {
			names[j] = n.Display
		}
		docs[i] = document{ID: fmt.Sprintf("%d", f.ID), FeatureID: f.ID, Names: names}
	}
	return docs
}

// Rebuild adds one document per feature, in batches of 1000, keyed on the
// feature's id so a re-run overwrites those documents. Documents whose ids
// are not among features stay in the index.
func (idx *Index) Rebuild(ctx context.Context, features []store.Feature) error {
	docs := documentsFor(features)

	index := idx.client.Index(idx.indexName)

	const batchSize = 1000
	for start := 0; start < len(docs); start += batchSize {
		end := start + batchSize
		if end > len(docs) {
			end = len(docs)
		}

		task, err := index.AddDocuments(docs[start:end], "id")
		if err != nil {
			return fmt.Errorf("searchindex: adding documents %d-%d: %w", start, end, err)
		}
		if idx.logger != nil {
			idx.logger.Info("searchindex: submitted batch",
				zap.Int("from", start), zap.Int("to", end), zap.Int64("task_uid", task.TaskUID))
		}
	}
	return nil
}

// Search returns feature ids whose names best match q, closest first.
func (idx *Index) Search(ctx context.Context, q string, limit int64) ([]int64, error) {
	index := idx.client.Index(idx.indexName)
	resp, err := index.Search(q, &ms.SearchRequest{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("searchindex: searching %q: %w", q, err)
	}

	ids := make([]int64, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		m, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}
		fid, ok := m["feature_id"].(float64)
		if !ok {
			continue
		}
		ids = append(ids, int64(fid))
	}
	return ids, nil
}
