package hpostore

import (
	"go.uber.org/zap"

	"github.com/genophen/genophen/internal/model"
	"github.com/genophen/genophen/internal/predicate"
)

// CachedProteinService decorates a ProteinMetadataService with the store:
// lookups hit the store first and fall back to the wrapped service, whose
// results are written back for the next run. Caching lives entirely in this
// wrapper so the analysis layers stay free of storage concerns.
type CachedProteinService struct {
	store    *Store
	fallback predicate.ProteinMetadataService
	logger   *zap.Logger
}

// NewCachedProteinService wraps fallback with the store.
func NewCachedProteinService(store *Store, fallback predicate.ProteinMetadataService) *CachedProteinService {
	return &CachedProteinService{store: store, fallback: fallback, logger: zap.NewNop()}
}

// SetLogger sets the logger for cache write failures.
func (c *CachedProteinService) SetLogger(l *zap.Logger) {
	c.logger = l
}

// Annotate resolves the protein, preferring the stored copy.
func (c *CachedProteinService) Annotate(proteinID string) (model.ProteinMetadata, error) {
	meta, ok, err := c.store.GetProtein(proteinID)
	if err != nil {
		return model.ProteinMetadata{}, err
	}
	if ok {
		return meta, nil
	}
	meta, err = c.fallback.Annotate(proteinID)
	if err != nil {
		return model.ProteinMetadata{}, err
	}
	if err := c.store.PutProtein(meta); err != nil {
		// A failed write-back only costs the next lookup a fallback call.
		c.logger.Warn("could not cache protein metadata",
			zap.String("protein", proteinID),
			zap.Error(err))
	}
	return meta, nil
}
