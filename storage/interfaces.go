package storage

import "catalog-sampler/models"

// ArtifactEmitter is the interface any artifact backend must satisfy.
// Emit must be all-or-nothing: either every artifact of the set is
// persisted or none are.
type ArtifactEmitter interface {
	Emit(products []*models.Product, reviews []*models.Review, keys []string) error
}
