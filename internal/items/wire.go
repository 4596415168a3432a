package items

import (
	"github.com/achievelist/achievelist/internal/store"
)

// NewItemsServices creates the repository and service over the document
// store. This is a convenience function for dependency injection.
func NewItemsServices(provider store.Provider, collection string) (*Service, Repository) {
	repo := NewMongoRepository(provider, collection)
	service := NewService(repo)
	return service, repo
}
