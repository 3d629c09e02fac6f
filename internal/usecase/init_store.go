package usecase

import (
	"context"

	"github.com/runoshun/goals/internal/domain"
	"github.com/runoshun/goals/internal/usecase/shared"
)

// InitStoreInput contains the input parameters for InitStore.
type InitStoreInput struct{}

// InitStoreOutput contains the output from InitStore.
type InitStoreOutput struct {
	Location string // Database file or repository the store lives in
}

// InitStore provisions every table (or ref namespace) the application uses.
type InitStore struct {
	storeInit domain.StoreInitializer
	location  string
}

// NewInitStore creates a new InitStore use case.
func NewInitStore(storeInit domain.StoreInitializer, location string) *InitStore {
	return &InitStore{storeInit: storeInit, location: location}
}

// Execute initializes the store. Running it again is a no-op.
func (uc *InitStore) Execute(_ context.Context, _ InitStoreInput) (*InitStoreOutput, error) {
	if err := uc.storeInit.Initialize(); err != nil {
		return nil, shared.StorageError("initialize store", err)
	}
	return &InitStoreOutput{Location: uc.location}, nil
}
