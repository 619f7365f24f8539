package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-admin-api/internal/infrastructure/storage"
	"github.com/jhoicas/catalog-admin-api/pkg/config"
)

func TestOpen_Memory(t *testing.T) {
	repos, err := storage.Open(context.Background(), &config.Config{Store: config.StoreConfig{Driver: config.StoreMemory}})
	require.NoError(t, err)
	assert.NotNil(t, repos.Users)
	assert.NotNil(t, repos.Carts)
	assert.NoError(t, repos.Close(context.Background()))
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, err := storage.Open(context.Background(), &config.Config{Store: config.StoreConfig{Driver: "cassandra"}})
	assert.Error(t, err)
}
