package mongodb

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mamadbah2/livestock-gva/internal/repository/repositorytest"
)

// Runs only against a live server: MONGODB_TEST_URI=mongodb://localhost:27017
func TestMongoDBRepository_Contract(t *testing.T) {
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	n := 0
	repositorytest.Run(t, func(t *testing.T) repositorytest.Store {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		n++
		dbName := fmt.Sprintf("gva_test_%d_%d", time.Now().UnixNano(), n)
		repo, err := NewMongoDBRepository(ctx, uri, dbName, nil)
		require.NoError(t, err)
		t.Cleanup(func() {
			_ = repo.client.Database(dbName).Drop(context.Background())
			_ = repo.Close(context.Background())
		})
		return repo
	})
}

func TestNewMongoDBRepository_UnreachableServerReleasesClient(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	uri := "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200&connectTimeoutMS=200"
	repo, err := NewMongoDBRepository(ctx, uri, "gva_unreachable", nil)
	assert.Nil(t, repo)
	assert.ErrorContains(t, err, "failed to ping mongodb")
}
