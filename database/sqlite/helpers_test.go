package sqlite_test

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/sagarc03/galleria"
	"github.com/sagarc03/galleria/database/sqlite"
	"github.com/stretchr/testify/require"
)

func getRandomString(t *testing.T) string {
	t.Helper()
	n, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	require.NoError(t, err, "random string")
	return fmt.Sprintf("test%x", n.Int64())
}

func randomTables(t *testing.T) galleria.Tables {
	t.Helper()
	suffix := getRandomString(t)
	return galleria.Tables{
		Users:     "users_" + suffix,
		Galleries: "galleries_" + suffix,
		Pictures:  "pictures_" + suffix,
	}
}

type testDB interface {
	Users() galleria.UserRepo
	Galleries() galleria.GalleryRepo
	Pictures() galleria.PictureRepo
	Validate(ctx context.Context) error
	DropTables(ctx context.Context) error
}

// setupTestDB creates migrated tables with unique names in a fresh in-memory database
func setupTestDB(t *testing.T) testDB {
	t.Helper()

	ctx := context.Background()

	db, err := sqlite.Connect(ctx, ":memory:", randomTables(t))
	require.NoError(t, err, "failed to connect")

	require.NoError(t, db.Migrate(ctx), "failed to migrate")

	t.Cleanup(func() { _ = db.Close() })

	return db
}

func createUser(t *testing.T, repo galleria.UserRepo, username string) galleria.User {
	t.Helper()
	u, err := repo.Create(context.Background(), galleria.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$2a$10$hash",
	})
	require.NoError(t, err)
	return u
}
