package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/garage/backend/internal/domain/partner"
	"github.com/garage/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockClientRepository creates a GormClientRepository with a mocked SQL connection
func newMockClientRepository(t *testing.T) (*GormClientRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormClientRepository(gormDB), mock, mockDB
}

func TestGormClientRepository_FindByID(t *testing.T) {
	t.Run("finds existing client", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		clientID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "contact", "email", "address", "notes", "version"}).
			AddRow(clientID, "Dana Cole", "+15550100", "dana@example.com", "12 Shop St", "", 1)

		mock.ExpectQuery(`SELECT \* FROM "clients" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(clientID, 1).
			WillReturnRows(rows)

		client, err := repo.FindByID(context.Background(), clientID)

		assert.NoError(t, err)
		assert.NotNil(t, client)
		assert.Equal(t, clientID, client.ID)
		assert.Equal(t, "Dana Cole", client.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing client", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		clientID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "clients" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(clientID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		client, err := repo.FindByID(context.Background(), clientID)

		assert.Error(t, err)
		assert.Nil(t, client)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormClientRepository_FindByEmail(t *testing.T) {
	t.Run("normalizes email to lowercase", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		clientID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "contact", "email", "address", "notes", "version"}).
			AddRow(clientID, "Dana Cole", "+15550100", "dana@example.com", "", "", 1)

		mock.ExpectQuery(`SELECT \* FROM "clients" WHERE email = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("dana@example.com", 1).
			WillReturnRows(rows)

		client, err := repo.FindByEmail(context.Background(), "Dana@Example.COM")

		assert.NoError(t, err)
		assert.NotNil(t, client)
		assert.Equal(t, "dana@example.com", client.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects empty email", func(t *testing.T) {
		repo, _, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		client, err := repo.FindByEmail(context.Background(), "")

		assert.Error(t, err)
		assert.Nil(t, client)
	})
}

func TestGormClientRepository_SaveWithLock(t *testing.T) {
	t.Run("bumps version on successful update", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		client := &partner.Client{Name: "Dana Cole", Email: "dana@example.com"}
		client.ID = uuid.New()
		client.Version = 3

		mock.ExpectExec(`UPDATE "clients" SET .* WHERE id = .* AND version = .*`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SaveWithLock(context.Background(), client)

		assert.NoError(t, err)
		assert.Equal(t, 4, client.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns conflict when version is stale", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		client := &partner.Client{Name: "Dana Cole"}
		client.ID = uuid.New()
		client.Version = 3

		mock.ExpectExec(`UPDATE "clients" SET .* WHERE id = .* AND version = .*`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveWithLock(context.Background(), client)

		assert.Equal(t, shared.ErrConcurrencyConflict, err)
		assert.Equal(t, 3, client.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormClientRepository_Delete(t *testing.T) {
	t.Run("returns ErrNotFound when nothing was deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockClientRepository(t)
		defer mockDB.Close()

		clientID := uuid.New()

		mock.ExpectExec(`DELETE FROM "clients" WHERE id = \$1`).
			WithArgs(clientID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), clientID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
