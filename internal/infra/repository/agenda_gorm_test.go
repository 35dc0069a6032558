package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockRepo(t *testing.T) (*AgendaGormRepository, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return NewAgendaGormRepository(db), mock
}

func TestGetOrCreateLead_ReturnsExistingWithoutInsert(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"id", "business_id", "name", "phone", "email"}).
		AddRow("lead-1", "biz-1", "Ana", "5215512345678", "ana@example.com")
	mock.ExpectQuery(`SELECT \* FROM "leads"`).
		WillReturnRows(rows)

	lead, err := repo.GetOrCreateLead(context.Background(), "biz-1", "Ana", "5215512345678", "ana@example.com")
	require.NoError(t, err)
	require.Equal(t, "lead-1", lead.ID)

	// No INSERT expectation was registered, so a fallthrough to Create
	// would fail here.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrCreateLead_PropagatesLookupFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	boom := errors.New("connection reset by peer")
	mock.ExpectQuery(`SELECT \* FROM "leads"`).
		WillReturnError(boom)

	lead, err := repo.GetOrCreateLead(context.Background(), "biz-1", "Ana", "5215512345678", "")
	require.ErrorIs(t, err, boom)
	require.Nil(t, lead)

	// A lookup failure must never be mistaken for a missing lead.
	require.NoError(t, mock.ExpectationsWereMet())
}
