package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourbook/infras/otel/mocks"
	"tourbook/infras/postgres"
	"tourbook/internal/domains/announcement/repository"
	"tourbook/internal/domains/announcement/service"
	gDto "tourbook/shared/dto"
)

func TestAnnouncementRepository_ActiveWindowQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	defer db.Close()

	conn := sqlx.NewDb(db, "postgres")
	repo := repository.New(&postgres.Connection{Read: conn, Write: conn}, mocks.NewOtel())

	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "message", "type", "is_active", "start_date", "end_date"}).
		AddRow("a-1", "Eid offer", "offer", true, start, nil)

	mock.ExpectPrepare(regexp.QuoteMeta("FROM announcements") + `\s+` + regexp.QuoteMeta(
		"WHERE (announcements.is_active = $1 AND "+
			"(announcements.start_date IS NULL OR announcements.start_date <= $2) AND "+
			"(announcements.end_date IS NULL OR announcements.end_date >= $3))")).
		ExpectQuery().
		WithArgs(true, "2025-06-01", "2025-06-01").
		WillReturnRows(rows)

	announcements, err := repo.GetAll(context.Background(), gDto.QueryParams{}, service.ActiveFilter("2025-06-01"))

	require.NoError(t, err)
	require.Len(t, announcements, 1)
	assert.Nil(t, announcements[0].EndDate)
	require.NotNil(t, announcements[0].StartDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
