package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourbook/infras/otel/mocks"
	"tourbook/infras/postgres"
	"tourbook/internal/domains/booking/model"
	"tourbook/shared"
)

func newRepository(t *testing.T) (Booking, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	conn := sqlx.NewDb(db, "postgres")

	return New(&postgres.Connection{Read: conn, Write: conn}, mocks.NewOtel()), mock
}

func TestBookingRepository_SumPeople(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      int
		wantErr   bool
	}{
		{
			name: "counts pending and confirmed only",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`COALESCE\(SUM\(number_of_people\), 0\) FROM bookings\s+WHERE tour_id = \$1 AND booking_date = \$2 AND status IN \('pending', 'confirmed'\)`).
					WithArgs("tour-1", "2025-06-01").
					WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(7))
			},
			want: 7,
		},
		{
			name: "no bookings yields zero",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("COALESCE(SUM(number_of_people), 0)")).
					WithArgs("tour-1", "2025-06-01").
					WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))
			},
			want: 0,
		},
		{
			name: "query error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("COALESCE(SUM(number_of_people), 0)")).
					WillReturnError(errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepository(t)
			tt.setupMock(mock)

			got, err := repo.SumPeople(context.Background(), "tour-1", "2025-06-01")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookingRepository_GetJoinsTour(t *testing.T) {
	repo, mock := newRepository(t)

	rows := sqlmock.NewRows([]string{"id", "tour_id", "customer_name", "number_of_people", "status", "tour_title"}).
		AddRow("booking-1", "tour-1", "Aisha", 3, model.StatusPending, "Desert Safari")

	mock.ExpectPrepare(regexp.QuoteMeta("tours.title AS tour_title")+".*"+
		regexp.QuoteMeta("FROM bookings LEFT JOIN tours ON tours.id = bookings.tour_id")+".*"+
		regexp.QuoteMeta("WHERE (bookings.id = $1)")).
		ExpectQuery().
		WithArgs("booking-1").
		WillReturnRows(rows)

	booking, err := repo.Get(context.Background(), shared.FilterByID("booking-1", model.FieldID, model.TableName))
	require.NoError(t, err)

	assert.Equal(t, "booking-1", booking.ID)
	assert.Equal(t, 3, booking.NumberOfPeople)
	require.NotNil(t, booking.TourTitle)
	assert.Equal(t, "Desert Safari", *booking.TourTitle)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_UpdateReportsAffectedRows(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectExec(`UPDATE bookings SET status = \$1\s+WHERE \(bookings\.id = \$2\)`).
		WithArgs(model.StatusConfirmed, "booking-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.Update(context.Background(),
		map[string]any{model.FieldStatus: model.StatusConfirmed},
		shared.FilterByID("booking-1", model.FieldID, model.TableName))

	require.NoError(t, err)
	assert.Zero(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
