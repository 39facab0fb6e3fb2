package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"tourbook/infras/otel/mocks"
	"tourbook/infras/postgres"
	"tourbook/shared/dto"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	IsActive bool   `db:"is_active"`
}

func newWidgets(t *testing.T) (Repository[widget], sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	conn := sqlx.NewDb(db, "postgres")

	return NewRepository[widget]("widget", "widgets", "id", &postgres.Connection{Read: conn, Write: conn}, mocks.NewOtel()), mock
}

func byID(id string) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "id", Value: id, Operator: dto.FilterOperatorEq, Table: "widgets"},
		},
	}
}

func TestRepository_InsertColumns(t *testing.T) {
	repo, mock := newWidgets(t)

	assert.Equal(t, []string{"id", "name", "is_active"}, repo.InsertColumns)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO widgets (id, name, is_active) VALUES ($1, $2, $3)")).
		WithArgs("w-1", "lamp", true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Insert(context.Background(), widget{ID: "w-1", Name: "lamp", IsActive: true}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetMissingRowIsZeroValue(t *testing.T) {
	repo, mock := newWidgets(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT widgets.id, widgets.name, widgets.is_active FROM widgets")).
		ExpectQuery().
		WithArgs("w-404").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_active"}))

	got, err := repo.Get(context.Background(), byID("w-404"))

	require.NoError(t, err)
	assert.Equal(t, widget{}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetSelectedColumns(t *testing.T) {
	repo, mock := newWidgets(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT widgets.name FROM widgets")).
		ExpectQuery().
		WithArgs("w-1").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("lamp"))

	got, err := repo.Get(context.Background(), byID("w-1"), "name")

	require.NoError(t, err)
	assert.Equal(t, "lamp", got.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetAllPaginates(t *testing.T) {
	repo, mock := newWidgets(t)

	params := dto.QueryParams{Page: 3, Limit: 10, SortBy: "name", SortDir: "ASC"}

	mock.ExpectPrepare(regexp.QuoteMeta("ORDER BY name ASC LIMIT $1 OFFSET $2")).
		ExpectQuery().
		WithArgs(10, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_active"}).AddRow("w-21", "desk", true))

	got, err := repo.GetAll(context.Background(), params, dto.FilterGroup{})

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Count(t *testing.T) {
	repo, mock := newWidgets(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT COUNT(widgets.id) FROM widgets")).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	got, err := repo.Count(context.Background(), dto.FilterGroup{})

	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_RequiresFilter(t *testing.T) {
	repo, _ := newWidgets(t)
	ctx := context.Background()

	_, err := repo.Exist(ctx, dto.FilterGroup{})
	assert.ErrorIs(t, err, errRequiredFilter)

	_, err = repo.Delete(ctx, dto.FilterGroup{})
	assert.ErrorIs(t, err, errRequiredFilter)

	_, err = repo.Update(ctx, map[string]any{"name": "x"}, dto.FilterGroup{})
	assert.ErrorIs(t, err, errRequiredFilter)

	_, err = repo.Update(ctx, map[string]any{}, byID("w-1"))
	assert.ErrorIs(t, err, errEmptyUpdate)
}

func TestRepository_UpdateSortsColumns(t *testing.T) {
	repo, mock := newWidgets(t)

	mock.ExpectExec(`UPDATE widgets SET is_active = \$1, name = \$2\s+WHERE \(widgets\.id = \$3\)`).
		WithArgs(false, "lamp", "w-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.Update(context.Background(), map[string]any{"name": "lamp", "is_active": false}, byID("w-1"))

	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteError(t *testing.T) {
	repo, mock := newWidgets(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM widgets")).
		WithArgs("w-1").
		WillReturnError(errors.New("deadlock detected"))

	_, err := repo.Delete(context.Background(), byID("w-1"))

	assert.ErrorContains(t, err, "failed to delete data (widget)")
	assert.NoError(t, mock.ExpectationsWereMet())
}
