package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

func TestCrudRepo_Create_AssignsID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCategoryRepository(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)
	c := &entity.Category{Name: "Tornillería", Description: "fijaciones", CreatedAt: now, UpdatedAt: now}

	mock.ExpectQuery("INSERT INTO categories").
		WithArgs(c.Name, c.Description, c.CreatedAt, c.UpdatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(9)))

	err = repo.Create(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, int64(9), c.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCrudRepo_Update_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCategoryRepository(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)
	c := &entity.Category{ID: 99, Name: "x", CreatedAt: now, UpdatedAt: now}

	mock.ExpectExec("UPDATE categories SET").
		WithArgs(c.ID, c.Name, c.Description, c.CreatedAt, c.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.Update(context.Background(), c)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCrudRepo_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCategoryRepository(mock)

	mock.ExpectExec("DELETE FROM categories WHERE id").
		WithArgs(int64(9)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err = repo.Delete(context.Background(), 9)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCrudRepo_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCategoryRepository(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectQuery(`SELECT id, name, description, created_at, updated_at FROM categories ORDER BY name LIMIT \$1 OFFSET \$2`).
		WithArgs(20, 20).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "created_at", "updated_at"}).
			AddRow(int64(1), "Abrasivos", "", now, now).
			AddRow(int64(2), "Tornillería", "fijaciones", now, now))

	list, err := repo.List(context.Background(), 20, 20)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Abrasivos", list[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
