package sessions

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/userboard/internal/common"
	"github.com/dmitrijs2005/userboard/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_InsertsRow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	session := &models.Session{
		Token:     "tok",
		UserID:    "u-1",
		IsAdmin:   true,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}

	q := `(?s)^\s*INSERT\s+INTO\s+sessions\s*\(token,\s*user_id,\s*is_admin,\s*created_at,\s*expires_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*$`
	mock.ExpectExec(q).
		WithArgs("tok", "u-1", true, now, now.Add(time.Hour)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), session); err != nil {
		t.Fatalf("Create error: %v", err)
	}
}

func TestFind_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"token", "user_id", "is_admin", "created_at", "expires_at"}).
		AddRow("tok", "u-1", false, now, now.Add(time.Hour))
	mock.ExpectQuery(`SELECT\s+token,\s*user_id,\s*is_admin,\s*created_at,\s*expires_at\s+FROM\s+sessions`).
		WithArgs("tok").
		WillReturnRows(rows)

	got, err := repo.Find(context.Background(), "tok")
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if got.UserID != "u-1" || got.IsAdmin {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestFind_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+token`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Find(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDelete_AbsentTokenIsNotAnError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+sessions\s+WHERE\s+token\s*=\s*\$1`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "ghost"); err != nil {
		t.Fatalf("Delete of absent token must not error, got %v", err)
	}
}

func TestDeleteExpired_ReturnsAffected(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectExec(`DELETE\s+FROM\s+sessions\s+WHERE\s+expires_at\s*<=\s*\$1`).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.DeleteExpired(context.Background(), now)
	if err != nil {
		t.Fatalf("DeleteExpired error: %v", err)
	}
	if n != 4 {
		t.Fatalf("want 4, got %d", n)
	}
}
