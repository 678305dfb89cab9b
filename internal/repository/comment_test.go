package repository

import (
	"context"
	"regexp"
	"testing"

	"parlor/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	postID := uint(1)
	comment := &models.Comment{Text: "Nice post!", PostID: &postID, ProfileID: 1}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "comments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, comment)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_ListByPost(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT comments\.id, comments\.text, comments\.profile_id, profiles\.name FROM "comments" JOIN profiles ON profiles\.id = comments\.profile_id WHERE comments\.post_id = \$1 ORDER BY comments\.created_at asc, comments\.id asc`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "text", "profile_id", "name"}).
			AddRow(1, "First!", 101, "ada").
			AddRow(2, "Second.", 102, "grace"))

	comments, err := repo.ListByPost(ctx, 1)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "First!", comments[0].Text)
	assert.Equal(t, "ada", comments[0].Profile.Name)
	assert.Equal(t, uint(102), comments[1].ProfileID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_ListReplies(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectQuery(`WHERE comments\.comment_id = \$1`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "text", "profile_id", "name"}).
			AddRow(9, "A reply", 101, "ada"))

	replies, err := repo.ListReplies(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, "A reply", replies[0].Text)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_Delete_RemovesReplies(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "comments" WHERE comment_id = \$1`).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "comments" WHERE "comments"\."id" = \$1`).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 3)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
