package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankush43545-hub/LumoBackendTest/internal/model"
	"github.com/ankush43545-hub/LumoBackendTest/internal/repository"
)

// These tests use sqlmock to verify the SQL the repository issues without a
// real database file. Ordering and cascade behavior shared with the memory
// backend is covered by the memory repository tests.

func setupSQLiteRepo(t *testing.T) (repository.Repository, sqlmock.Sqlmock) {
	db, mockDB, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewSQLiteRepository(db), mockDB
}

func TestSQLiteRepository_GetConversation(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, mockDB := setupSQLiteRepo(t)
		createdAt := time.Now().UTC()

		rows := sqlmock.NewRows([]string{"id", "mode", "title", "created_at"}).
			AddRow("c1", "chat", nil, createdAt)
		mockDB.ExpectQuery("SELECT id, mode, title, created_at FROM conversations WHERE id =").
			WithArgs("c1").
			WillReturnRows(rows)

		conversation, err := repo.GetConversation(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, "chat", conversation.Mode)
		assert.Nil(t, conversation.Title)
		require.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Failure - unknown id maps to ErrNotFound", func(t *testing.T) {
		repo, mockDB := setupSQLiteRepo(t)

		mockDB.ExpectQuery("SELECT id, mode, title, created_at FROM conversations WHERE id =").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"id", "mode", "title", "created_at"}))

		_, err := repo.GetConversation(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		require.NoError(t, mockDB.ExpectationsWereMet())
	})
}

func TestSQLiteRepository_CreateMessage(t *testing.T) {
	ctx := context.Background()
	message := &model.Message{
		ID:             "m1",
		ConversationID: "c1",
		Role:           model.RoleUser,
		Content:        "hi",
		Timestamp:      time.Now().UTC(),
	}

	t.Run("Success", func(t *testing.T) {
		repo, mockDB := setupSQLiteRepo(t)

		mockDB.ExpectBegin()
		mockDB.ExpectQuery("SELECT 1 FROM conversations WHERE id =").
			WithArgs("c1").
			WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
		mockDB.ExpectExec("INSERT INTO messages").
			WithArgs("m1", "c1", "user", "hi", message.Timestamp).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mockDB.ExpectCommit()

		require.NoError(t, repo.CreateMessage(ctx, message))
		require.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Failure - conversation does not exist", func(t *testing.T) {
		repo, mockDB := setupSQLiteRepo(t)

		mockDB.ExpectBegin()
		mockDB.ExpectQuery("SELECT 1 FROM conversations WHERE id =").
			WithArgs("c1").
			WillReturnRows(sqlmock.NewRows([]string{"1"}))
		mockDB.ExpectRollback()

		err := repo.CreateMessage(ctx, message)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		require.NoError(t, mockDB.ExpectationsWereMet())
	})
}

func TestSQLiteRepository_GetMessagesByConversationID(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, mockDB := setupSQLiteRepo(t)
		ts := time.Now().UTC()

		mockDB.ExpectQuery("SELECT 1 FROM conversations WHERE id =").
			WithArgs("c1").
			WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
		rows := sqlmock.NewRows([]string{"id", "conversation_id", "role", "content", "timestamp"}).
			AddRow("m1", "c1", "user", "hi", ts).
			AddRow("m2", "c1", "assistant", "hey", ts.Add(time.Second))
		mockDB.ExpectQuery("SELECT id, conversation_id, role, content, timestamp").
			WithArgs("c1").
			WillReturnRows(rows)

		messages, err := repo.GetMessagesByConversationID(ctx, "c1")
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, model.RoleUser, messages[0].Role)
		assert.Equal(t, model.RoleAssistant, messages[1].Role)
		require.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Failure - conversation does not exist", func(t *testing.T) {
		repo, mockDB := setupSQLiteRepo(t)

		mockDB.ExpectQuery("SELECT 1 FROM conversations WHERE id =").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"1"}))

		_, err := repo.GetMessagesByConversationID(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		require.NoError(t, mockDB.ExpectationsWereMet())
	})
}

func TestSQLiteRepository_DeleteConversation(t *testing.T) {
	ctx := context.Background()
	repo, mockDB := setupSQLiteRepo(t)

	mockDB.ExpectBegin()
	mockDB.ExpectExec("DELETE FROM messages WHERE conversation_id =").
		WithArgs("c1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mockDB.ExpectExec("DELETE FROM conversations WHERE id =").
		WithArgs("c1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mockDB.ExpectCommit()

	require.NoError(t, repo.DeleteConversation(ctx, "c1"))
	require.NoError(t, mockDB.ExpectationsWereMet())
}
