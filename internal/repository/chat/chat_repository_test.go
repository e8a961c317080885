package chat_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iyunix/chat-api/internal/domain"
	"github.com/iyunix/chat-api/internal/repository/chat"
	"github.com/iyunix/chat-api/internal/testutils"
)

func TestChatRepository_CreateAndFind(t *testing.T) {
	db := testutils.NewTestDB(t)
	repo := chat.NewChatRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Chat{Title: "Test Chat"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Chat", found.Title)
	assert.Empty(t, found.Messages)

	second, err := repo.Create(ctx, &domain.Chat{Title: "Another"})
	require.NoError(t, err)
	assert.Greater(t, second.ID, created.ID)
}

func TestChatRepository_FindMissing(t *testing.T) {
	repo := chat.NewChatRepository(testutils.NewTestDB(t))

	_, err := repo.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, chat.ErrChatNotFound)

	_, err = repo.FindByID(context.Background(), 0)
	assert.ErrorIs(t, err, chat.ErrChatNotFound)
}

func TestChatRepository_ExistsByID(t *testing.T) {
	repo := chat.NewChatRepository(testutils.NewTestDB(t))
	ctx := context.Background()

	c, err := repo.Create(ctx, &domain.Chat{Title: "x"})
	require.NoError(t, err)

	ok, err := repo.ExistsByID(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ExistsByID(ctx, c.ID+1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestChatRepository_DeleteCascadesToMessages(t *testing.T) {
	db := testutils.NewTestDB(t)
	repo := chat.NewChatRepository(db)
	ctx := context.Background()

	c, err := repo.Create(ctx, &domain.Chat{Title: "doomed"})
	require.NoError(t, err)
	keep, err := repo.Create(ctx, &domain.Chat{Title: "kept"})
	require.NoError(t, err)

	for _, m := range []domain.Message{
		{ChatID: c.ID, Text: "one"},
		{ChatID: c.ID, Text: "two"},
		{ChatID: keep.ID, Text: "stays"},
	} {
		m := m
		require.NoError(t, db.Create(&m).Error)
	}

	deleted, err := repo.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	var orphans int64
	require.NoError(t, db.Model(&domain.Message{}).Where("chat_id = ?", c.ID).Count(&orphans).Error)
	assert.Zero(t, orphans)

	var remaining int64
	require.NoError(t, db.Model(&domain.Message{}).Where("chat_id = ?", keep.ID).Count(&remaining).Error)
	assert.Equal(t, int64(1), remaining)

	deleted, err = repo.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	total, err := repo.CountTotalChats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
