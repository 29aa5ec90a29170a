package service

import (
	"context"
	"testing"

	"github.com/messagely/messagely/internal/core/domain"
	"github.com/messagely/messagely/internal/infrastructure/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMessageService(t *testing.T) (*MessageService, *UserService) {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	userRepo := sqlite.NewUserRepository(db)
	messageRepo := sqlite.NewMessageRepository(db)

	ctx := context.Background()
	for _, username := range []string{"alice", "bob", "carol"} {
		user := domain.NewUser(username, "hash", "First", "Last", "+10000000000")
		require.NoError(t, userRepo.Create(ctx, user))
	}

	return NewMessageService(messageRepo), NewUserService(userRepo, messageRepo)
}

func TestSendAttributesSenderToPrincipal(t *testing.T) {
	svc, _ := newTestMessageService(t)

	message, err := svc.Send(context.Background(), "bob", "alice", "hi")
	require.NoError(t, err)
	assert.Equal(t, "bob", message.FromUsername)
	assert.Equal(t, "alice", message.ToUsername)
	assert.Nil(t, message.ReadAt)
}

func TestGetEnforcesViewPolicy(t *testing.T) {
	svc, _ := newTestMessageService(t)
	ctx := context.Background()

	sent, err := svc.Send(ctx, "alice", "bob", "hi")
	require.NoError(t, err)

	// Both parties can view
	for _, principal := range []string{"alice", "bob"} {
		detail, err := svc.Get(ctx, principal, sent.ID)
		require.NoError(t, err)
		assert.Equal(t, sent.ID, detail.ID)
	}

	// A third party cannot
	_, err = svc.Get(ctx, "carol", sent.ID)
	assert.Equal(t, 401, domain.StatusOf(err))

	_, err = svc.Get(ctx, "alice", 999)
	assert.Equal(t, 404, domain.StatusOf(err))
}

func TestMarkReadEnforcesRecipientPolicy(t *testing.T) {
	svc, _ := newTestMessageService(t)
	ctx := context.Background()

	sent, err := svc.Send(ctx, "alice", "bob", "hi")
	require.NoError(t, err)

	// Neither the sender nor a third party may mark it read
	_, err = svc.MarkRead(ctx, "alice", sent.ID)
	assert.Equal(t, 401, domain.StatusOf(err))
	_, err = svc.MarkRead(ctx, "carol", sent.ID)
	assert.Equal(t, 401, domain.StatusOf(err))

	// The message is still unread
	detail, err := svc.Get(ctx, "bob", sent.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.ReadAt)

	read, err := svc.MarkRead(ctx, "bob", sent.ID)
	require.NoError(t, err)
	require.NotNil(t, read.ReadAt)
	assert.False(t, read.ReadAt.Before(read.SentAt))
}

func TestUserServiceCorrespondencePolicy(t *testing.T) {
	messageSvc, userSvc := newTestMessageService(t)
	ctx := context.Background()

	_, err := messageSvc.Send(ctx, "alice", "bob", "hi")
	require.NoError(t, err)

	inbox, err := userSvc.MessagesTo(ctx, "bob", "bob")
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, "alice", inbox[0].Counterpart.Username)

	outbox, err := userSvc.MessagesFrom(ctx, "alice", "alice")
	require.NoError(t, err)
	require.Len(t, outbox, 1)
	assert.Equal(t, "bob", outbox[0].Counterpart.Username)

	// A user cannot read someone else's inbox or outbox
	_, err = userSvc.MessagesTo(ctx, "alice", "bob")
	assert.Equal(t, 401, domain.StatusOf(err))
	_, err = userSvc.MessagesFrom(ctx, "bob", "alice")
	assert.Equal(t, 401, domain.StatusOf(err))
}

func TestUserServiceGetStripsPasswordHash(t *testing.T) {
	_, userSvc := newTestMessageService(t)

	user, err := userSvc.Get(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, user.Password)
	assert.Equal(t, "alice", user.Username)

	_, err = userSvc.Get(context.Background(), "ghost")
	assert.Equal(t, 404, domain.StatusOf(err))
}
