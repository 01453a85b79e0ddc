package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	event := NewEvent(TypeProgressRecorded, map[string]string{"user_id": "u1"})

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, TypeProgressRecorded, event.Type)
	assert.Equal(t, "learning-service", event.Source)
	assert.False(t, event.Timestamp.IsZero())
}

func TestMockEventPublisher(t *testing.T) {
	publisher := NewMockEventPublisher()
	ctx := context.Background()

	require.NoError(t, publisher.Publish(ctx, NewEvent(TypeUserRegistered, nil)))
	require.NoError(t, publisher.Publish(ctx, NewEvent(TypeUserDeleted, nil)))

	published := publisher.PublishedEvents()
	require.Len(t, published, 2)
	assert.Equal(t, TypeUserRegistered, published[0].Type)
	assert.Equal(t, TypeUserDeleted, published[1].Type)

	publisher.ClearEvents()
	assert.Empty(t, publisher.PublishedEvents())
}
