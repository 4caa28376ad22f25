package streams

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient поднимает miniredis и возвращает клиент транспорта.
func newTestClient(t *testing.T) (*Client, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	client := NewClient(rdb, Config{
		Group:    "fulfillment",
		Consumer: "test-consumer",
	})

	return client, rdb
}

func TestClient_PublishAndClaim(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.EnsureGroups(ctx, "saga.test"))

	id1, err := client.Publish(ctx, "saga.test", "corr-1", []byte(`{"order_id":1}`))
	require.NoError(t, err)
	require.NotEmpty(t, id1)

	id2, err := client.Publish(ctx, "saga.test", "corr-2", []byte(`{"order_id":2}`))
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	deliveries, err := client.ClaimPending(ctx, "saga.test")
	require.NoError(t, err)
	require.Len(t, deliveries, 2)

	// Payload и correlation token доставлены без изменений.
	assert.Equal(t, "corr-1", deliveries[0].CorrelationID)
	assert.JSONEq(t, `{"order_id":1}`, string(deliveries[0].Payload))
	assert.Equal(t, "corr-2", deliveries[1].CorrelationID)
	assert.JSONEq(t, `{"order_id":2}`, string(deliveries[1].Payload))
}

func TestClient_ClaimPending_NoReplay(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.EnsureGroups(ctx, "saga.test"))

	_, err := client.Publish(ctx, "saga.test", "corr-1", []byte(`{"order_id":1}`))
	require.NoError(t, err)

	first, err := client.ClaimPending(ctx, "saga.test")
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Повторный claim не возвращает уже выданные сообщения:
	// выдача и есть подтверждение, исторических повторов нет.
	second, err := client.ClaimPending(ctx, "saga.test")
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestClient_ClaimPending_EmptyStream(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.EnsureGroups(ctx, "saga.test"))

	deliveries, err := client.ClaimPending(ctx, "saga.test")
	require.NoError(t, err)
	assert.Empty(t, deliveries)
}

func TestClient_ClaimPending_DropsEntriesWithoutPayload(t *testing.T) {
	client, rdb := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.EnsureGroups(ctx, "saga.test"))

	// Запись без поля payload публикуем напрямую, минуя Publish.
	err := rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: "saga.test",
		Values: map[string]interface{}{"garbage": "1"},
	}).Err()
	require.NoError(t, err)

	_, err = client.Publish(ctx, "saga.test", "corr-1", []byte(`{"order_id":1}`))
	require.NoError(t, err)

	// Некорректная запись отброшена, корректная доставлена.
	deliveries, err := client.ClaimPending(ctx, "saga.test")
	require.NoError(t, err)
	require.Len(t, deliveries, 1)
	assert.Equal(t, "corr-1", deliveries[0].CorrelationID)
}

func TestClient_EnsureGroups_Idempotent(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	streams := []string{"saga.a", "saga.b", "saga.c"}

	// Повторное создание групп безопасно: BUSYGROUP игнорируется.
	require.NoError(t, client.EnsureGroups(ctx, streams...))
	require.NoError(t, client.EnsureGroups(ctx, streams...))
}

func TestClient_EnsureGroups_SeesMessagesPublishedAfterCreation(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.EnsureGroups(ctx, "saga.test"))

	_, err := client.Publish(ctx, "saga.test", "corr-1", []byte(`{"order_id":1}`))
	require.NoError(t, err)

	// Группа создана с самого раннего offset'а — сообщение видно.
	deliveries, err := client.ClaimPending(ctx, "saga.test")
	require.NoError(t, err)
	assert.Len(t, deliveries, 1)
}
