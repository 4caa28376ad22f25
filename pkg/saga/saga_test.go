package saga

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Тесты политики повторов
// =============================================================================

func TestResolveRetryCount(t *testing.T) {
	tests := []struct {
		name string
		msg  *Message
		want int
	}{
		{"свежее сообщение без RetryData", &Message{OrderID: 1}, 1},
		{"первая переотправка", &Message{OrderID: 1, RetryData: &RetryData{Count: 1}}, 2},
		{"вторая переотправка", &Message{OrderID: 1, RetryData: &RetryData{Count: 2}}, 3},
		{"большой счётчик", &Message{OrderID: 1, RetryData: &RetryData{Count: 41}}, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveRetryCount(tt.msg))
		})
	}
}

func TestRetryExhausted(t *testing.T) {
	maxRetries := 3

	tests := []struct {
		name      string
		msg       *Message
		exhausted bool
	}{
		// Свежее сообщение: resolved = 1, лимит не достигнут.
		{"свежее сообщение", &Message{}, false},
		// resolved = 2 < 3.
		{"счётчик 1", &Message{RetryData: &RetryData{Count: 1}}, false},
		// resolved = 3 == 3 — бюджет исчерпан, переотправки не будет.
		{"счётчик 2", &Message{RetryData: &RetryData{Count: 2}}, true},
		// resolved = 4 > 3.
		{"счётчик 3", &Message{RetryData: &RetryData{Count: 3}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.exhausted, RetryExhausted(tt.msg, maxRetries))
		})
	}
}

// =============================================================================
// Тесты конверта сообщения
// =============================================================================

func TestMessage_WithRetry_DoesNotMutateOriginal(t *testing.T) {
	original := &Message{
		OrderID:    42,
		CustomerID: 1,
		ExecutorID: 2,
		Amount:     10050,
		Timestamp:  time.Now().Add(-time.Minute),
	}

	retried := original.WithRetry(1)

	// Оригинал не изменился — сообщения никогда не мутируются на месте.
	assert.Nil(t, original.RetryData)
	require.NotNil(t, retried.RetryData)
	assert.Equal(t, 1, retried.RetryData.Count)

	// Бизнес-поля скопированы без изменений.
	assert.Equal(t, original.OrderID, retried.OrderID)
	assert.Equal(t, original.Amount, retried.Amount)
}

func TestMessage_WithCustomerBalance(t *testing.T) {
	original := &Message{OrderID: 42, Amount: 10050}

	withBalance := original.WithCustomerBalance(89950)

	assert.Nil(t, original.CustomerBalance)
	require.NotNil(t, withBalance.CustomerBalance)
	assert.Equal(t, int64(89950), *withBalance.CustomerBalance)
}

func TestMessage_JSONRoundTrip(t *testing.T) {
	msg := &Message{
		OrderID:    42,
		CustomerID: 1,
		ExecutorID: 2,
		Amount:     10050,
		RetryData:  &RetryData{Count: 2},
		Timestamp:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := msg.ToJSON()
	require.NoError(t, err)

	decoded, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, msg, decoded)
}

func TestMessage_JSONOmitsOptionalFields(t *testing.T) {
	msg := &Message{OrderID: 42, Amount: 10050}

	data, err := msg.ToJSON()
	require.NoError(t, err)

	// Отсутствующие RetryData и CustomerBalance не попадают в JSON:
	// «свежее» сообщение отличимо от переотправленного.
	assert.NotContains(t, string(data), "retry_data")
	assert.NotContains(t, string(data), "customer_balance")
}

func TestFromJSON_Invalid(t *testing.T) {
	_, err := FromJSON([]byte("не json"))
	assert.Error(t, err)
}
