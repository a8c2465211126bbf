package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"

	"foodmarket-delivery/internal/service/orders"
	"foodmarket-delivery/internal/testutil/testlog"
)

func TestNewConsumer_SkipsWhenNoKafkaConfig(t *testing.T) {
	t.Parallel()

	rec := testlog.New()

	got, err := NewConsumer(nil, "gid", "topic", func(context.Context, orders.Event) error { return nil }, rec.Logger())
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = NewConsumer([]string{"b:9092"}, "", "topic", nil, rec.Logger())
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = NewConsumer([]string{"b:9092"}, "gid", "   ", nil, rec.Logger())
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestNewConsumer_ReturnsErrorWhenSaramaFails(t *testing.T) {
	orig := newConsumerGroup
	t.Cleanup(func() { newConsumerGroup = orig })

	sentinel := errors.New("boom")
	newConsumerGroup = func(_ []string, _ string, _ *sarama.Config) (sarama.ConsumerGroup, error) {
		return nil, sentinel
	}

	rec := testlog.New()
	got, err := NewConsumer([]string{"b:9092"}, "gid", "topic", nil, rec.Logger())
	require.ErrorIs(t, err, sentinel)
	require.Nil(t, got)
}

func TestNilConsumer_RunAndCloseAreNoops(t *testing.T) {
	t.Parallel()

	var c *Consumer
	require.NoError(t, c.Run(context.Background()))
	require.NoError(t, c.Close())
}
