package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Client wraps the kadm admin API for the topic management the harness and
// integration tests need.
type Client struct {
	cl  *kgo.Client
	adm *kadm.Client
}

// New connects an admin client to the given seed brokers.
func New(brokers []string) (*Client, error) {
	cl, err := kgo.NewClient(kgo.SeedBrokers(brokers...))
	if err != nil {
		return nil, fmt.Errorf("kafka admin client: %w", err)
	}
	return &Client{cl: cl, adm: kadm.NewClient(cl)}, nil
}

// EnsureTopic creates the topic with the given partition count if it does
// not exist yet.
func (c *Client) EnsureTopic(ctx context.Context, topic string, partitions int32) error {
	resp, err := c.adm.CreateTopics(ctx, partitions, 1, nil, topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	for _, res := range resp {
		if res.Err != nil && !errors.Is(res.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", res.Topic, res.Err)
		}
	}
	return nil
}

// Close releases the underlying Kafka client.
func (c *Client) Close() {
	c.cl.Close()
}
