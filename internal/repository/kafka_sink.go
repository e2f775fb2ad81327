package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/MarkCoder7/pktvisor/internal/domain/models"
	drepo "github.com/MarkCoder7/pktvisor/internal/domain/repository"
	pkgkafka "github.com/MarkCoder7/pktvisor/pkg/kafka"
)

// KafkaSink fans recompute results out to a topic, keyed by symbol pair so
// per-pair ordering is preserved by the hash balancer. Errors are not
// forwarded; the topic carries pipeline outputs only.
type KafkaSink struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaSink creates a sink publishing to the given topic.
func NewKafkaSink(producer *pkgkafka.Producer, topic string) *KafkaSink {
	return &KafkaSink{producer: producer, topic: topic}
}

type sinkEnvelope struct {
	Kind string      `json:"kind"`
	At   time.Time   `json:"at"`
	Body interface{} `json:"body"`
}

func (s *KafkaSink) PublishDataset(ctx context.Context, ds *models.PairDataset) error {
	key := []byte(fmt.Sprintf("%s/%s", ds.Sym1, ds.Sym2))
	return s.producer.Publish(ctx, s.topic, key, sinkEnvelope{Kind: "dataset", At: time.Now(), Body: ds.Columns()})
}

func (s *KafkaSink) PublishStats(ctx context.Context, st *models.Statistics) error {
	key := []byte(fmt.Sprintf("%s/%s", st.Sym1, st.Sym2))
	return s.producer.Publish(ctx, s.topic, key, sinkEnvelope{Kind: "stats", At: time.Now(), Body: st})
}

func (s *KafkaSink) PublishOptions(ctx context.Context, opts models.SlotOptions) error {
	return s.producer.Publish(ctx, s.topic, nil, sinkEnvelope{Kind: "options", At: time.Now(), Body: opts})
}

func (s *KafkaSink) PublishError(ctx context.Context, err error) error {
	return nil
}

// PublishMessage lets the log collector flush aggregated entries through the
// same producer.
func (s *KafkaSink) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return s.producer.Publish(ctx, topic, nil, payload)
}

var _ drepo.Sink = (*KafkaSink)(nil)
