package api

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/MarkCoder7/pktvisor/internal/domain/models"
	drepo "github.com/MarkCoder7/pktvisor/internal/domain/repository"
)

// wsFrame is the envelope for every message pushed to a dashboard client.
type wsFrame struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type statsPayload struct {
	Stats *models.Statistics `json:"stats"`
	Text  string             `json:"text"`
}

// wsSink pushes publishes to one connected dashboard client. gorilla allows
// a single concurrent writer, so writes are serialized with a mutex.
type wsSink struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func newWSSink(conn *websocket.Conn) *wsSink {
	return &wsSink{conn: conn}
}

func (s *wsSink) write(frame wsFrame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(frame)
}

func (s *wsSink) PublishDataset(_ context.Context, ds *models.PairDataset) error {
	return s.write(wsFrame{Type: "dataset", Data: ds.Columns()})
}

func (s *wsSink) PublishStats(_ context.Context, st *models.Statistics) error {
	return s.write(wsFrame{Type: "stats", Data: statsPayload{Stats: st, Text: st.Format()}})
}

func (s *wsSink) PublishOptions(_ context.Context, opts models.SlotOptions) error {
	return s.write(wsFrame{Type: "options", Data: opts})
}

func (s *wsSink) PublishError(_ context.Context, err error) error {
	return s.write(wsFrame{Type: "error", Data: map[string]string{"message": err.Error()}})
}

var _ drepo.Sink = (*wsSink)(nil)
