package booking

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// EventType for live feed messages
type EventType string

const (
	EventBookingCreated EventType = "booking_created"
	EventBookingUpdated EventType = "booking_updated"
	EventBookingDeleted EventType = "booking_deleted"
)

// feedChannel is the Redis Pub/Sub channel carrying feed events between
// instances.
const feedChannel = "schedly:booking_events"

// Event is one booking change pushed to subscribers. Delivery is
// last-write-wins with no ordering guarantee beyond channel order.
type Event struct {
	Type    EventType `json:"type"`
	Booking *Booking  `json:"booking"`
}

// Connection represents one subscribed websocket client
type Connection struct {
	UserID  uuid.UUID
	IsAdmin bool
	send    chan []byte
}

// Hub fans booking change events out to subscribed clients: each event goes
// to the booking's owner and to every admin. With Redis configured, events
// travel through Pub/Sub so every instance delivers to its own clients;
// without it, delivery is local to this process.
type Hub struct {
	mu          sync.RWMutex
	connections map[*Connection]bool

	redis  *redis.Client
	pubsub *redis.PubSub

	register   chan *Connection
	unregister chan *Connection

	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub creates a booking feed hub
func NewHub(redisClient *redis.Client) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	h := &Hub{
		connections: make(map[*Connection]bool),
		redis:       redisClient,
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		ctx:         ctx,
		cancel:      cancel,
	}

	if redisClient != nil {
		h.pubsub = redisClient.Subscribe(ctx, feedChannel)
	}

	return h
}

// Run processes connection lifecycle and cross-instance events. Call in a
// goroutine; stops when Close is called.
func (h *Hub) Run() {
	var pubsubCh <-chan *redis.Message
	if h.pubsub != nil {
		pubsubCh = h.pubsub.Channel()
	}

	for {
		select {
		case <-h.ctx.Done():
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.connections[conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if h.connections[conn] {
				delete(h.connections, conn)
				close(conn.send)
			}
			h.mu.Unlock()

		case msg, ok := <-pubsubCh:
			if !ok {
				pubsubCh = nil
				continue
			}
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Warn().Err(err).Msg("bad feed payload")
				continue
			}
			h.deliver(&event)
		}
	}
}

// Close shuts the hub down
func (h *Hub) Close() {
	h.cancel()
	if h.pubsub != nil {
		h.pubsub.Close()
	}
}

// Register adds a connection to the feed
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection from the feed
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// Publish pushes an event into the feed. With Redis, the event round-trips
// through Pub/Sub and every instance (including this one) delivers it;
// otherwise it is delivered locally.
func (h *Hub) Publish(ctx context.Context, event Event) {
	if h.redis != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			log.Error().Err(err).Msg("failed to marshal feed event")
			return
		}
		if err := h.redis.Publish(ctx, feedChannel, payload).Err(); err != nil {
			log.Error().Err(err).Msg("failed to publish feed event, delivering locally")
			h.deliver(&event)
		}
		return
	}
	h.deliver(&event)
}

func (h *Hub) deliver(event *Event) {
	if event.Booking == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal feed event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for conn := range h.connections {
		if !conn.IsAdmin && conn.UserID != event.Booking.UserID {
			continue
		}
		select {
		case conn.send <- payload:
		default:
			// Slow consumer, drop the event rather than block the feed.
			log.Warn().Str("user_id", conn.UserID.String()).Msg("feed event dropped")
		}
	}
}
