package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Channel carries session/progress events between service instances and
// out to websocket subscribers.
const Channel = "dsaprep:session"

// Event types published on the bus.
const (
	TypeSignedIn        = "signed_in"
	TypeGoalChanged     = "goal_changed"
	TypeProgressUpdated = "progress_updated"
	TypeStatusCleared   = "status_cleared"
	TypeTopicAdvanced   = "topic_advanced"
)

// Event is a push notification about a user's session state.
type Event struct {
	Type       string    `json:"type"`
	UID        string    `json:"uid"`
	Goal       string    `json:"goal,omitempty"`
	TopicID    string    `json:"topicId,omitempty"`
	QuestionID string    `json:"questionId,omitempty"`
	InstanceID string    `json:"instanceId,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Bus publishes session events to Redis and fans them out to local
// subscribers. Subscribers are push-fed; there is no polling.
type Bus struct {
	rdb        *redis.Client
	logger     *zap.Logger
	instanceID string

	mu   sync.Mutex
	subs map[chan Event]struct{}

	cancel context.CancelFunc
}

func NewBus(redisAddr string, logger *zap.Logger) *Bus {
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	ctx, cancel := context.WithCancel(context.Background())

	b := &Bus{
		rdb:        rdb,
		logger:     logger,
		instanceID: uuid.New().String()[:8],
		subs:       make(map[chan Event]struct{}),
		cancel:     cancel,
	}

	go b.listen(ctx)
	return b
}

// Publish sends an event to the shared channel. Failures are logged and
// swallowed; a push that gets lost never fails the operation it reports.
func (b *Bus) Publish(event Event) {
	event.InstanceID = b.instanceID
	event.Timestamp = time.Now().UTC()

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("failed to marshal session event", zap.Error(err))
		return
	}
	if err := b.rdb.Publish(context.Background(), Channel, data).Err(); err != nil {
		b.logger.Error("failed to publish session event", zap.Error(err))
	}
}

// Subscribe registers a local subscriber. The returned cancel func must
// be called when the subscriber goes away.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	return ch, func() {
		b.mu.Lock()
		delete(b.subs, ch)
		b.mu.Unlock()
	}
}

// Close stops the Redis listener.
func (b *Bus) Close() error {
	b.cancel()
	return b.rdb.Close()
}

func (b *Bus) listen(ctx context.Context) {
	pubsub := b.rdb.Subscribe(ctx, Channel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	b.logger.Info("subscribed to session events", zap.String("instance", b.instanceID))

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.logger.Error("failed to unmarshal session event", zap.Error(err))
				continue
			}
			b.fanout(event)
		}
	}
}

func (b *Bus) fanout(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- event:
		default:
			// slow subscriber, drop rather than block the listener
		}
	}
}
