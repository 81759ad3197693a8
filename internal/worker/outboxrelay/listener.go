package outboxrelay

import (
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Channel канал NOTIFY, в который пишет триггер outbox_events
const Channel = "outbox_events"

// Listen открывает отдельное соединение и подписывается на NOTIFY outbox
func Listen(dsn string, logger Logger) (*pq.Listener, error) {
	listener := pq.NewListener(dsn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.Warn("OutboxRelay: listener event %d: %v", ev, err)
		}
	})
	if err := listener.Listen(Channel); err != nil {
		_ = listener.Close()
		return nil, fmt.Errorf("listen %s: %w", Channel, err)
	}
	return listener, nil
}
