package wsutil

import "log/slog"

// SafeSend queues data on a client's send channel without panicking if the hub
// already closed it. If the channel is full or closed, the message is dropped.
// It reports whether the message was queued.
func SafeSend(ch chan []byte, data []byte) (sent bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("dropping message for closed client", "tag", "wsutil", "panic", r)
			sent = false
		}
	}()
	select {
	case ch <- data:
		return true
	default:
		slog.Debug("dropping message for slow client", "tag", "wsutil")
		return false
	}
}
