package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fulfillment/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

const (
	eventBuffer       = 32
	heartbeatInterval = 15 * time.Second
)

// StreamEvents handles GET /api/v1/events as a Server-Sent Events stream.
// The stream ends when the client goes away or the broadcaster closes.
func (s *Server) StreamEvents(ctx echo.Context) error {
	events, unsubscribe := s.handlers.Events.Subscribe(eventBuffer)
	defer unsubscribe()

	response := ctx.Response()
	response.Header().Set(echo.HeaderContentType, "text/event-stream")
	response.Header().Set(echo.HeaderCacheControl, "no-cache")
	response.Header().Set(echo.HeaderConnection, "keep-alive")
	response.WriteHeader(http.StatusOK)
	response.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	done := ctx.Request().Context().Done()
	for {
		select {
		case <-done:
			return nil
		case <-heartbeat.C:
			if _, err := fmt.Fprint(response, ": ping\n\n"); err != nil {
				return nil
			}
			response.Flush()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			data, err := json.Marshal(servers.StatusChangedEvent{
				OrderId:    event.OrderID.Bytes(),
				OldStatus:  servers.OrderStatus(event.OldStatus.String()),
				NewStatus:  servers.OrderStatus(event.NewStatus.String()),
				OccurredAt: event.OccurredAt.UTC(),
			})
			if err != nil {
				return err
			}
			if _, err = fmt.Fprintf(response, "event: status_changed\ndata: %s\n\n", data); err != nil {
				return nil
			}
			response.Flush()
		}
	}
}
