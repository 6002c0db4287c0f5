package storefront

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/akash06959/agronova/internal/store"
	"github.com/akash06959/agronova/internal/webserver"
)

// changeTopics are the store change announcements exposed to pollers.
var changeTopics = []string{
	store.TopicCartChanged,
	store.TopicWishlistChanged,
	store.TopicCatalogChanged,
	store.TopicSessionChanged,
	store.TopicNotification,
}

const (
	defaultPollWait = 25 * time.Second
	maxPollWait     = 60 * time.Second
)

// waitForChange long-polls the event bus: it answers with the first store
// change topic published while the request is open, or an empty topic on
// timeout. Clients refresh cart badges and toasts off this instead of
// polling every endpoint.
func (h *handler) waitForChange(c echo.Context) error {
	wait := defaultPollWait
	if v := c.QueryParam("timeout"); v != "" {
		if d := time.Duration(cast.ToInt(v)) * time.Second; d > 0 && d <= maxPollWait {
			wait = d
		}
	}

	ch := make(chan string, 1)
	subs := make(map[string]func(...interface{}), len(changeTopics))
	for _, topic := range changeTopics {
		topic := topic
		fn := func(...interface{}) {
			select {
			case ch <- topic:
			default:
			}
		}
		if err := h.env.Bus.SubscribeAsync(topic, fn, false); err != nil {
			return webserver.Fail(c, http.StatusInternalServerError, "EVENTS_ERROR", err.Error())
		}
		subs[topic] = fn
	}
	defer func() {
		for topic, fn := range subs {
			_ = h.env.Bus.Unsubscribe(topic, fn)
		}
	}()

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case topic := <-ch:
		return webserver.OK(c, map[string]interface{}{"topic": topic})
	case <-timer.C:
		return webserver.OK(c, map[string]interface{}{"topic": ""})
	case <-c.Request().Context().Done():
		return nil
	}
}
