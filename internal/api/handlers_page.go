// handlers_page.go - Page header, countdown snapshot and timeline chart handlers
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/cuenta-regresiva/backend/internal/clock"
)

// MIMEApplicationMsgpack is the content type of msgpack responses.
const MIMEApplicationMsgpack = "application/msgpack"

// PageHandlerImpl implements the PageHandler interface
type PageHandlerImpl struct {
	page     PageService
	interval time.Duration
	lifetime context.Context
}

// NewPageHandler creates a page handler. Streams end when the client goes
// away or lifetime is cancelled.
func NewPageHandler(page PageService, interval time.Duration, lifetime context.Context) PageHandler {
	if lifetime == nil {
		lifetime = context.Background()
	}
	return &PageHandlerImpl{
		page:     page,
		interval: interval,
		lifetime: lifetime,
	}
}

// HandlePage returns the active profile header
func (h *PageHandlerImpl) HandlePage(c echo.Context) error {
	return c.JSON(http.StatusOK, h.page.Info())
}

// HandleCountdown returns one snapshot, as JSON or, with ?format=msgpack, MessagePack
func (h *PageHandlerImpl) HandleCountdown(c echo.Context) error {
	snap := h.page.Snapshot()

	switch c.QueryParam("format") {
	case "", "json":
		return c.JSON(http.StatusOK, snap)
	case "msgpack":
		data, err := msgpack.Marshal(snap)
		if err != nil {
			return NewInternalError("failed to encode msgpack", err)
		}
		return c.Blob(http.StatusOK, MIMEApplicationMsgpack, data)
	default:
		return NewValidationError("format")
	}
}

// HandleCountdownStream streams a snapshot every refresh interval via SSE
// until the client disconnects or the server shuts down
func (h *PageHandlerImpl) HandleCountdownStream(c echo.Context) error {
	ctx, cancel := streamContext(c.Request().Context(), h.lifetime)
	defer cancel()

	c.Response().Header().Set("Content-Type", "text/event-stream")
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("Connection", "keep-alive")
	c.Response().Header().Set("X-Accel-Buffering", "no")
	c.Response().WriteHeader(http.StatusOK)

	err := clock.Every(ctx, h.interval, func(context.Context) error {
		data, err := json.Marshal(h.page.Snapshot())
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(c.Response(), "data: %s\n\n", data); err != nil {
			return err
		}
		c.Response().Flush()
		return nil
	})
	if err != nil && ctx.Err() == nil {
		fmt.Printf("[Stream] Countdown stream ended: %v\n", err)
	}
	return nil
}

// HandleTimelineChart renders the timeline with the "now" marker as a PNG
func (h *PageHandlerImpl) HandleTimelineChart(c echo.Context) error {
	var buf bytes.Buffer
	if err := h.page.Chart(&buf); err != nil {
		return NewInternalError("failed to render timeline", err)
	}
	c.Response().Header().Set("Cache-Control", "no-store")
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// streamContext returns a context cancelled when either the request or the
// server lifetime ends.
func streamContext(request, lifetime context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(request)
	stop := context.AfterFunc(lifetime, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
