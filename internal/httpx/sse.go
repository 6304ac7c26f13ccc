package httpx

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

const keepAliveInterval = 15 * time.Second

// Event: SSE ile istemciye giden tek olay.
type Event struct {
	Name string
	Data any
}

// Stream: sayfa modüllerinin ürettiği olayları tek bir SSE bağlantısına taşır.
type Stream struct {
	events chan Event
	done   chan struct{}
	once   sync.Once
}

func NewStream() *Stream {
	return &Stream{
		events: make(chan Event, 16),
		done:   make(chan struct{}),
	}
}

// Send: bağlantı kapandıysa false döner.
func (s *Stream) Send(name string, data any) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.events <- Event{Name: name, Data: data}:
		return true
	case <-s.done:
		return false
	}
}

func (s *Stream) Events() <-chan Event {
	return s.events
}

func (s *Stream) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *Stream) Done() <-chan struct{} {
	return s.done
}

// ServeSSE: akışı istemciye yazar. İstemci ayrıldığında (flush hatası)
// stream kapatılır ve onClose çağrılır.
func ServeSSE(c *fiber.Ctx, s *Stream, onClose func()) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer func() {
			s.Close()
			if onClose != nil {
				onClose()
			}
		}()

		ticker := time.NewTicker(keepAliveInterval)
		defer ticker.Stop()

		for {
			select {
			case ev := <-s.events:
				if err := WriteEvent(w, ev); err != nil {
					log.Printf("[sse] olay yazılamadı: %v", err)
					return
				}
			case <-ticker.C:
				if _, err := w.WriteString(": ping\n\n"); err != nil {
					return
				}
			case <-s.done:
				return
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	}))
	return nil
}

// WriteEvent: "event: <ad>\ndata: <json>\n\n" biçiminde yazar.
func WriteEvent(w *bufio.Writer, ev Event) error {
	payload, err := json.Marshal(ev.Data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Name, payload)
	return err
}
