package httpx

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"testing"

	"catalog-backend/internal/form"
	"catalog-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

func TestError(t *testing.T) {
	other := errors.New("other")
	tests := []struct {
		err  error
		want int
	}{
		{&form.ValidationError{Message: "x"}, fiber.StatusBadRequest},
		{store.ErrNotFound, fiber.StatusNotFound},
		{fmt.Errorf("%w: Foo", store.ErrUnknownField), fiber.StatusBadRequest},
		{fmt.Errorf("%w: n", store.ErrInvalidValue), fiber.StatusBadRequest},
		{&store.RemoteError{Op: "get", Collection: store.Catalogs, Err: other}, fiber.StatusBadGateway},
	}
	for _, tt := range tests {
		var ferr *fiber.Error
		if !errors.As(Error(tt.err), &ferr) || ferr.Code != tt.want {
			t.Errorf("Error(%v) = %v, want status %d", tt.err, Error(tt.err), tt.want)
		}
	}

	if Error(nil) != nil {
		t.Error("Error(nil) != nil")
	}
	if Error(other) != other {
		t.Error("unknown errors should pass through")
	}
}

func TestWriteEvent(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	if err := WriteEvent(w, Event{Name: "tab", Data: map[string]string{"tab": "reports"}}); err != nil {
		t.Fatalf("WriteEvent: %v", err)
	}
	w.Flush()

	want := "event: tab\ndata: {\"tab\":\"reports\"}\n\n"
	if buf.String() != want {
		t.Errorf("WriteEvent = %q, want %q", buf.String(), want)
	}
}

func TestStreamSendAfterClose(t *testing.T) {
	s := NewStream()
	if !s.Send("a", 1) {
		t.Fatal("Send on open stream failed")
	}
	s.Close()
	s.Close()
	if s.Send("b", 2) {
		t.Error("Send after Close succeeded")
	}
}
