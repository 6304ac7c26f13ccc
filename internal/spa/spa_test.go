package spa

import (
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func get(t *testing.T, app *fiber.App, target string) (int, string, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	if err != nil {
		t.Fatalf("GET %s: %v", target, err)
	}
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, resp.Header.Get("Content-Type"), string(body)
}

func TestHandler(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "index.html"), "<html>root</html>")
	writeFile(t, filepath.Join(root, "app.js"), "console.log(1)")
	writeFile(t, filepath.Join(root, "docs", "index.html"), "<html>docs</html>")

	app := fiber.New()
	app.Get("/*", Handler(root))

	tests := []struct {
		path     string
		wantCode int
		wantBody string
		wantType string
	}{
		{"/", 200, "<html>root</html>", "text/html"},
		{"/analytics", 200, "<html>root</html>", "text/html"},
		{"/analytics/", 200, "<html>root</html>", "text/html"},
		{"/app.js", 200, "console.log(1)", "javascript"},
		{"/docs", 200, "<html>docs</html>", "text/html"},
		{"/docs/", 200, "<html>docs</html>", "text/html"},
		{"/../../etc/passwd", 200, "<html>root</html>", "text/html"},
	}
	for _, tt := range tests {
		code, ctype, body := get(t, app, tt.path)
		if code != tt.wantCode || body != tt.wantBody {
			t.Errorf("GET %s = %d %q, want %d %q", tt.path, code, body, tt.wantCode, tt.wantBody)
		}
		if !strings.Contains(ctype, tt.wantType) {
			t.Errorf("GET %s Content-Type = %q, want %s", tt.path, ctype, tt.wantType)
		}
	}
}

func TestHandlerMissingIndex(t *testing.T) {
	app := fiber.New()
	app.Get("/*", Handler(t.TempDir()))

	if code, _, _ := get(t, app, "/reports"); code != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", code)
	}
}
