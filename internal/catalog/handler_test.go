package catalog

import (
	"context"
	"encoding/json"
	"net/url"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"catalog-backend/internal/inline"
	"catalog-backend/internal/models"
	"catalog-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app, _ := newTestAppStore(t)
	return app
}

func newTestAppStore(t *testing.T) (*fiber.App, *store.Store) {
	t.Helper()
	svc, st := newTestService(t)
	editor := inline.NewEditor(st, 10*time.Millisecond)

	app := fiber.New()
	app.Get("/api/catalogs", ListCatalogsHandler(st))
	app.Post("/api/catalogs", CreateCatalogEntryHandler(svc))
	app.Delete("/api/catalogs", DeleteAllCatalogsHandler(svc))
	app.Patch("/api/catalogs/:key", inline.PatchHandler(editor, store.Catalogs, EditableFields))
	app.Get("/api/catalogs/form", CatalogFormHandler(svc))
	app.Delete("/api/catalogs/:key", DeleteCatalogHandler(svc))
	return app, st
}

func TestCreateCatalogEntryHandler(t *testing.T) {
	app := newTestApp(t)

	body := `{"CatalogName":"Pump","ReceiptDate":"2024-12-01","DeliveryDate":"2024-12-05",
		"QuantityReceived":50,"IssueQuantity":"10","DistributionDestination":"東京支社","Requester":"田中太郎"}`
	req := httptest.NewRequest("POST", "/api/catalogs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var rec models.Catalog
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.StockQuantity != 40 || !strings.HasPrefix(rec.Key, "Pump_") {
		t.Errorf("created %+v", rec)
	}
}

func TestCreateCatalogEntryHandlerMissingFields(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("POST", "/api/catalogs", strings.NewReader(`{"CatalogName":"Pump"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestDeleteAllRequiresConfirm(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/catalogs", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("without confirm status = %d, want 400", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest("DELETE", "/api/catalogs?confirm=true", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("with confirm status = %d, want 200", resp.StatusCode)
	}
}

func TestPatchMissingRecord(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("PATCH", "/api/catalogs/nope_1",
		strings.NewReader(`{"field":"Remarks","value":"x","old_value":""}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestPatchRejectsStockQuantity(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("PATCH", "/api/catalogs/Pump_1",
		strings.NewReader(`{"field":"StockQuantity","value":"1","old_value":"0"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestPatchAndDeleteEncodedKeys(t *testing.T) {
	tests := []struct {
		label string
		name  string
	}{
		{"ascii", "Pump"},
		{"japanese", "ポンプ"},
		{"slash", "比例電磁式方向・流量制御弁　EDFHG-04/06"},
	}
	for _, tt := range tests {
		name := tt.name
		t.Run(tt.label, func(t *testing.T) {
			app, st := newTestAppStore(t)
			ctx := context.Background()
			key := name + "_1733011200000"
			if err := st.WriteCatalog(ctx, &models.Catalog{Key: key, CatalogName: name}); err != nil {
				t.Fatalf("WriteCatalog: %v", err)
			}
			path := "/api/catalogs/" + url.PathEscape(key)

			req := httptest.NewRequest("PATCH", path,
				strings.NewReader(`{"field":"Remarks","value":"至急","old_value":""}`))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != fiber.StatusOK {
				t.Fatalf("PATCH status = %d, want 200", resp.StatusCode)
			}
			var patched inline.PatchResponse
			if err := json.NewDecoder(resp.Body).Decode(&patched); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if patched.Key != key || !patched.Updated {
				t.Errorf("PATCH response = %+v, want key %q updated", patched, key)
			}
			recs, err := st.Catalogs(ctx)
			if err != nil || len(recs) != 1 || recs[0].Remarks != "至急" {
				t.Fatalf("after PATCH records = %+v, %v", recs, err)
			}

			resp, err = app.Test(httptest.NewRequest("DELETE", path, nil))
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != fiber.StatusNoContent {
				t.Fatalf("DELETE status = %d, want 204", resp.StatusCode)
			}
			recs, err = st.Catalogs(ctx)
			if err != nil || len(recs) != 0 {
				t.Errorf("after DELETE records = %+v, %v", recs, err)
			}
		})
	}
}
