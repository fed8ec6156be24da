package controller

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/patrickmn/go-cache"
	"github.com/seanazu/value-hunter/model"
	"github.com/seanazu/value-hunter/service"
)

func setupSessionAPI(t *testing.T, status int, body string) (humatest.TestAPI, *screenerStub, service.PresetService) {
	t.Helper()
	stub, c := newScreenerStub(t, status, body)
	ss := service.NewSessionService(c, time.Minute)
	ps := service.NewPresetService(nil, cache.New(cache.NoExpiration, 0))

	_, api := humatest.New(t)
	NewSessionController(ss, ps).RegisterRoutes(api)
	return api, stub, ps
}

func decodeSession(t *testing.T, raw []byte) model.SessionDto {
	t.Helper()
	var dto model.SessionDto
	if err := json.Unmarshal(raw, &dto); err != nil {
		t.Fatalf("invalid session body %s: %v", raw, err)
	}
	return dto
}

func createSession(t *testing.T, api humatest.TestAPI) model.SessionDto {
	t.Helper()
	resp := api.Post("/api/sessions")
	if resp.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", resp.Code, resp.Body.String())
	}
	return decodeSession(t, resp.Body.Bytes())
}

func TestSessionAPI_CreateAndGet(t *testing.T) {
	api, _, _ := setupSessionAPI(t, http.StatusOK, `[]`)

	created := createSession(t, api)
	if created.ID == "" || created.View.State != model.StateIdle {
		t.Fatalf("created = %+v", created)
	}
	if created.View.Filters.Exchange == nil || *created.View.Filters.Exchange != model.ExchangeNasdaq {
		t.Errorf("default exchange = %v", created.View.Filters.Exchange)
	}

	resp := api.Get("/api/sessions/" + created.ID)
	if resp.Code != http.StatusOK {
		t.Fatalf("get status = %d", resp.Code)
	}
	if resp.Header().Get("Cache-Control") != "no-store" {
		t.Errorf("Cache-Control = %q", resp.Header().Get("Cache-Control"))
	}
	if got := decodeSession(t, resp.Body.Bytes()); got.ID != created.ID {
		t.Errorf("got id %q", got.ID)
	}
}

func TestSessionAPI_UnknownSession(t *testing.T) {
	api, _, _ := setupSessionAPI(t, http.StatusOK, `[]`)

	if resp := api.Get("/api/sessions/missing"); resp.Code != http.StatusNotFound {
		t.Errorf("get status = %d", resp.Code)
	}
	if resp := api.Post("/api/sessions/missing/submit"); resp.Code != http.StatusNotFound {
		t.Errorf("submit status = %d", resp.Code)
	}
}

func TestSessionAPI_SubmitFlow(t *testing.T) {
	api, stub, _ := setupSessionAPI(t, http.StatusOK, `[{"symbol":"B","score":0.1},{"symbol":"A","score":0.9,"explanation":"Deep value"}]`)
	id := createSession(t, api).ID

	resp := api.Patch("/api/sessions/"+id+"/fields", map[string]any{"field": "exchange", "value": nil})
	if resp.Code != http.StatusOK {
		t.Fatalf("patch status = %d: %s", resp.Code, resp.Body.String())
	}
	if dto := decodeSession(t, resp.Body.Bytes()); dto.View.Filters.Exchange != nil {
		t.Errorf("exchange not cleared: %v", *dto.View.Filters.Exchange)
	}

	resp = api.Post("/api/sessions/" + id + "/submit?wait=true")
	if resp.Code != http.StatusOK {
		t.Fatalf("submit status = %d", resp.Code)
	}
	dto := decodeSession(t, resp.Body.Bytes())
	if dto.View.State != model.StateFailed || dto.View.Error != "Please fill in all required fields." {
		t.Errorf("view after invalid submit = %+v", dto.View)
	}
	if stub.count() != 0 {
		t.Error("request sent despite validation failure")
	}

	api.Patch("/api/sessions/"+id+"/fields", map[string]any{"field": "exchange", "value": "AMEX"})
	api.Patch("/api/sessions/"+id+"/fields", map[string]any{"field": "limit", "value": 5})

	resp = api.Post("/api/sessions/" + id + "/submit?wait=true")
	dto = decodeSession(t, resp.Body.Bytes())
	if dto.View.State != model.StateSucceeded || dto.View.Busy || dto.View.InFlight {
		t.Fatalf("view after submit = %+v", dto.View)
	}
	if len(dto.View.Rows) != 2 || dto.View.Rows[0].Symbol != "B" || dto.View.Rows[1].Rank != 2 {
		t.Errorf("rows = %+v", dto.View.Rows)
	}

	want := "marketCapLowerThan=500000000&priceLowerThan=15&averageVolumeMoreThan=300000&exchange=AMEX&isActivelyTrading=true&limit=5"
	if got := stub.last(); got != want {
		t.Errorf("query = %q, want %q", got, want)
	}
}

func TestSessionAPI_UpdateFieldRejectsBadInput(t *testing.T) {
	api, _, _ := setupSessionAPI(t, http.StatusOK, `[]`)
	id := createSession(t, api).ID

	resp := api.Patch("/api/sessions/"+id+"/fields", map[string]any{"field": "priceLowerThan", "value": "cheap"})
	if resp.Code != http.StatusBadRequest {
		t.Errorf("bad value status = %d", resp.Code)
	}

	resp = api.Patch("/api/sessions/"+id+"/fields", map[string]any{"field": "exchange", "value": "LSE"})
	if resp.Code != http.StatusBadRequest {
		t.Errorf("unknown exchange status = %d", resp.Code)
	}
	resp = api.Get("/api/sessions/" + id)
	if dto := decodeSession(t, resp.Body.Bytes()); *dto.View.Filters.Exchange != model.ExchangeNasdaq {
		t.Errorf("exchange changed to %q", *dto.View.Filters.Exchange)
	}

	resp = api.Patch("/api/sessions/"+id+"/fields", map[string]any{"field": "sector", "value": "tech"})
	if resp.Code != http.StatusUnprocessableEntity {
		t.Errorf("unknown field status = %d", resp.Code)
	}
}

func TestSessionAPI_ServerErrorLivesInView(t *testing.T) {
	api, _, _ := setupSessionAPI(t, http.StatusInternalServerError, ``)
	id := createSession(t, api).ID

	resp := api.Post("/api/sessions/" + id + "/submit?wait=true")
	if resp.Code != http.StatusOK {
		t.Fatalf("submit status = %d", resp.Code)
	}
	if dto := decodeSession(t, resp.Body.Bytes()); dto.View.Error != "Server error: Internal Server Error" {
		t.Errorf("view = %+v", dto.View)
	}
}

func TestSessionAPI_Close(t *testing.T) {
	api, _, _ := setupSessionAPI(t, http.StatusOK, `[]`)
	id := createSession(t, api).ID

	if resp := api.Delete("/api/sessions/" + id); resp.Code != http.StatusOK {
		t.Fatalf("delete status = %d", resp.Code)
	}
	if resp := api.Get("/api/sessions/" + id); resp.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d", resp.Code)
	}
}

func TestSessionAPI_ApplyUnknownPreset(t *testing.T) {
	api, _, _ := setupSessionAPI(t, http.StatusOK, `[]`)
	id := createSession(t, api).ID

	if resp := api.Post("/api/sessions/" + id + "/presets/PENNY"); resp.Code != http.StatusNotFound {
		t.Errorf("status = %d", resp.Code)
	}
}
