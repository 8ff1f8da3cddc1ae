package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/M17-Project/m17-core-go/pkg/database"
	"github.com/M17-Project/m17-core-go/pkg/logger"
)

func TestHandleStations_NoRepo(t *testing.T) {
	log := logger.New(logger.Config{Level: "error"})
	api := NewAPI(log)

	req := httptest.NewRequest("GET", "/api/stations", nil)
	w := httptest.NewRecorder()

	api.HandleStations(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if total, ok := response["total"].(float64); !ok || total != 0 {
		t.Errorf("expected total 0, got %v", response["total"])
	}
}

func TestHandleStations_WithData(t *testing.T) {
	log := logger.New(logger.Config{Level: "error"})
	dbPath := "/tmp/test_api_stations.db"
	defer os.Remove(dbPath)

	db, err := database.NewDB(database.Config{Path: dbPath}, log)
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	defer db.Close()

	repo := database.NewHeardStationRepository(db.GetDB())

	now := time.Now()
	for i := 0; i < 3; i++ {
		s := &database.HeardStation{
			Callsign:    "W2FBI",
			Destination: "N0CALL",
			StreamID:    uint16(1000 + i),
			CAN:         1,
			Duration:    float64(i + 1),
			StartTime:   now.Add(time.Duration(i) * time.Minute),
			EndTime:     now.Add(time.Duration(i)*time.Minute + time.Duration(i+1)*time.Second),
			FrameCount:  10 + i,
		}
		if err := repo.Create(s); err != nil {
			t.Fatalf("failed to create heard station: %v", err)
		}
	}

	api := NewAPI(log)
	api.SetDeps(repo, nil)

	req := httptest.NewRequest("GET", "/api/stations?page=1&per_page=2", nil)
	w := httptest.NewRecorder()

	api.HandleStations(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if total, ok := response["total"].(float64); !ok || total != 3 {
		t.Errorf("expected total 3, got %v", response["total"])
	}

	if page, ok := response["page"].(float64); !ok || page != 1 {
		t.Errorf("expected page 1, got %v", response["page"])
	}

	if perPage, ok := response["per_page"].(float64); !ok || perPage != 2 {
		t.Errorf("expected per_page 2, got %v", response["per_page"])
	}

	stations, ok := response["stations"].([]interface{})
	if !ok {
		t.Fatalf("expected stations array")
	}

	if len(stations) != 2 {
		t.Errorf("expected 2 stations on first page, got %d", len(stations))
	}
}

func TestHandleStations_MethodNotAllowed(t *testing.T) {
	log := logger.New(logger.Config{Level: "error"})
	api := NewAPI(log)

	req := httptest.NewRequest("POST", "/api/stations", nil)
	w := httptest.NewRecorder()

	api.HandleStations(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}

func TestHandleMessages_NoRepo(t *testing.T) {
	log := logger.New(logger.Config{Level: "error"})
	api := NewAPI(log)

	req := httptest.NewRequest("GET", "/api/messages", nil)
	w := httptest.NewRecorder()

	api.HandleMessages(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var response []interface{}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response) != 0 {
		t.Errorf("expected empty messages array, got %d", len(response))
	}
}

func TestHandleMessages_WithData(t *testing.T) {
	log := logger.New(logger.Config{Level: "error"})
	dbPath := "/tmp/test_api_messages.db"
	defer os.Remove(dbPath)

	db, err := database.NewDB(database.Config{Path: dbPath}, log)
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	defer db.Close()

	repo := database.NewTextMessageRepository(db.GetDB())
	for i := 0; i < 2; i++ {
		if err := repo.Create(&database.TextMessage{Src: "W2FBI", Dst: "N0CALL", Body: "hello"}); err != nil {
			t.Fatalf("failed to create text message: %v", err)
		}
	}

	api := NewAPI(log)
	api.SetDeps(nil, repo)

	req := httptest.NewRequest("GET", "/api/messages", nil)
	w := httptest.NewRecorder()

	api.HandleMessages(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var response []interface{}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response) != 2 {
		t.Errorf("expected 2 messages, got %d", len(response))
	}
}

func TestHandleStatus(t *testing.T) {
	log := logger.New(logger.Config{Level: "error"})
	api := NewAPI(log)

	req := httptest.NewRequest("GET", "/api/status", nil)
	w := httptest.NewRecorder()

	api.HandleStatus(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["service"] != "m17gw" {
		t.Errorf("expected service m17gw, got %v", response["service"])
	}
}
