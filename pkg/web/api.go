package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/M17-Project/m17-core-go/pkg/database"
	"github.com/M17-Project/m17-core-go/pkg/logger"
)

// API handles REST API endpoints for the gateway dashboard.
type API struct {
	logger  *logger.Logger
	stations *database.HeardStationRepository
	messages *database.TextMessageRepository
}

// NewAPI creates a new API instance.
func NewAPI(log *logger.Logger) *API {
	return &API{logger: log}
}

// SetDeps provides runtime repositories to the API after construction.
func (a *API) SetDeps(stations *database.HeardStationRepository, messages *database.TextMessageRepository) {
	a.stations = stations
	a.messages = messages
}

// HeardStationDTO is a lightweight response for a heard-station record.
type HeardStationDTO struct {
	ID          uint    `json:"id"`
	Callsign    string  `json:"callsign"`
	Destination string  `json:"destination"`
	StreamID    uint16  `json:"stream_id"`
	CAN         int     `json:"can"`
	Duration    float64 `json:"duration"`
	StartTime   int64   `json:"start_time"`
	EndTime     int64   `json:"end_time"`
	FrameCount  int     `json:"frame_count"`
}

// TextMessageDTO is a lightweight response for a text message.
type TextMessageDTO struct {
	ID         uint   `json:"id"`
	Src        string `json:"src"`
	Dst        string `json:"dst"`
	Body       string `json:"body"`
	ReceivedAt int64  `json:"received_at"`
}

// HandleStatus handles the /api/status endpoint.
func (a *API) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	version, commit, buildTime := GetVersionInfo()
	response := map[string]interface{}{
		"status":     "running",
		"service":    "m17gw",
		"version":    version,
		"commit":     commit,
		"build_time": buildTime,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		a.logger.Error("failed to encode status response", logger.Error(err))
	}
}

// HandleStations handles the /api/stations endpoint.
func (a *API) HandleStations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if a.stations == nil {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"stations": []HeardStationDTO{}, "total": 0, "page": 1, "per_page": 50,
		})
		return
	}

	page, perPage := paginationParams(r)
	stations, total, err := a.stations.GetRecentPaginated(page, perPage)
	if err != nil {
		a.logger.Error("failed to get heard stations", logger.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	dtos := make([]HeardStationDTO, 0, len(stations))
	for _, s := range stations {
		dtos = append(dtos, HeardStationDTO{
			ID:          s.ID,
			Callsign:    s.Callsign,
			Destination: s.Destination,
			StreamID:    s.StreamID,
			CAN:         s.CAN,
			Duration:    s.Duration,
			StartTime:   s.StartTime.Unix(),
			EndTime:     s.EndTime.Unix(),
			FrameCount:  s.FrameCount,
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"stations": dtos, "total": total, "page": page, "per_page": perPage,
	}); err != nil {
		a.logger.Error("failed to encode stations response", logger.Error(err))
	}
}

// HandleMessages handles the /api/messages endpoint.
func (a *API) HandleMessages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if a.messages == nil {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode([]TextMessageDTO{})
		return
	}

	_, perPage := paginationParams(r)
	messages, err := a.messages.GetRecent(perPage)
	if err != nil {
		a.logger.Error("failed to get text messages", logger.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	dtos := make([]TextMessageDTO, 0, len(messages))
	for _, m := range messages {
		dtos = append(dtos, TextMessageDTO{
			ID:         m.ID,
			Src:        m.Src,
			Dst:        m.Dst,
			Body:       m.Body,
			ReceivedAt: m.ReceivedAt.Unix(),
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		a.logger.Error("failed to encode messages response", logger.Error(err))
	}
}

func paginationParams(r *http.Request) (page, perPage int) {
	page, perPage = 1, 50
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if perPageStr := r.URL.Query().Get("per_page"); perPageStr != "" {
		if pp, err := strconv.Atoi(perPageStr); err == nil && pp > 0 && pp <= 100 {
			perPage = pp
		}
	}
	return page, perPage
}
