package server

import (
	"encoding/json"
	"net/http"
	"net/http/pprof"
	"strconv"

	"github.com/HoriaMercan/PM-project/internal/render"
	"github.com/HoriaMercan/PM-project/internal/session"
)

// DebugHandler предоставляет доступ к последнему разосланному состоянию
type DebugHandler struct {
	Session *session.Session
}

func NewDebugHandler(s *session.Session) *DebugHandler {
	return &DebugHandler{Session: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/state", h.handleState)
	mux.HandleFunc("/debug/board", h.handleBoard)
	mux.HandleFunc("/debug/devices", h.handleDevices)

	// Профилирование
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
}

// viewerParam разбирает ?viewer=N, по умолчанию зритель (-1)
func viewerParam(r *http.Request) int {
	v, err := strconv.Atoi(r.URL.Query().Get("viewer"))
	if err != nil {
		return -1
	}
	return v
}

// /debug/state?viewer=0 - снимок с точки зрения игрока
func (h *DebugHandler) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Session.Snapshot(viewerParam(r)))
}

// /debug/board - то же поле, что на консоли
func (h *DebugHandler) handleBoard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(render.New(w).Render(h.Session.Snapshot(viewerParam(r)))))
}

// /debug/devices - подключенные устройства в порядке ходов
func (h *DebugHandler) handleDevices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Session.Devices())
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
