package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/HoriaMercan/PM-project/internal/domain"
	"github.com/HoriaMercan/PM-project/internal/network"
	"github.com/HoriaMercan/PM-project/internal/session"
	"github.com/HoriaMercan/PM-project/internal/version"
	"github.com/HoriaMercan/PM-project/pkg/api"
	"github.com/HoriaMercan/PM-project/pkg/logger"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ResultLister отдает последние результаты (storage.ResultStore).
type ResultLister interface {
	Recent(ctx context.Context, limit int) ([]domain.GameResult, error)
}

type Server struct {
	Session *session.Session
	Hub     *network.Broadcaster
	Results ResultLister
	Port    string
}

func New(s *session.Session, hub *network.Broadcaster, port string) *Server {
	return &Server{
		Session: s,
		Hub:     hub,
		Port:    port,
	}
}

// Handler собирает все роуты
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))
	mux.HandleFunc("/results", enableCORS(s.handleResults))

	// Кнопки панели (GPIO0 / GPIO2 / GPIO32 на устройстве)
	mux.HandleFunc("POST /panel/{button}", enableCORS(s.handlePanel))

	debugHandler := NewDebugHandler(s.Session)
	debugHandler.RegisterRoutes(mux)

	return mux
}

// Run запускает HTTP сервер и останавливает его при отмене ctx.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.Port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Warn("HTTP shutdown failed")
		}
	}()

	logger.Log.Infof("💣 BlueBomb server running on :%s", s.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS обрабатывает подключение по WebSocket.
// Адрес устройства берется из ?device=, иначе выдается новый.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	params := api.ConnectParams{Device: r.URL.Query().Get("device")}
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	addr := domain.Address(params.Device)
	if addr == "" {
		addr = domain.Address(uuid.NewString())
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Error("Upgrade error")
		return
	}

	client := NewClient(s.Session, s.Hub, conn, addr)

	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(version.Info())
}

func (s *Server) handlePanel(w http.ResponseWriter, r *http.Request) {
	b, ok := session.ParseButton(r.PathValue("button"))
	if !ok {
		http.Error(w, "unknown button", http.StatusNotFound)
		return
	}

	accepted := s.Session.Press(b)
	logger.Log.WithFields(logrus.Fields{
		"button":   b.String(),
		"accepted": accepted,
	}).Debug("Panel button pressed")

	writeJSON(w, map[string]interface{}{
		"button":   b.String(),
		"accepted": accepted,
	})
}

// /results?limit=N - последние завершенные партии
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	if s.Results == nil {
		http.Error(w, "results store disabled", http.StatusNotFound)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	results, err := s.Results.Recent(r.Context(), limit)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to list results")
		http.Error(w, "failed to list results", http.StatusInternalServerError)
		return
	}
	writeJSON(w, results)
}
