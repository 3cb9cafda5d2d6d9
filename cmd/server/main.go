package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HoriaMercan/PM-project/internal/domain"
	"github.com/HoriaMercan/PM-project/internal/engine"
	"github.com/HoriaMercan/PM-project/internal/infrastructure/storage"
	"github.com/HoriaMercan/PM-project/internal/network"
	"github.com/HoriaMercan/PM-project/internal/queue"
	"github.com/HoriaMercan/PM-project/internal/render"
	"github.com/HoriaMercan/PM-project/internal/server"
	"github.com/HoriaMercan/PM-project/internal/session"
	"github.com/HoriaMercan/PM-project/internal/version"
	"github.com/HoriaMercan/PM-project/pkg/api"
	"github.com/HoriaMercan/PM-project/pkg/logger"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

func init() {
	logger.Init()
}

// envOr возвращает переменную окружения или значение по умолчанию
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// 1. Парсинг конфигурации
	var (
		seed       int64
		port       string
		dbPath     string
		replayDir  string
		replayPath string
		startMenu  bool
		console    bool
		poll       time.Duration
	)
	flag.Int64Var(&seed, "seed", 0, "Bomb layout seed (0 for hardware randomness)")
	flag.StringVar(&port, "addr", envOr("BB_PORT", "8080"), "HTTP port")
	flag.StringVar(&dbPath, "db", os.Getenv("BB_DB_PATH"), "SQLite results file (empty disables)")
	flag.StringVar(&replayDir, "replays", os.Getenv("BB_REPLAY_DIR"), "Directory for .bbrp replays (empty disables)")
	flag.StringVar(&replayPath, "replay", "", "Path to .bbrp replay file to simulate")
	flag.BoolVar(&startMenu, "menu", true, "Start in menu mode")
	flag.BoolVar(&console, "console", false, "Render the board to stdout")
	flag.DurationVar(&poll, "poll", 10*time.Millisecond, "Queue poll interval")
	flag.Parse()

	logger.Log.Info("Starting BlueBomb...")
	logger.Log.Info(version.String())

	// РЕЖИМ РЕПЛЕЯ
	if replayPath != "" {
		logger.Log.Info("💿 Mode: Replay Simulation")
		if err := runReplay(replayPath); err != nil {
			logger.Log.WithError(err).Fatal("Replay failed")
		}
		return
	}

	cfg := engine.NewConfig()
	if seed != 0 {
		cfg.Seed = seed
		logger.Log.Infof("🎲 Using explicit seed: %d", seed)
	} else {
		logger.Log.Info("🎲 Using hardware randomness")
	}

	sessCfg := session.NewConfig()
	sessCfg.StartInMenu = startMenu
	sessCfg.PollInterval = poll

	// 2. Инициализация ядра
	hub := network.NewBroadcaster()
	sess, err := session.New(sessCfg, cfg.RandomSource(), queue.New(domain.QueueCapacity), hub)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to create session")
	}

	srv := server.New(sess, hub, port)

	if dbPath != "" {
		store, err := storage.OpenResultStore(dbPath)
		if err != nil {
			logger.Log.WithError(err).Fatal("Failed to open results store")
		}
		defer store.Close()
		sess.Results = store
		srv.Results = store
		logger.Log.WithField("path", dbPath).Info("Results store enabled")
	}

	if replayDir != "" {
		replays, err := storage.NewReplayService(replayDir)
		if err != nil {
			logger.Log.WithError(err).Fatal("Failed to init replays")
		}
		sess.Replays = replays
		logger.Log.WithField("dir", replayDir).Info("Replay recording enabled")
	}

	if console {
		// Очищать экран имеет смысл только в настоящем терминале
		sess.Display = render.NewConsole(os.Stdout, term.IsTerminal(int(os.Stdout.Fd())))
		// Логи мешают кадрам
		logger.SetOutput(os.Stderr)
	}

	// Graceful Shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		sess.Run(ctx)
	}()

	// 3. Запуск сервера
	if err := srv.Run(ctx); err != nil {
		logger.Log.WithError(err).Error("Server start error")
		stop()
	}

	<-done
	logger.Log.Info("Done.")
}

// runReplay проигрывает запись и печатает итоговое поле.
func runReplay(path string) error {
	rs := &storage.ReplayService{}
	rec, err := rs.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load replay: %w", err)
	}

	g, err := engine.Replay(rec)
	if err != nil {
		return err
	}

	logger.Log.WithFields(logrus.Fields{
		"actions":  len(rec.Actions),
		"revealed": g.RevealedCount(),
		"lost":     g.IsLost(),
		"won0":     g.Won(0),
		"won1":     g.Won(1),
	}).Info("Replay finished")

	fmt.Print(render.New(os.Stdout).Render(replayState(g)))
	return nil
}

// replayState - зрительский снимок партии без устройств: открытые клетки,
// бомбы целиком и пометки активного игрока.
func replayState(g *engine.Game) api.ServerResponse {
	state := api.ServerResponse{
		Type:         api.TypeUpdate,
		Viewer:       -1,
		ActivePlayer: g.Turn(),
		Grid:         &api.GridMeta{Width: domain.Width, Height: domain.Height},
	}
	if g.IsLost() {
		state.Type = api.TypeGameOver
		state.Message = fmt.Sprintf("Lose: player %d", g.Turn()+1)
	} else {
		for p := 0; p < domain.PlayerCount; p++ {
			if g.Won(p) {
				state.Type = api.TypeWon
				state.Message = fmt.Sprintf("Congrats player %d", p+1)
				break
			}
		}
	}

	for p := domain.Position(0); p < domain.CellCount; p++ {
		revealed := g.IsRevealed(p) || g.IsBomb(p)
		marked := g.IsMarked(p, g.Turn())
		if !revealed && !marked {
			continue
		}
		state.Cells = append(state.Cells, api.CellView{
			Pos:       int(p),
			Row:       p.Row(),
			Col:       p.Col(),
			Revealed:  revealed,
			Marked:    marked,
			Bomb:      g.IsBomb(p),
			Neighbors: g.NeighborBombs(p),
		})
	}
	return state
}
