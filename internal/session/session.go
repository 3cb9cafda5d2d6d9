package session

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/HoriaMercan/PM-project/internal/domain"
	"github.com/HoriaMercan/PM-project/internal/engine"
	"github.com/HoriaMercan/PM-project/internal/queue"
	"github.com/HoriaMercan/PM-project/pkg/api"
	"github.com/HoriaMercan/PM-project/pkg/logger"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Publisher доставляет снимки устройствам (network.Broadcaster).
type Publisher interface {
	SendTo(addr domain.Address, msg api.ServerResponse)
	Broadcast(msg api.ServerResponse)
}

// ResultStore сохраняет итоги завершенных партий.
type ResultStore interface {
	Save(ctx context.Context, result domain.GameResult) error
}

// ReplaySaver сохраняет записи партий.
type ReplaySaver interface {
	Save(session *domain.ReplaySession) error
}

// Display показывает зрительский снимок (консоль).
type Display interface {
	Show(state api.ServerResponse)
}

type presenceEvent struct {
	addr      domain.Address
	connected bool
}

// finish - итог партии, который видят клиенты
type finish struct {
	outcome string
	player  int
	message string
}

// Session владеет партией и всем, что вокруг нее: устройствами, меню,
// кнопками и записью. Все состояние меняет одна горутина (Run или Poll),
// снаружи приходят только сообщения, события подключения и нажатия.
type Session struct {
	cfg    Config
	random io.Reader
	queue  *queue.MessageQueue
	pub    Publisher

	// Необязательные зависимости. Задаются до Run.
	Results ResultStore
	Replays ReplaySaver
	Display Display

	presence chan presenceEvent
	panel    *panel
	now      func() time.Time
	log      *logrus.Entry

	// Состояние потребителя
	game     *engine.Game
	devices  Registry
	watchers []domain.Address
	menu     bool
	over     *finish
	record   *domain.ReplaySession
	moves    int
	cue      string
	logs     []api.LogEntry
	dirty    bool

	published atomic.Pointer[published]
}

// published - последний разосланный набор снимков
type published struct {
	spectator api.ServerResponse
	players   []api.ServerResponse
	devices   []domain.Device
}

// New создает сессию с первой партией. random - источник случайных байт
// для раскладов (engine.Config.RandomSource).
func New(cfg Config, random io.Reader, q *queue.MessageQueue, pub Publisher) (*Session, error) {
	s := &Session{
		cfg:      cfg,
		random:   random,
		queue:    q,
		pub:      pub,
		presence: make(chan presenceEvent, 16),
		now:      time.Now,
		log:      logger.For("session"),
		menu:     cfg.StartInMenu,
	}
	s.panel = newPanel(cfg.Debounce, func() time.Time { return s.now() })

	if err := s.newGame(); err != nil {
		return nil, err
	}
	s.publish()
	return s, nil
}

// --- Вход (любая горутина) ---

// Enqueue кладет сообщение устройства в очередь. false - очередь полна,
// сообщение отброшено.
func (s *Session) Enqueue(addr domain.Address, data []byte) bool {
	if s.queue.Push(addr, data) {
		return true
	}
	s.log.WithFields(logrus.Fields{
		"address":  addr,
		"queued":   s.queue.Len(),
		"capacity": s.queue.Cap(),
	}).Warn("Queue is full, message dropped")
	return false
}

// Connect сообщает о новом подключении.
func (s *Session) Connect(addr domain.Address) {
	s.presence <- presenceEvent{addr: addr, connected: true}
}

// Disconnect сообщает об отключении.
func (s *Session) Disconnect(addr domain.Address) {
	s.presence <- presenceEvent{addr: addr, connected: false}
}

// Press нажимает кнопку панели. false - нажатие отброшено дребезгом.
func (s *Session) Press(b Button) bool {
	return s.panel.press(b)
}

// --- Цикл ---

// Run опрашивает сессию до отмены ctx.
func (s *Session) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	s.log.WithField("interval", s.cfg.PollInterval).Info("Session loop started")
	for {
		select {
		case <-ctx.Done():
			s.saveUnfinished()
			s.log.Info("Session loop stopped")
			return ctx.Err()
		case <-ticker.C:
			s.Poll()
		}
	}
}

// Poll - одна итерация: события подключения, кнопки, одно сообщение из
// очереди и рассылка, если что-то изменилось.
func (s *Session) Poll() {
	s.drainPresence()
	s.applyPanel()

	if msg, ok := s.queue.Pop(); ok {
		if s.menu {
			s.handleMenuMessage(msg)
		} else {
			s.handleMessage(msg)
		}
	}

	if s.dirty {
		s.publish()
	}
}

func (s *Session) drainPresence() {
	for {
		select {
		case ev := <-s.presence:
			if ev.connected {
				s.onConnect(ev.addr)
			} else {
				s.onDisconnect(ev.addr)
			}
		default:
			return
		}
	}
}

// onConnect: адрес либо игрок, либо зритель, но не оба сразу.
// Повторное подключение того же адреса ничего не дублирует.
func (s *Session) onConnect(addr domain.Address) {
	idx, ok := s.devices.Add(addr)
	if !ok {
		if s.watcherIndex(addr) < 0 {
			s.watchers = append(s.watchers, addr)
			s.log.WithField("address", addr).Warn("Device list is full, connected as spectator")
		}
		s.dirty = true
		return
	}
	// Зритель, переподключившийся на свободное место, становится игроком
	if i := s.watcherIndex(addr); i >= 0 {
		s.watchers = append(s.watchers[:i], s.watchers[i+1:]...)
	}
	s.log.WithFields(logrus.Fields{
		"address": addr,
		"index":   idx,
		"name":    s.devices.Name(idx),
	}).Info("Device connected")
	s.addLog(fmt.Sprintf("%s connected", s.devices.Name(idx)), "INFO")
}

// onDisconnect: устройство удаляется, ход возвращается первому,
// показывается меню.
func (s *Session) onDisconnect(addr domain.Address) {
	if i := s.watcherIndex(addr); i >= 0 {
		s.watchers = append(s.watchers[:i], s.watchers[i+1:]...)
		return
	}

	idx := s.devices.Index(addr)
	if idx < 0 {
		return
	}
	name := s.devices.Name(idx)
	s.devices.Remove(addr)
	s.game.SetTurn(0)
	s.menu = true

	s.log.WithFields(logrus.Fields{
		"address": addr,
		"name":    name,
	}).Info("Device disconnected")
	s.addLog(fmt.Sprintf("%s disconnected", name), "INFO")
}

func (s *Session) watcherIndex(addr domain.Address) int {
	for i, w := range s.watchers {
		if w == addr {
			return i
		}
	}
	return -1
}

func (s *Session) applyPanel() {
	if s.panel.take(ButtonReset) {
		if err := s.newGame(); err != nil {
			s.log.WithError(err).Error("Reset failed, keeping current game")
		} else {
			s.menu = true
			s.log.Info("Game reset")
		}
	}

	if s.panel.take(ButtonMark) {
		s.markActive()
	}

	if s.panel.take(ButtonMenu) {
		s.menu = !s.menu
		s.dirty = true
		s.log.WithField("menu", s.menu).Debug("Menu toggled")
	}
}

func (s *Session) markActive() {
	if s.menu || s.over != nil {
		return
	}
	turn := s.game.Turn()
	pos := s.game.ActivePosition()
	s.game.MarkCurrentCell()
	s.record.Record(turn, domain.CommandMark)
	s.cue = api.CueMark
	s.dirty = true

	s.log.WithFields(logrus.Fields{
		"player": turn,
		"pos":    pos.String(),
		"marked": s.game.IsMarked(pos, turn),
	}).Debug("Mark toggled")
	s.checkWin(turn)
}

// --- Обработка сообщений ---

// handleMenuMessage: в меню принимается только смена имени.
func (s *Session) handleMenuMessage(msg queue.Message) {
	if len(msg.Data) == 0 || domain.ParseCommand(msg.Data[0]) != domain.CommandRename {
		return
	}
	s.rename(msg)
}

func (s *Session) handleMessage(msg queue.Message) {
	entry := s.log.WithField("address", msg.Sender)
	if len(msg.Data) == 0 {
		entry.Warn("Empty message ignored")
		return
	}

	player := s.devices.Index(msg.Sender)
	if player < 0 || player != s.game.Turn() {
		entry.WithField("turn", s.game.Turn()).Debug("Message not from current player, ignoring")
		return
	}

	cmd := domain.ParseCommand(msg.Data[0])
	if s.over != nil && cmd != domain.CommandRename {
		entry.WithField("cmd", cmd.String()).Debug("Game is over, command ignored")
		return
	}

	switch {
	case cmd.IsMovement():
		s.game.MovePlayer(cmd)
		s.record.Record(player, cmd)
		s.cue = api.CueMove
		s.dirty = true

	case cmd == domain.CommandShoot:
		s.shoot(player)

	case cmd == domain.CommandRename:
		s.rename(msg)

	default:
		entry.WithField("data", string(msg.Data)).Debug("Unknown command ignored")
	}
}

func (s *Session) shoot(player int) {
	pos := s.game.ActivePosition()
	outcome := s.game.MovePlayer(domain.CommandShoot)
	s.record.Record(player, domain.CommandShoot)
	s.moves++
	s.dirty = true

	s.log.WithFields(logrus.Fields{
		"player":   player,
		"pos":      pos.String(),
		"outcome":  outcome.String(),
		"revealed": s.game.RevealedCount(),
	}).Debug("Shot")

	if outcome == engine.Lost {
		s.endGame(domain.OutcomeLost, player)
		return
	}

	if n := s.devices.Len(); n > 0 {
		s.game.SetTurn((player + 1) % n)
	}
	s.checkWin(player)
}

func (s *Session) rename(msg queue.Message) {
	idx := s.devices.Index(msg.Sender)
	if idx < 0 {
		return
	}
	old := s.devices.Name(idx)
	s.devices.Rename(msg.Sender, msg.Data[1:])
	s.dirty = true

	s.log.WithFields(logrus.Fields{
		"address": msg.Sender,
		"old":     old,
		"name":    s.devices.Name(idx),
	}).Info("Device renamed")
}

// checkWin проверяет победу: сначала игрок, сделавший ход, потом остальные.
func (s *Session) checkWin(first int) {
	if s.over != nil {
		return
	}
	if s.game.Won(first) {
		s.endGame(domain.OutcomeWon, first)
		return
	}
	for p := 0; p < domain.PlayerCount; p++ {
		if p != first && s.game.Won(p) {
			s.endGame(domain.OutcomeWon, p)
			return
		}
	}
}

// --- Партия ---

func (s *Session) newGame() error {
	g, err := engine.NewGame(s.random)
	if err != nil {
		return err
	}
	bombs := g.Bombs()

	s.game = g
	s.over = nil
	s.moves = 0
	s.record = &domain.ReplaySession{
		Timestamp: s.now().Unix(),
		Bombs:     bombs.Positions(),
	}
	s.dirty = true

	s.log.WithField("bombs", bombs.Distinct()).Info("New game started")
	s.addLog("New game", "GAME")
	return nil
}

// endGame фиксирует итог, сохраняет результат и запись.
func (s *Session) endGame(outcome string, player int) {
	name := s.devices.Name(player)
	f := &finish{outcome: outcome, player: player}
	if outcome == domain.OutcomeLost {
		f.message = "Lose: " + name
		s.cue = api.CueLose
	} else {
		f.message = "Congrats " + name
		s.cue = api.CueWin
	}
	s.over = f
	s.dirty = true

	bombs := s.game.Bombs()
	result := domain.GameResult{
		ID:         uuid.NewString(),
		FinishedAt: s.now().UTC(),
		Outcome:    outcome,
		Player:     name,
		Opponent:   s.devices.Name(1 - player),
		Moves:      s.moves,
		Bombs:      bombs.Distinct(),
		Revealed:   s.game.RevealedCount(),
	}

	s.log.WithFields(logrus.Fields{
		"result":   result.ID,
		"outcome":  outcome,
		"player":   name,
		"moves":    result.Moves,
		"revealed": result.Revealed,
	}).Info("Game finished")
	s.addLog(f.message, "GAME")

	if s.Results != nil {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.StoreTimeout)
		if err := s.Results.Save(ctx, result); err != nil {
			s.log.WithError(err).Error("Failed to save game result")
		}
		cancel()
	}
	s.saveReplay()
}

func (s *Session) saveReplay() {
	if s.Replays == nil || s.record == nil {
		return
	}
	if err := s.Replays.Save(s.record); err != nil {
		s.log.WithError(err).Error("Failed to save replay")
		return
	}
	s.record = nil
}

// saveUnfinished сохраняет запись незаконченной партии при остановке.
func (s *Session) saveUnfinished() {
	if s.over == nil && s.record != nil && len(s.record.Actions) > 0 {
		s.saveReplay()
	}
}

func (s *Session) addLog(text, logType string) {
	now := s.now()
	s.logs = append(s.logs, api.LogEntry{
		ID:        fmt.Sprintf("%d", now.UnixNano()),
		Text:      text,
		Type:      logType,
		Timestamp: now.UnixMilli(),
	})
	s.dirty = true
}
