package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// Options configures a GameService. Zero values fall back to defaults.
type Options struct {
	DefaultDifficulty model.TierMode
	Rand              model.Rand
	Now               func() time.Time
}

type GameService struct {
	gameManager       *GameManager
	defaultDifficulty model.TierMode
	rnd               *lockedRand
	now               func() time.Time
}

func NewGameService(gameManager *GameManager, opts Options) *GameService {
	if opts.DefaultDifficulty == "" {
		opts.DefaultDifficulty = model.TierCaptures
	}
	if opts.Rand == nil {
		opts.Rand = model.NewTimeSeededRand()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &GameService{
		gameManager:       gameManager,
		defaultDifficulty: opts.DefaultDifficulty,
		rnd:               &lockedRand{r: opts.Rand},
		now:               opts.Now,
	}
}

// lockedRand shares one source between sessions.
type lockedRand struct {
	mu sync.Mutex
	r  model.Rand
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

func (gs *GameService) normalize(opts GameOptions) (GameOptions, error) {
	mode, err := ParseGameMode(string(opts.Mode))
	if err != nil {
		return GameOptions{}, err
	}
	opts.Mode = mode

	if opts.Difficulty == "" {
		opts.Difficulty = gs.defaultDifficulty
	}
	if opts.Difficulty, err = model.ParseTierMode(string(opts.Difficulty)); err != nil {
		return GameOptions{}, err
	}

	switch {
	case mode == ModeTwoPlayer:
		opts.ComputerColor = ""
	case opts.ComputerColor == "":
		opts.ComputerColor = model.PlayerColorBlack
	case opts.ComputerColor != model.PlayerColorWhite && opts.ComputerColor != model.PlayerColorBlack:
		return GameOptions{}, fmt.Errorf("%w: %q", ErrInvalidColor, opts.ComputerColor)
	}
	return opts, nil
}

// CreateGame opens a new game. When the computer has white it makes the
// first move before the game is returned.
func (gs *GameService) CreateGame(opts GameOptions) (GameView, error) {
	opts, err := gs.normalize(opts)
	if err != nil {
		return GameView{}, err
	}

	s := newSession(uuid.New().String(), opts, gs.now)
	if err := gs.gameManager.AddGame(s); err != nil {
		return GameView{}, fmt.Errorf("failed to create game: %w", err)
	}
	log.Infof("game %s created: mode=%s difficulty=%s (%d hosted)", s.ID, opts.Mode, opts.Difficulty, gs.gameManager.Count())

	return gs.update(s, func() error {
		return gs.replyIfComputerTurn(s)
	})
}

func (gs *GameService) DeleteGame(gameID string) error {
	s, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	gs.gameManager.RemoveGame(gameID)
	s.connections.closeAll()
	log.Infof("game %s deleted", gameID)
	return nil
}

func (gs *GameService) HasGame(gameID string) bool {
	_, err := gs.gameManager.GetGame(gameID)
	return err == nil
}

func (gs *GameService) GetGameState(gameID string) (GameView, error) {
	s, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return GameView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(), nil
}

func (gs *GameService) LegalDestinations(gameID string, from model.Position) ([]model.Position, error) {
	s, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.LegalDestinations(from)
}

// MakeMove plays a human move. Against the computer the reply is played
// straight after, so the returned view is the human's turn again unless the
// game ended.
func (gs *GameService) MakeMove(gameID string, from, to model.Position) (GameView, error) {
	s, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return GameView{}, err
	}
	return gs.update(s, func() error {
		if s.isComputerTurn() {
			return &model.MoveError{From: from, To: to, Err: model.ErrNotYourTurn}
		}
		if err := s.game.MakeMove(from, to); err != nil {
			return err
		}
		s.syncClocks()
		log.Debugf("game %s: %s-%s", s.ID, from, to)
		return gs.replyIfComputerTurn(s)
	})
}

// ComputerMove has the computer play the side to move. Against the computer
// that must be the computer's own side; in a two player game it plays for
// whoever is to move.
func (gs *GameService) ComputerMove(gameID string) (GameView, error) {
	s, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return GameView{}, err
	}
	return gs.update(s, func() error {
		if s.game.Status().IsTerminal() {
			return model.ErrGameOver
		}
		if s.Options.Mode == ModeComputer && !s.isComputerTurn() {
			return ErrNotComputerTurn
		}
		return gs.playComputer(s)
	})
}

func (gs *GameService) Navigate(gameID string, index int) (GameView, error) {
	s, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return GameView{}, err
	}
	return gs.update(s, func() error {
		if err := s.game.NavigateTo(index); err != nil {
			return err
		}
		s.syncClocks()
		return nil
	})
}

func (gs *GameService) Restart(gameID string) (GameView, error) {
	s, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return GameView{}, err
	}
	return gs.update(s, func() error {
		s.reset()
		log.Infof("game %s restarted", s.ID)
		return gs.replyIfComputerTurn(s)
	})
}

// update runs fn under the session lock and pushes the resulting view to
// every watcher. Nothing is pushed when fn fails.
func (gs *GameService) update(s *Session, fn func() error) (GameView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(); err != nil {
		return GameView{}, err
	}
	v := s.view()
	gs.broadcast(s, v)
	return v, nil
}

func (gs *GameService) replyIfComputerTurn(s *Session) error {
	if !s.isComputerTurn() {
		return nil
	}
	return gs.playComputer(s)
}

func (gs *GameService) playComputer(s *Session) error {
	color := s.game.ToMove()
	move, ok := s.game.SelectHeuristicMove(color, s.Options.Difficulty, gs.rnd)
	if !ok {
		return model.ErrGameOver
	}
	if err := s.game.Execute(move.From, move.To); err != nil {
		return fmt.Errorf("computer move %s-%s: %w", move.From, move.To, err)
	}
	s.syncClocks()
	log.Debugf("game %s: computer (%s) played %s-%s", s.ID, color, move.From, move.To)
	return nil
}

func (gs *GameService) broadcast(s *Session, v GameView) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, v)
	if err != nil {
		log.Errorf("game %s: failed to marshal state: %v", s.ID, err)
		return
	}
	s.connections.Broadcast(msg)
}

// RegisterConnection adds conn as a watcher of the game and sends it the
// current state. The returned id unregisters it.
func (gs *GameService) RegisterConnection(gameID string, conn Conn) (string, error) {
	s, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return "", err
	}
	connID := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.connections.Add(connID, conn)
	msg, err := ws.NewMessage(ws.MessageTypeGameState, s.view())
	if err != nil {
		s.connections.Remove(connID)
		return "", err
	}
	if err := s.connections.Send(connID, msg); err != nil {
		return "", err
	}
	log.Infof("game %s: connection %s registered", gameID, connID)
	return connID, nil
}

func (gs *GameService) UnregisterConnection(gameID, connID string) {
	s, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	s.connections.Remove(connID)
	log.Infof("game %s: connection %s unregistered", gameID, connID)
}

// SendError reports err to a single connection.
func (gs *GameService) SendError(gameID, connID string, err error) {
	s, lookupErr := gs.gameManager.GetGame(gameID)
	if lookupErr != nil {
		return
	}
	msg, marshalErr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
	if marshalErr != nil {
		return
	}
	if sendErr := s.connections.Send(connID, msg); sendErr != nil {
		log.Warnf("game %s: failed to send error to %s: %v", gameID, connID, sendErr)
	}
}
