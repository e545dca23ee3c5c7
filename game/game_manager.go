package game

import (
	"sync"

	"github.com/google/uuid"

	cerr "github.com/saeidalz13/zk-battleship/internal/error"
	"github.com/saeidalz13/zk-battleship/zk"
)

type GameManager interface {
	CreateGame() *Game
	GetGame(gameUuid string) (*Game, error)
	TerminateGame(gameUuid string)
}

// BattleshipGameManager owns the games of one process. All of them share the
// oracle and the verification keys compiled at startup.
type BattleshipGameManager struct {
	games   map[string]*Game
	mu      sync.RWMutex
	oracle  zk.ProofOracle
	keys    map[zk.CircuitID]zk.VerificationKey
	auditor Auditor
}

var _ GameManager = (*BattleshipGameManager)(nil)

// NewBattleshipGameManager compiles every circuit on the oracle. auditor may
// be nil.
func NewBattleshipGameManager(oracle zk.ProofOracle, auditor Auditor) (*BattleshipGameManager, error) {
	keys, err := zk.CompileAll(oracle)
	if err != nil {
		return nil, err
	}

	return &BattleshipGameManager{
		games:   make(map[string]*Game, 10),
		oracle:  oracle,
		keys:    keys,
		auditor: auditor,
	}, nil
}

func (bgm *BattleshipGameManager) Keys() map[zk.CircuitID]zk.VerificationKey {
	return bgm.keys
}

func (bgm *BattleshipGameManager) CreateGame() *Game {
	gameUuid := uuid.NewString()
	game := newGame(gameUuid, bgm.oracle, bgm.keys, bgm.auditor)

	bgm.mu.Lock()
	bgm.games[gameUuid] = game
	bgm.mu.Unlock()

	return game
}

func (bgm *BattleshipGameManager) GetGame(gameUuid string) (*Game, error) {
	bgm.mu.RLock()
	game, prs := bgm.games[gameUuid]
	bgm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrGameNotExists(gameUuid)
	}

	return game, nil
}

func (bgm *BattleshipGameManager) TerminateGame(gameUuid string) {
	bgm.mu.Lock()
	defer bgm.mu.Unlock()
	delete(bgm.games, gameUuid)
}

func (bgm *BattleshipGameManager) NumGames() int {
	bgm.mu.RLock()
	defer bgm.mu.RUnlock()
	return len(bgm.games)
}
