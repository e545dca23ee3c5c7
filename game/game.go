// Package game plays zero-knowledge battleship between two in-process
// players: boards are committed with a validateBoard proof and every shot
// is answered with a hitOrMiss proof the attacker verifies.
package game

import (
	"context"
	"errors"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	cerr "github.com/saeidalz13/zk-battleship/internal/error"
	mb "github.com/saeidalz13/zk-battleship/models/battleship"
	"github.com/saeidalz13/zk-battleship/zk"
)

type GameState uint8

const (
	GameStatePlacing GameState = iota
	GameStateInProgress
	GameStateFinished
	GameStateTerminated
)

func (s GameState) String() string {
	switch s {
	case GameStatePlacing:
		return "placing"
	case GameStateInProgress:
		return "in progress"
	case GameStateFinished:
		return "finished"
	default:
		return "terminated"
	}
}

// Auditor keeps a record of every proof exchanged in a game.
type Auditor interface {
	RecordBoardProof(ctx context.Context, gameUuid, playerUuid string, proof zk.BoardProof) error
	RecordTurnProof(ctx context.Context, gameUuid, attackerUuid, defenderUuid string, proof zk.TurnProof) error
}

// AttackResult is what the attacker learns from one verified shot.
type AttackResult struct {
	Hit      bool
	Hits     int
	IsWinner bool
	Proof    zk.TurnProof
}

type Game struct {
	mu sync.Mutex

	Uuid       string
	HostPlayer *Player
	JoinPlayer *Player
	Players    map[string]*Player

	state     GameState
	keys      map[zk.CircuitID]zk.VerificationKey
	validate  *zk.ValidateBoardProtocol
	hitOrMiss *zk.HitOrMissProtocol
	auditor   Auditor
}

func newGame(gameUuid string, oracle zk.ProofOracle, keys map[zk.CircuitID]zk.VerificationKey, auditor Auditor) *Game {
	return &Game{
		Uuid:      gameUuid,
		Players:   make(map[string]*Player, 2),
		state:     GameStatePlacing,
		keys:      keys,
		validate:  zk.NewValidateBoardProtocol(oracle),
		hitOrMiss: zk.NewHitOrMissProtocol(oracle),
		auditor:   auditor,
	}
}

func (g *Game) State() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// returns a slice of players in the order of host then join.
func (g *Game) GetPlayers() []*Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.players()
}

func (g *Game) FindPlayer(playerUuid string) (*Player, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.findPlayer(playerUuid)
}

// players and findPlayer expect g.mu to be held.
func (g *Game) players() []*Player {
	return []*Player{g.HostPlayer, g.JoinPlayer}
}

func (g *Game) findPlayer(playerUuid string) (*Player, error) {
	player, prs := g.Players[playerUuid]
	if !prs {
		return nil, cerr.ErrPlayerNotExist(playerUuid)
	}
	return player, nil
}

func (g *Game) CreateHostPlayer() *Player {
	g.mu.Lock()
	defer g.mu.Unlock()

	hostPlayer := NewPlayer(true, true)
	g.HostPlayer = hostPlayer
	g.Players[hostPlayer.Uuid] = hostPlayer
	return hostPlayer
}

func (g *Game) CreateJoinPlayer() *Player {
	g.mu.Lock()
	defer g.mu.Unlock()

	joinPlayer := NewPlayer(false, false)
	g.JoinPlayer = joinPlayer
	g.Players[joinPlayer.Uuid] = joinPlayer
	return joinPlayer
}

func (g *Game) opponent(p *Player) *Player {
	if p.IsHost {
		return g.JoinPlayer
	}
	return g.HostPlayer
}

// PlaceShip adds a ship to the player's board. Placement closes once the
// boards are committed.
func (g *Game) PlaceShip(playerUuid string, ship mb.Ship) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != GameStatePlacing {
		return cerr.ErrGameAlreadyStarted(g.Uuid)
	}
	player, err := g.findPlayer(playerUuid)
	if err != nil {
		return err
	}
	return player.board.AddShip(ship)
}

// Commit proves both boards concurrently, then has each player verify the
// other's proof and keep the attested commitment. A proof that does not
// verify terminates the game.
func (g *Game) Commit(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != GameStatePlacing {
		return cerr.ErrGameAlreadyStarted(g.Uuid)
	}
	if g.HostPlayer == nil || g.JoinPlayer == nil {
		return cerr.ErrGameNotFull(g.Uuid)
	}

	players := g.players()
	proofs := make([]zk.BoardProof, len(players))

	eg, _ := errgroup.WithContext(ctx)
	for i, p := range players {
		i, p := i, p
		eg.Go(func() error {
			proof, err := g.validate.Run(p.board.Ships())
			if err != nil {
				return err
			}
			proofs[i] = proof
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for i, p := range players {
		p.boardProof = proofs[i]
	}

	for _, p := range players {
		opponent := g.opponent(p)
		commitment, err := g.validate.Verify(opponent.boardProof.Proof, g.keys[zk.CircuitValidateBoard])
		if err != nil {
			g.terminate()
			return err
		}
		p.opponentCommitment = commitment
	}

	for _, p := range players {
		g.audit(func() error {
			return g.auditor.RecordBoardProof(ctx, g.Uuid, p.Uuid, p.boardProof)
		})
	}

	g.state = GameStateInProgress
	log.Printf("game %s: boards committed\n", g.Uuid)
	return nil
}

// Attack fires at target on behalf of the attacker. Rule violations, such as
// a replayed target, leave the game and the turn untouched so the attacker
// can pick another cell. A commitment mismatch or a proof that fails to
// verify terminates the game.
func (g *Game) Attack(ctx context.Context, attackerUuid string, target mb.Position) (AttackResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.state {
	case GameStatePlacing:
		return AttackResult{}, cerr.ErrGameNotStarted(g.Uuid)
	case GameStateFinished, GameStateTerminated:
		return AttackResult{}, cerr.ErrGameFinished(g.Uuid)
	}

	attacker, err := g.findPlayer(attackerUuid)
	if err != nil {
		return AttackResult{}, err
	}
	if !attacker.IsTurn {
		return AttackResult{}, cerr.ErrNotPlayerTurn(attackerUuid)
	}
	defender := g.opponent(attacker)

	in := attacker.turnInput(target)
	turnProof, err := g.hitOrMiss.Run(in, defender.board)
	if err != nil {
		if errors.Is(err, cerr.ErrCommitmentMismatch) {
			g.terminate()
		}
		return AttackResult{}, err
	}

	hit, err := g.hitOrMiss.Verify(turnProof.Proof, g.keys[zk.CircuitHitOrMiss], in)
	if err != nil {
		g.terminate()
		return AttackResult{}, err
	}

	attacker.foldTarget(target, hit)
	defender.queriesServed++
	g.audit(func() error {
		return g.auditor.RecordTurnProof(ctx, g.Uuid, attacker.Uuid, defender.Uuid, turnProof)
	})

	if attacker.IsWinner() {
		attacker.MatchStatus = PlayerMatchStatusWon
		defender.MatchStatus = PlayerMatchStatusLost
		g.state = GameStateFinished
		log.Printf("game %s: player %s won\n", g.Uuid, attacker.Uuid)
	} else {
		attacker.IsTurn = false
		defender.IsTurn = true
	}

	return AttackResult{
		Hit:      hit,
		Hits:     attacker.Hits,
		IsWinner: attacker.IsWinner(),
		Proof:    turnProof,
	}, nil
}

func (g *Game) terminate() {
	g.state = GameStateTerminated
	log.Printf("game %s: terminated\n", g.Uuid)
}

// audit failures are logged; the game does not depend on its record.
func (g *Game) audit(record func() error) {
	if g.auditor == nil {
		return
	}
	if err := record(); err != nil {
		log.Printf("game %s: audit: %v\n", g.Uuid, err)
	}
}
