package game

import (
	"github.com/google/uuid"

	mb "github.com/saeidalz13/zk-battleship/models/battleship"
	"github.com/saeidalz13/zk-battleship/zk"
)

type PlayerPhase uint8

const (
	PlayerPhasePlacing PlayerPhase = iota
	PlayerPhaseFinalized
	// at least one query served against the board
	PlayerPhaseQueried
)

const (
	PlayerMatchStatusLost      = -1
	PlayerMatchStatusUndefined = 0
	PlayerMatchStatusWon       = 1
)

// Player keeps its own board private. Everything it knows about the
// opponent is the verified commitment and the cells it already queried.
type Player struct {
	Uuid        string
	IsTurn      bool
	IsHost      bool
	MatchStatus int
	Hits        int

	board              *mb.Board
	queriesServed      int
	boardProof         zk.BoardProof
	previousHits       mb.Mask
	opponentCommitment mb.Commitment
}

func NewPlayer(isHost, isTurn bool) *Player {
	return &Player{
		Uuid:        uuid.NewString(),
		IsTurn:      isTurn,
		IsHost:      isHost,
		MatchStatus: PlayerMatchStatusUndefined,
		board:       mb.NewBoard(),
	}
}

func (p *Player) Board() *mb.Board {
	return p.board
}

func (p *Player) Phase() PlayerPhase {
	switch {
	case p.queriesServed > 0:
		return PlayerPhaseQueried
	case p.board.State() == mb.BoardStateFinalized:
		return PlayerPhaseFinalized
	default:
		return PlayerPhasePlacing
	}
}

func (p *Player) BoardProof() zk.BoardProof {
	return p.boardProof
}

// PreviousHits is every cell this player has queried on the opponent board.
func (p *Player) PreviousHits() mb.Mask {
	return p.previousHits
}

func (p *Player) OpponentCommitment() mb.Commitment {
	return p.opponentCommitment
}

func (p *Player) IsWinner() bool {
	return p.Hits == mb.FleetCells
}

// turnInput is the query this player sends for target.
func (p *Player) turnInput(target mb.Position) zk.TurnInput {
	return zk.TurnInput{
		Target:          target,
		PreviousHits:    p.previousHits,
		BoardCommitment: p.opponentCommitment,
	}
}

// foldTarget records a verified query. Only verified targets reach here, so
// they are always on the grid.
func (p *Player) foldTarget(target mb.Position, hit bool) {
	p.previousHits, _ = p.previousHits.With(target)
	if hit {
		p.Hits++
	}
}
