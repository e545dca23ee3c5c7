package main

import (
	"context"
	"log"

	"github.com/saeidalz13/zk-battleship/db"
	"github.com/saeidalz13/zk-battleship/db/sqlc"
	"github.com/saeidalz13/zk-battleship/game"
	"github.com/saeidalz13/zk-battleship/internal/config"
	mb "github.com/saeidalz13/zk-battleship/models/battleship"
	"github.com/saeidalz13/zk-battleship/zk"
	"github.com/saeidalz13/zk-battleship/zk/local"
	"github.com/saeidalz13/zk-battleship/zk/snark"
)

// Sets up the proving keys and plays one committed turn per player on a
// sample fleet to check them end to end.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalln(err)
	}

	var oracle zk.ProofOracle
	switch cfg.ProofBackend {
	case config.BackendSnark:
		oracle = snark.New(snark.NewKeyStore(cfg.KeysDir))
	default:
		oracle = local.New()
	}
	log.Printf("stage: %s, proof backend: %s\n", cfg.Stage, cfg.ProofBackend)

	var auditor game.Auditor
	if cfg.DatabaseURL != "" {
		conn := db.MustConnectToDb(cfg.DatabaseURL, cfg.MigrationURL)
		defer conn.Close()
		auditor = sqlc.NewDbManager(conn).Audit
	}

	bgm, err := game.NewBattleshipGameManager(oracle, auditor)
	if err != nil {
		log.Fatalln(err)
	}
	for circuit, vk := range bgm.Keys() {
		log.Printf("verification key %s v%d: %d bytes\n", circuit, vk.Version, len(vk.Data))
	}

	if err := selfCheck(bgm); err != nil {
		log.Fatalln("self check failed:", err)
	}
	log.Println("self check passed")
}

func selfCheck(bgm *game.BattleshipGameManager) error {
	g := bgm.CreateGame()
	defer bgm.TerminateGame(g.Uuid)

	host := g.CreateHostPlayer()
	join := g.CreateJoinPlayer()
	for _, p := range g.GetPlayers() {
		for _, ship := range sampleFleet() {
			if err := g.PlaceShip(p.Uuid, ship); err != nil {
				return err
			}
		}
	}

	ctx := context.Background()
	if err := g.Commit(ctx); err != nil {
		return err
	}
	log.Printf("host board, commitment %s:\n%s", host.BoardProof().Commitment, host.Board())

	res, err := g.Attack(ctx, host.Uuid, mb.NewPosition(2, 1))
	if err != nil {
		return err
	}
	log.Printf("host fired at (2,1): hit=%t\n", res.Hit)

	res, err = g.Attack(ctx, join.Uuid, mb.NewPosition(0, 0))
	if err != nil {
		return err
	}
	log.Printf("join fired at (0,0): hit=%t\n", res.Hit)
	return nil
}

func sampleFleet() []mb.Ship {
	return []mb.Ship{
		mb.NewCarrier(mb.NewPosition(2, 1), mb.Vertical),
		mb.NewBattleship(mb.NewPosition(5, 0), mb.Horizontal),
		mb.NewCruiser(mb.NewPosition(2, 7), mb.Horizontal),
		mb.NewSubmarine(mb.NewPosition(8, 2), mb.Vertical),
		mb.NewDestroyer(mb.NewPosition(7, 8), mb.Vertical),
	}
}
