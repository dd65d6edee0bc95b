package scoringservice

import (
	"context"

	scoringtypes "github.com/spicy-golf/scorekeeper/app/modules/scoring/domain"
	scoringdb "github.com/spicy-golf/scorekeeper/app/modules/scoring/infrastructure/repositories"
)

// FakeRepository is a programmable stub for the scoringdb.Repository
// interface. Game holds the snapshot GetGame serves; the Fn fields override
// individual methods when a test needs an error path.
type FakeRepository struct {
	trace []string

	Game *scoringtypes.Game

	GetGameFn    func(ctx context.Context, gameID string) (*scoringtypes.Game, error)
	CreateGameFn func(ctx context.Context, g *scoringtypes.Game) error
	SaveSpecFn   func(ctx context.Context, gameID string, spec []scoringtypes.Option) error
	SaveHoleFn   func(ctx context.Context, gameID string, hole *scoringtypes.GameHole) error
	SaveRoundFn  func(ctx context.Context, gameID string, round *scoringtypes.Round) error
}

func NewFakeRepository(g *scoringtypes.Game) *FakeRepository {
	return &FakeRepository{Game: g, trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRepository) GetGame(ctx context.Context, gameID string) (*scoringtypes.Game, error) {
	f.record("GetGame")
	if f.GetGameFn != nil {
		return f.GetGameFn(ctx, gameID)
	}
	if f.Game == nil || f.Game.ID != gameID {
		return nil, scoringdb.ErrGameNotFound
	}
	return f.Game, nil
}

func (f *FakeRepository) CreateGame(ctx context.Context, g *scoringtypes.Game) error {
	f.record("CreateGame")
	if f.CreateGameFn != nil {
		return f.CreateGameFn(ctx, g)
	}
	f.Game = g
	return nil
}

func (f *FakeRepository) SaveSpec(ctx context.Context, gameID string, spec []scoringtypes.Option) error {
	f.record("SaveSpec")
	if f.SaveSpecFn != nil {
		return f.SaveSpecFn(ctx, gameID, spec)
	}
	return nil
}

func (f *FakeRepository) SaveHole(ctx context.Context, gameID string, hole *scoringtypes.GameHole) error {
	f.record("SaveHole")
	if f.SaveHoleFn != nil {
		return f.SaveHoleFn(ctx, gameID, hole)
	}
	return nil
}

func (f *FakeRepository) SaveRound(ctx context.Context, gameID string, round *scoringtypes.Round) error {
	f.record("SaveRound")
	if f.SaveRoundFn != nil {
		return f.SaveRoundFn(ctx, gameID, round)
	}
	return nil
}

// Ensure the fake actually satisfies the interface
var _ scoringdb.Repository = (*FakeRepository)(nil)
