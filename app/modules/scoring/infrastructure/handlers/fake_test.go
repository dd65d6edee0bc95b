package scoringhandlers

import (
	"context"
	"fmt"

	scoringservice "github.com/spicy-golf/scorekeeper/app/modules/scoring/application"
	scoringtypes "github.com/spicy-golf/scorekeeper/app/modules/scoring/domain"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/infrastructure/eventbus"
)

// FakeService is a programmable Service double. Each operation records a
// trace entry and delegates to its Fn when set; otherwise it returns
// Result/Err.
type FakeService struct {
	trace []string

	Result scoringservice.GameOperationResult
	Err    error

	GetScoreboardFn func(ctx context.Context, gameID string) (scoringservice.GameOperationResult, error)
	SetScoreFn      func(ctx context.Context, gameID, playerID string, hole, gross int) (scoringservice.GameOperationResult, error)
}

func NewFakeService(result scoringservice.GameOperationResult) *FakeService {
	return &FakeService{Result: result}
}

// Trace returns the operations invoked, in order.
func (f *FakeService) Trace() []string {
	return append([]string(nil), f.trace...)
}

func (f *FakeService) record(format string, args ...any) {
	f.trace = append(f.trace, fmt.Sprintf(format, args...))
}

func (f *FakeService) CreateGame(ctx context.Context, g *scoringtypes.Game) (scoringservice.GameOperationResult, error) {
	f.record("CreateGame(%s)", g.ID)
	return f.Result, f.Err
}

func (f *FakeService) GetScoreboard(ctx context.Context, gameID string) (scoringservice.GameOperationResult, error) {
	f.record("GetScoreboard(%s)", gameID)
	if f.GetScoreboardFn != nil {
		return f.GetScoreboardFn(ctx, gameID)
	}
	return f.Result, f.Err
}

func (f *FakeService) SetScore(ctx context.Context, gameID, playerID string, hole, gross int) (scoringservice.GameOperationResult, error) {
	f.record("SetScore(%s,%s,%d,%d)", gameID, playerID, hole, gross)
	if f.SetScoreFn != nil {
		return f.SetScoreFn(ctx, gameID, playerID, hole, gross)
	}
	return f.Result, f.Err
}

func (f *FakeService) ClearScore(ctx context.Context, gameID, playerID string, hole int) (scoringservice.GameOperationResult, error) {
	f.record("ClearScore(%s,%s,%d)", gameID, playerID, hole)
	return f.Result, f.Err
}

func (f *FakeService) TogglePlayerJunk(ctx context.Context, gameID string, hole int, teamID, playerID, junkName string, on bool) (scoringservice.GameOperationResult, error) {
	f.record("TogglePlayerJunk(%s,%d,%s,%s,%s,%t)", gameID, hole, teamID, playerID, junkName, on)
	return f.Result, f.Err
}

func (f *FakeService) ToggleTeamMultiplier(ctx context.Context, gameID string, hole int, teamID, name string, on bool) (scoringservice.GameOperationResult, error) {
	f.record("ToggleTeamMultiplier(%s,%d,%s,%s,%t)", gameID, hole, teamID, name, on)
	return f.Result, f.Err
}

func (f *FakeService) SetCustomMultiplier(ctx context.Context, gameID string, hole int, teamID string, value float64) (scoringservice.GameOperationResult, error) {
	f.record("SetCustomMultiplier(%s,%d,%s,%g)", gameID, hole, teamID, value)
	return f.Result, f.Err
}

func (f *FakeService) RecordTeeFlip(ctx context.Context, gameID string, hole int, teamID, playerID string, declined bool) (scoringservice.GameOperationResult, error) {
	f.record("RecordTeeFlip(%s,%d,%s,%s,%t)", gameID, hole, teamID, playerID, declined)
	return f.Result, f.Err
}

func (f *FakeService) SetHoleOption(ctx context.Context, gameID string, hole int, option scoringtypes.Option) (scoringservice.GameOperationResult, error) {
	f.record("SetHoleOption(%s,%d,%s)", gameID, hole, option.Name())
	return f.Result, f.Err
}

func (f *FakeService) ClearHoleOption(ctx context.Context, gameID string, hole int, optionName string) (scoringservice.GameOperationResult, error) {
	f.record("ClearHoleOption(%s,%d,%s)", gameID, hole, optionName)
	return f.Result, f.Err
}

func (f *FakeService) SetGameOption(ctx context.Context, gameID, optionName, value string) (scoringservice.GameOperationResult, error) {
	f.record("SetGameOption(%s,%s,%s)", gameID, optionName, value)
	return f.Result, f.Err
}

func (f *FakeService) ResetSpec(ctx context.Context, gameID string) (scoringservice.GameOperationResult, error) {
	f.record("ResetSpec(%s)", gameID)
	return f.Result, f.Err
}

var _ scoringservice.Service = (*FakeService)(nil)

// FakeBus records published scoreboard events.
type FakeBus struct {
	Events     []eventbus.ScoreboardUpdatedEvent
	PublishErr error
}

func (f *FakeBus) PublishScoreboardUpdated(ctx context.Context, event eventbus.ScoreboardUpdatedEvent) error {
	f.Events = append(f.Events, event)
	return f.PublishErr
}

func (f *FakeBus) Close() error { return nil }

var _ eventbus.EventBus = (*FakeBus)(nil)
