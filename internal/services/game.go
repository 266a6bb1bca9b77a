package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"roulette-backend/internal/models"
)

// RouletteEngine resolves spins against a Ledger.
type RouletteEngine struct {
	ledger      Ledger
	wheel       *Wheel
	source      Source
	broadcaster Broadcaster
	maxBet      int64
	locks       *userLocks
}

type EngineOption func(*RouletteEngine)

func WithSource(src Source) EngineOption {
	return func(e *RouletteEngine) {
		e.source = src
	}
}

func WithBroadcaster(b Broadcaster) EngineOption {
	return func(e *RouletteEngine) {
		e.broadcaster = b
	}
}

// WithMaxBet caps a single bet. Zero disables the cap.
func WithMaxBet(limit int64) EngineOption {
	return func(e *RouletteEngine) {
		e.maxBet = limit
	}
}

func NewRouletteEngine(ledger Ledger, wheel *Wheel, opts ...EngineOption) *RouletteEngine {
	e := &RouletteEngine{
		ledger:      ledger,
		wheel:       wheel,
		source:      DefaultSource,
		broadcaster: noopBroadcaster{},
		locks:       newUserLocks(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *RouletteEngine) Wheel() *Wheel {
	return e.wheel
}

// SetBroadcaster replaces the broadcaster after construction. It must be
// called before the engine serves spins.
func (e *RouletteEngine) SetBroadcaster(b Broadcaster) {
	if b == nil {
		b = noopBroadcaster{}
	}
	e.broadcaster = b
}

func (e *RouletteEngine) ValidateBet(bet models.Bet) error {
	if err := bet.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBet, err)
	}
	if !e.wheel.Supports(bet.Color) {
		return fmt.Errorf("%w: unsupported color %q (expected one of %v)", ErrInvalidBet, bet.Color, e.wheel.Colors())
	}
	if e.maxBet > 0 && bet.Amount > e.maxBet {
		return fmt.Errorf("%w: maximum bet is %d", ErrInvalidBet, e.maxBet)
	}

	return nil
}

// Spin validates the bet, draws one slot and settles the result on the
// ledger. The balance check and the balance update happen under the user's
// lock, so concurrent spins for the same user cannot overspend.
func (e *RouletteEngine) Spin(ctx context.Context, userID int64, bet models.Bet) (*models.SpinResult, error) {
	if err := e.ValidateBet(bet); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("spin: %w", err)
	}

	result, err := e.settle(userID, bet)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id":      userID,
		"bet_amount":   bet.Amount,
		"bet_token":    bet.Token,
		"bet_color":    bet.Color,
		"result_color": result.ResultColor,
		"result":       result.Result,
		"ftn_delta":    result.FTNDelta,
		"lbr_delta":    result.LBRDelta,
	}).Info("Spin resolved")

	e.broadcaster.BroadcastSpin(userID, result)

	return result, nil
}

func (e *RouletteEngine) settle(userID int64, bet models.Bet) (*models.SpinResult, error) {
	unlock := e.locks.Lock(userID)
	defer unlock()

	user, ok := e.ledger.GetUser(userID)
	if !ok {
		return nil, fmt.Errorf("spin for user %d: %w", userID, ErrUserNotFound)
	}

	if have := user.BalanceOf(bet.Token); have < bet.Amount {
		return nil, fmt.Errorf("%w: %s balance %d, bet %d", ErrInsufficientBalance, bet.Token, have, bet.Amount)
	}

	_, color, err := e.wheel.Draw(e.source)
	if err != nil {
		return nil, fmt.Errorf("spin for user %d: %w", userID, err)
	}

	won := color == bet.Color
	ftnDelta, lbrDelta := models.Payout(bet.Token, won, bet.Amount)

	updated, ok := e.ledger.UpdateUserBalance(userID, ftnDelta, lbrDelta)
	if !ok {
		return nil, fmt.Errorf("update balance for user %d: %w", userID, ErrUserNotFound)
	}

	tx := e.ledger.CreateTransaction(models.NewTransaction{
		UserID:    userID,
		BetAmount: bet.Amount,
		BetToken:  bet.Token,
		BetColor:  bet.Color,
		Result:    models.OutcomeOf(won),
	})

	return &models.SpinResult{
		Result:          tx.Result,
		ResultColor:     color,
		FTNDelta:        ftnDelta,
		LBRDelta:        lbrDelta,
		UpdatedBalances: updated.Balances(),
		Transaction:     tx,
	}, nil
}
