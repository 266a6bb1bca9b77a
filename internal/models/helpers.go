package models

import "fmt"

func (b Bet) Validate() error {
	if b.Amount <= 0 {
		return fmt.Errorf("bet amount must be positive")
	}
	if !b.Token.Valid() {
		return fmt.Errorf("invalid bet token: %q", b.Token)
	}
	if b.Color == "" {
		return fmt.Errorf("bet color is required")
	}

	return nil
}

// Payout returns the balance deltas for a resolved bet.
//
//	FTN win  -> +amount FTN
//	FTN loss -> -amount FTN, +amount LBR
//	LBR win  -> +amount FTN
//	LBR loss -> -amount LBR
func Payout(token Token, won bool, amount int64) (ftnDelta, lbrDelta int64) {
	switch token {
	case TokenFTN:
		if won {
			return amount, 0
		}
		return -amount, amount
	case TokenLBR:
		if won {
			return amount, 0
		}
		return 0, -amount
	}

	return 0, 0
}

func OutcomeOf(won bool) Outcome {
	if won {
		return OutcomeWin
	}
	return OutcomeLoss
}
