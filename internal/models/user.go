package models

import "time"

type User struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	WalletAddress string `json:"walletAddress,omitempty"`

	FTNBalance int64 `json:"ftnBalance"`
	LBRBalance int64 `json:"lbrBalance"`

	CreatedAt time.Time `json:"createdAt"`
}

// NewUser carries the caller-supplied fields of a user. Id, balances and
// creation time are assigned by the ledger.
type NewUser struct {
	Username      string
	WalletAddress string
}

func (u User) Balances() Balances {
	return Balances{FTN: u.FTNBalance, LBR: u.LBRBalance}
}

// BalanceOf returns the balance held in the given token.
func (u User) BalanceOf(token Token) int64 {
	switch token {
	case TokenFTN:
		return u.FTNBalance
	case TokenLBR:
		return u.LBRBalance
	default:
		return 0
	}
}
