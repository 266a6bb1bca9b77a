package models

import "time"

type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
)

type Transaction struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	BetAmount int64     `json:"betAmount"`
	BetToken  Token     `json:"betToken"`
	BetColor  Color     `json:"betColor"`
	Result    Outcome   `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

type NewTransaction struct {
	UserID    int64
	BetAmount int64
	BetToken  Token
	BetColor  Color
	Result    Outcome
	Timestamp time.Time
}
