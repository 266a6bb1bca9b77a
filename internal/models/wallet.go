package models

type Token string

const (
	TokenFTN Token = "FTN"
	TokenLBR Token = "LBR"
)

func (t Token) Valid() bool {
	return t == TokenFTN || t == TokenLBR
}

type Balances struct {
	FTN int64 `json:"ftnBalance"`
	LBR int64 `json:"lbrBalance"`
}

// Add returns b shifted by the given deltas.
func (b Balances) Add(ftnDelta, lbrDelta int64) Balances {
	return Balances{FTN: b.FTN + ftnDelta, LBR: b.LBR + lbrDelta}
}

type WalletResponse struct {
	UserID     int64 `json:"userId"`
	FTNBalance int64 `json:"ftnBalance"`
	LBRBalance int64 `json:"lbrBalance"`
}
