package models

type Color string

const (
	ColorViolet Color = "violet"
	ColorBlack  Color = "black"
	ColorBlue   Color = "blue"
)

type Bet struct {
	Amount int64
	Token  Token
	Color  Color
}

type SpinRequest struct {
	UserID    int64  `json:"userId" binding:"required"`
	BetAmount int64  `json:"betAmount" binding:"required,gt=0"`
	BetToken  string `json:"betToken" binding:"required"`
	BetColor  string `json:"betColor" binding:"required"`
}

func (r SpinRequest) Bet() Bet {
	return Bet{
		Amount: r.BetAmount,
		Token:  Token(r.BetToken),
		Color:  Color(r.BetColor),
	}
}

type SpinResult struct {
	Result          Outcome     `json:"result"`
	ResultColor     Color       `json:"resultColor"`
	FTNDelta        int64       `json:"ftnDelta"`
	LBRDelta        int64       `json:"lbrDelta"`
	UpdatedBalances Balances    `json:"updatedBalances"`
	Transaction     Transaction `json:"transaction"`
}
