package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roulette-backend/internal/models"
)

func TestBetValidate(t *testing.T) {
	valid := models.Bet{Amount: 10, Token: models.TokenFTN, Color: models.ColorViolet}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		bet  models.Bet
	}{
		{"zero amount", models.Bet{Amount: 0, Token: models.TokenFTN, Color: models.ColorBlack}},
		{"negative amount", models.Bet{Amount: -5, Token: models.TokenLBR, Color: models.ColorBlack}},
		{"unknown token", models.Bet{Amount: 5, Token: "ETH", Color: models.ColorBlack}},
		{"lowercase token", models.Bet{Amount: 5, Token: "ftn", Color: models.ColorBlack}},
		{"missing color", models.Bet{Amount: 5, Token: models.TokenFTN}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.bet.Validate())
		})
	}
}

func TestPayout(t *testing.T) {
	tests := []struct {
		token   models.Token
		won     bool
		wantFTN int64
		wantLBR int64
	}{
		{models.TokenFTN, true, 25, 0},
		{models.TokenFTN, false, -25, 25},
		{models.TokenLBR, true, 25, 0},
		{models.TokenLBR, false, 0, -25},
	}

	for _, tt := range tests {
		t.Run(string(tt.token)+"/"+string(models.OutcomeOf(tt.won)), func(t *testing.T) {
			ftn, lbr := models.Payout(tt.token, tt.won, 25)
			assert.Equal(t, tt.wantFTN, ftn)
			assert.Equal(t, tt.wantLBR, lbr)
		})
	}
}

func TestUserBalanceOf(t *testing.T) {
	user := models.User{ID: 1, FTNBalance: 100, LBRBalance: 50}

	assert.Equal(t, int64(100), user.BalanceOf(models.TokenFTN))
	assert.Equal(t, int64(50), user.BalanceOf(models.TokenLBR))
	assert.Equal(t, int64(0), user.BalanceOf("XYZ"))
	assert.Equal(t, models.Balances{FTN: 110, LBR: 40}, user.Balances().Add(10, -10))
}

func TestSpinRequestBet(t *testing.T) {
	req := models.SpinRequest{UserID: 3, BetAmount: 7, BetToken: "LBR", BetColor: "blue"}

	assert.Equal(t, models.Bet{Amount: 7, Token: models.TokenLBR, Color: models.ColorBlue}, req.Bet())
}
