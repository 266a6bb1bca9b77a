package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"roulette-backend/internal/models"
	"roulette-backend/internal/services"
)

const maxTransactionLimit = 100

type UserHandler struct {
	ledger services.Ledger
}

func NewUserHandler(ledger services.Ledger) *UserHandler {
	return &UserHandler{ledger: ledger}
}

// ConnectWallet returns the user owning the wallet address, creating one
// with the starting balances on first sight.
func (h *UserHandler) ConnectWallet(c *gin.Context) {
	address := strings.TrimSpace(c.Param("address"))
	if address == "" {
		writeError(c, http.StatusBadRequest, CodeValidation, "Wallet address is required")
		return
	}

	user, created := h.ledger.FindOrCreateUser(models.NewUser{
		Username:      address,
		WalletAddress: address,
	})
	if created {
		log.WithFields(log.Fields{
			"user_id": user.ID,
			"address": address,
		}).Info("Created user for wallet")
	}

	c.JSON(http.StatusOK, models.WalletResponse{
		UserID:     user.ID,
		FTNBalance: user.FTNBalance,
		LBRBalance: user.LBRBalance,
	})
}

func (h *UserHandler) GetBalance(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	user, found := h.ledger.GetUser(userID)
	if !found {
		writeError(c, http.StatusNotFound, CodeNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, user.Balances())
}

func (h *UserHandler) GetTransactions(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	limit := services.DefaultTransactionLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(c, http.StatusBadRequest, CodeValidation, "limit must be a positive integer")
			return
		}
		limit = min(n, maxTransactionLimit)
	}

	c.JSON(http.StatusOK, h.ledger.GetUserTransactions(userID, limit))
}

func parseUserID(c *gin.Context) (int64, bool) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, CodeValidation, "Invalid user ID")
		return 0, false
	}

	return userID, true
}
