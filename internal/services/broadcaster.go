package services

import "roulette-backend/internal/models"

type Broadcaster interface {
	BroadcastSpin(userID int64, result *models.SpinResult)
}

type noopBroadcaster struct{}

func (noopBroadcaster) BroadcastSpin(int64, *models.SpinResult) {}
