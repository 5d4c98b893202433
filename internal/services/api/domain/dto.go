// Package domain defines the control API transport types
package domain

import "shipmate/internal/core/actor"

// StatusOut is the live view of one actor
type StatusOut struct {
	ActorID      string             `json:"actor_id"`
	Paused       bool               `json:"paused"`
	Locks        actor.LockSnapshot `json:"locks"`
	Bunker       actor.Bunker       `json:"bunker"`
	Prices       actor.Prices       `json:"prices"`
	RepairCount  int                `json:"repair_count"`
	DrydockCount int                `json:"drydock_count"`
	FuelFailures int                `json:"fuel_failures"`
}

// DepartInput triggers a manual departure run. Empty vessel_ids means
// every eligible vessel in port
type DepartInput struct {
	VesselIDs []int64 `json:"vessel_ids"`
}

// MessageInput enqueues one outbound in-game message
type MessageInput struct {
	Recipient string `json:"recipient" validate:"required"`
	Subject   string `json:"subject" validate:"required,max=120"`
	Body      string `json:"body" validate:"required,max=4000"`
}

// MessageOut acknowledges an enqueued message
type MessageOut struct {
	Queued   bool `json:"queued"`
	QueueLen int  `json:"queue_len"`
}
