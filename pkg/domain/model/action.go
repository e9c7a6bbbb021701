package model

import (
	"time"

	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

// Action represents a proposed AI-initiated operation awaiting user
// confirmation before a real side effect occurs. The owner is the only user
// allowed to confirm it.
type Action struct {
	ID            string             `json:"id" firestore:"id"`
	UserID        string             `json:"user_id" firestore:"user_id"`
	ActionType    types.ActionType   `json:"action_type" firestore:"action_type"`
	ExtractedData map[string]any     `json:"extracted_data" firestore:"extracted_data"`
	Status        types.ActionStatus `json:"status" firestore:"status"`
	EntityID      string             `json:"entity_id,omitempty" firestore:"entity_id"`
	ErrorMessage  string             `json:"error_message,omitempty" firestore:"error_message"`
	CreatedAt     time.Time          `json:"created_at" firestore:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" firestore:"updated_at"`
	ExecutedAt    *time.Time         `json:"executed_at,omitempty" firestore:"executed_at"`
}

// ActionResult is the normalized outcome of an executor dispatch
type ActionResult struct {
	Success  bool   `json:"success"`
	EntityID string `json:"entityId,omitempty"`
	Message  string `json:"message,omitempty"`
}
