package model

import (
	"time"

	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

// ChatSession groups the messages of one AI assistant conversation
type ChatSession struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"user_id" firestore:"user_id"`
	Title     string    `json:"title" firestore:"title"`
	IsActive  bool      `json:"is_active" firestore:"is_active"`
	CreatedAt time.Time `json:"created_at" firestore:"created_at"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updated_at"`
}

// ChatSessionSummary is a session with its message count, as listed by the
// sessions endpoint
type ChatSessionSummary struct {
	ChatSession
	MessageCount int `json:"message_count"`
}

// ChatMessage is a single message within a chat session
type ChatMessage struct {
	ID        string         `json:"id" firestore:"id"`
	SessionID string         `json:"session_id" firestore:"session_id"`
	UserID    string         `json:"user_id" firestore:"user_id"`
	Role      types.ChatRole `json:"role" firestore:"role"`
	Content   string         `json:"content" firestore:"content"`
	ActionID  string         `json:"action_id,omitempty" firestore:"action_id"`
	CreatedAt time.Time      `json:"created_at" firestore:"created_at"`
}

// Transcription is the stored result of one voice transcription request
type Transcription struct {
	ID               string    `json:"id" firestore:"id"`
	UserID           string    `json:"user_id" firestore:"user_id"`
	SessionID        string    `json:"session_id" firestore:"session_id"`
	AudioSize        int64     `json:"audio_size" firestore:"audio_size"`
	AudioFormat      string    `json:"audio_format" firestore:"audio_format"`
	Text             string    `json:"text" firestore:"text"`
	DetectedLanguage string    `json:"detected_language,omitempty" firestore:"detected_language"`
	Confidence       float64   `json:"confidence,omitempty" firestore:"confidence"`
	CreatedAt        time.Time `json:"created_at" firestore:"created_at"`
}
