package interfaces

import (
	"context"

	"github.com/gemledger-lab/gemledger/pkg/domain/model"
)

// ChatRepository defines data access for chat sessions and their messages
type ChatRepository interface {
	CreateSession(ctx context.Context, session *model.ChatSession) (*model.ChatSession, error)
	GetSession(ctx context.Context, userID, id string) (*model.ChatSession, error)
	// ListSessions returns the user's sessions with message counts, most
	// recently updated first
	ListSessions(ctx context.Context, userID string) ([]*model.ChatSessionSummary, error)
	// DeleteSession removes the session and all of its messages
	DeleteSession(ctx context.Context, userID, id string) error

	// AppendMessage stores a message and bumps the session's updated_at
	AppendMessage(ctx context.Context, msg *model.ChatMessage) (*model.ChatMessage, error)
	// ListMessages returns the session's messages in chronological order
	ListMessages(ctx context.Context, userID, sessionID string) ([]*model.ChatMessage, error)
}

// TranscriptionRepository stores voice transcription results
type TranscriptionRepository interface {
	Create(ctx context.Context, tr *model.Transcription) (*model.Transcription, error)
}
