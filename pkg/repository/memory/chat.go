package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

type chatRepository struct {
	mu       sync.RWMutex
	sessions map[string]*model.ChatSession
	messages map[string][]*model.ChatMessage
}

func newChatRepository() *chatRepository {
	return &chatRepository{
		sessions: make(map[string]*model.ChatSession),
		messages: make(map[string][]*model.ChatMessage),
	}
}

func copyChatSession(s *model.ChatSession) *model.ChatSession {
	c := *s
	return &c
}

func copyChatMessage(m *model.ChatMessage) *model.ChatMessage {
	c := *m
	return &c
}

func (r *chatRepository) CreateSession(ctx context.Context, session *model.ChatSession) (*model.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyChatSession(session)
	created.ID = uuid.Must(uuid.NewV7()).String()
	created.IsActive = true
	created.CreatedAt = now
	created.UpdatedAt = now

	r.sessions[created.ID] = created
	return copyChatSession(created), nil
}

func (r *chatRepository) GetSession(ctx context.Context, userID, id string) (*model.ChatSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.sessions[id]
	if !exists || s.UserID != userID {
		return nil, goerr.Wrap(types.ErrNotFound, "chat session not found", goerr.V("id", id))
	}
	return copyChatSession(s), nil
}

func (r *chatRepository) ListSessions(ctx context.Context, userID string) ([]*model.ChatSessionSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make([]*model.ChatSessionSummary, 0)
	for _, s := range r.sessions {
		if s.UserID != userID {
			continue
		}
		sessions = append(sessions, &model.ChatSessionSummary{
			ChatSession:  *copyChatSession(s),
			MessageCount: len(r.messages[s.ID]),
		})
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})
	return sessions, nil
}

func (r *chatRepository) DeleteSession(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, exists := r.sessions[id]
	if !exists || s.UserID != userID {
		return goerr.Wrap(types.ErrNotFound, "chat session not found", goerr.V("id", id))
	}

	delete(r.sessions, id)
	delete(r.messages, id)
	return nil
}

func (r *chatRepository) AppendMessage(ctx context.Context, msg *model.ChatMessage) (*model.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, exists := r.sessions[msg.SessionID]
	if !exists || s.UserID != msg.UserID {
		return nil, goerr.Wrap(types.ErrNotFound, "chat session not found", goerr.V("session_id", msg.SessionID))
	}

	now := time.Now().UTC()
	created := copyChatMessage(msg)
	created.ID = uuid.Must(uuid.NewV7()).String()
	created.CreatedAt = now

	r.messages[msg.SessionID] = append(r.messages[msg.SessionID], created)
	s.UpdatedAt = now
	return copyChatMessage(created), nil
}

func (r *chatRepository) ListMessages(ctx context.Context, userID, sessionID string) ([]*model.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.sessions[sessionID]
	if !exists || s.UserID != userID {
		return nil, goerr.Wrap(types.ErrNotFound, "chat session not found", goerr.V("id", sessionID))
	}

	messages := make([]*model.ChatMessage, 0, len(r.messages[sessionID]))
	for _, m := range r.messages[sessionID] {
		messages = append(messages, copyChatMessage(m))
	}
	return messages, nil
}

type transcriptionRepository struct {
	mu             sync.Mutex
	transcriptions map[string]*model.Transcription
}

func newTranscriptionRepository() *transcriptionRepository {
	return &transcriptionRepository{
		transcriptions: make(map[string]*model.Transcription),
	}
}

func (r *transcriptionRepository) Create(ctx context.Context, tr *model.Transcription) (*model.Transcription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := *tr
	created.ID = uuid.Must(uuid.NewV7()).String()
	created.CreatedAt = time.Now().UTC()

	r.transcriptions[created.ID] = &created
	result := created
	return &result, nil
}
