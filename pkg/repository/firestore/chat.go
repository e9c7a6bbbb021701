package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

type chatRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newChatRepository(client *firestore.Client) *chatRepository {
	return &chatRepository{client: client}
}

func (r *chatRepository) sessions() string {
	return collectionName(r.collectionPrefix, "chat_sessions")
}

func (r *chatRepository) messages() string {
	return collectionName(r.collectionPrefix, "chat_messages")
}

func (r *chatRepository) CreateSession(ctx context.Context, session *model.ChatSession) (*model.ChatSession, error) {
	now := time.Now().UTC()
	created := *session
	created.ID = uuid.Must(uuid.NewV7()).String()
	created.IsActive = true
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.client.Collection(r.sessions()).Doc(created.ID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create chat session", goerr.V("id", created.ID))
	}
	return &created, nil
}

func (r *chatRepository) GetSession(ctx context.Context, userID, id string) (*model.ChatSession, error) {
	doc, err := r.client.Collection(r.sessions()).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(types.ErrNotFound, "chat session not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get chat session", goerr.V("id", id))
	}

	var session model.ChatSession
	if err := doc.DataTo(&session); err != nil {
		return nil, goerr.Wrap(err, "failed to decode chat session", goerr.V("id", id))
	}
	if session.UserID != userID {
		return nil, goerr.Wrap(types.ErrNotFound, "chat session not found", goerr.V("id", id))
	}
	return &session, nil
}

func (r *chatRepository) ListSessions(ctx context.Context, userID string) ([]*model.ChatSessionSummary, error) {
	iter := r.client.Collection(r.sessions()).
		Where("user_id", "==", userID).
		OrderBy("updated_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	summaries := make([]*model.ChatSessionSummary, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list chat sessions", goerr.V("user_id", userID))
		}
		var session model.ChatSession
		if err := doc.DataTo(&session); err != nil {
			return nil, goerr.Wrap(err, "failed to decode chat session", goerr.V("doc", doc.Ref.ID))
		}

		count, err := r.countMessages(ctx, session.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, &model.ChatSessionSummary{
			ChatSession:  session,
			MessageCount: count,
		})
	}
	return summaries, nil
}

func (r *chatRepository) countMessages(ctx context.Context, sessionID string) (int, error) {
	docs, err := r.client.Collection(r.messages()).
		Where("session_id", "==", sessionID).
		Select().
		Documents(ctx).
		GetAll()
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count chat messages", goerr.V("session_id", sessionID))
	}
	return len(docs), nil
}

func (r *chatRepository) DeleteSession(ctx context.Context, userID, id string) error {
	if _, err := r.GetSession(ctx, userID, id); err != nil {
		return err
	}

	docs, err := r.client.Collection(r.messages()).
		Where("session_id", "==", id).
		Select().
		Documents(ctx).
		GetAll()
	if err != nil {
		return goerr.Wrap(err, "failed to list chat messages for deletion", goerr.V("session_id", id))
	}

	batch := r.client.BulkWriter(ctx)
	for _, doc := range docs {
		if _, err := batch.Delete(doc.Ref); err != nil {
			return goerr.Wrap(err, "failed to delete chat message", goerr.V("doc", doc.Ref.ID))
		}
	}
	if _, err := batch.Delete(r.client.Collection(r.sessions()).Doc(id)); err != nil {
		return goerr.Wrap(err, "failed to delete chat session", goerr.V("id", id))
	}
	batch.End()
	return nil
}

func (r *chatRepository) AppendMessage(ctx context.Context, msg *model.ChatMessage) (*model.ChatMessage, error) {
	now := time.Now().UTC()
	created := *msg
	created.ID = uuid.Must(uuid.NewV7()).String()
	created.CreatedAt = now

	if _, err := r.client.Collection(r.messages()).Doc(created.ID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to append chat message", goerr.V("session_id", created.SessionID))
	}
	if _, err := r.client.Collection(r.sessions()).Doc(created.SessionID).Update(ctx, []firestore.Update{
		{Path: "updated_at", Value: now},
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to touch chat session", goerr.V("session_id", created.SessionID))
	}
	return &created, nil
}

func (r *chatRepository) ListMessages(ctx context.Context, userID, sessionID string) ([]*model.ChatMessage, error) {
	if _, err := r.GetSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}

	iter := r.client.Collection(r.messages()).
		Where("session_id", "==", sessionID).
		OrderBy("created_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	msgs := make([]*model.ChatMessage, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list chat messages", goerr.V("session_id", sessionID))
		}
		var msg model.ChatMessage
		if err := doc.DataTo(&msg); err != nil {
			return nil, goerr.Wrap(err, "failed to decode chat message", goerr.V("doc", doc.Ref.ID))
		}
		msgs = append(msgs, &msg)
	}
	return msgs, nil
}

type transcriptionRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newTranscriptionRepository(client *firestore.Client) *transcriptionRepository {
	return &transcriptionRepository{client: client}
}

func (r *transcriptionRepository) collection() string {
	return collectionName(r.collectionPrefix, "transcriptions")
}

func (r *transcriptionRepository) Create(ctx context.Context, tr *model.Transcription) (*model.Transcription, error) {
	created := *tr
	created.ID = uuid.Must(uuid.NewV7()).String()
	created.CreatedAt = time.Now().UTC()

	if _, err := r.client.Collection(r.collection()).Doc(created.ID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create transcription", goerr.V("id", created.ID))
	}
	return &created, nil
}
