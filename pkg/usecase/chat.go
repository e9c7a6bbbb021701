package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/gemledger-lab/gemledger/pkg/agent/tool"
	"github.com/gemledger-lab/gemledger/pkg/agent/tool/shop"
	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
	"github.com/gemledger-lab/gemledger/pkg/utils/logging"
)

//go:embed prompt/chat_system.md
var chatSystemPromptTmpl string

var chatSystemPrompt = template.Must(template.New("chat_system").Parse(chatSystemPromptTmpl))

// maxChatMessageLength bounds a single user message
const maxChatMessageLength = 2000

// chatHistoryWindow is how many recent messages feed the system prompt
const chatHistoryWindow = 10

// ChatUseCase runs the AI assistant conversation: it persists the user
// message, executes the agent with the shop tools, and persists the reply.
type ChatUseCase struct {
	repo      interfaces.Repository
	llmClient gollem.LLMClient
}

func NewChatUseCase(repo interfaces.Repository) *ChatUseCase {
	return &ChatUseCase{repo: repo}
}

// ChatReply is the assistant's answer, with the proposal action ID when
// the agent filed one during this turn
type ChatReply struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	ActionID  string `json:"action_id,omitempty"`
}

func (uc *ChatUseCase) NewSession(ctx context.Context, userID, title string) (*model.ChatSession, error) {
	if title == "" {
		title = "New Chat"
	}
	return uc.repo.Chat().CreateSession(ctx, &model.ChatSession{
		UserID: userID,
		Title:  title,
	})
}

func (uc *ChatUseCase) ListSessions(ctx context.Context, userID string) ([]*model.ChatSessionSummary, error) {
	return uc.repo.Chat().ListSessions(ctx, userID)
}

func (uc *ChatUseCase) DeleteSession(ctx context.Context, userID, id string) error {
	return uc.repo.Chat().DeleteSession(ctx, userID, id)
}

// History returns the session's messages after verifying ownership
func (uc *ChatUseCase) History(ctx context.Context, userID, sessionID string) ([]*model.ChatMessage, error) {
	return uc.repo.Chat().ListMessages(ctx, userID, sessionID)
}

// SendMessage handles one chat turn. With no sessionID a new session is
// created.
func (uc *ChatUseCase) SendMessage(ctx context.Context, userID, sessionID, message string) (*ChatReply, error) {
	logger := logging.From(ctx)

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, goerr.Wrap(types.ErrValidation, "message is required")
	}
	if len(message) > maxChatMessageLength {
		return nil, goerr.Wrap(types.ErrValidation, "message too long",
			goerr.V("length", len(message)))
	}
	if uc.llmClient == nil {
		return nil, goerr.New("LLM client is not configured")
	}

	if sessionID == "" {
		session, err := uc.NewSession(ctx, userID, "")
		if err != nil {
			return nil, err
		}
		sessionID = session.ID
	} else if _, err := uc.repo.Chat().GetSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}

	history, err := uc.repo.Chat().ListMessages(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if len(history) > chatHistoryWindow {
		history = history[len(history)-chatHistoryWindow:]
	}

	if _, err := uc.repo.Chat().AppendMessage(ctx, &model.ChatMessage{
		SessionID: sessionID,
		UserID:    userID,
		Role:      types.ChatRoleUser,
		Content:   message,
	}); err != nil {
		return nil, err
	}

	systemPrompt, err := uc.buildSystemPrompt(history)
	if err != nil {
		return nil, err
	}

	// The proposal tool reports the action it filed; capture it so the
	// reply can link the confirmation UI to the action
	var proposedActionID string
	tools := shop.New(uc.repo, userID, sessionID,
		shop.WithProposalObserver(func(actionID string) {
			proposedActionID = actionID
		}),
	)
	agent := gollem.New(uc.llmClient,
		gollem.WithSystemPrompt(systemPrompt),
		gollem.WithTools(tools...),
		gollem.WithToolMiddleware(
			func(next gollem.ToolHandler) gollem.ToolHandler {
				return func(ctx context.Context, req *gollem.ToolExecRequest) (*gollem.ToolExecResponse, error) {
					logger.Debug("chat tool call", "tool", req.Tool.Name, "session_id", sessionID)
					resp, err := next(ctx, req)
					if resp != nil && resp.Error != nil {
						logger.Warn("chat tool failed", "tool", req.Tool.Name, "error", resp.Error.Error())
					}
					return resp, err
				}
			},
		),
	)

	ctx = tool.WithUpdate(ctx, func(ctx context.Context, msg string) {
		logging.From(ctx).Debug("chat tool progress", "message", msg, "session_id", sessionID)
	})

	resp, err := agent.Execute(ctx, gollem.Text(message))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to execute chat agent",
			goerr.V("session_id", sessionID))
	}

	reply := strings.Join(resp.Texts, "\n")
	if _, err := uc.repo.Chat().AppendMessage(ctx, &model.ChatMessage{
		SessionID: sessionID,
		UserID:    userID,
		Role:      types.ChatRoleAssistant,
		Content:   reply,
		ActionID:  proposedActionID,
	}); err != nil {
		return nil, err
	}

	return &ChatReply{
		SessionID: sessionID,
		Message:   reply,
		ActionID:  proposedActionID,
	}, nil
}

func (uc *ChatUseCase) buildSystemPrompt(history []*model.ChatMessage) (string, error) {
	type entry struct {
		Role    string
		Content string
	}
	entries := make([]entry, len(history))
	for i, msg := range history {
		entries[i] = entry{Role: string(msg.Role), Content: msg.Content}
	}

	var buf bytes.Buffer
	if err := chatSystemPrompt.Execute(&buf, map[string]any{"History": entries}); err != nil {
		return "", goerr.Wrap(err, "failed to render chat system prompt")
	}
	return buf.String(), nil
}
