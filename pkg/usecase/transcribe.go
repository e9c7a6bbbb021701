package usecase

import (
	"context"
	"io"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
)

const (
	// MaxAudioSize is the upload limit Whisper accepts
	MaxAudioSize = 25 << 20
	// transcribeTimeout bounds one transcription call
	transcribeTimeout = 60 * time.Second
)

// TranscribeUseCase converts uploaded voice recordings to text and stores
// the result against the chat session
type TranscribeUseCase struct {
	repo        interfaces.Repository
	transcriber interfaces.Transcriber
}

func NewTranscribeUseCase(repo interfaces.Repository) *TranscribeUseCase {
	return &TranscribeUseCase{repo: repo}
}

func (uc *TranscribeUseCase) Transcribe(ctx context.Context, userID, sessionID string, audio io.Reader, size int64, filename, language string) (*model.Transcription, error) {
	if sessionID == "" {
		return nil, goerr.Wrap(types.ErrValidation, "sessionId is required")
	}
	if audio == nil || size == 0 {
		return nil, goerr.Wrap(types.ErrValidation, "audio file is required")
	}
	if size > MaxAudioSize {
		return nil, goerr.Wrap(types.ErrValidation, "audio file exceeds 25MB limit",
			goerr.V("size", size))
	}
	if uc.transcriber == nil {
		return nil, goerr.New("transcriber is not configured")
	}

	// Session ownership gates access before any audio leaves the process
	if _, err := uc.repo.Chat().GetSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, transcribeTimeout)
	defer cancel()

	result, err := uc.transcriber.Transcribe(ctx, audio, filename, language)
	if err != nil {
		return nil, err
	}

	result.UserID = userID
	result.SessionID = sessionID
	result.AudioSize = size
	result.AudioFormat = filename
	return uc.repo.Transcription().Create(ctx, result)
}
