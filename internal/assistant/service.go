package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/hiremote/portal/internal/models"
	"github.com/hiremote/portal/internal/pos"
)

var (
	// ErrEmptyMessage rejects a blank question before any external call.
	ErrEmptyMessage = errors.New("message is required")
	// ErrUnavailable is the generic surface for any call-level fault so
	// internal detail never leaks to the caller.
	ErrUnavailable = errors.New("assistant temporarily unavailable")
)

const (
	defaultHistoryWindow = 6

	groundingPrompt = "You are the Hiremote store assistant. Answer only from the provided " +
		"store context. If the context does not contain the information needed, say that " +
		"the data is not available instead of guessing."

	fallbackReply = "I could not produce an answer from the store context. Please try again."
)

type Completer interface {
	Complete(ctx context.Context, messages []Message, metadata map[string]string) (string, error)
}

type SummaryLoader interface {
	LoadSummary(storeID string) pos.Summary
}

type SubmissionFetcher interface {
	Recent(store string, limit int) ([]models.Submission, error)
}

type Service struct {
	submissions   SubmissionFetcher
	analytics     SummaryLoader
	chat          Completer
	historyWindow int
}

// NewService wires the assistant. chat may be nil when no chat
// credentials are configured; answers then degrade to ErrUnavailable.
func NewService(submissions SubmissionFetcher, analytics SummaryLoader, chat Completer, historyWindow int) *Service {
	if historyWindow <= 0 {
		historyWindow = defaultHistoryWindow
	}
	return &Service{
		submissions:   submissions,
		analytics:     analytics,
		chat:          chat,
		historyWindow: historyWindow,
	}
}

type Answer struct {
	Reply     string
	PosStatus string
}

// Answer builds the store context, assembles the ordered conversation
// and performs a single blocking chat call. No retries.
func (service *Service) Answer(ctx context.Context, user models.User, message string, history []Message) (Answer, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Answer{}, ErrEmptyMessage
	}

	storeContext, err := service.BuildStoreContext(user)
	if err != nil {
		return Answer{}, fmt.Errorf("build store context: %w", err)
	}

	if service.chat == nil {
		return Answer{}, ErrUnavailable
	}

	encodedContext, err := json.Marshal(storeContext)
	if err != nil {
		return Answer{}, fmt.Errorf("encode store context: %w", err)
	}

	filtered := filterHistory(history, service.historyWindow)
	conversation := make([]Message, 0, len(filtered)+3)
	conversation = append(conversation, Message{Role: "system", Content: groundingPrompt})
	conversation = append(conversation, Message{Role: "system", Content: "Store context:\n" + string(encodedContext)})
	conversation = append(conversation, filtered...)
	conversation = append(conversation, Message{Role: "user", Content: message})

	metadata := map[string]string{
		"store_id": user.StoreNumber,
		"user_id":  strconv.FormatUint(uint64(user.ID), 10),
		"trace_id": uuid.NewString(),
	}

	reply, err := service.chat.Complete(ctx, conversation, metadata)
	if err != nil {
		log.Printf("assistant: completion failed (trace %s): %v", metadata["trace_id"], err)
		return Answer{}, ErrUnavailable
	}
	if strings.TrimSpace(reply) == "" {
		reply = fallbackReply
	}

	return Answer{Reply: reply, PosStatus: storeContext.Pos.Status}, nil
}

// filterHistory drops malformed entries silently and keeps the last
// window well-formed ones.
func filterHistory(history []Message, window int) []Message {
	filtered := make([]Message, 0, len(history))
	for _, entry := range history {
		role := strings.TrimSpace(entry.Role)
		content := strings.TrimSpace(entry.Content)
		if role != "user" && role != "assistant" {
			continue
		}
		if content == "" {
			continue
		}
		filtered = append(filtered, Message{Role: role, Content: content})
	}
	if window > 0 && len(filtered) > window {
		filtered = filtered[len(filtered)-window:]
	}
	return filtered
}
