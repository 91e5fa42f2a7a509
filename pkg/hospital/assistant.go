package hospital

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// assistantService implements AssistantService
type assistantService struct {
	client    *Client
	sessionID string
}

func newAssistantService(client *Client) *assistantService {
	return &assistantService{
		client:    client,
		sessionID: uuid.NewString(),
	}
}

// SessionID returns the chat session messages are sent under
func (s *assistantService) SessionID() string {
	return s.sessionID
}

func (s *assistantService) params(content string) (*SendMessageParams, error) {
	if strings.TrimSpace(content) == "" {
		return nil, &ValidationError{Field: "content", Message: "is required"}
	}
	return &SendMessageParams{Content: content, SessionID: s.sessionID}, nil
}

// History retrieves the messages of a chat session; "" means this client's session
func (s *assistantService) History(ctx context.Context, sessionID string) ([]*Message, error) {
	if sessionID == "" {
		sessionID = s.sessionID
	}

	messages, err := s.client.backend.ChatHistory(ctx, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get chat history")
	}
	return messages, nil
}

// SendMessage sends a user message and returns the assistant reply
func (s *assistantService) SendMessage(ctx context.Context, content string) (*Message, error) {
	params, err := s.params(content)
	if err != nil {
		return nil, err
	}

	reply, err := s.client.backend.SendMessage(ctx, params)
	if err != nil {
		return nil, errors.Wrap(err, "failed to send message")
	}
	return reply, nil
}

// SendMessageStreaming fetches the complete reply, then replays it through
// handlers. A failed fetch reaches OnError only; OnStart is not called.
func (s *assistantService) SendMessageStreaming(ctx context.Context, content string, handlers *StreamHandlers) (*Message, error) {
	params, err := s.params(content)
	if err != nil {
		handlers.fail(err)
		return nil, err
	}

	reply, err := s.client.backend.StreamMessage(ctx, params)
	if err != nil {
		err = errors.Wrap(err, "failed to stream message")
		handlers.fail(err)
		return nil, err
	}

	if err := s.client.replayer.Replay(ctx, reply, handlers); err != nil {
		return reply, err
	}
	return reply, nil
}
