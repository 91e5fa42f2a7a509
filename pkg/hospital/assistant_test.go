package hospital

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRuleTable_Match(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		input string
		want  []string
	}{
		{input: "最近胃部不适，经常反酸", want: []string{"消化科", "胃病"}},
		{input: "心慌胸闷", want: []string{"心内科", "心血管"}},
		{input: "骨折了", want: []string{"骨科", "关节"}},
		{input: "胃疼而且心慌", want: []string{"消化科", "胃病"}},
		{input: "头疼", want: []string{"综合医院"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, rules.Match(tt.input))
		})
	}
}

func TestRecommend(t *testing.T) {
	hospitals := []*Hospital{
		{ID: "1", Tags: []string{"综合医院"}},
		{ID: "2", Tags: []string{"骨科"}},
		{ID: "3", Tags: []string{"关节外科"}},
		{ID: "4", Tags: []string{"骨科", "关节"}},
		{ID: "5", Tags: []string{"骨科"}},
	}

	got := Recommend(hospitals, []string{"骨科", "关节"}, MaxRecommendations)
	assert.Equal(t, []string{"2", "3", "4"}, hospitalIDs(got))

	assert.Empty(t, Recommend(hospitals, []string{"眼科"}, MaxRecommendations))
}

func TestAssistantService_SendMessage(t *testing.T) {
	client := newFixtureClient(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{name: "stomach", content: "最近胃部不适，经常感觉胃痛和反酸", want: []string{"7"}},
		{name: "heart", content: "心跳很快", want: []string{"5"}},
		{name: "bones", content: "膝盖骨头疼", want: []string{"4", "6"}},
		{name: "fallback", content: "发烧咳嗽", want: []string{"1", "2", "7"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := client.Assistant.SendMessage(ctx, tt.content)
			require.NoError(t, err)
			assert.Equal(t, MessageTypeAssistant, reply.Type)
			assert.Equal(t, AssistantReply, reply.Content)
			assert.NotZero(t, reply.Timestamp)
			assert.Equal(t, tt.want, hospitalIDs(reply.Recommendations))
			assert.LessOrEqual(t, len(reply.Recommendations), MaxRecommendations)
		})
	}

	_, err := client.Assistant.SendMessage(ctx, "   ")
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestAssistantService_History(t *testing.T) {
	client := newFixtureClient(t)
	ctx := context.Background()

	history, err := client.Assistant.History(ctx, "")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, MessageTypeAssistant, history[0].Type)

	_, err = client.Assistant.SendMessage(ctx, "胃疼")
	require.NoError(t, err)

	history, err = client.Assistant.History(ctx, "")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, MessageTypeUser, history[1].Type)
	assert.Equal(t, "胃疼", history[1].Content)

	other, err := client.Assistant.History(ctx, "another-session")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

type streamRecorder struct {
	events []string
	text   strings.Builder
	ended  *Message
	err    error
}

func (r *streamRecorder) handlers() *StreamHandlers {
	return &StreamHandlers{
		OnStart: func() { r.events = append(r.events, "start") },
		OnText: func(chunk string) {
			r.events = append(r.events, "text")
			r.text.WriteString(chunk)
		},
		OnRecommendation: func(h *Hospital) { r.events = append(r.events, "rec:"+h.ID) },
		OnEnd: func(msg *Message) {
			r.events = append(r.events, "end")
			r.ended = msg
		},
		OnError: func(err error) {
			r.events = append(r.events, "error")
			r.err = err
		},
	}
}

func TestAssistantService_SendMessageStreaming(t *testing.T) {
	client := newFixtureClient(t)
	rec := &streamRecorder{}

	reply, err := client.Assistant.SendMessageStreaming(context.Background(), "骨折", rec.handlers())
	require.NoError(t, err)

	textEvents := len([]rune(AssistantReply))
	require.Len(t, rec.events, 1+textEvents+2+1)
	assert.Equal(t, "start", rec.events[0])
	for _, e := range rec.events[1 : 1+textEvents] {
		assert.Equal(t, "text", e)
	}
	assert.Equal(t, []string{"rec:4", "rec:6", "end"}, rec.events[1+textEvents:])
	assert.Equal(t, AssistantReply, rec.text.String())
	assert.Same(t, reply, rec.ended)
	assert.NoError(t, rec.err)
}

func TestAssistantService_SendMessageStreamingFetchFailure(t *testing.T) {
	client, backend := newMockClient(t, nil)
	backend.On("StreamMessage", mock.Anything, mock.Anything).
		Return(nil, NewRequestError(KindTransport, 500, "connection refused", nil))

	rec := &streamRecorder{}
	reply, err := client.Assistant.SendMessageStreaming(context.Background(), "胃疼", rec.handlers())

	require.Error(t, err)
	assert.Nil(t, reply)
	assert.Equal(t, []string{"error"}, rec.events)
	assert.True(t, errors.Is(rec.err, ErrTransport))
}

func TestAssistantService_SendsSessionID(t *testing.T) {
	client, backend := newMockClient(t, nil)
	backend.On("SendMessage", mock.Anything, mock.MatchedBy(func(p *SendMessageParams) bool {
		return p.Content == "胃疼" && p.SessionID == client.Assistant.SessionID()
	})).Return(&Message{ID: "m1", Type: MessageTypeAssistant, Content: AssistantReply}, nil)

	reply, err := client.Assistant.SendMessage(context.Background(), "胃疼")
	require.NoError(t, err)
	assert.Equal(t, "m1", reply.ID)
	assert.NotEmpty(t, client.Assistant.SessionID())
	backend.AssertExpectations(t)
}

func TestReplayer_Pacing(t *testing.T) {
	r := &Replayer{CharDelay: 5 * time.Millisecond, ItemDelay: 10 * time.Millisecond}
	msg := &Message{Content: "你好吗", Recommendations: []*Hospital{{ID: "1"}, {ID: "2"}}}
	rec := &streamRecorder{}

	start := time.Now()
	require.NoError(t, r.Replay(context.Background(), msg, rec.handlers()))

	// Two gaps between three runes plus one wait per recommendation
	assert.GreaterOrEqual(t, time.Since(start), 2*5*time.Millisecond+2*10*time.Millisecond)
	assert.Equal(t, []string{"start", "text", "text", "text", "rec:1", "rec:2", "end"}, rec.events)
}

func TestReplayer_ContextCancelled(t *testing.T) {
	r := &Replayer{CharDelay: time.Hour}
	msg := &Message{Content: "你好", Recommendations: []*Hospital{{ID: "1"}}}
	rec := &streamRecorder{}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := r.Replay(ctx, msg, rec.handlers())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"start", "text", "error"}, rec.events)
	assert.ErrorIs(t, rec.err, context.Canceled)
	assert.Nil(t, rec.ended)
}

func TestReplayer_NilHandlers(t *testing.T) {
	r := &Replayer{}
	msg := &Message{Content: "好", Recommendations: []*Hospital{{ID: "1"}}}

	assert.NoError(t, r.Replay(context.Background(), msg, nil))
	assert.NoError(t, r.Replay(context.Background(), msg, &StreamHandlers{}))
}
