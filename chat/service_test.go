package chat_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/pagesmith"
	"github.com/fwojciec/pagesmith/chat"
	"github.com/fwojciec/pagesmith/mock"
	"github.com/fwojciec/pagesmith/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = "<!DOCTYPE html><html><body><h1>Bakery</h1></body></html>"

func newService(t *testing.T, gen pagesmith.Generator) *chat.Service {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })

	s := chat.NewService(gen, sqlite.NewConversationService(db), sqlite.NewMessageService(db), nil)
	s.RetryDelays = []time.Duration{0, 0, 0}
	s.Pick = func(int) int { return 1 }
	return s
}

func replyWith(reply string, err error) *mock.Generator {
	return &mock.Generator{
		GenerateFn: func(context.Context, pagesmith.GenerateRequest) (string, error) {
			return reply, err
		},
	}
}

func TestService_Start(t *testing.T) {
	t.Parallel()

	s := newService(t, nil)
	conv, err := s.Start(context.Background(), "user-1", "  Build   me a bakery website with a menu and opening hours and a contact form please ")

	require.NoError(t, err)
	assert.NotEmpty(t, conv.ID)
	assert.Equal(t, "user-1", conv.UserID)
	assert.Equal(t, "Build me a bakery website with a menu and opening hours and", conv.Title)
}

func TestService_Send(t *testing.T) {
	t.Parallel()

	t.Run("stores document when reply contains HTML", func(t *testing.T) {
		t.Parallel()

		var got pagesmith.GenerateRequest
		gen := &mock.Generator{
			GenerateFn: func(_ context.Context, req pagesmith.GenerateRequest) (string, error) {
				got = req
				return "Here you go:\n```html\n" + page + "\n```", nil
			},
		}
		s := newService(t, gen)
		ctx := context.Background()
		conv, err := s.Start(ctx, "u", "bakery")
		require.NoError(t, err)

		turn, err := s.Send(ctx, conv.ID, "bakery site")

		require.NoError(t, err)
		assert.Equal(t, "bakery site", got.Requirements)
		assert.Equal(t, pagesmith.DefaultMaxIterations, got.MaxIterations)
		assert.Equal(t, chat.OutcomeCreated, turn.Outcome)
		assert.Equal(t, pagesmith.StrategyFenced, turn.Extraction.Strategy)
		assert.Equal(t, chat.ReplyCreated, turn.Assistant.Content)
		assert.Equal(t, page, turn.Assistant.HTMLCode)
		assert.Equal(t, sqlite.HashHTML(page), turn.Assistant.HTMLHash)
		assert.Equal(t, 0, turn.User.Position)
		assert.Equal(t, 1, turn.Assistant.Position)

		msgs, err := s.Messages.FindMessages(ctx, pagesmith.MessageFilter{ConversationID: &conv.ID})
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		assert.Equal(t, pagesmith.RoleUser, msgs[0].Role)
		assert.Equal(t, pagesmith.RoleAssistant, msgs[1].Role)
	})

	t.Run("reply without HTML", func(t *testing.T) {
		t.Parallel()

		s := newService(t, replyWith("I need more details.", nil))
		conv, err := s.Start(context.Background(), "u", "x")
		require.NoError(t, err)

		turn, err := s.Send(context.Background(), conv.ID, "make a site")

		require.NoError(t, err)
		assert.Equal(t, chat.OutcomeNoHTML, turn.Outcome)
		assert.Equal(t, chat.ReplyNoHTML, turn.Assistant.Content)
		assert.False(t, turn.Assistant.HasPreview())
		assert.NoError(t, turn.Err)
	})

	t.Run("upstream failure is reported distinctly", func(t *testing.T) {
		t.Parallel()

		upstream := pagesmith.Errorf(pagesmith.EUPSTREAM, "HTTP 500")
		s := newService(t, replyWith("", upstream))
		conv, err := s.Start(context.Background(), "u", "x")
		require.NoError(t, err)

		turn, err := s.Send(context.Background(), conv.ID, "make a site")

		require.NoError(t, err)
		assert.Equal(t, chat.OutcomeUpstream, turn.Outcome)
		assert.Equal(t, chat.ReplyUpstream, turn.Assistant.Content)
		assert.Equal(t, upstream, turn.Err)
	})

	t.Run("retries while unavailable then succeeds", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		gen := &mock.Generator{
			GenerateFn: func(context.Context, pagesmith.GenerateRequest) (string, error) {
				if calls.Add(1) < 3 {
					return "", pagesmith.Errorf(pagesmith.EUNAVAILABLE, "connection refused")
				}
				return page, nil
			},
		}
		s := newService(t, gen)
		conv, err := s.Start(context.Background(), "u", "x")
		require.NoError(t, err)

		turn, err := s.Send(context.Background(), conv.ID, "make a site")

		require.NoError(t, err)
		assert.Equal(t, int32(3), calls.Load())
		assert.Equal(t, chat.OutcomeCreated, turn.Outcome)
	})

	t.Run("gives up after all retries", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		gen := &mock.Generator{
			GenerateFn: func(context.Context, pagesmith.GenerateRequest) (string, error) {
				calls.Add(1)
				return "", pagesmith.Errorf(pagesmith.EUNAVAILABLE, "connection refused")
			},
		}
		s := newService(t, gen)
		conv, err := s.Start(context.Background(), "u", "x")
		require.NoError(t, err)

		turn, err := s.Send(context.Background(), conv.ID, "make a site")

		require.NoError(t, err)
		assert.Equal(t, int32(4), calls.Load())
		assert.Equal(t, chat.OutcomeUnavailable, turn.Outcome)
		assert.Equal(t, chat.ReplyUnavailable, turn.Assistant.Content)
	})

	t.Run("greeting skips generation", func(t *testing.T) {
		t.Parallel()

		gen := &mock.Generator{
			GenerateFn: func(context.Context, pagesmith.GenerateRequest) (string, error) {
				t.Fatal("generator should not be called")
				return "", nil
			},
		}
		s := newService(t, gen)
		conv, err := s.Start(context.Background(), "u", "hi")
		require.NoError(t, err)

		turn, err := s.Send(context.Background(), conv.ID, "Hello, there")

		require.NoError(t, err)
		assert.Equal(t, chat.OutcomeGreeting, turn.Outcome)
		assert.Equal(t, pagesmith.GreetingResponses[1], turn.Assistant.Content)
	})

	t.Run("default title is replaced by first prompt", func(t *testing.T) {
		t.Parallel()

		s := newService(t, replyWith("no html", nil))
		ctx := context.Background()
		conv, err := s.Start(ctx, "u", "")
		require.NoError(t, err)
		require.Equal(t, pagesmith.DefaultTitle, conv.Title)

		_, err = s.Send(ctx, conv.ID, "portfolio for a photographer")
		require.NoError(t, err)

		got, err := s.Conversations.FindConversationByID(ctx, conv.ID)
		require.NoError(t, err)
		assert.Equal(t, "portfolio for a photographer", got.Title)
	})

	t.Run("unknown conversation is ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		s := newService(t, replyWith(page, nil))
		_, err := s.Send(context.Background(), "missing", "make a site")

		assert.Equal(t, pagesmith.ENOTFOUND, pagesmith.ErrorCode(err))
	})

	t.Run("blank content is EINVALID", func(t *testing.T) {
		t.Parallel()

		s := newService(t, replyWith(page, nil))
		_, err := s.Send(context.Background(), "any", "   ")

		assert.Equal(t, pagesmith.EINVALID, pagesmith.ErrorCode(err))
	})

	t.Run("cancellation is returned and no reply stored", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		gen := &mock.Generator{
			GenerateFn: func(context.Context, pagesmith.GenerateRequest) (string, error) {
				cancel()
				return "", context.Canceled
			},
		}
		s := newService(t, gen)
		conv, err := s.Start(context.Background(), "u", "x")
		require.NoError(t, err)

		_, err = s.Send(ctx, conv.ID, "make a site")

		require.ErrorIs(t, err, context.Canceled)
		msgs, err := s.Messages.FindMessages(context.Background(), pagesmith.MessageFilter{ConversationID: &conv.ID})
		require.NoError(t, err)
		assert.Len(t, msgs, 1)
	})
}
