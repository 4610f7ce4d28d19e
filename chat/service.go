// Package chat runs the conversation loop: store the user's prompt, ask the
// generation service for a website, recover the document and store the
// assistant's reply.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/fwojciec/pagesmith"
)

// Assistant replies stored for each outcome of a generation request.
const (
	ReplyCreated     = "I've created a website based on your request. You can view the preview or copy the HTML code."
	ReplyNoHTML      = "I've processed your request but couldn't generate a website preview."
	ReplyUpstream    = "Sorry, I encountered an error while processing your request. Please try again."
	ReplyUnavailable = "Sorry, I couldn't connect to the AI service. Please check your connection and try again."
)

// Outcome classifies how a turn ended.
type Outcome string

// Outcome constants for Turn.
const (
	OutcomeGreeting    Outcome = "greeting"
	OutcomeCreated     Outcome = "created"
	OutcomeNoHTML      Outcome = "no-html"
	OutcomeUpstream    Outcome = "upstream-error"
	OutcomeUnavailable Outcome = "unavailable"
)

// Turn is the result of one user prompt.
type Turn struct {
	User       *pagesmith.Message
	Assistant  *pagesmith.Message
	Outcome    Outcome
	Extraction pagesmith.Extraction

	// Err is the generation failure behind an upstream-error or
	// unavailable outcome.
	Err error
}

// Service coordinates conversations, generation and extraction.
type Service struct {
	Generator     pagesmith.Generator
	Extractor     pagesmith.HTMLExtractor
	Conversations pagesmith.ConversationService
	Messages      pagesmith.MessageService
	Logger        *slog.Logger

	// MaxIterations is sent with every generation request; zero uses
	// pagesmith.DefaultMaxIterations.
	MaxIterations int

	// Pick chooses a greeting reply index. Defaults to rand.IntN.
	Pick func(n int) int

	// RetryDelays are the waits between attempts while the generation
	// service is unreachable. Defaults to DefaultRetryDelays.
	RetryDelays []time.Duration
}

// NewService creates a Service with default extraction, greeting choice
// and retry delays.
func NewService(g pagesmith.Generator, convs pagesmith.ConversationService, msgs pagesmith.MessageService, logger *slog.Logger) *Service {
	return &Service{
		Generator:     g,
		Extractor:     pagesmith.Pipeline{},
		Conversations: convs,
		Messages:      msgs,
		Logger:        logger,
		Pick:          rand.IntN,
		RetryDelays:   DefaultRetryDelays(),
	}
}

// Start creates a conversation for userID titled after the first prompt.
func (s *Service) Start(ctx context.Context, userID, prompt string) (*pagesmith.Conversation, error) {
	conv := &pagesmith.Conversation{
		UserID: userID,
		Title:  pagesmith.TitleFromPrompt(prompt),
	}
	if err := s.Conversations.CreateConversation(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// Send stores content as a user message, produces the assistant's reply
// and stores it. Generation failures become assistant replies; only
// storage failures and cancellation are returned as errors.
func (s *Service) Send(ctx context.Context, conversationID, content string) (*Turn, error) {
	if strings.TrimSpace(content) == "" {
		return nil, pagesmith.Errorf(pagesmith.EINVALID, "message content required")
	}

	conv, err := s.Conversations.FindConversationByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	user := &pagesmith.Message{
		ConversationID: conv.ID,
		Role:           pagesmith.RoleUser,
		Content:        content,
	}
	if err := s.Messages.CreateMessage(ctx, user); err != nil {
		return nil, err
	}

	if conv.Title == pagesmith.DefaultTitle {
		title := pagesmith.TitleFromPrompt(content)
		if _, err := s.Conversations.UpdateConversation(ctx, conv.ID, pagesmith.ConversationUpdate{Title: &title}); err != nil {
			return nil, err
		}
	}

	turn := &Turn{User: user}
	assistant := &pagesmith.Message{
		ConversationID: conv.ID,
		Role:           pagesmith.RoleAssistant,
	}

	if pagesmith.IsGreeting(content) {
		turn.Outcome = OutcomeGreeting
		assistant.Content = pagesmith.GreetingResponse(s.pick())
	} else if err := s.generate(ctx, content, turn, assistant); err != nil {
		return nil, err
	}

	if err := s.Messages.CreateMessage(ctx, assistant); err != nil {
		return nil, err
	}
	turn.Assistant = assistant

	return turn, nil
}

// generate fills in the assistant reply. It only returns an error when ctx
// is done.
func (s *Service) generate(ctx context.Context, content string, turn *Turn, assistant *pagesmith.Message) error {
	req := pagesmith.GenerateRequest{
		Requirements:  content,
		MaxIterations: s.MaxIterations,
	}.WithDefaults()

	reply, err := GenerateWithRetry(ctx, s.Generator, req, s.retryDelays(), func(attempt int, err error) {
		s.logger().Warn("generation service unavailable, retrying", "attempt", attempt, "err", err)
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		turn.Err = err
		if pagesmith.ErrorCode(err) == pagesmith.EUPSTREAM {
			turn.Outcome = OutcomeUpstream
			assistant.Content = ReplyUpstream
		} else {
			turn.Outcome = OutcomeUnavailable
			assistant.Content = ReplyUnavailable
		}
		return nil
	}

	turn.Extraction = s.extractor().ExtractHTML(reply)
	if !turn.Extraction.Found() {
		turn.Outcome = OutcomeNoHTML
		assistant.Content = ReplyNoHTML
		return nil
	}

	turn.Outcome = OutcomeCreated
	assistant.Content = ReplyCreated
	assistant.HTMLCode = turn.Extraction.HTML
	return nil
}

func (s *Service) pick() func(int) int {
	if s.Pick != nil {
		return s.Pick
	}
	return rand.IntN
}

func (s *Service) retryDelays() []time.Duration {
	if s.RetryDelays != nil {
		return s.RetryDelays
	}
	return DefaultRetryDelays()
}

func (s *Service) extractor() pagesmith.HTMLExtractor {
	if s.Extractor != nil {
		return s.Extractor
	}
	return pagesmith.Pipeline{}
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.DiscardHandler)
}
