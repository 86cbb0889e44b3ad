package chat

import (
	"context"
	"sync"
	"time"

	"github.com/suPer8Hu/devopstile/internal/ai"
	"github.com/suPer8Hu/devopstile/internal/assistant"
	"github.com/suPer8Hu/devopstile/internal/common"
	"go.uber.org/zap"
)

const defaultReplyDelay = time.Second

type Options struct {
	// Provider generates assistant replies. Defaults to the keyword mock.
	Provider ai.Provider
	// ReplyDelay is how long a reply takes to arrive. Zero means the
	// default of one second; use a negative value for no delay.
	ReplyDelay time.Duration
	Log        *zap.Logger
	Now        func() time.Time
}

// Store is the conversation state of one session: the history of
// conversations, the active one and the FAQ set shown next to it.
// All methods are safe for concurrent use.
type Store struct {
	provider ai.Provider
	delay    time.Duration
	log      *zap.Logger
	now      func() time.Time
	sched    *Scheduler

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	convs    map[string]*Conversation
	order    []string
	activeID string
	faqs     assistant.FaqSet
	closed   bool
}

// NewStore starts a session with one empty conversation.
func NewStore(opts Options) *Store {
	if opts.Provider == nil {
		opts.Provider = ai.NewKeywordProvider()
	}
	switch {
	case opts.ReplyDelay == 0:
		opts.ReplyDelay = defaultReplyDelay
	case opts.ReplyDelay < 0:
		opts.ReplyDelay = 0
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		provider: opts.Provider,
		delay:    opts.ReplyDelay,
		log:      opts.Log,
		now:      opts.Now,
		sched:    NewScheduler(),
		ctx:      ctx,
		cancel:   cancel,
		convs:    make(map[string]*Conversation),
		faqs:     assistant.GeneralFAQs(),
	}
	s.CreateConversation()
	return s
}

// CreateConversation starts an empty conversation and makes it active.
func (s *Store) CreateConversation() Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := &Conversation{
		ID:        common.MustULID(),
		Title:     DefaultTitle,
		CreatedAt: s.now(),
		Messages:  []Message{},
	}
	s.convs[c.ID] = c
	s.order = append(s.order, c.ID)
	s.activeID = c.ID
	return c.clone()
}

// SelectConversation makes id active. Unknown ids leave the store as it
// was and report false.
func (s *Store) SelectConversation(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.convs[id]; !ok {
		return false
	}
	s.activeID = id
	return true
}

// AppendUserMessage adds a user message to the active conversation,
// refreshes the FAQ set and schedules one assistant reply. The reply goes
// to this conversation even if another one is active when it arrives.
func (s *Store) AppendUserMessage(text, image string) Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.convs[s.activeID]
	if !c.hasUserMessage() {
		c.Title = titleFrom(text)
	}
	m := s.newMessage(text, true, image)
	c.Messages = append(c.Messages, m)
	s.faqs = assistant.SelectFAQ(text)

	if s.closed {
		return m
	}

	target := c.ID
	history := toProviderMessages(c.Messages)
	s.sched.Schedule(target, s.delay, func() { s.deliverReply(target, history) })
	return m
}

// AppendAssistantMessage adds an assistant message to the active
// conversation.
func (s *Store) AppendAssistantMessage(text string) Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendTo(s.activeID, text)
}

func (s *Store) deliverReply(convID string, history []ai.Message) {
	reply, err := s.provider.Chat(s.ctx, history)
	if err != nil {
		s.log.Warn("assistant reply failed", zap.String("conversation_id", convID), zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	m := s.appendTo(convID, reply)
	s.log.Debug("assistant reply delivered",
		zap.String("conversation_id", convID),
		zap.String("message_id", m.ID),
		zap.Bool("active", convID == s.activeID),
	)
}

// appendTo expects s.mu held.
func (s *Store) appendTo(convID, text string) Message {
	m := s.newMessage(text, false, "")
	if c, ok := s.convs[convID]; ok {
		c.Messages = append(c.Messages, m)
	}
	return m
}

func (s *Store) newMessage(text string, isUser bool, image string) Message {
	return Message{
		ID:        common.MustULID(),
		Content:   text,
		IsUser:    isUser,
		Timestamp: s.now(),
		Image:     image,
	}
}

func toProviderMessages(msgs []Message) []ai.Message {
	out := make([]ai.Message, 0, len(msgs))
	for _, m := range msgs {
		role := ai.RoleAssistant
		if m.IsUser {
			role = ai.RoleUser
		}
		out = append(out, ai.Message{Role: role, Content: m.Content})
	}
	return out
}

func (s *Store) Active() Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.convs[s.activeID].clone()
}

// Messages returns the active conversation's messages.
func (s *Store) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.convs[s.activeID].Messages...)
}

func (s *Store) Conversation(id string) (Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.convs[id]
	if !ok {
		return Conversation{}, false
	}
	return c.clone(), true
}

// History lists conversations in creation order.
func (s *Store) History() []Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Summary, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.convs[id].summary())
	}
	return out
}

func (s *Store) FAQs() assistant.FaqSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.faqs
}

// Pending counts replies not yet delivered to conversation id.
func (s *Store) Pending(id string) int {
	return s.sched.Pending(id)
}

// Wait blocks until all scheduled replies have been delivered.
func (s *Store) Wait() {
	s.sched.Wait()
}

// Close drops undelivered replies. The store stays readable.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.sched.Close()
}
