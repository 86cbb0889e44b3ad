package chat

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suPer8Hu/devopstile/internal/ai"
	"github.com/suPer8Hu/devopstile/internal/assistant"
)

// gatedProvider holds every reply until release is closed.
type gatedProvider struct {
	release chan struct{}

	mu    sync.Mutex
	calls [][]ai.Message
}

func newGatedProvider() *gatedProvider {
	return &gatedProvider{release: make(chan struct{})}
}

func (p *gatedProvider) Chat(ctx context.Context, messages []ai.Message) (string, error) {
	p.mu.Lock()
	p.calls = append(p.calls, append([]ai.Message(nil), messages...))
	p.mu.Unlock()
	select {
	case <-p.release:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return "reply to " + messages[len(messages)-1].Content, nil
}

func newTestStore(t *testing.T, opts Options) *Store {
	t.Helper()
	if opts.ReplyDelay == 0 {
		opts.ReplyDelay = 5 * time.Millisecond
	}
	s := NewStore(opts)
	t.Cleanup(s.Close)
	return s
}

func TestNewStore_StartsWithOneConversation(t *testing.T) {
	s := newTestStore(t, Options{})

	h := s.History()
	require.Len(t, h, 1)
	assert.Equal(t, DefaultTitle, h[0].Title)
	assert.Equal(t, h[0].ID, s.Active().ID)
	assert.Empty(t, s.Messages())
	assert.Equal(t, assistant.GeneralFAQs(), s.FAQs())
}

func TestAppendUserMessage_RepliesFromKeywordTable(t *testing.T) {
	s := newTestStore(t, Options{})

	m := s.AppendUserMessage("How do I shrink Docker images?", "diagram.png")
	assert.True(t, m.IsUser)
	assert.Equal(t, "diagram.png", m.Image)
	assert.Equal(t, "What is Docker?", s.FAQs()[0].Question)

	s.Wait()
	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, m.ID, msgs[0].ID)
	assert.False(t, msgs[1].IsUser)
	assert.Equal(t, assistant.DockerResponse, msgs[1].Content)
	assert.Empty(t, msgs[1].Image)
}

func TestAppendUserMessage_Title(t *testing.T) {
	s := newTestStore(t, Options{})

	long := "Explain how Kubernetes schedules pods across nodes"
	s.AppendUserMessage(long, "")
	assert.Equal(t, long[:30], s.Active().Title)

	// later messages keep the first title
	s.AppendUserMessage("short", "")
	assert.Equal(t, long[:30], s.Active().Title)

	s.CreateConversation()
	s.AppendUserMessage("", "screenshot.png")
	assert.Equal(t, DefaultTitle, s.Active().Title)

	s.CreateConversation()
	s.AppendUserMessage(strings.Repeat("ü", 31), "")
	assert.Equal(t, strings.Repeat("ü", 30), s.Active().Title)

	s.Wait()
}

func TestPendingReply_GoesToOriginConversation(t *testing.T) {
	prov := newGatedProvider()
	s := newTestStore(t, Options{Provider: prov})

	first := s.Active()
	s.AppendUserMessage("what is terraform", "")

	second := s.CreateConversation()
	assert.Equal(t, second.ID, s.Active().ID)

	close(prov.release)
	s.Wait()

	// active conversation is untouched
	assert.Empty(t, s.Messages())

	got, ok := s.Conversation(first.ID)
	require.True(t, ok)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "reply to what is terraform", got.Messages[1].Content)

	require.True(t, s.SelectConversation(first.ID))
	assert.Equal(t, got.Messages, s.Messages())
}

func TestPendingReply_UsesHistoryAtSendTime(t *testing.T) {
	prov := newGatedProvider()
	s := newTestStore(t, Options{Provider: prov})

	s.AppendUserMessage("one", "")
	s.AppendUserMessage("two", "")
	close(prov.release)
	s.Wait()

	msgs := s.Messages()
	require.Len(t, msgs, 4)
	replies := []string{msgs[2].Content, msgs[3].Content}
	assert.ElementsMatch(t, []string{"reply to one", "reply to two"}, replies)
}

func TestSelectConversation_UnknownIsNoop(t *testing.T) {
	s := newTestStore(t, Options{})
	s.AppendUserMessage("hello", "")
	s.Wait()

	before := s.Active()
	assert.False(t, s.SelectConversation("does-not-exist"))
	assert.Equal(t, before, s.Active())
	assert.Equal(t, before.Messages, s.Messages())
}

func TestAppendAssistantMessage_TargetsActive(t *testing.T) {
	s := newTestStore(t, Options{})
	s.CreateConversation()

	m := s.AppendAssistantMessage("Welcome back")
	assert.False(t, m.IsUser)
	require.Len(t, s.Messages(), 1)
	assert.Equal(t, DefaultTitle, s.Active().Title)
	assert.Equal(t, 0, s.History()[0].MessageCount)
	assert.Equal(t, 1, s.History()[1].MessageCount)
}

func TestClose_DropsPendingReplies(t *testing.T) {
	s := NewStore(Options{ReplyDelay: time.Hour})
	s.AppendUserMessage("docker", "")
	id := s.Active().ID
	assert.Equal(t, 1, s.Pending(id))

	s.Close()
	assert.Equal(t, 0, s.Pending(id))
	assert.Len(t, s.Messages(), 1)

	// closed stores still record user messages but schedule nothing
	s.AppendUserMessage("k8s", "")
	assert.Equal(t, 0, s.Pending(id))
	s.Close()
}

func TestClose_CancelsInFlightProvider(t *testing.T) {
	prov := newGatedProvider()
	s := NewStore(Options{Provider: prov, ReplyDelay: -1})
	s.AppendUserMessage("hi", "")

	require.Eventually(t, func() bool { return len(prov.snapshot()) == 1 }, time.Second, time.Millisecond)
	s.Close()
	assert.Len(t, s.Messages(), 1)
}

func (p *gatedProvider) snapshot() [][]ai.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([][]ai.Message(nil), p.calls...)
}
