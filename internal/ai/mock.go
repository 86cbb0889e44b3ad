package ai

import (
	"context"

	"github.com/suPer8Hu/devopstile/internal/assistant"
)

// KeywordProvider answers the latest user message from the canned
// keyword table. It never fails.
type KeywordProvider struct {
	match func(string) string
}

func NewKeywordProvider() *KeywordProvider {
	return &KeywordProvider{match: assistant.MatchResponse}
}

func (p *KeywordProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	_ = ctx
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			return p.match(messages[i].Content), nil
		}
	}
	return p.match(""), nil
}
