package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordsMatch(t *testing.T) {
	k := New()
	tests := []struct {
		text  string
		topic string
	}{
		{"I want to BUY a flat", "buying"},
		{"how do I purchase land", "buying"},
		{"selling my house", "selling"},
		{"looking to rent", "renting"},
		{"lease terms?", "renting"},
		{"is this a good investment", "investing"},
		{"I think it's a scam", "fraud"},
		{"market trends in Pune", "market"},
		{"calculate my EMI", "loans"},
		{"what does RERA cover", "legal"},
		{"hello", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.topic, k.Match(tt.text).Topic)
		})
	}
}

func TestKeywordsFirstRuleWins(t *testing.T) {
	k := New()
	// "buy" precedes "loan" in rule order.
	assert.Equal(t, "buying", k.Match("loan to buy a house").Topic)
}

func TestRespond(t *testing.T) {
	k := New()
	reply, err := k.Respond(context.Background(), "hi there")
	require.NoError(t, err)
	assert.Equal(t, fallbackReply, reply)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = k.Respond(ctx, "buy")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResponderFunc(t *testing.T) {
	var r Responder = ResponderFunc(func(ctx context.Context, text string) (string, error) {
		return "echo: " + text, nil
	})
	reply, err := r.Respond(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "echo: x", reply)
}
