// Package assistant provides the chat Responder consumed by the chat hook
// and a keyword responder that answers with canned replies.
package assistant

import (
	"context"
	"strings"
)

// Responder produces the assistant reply to a user message.
type Responder interface {
	Respond(ctx context.Context, text string) (string, error)
}

// ResponderFunc adapts a function to Responder.
type ResponderFunc func(ctx context.Context, text string) (string, error)

// Respond calls f.
func (f ResponderFunc) Respond(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// Rule maps any of its keywords to a reply.
type Rule struct {
	Topic    string
	Keywords []string
	Reply    string
}

// Keywords answers with the reply of the first rule whose keyword occurs
// in the lowercased message, or Fallback when none does.
type Keywords struct {
	Rules    []Rule
	Fallback string
}

// Respond implements Responder. It fails only when ctx is done.
func (k *Keywords) Respond(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return k.Match(text).Reply, nil
}

// Match returns the rule that answers text. The fallback rule has an empty
// topic.
func (k *Keywords) Match(text string) Rule {
	msg := strings.ToLower(text)
	for _, r := range k.Rules {
		for _, kw := range r.Keywords {
			if strings.Contains(msg, kw) {
				return r
			}
		}
	}
	return Rule{Reply: k.Fallback}
}

// New returns the real-estate keyword responder.
func New() *Keywords {
	return &Keywords{Rules: defaultRules, Fallback: fallbackReply}
}

var defaultRules = []Rule{
	{
		Topic:    "buying",
		Keywords: []string{"buy", "purchase"},
		Reply: "I can help you with buying property!\n\n" +
			"• Location analysis and comparison\n" +
			"• Legal verification and documentation\n" +
			"• Market price comparison\n" +
			"• Home loan assistance\n" +
			"• Property inspection guidance\n\n" +
			"What specific aspect would you like to know more about?",
	},
	{
		Topic:    "selling",
		Keywords: []string{"sell"},
		Reply: "Let me guide you through selling your property!\n\n" +
			"• Property valuation\n" +
			"• Market timing\n" +
			"• Documentation requirements\n" +
			"• Staging tips\n" +
			"• Marketing strategies\n\n" +
			"Which area interests you most?",
	},
	{
		Topic:    "renting",
		Keywords: []string{"rent", "lease"},
		Reply: "I can assist with rental matters!\n\n" +
			"• Tenant and landlord rights\n" +
			"• Rental agreement tips\n" +
			"• Security deposit guidelines\n" +
			"• Maintenance responsibilities\n\n" +
			"What would you like to explore?",
	},
	{
		Topic:    "investing",
		Keywords: []string{"invest"},
		Reply: "Let's explore investment opportunities!\n\n" +
			"• High-growth areas\n" +
			"• Rental yield calculations\n" +
			"• Capital appreciation potential\n" +
			"• RERA compliance check\n\n" +
			"Which city or sector interests you?",
	},
	{
		Topic:    "fraud",
		Keywords: []string{"fraud", "scam"},
		Reply: "Stay safe from property fraud!\n\n" +
			"• Red flags to watch for\n" +
			"• Document verification steps\n" +
			"• RERA registration check\n" +
			"• Title verification\n" +
			"• Encumbrance certificate review",
	},
	{
		Topic:    "market",
		Keywords: []string{"market", "trend"},
		Reply: "Here is what to watch in the market:\n\n" +
			"• Year-over-year price growth by city\n" +
			"• Luxury segment demand\n" +
			"• Emerging IT corridors\n" +
			"• Infrastructure development\n\n" +
			"Ask about a city for more detail.",
	},
	{
		Topic:    "loans",
		Keywords: []string{"emi", "loan"},
		Reply: "Home loan basics:\n\n" +
			"• Compare interest rates across lenders\n" +
			"• Loan-to-value ratios up to 90%\n" +
			"• Tenure options from 5 to 30 years\n" +
			"• Processing fees of 0.5-1%\n\n" +
			"Would you like help calculating an EMI?",
	},
	{
		Topic:    "legal",
		Keywords: []string{"law", "legal", "rera"},
		Reply: "Legal framework in real estate:\n\n" +
			"• RERA Act 2016 buyer protection\n" +
			"• Transfer of Property Act\n" +
			"• Stamp duty and registration\n" +
			"• GST on real estate\n\n" +
			"Which legal aspect concerns you?",
	},
}

const fallbackReply = "I'm Aisha, your real estate assistant! I can help with:\n\n" +
	"• Buying and selling properties\n" +
	"• Investment opportunities\n" +
	"• Market analysis\n" +
	"• Fraud detection\n" +
	"• Legal and documentation questions\n" +
	"• Home loans and EMI\n" +
	"• Rental guidance\n\n" +
	"What would you like to know?"
