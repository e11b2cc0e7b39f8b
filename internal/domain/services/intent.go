package services

import (
	"strings"

	"github.com/Fraud-stop/shield-wise-guard/internal/domain/models"
)

// IntentTableVersion identifies the shared rule table below. Bump it when a
// keyword, response or suggestion changes.
const IntentTableVersion = "2024.02.1"

// IntentTable is an ordered list of rules plus the fallback reply
type IntentTable struct {
	Version  string
	Rules    []models.IntentRule
	Fallback models.Reply
}

// DefaultIntentTable returns the assistant's rule table. Order matters: the
// first rule with a matching keyword wins.
func DefaultIntentTable() IntentTable {
	return IntentTable{
		Version: IntentTableVersion,
		Rules: []models.IntentRule{
			{
				Topic:    models.TopicLinkCheck,
				Keywords: []string{"check", "link", "url"},
				Response: "I can help you check suspicious links! To check a link, please paste it here and I'll analyze it for potential scams, phishing attempts, and other security threats. You can also use our dedicated Link Checker tool for a more detailed analysis.",
				Suggestions: []string{
					"https://suspicious-site.com",
					"Go to Link Checker",
					"What makes a link suspicious?",
					"Show me safety tips",
				},
			},
			{
				Topic:    models.TopicReporting,
				Keywords: []string{"report", "scam"},
				Response: "Reporting scams helps protect our entire community! You can report suspicious links, phone numbers, or describe fraudulent activities. All reports are completely anonymous and secure. Would you like me to guide you through the reporting process?",
				Suggestions: []string{
					"Start a new report",
					"What information do you need?",
					"Is my report anonymous?",
					"View recent community alerts",
				},
			},
			{
				Topic:    models.TopicSafetyTips,
				Keywords: []string{"safe", "tips", "help"},
				Response: "Here are some essential safety tips:\n\n🔒 Always check URLs carefully for spelling errors\n🏦 Banks NEVER ask for PINs via email or SMS\n🔐 Look for HTTPS (lock icon) on websites\n⚠️ If it seems too good to be true, it probably is\n📢 Report suspicious activities to help others",
				Suggestions: []string{
					"Tell me about phishing",
					"How to spot fake websites",
					"Banking security tips",
					"Take the security quiz",
				},
			},
			{
				Topic:    models.TopicBanking,
				Keywords: []string{"bank", "nedbank", "absa", "fnb", "standard"},
				Response: "⚠️ IMPORTANT: South African banks will NEVER:\n\n• Ask for your PIN, password, or OTP via email, SMS, or phone\n• Request banking details through unsecured channels\n• Ask you to click links in emails to 'verify' your account\n\nIf you receive such requests, it's a scam! Always contact your bank directly using the official number on your card or bank statement.",
				Suggestions: []string{
					"Check bank website legitimacy",
					"Report banking scam",
					"What are official bank domains?",
					"Learn about phishing emails",
				},
			},
			{
				Topic:    models.TopicCommunityAlerts,
				Keywords: []string{"alert", "warning", "community"},
				Response: "Our community has reported several active scams:\n\n🚨 Fake Shein websites asking for banking details\n🚨 Nedbank phishing emails with suspicious links\n🚨 SARS impersonation phone calls\n🚨 Crypto giveaway scams on social media\n\nStay vigilant and check our Alerts page for the latest updates!",
				Suggestions: []string{
					"View all community alerts",
					"How to verify if alert is real?",
					"Report similar scam",
					"Subscribe to alerts",
				},
			},
			{
				Topic:    models.TopicPhishing,
				Keywords: []string{"phishing", "fake", "fraud"},
				Response: "Phishing is when criminals create fake websites or messages to steal your personal information. Here's how to spot them:\n\n🔍 Check the URL carefully (look for misspellings)\n📧 Be suspicious of urgent or threatening messages\n🔒 Verify HTTPS and security certificates\n📞 When in doubt, contact the organization directly\n\nNever enter personal details on suspicious sites!",
				Suggestions: []string{
					"Check a suspicious website",
					"Learn about social engineering",
					"Banking phishing examples",
					"Report phishing attempt",
				},
			},
		},
		Fallback: models.Reply{
			Topic: models.TopicFallback,
			Text:  "I'm here to help you stay safe online! I can assist you with:\n\n🔍 Checking suspicious links and websites\n📢 Reporting scams and fraudulent activities\n🎓 Learning about online safety and security\n⚠️ Understanding current fraud alerts and trends\n\nWhat would you like to know more about?",
			Suggestions: []string{
				"Check a suspicious link",
				"Report a scam",
				"Get safety tips",
				"View community alerts",
			},
		},
	}
}

// IntentMatcher picks a canned reply for free-text chat input. One instance
// is shared by every chat surface so they answer identically.
type IntentMatcher struct {
	table IntentTable
}

// NewIntentMatcher copies the table so later changes by the caller have no
// effect on the matcher.
func NewIntentMatcher(table IntentTable) *IntentMatcher {
	rules := make([]models.IntentRule, len(table.Rules))
	for i, r := range table.Rules {
		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				kws = append(kws, kw)
			}
		}
		rules[i] = models.IntentRule{
			Topic:       r.Topic,
			Keywords:    kws,
			Response:    r.Response,
			Suggestions: cloneStrings(r.Suggestions),
		}
	}
	table.Rules = rules
	table.Fallback.Suggestions = cloneStrings(table.Fallback.Suggestions)
	return &IntentMatcher{table: table}
}

// Version returns the rule table version
func (m *IntentMatcher) Version() string {
	return m.table.Version
}

// Rules returns a copy of the ordered rule table
func (m *IntentMatcher) Rules() []models.IntentRule {
	out := make([]models.IntentRule, len(m.table.Rules))
	for i, r := range m.table.Rules {
		out[i] = r
		out[i].Keywords = cloneStrings(r.Keywords)
		out[i].Suggestions = cloneStrings(r.Suggestions)
	}
	return out
}

// Respond returns the reply of the first rule with a keyword contained in the
// lower-cased input, or the capability overview when nothing matches.
func (m *IntentMatcher) Respond(userText string) models.Reply {
	text := strings.ToLower(userText)
	for _, rule := range m.table.Rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return models.Reply{
					Topic:       rule.Topic,
					Text:        rule.Response,
					Suggestions: cloneStrings(rule.Suggestions),
				}
			}
		}
	}
	return m.FallbackReply()
}

// FallbackReply is the generic capability overview
func (m *IntentMatcher) FallbackReply() models.Reply {
	fb := m.table.Fallback
	fb.Suggestions = cloneStrings(fb.Suggestions)
	return fb
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
