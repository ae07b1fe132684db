package selection

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"orbit/internal/knowledge"
)

// SubstantiveAnswerLength is the shortest pre-written qa answer that is
// reused verbatim. Shorter answers fall back to a clarifying question.
const SubstantiveAnswerLength = 40

// ChannelSeparator joins a person's contact channels.
const ChannelSeparator = " · "

// OpeningMessage builds the assistant turn that introduces a selected item.
func OpeningMessage(item knowledge.Item) string {
	o := &opener{}
	item.Accept(o)
	return o.message
}

type opener struct {
	message string
}

func (o *opener) say(parts ...string) {
	o.message = compose(parts...)
}

func (o *opener) VisitTopic(t knowledge.Topic) {
	o.say("Let's talk about "+t.Label()+".", t.Summary(), "What would you like to know?")
}

func (o *opener) VisitPage(p knowledge.Page) {
	if p.URL == "" {
		o.say("Here is our "+p.Label()+" page.", p.Summary())
		return
	}
	o.say("Here is our "+p.Label()+" page: "+p.URL, p.Summary())
}

func (o *opener) VisitPerson(p knowledge.Person) {
	intro := p.Label()
	if p.Role != "" {
		intro += ", " + p.Role
	}
	channels := p.Channels()
	if len(channels) == 0 {
		o.say(intro+".", p.Bio, "Would you like me to pass on a message?")
		return
	}
	o.say(intro+".", p.Bio, "You can reach them by "+strings.Join(channels, ChannelSeparator)+".")
}

func (o *opener) VisitProof(p knowledge.Proof) {
	lead := p.Label() + "."
	if p.Metric != "" && p.Metric != p.Label() {
		lead = p.Label() + ": " + p.Metric + "."
	}
	switch {
	case p.Quote != "" && p.Author != "":
		o.say(lead, p.Author+" said: \""+p.Quote+"\"")
	case p.Quote != "":
		o.say(lead, "\""+p.Quote+"\"")
	default:
		o.say(lead, p.Body)
	}
}

func (o *opener) VisitAction(a knowledge.Action) {
	o.say("Ready to "+lowerFirst(a.Label())+"?", a.Summary(), suffix("Start here: ", a.Target))
}

func (o *opener) VisitBlog(b knowledge.Blog) {
	o.say("From our blog: "+b.Label()+".", b.Summary(), suffix("Read it at ", b.URL))
}

func (o *opener) VisitSocial(s knowledge.Social) {
	lead := "Follow us on " + firstOf(s.Platform, "social media")
	if s.Handle != "" {
		lead += " at " + s.Handle
	}
	o.say(lead+".", followers(s.Followers), s.URL)
}

func (o *opener) VisitManufacturer(m knowledge.Manufacturer) {
	lead := "We work with " + m.Label()
	if m.Country != "" {
		lead += " from " + m.Country
	}
	o.say(lead+".", m.Summary(), m.URL)
}

func (o *opener) VisitProduct(p knowledge.Product) {
	lead := p.Label()
	if p.Price != "" {
		lead += " is " + p.Price
	}
	if p.Manufacturer != "" {
		lead += ", made by " + p.Manufacturer
	}
	o.say(lead+".", p.Summary(), "Want more details?")
}

func (o *opener) VisitConcept(c knowledge.Concept) {
	if c.Definition == "" {
		o.say(c.Label()+" is something we can explain.", c.Body, "Where should I start?")
		return
	}
	o.say(c.Label() + ": " + c.Definition)
}

func (o *opener) VisitQA(q knowledge.QA) {
	if answer := strings.TrimSpace(q.Answer); len(answer) >= SubstantiveAnswerLength {
		o.message = answer
		return
	}
	o.say("Good question: \""+q.Label()+"\"", "Could you tell me a little more about your situation so I can answer it properly?")
}

func (o *opener) VisitCommunity(c knowledge.Community) {
	lead := "Join " + c.Label()
	if c.Members > 0 {
		lead += fmt.Sprintf(", %d members strong", c.Members)
	}
	o.say(lead+".", c.Description, c.URL)
}

func (o *opener) VisitCTA(c knowledge.CTA) {
	action := ""
	if c.Button != "" && c.URL != "" {
		action = c.Button + ": " + c.URL
	} else {
		action = firstOf(c.URL, c.Button)
	}
	o.say(c.Label(), c.Summary(), action)
}

func (o *opener) VisitSponsored(s knowledge.Sponsored) {
	if !s.Active() {
		o.say(s.Label()+" has ended.", "Ask me about what is running now.")
		return
	}
	lead := s.Label()
	if s.Sponsor != "" && s.Sponsor != s.Label() {
		lead += ", presented by " + s.Sponsor
	}
	o.say(lead+".", s.Summary(), s.URL)
}

func (o *opener) VisitUnknown(u knowledge.Unknown) {
	o.say("You picked "+u.Label()+".", u.Summary(), "What would you like to know about it?")
}

// compose joins the non-empty parts with single spaces.
func compose(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

func suffix(prefix, value string) string {
	if value == "" {
		return ""
	}
	return prefix + value
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func followers(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%d people already do.", n)
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
