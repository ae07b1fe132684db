package knowledge

import (
	"fmt"
	"strings"
)

type Topic struct {
	Base        `yaml:",inline"`
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
}

func (t Topic) Kind() Kind       { return KindTopic }
func (t Topic) Label() string    { return firstNonEmpty(t.Title, placeholder(KindTopic)) }
func (t Topic) Summary() string  { return firstNonEmpty(t.Description, t.Body) }
func (t Topic) Icon() string     { return "compass" }
func (t Topic) Accept(v Visitor) { v.VisitTopic(t) }

type Page struct {
	Base     `yaml:",inline"`
	Title    string `yaml:"title"`
	Abstract string `yaml:"summary,omitempty"`
	URL      string `yaml:"url,omitempty"`
}

func (p Page) Kind() Kind       { return KindPage }
func (p Page) Label() string    { return firstNonEmpty(p.Title, p.URL, placeholder(KindPage)) }
func (p Page) Summary() string  { return firstNonEmpty(p.Abstract, p.Body) }
func (p Page) Icon() string     { return "file-text" }
func (p Page) Accept(v Visitor) { v.VisitPage(p) }

type Person struct {
	Base     `yaml:",inline"`
	Name     string `yaml:"name"`
	Role     string `yaml:"role,omitempty"`
	Bio      string `yaml:"bio,omitempty"`
	Email    string `yaml:"email,omitempty"`
	Phone    string `yaml:"phone,omitempty"`
	LinkedIn string `yaml:"linkedin,omitempty"`
}

func (p Person) Kind() Kind { return KindPerson }
func (p Person) Label() string {
	return firstNonEmpty(p.Name, placeholder(KindPerson))
}
func (p Person) Summary() string  { return firstNonEmpty(p.Bio, p.Role, p.Body) }
func (p Person) Icon() string     { return "user" }
func (p Person) Accept(v Visitor) { v.VisitPerson(p) }

// Channels returns the contact channels the person can be reached on, in a
// fixed order.
func (p Person) Channels() []string {
	var channels []string
	if p.Email != "" {
		channels = append(channels, "email "+p.Email)
	}
	if p.Phone != "" {
		channels = append(channels, "phone "+p.Phone)
	}
	if p.LinkedIn != "" {
		channels = append(channels, "LinkedIn "+p.LinkedIn)
	}
	return channels
}

type Proof struct {
	Base   `yaml:",inline"`
	Title  string `yaml:"title"`
	Quote  string `yaml:"quote,omitempty"`
	Author string `yaml:"author,omitempty"`
	Metric string `yaml:"metric,omitempty"`
}

func (p Proof) Kind() Kind       { return KindProof }
func (p Proof) Label() string    { return firstNonEmpty(p.Title, p.Metric, placeholder(KindProof)) }
func (p Proof) Summary() string  { return firstNonEmpty(p.Quote, p.Body) }
func (p Proof) Icon() string     { return "badge-check" }
func (p Proof) Accept(v Visitor) { v.VisitProof(p) }

type Action struct {
	Base        `yaml:",inline"`
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Target      string `yaml:"target,omitempty"`
}

func (a Action) Kind() Kind       { return KindAction }
func (a Action) Label() string    { return firstNonEmpty(a.Title, placeholder(KindAction)) }
func (a Action) Summary() string  { return firstNonEmpty(a.Description, a.Body) }
func (a Action) Icon() string     { return "zap" }
func (a Action) Accept(v Visitor) { v.VisitAction(a) }

type Blog struct {
	Base      `yaml:",inline"`
	Title     string `yaml:"title"`
	Excerpt   string `yaml:"excerpt,omitempty"`
	URL       string `yaml:"url,omitempty"`
	Published string `yaml:"published,omitempty"`
}

func (b Blog) Kind() Kind       { return KindBlog }
func (b Blog) Label() string    { return firstNonEmpty(b.Title, placeholder(KindBlog)) }
func (b Blog) Summary() string  { return firstNonEmpty(b.Excerpt, b.Body) }
func (b Blog) Icon() string     { return "book-open" }
func (b Blog) Accept(v Visitor) { v.VisitBlog(b) }

type Social struct {
	Base      `yaml:",inline"`
	Platform  string `yaml:"platform"`
	Handle    string `yaml:"handle,omitempty"`
	URL       string `yaml:"url,omitempty"`
	Followers int    `yaml:"followers,omitempty"`
}

func (s Social) Kind() Kind { return KindSocial }
func (s Social) Label() string {
	if s.Platform != "" && s.Handle != "" {
		return s.Platform + " " + s.Handle
	}
	return firstNonEmpty(s.Platform, s.Handle, placeholder(KindSocial))
}
func (s Social) Summary() string {
	if s.Followers > 0 {
		return fmt.Sprintf("%d followers", s.Followers)
	}
	return s.Body
}
func (s Social) Icon() string     { return "share-2" }
func (s Social) Accept(v Visitor) { v.VisitSocial(s) }

type Manufacturer struct {
	Base        `yaml:",inline"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Country     string `yaml:"country,omitempty"`
	URL         string `yaml:"url,omitempty"`
}

func (m Manufacturer) Kind() Kind       { return KindManufacturer }
func (m Manufacturer) Label() string    { return firstNonEmpty(m.Name, placeholder(KindManufacturer)) }
func (m Manufacturer) Summary() string  { return firstNonEmpty(m.Description, m.Body) }
func (m Manufacturer) Icon() string     { return "factory" }
func (m Manufacturer) Accept(v Visitor) { v.VisitManufacturer(m) }

type Product struct {
	Base         `yaml:",inline"`
	Name         string `yaml:"name"`
	Description  string `yaml:"description,omitempty"`
	Price        string `yaml:"price,omitempty"`
	Manufacturer string `yaml:"manufacturer,omitempty"`
	URL          string `yaml:"url,omitempty"`
}

func (p Product) Kind() Kind       { return KindProduct }
func (p Product) Label() string    { return firstNonEmpty(p.Name, placeholder(KindProduct)) }
func (p Product) Summary() string  { return firstNonEmpty(p.Description, p.Body) }
func (p Product) Icon() string     { return "package" }
func (p Product) Accept(v Visitor) { v.VisitProduct(p) }

type Concept struct {
	Base       `yaml:",inline"`
	Term       string `yaml:"term"`
	Definition string `yaml:"definition,omitempty"`
}

func (c Concept) Kind() Kind       { return KindConcept }
func (c Concept) Label() string    { return firstNonEmpty(c.Term, placeholder(KindConcept)) }
func (c Concept) Summary() string  { return firstNonEmpty(c.Definition, c.Body) }
func (c Concept) Icon() string     { return "lightbulb" }
func (c Concept) Accept(v Visitor) { v.VisitConcept(c) }

type QA struct {
	Base     `yaml:",inline"`
	Question string `yaml:"question"`
	Answer   string `yaml:"answer,omitempty"`
}

func (q QA) Kind() Kind       { return KindQA }
func (q QA) Label() string    { return firstNonEmpty(q.Question, placeholder(KindQA)) }
func (q QA) Summary() string  { return firstNonEmpty(q.Answer, q.Body) }
func (q QA) Icon() string     { return "help-circle" }
func (q QA) Accept(v Visitor) { v.VisitQA(q) }

type Community struct {
	Base        `yaml:",inline"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Members     int    `yaml:"members,omitempty"`
	URL         string `yaml:"url,omitempty"`
}

func (c Community) Kind() Kind    { return KindCommunity }
func (c Community) Label() string { return firstNonEmpty(c.Name, placeholder(KindCommunity)) }
func (c Community) Summary() string {
	if c.Description == "" && c.Members > 0 {
		return fmt.Sprintf("%d members", c.Members)
	}
	return firstNonEmpty(c.Description, c.Body)
}
func (c Community) Icon() string     { return "users" }
func (c Community) Accept(v Visitor) { v.VisitCommunity(c) }

type CTA struct {
	Base        `yaml:",inline"`
	Headline    string `yaml:"headline"`
	Description string `yaml:"description,omitempty"`
	Button      string `yaml:"button,omitempty"`
	URL         string `yaml:"url,omitempty"`
}

func (c CTA) Kind() Kind       { return KindCTA }
func (c CTA) Label() string    { return firstNonEmpty(c.Headline, c.Button, placeholder(KindCTA)) }
func (c CTA) Summary() string  { return firstNonEmpty(c.Description, c.Body) }
func (c CTA) Icon() string     { return "mouse-pointer-click" }
func (c CTA) Accept(v Visitor) { v.VisitCTA(c) }

type Sponsored struct {
	Base        `yaml:",inline"`
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Sponsor     string `yaml:"sponsor,omitempty"`
	Status      string `yaml:"status,omitempty"`
	URL         string `yaml:"url,omitempty"`
}

func (s Sponsored) Kind() Kind { return KindSponsored }
func (s Sponsored) Label() string {
	return firstNonEmpty(s.Title, s.Sponsor, placeholder(KindSponsored))
}
func (s Sponsored) Summary() string  { return firstNonEmpty(s.Description, s.Body) }
func (s Sponsored) Icon() string     { return "megaphone" }
func (s Sponsored) Accept(v Visitor) { v.VisitSponsored(s) }

// Active reports whether the placement is currently running. An empty status
// counts as active.
func (s Sponsored) Active() bool {
	switch strings.ToLower(s.Status) {
	case "", "active", "live":
		return true
	default:
		return false
	}
}

// Unknown holds an item whose type tag is not one of Kinds. It keeps the raw
// fields so display code can still find something to show.
type Unknown struct {
	Base   `yaml:",inline"`
	Type   string         `yaml:"type"`
	Fields map[string]any `yaml:"-"`
}

func (u Unknown) Kind() Kind { return Kind(u.Type) }
func (u Unknown) Label() string {
	return firstNonEmpty(u.field("title"), u.field("name"), u.field("label"), placeholder(Kind(u.Type)))
}
func (u Unknown) Summary() string {
	return firstNonEmpty(u.field("summary"), u.field("description"), u.Body)
}
func (u Unknown) Icon() string     { return "circle" }
func (u Unknown) Accept(v Visitor) { v.VisitUnknown(u) }

func (u Unknown) field(name string) string {
	if s, ok := u.Fields[name].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
