// Package validate reports content problems in a knowledge base that would
// leave an item unreachable or make its opening message hollow.
package validate

import (
	"context"
	"fmt"

	"orbit/internal/knowledge"
	"orbit/internal/store"
)

type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
)

const (
	codeDuplicateID     = "duplicate_id"
	codeUnknownType     = "unknown_type"
	codeEmptyKeywords   = "empty_keywords"
	codeMissingLabel    = "missing_label"
	codePageMissingURL  = "page_missing_url"
	codePersonNoContact = "person_no_contact"
	codeQAMissingAnswer = "qa_missing_answer"
	codeSponsoredEnded  = "sponsored_inactive"
	codeDecodeFailed    = "decode_failed"
)

type Issue struct {
	Severity Severity
	Code     string
	Message  string
	ItemID   string
	FilePath string
}

type Report struct {
	Issues []Issue
}

// Errors counts issues at error severity.
func (r *Report) Errors() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			n++
		}
	}
	return n
}

// RecordLister is the read side of store.Store that Run needs.
type RecordLister interface {
	ListItems(ctx context.Context, kind, collection string) ([]store.Record, error)
}

// Run validates every stored item. Records that no longer decode are
// reported rather than aborting the run.
func Run(ctx context.Context, lister RecordLister) (*Report, error) {
	if lister == nil {
		return nil, fmt.Errorf("store is required")
	}
	records, err := lister.ListItems(ctx, "", "")
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	var issues []Issue
	items := make([]knowledge.Item, 0, len(records))
	files := make(map[string]string, len(records))
	for _, record := range records {
		item, err := record.Item()
		if err != nil {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     codeDecodeFailed,
				Message:  err.Error(),
				ItemID:   record.ID,
				FilePath: record.SourceFile,
			})
			continue
		}
		items = append(items, item)
		files[record.ID] = record.SourceFile
	}

	report := Items(items)
	for i := range report.Issues {
		report.Issues[i].FilePath = files[report.Issues[i].ItemID]
	}
	report.Issues = append(issues, report.Issues...)
	return report, nil
}

// Items validates an in-memory item list.
func Items(items []knowledge.Item) *Report {
	issues := make([]Issue, 0)
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		id := knowledge.ID(item)
		if _, dup := seen[id]; dup {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     codeDuplicateID,
				Message:  fmt.Sprintf("duplicate item id %q", id),
				ItemID:   id,
			})
			continue
		}
		seen[id] = struct{}{}

		if len(item.Meta().Keywords) == 0 {
			issues = append(issues, Issue{
				Severity: SeverityWarn,
				Code:     codeEmptyKeywords,
				Message:  "item has no keywords and can only surface through its kind",
				ItemID:   id,
			})
		}
		if knowledge.HasPlaceholderLabel(item) {
			issues = append(issues, Issue{
				Severity: SeverityWarn,
				Code:     codeMissingLabel,
				Message:  fmt.Sprintf("item has no title and is shown as %q", item.Label()),
				ItemID:   id,
			})
		}

		c := &checker{id: id}
		item.Accept(c)
		issues = append(issues, c.issues...)
	}
	return &Report{Issues: issues}
}

type checker struct {
	id     string
	issues []Issue
}

func (c *checker) add(severity Severity, code, message string) {
	c.issues = append(c.issues, Issue{Severity: severity, Code: code, Message: message, ItemID: c.id})
}

func (c *checker) VisitTopic(knowledge.Topic) {}

func (c *checker) VisitPage(p knowledge.Page) {
	if p.URL == "" {
		c.add(SeverityWarn, codePageMissingURL, "page has no url to link to")
	}
}

func (c *checker) VisitPerson(p knowledge.Person) {
	if len(p.Channels()) == 0 {
		c.add(SeverityWarn, codePersonNoContact, "person has no contact channel")
	}
}

func (c *checker) VisitProof(knowledge.Proof)               {}
func (c *checker) VisitAction(knowledge.Action)             {}
func (c *checker) VisitBlog(knowledge.Blog)                 {}
func (c *checker) VisitSocial(knowledge.Social)             {}
func (c *checker) VisitManufacturer(knowledge.Manufacturer) {}
func (c *checker) VisitProduct(knowledge.Product)           {}
func (c *checker) VisitConcept(knowledge.Concept)           {}

func (c *checker) VisitQA(q knowledge.QA) {
	if q.Answer == "" {
		c.add(SeverityWarn, codeQAMissingAnswer, "question has no answer; selecting it asks for clarification")
	}
}

func (c *checker) VisitCommunity(knowledge.Community) {}
func (c *checker) VisitCTA(knowledge.CTA)             {}

func (c *checker) VisitSponsored(s knowledge.Sponsored) {
	if !s.Active() {
		c.add(SeverityWarn, codeSponsoredEnded, fmt.Sprintf("sponsored placement has status %q", s.Status))
	}
}

func (c *checker) VisitUnknown(u knowledge.Unknown) {
	c.add(SeverityWarn, codeUnknownType, fmt.Sprintf("unknown item type %q", u.Type))
}
