// Package knowledge defines the typed knowledge items laid out on the orbit
// canvas. An Item is a closed sum type: every variant lives in this package
// and every cross-cutting operation is either a method on Item or a Visitor,
// so adding a variant fails to compile until each operation handles it.
package knowledge

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindTopic        Kind = "topic"
	KindPage         Kind = "page"
	KindPerson       Kind = "person"
	KindProof        Kind = "proof"
	KindAction       Kind = "action"
	KindBlog         Kind = "blog"
	KindSocial       Kind = "social"
	KindManufacturer Kind = "manufacturer"
	KindProduct      Kind = "product"
	KindConcept      Kind = "concept"
	KindQA           Kind = "qa"
	KindCommunity    Kind = "community"
	KindCTA          Kind = "cta"
	KindSponsored    Kind = "sponsored"
)

// Kinds lists every known variant in declaration order.
var Kinds = []Kind{
	KindTopic, KindPage, KindPerson, KindProof, KindAction, KindBlog, KindSocial,
	KindManufacturer, KindProduct, KindConcept, KindQA, KindCommunity, KindCTA, KindSponsored,
}

func (k Kind) Known() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

var (
	ErrMissingID   = errors.New("knowledge item missing required 'id' field")
	ErrMissingType = errors.New("knowledge item missing required 'type' field")
	ErrDuplicateID = errors.New("duplicate knowledge item id")
)

// Base carries the fields shared by every variant.
type Base struct {
	ID       string   `yaml:"id"`
	Keywords Keywords `yaml:"keywords,omitempty"`
	Body     string   `yaml:"body,omitempty"`
}

func (b Base) Meta() Base { return b }

func (Base) sealed() {}

// Item is implemented only by the variants in this package.
type Item interface {
	Kind() Kind
	Meta() Base
	Label() string
	Summary() string
	Icon() string
	Accept(v Visitor)
	sealed()
}

// Visitor has one method per variant plus VisitUnknown for items whose type
// tag is not recognised.
type Visitor interface {
	VisitTopic(Topic)
	VisitPage(Page)
	VisitPerson(Person)
	VisitProof(Proof)
	VisitAction(Action)
	VisitBlog(Blog)
	VisitSocial(Social)
	VisitManufacturer(Manufacturer)
	VisitProduct(Product)
	VisitConcept(Concept)
	VisitQA(QA)
	VisitCommunity(Community)
	VisitCTA(CTA)
	VisitSponsored(Sponsored)
	VisitUnknown(Unknown)
}

func ID(item Item) string {
	if item == nil {
		return ""
	}
	return item.Meta().ID
}

// Index maps items by id. Later duplicates are reported, not overwritten.
func Index(items []Item) (map[string]Item, error) {
	index := make(map[string]Item, len(items))
	for _, item := range items {
		id := ID(item)
		if _, exists := index[id]; exists {
			return index, fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		index[id] = item
	}
	return index, nil
}

// HasPlaceholderLabel reports whether item fell back to the generic
// "Untitled <kind>" label because none of its title fields were set.
func HasPlaceholderLabel(item Item) bool {
	return item.Label() == placeholder(item.Kind())
}

func placeholder(kind Kind) string {
	if kind == "" {
		return "Untitled item"
	}
	return "Untitled " + string(kind)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
