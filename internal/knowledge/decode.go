package knowledge

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type decodeFunc func(node *yaml.Node) (Item, error)

func decodeAs[T Item](node *yaml.Node) (Item, error) {
	var v T
	if err := node.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

var decoders = map[Kind]decodeFunc{
	KindTopic:        decodeAs[Topic],
	KindPage:         decodeAs[Page],
	KindPerson:       decodeAs[Person],
	KindProof:        decodeAs[Proof],
	KindAction:       decodeAs[Action],
	KindBlog:         decodeAs[Blog],
	KindSocial:       decodeAs[Social],
	KindManufacturer: decodeAs[Manufacturer],
	KindProduct:      decodeAs[Product],
	KindConcept:      decodeAs[Concept],
	KindQA:           decodeAs[QA],
	KindCommunity:    decodeAs[Community],
	KindCTA:          decodeAs[CTA],
	KindSponsored:    decodeAs[Sponsored],
}

// DecodeNode decodes one mapping node into the variant named by its type
// field. Unrecognised types decode to Unknown.
func DecodeNode(node *yaml.Node) (Item, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("knowledge item must be a mapping, line %d", node.Line)
	}

	var head struct {
		ID   string `yaml:"id"`
		Type string `yaml:"type"`
	}
	if err := node.Decode(&head); err != nil {
		return nil, fmt.Errorf("decoding item header: %w", err)
	}
	if strings.TrimSpace(head.ID) == "" {
		return nil, ErrMissingID
	}
	kindName := strings.ToLower(strings.TrimSpace(head.Type))
	if kindName == "" {
		return nil, fmt.Errorf("%w (id %s)", ErrMissingType, head.ID)
	}

	decode, ok := decoders[Kind(kindName)]
	if !ok {
		return decodeUnknown(node, kindName)
	}
	item, err := decode(node)
	if err != nil {
		return nil, fmt.Errorf("decoding %s %s: %w", kindName, head.ID, err)
	}
	return item, nil
}

func decodeUnknown(node *yaml.Node, kindName string) (Item, error) {
	var u Unknown
	if err := node.Decode(&u); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", kindName, err)
	}
	if err := node.Decode(&u.Fields); err != nil {
		return nil, fmt.Errorf("decoding %s fields: %w", kindName, err)
	}
	u.Type = kindName
	return u, nil
}

// DecodeFields decodes an item from a generic field map such as parsed
// frontmatter or a stored JSON document.
func DecodeFields(fields map[string]any) (Item, error) {
	var node yaml.Node
	if err := node.Encode(fields); err != nil {
		return nil, fmt.Errorf("encoding item fields: %w", err)
	}
	return DecodeNode(&node)
}

// Fields flattens an item back into a field map that DecodeFields accepts.
func Fields(item Item) (map[string]any, error) {
	if u, ok := item.(Unknown); ok && u.Fields != nil {
		fields := make(map[string]any, len(u.Fields))
		for key, value := range u.Fields {
			fields[key] = value
		}
		fields["id"] = u.ID
		fields["type"] = u.Type
		return fields, nil
	}

	data, err := yaml.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("encoding item %s: %w", ID(item), err)
	}
	var fields map[string]any
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("encoding item %s: %w", ID(item), err)
	}
	if fields == nil {
		fields = map[string]any{}
	}
	fields["type"] = string(item.Kind())
	return fields, nil
}

type document struct {
	Items []yaml.Node `yaml:"items"`
}

// Decode parses a YAML knowledge base of the form `items: [...]`.
func Decode(data []byte) ([]Item, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing knowledge base: %w", err)
	}

	items := make([]Item, 0, len(doc.Items))
	seen := make(map[string]struct{}, len(doc.Items))
	for i := range doc.Items {
		item, err := DecodeNode(&doc.Items[i])
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		id := ID(item)
		if _, exists := seen[id]; exists {
			return nil, fmt.Errorf("item %d: %w: %s", i, ErrDuplicateID, id)
		}
		seen[id] = struct{}{}
		items = append(items, item)
	}
	return items, nil
}

func LoadFile(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading knowledge base: %w", err)
	}
	items, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("loading knowledge base %s: %w", path, err)
	}
	return items, nil
}
