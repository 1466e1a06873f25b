// Package workitem holds the work items loom browses: the items themselves,
// the typed relationships between them and the sources that supply both.
package workitem

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zhubert/loom/internal/workflow"
)

// RelationshipType classifies an edge between two work items.
type RelationshipType int

const (
	Parent RelationshipType = iota
	Child
	Blocks
	BlockedBy
	RelatesTo
	Duplicates
)

var relationshipNames = [...]string{
	Parent:     "PARENT",
	Child:      "CHILD",
	Blocks:     "BLOCKS",
	BlockedBy:  "BLOCKED_BY",
	RelatesTo:  "RELATES_TO",
	Duplicates: "DUPLICATES",
}

// RelationshipTypes returns every relationship type in declaration order.
func RelationshipTypes() []RelationshipType {
	return []RelationshipType{Parent, Child, Blocks, BlockedBy, RelatesTo, Duplicates}
}

func (t RelationshipType) String() string {
	if t < 0 || int(t) >= len(relationshipNames) {
		return fmt.Sprintf("RelationshipType(%d)", int(t))
	}
	return relationshipNames[t]
}

// Abbrev is the one-letter tag drawn on graph edges.
func (t RelationshipType) Abbrev() string {
	return t.String()[:1]
}

// ParseRelationshipType parses a type name. Case is ignored and spaces or
// dashes may stand in for underscores.
func ParseRelationshipType(s string) (RelationshipType, error) {
	norm := strings.ToUpper(strings.NewReplacer(" ", "_", "-", "_").Replace(strings.TrimSpace(s)))
	for i, name := range relationshipNames {
		if name == norm {
			return RelationshipType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown relationship type %q", s)
}

func (t RelationshipType) MarshalYAML() (any, error) {
	return t.String(), nil
}

func (t *RelationshipType) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseRelationshipType(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*t = parsed
	return nil
}

// Item is a single work item.
type Item struct {
	ID          string         `yaml:"id"`
	Title       string         `yaml:"title"`
	Type        string         `yaml:"type,omitempty"`
	State       workflow.State `yaml:"state,omitempty"`
	Priority    string         `yaml:"priority,omitempty"`
	Assignee    string         `yaml:"assignee,omitempty"`
	Description string         `yaml:"description,omitempty"`
	Parent      string         `yaml:"parent,omitempty"`
	Links       []Link         `yaml:"links,omitempty"`
}

// Link is an explicit relationship as written in a fixture.
type Link struct {
	Type   RelationshipType `yaml:"type"`
	Target string           `yaml:"target"`
}

func (i Item) String() string {
	return i.ID + ": " + i.Title
}

// Details renders the multi-line summary shown in detail panes.
func (i Item) Details() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID:       %s\n", i.ID)
	fmt.Fprintf(&b, "Title:    %s\n", i.Title)
	if i.Type != "" {
		fmt.Fprintf(&b, "Type:     %s\n", i.Type)
	}
	if i.State != "" {
		fmt.Fprintf(&b, "State:    %s\n", i.State.Label())
	}
	if i.Priority != "" {
		fmt.Fprintf(&b, "Priority: %s\n", i.Priority)
	}
	if i.Assignee != "" {
		fmt.Fprintf(&b, "Assignee: %s\n", i.Assignee)
	}
	if i.Description != "" {
		b.WriteString("\n")
		b.WriteString(i.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Relationship is an edge from the item it was fetched for to Target.
type Relationship struct {
	Target Item
	Type   RelationshipType
}

// Source supplies work items to the graph and column views.
type Source interface {
	ListRootItems() ([]Item, error)
	ChildrenOf(item Item) ([]Item, error)
	RelationshipsOf(item Item) ([]Relationship, error)
}
