package workitem

import (
	"fmt"
	"sync"

	"github.com/zhubert/loom/internal/errors"
)

// MemorySource is a Source backed by an in-memory set of items. Parent links
// on items produce PARENT and CHILD relationships in both directions;
// explicit links are reported from the item that declares them.
//
// It is safe for concurrent use, so a watcher may Replace its contents while
// the UI reads from it.
type MemorySource struct {
	mu       sync.RWMutex
	items    []Item
	byID     map[string]int
	children map[string][]string
}

// NewMemorySource indexes items. IDs must be unique and every parent and
// link target must name an item in the set.
func NewMemorySource(items []Item) (*MemorySource, error) {
	s := &MemorySource{}
	if err := s.Replace(items); err != nil {
		return nil, err
	}
	return s, nil
}

// Replace swaps in a new item set. On error the old set is kept.
func (s *MemorySource) Replace(items []Item) error {
	byID := make(map[string]int, len(items))
	for i, item := range items {
		if item.ID == "" {
			return errors.E(errors.Op("workitem.Replace"), errors.KindInvalid, fmt.Sprintf("item %d has no id", i))
		}
		if _, dup := byID[item.ID]; dup {
			return errors.E(errors.Op("workitem.Replace"), errors.KindInvalid, fmt.Sprintf("duplicate id %s", item.ID))
		}
		byID[item.ID] = i
	}

	children := make(map[string][]string)
	for _, item := range items {
		if item.Parent != "" {
			if _, ok := byID[item.Parent]; !ok {
				return errors.E(errors.Op("workitem.Replace"), errors.KindNotFound,
					fmt.Sprintf("parent %s of %s not found", item.Parent, item.ID))
			}
			children[item.Parent] = append(children[item.Parent], item.ID)
		}
		for _, link := range item.Links {
			if _, ok := byID[link.Target]; !ok {
				return errors.E(errors.Op("workitem.Replace"), errors.KindNotFound,
					fmt.Sprintf("%s target %s of %s not found", link.Type, link.Target, item.ID))
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]Item(nil), items...)
	s.byID = byID
	s.children = children
	return nil
}

// Items returns every item in fixture order.
func (s *MemorySource) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Item(nil), s.items...)
}

// Get returns the item with the given id.
func (s *MemorySource) Get(id string) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return Item{}, errors.ItemNotFound(id)
	}
	return s.items[i], nil
}

// ListRootItems returns the items without a parent.
func (s *MemorySource) ListRootItems() ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var roots []Item
	for _, item := range s.items {
		if item.Parent == "" {
			roots = append(roots, item)
		}
	}
	return roots, nil
}

// ChildrenOf returns the items whose parent is item.
func (s *MemorySource) ChildrenOf(item Item) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.byID[item.ID]; !ok {
		return nil, errors.ItemNotFound(item.ID)
	}
	ids := s.children[item.ID]
	out := make([]Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.items[s.byID[id]])
	}
	return out, nil
}

// RelationshipsOf returns the edges leaving item: its parent, its children,
// then its explicit links.
func (s *MemorySource) RelationshipsOf(item Item) ([]Relationship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[item.ID]
	if !ok {
		return nil, errors.ItemNotFound(item.ID)
	}
	cur := s.items[i]

	var out []Relationship
	if cur.Parent != "" {
		out = append(out, Relationship{Target: s.items[s.byID[cur.Parent]], Type: Parent})
	}
	for _, id := range s.children[cur.ID] {
		out = append(out, Relationship{Target: s.items[s.byID[id]], Type: Child})
	}
	for _, link := range cur.Links {
		out = append(out, Relationship{Target: s.items[s.byID[link.Target]], Type: link.Type})
	}
	return out, nil
}
