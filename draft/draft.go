// Package draft holds the working copy of a trip and its packing list while
// an assistant session is open. Every mutation returns a new snapshot; the
// previous one is never aliased, so a reader holding an old snapshot cannot
// observe a partially applied update. Nothing here performs I/O — persistence
// happens only through the session's transaction.
package draft

import (
	"strings"

	"dario.cat/mergo"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/scylladb/go-set/strset"

	"github.com/packpal/packpal/api"
)

// Item is a packing-list entry in the draft. Name is the mutation address
// (assistant payloads only carry names), Key is a client-generated stable
// identity so the UI can track an item across renames.
type Item struct {
	Key       string
	ID        int64
	Name      string
	Quantity  int
	Notes     string
	Packed    bool
	Returning bool
}

// Snapshot is an immutable draft of one trip and its packing list.
type Snapshot struct {
	Trip  api.Trip
	Items []Item
}

// New builds the initial snapshot from backend state.
func New(trip api.Trip, items []api.Item) Snapshot {
	draftItems := make([]Item, 0, len(items))
	for _, item := range items {
		draftItems = append(draftItems, fromAPIItem(item))
	}
	return Snapshot{Trip: trip, Items: draftItems}
}

func fromAPIItem(item api.Item) Item {
	return Item{
		Key:       uuid.New().String(),
		ID:        item.ID,
		Name:      item.Name,
		Quantity:  item.Quantity,
		Notes:     item.Notes,
		Packed:    item.Packed,
		Returning: item.Returning,
	}
}

// PackingList converts the draft items back to their wire shape.
func (s Snapshot) PackingList() []api.Item {
	items := make([]api.Item, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, api.Item{
			ID:        item.ID,
			TripID:    s.Trip.ID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Notes:     item.Notes,
			Packed:    item.Packed,
			Returning: item.Returning,
		})
	}
	return items
}

// copyItems returns a fresh item slice so mutations never share backing arrays.
func (s Snapshot) copyItems() []Item {
	items := make([]Item, len(s.Items))
	copy(items, s.Items)
	return items
}

// RenameTrip replaces the trip name. A name that is empty after trimming is
// ignored.
func (s Snapshot) RenameTrip(name string) Snapshot {
	name = strings.TrimSpace(name)
	if name == "" {
		return s
	}
	s.Trip.Name = name
	s.Items = s.copyItems()
	return s
}

// UpdateTripDates replaces both dates atomically so a half-updated range is
// never rendered.
func (s Snapshot) UpdateTripDates(start, end string) Snapshot {
	s.Trip.StartDate = start
	s.Trip.EndDate = end
	s.Items = s.copyItems()
	return s
}

// UpdateTripDescription replaces the description. Empty means "no description".
func (s Snapshot) UpdateTripDescription(description string) Snapshot {
	s.Trip.Description = description
	s.Items = s.copyItems()
	return s
}

// AddItem appends a new draft item. The name may be empty (a new, unnamed
// item still being edited); quantity is floored at 1.
func (s Snapshot) AddItem(name string, quantity int) Snapshot {
	if quantity < 1 {
		quantity = 1
	}
	items := s.copyItems()
	items = append(items, Item{
		Key:      uuid.New().String(),
		Name:     name,
		Quantity: quantity,
	})
	s.Items = items
	return s
}

// UpdateItemQuantity sets the quantity of the item matching name. The draft
// tolerates transient zero or negative values while the user is typing.
// ok is false when no item matched; the caller should treat that as a
// contract violation on its side, the draft itself is unchanged.
func (s Snapshot) UpdateItemQuantity(name string, quantity int) (Snapshot, bool) {
	return s.updateItem(name, func(item *Item) {
		item.Quantity = quantity
	})
}

// UpdateItemNotes sets the notes of the item matching name.
func (s Snapshot) UpdateItemNotes(name, notes string) (Snapshot, bool) {
	return s.updateItem(name, func(item *Item) {
		item.Notes = notes
	})
}

// RenameItem changes the addressing name of an item. The caller must ensure
// the new name does not collide with a different item; Validate reports
// collisions after the fact.
func (s Snapshot) RenameItem(name, newName string) (Snapshot, bool) {
	return s.updateItem(name, func(item *Item) {
		item.Name = newName
	})
}

// ToggleItemPacked flips the packed flag of the item matching name.
func (s Snapshot) ToggleItemPacked(name string) (Snapshot, bool) {
	return s.updateItem(name, func(item *Item) {
		item.Packed = !item.Packed
	})
}

func (s Snapshot) updateItem(name string, mutate func(*Item)) (Snapshot, bool) {
	for i, item := range s.Items {
		if item.Name == name {
			items := s.copyItems()
			mutate(&items[i])
			s.Items = items
			return s, true
		}
	}
	return s, false
}

// DeleteItem removes the item matching name.
func (s Snapshot) DeleteItem(name string) (Snapshot, bool) {
	for i, item := range s.Items {
		if item.Name == name {
			items := s.copyItems()
			items = append(items[:i], items[i+1:]...)
			s.Items = items
			return s, true
		}
	}
	return s, false
}

// ReplaceAll applies an assistant tool effect: the payload's trip and packing
// list wholesale supersede the draft rather than being merged field by field.
// A nil trip or nil packing list means the payload omitted that part, which
// is treated as "no change"; within a provided trip, fields the payload left
// zero are backfilled from the current draft for the same reason.
func (s Snapshot) ReplaceAll(trip *api.Trip, items []api.Item) Snapshot {
	if trip != nil {
		incoming := *trip
		if err := mergo.Merge(&incoming, s.Trip); err == nil {
			s.Trip = incoming
		}
	}
	if items == nil {
		s.Items = s.copyItems()
		return s
	}

	// Preserve stable keys for items the assistant kept (matched by name).
	keyByName := make(map[string]string, len(s.Items))
	for _, item := range s.Items {
		keyByName[item.Name] = item.Key
	}
	replacement := make([]Item, 0, len(items))
	for _, item := range items {
		draftItem := fromAPIItem(item)
		if key, ok := keyByName[item.Name]; ok {
			draftItem.Key = key
		}
		replacement = append(replacement, draftItem)
	}
	s.Items = replacement
	return s
}

// Validate reports duplicate item names. Names address mutations, so a
// duplicate makes addressing ambiguous.
func (s Snapshot) Validate() error {
	names := strset.New()
	for _, item := range s.Items {
		if item.Name == "" {
			continue // Unnamed items are still being edited.
		}
		if names.Has(item.Name) {
			return errors.Errorf("duplicate item name %q", item.Name)
		}
		names.Add(item.Name)
	}
	return nil
}
