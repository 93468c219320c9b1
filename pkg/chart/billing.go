package chart

import (
	"fmt"

	"github.com/ptaemr/platform/pkg/cpt"
)

// Calculator mutates a note's CPT line items and maintains the derived billing
// fields. Every mutator finishes with Recompute so TotalMinutes and Units
// never drift from the line items.
type Calculator struct {
	catalog cpt.Catalog
}

func NewCalculator(catalog cpt.Catalog) *Calculator {
	return &Calculator{catalog: catalog}
}

func (c *Calculator) Catalog() cpt.Catalog {
	return c.catalog
}

// AddLineItem appends a line item. Minutes are coerced from free text: blank,
// non-numeric, or negative input stores 0. An empty description is filled
// from the catalog when the code is known.
func (c *Calculator) AddLineItem(note *ProgressNote, code string, minutes string, modifiers string) error {
	if note.Locked {
		return ErrLocked
	}

	item := CptLineItem{
		Code:      code,
		Minutes:   coerceInt(minutes),
		Modifiers: modifiers,
	}
	if entry, ok := c.catalog.Lookup(code); ok {
		item.Description = entry.Description
	}

	note.LineItems = append(note.LineItems, item)
	Recompute(note)
	return nil
}

// UpdateLineItem edits the code and/or minutes of one item in place. Nil means
// leave that field alone.
func (c *Calculator) UpdateLineItem(note *ProgressNote, index int, code *string, minutes *string) error {
	if note.Locked {
		return ErrLocked
	}
	if index < 0 || index >= len(note.LineItems) {
		return fmt.Errorf("%w: line item %d of %d", ErrIndexOutOfRange, index, len(note.LineItems))
	}

	item := &note.LineItems[index]
	if code != nil {
		item.Code = *code
		if entry, ok := c.catalog.Lookup(*code); ok {
			item.Description = entry.Description
		}
	}
	if minutes != nil {
		item.Minutes = coerceInt(*minutes)
	}

	Recompute(note)
	return nil
}

func (c *Calculator) RemoveLineItem(note *ProgressNote, index int) error {
	if note.Locked {
		return ErrLocked
	}
	if index < 0 || index >= len(note.LineItems) {
		return fmt.Errorf("%w: line item %d of %d", ErrIndexOutOfRange, index, len(note.LineItems))
	}

	note.LineItems = append(note.LineItems[:index], note.LineItems[index+1:]...)
	Recompute(note)
	return nil
}

// Recompute restores the billing invariant: TotalMinutes is the sum of line
// item minutes and Units is that total divided by 15, truncated. Coercion
// keeps minutes non-negative, so truncation and floor coincide.
func Recompute(note *ProgressNote) {
	total := 0
	for _, item := range note.LineItems {
		total += item.Minutes
	}
	note.TotalMinutes = total
	note.Units = total / 15
}
