package planner

import "fmt"

// TableOption is one selectable entry in a guest's assignment dropdown.
// IsCurrent marks the guest's present table; IsFull marks tables that
// cannot take another guest (selectable only when they are also current).
type TableOption struct {
	ID             uint64
	TableName      string
	AvailableSeats uint32
	Display        string
	IsFull         bool
	IsCurrent      bool
}

// OptionsFor builds the dropdown contents for one guest: every table with
// free seats, plus the guest's current table even when it has since filled
// up.  A full current table is kept in the list marked "(full)" so the
// control never silently hides the guest's present assignment.  Unassigning
// is a separate explicit choice and is not part of this list.
func (b *Board) OptionsFor(currentTableID *uint64) []TableOption {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]TableOption, 0, len(b.order))
	for _, id := range b.order {
		t := b.tables[id]
		current := currentTableID != nil && *currentTableID == t.ID
		if t.AvailableSeats() == 0 && !current {
			continue
		}
		opt := TableOption{
			ID:             t.ID,
			TableName:      t.TableName,
			AvailableSeats: t.AvailableSeats(),
			IsFull:         t.IsFull(),
			IsCurrent:      current,
		}
		if opt.IsFull {
			opt.Display = fmt.Sprintf("%s (full)", t.TableName)
		} else {
			opt.Display = fmt.Sprintf("%s (%d seats left)", t.TableName, opt.AvailableSeats)
		}
		out = append(out, opt)
	}
	return out
}
