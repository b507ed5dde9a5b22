// internal/review/ledger.go
package review

import (
	"sort"

	appErrors "github.com/grupodelta/supplychain-backend/internal/errors"
	"github.com/grupodelta/supplychain-backend/internal/model"
)

// Sort keys for the review listing.
const (
	SortByDueDate  = "due_date"
	SortByValue    = "value"
	SortByCustomer = "customer"
)

// Config controls which exceptions arrive pre-selected. Severity is the
// number of flags on the exception; any flag listed in CriticalFlags forces
// pre-selection regardless of count.
type Config struct {
	SeverityThreshold int
	CriticalFlags     []string
}

// DefaultConfig pre-selects exceptions carrying two or more flags.
func DefaultConfig() Config {
	return Config{SeverityThreshold: 2}
}

// Item is one row of the review listing: the order, why it was flagged, and
// the operator's current choice.
type Item struct {
	Order    model.CandidateOrder       `json:"order"`
	Result   model.ClassificationResult `json:"result"`
	Selected bool                       `json:"selected"`
}

// Ledger tracks operator include/exclude decisions over the exception set of
// one campaign draft. It is discarded when the operator navigates back to
// the configuration step.
type Ledger struct {
	orders    map[int]model.CandidateOrder
	results   []model.ClassificationResult // exceptions only, classifier order
	decisions map[int]*model.ExceptionDecision
}

// NewLedger builds the decision set for every exception in results. Orders
// must contain the candidate orders the results refer to. Ready results are
// ignored.
func NewLedger(orders []model.CandidateOrder, results []model.ClassificationResult, cfg Config) *Ledger {
	l := &Ledger{
		orders:    make(map[int]model.CandidateOrder, len(orders)),
		decisions: make(map[int]*model.ExceptionDecision),
	}
	for _, o := range orders {
		l.orders[o.ID] = o
	}
	for _, res := range results {
		if res.Outcome != model.OutcomeException {
			continue
		}
		l.results = append(l.results, res)
		l.decisions[res.OrderID] = &model.ExceptionDecision{
			OrderID:  res.OrderID,
			Selected: preselect(res, cfg),
		}
	}
	return l
}

func preselect(res model.ClassificationResult, cfg Config) bool {
	if len(res.Flags) >= cfg.SeverityThreshold {
		return true
	}
	for _, critical := range cfg.CriticalFlags {
		for _, flag := range res.Flags {
			if flag == critical {
				return true
			}
		}
	}
	return false
}

// Len returns the number of exceptions under review.
func (l *Ledger) Len() int {
	return len(l.results)
}

// SelectedCount returns how many exceptions are currently selected.
func (l *Ledger) SelectedCount() int {
	count := 0
	for _, d := range l.decisions {
		if d.Selected {
			count++
		}
	}
	return count
}

// Toggle flips the decision for one exception order.
func (l *Ledger) Toggle(orderID int) (model.ExceptionDecision, error) {
	d, ok := l.decisions[orderID]
	if !ok {
		return model.ExceptionDecision{}, appErrors.NewOrderNotFound(orderID)
	}
	d.Selected = !d.Selected
	return *d, nil
}

// ToggleAll is the single aggregate control from the review screen: when
// every decision is selected it deselects all, otherwise it selects all.
// Returns the resulting selected state.
func (l *Ledger) ToggleAll() bool {
	selected := l.SelectedCount() != len(l.decisions) || len(l.decisions) == 0
	for _, d := range l.decisions {
		d.Selected = selected
	}
	return selected
}

// DeselectAll clears every decision.
func (l *Ledger) DeselectAll() {
	for _, d := range l.decisions {
		d.Selected = false
	}
}

// Items returns the exceptions in the requested presentation order without
// mutating decision state. Ties break by order id ascending. Unknown sort
// keys fall back to due date.
func (l *Ledger) Items(sortKey string) []Item {
	items := make([]Item, 0, len(l.results))
	for _, res := range l.results {
		item := Item{Order: l.orders[res.OrderID], Result: res}
		if d, ok := l.decisions[res.OrderID]; ok {
			item.Selected = d.Selected
		}
		items = append(items, item)
	}

	less := func(a, b Item) bool { return a.Order.ID < b.Order.ID }
	switch sortKey {
	case SortByValue:
		less = func(a, b Item) bool {
			if a.Order.Value != b.Order.Value {
				return a.Order.Value < b.Order.Value
			}
			return a.Order.ID < b.Order.ID
		}
	case SortByCustomer:
		less = func(a, b Item) bool {
			if a.Order.CustomerName != b.Order.CustomerName {
				return a.Order.CustomerName < b.Order.CustomerName
			}
			return a.Order.ID < b.Order.ID
		}
	default: // SortByDueDate
		less = func(a, b Item) bool {
			if !a.Order.DueDate.Equal(b.Order.DueDate) {
				return a.Order.DueDate.Before(b.Order.DueDate)
			}
			return a.Order.ID < b.Order.ID
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
	return items
}

// Confirm returns the ids of the selected exceptions. Every exception must
// hold an explicit decision record; NewLedger guarantees that, but the check
// stays as a guard against external id removal.
func (l *Ledger) Confirm() ([]int, error) {
	missing := 0
	for _, res := range l.results {
		if _, ok := l.decisions[res.OrderID]; !ok {
			missing++
		}
	}
	if missing > 0 {
		return nil, appErrors.NewIncompleteReview(missing)
	}

	selected := []int{}
	for _, res := range l.results {
		if l.decisions[res.OrderID].Selected {
			selected = append(selected, res.OrderID)
		}
	}
	return selected, nil
}
