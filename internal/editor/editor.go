// Package editor holds the document state store for one invoice editing
// session. Every mutation is copy-on-write: a new invoice version replaces
// the previous one wholesale, derived totals are recomputed only when the
// line item sequence changed, and an optional observer is notified exactly
// once per settled mutation.
package editor

import (
	"invoicepad/internal/calc"
	"invoicepad/internal/domain"
)

// Observer receives the full settled invoice after every successful
// mutation, synchronously with respect to the triggering operation.
type Observer func(domain.Invoice)

// Editor owns the canonical invoice value for a session. It is not safe for
// concurrent use; callers serialize access (one logical writer per session).
type Editor struct {
	invoice  domain.Invoice
	totals   domain.Totals
	observer Observer
	maxLines int
}

// Option configures an Editor.
type Option func(*Editor)

// WithObserver registers the change observer invoked after each mutation.
func WithObserver(obs Observer) Option {
	return func(e *Editor) { e.observer = obs }
}

// WithMaxLineItems caps the line item sequence length. Zero means no cap.
func WithMaxLineItems(n int) Option {
	return func(e *Editor) { e.maxLines = n }
}

// New creates an Editor seeded from initial, or from the built-in default
// template when initial is nil. The caller's value is copied, never aliased.
func New(initial *domain.Invoice, opts ...Option) *Editor {
	e := &Editor{}
	for _, opt := range opts {
		opt(e)
	}

	if initial != nil {
		e.invoice = initial.Clone()
		if e.invoice.LineItems == nil {
			e.invoice.LineItems = []domain.LineItem{}
		}
	} else {
		e.invoice = domain.DefaultInvoice()
	}
	e.totals = calc.Aggregate(e.invoice.LineItems)
	return e
}

// Invoice returns a copy of the current settled invoice.
func (e *Editor) Invoice() domain.Invoice {
	return e.invoice.Clone()
}

// Totals returns the derived totals for the current invoice version.
func (e *Editor) Totals() domain.Totals {
	return e.totals
}

// LineAmounts returns the per-row display amounts for the current invoice.
func (e *Editor) LineAmounts() []string {
	amounts := make([]string, len(e.invoice.LineItems))
	for i, l := range e.invoice.LineItems {
		amounts[i] = calc.LineAmount(l.Quantity, l.Rate, l.CGST, l.SGST)
	}
	return amounts
}

// EditField replaces a single header attribute. The line item collection is
// rejected here, logo_width only accepts numeric values, and every other
// attribute only accepts strings. Header edits never touch the line items,
// so totals are not recomputed.
func (e *Editor) EditField(name string, value any) error {
	next := e.invoice.Clone()
	if err := domain.SetHeaderField(&next, name, value); err != nil {
		return err
	}
	e.invoice = next
	e.notify()
	return nil
}

// EditLineField replaces one field of the line item at index. Numeric fields
// pass through the input smoothing policy; description and hsn_sac are
// stored verbatim.
func (e *Editor) EditLineField(index int, name, value string) error {
	if index < 0 || index >= len(e.invoice.LineItems) {
		return domain.ErrLineOutOfRange
	}

	stored := value
	if domain.NumericLineField(name) {
		stored = calc.NormalizeNumericInput(value)
	}

	next := e.invoice.Clone()
	if err := domain.SetLineField(&next.LineItems[index], name, stored); err != nil {
		return err
	}
	e.commitLines(next)
	return nil
}

// AddLine appends one blank line item to the end of the sequence.
func (e *Editor) AddLine() error {
	if e.maxLines > 0 && len(e.invoice.LineItems) >= e.maxLines {
		return domain.ErrLineLimit
	}
	next := e.invoice.Clone()
	next.LineItems = append(next.LineItems, domain.BlankLineItem())
	e.commitLines(next)
	return nil
}

// RemoveLine deletes the line item at index, preserving the relative order
// of the remaining rows.
func (e *Editor) RemoveLine(index int) error {
	if index < 0 || index >= len(e.invoice.LineItems) {
		return domain.ErrLineOutOfRange
	}
	next := e.invoice.Clone()
	next.LineItems = append(next.LineItems[:index], next.LineItems[index+1:]...)
	e.commitLines(next)
	return nil
}

// commitLines installs a new invoice version whose line items changed and
// recomputes totals before observers see the value.
func (e *Editor) commitLines(next domain.Invoice) {
	e.invoice = next
	e.totals = calc.Aggregate(e.invoice.LineItems)
	e.notify()
}

func (e *Editor) notify() {
	if e.observer != nil {
		e.observer(e.invoice.Clone())
	}
}
