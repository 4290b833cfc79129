package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/traffichub/internal/client/gate"
	"github.com/dmitrijs2005/traffichub/internal/client/models"
	"github.com/dmitrijs2005/traffichub/internal/timex"
)

// UPIID is the payee shown on the QR panel.
const UPIID = "csdevanarayan@oksbi"

const msgInvalidViolationID = "Please enter a valid Violation ID"

// Panel is the sub-form the payments page currently shows.
type Panel int

const (
	PanelForm Panel = iota
	PanelCard
	PanelUPI
)

func (p Panel) String() string {
	switch p {
	case PanelCard:
		return "card"
	case PanelUPI:
		return "upi"
	default:
		return "form"
	}
}

type CardField int

const (
	CardNumber CardField = iota
	CardHolder
	CardExpiry
	CardCVV
)

type PaymentsView struct {
	base

	// ctx lives as long as the view; background lookups use it.
	ctx      context.Context
	cancel   context.CancelFunc
	debounce *timex.Debouncer

	idText        string
	lookupSeq     uint64
	violationID   int64
	fine          float64
	hasFine       bool
	lookupPending bool

	method models.PaymentMethod
	panel  Panel
	card   models.CardDetails
	paying bool
}

func NewPayments(d Deps) *PaymentsView {
	v := &PaymentsView{method: models.PaymentCreditCard}
	v.init(string(gate.ViewPayments), d)
	v.ctx, v.cancel = context.WithCancel(context.Background())
	v.debounce = timex.NewDebouncer(v.deps.LookupDelay)
	return v
}

// TypeViolationID records the current identifier text. The lookup runs once
// the text has been left alone for the lookup delay; each call restarts the
// wait and discards any answer for an older text. Rejected actions do not
// cancel a scheduled lookup.
func (v *PaymentsView) TypeViolationID(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}

	v.idText = text
	v.seq++
	v.lookupSeq++
	lseq := v.lookupSeq
	v.hasFine = false
	v.panel = PanelForm

	if strings.TrimSpace(text) == "" {
		v.debounce.Cancel()
		v.lookupPending = false
		return
	}

	v.lookupPending = true
	v.debounce.Trigger(func() { v.lookup(text, lseq) })
}

func (v *PaymentsView) lookup(text string, lseq uint64) {
	v.mu.Lock()
	if !v.lookupCurrentLocked(lseq) {
		v.mu.Unlock()
		return
	}
	v.status = StatusLoading
	v.msg, v.err = "", nil
	v.mu.Unlock()

	id := strings.TrimSpace(text)
	viol, err := v.deps.API.GetViolation(v.ctx, id)
	if err == nil && viol.Paid() {
		err = invalid("violation", fmt.Sprintf("Violation %s is already paid", id))
	}

	v.mu.Lock()
	if !v.lookupCurrentLocked(lseq) {
		v.mu.Unlock()
		v.deps.Log.Debug(v.ctx, "stale lookup dropped", "view", v.name, "violation_id", id)
		return
	}
	v.settleLocked(err, "Failed to fetch violation details", func() {
		v.lookupPending = false
		if err != nil {
			v.hasFine = false
			return
		}
		v.violationID = viol.ViolationID
		v.fine = viol.FineAmount
		v.hasFine = true
		v.msg = fmt.Sprintf("Fine amount: ₹%.2f", viol.FineAmount)
	})
	v.mu.Unlock()

	v.afterError(v.ctx, err)
}

// lookupCurrentLocked reports whether lookup lseq is still the newest one.
// A closed view has no pending lookup.
func (v *PaymentsView) lookupCurrentLocked(lseq uint64) bool {
	if v.closed {
		v.lookupPending = false
		return false
	}
	return lseq == v.lookupSeq
}

// WaitSettled blocks until no lookup is scheduled or running.
func (v *PaymentsView) WaitSettled(ctx context.Context) error {
	t := time.NewTicker(5 * time.Millisecond)
	defer t.Stop()
	for {
		v.mu.Lock()
		done := !v.lookupPending || v.closed
		v.mu.Unlock()
		if done {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

// SelectMethod switches the payment method and hides any open sub-form.
func (v *PaymentsView) SelectMethod(m models.PaymentMethod) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !m.Valid() {
		v.rejectLocked(invalid("method", fmt.Sprintf("Unknown payment method %q", m)))
		return
	}
	v.method = m
	v.panel = PanelForm
}

// Proceed acts on the selected method: UPI opens the QR panel, Credit Card
// opens the card form, Net Banking pays right away.
func (v *PaymentsView) Proceed(ctx context.Context) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	if !v.hasFine {
		v.rejectLocked(invalid("violation", msgInvalidViolationID))
		v.mu.Unlock()
		return
	}

	switch v.method {
	case models.PaymentUPI:
		v.panel = PanelUPI
		v.status = StatusIdle
		v.msg = fmt.Sprintf("Scan to pay with any UPI app. UPI ID: %s. Amount: ₹%.2f", UPIID, v.fine)
		v.mu.Unlock()
	case models.PaymentCreditCard:
		v.panel = PanelCard
		v.status = StatusIdle
		v.msg = "Enter card details"
		v.mu.Unlock()
	default:
		v.mu.Unlock()
		v.pay(ctx, models.PaymentNetBanking, nil, "Payment failed. Please try again.", "Payment successful!")
	}
}

func (v *PaymentsView) SetCardField(f CardField, raw string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	switch f {
	case CardNumber:
		v.card.CardNumber = FormatCardNumber(raw)
	case CardHolder:
		v.card.CardHolder = strings.TrimSpace(raw)
	case CardExpiry:
		v.card.ExpiryDate = FormatExpiry(raw)
	case CardCVV:
		v.card.CVV = FormatCVV(raw)
	}
}

func (v *PaymentsView) SubmitCard(ctx context.Context) {
	v.mu.Lock()
	if v.panel != PanelCard {
		v.rejectLocked(invalid("method", "Select Credit Card and press Proceed first"))
		v.mu.Unlock()
		return
	}
	card := v.card
	if !card.Complete() {
		v.rejectLocked(invalid("card", "Please fill all card details"))
		v.mu.Unlock()
		return
	}
	v.mu.Unlock()

	v.pay(ctx, models.PaymentCreditCard, &card, "Credit card payment failed. Please try again.", "Credit card payment successful!")
}

// ConfirmUPI is the "I've Paid" action of the QR panel.
func (v *PaymentsView) ConfirmUPI(ctx context.Context) {
	v.mu.Lock()
	if v.panel != PanelUPI {
		v.rejectLocked(invalid("method", "Select UPI and press Proceed first"))
		v.mu.Unlock()
		return
	}
	v.mu.Unlock()

	v.pay(ctx, models.PaymentUPI, nil, "UPI payment verification failed", "UPI payment successful!")
}

// Cancel closes the open sub-form without paying.
func (v *PaymentsView) Cancel() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.panel = PanelForm
}

func (v *PaymentsView) pay(ctx context.Context, m models.PaymentMethod, card *models.CardDetails, failMsg, okMsg string) {
	v.mu.Lock()
	if v.paying || !v.hasFine {
		v.mu.Unlock()
		return
	}
	seq, ok := v.startLocked()
	if !ok {
		v.mu.Unlock()
		return
	}
	v.paying = true
	id := v.violationID
	v.mu.Unlock()

	_, err := v.deps.API.PayFine(ctx, id, m, card)

	v.finish(ctx, seq, err, failMsg, func() {
		if err != nil {
			return
		}
		v.msg = okMsg
		v.panel = PanelForm
		v.card = models.CardDetails{}
		v.hasFine = false
	})

	v.mu.Lock()
	v.paying = false
	v.mu.Unlock()
	if err == nil {
		v.deps.Log.Info(ctx, "fine paid", "violation_id", id, "method", string(m))
	}
}

func (v *PaymentsView) Close() {
	v.mu.Lock()
	v.closeLocked()
	v.lookupPending = false
	v.mu.Unlock()

	v.debounce.Stop()
	v.cancel()
}

func (v *PaymentsView) ViolationIDText() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.idText
}

// FineAmount returns the looked up fine, ok=false until a lookup succeeded.
func (v *PaymentsView) FineAmount() (float64, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.fine, v.hasFine
}

func (v *PaymentsView) Method() models.PaymentMethod {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.method
}

func (v *PaymentsView) Panel() Panel {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.panel
}

func (v *PaymentsView) Card() models.CardDetails {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.card
}
