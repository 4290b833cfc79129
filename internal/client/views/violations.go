package views

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/traffichub/internal/client/gate"
	"github.com/dmitrijs2005/traffichub/internal/client/models"
)

type ViolationsView struct {
	base
	plate   string
	results []models.Violation
}

func NewViolations(d Deps) *ViolationsView {
	v := &ViolationsView{}
	v.init(string(gate.ViewViolations), d)
	return v
}

// Search looks up the violations of a plate. Results of an earlier search are
// cleared before the new one starts.
func (v *ViolationsView) Search(ctx context.Context, plate string) {
	plate = strings.TrimSpace(plate)

	v.mu.Lock()
	v.plate = plate
	v.results = nil
	if plate == "" {
		v.rejectLocked(invalid("plate", "Please enter a license plate number"))
		v.mu.Unlock()
		return
	}
	seq, ok := v.startLocked()
	v.mu.Unlock()
	if !ok {
		return
	}

	list, err := v.deps.API.ListViolations(ctx, plate)
	v.finish(ctx, seq, err, "No violations found or an error occurred", func() {
		if err != nil {
			v.results = nil
			return
		}
		v.results = list
	})
}

func (v *ViolationsView) Plate() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.plate
}

func (v *ViolationsView) Results() []models.Violation {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]models.Violation(nil), v.results...)
}

// EvidenceLink is the address of the violation's evidence image, "" when it
// has none.
func (v *ViolationsView) EvidenceLink(viol models.Violation) string {
	if !viol.HasEvidence() {
		return ""
	}
	return v.deps.API.EvidenceURL(viol.EvidenceImage)
}
