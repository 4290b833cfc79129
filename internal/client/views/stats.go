package views

import (
	"context"

	"github.com/dmitrijs2005/traffichub/internal/client/gate"
	"github.com/dmitrijs2005/traffichub/internal/client/models"
)

// StatsView fetches one snapshot on Load. Dashboard and profile are both
// instances.
type StatsView[T any] struct {
	base
	fetch    func(context.Context) (*T, error)
	fallback string
	data     *T
}

type (
	DashboardView = StatsView[models.DashboardStats]
	ProfileView   = StatsView[models.ProfileStats]
)

func NewDashboard(d Deps) *DashboardView {
	v := &DashboardView{fallback: "Failed to fetch dashboard stats"}
	v.init(string(gate.ViewDashboard), d)
	v.fetch = v.deps.API.DashboardStats
	return v
}

func NewProfile(d Deps) *ProfileView {
	v := &ProfileView{fallback: "Failed to fetch profile stats"}
	v.init(string(gate.ViewProfile), d)
	v.fetch = v.deps.API.ProfileStats
	return v
}

func (v *StatsView[T]) Load(ctx context.Context) {
	v.mu.Lock()
	seq, ok := v.startLocked()
	v.data = nil
	v.mu.Unlock()
	if !ok {
		return
	}

	data, err := v.fetch(ctx)
	v.finish(ctx, seq, err, v.fallback, func() {
		if err != nil {
			v.data = nil
			return
		}
		v.data = data
	})
}

// Data returns the loaded snapshot, nil unless the last Load succeeded.
func (v *StatsView[T]) Data() *T {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.data == nil {
		return nil
	}
	cp := *v.data
	return &cp
}
