package sim

// applyEffects routes one button transition through the button's effect
// list. Effects run in authored order and each write lands immediately, so
// when two effects in the same frame target the same laser the last one
// wins. Toggle reads the laser's effective state at the moment it runs,
// which makes toggling twice in one frame a no-op by construction.
//
// The return value counts laser references that resolved to nothing.
// Validation rejects such levels; the count lets hosts running unvalidated
// data observe the misses instead of crashing.
func (r *Runtime) applyEffects(b *Button, tr Transition) (dangling int) {
	for i := range b.Effects {
		ef := &b.Effects[i]
		want, ok := ef.Trigger.transition()
		if !ok || want != tr {
			continue
		}
		for _, id := range ef.Action.Lasers {
			l, ok := r.lasers.Get(id)
			if !ok {
				dangling++
				continue
			}
			switch ef.Action.Kind {
			case ActionTurnOn:
				l.setOverride(true)
			case ActionTurnOff:
				l.setOverride(false)
			case ActionToggle:
				l.setOverride(!l.firing())
			}
		}
	}
	return dangling
}
