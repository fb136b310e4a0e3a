package indicator

// Noop implements Indicator but does nothing. Used when no LEDs are
// configured.
type Noop struct{}

// Idle implements Indicator.Idle.
func (n *Noop) Idle() {}

// Granted implements Indicator.Granted.
func (n *Noop) Granted() {}

// Denied implements Indicator.Denied.
func (n *Noop) Denied() {}

// Fault implements Indicator.Fault.
func (n *Noop) Fault() {}

// Release implements Indicator.Release.
func (n *Noop) Release() error { return nil }
