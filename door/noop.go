package door

// Noop implements Opener but does nothing. Used when no latch
// hardware is configured.
type Noop struct{}

// Open implements Opener.Open.
func (n *Noop) Open() error { return nil }

// Close implements Opener.Close.
func (n *Noop) Close() error { return nil }

// Release implements Opener.Release.
func (n *Noop) Release() error { return nil }
