package clip

// headlessBackend is the no-op fallback used when no clipboard service is
// reachable. Reads report an empty clipboard; writes fail with
// ErrUnavailable so callers get an observable signal.
type headlessBackend struct{}

func (b *headlessBackend) Name() string         { return "headless (no clipboard)" }
func (b *headlessBackend) Read() (*Raw, error)  { return nil, nil }
func (b *headlessBackend) Write(raw *Raw) error { return ErrUnavailable }
func (b *headlessBackend) Close()               {}
