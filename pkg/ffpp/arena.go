package ffpp

// arena collects release functions for acquired resources and runs them in
// reverse acquisition order. free is idempotent.
type arena struct {
	releases []func()
}

func (a *arena) add(release func()) {
	a.releases = append(a.releases, release)
}

func (a *arena) free() {
	for i := len(a.releases) - 1; i >= 0; i-- {
		a.releases[i]()
	}
	a.releases = nil
}

func (a *arena) size() int {
	return len(a.releases)
}
