package service

import "fmt"

// Runner initializes and starts a set of services in dependency order
// and stops them in reverse
type Runner struct {
	services []Service
	byName   map[string]Service
	started  []Service
}

// NewRunner creates an empty runner
func NewRunner() *Runner {
	return &Runner{
		byName: make(map[string]Service),
	}
}

// Add registers a service. Duplicate names are an error
func (r *Runner) Add(s Service) error {
	if _, exists := r.byName[s.Name()]; exists {
		return fmt.Errorf("service %q already registered", s.Name())
	}
	r.services = append(r.services, s)
	r.byName[s.Name()] = s
	return nil
}

// StartAll inits all services in dependency order, then starts them in
// the same order. The first failure aborts and stops whatever started
func (r *Runner) StartAll() error {
	order, err := r.resolve()
	if err != nil {
		return err
	}
	for _, s := range order {
		if err := s.Init(); err != nil {
			r.StopAll()
			return fmt.Errorf("init %s: %w", s.Name(), err)
		}
	}
	for _, s := range order {
		if err := s.Start(); err != nil {
			r.StopAll()
			return fmt.Errorf("start %s: %w", s.Name(), err)
		}
		r.started = append(r.started, s)
	}
	return nil
}

// StopAll stops started services in reverse start order. Idempotent
func (r *Runner) StopAll() {
	for i := len(r.started) - 1; i >= 0; i-- {
		r.started[i].Stop()
	}
	r.started = nil
}

// resolve orders services so dependencies come first
func (r *Runner) resolve() ([]Service, error) {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, len(r.services))
	order := make([]Service, 0, len(r.services))

	var visit func(s Service) error
	visit = func(s Service) error {
		switch state[s.Name()] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("service dependency cycle through %q", s.Name())
		}
		state[s.Name()] = visiting
		for _, dep := range s.Dependencies() {
			d, ok := r.byName[dep]
			if !ok {
				return fmt.Errorf("service %q depends on unknown %q", s.Name(), dep)
			}
			if err := visit(d); err != nil {
				return err
			}
		}
		state[s.Name()] = done
		order = append(order, s)
		return nil
	}

	for _, s := range r.services {
		if err := visit(s); err != nil {
			return nil, err
		}
	}
	return order, nil
}
