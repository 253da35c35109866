package service

import (
	"errors"
	"fmt"
	"log"
)

var ErrCircularDependency = errors.New("circular dependency detected in services")

// Hub runs the lifecycle of the process services
// Dependencies come first; otherwise services keep their registration order
// It is driven from the entrypoint goroutine only
type Hub struct {
	services []Service
	byName   map[string]Service
	started  []Service
}

func NewHub() *Hub {
	return &Hub{byName: make(map[string]Service)}
}

// Register adds svc; names must be unique
func (h *Hub) Register(svc Service) error {
	name := svc.Name()
	if _, dup := h.byName[name]; dup {
		return fmt.Errorf("service already registered: %s", name)
	}
	h.byName[name] = svc
	h.services = append(h.services, svc)
	return nil
}

// InitAll initializes every service after its dependencies, passing args[name]
// A failure stops the services already initialized, newest first
func (h *Hub) InitAll(args map[string][]any) error {
	order, err := h.order()
	if err != nil {
		return err
	}
	h.services = order

	for i, svc := range order {
		if err := svc.Init(args[svc.Name()]...); err != nil {
			stopReverse(order[:i])
			return fmt.Errorf("service %s init failed: %w", svc.Name(), err)
		}
	}
	return nil
}

// StartAll starts services in init order, rolling back on failure
func (h *Hub) StartAll() error {
	h.started = h.started[:0]
	for _, svc := range h.services {
		if err := svc.Start(); err != nil {
			stopReverse(h.started)
			h.started = nil
			return fmt.Errorf("service %s start failed: %w", svc.Name(), err)
		}
		h.started = append(h.started, svc)
	}
	return nil
}

// StopAll stops started services in reverse order; errors are logged, not returned
func (h *Hub) StopAll() {
	stopReverse(h.started)
	h.started = nil
}

func stopReverse(services []Service) {
	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Stop(); err != nil {
			log.Printf("service %s stop: %v", services[i].Name(), err)
		}
	}
}

// order resolves dependencies depth first, visiting services in registration order
func (h *Hub) order() ([]Service, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(h.services))
	out := make([]Service, 0, len(h.services))

	var visit func(svc Service) error
	visit = func(svc Service) error {
		name := svc.Name()
		switch state[name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("%w: %s", ErrCircularDependency, name)
		}
		state[name] = visiting
		for _, dep := range svc.Dependencies() {
			d, ok := h.byName[dep]
			if !ok {
				return fmt.Errorf("service %s depends on unregistered service: %s", name, dep)
			}
			if err := visit(d); err != nil {
				return err
			}
		}
		state[name] = done
		out = append(out, svc)
		return nil
	}

	for _, svc := range h.services {
		if err := visit(svc); err != nil {
			return nil, err
		}
	}
	return out, nil
}
