package statusworkflow

import (
	"sync"
)

type Provider interface {
	Get(clientID string) *Workflow
	Drop(clientID string)
}

var Instance Provider

func NewHandler(factory func(clientID string) *Workflow) {
	Instance = NewRegistry(factory)
}

func NewRegistry(factory func(clientID string) *Workflow) Provider {
	return &registry{
		factory:   factory,
		workflows: map[string]*Workflow{},
	}
}

type registry struct {
	factory   func(clientID string) *Workflow
	mu        sync.Mutex
	workflows map[string]*Workflow //map[clientID]
}

func (r *registry) Get(clientID string) *Workflow {
	r.mu.Lock()
	defer r.mu.Unlock()
	workflow, ok := r.workflows[clientID]
	if !ok {
		workflow = r.factory(clientID)
		r.workflows[clientID] = workflow
	}
	return workflow
}

// Drop незавершенная отправка продолжит работу на старом экземпляре
func (r *registry) Drop(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.workflows, clientID)
}
