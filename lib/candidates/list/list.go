package candidatelist

import (
	"recruit-portal/models"
	candidateapimodels "recruit-portal/models/api/candidate"
	"sync"
)

const ItemsPerPage = 15

// List список кандидатов клиента, единственная локальная мутация - статус
type List struct {
	mu    sync.RWMutex
	items []candidateapimodels.Candidate
}

func New() *List {
	return &List{}
}

func (l *List) Replace(items []candidateapimodels.Candidate) {
	copied := make([]candidateapimodels.Candidate, len(items))
	copy(copied, items)
	l.mu.Lock()
	l.items = copied
	l.mu.Unlock()
}

func (l *List) Find(candidateID string) (candidateapimodels.Candidate, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, item := range l.items {
		if item.ID.String() == candidateID {
			return item, true
		}
	}
	return candidateapimodels.Candidate{}, false
}

// SetStatus остальные поля кандидата не меняются
func (l *List) SetStatus(candidateID string, status models.CandidateStatus) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for idx := range l.items {
		if l.items[idx].ID.String() == candidateID {
			l.items[idx].Status = status
			return true
		}
	}
	return false
}

func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

func (l *List) Items() []candidateapimodels.Candidate {
	l.mu.RLock()
	defer l.mu.RUnlock()
	result := make([]candidateapimodels.Candidate, len(l.items))
	copy(result, l.items)
	return result
}

// Page page начинается с 1, номер за пределами списка приводится к границе
func (l *List) Page(page int) candidateapimodels.CandidatePage {
	l.mu.RLock()
	defer l.mu.RUnlock()
	totalPages := (len(l.items) + ItemsPerPage - 1) / ItemsPerPage
	if totalPages == 0 {
		return candidateapimodels.CandidatePage{
			Items:      []candidateapimodels.Candidate{},
			Page:       1,
			TotalPages: 0,
		}
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * ItemsPerPage
	end := start + ItemsPerPage
	if end > len(l.items) {
		end = len(l.items)
	}
	items := make([]candidateapimodels.Candidate, end-start)
	copy(items, l.items[start:end])
	return candidateapimodels.CandidatePage{
		Items:      items,
		Page:       page,
		TotalPages: totalPages,
	}
}

// Registry списки по клиентам
type Registry struct {
	mu    sync.Mutex
	lists map[string]*List //map[clientID]
}

func NewRegistry() *Registry {
	return &Registry{
		lists: map[string]*List{},
	}
}

func (r *Registry) Get(clientID string) *List {
	r.mu.Lock()
	defer r.mu.Unlock()
	list, ok := r.lists[clientID]
	if !ok {
		list = New()
		r.lists[clientID] = list
	}
	return list
}

func (r *Registry) Drop(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lists, clientID)
}
