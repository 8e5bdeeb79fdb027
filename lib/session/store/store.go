package sessionstore

import (
	"strings"
	"sync"
)

// Provider хранилище значений кэша сессии по клиентам
type Provider interface {
	Get(clientID, key string) (value string, found bool, err error)
	Set(clientID, key, value string) error
	Delete(clientID string, keys ...string) error
}

var Instance Provider

func NewMemoryInstance() Provider {
	return &memoryImpl{
		values: map[string]map[string]string{},
	}
}

type memoryImpl struct {
	mu     sync.RWMutex
	values map[string]map[string]string
}

func (i *memoryImpl) Get(clientID, key string) (string, bool, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	client, ok := i.values[clientID]
	if !ok {
		return "", false, nil
	}
	value, ok := client[key]
	return value, ok, nil
}

// Set значения переживают запрос, поэтому хранятся копии
func (i *memoryImpl) Set(clientID, key, value string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	client, ok := i.values[clientID]
	if !ok {
		client = map[string]string{}
		i.values[strings.Clone(clientID)] = client
	}
	client[strings.Clone(key)] = strings.Clone(value)
	return nil
}

func (i *memoryImpl) Delete(clientID string, keys ...string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	client, ok := i.values[clientID]
	if !ok {
		return nil
	}
	for _, key := range keys {
		delete(client, key)
	}
	if len(client) == 0 {
		delete(i.values, clientID)
	}
	return nil
}
