package in_mem

import (
	"context"
	"strings"
	"sync"

	"github.com/DjordjeVuckovic/sportsmap/internal/apperr"
	"github.com/DjordjeVuckovic/sportsmap/internal/domain"
	"github.com/google/uuid"
)

// InMemService is a threadsafe in-memory EntityService used for local runs
// and tests. Names are unique per entity type, matching the remote API.
type InMemService struct {
	storageLock sync.RWMutex
	storage     map[domain.EntityType]map[uuid.UUID]domain.Entity
}

func NewInMemService() *InMemService {
	return &InMemService{
		storage: make(map[domain.EntityType]map[uuid.UUID]domain.Entity),
	}
}

// Seed inserts entities directly, bypassing uniqueness checks. Test setup only.
func (s *InMemService) Seed(entities ...domain.Entity) {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()
	for _, e := range entities {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		s.bucket(e.Type)[e.ID] = e
	}
}

func (s *InMemService) List(_ context.Context, t domain.EntityType) ([]domain.Entity, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	out := make([]domain.Entity, 0, len(s.storage[t]))
	for _, e := range s.storage[t] {
		out = append(out, e)
	}
	return out, nil
}

func (s *InMemService) FindByName(_ context.Context, t domain.EntityType, name string) (*domain.Entity, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	for _, e := range s.storage[t] {
		if strings.EqualFold(e.Name, name) {
			found := e
			return &found, nil
		}
	}
	return nil, apperr.NewNotFound(string(t), name)
}

func (s *InMemService) Create(_ context.Context, t domain.EntityType, attrs map[string]any) (*domain.Entity, error) {
	name, _ := attrs["name"].(string)

	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	if name != "" {
		for _, e := range s.storage[t] {
			if strings.EqualFold(e.Name, name) {
				return nil, apperr.NewDuplicate(string(t) + " \"" + name + "\" already exists")
			}
		}
	}

	entity := domain.Entity{
		ID:         uuid.New(),
		Type:       t,
		Name:       name,
		Attributes: cloneAttrs(attrs),
	}
	s.bucket(t)[entity.ID] = entity
	return &entity, nil
}

func (s *InMemService) UpdateByName(_ context.Context, t domain.EntityType, name string, patch map[string]any) (*domain.Entity, error) {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	for id, e := range s.storage[t] {
		if strings.EqualFold(e.Name, name) {
			if e.Attributes == nil {
				e.Attributes = make(map[string]any)
			}
			for k, v := range patch {
				if k == "name" {
					if newName, ok := v.(string); ok && newName != "" {
						e.Name = newName
					}
					continue
				}
				e.Attributes[k] = v
			}
			s.storage[t][id] = e
			found := e
			return &found, nil
		}
	}
	return nil, apperr.NewNotFound(string(t), name)
}

func (s *InMemService) bucket(t domain.EntityType) map[uuid.UUID]domain.Entity {
	if s.storage[t] == nil {
		s.storage[t] = make(map[uuid.UUID]domain.Entity)
	}
	return s.storage[t]
}

func cloneAttrs(attrs map[string]any) map[string]any {
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}
