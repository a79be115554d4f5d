package wizard

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Yamir213/sistema-licencias-ica/internal/domain"
	"github.com/Yamir213/sistema-licencias-ica/internal/logger"
)

type entradaMemoria struct {
	raw    []byte
	expira time.Time
}

// memoryStore keeps sessions in-process. It serves single-instance
// deployments and tests; multi-instance deployments use the Redis store.
type memoryStore struct {
	mu   sync.Mutex
	data map[string]entradaMemoria
	ttl  time.Duration
	log  *logger.Logger
}

func NewMemoryStore(ttl time.Duration, log *logger.Logger) Store {
	return &memoryStore{
		data: make(map[string]entradaMemoria),
		ttl:  ttl,
		log:  log.With("store", "WizardMemoryStore"),
	}
}

func (m *memoryStore) Get(ctx context.Context, id string) (*Sesion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ent, ok := m.data[id]
	if !ok {
		return nil, domain.NotFoundError("sesión no encontrada")
	}
	if time.Now().After(ent.expira) {
		delete(m.data, id)
		return nil, domain.NotFoundError("sesión expirada")
	}

	var s Sesion
	if err := json.Unmarshal(ent.raw, &s); err != nil {
		delete(m.data, id)
		return nil, domain.NotFoundError("sesión corrupta")
	}
	return &s, nil
}

func (m *memoryStore) Put(ctx context.Context, s *Sesion) error {
	s.ActualizadoEn = time.Now()
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[s.ID] = entradaMemoria{raw: raw, expira: time.Now().Add(m.ttl)}
	return nil
}

func (m *memoryStore) CompareAndSwap(ctx context.Context, s *Sesion, expected int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ent, ok := m.data[s.ID]
	if !ok || time.Now().After(ent.expira) {
		delete(m.data, s.ID)
		return domain.NotFoundError("sesión no encontrada")
	}

	var actual Sesion
	if err := json.Unmarshal(ent.raw, &actual); err != nil {
		delete(m.data, s.ID)
		return domain.NotFoundError("sesión corrupta")
	}
	if actual.Version != expected {
		return domain.ConflictError("la sesión fue modificada por otra petición")
	}

	s.Version = expected + 1
	s.ActualizadoEn = time.Now()
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.data[s.ID] = entradaMemoria{raw: raw, expira: time.Now().Add(m.ttl)}
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}
