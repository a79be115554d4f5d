package wizard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Yamir213/sistema-licencias-ica/internal/domain"
	"github.com/Yamir213/sistema-licencias-ica/internal/logger"
)

func abrirStores(t *testing.T, ttl time.Duration) map[string]Store {
	t.Helper()
	log := logger.NewNop()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(ttl, log),
		"redis":  NewRedisStore(rdb, ttl, log),
	}
}

func TestStorePutGetDelete(t *testing.T) {
	ctx := context.Background()
	for nombre, store := range abrirStores(t, time.Hour) {
		t.Run(nombre, func(t *testing.T) {
			s := NuevaSesion(7)
			if err := store.Put(ctx, s); err != nil {
				t.Fatalf("Put: %v", err)
			}

			got, err := store.Get(ctx, s.ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.UsuarioID != 7 || got.PasoActual != 1 {
				t.Fatalf("sesión inesperada: %+v", got)
			}

			if err := store.Delete(ctx, s.ID); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := store.Get(ctx, s.ID); !errors.Is(err, domain.ErrNotFound) {
				t.Fatalf("esperaba not found tras Delete, obtuve %v", err)
			}
		})
	}
}

func TestStoreGetAusente(t *testing.T) {
	ctx := context.Background()
	for nombre, store := range abrirStores(t, time.Hour) {
		t.Run(nombre, func(t *testing.T) {
			if _, err := store.Get(ctx, "no-existe"); !errors.Is(err, domain.ErrNotFound) {
				t.Fatalf("esperaba not found, obtuve %v", err)
			}
		})
	}
}

func TestStoreCompareAndSwap(t *testing.T) {
	ctx := context.Background()
	for nombre, store := range abrirStores(t, time.Hour) {
		t.Run(nombre, func(t *testing.T) {
			s := NuevaSesion(3)
			if err := store.Put(ctx, s); err != nil {
				t.Fatalf("Put: %v", err)
			}

			s.PasoActual = 2
			if err := store.CompareAndSwap(ctx, s, 0); err != nil {
				t.Fatalf("CAS inicial: %v", err)
			}
			if s.Version != 1 {
				t.Fatalf("Version = %d, esperaba 1", s.Version)
			}

			// Una segunda escritura con la versión vieja debe perder.
			stale := NuevaSesion(3)
			stale.ID = s.ID
			if err := store.CompareAndSwap(ctx, stale, 0); !errors.Is(err, domain.ErrConflict) {
				t.Fatalf("esperaba conflict con versión vieja, obtuve %v", err)
			}

			got, err := store.Get(ctx, s.ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.PasoActual != 2 || got.Version != 1 {
				t.Fatalf("sesión tras CAS: %+v", got)
			}
		})
	}
}

func TestStoreCASSobreAusente(t *testing.T) {
	ctx := context.Background()
	for nombre, store := range abrirStores(t, time.Hour) {
		t.Run(nombre, func(t *testing.T) {
			s := NuevaSesion(1)
			if err := store.CompareAndSwap(ctx, s, 0); !errors.Is(err, domain.ErrNotFound) {
				t.Fatalf("esperaba not found, obtuve %v", err)
			}
		})
	}
}

func TestMemoryStoreExpira(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10*time.Millisecond, logger.NewNop())

	s := NuevaSesion(5)
	if err := store.Put(ctx, s); err != nil {
		t.Fatalf("Put: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, err := store.Get(ctx, s.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("esperaba not found tras expirar, obtuve %v", err)
	}
}

func TestRedisStoreExpira(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNop()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store := NewRedisStore(rdb, time.Minute, log)
	s := NuevaSesion(5)
	if err := store.Put(ctx, s); err != nil {
		t.Fatalf("Put: %v", err)
	}

	mr.FastForward(2 * time.Minute)
	if _, err := store.Get(ctx, s.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("esperaba not found tras expirar la clave, obtuve %v", err)
	}
}
