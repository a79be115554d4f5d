package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Yamir213/sistema-licencias-ica/internal/domain"
	"github.com/Yamir213/sistema-licencias-ica/internal/logger"
)

const prefijoSesion = "wizard:sesion:"

// redisStore keeps sessions in Redis so the wizard survives process restarts
// and works behind more than one instance. TTL handling is delegated to the
// key expiry.
type redisStore struct {
	rdb *goredis.Client
	ttl time.Duration
	log *logger.Logger
}

func NewRedisStore(rdb *goredis.Client, ttl time.Duration, log *logger.Logger) Store {
	return &redisStore{
		rdb: rdb,
		ttl: ttl,
		log: log.With("store", "WizardRedisStore"),
	}
}

func (r *redisStore) key(id string) string {
	return prefijoSesion + id
}

func (r *redisStore) Get(ctx context.Context, id string) (*Sesion, error) {
	raw, err := r.rdb.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, domain.NotFoundError("sesión no encontrada")
	}
	if err != nil {
		return nil, err
	}

	var s Sesion
	if err := json.Unmarshal(raw, &s); err != nil {
		_ = r.rdb.Del(ctx, r.key(id)).Err()
		return nil, domain.NotFoundError("sesión corrupta")
	}
	return &s, nil
}

func (r *redisStore) Put(ctx context.Context, s *Sesion) error {
	s.ActualizadoEn = time.Now()
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, r.key(s.ID), raw, r.ttl).Err()
}

func (r *redisStore) CompareAndSwap(ctx context.Context, s *Sesion, expected int64) error {
	key := r.key(s.ID)

	err := r.rdb.Watch(ctx, func(tx *goredis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, goredis.Nil) {
			return domain.NotFoundError("sesión no encontrada")
		}
		if err != nil {
			return err
		}

		var actual Sesion
		if err := json.Unmarshal(raw, &actual); err != nil {
			return domain.NotFoundError("sesión corrupta")
		}
		if actual.Version != expected {
			return domain.ConflictError("la sesión fue modificada por otra petición")
		}

		s.Version = expected + 1
		s.ActualizadoEn = time.Now()
		nuevo, err := json.Marshal(s)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, nuevo, r.ttl)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, goredis.TxFailedErr) {
		return domain.ConflictError("la sesión fue modificada por otra petición")
	}
	return err
}

func (r *redisStore) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, r.key(id)).Err()
}
