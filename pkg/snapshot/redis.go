package snapshot

import (
	"context"
	"errors"

	"github.com/ptaemr/platform/pkg/chart"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the serialized record set under a single key, the closest
// server-side analog to the browser local-storage model this replaces.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Save(ctx context.Context, records []*chart.PatientRecord) error {
	data, err := marshalRecords(records)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key, data, 0).Err()
}

func (s *RedisStore) Load(ctx context.Context) ([]*chart.PatientRecord, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return unmarshalRecords(data)
}
