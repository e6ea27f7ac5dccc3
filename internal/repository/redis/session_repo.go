package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/iggarsaudev/Api-IgLusShop/internal/cfg"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/clients"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/e"
	"github.com/jimlawless/whereami"
)

// SessionRepo хранит активные bearer-токены в Redis.
// Значение ключа — id пользователя; TTL задаёт срок жизни сессии,
// роль в сессии не хранится и читается из users на каждом запросе.
type SessionRepo struct {
	client *clients.RedisClient
	cfg    *cfg.AuthCfg
}

func NewSessionRepo(client *clients.RedisClient, cfg *cfg.AuthCfg) *SessionRepo {
	return &SessionRepo{
		client: client,
		cfg:    cfg,
	}
}

func (s *SessionRepo) Store(ctx context.Context, token string, userID int64) error {
	key := s.sessionKey(token)

	if err := s.client.Client.Set(ctx, key, userID, s.cfg.SessionTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Resolve возвращает id владельца токена. Неизвестный или истёкший
// токен неотличимы друг от друга: оба дают e.ErrUnauthenticated.
func (s *SessionRepo) Resolve(ctx context.Context, token string) (int64, error) {
	key := s.sessionKey(token)

	userID, err := s.client.Client.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return 0, e.ErrUnauthenticated
		}
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return userID, nil
}

func (s *SessionRepo) Delete(ctx context.Context, token string) error {
	key := s.sessionKey(token)

	if err := s.client.Client.Del(ctx, key).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (s *SessionRepo) sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}
