package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/chinnasivakrishna/brahmakosh-portal/internal/core/domain"
)

// ProfileCache is a short-TTL cache of per-role profiles keyed by a hash of
// the credential, so the per-navigation profile refresh does not hit the
// backend on every page. Cache failures are logged and treated as misses;
// the backend remains the source of truth.
// Key format: profile:<role>:<sha256(token) prefix>
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewProfileCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *ProfileCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &ProfileCache{client: client, ttl: ttl, log: log}
}

func (p *ProfileCache) Get(ctx context.Context, role domain.Role, token string) (*domain.Profile, bool) {
	raw, err := p.client.Get(ctx, p.key(role, token)).Bytes()
	if err != nil {
		if err != redis.Nil {
			p.log.Warn().Err(err).Str("role", string(role)).Msg("profile cache read failed")
		}
		return nil, false
	}

	var prof domain.Profile
	if err := json.Unmarshal(raw, &prof); err != nil {
		return nil, false
	}
	return &prof, true
}

func (p *ProfileCache) Set(ctx context.Context, role domain.Role, token string, prof *domain.Profile) {
	raw, err := json.Marshal(prof)
	if err != nil {
		return
	}
	if err := p.client.Set(ctx, p.key(role, token), raw, p.ttl).Err(); err != nil {
		p.log.Warn().Err(err).Str("role", string(role)).Msg("profile cache write failed")
	}
}

func (p *ProfileCache) key(role domain.Role, token string) string {
	sum := sha256.Sum256([]byte(token))
	return fmt.Sprintf("profile:%s:%s", role, hex.EncodeToString(sum[:8]))
}
