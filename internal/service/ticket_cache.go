package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

// TicketCache is a read-through cache for ticket detail lookups. Misses and
// backend failures are non-fatal; callers fall back to the repository.
type TicketCache interface {
	Get(ctx context.Context, ticketID string) (*domain.Ticket, bool)
	Set(ctx context.Context, ticket *domain.Ticket)
	Invalidate(ctx context.Context, ticketID string)
}

type redisTicketCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisTicketCache builds a cache over the shared redis client.
func NewRedisTicketCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) TicketCache {
	return &redisTicketCache{client: client, ttl: ttl, logger: logger}
}

func cacheKey(ticketID string) string {
	return "ticket:" + ticketID
}

func (c *redisTicketCache) Get(ctx context.Context, ticketID string) (*domain.Ticket, bool) {
	raw, err := c.client.Get(ctx, cacheKey(ticketID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("ticket cache get failed", zap.String("ticket_id", ticketID), zap.Error(err))
		}
		return nil, false
	}
	var ticket domain.Ticket
	if err := json.Unmarshal(raw, &ticket); err != nil {
		c.logger.Warn("ticket cache decode failed", zap.String("ticket_id", ticketID), zap.Error(err))
		return nil, false
	}
	return &ticket, true
}

func (c *redisTicketCache) Set(ctx context.Context, ticket *domain.Ticket) {
	raw, err := json.Marshal(ticket)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(ticket.ID), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("ticket cache set failed", zap.String("ticket_id", ticket.ID), zap.Error(err))
	}
}

func (c *redisTicketCache) Invalidate(ctx context.Context, ticketID string) {
	if err := c.client.Del(ctx, cacheKey(ticketID)).Err(); err != nil {
		c.logger.Warn("ticket cache invalidate failed", zap.String("ticket_id", ticketID), zap.Error(err))
	}
}
