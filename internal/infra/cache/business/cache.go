package business

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/appointment-booking/internal/domain"
)

const (
	cacheName  = "business"
	keyPrefix  = "booking:business:v2:"
	DefaultTTL = 5 * time.Minute
)

// Cache read-through кэш бизнесов в Redis поверх репозитория.
// Ошибки Redis не прерывают запрос: чтение уходит в репозиторий.
// Update и Delete инвалидируют ключ после записи в репозиторий.
type Cache struct {
	next    Repository
	client  redis.UniversalClient
	ttl     time.Duration
	metrics Metrics
	logger  Logger
}

// NewCache создает кэширующий декоратор. ttl <= 0 заменяется на DefaultTTL.
func NewCache(next Repository, client redis.UniversalClient, ttl time.Duration, metrics Metrics, logger Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Cache{
		next:    next,
		client:  client,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

type noopMetrics struct{}

func (noopMetrics) IncCache(string, string) {}

// cachedBusiness формат хранения в Redis
type cachedBusiness struct {
	ID                  int64     `json:"id"`
	OwnerID             int64     `json:"ownerId"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	Category            string    `json:"category"`
	Address             string    `json:"address"`
	Phone               string    `json:"phone"`
	Email               string    `json:"email"`
	WorkingHours        string    `json:"workingHours"`
	SlotDurationMinutes int       `json:"slotDuration"`
	IsActive            bool      `json:"isActive"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func key(id int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, id)
}

// Create создает бизнес (кэш не заполняется до первого чтения)
func (c *Cache) Create(ctx context.Context, business *domain.Business) (*domain.Business, error) {
	return c.next.Create(ctx, business)
}

// GetByID читает бизнес из кэша, при промахе - из репозитория с записью в кэш
func (c *Cache) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	data, err := c.client.Get(ctx, key(id)).Bytes()
	switch {
	case err == nil:
		var cached cachedBusiness
		if jsonErr := json.Unmarshal(data, &cached); jsonErr == nil {
			c.metrics.IncCache(cacheName, "hit")
			return cached.toDomain(), nil
		}
		c.logger.Warn("BusinessCache: corrupted entry for id=%d, reloading", id)
	case errors.Is(err, redis.Nil):
		c.metrics.IncCache(cacheName, "miss")
	default:
		c.metrics.IncCache(cacheName, "error")
		c.logger.Warn("BusinessCache: redis get failed for id=%d: %v", id, err)
	}

	business, err := c.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.store(ctx, business)
	return business, nil
}

// GetByIDForUpdate читает бизнес из репозитория мимо кэша, с блокировкой строки в транзакции
func (c *Cache) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Business, error) {
	return c.next.GetByIDForUpdate(ctx, id)
}

// List не кэшируется
func (c *Cache) List(ctx context.Context, filter domain.BusinessesFilter) ([]*domain.Business, error) {
	return c.next.List(ctx, filter)
}

// Count не кэшируется
func (c *Cache) Count(ctx context.Context, filter domain.BusinessesFilter) (int, error) {
	return c.next.Count(ctx, filter)
}

// Update обновляет бизнес и инвалидирует кэш
func (c *Cache) Update(ctx context.Context, business *domain.Business) (*domain.Business, error) {
	updated, err := c.next.Update(ctx, business)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, business.ID)
	return updated, nil
}

// Delete удаляет бизнес и инвалидирует кэш
func (c *Cache) Delete(ctx context.Context, id int64) error {
	if err := c.next.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

func (c *Cache) store(ctx context.Context, business *domain.Business) {
	data, err := json.Marshal(fromDomain(business))
	if err != nil {
		c.logger.Error("BusinessCache: marshal id=%d: %v", business.ID, err)
		return
	}
	if err := c.client.Set(ctx, key(business.ID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("BusinessCache: redis set failed for id=%d: %v", business.ID, err)
	}
}

func (c *Cache) invalidate(ctx context.Context, id int64) {
	if err := c.client.Del(ctx, key(id)).Err(); err != nil {
		// Устаревшая запись проживёт не дольше ttl
		c.logger.Warn("BusinessCache: redis del failed for id=%d: %v", id, err)
	}
}

func fromDomain(b *domain.Business) cachedBusiness {
	return cachedBusiness{
		ID:                  b.ID,
		OwnerID:             b.OwnerID,
		Name:                b.Name,
		Description:         b.Description,
		Category:            b.Category,
		Address:             b.Address,
		Phone:               b.Phone,
		Email:               b.Email,
		WorkingHours:        b.WorkingHours,
		SlotDurationMinutes: b.SlotDurationMinutes,
		IsActive:            b.IsActive,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
}

func (c cachedBusiness) toDomain() *domain.Business {
	return &domain.Business{
		ID:                  c.ID,
		OwnerID:             c.OwnerID,
		Name:                c.Name,
		Description:         c.Description,
		Category:            c.Category,
		Address:             c.Address,
		Phone:               c.Phone,
		Email:               c.Email,
		WorkingHours:        c.WorkingHours,
		SlotDurationMinutes: c.SlotDurationMinutes,
		IsActive:            c.IsActive,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}
