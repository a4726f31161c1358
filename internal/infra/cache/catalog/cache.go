package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/govconn-lk/GovConn-BookingFlowService/internal/integrations/govservice"
)

const (
	officesAllKey   = "catalog:offices:all"
	officesByCatKey = "catalog:offices:cat:%d"
	servicesKey     = "catalog:services:%d"
	documentTypeKey = "catalog:doctype:%d"
)

// Cache read-through кэш каталога поверх клиента GovService.
// Каталог меняется редко, поэтому ответы кэшируются в Redis с TTL.
// Любая ошибка Redis деградирует до прямого запроса к каталогу
type Cache struct {
	next CatalogClient
	rdb  *redis.Client
	ttl  time.Duration
	log  Logger
}

// NewCache создает новый кэширующий декоратор каталога
func NewCache(next CatalogClient, rdb *redis.Client, ttl time.Duration, log Logger) *Cache {
	return &Cache{
		next: next,
		rdb:  rdb,
		ttl:  ttl,
		log:  log,
	}
}

// GetOffices получает список учреждений, при наличии отдает из кэша
func (c *Cache) GetOffices(ctx context.Context, categoryID *int64) ([]govservice.Office, error) {
	key := officesAllKey
	if categoryID != nil {
		key = fmt.Sprintf(officesByCatKey, *categoryID)
	}

	var cached []govservice.Office
	if c.lookup(ctx, key, &cached) {
		return cached, nil
	}

	offices, err := c.next.GetOffices(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, offices)
	return offices, nil
}

// GetServices получает список услуг учреждения, при наличии отдает из кэша
func (c *Cache) GetServices(ctx context.Context, officeID int64) ([]govservice.Service, error) {
	key := fmt.Sprintf(servicesKey, officeID)

	var cached []govservice.Service
	if c.lookup(ctx, key, &cached) {
		return cached, nil
	}

	services, err := c.next.GetServices(ctx, officeID)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, services)
	return services, nil
}

// GetDocumentType получает тип документа, при наличии отдает из кэша
func (c *Cache) GetDocumentType(ctx context.Context, documentTypeID int64) (*govservice.DocumentType, error) {
	key := fmt.Sprintf(documentTypeKey, documentTypeID)

	var cached govservice.DocumentType
	if c.lookup(ctx, key, &cached) {
		return &cached, nil
	}

	documentType, err := c.next.GetDocumentType(ctx, documentTypeID)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, documentType)
	return documentType, nil
}

// lookup читает значение из кэша; возвращает false при промахе или ошибке
func (c *Cache) lookup(ctx context.Context, key string, out interface{}) bool {
	data, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.log.Warn("catalog cache: get %s failed, falling back to catalog: %v", key, err)
		return false
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		c.log.Warn("catalog cache: decode %s failed, falling back to catalog: %v", key, err)
		return false
	}
	return true
}

// store пишет значение в кэш; ошибка записи не прерывает запрос
func (c *Cache) store(ctx context.Context, key string, val interface{}) {
	b, err := json.Marshal(val)
	if err != nil {
		c.log.Warn("catalog cache: encode %s failed: %v", key, err)
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		c.log.Warn("catalog cache: set %s failed: %v", key, err)
	}
}
