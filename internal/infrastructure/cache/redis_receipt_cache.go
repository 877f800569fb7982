package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/kho-api/internal/application/inventory"
)

const receiptKeyPrefix = "kho:receipt:"

var _ inventory.ReceiptCache = (*RedisReceiptCache)(nil)

// RedisReceiptCache guarda phiếu reconstruidos como JSON. La entrada se borra cuando
// una nueva fila del ledger se confirma con el mismo receipt_id.
type RedisReceiptCache struct {
	client *redis.Client
}

// NewRedisReceiptCache crea el cliente; no abre conexión hasta el primer comando.
func NewRedisReceiptCache(addr, password string, db int) *RedisReceiptCache {
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 2 * time.Second,
		ReadTimeout: time.Second,
	})
	return &RedisReceiptCache{client: client}
}

func (c *RedisReceiptCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisReceiptCache) Close() error {
	return c.client.Close()
}

// Get devuelve (nil, nil) en miss.
func (c *RedisReceiptCache) Get(ctx context.Context, receiptID string) (*inventory.Receipt, error) {
	val, err := c.client.Get(ctx, receiptKey(receiptID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var r inventory.Receipt
	if err := json.Unmarshal(val, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Set guarda el phiếu; ttl 0 = sin expiración.
func (c *RedisReceiptCache) Set(ctx context.Context, receipt *inventory.Receipt, ttl time.Duration) error {
	if receipt == nil {
		return nil
	}
	payload, err := json.Marshal(receipt)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, receiptKey(receipt.ID), payload, ttl).Err()
}

// Delete borra la entrada; borrar una clave inexistente no es error.
func (c *RedisReceiptCache) Delete(ctx context.Context, receiptID string) error {
	return c.client.Del(ctx, receiptKey(receiptID)).Err()
}

func receiptKey(receiptID string) string {
	return receiptKeyPrefix + receiptID
}
