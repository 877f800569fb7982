package cache

import (
	"context"
	"time"

	"github.com/jhoicas/kho-api/internal/application/inventory"
)

var _ inventory.ReceiptCache = NoopReceiptCache{}

// NoopReceiptCache se usa cuando no hay Redis configurado o no responde.
type NoopReceiptCache struct{}

func (NoopReceiptCache) Get(context.Context, string) (*inventory.Receipt, error) { return nil, nil }

func (NoopReceiptCache) Set(context.Context, *inventory.Receipt, time.Duration) error { return nil }

func (NoopReceiptCache) Delete(context.Context, string) error { return nil }
