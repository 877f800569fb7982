package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kho-api/internal/domain"
	"github.com/jhoicas/kho-api/internal/domain/entity"
	"github.com/jhoicas/kho-api/internal/domain/repository"
	"github.com/jhoicas/kho-api/pkg/logger"
)

// MovementInput entrada de un movimiento individual IN u OUT.
// ReceiptID vacío = movimiento fuera de un lote.
type MovementInput struct {
	ProductID  string
	Quantity   int
	Note       string
	ReceiptID  string
	InputValue decimal.NullDecimal
	InputUnit  string
	UserID     string
}

// AdjustInput entrada de un ajuste desde el drawer de un producto.
type AdjustInput struct {
	ProductID string
	Direction string // INCREASE | DECREASE
	Quantity  int
	Note      string
	UserID    string
}

// InsufficientStockError rechazo del servidor cuando la salida supera el stock.
// Se compara con errors.Is(err, domain.ErrInsufficientStock).
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: tồn kho %d, solicitado %d", e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return domain.ErrInsufficientStock }

// MovementUseCase endpoint de mutación del ledger: cada llamada bloquea la fila del producto
// (SELECT FOR UPDATE), valida el stock, inserta la fila del ledger y actualiza stock_quantity.
type MovementUseCase struct {
	txRunner TxRunner
	cache    ReceiptCache
	log      *logger.Logger
	now      func() time.Time
	newID    func() string
}

var _ LedgerMutator = (*MovementUseCase)(nil)

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(txRunner TxRunner) *MovementUseCase {
	return &MovementUseCase{
		txRunner: txRunner,
		log:      logger.Nop(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// WithReceiptCache invalida el phiếu en caché cada vez que se confirma una fila con receipt_id.
func (uc *MovementUseCase) WithReceiptCache(cache ReceiptCache, log *logger.Logger) *MovementUseCase {
	uc.cache = cache
	if log != nil {
		uc.log = log.Component("movement")
	}
	return uc
}

// CreateInventoryIn registra una entrada (nhập kho). Devuelve el id de la fila del ledger.
func (uc *MovementUseCase) CreateInventoryIn(ctx context.Context, in MovementInput) (string, error) {
	return uc.apply(ctx, entity.MovementTypeIN, in)
}

// CreateInventoryOut registra una salida (xuất kho). Nunca recorta: si no alcanza, rechaza.
func (uc *MovementUseCase) CreateInventoryOut(ctx context.Context, in MovementInput) (string, error) {
	return uc.apply(ctx, entity.MovementTypeOUT, in)
}

// CreateInventoryAdjust registra un ajuste manual sin phiếu.
func (uc *MovementUseCase) CreateInventoryAdjust(ctx context.Context, in AdjustInput) (string, error) {
	var sign int
	switch in.Direction {
	case entity.AdjustIncrease:
		sign = 1
	case entity.AdjustDecrease:
		sign = -1
	default:
		return "", fmt.Errorf("%w: dirección de ajuste %q", domain.ErrInvalidInput, in.Direction)
	}
	if strings.TrimSpace(in.Note) == "" {
		return "", fmt.Errorf("%w: el ajuste requiere una nota", domain.ErrInvalidInput)
	}
	return uc.mutate(ctx, entity.MovementTypeADJUST, sign, MovementInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Note:      in.Note,
		UserID:    in.UserID,
	})
}

func (uc *MovementUseCase) apply(ctx context.Context, movementType string, in MovementInput) (string, error) {
	sign := 1
	if movementType == entity.MovementTypeOUT {
		sign = -1
	}
	return uc.mutate(ctx, movementType, sign, in)
}

func (uc *MovementUseCase) mutate(ctx context.Context, movementType string, sign int, in MovementInput) (string, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return "", fmt.Errorf("%w: product_id vacío", domain.ErrInvalidInput)
	}
	if in.Quantity <= 0 {
		return "", fmt.Errorf("%w: la cantidad debe ser mayor que 0", domain.ErrInvalidInput)
	}

	rowID := uc.newID()
	err := uc.txRunner.Run(ctx, func(ledgerRepo repository.LedgerRepository, productRepo repository.ProductRepository) error {
		// Bloquea la fila del producto para evitar condiciones de carrera
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if sign < 0 && in.Quantity > product.StockQuantity {
			return &InsufficientStockError{
				ProductID: in.ProductID,
				Requested: in.Quantity,
				Available: product.StockQuantity,
			}
		}
		delta := sign * in.Quantity
		if err := productRepo.UpdateStock(ctx, in.ProductID, product.StockQuantity+delta); err != nil {
			return err
		}
		row := &entity.LedgerRow{
			ID:                rowID,
			ProductID:         in.ProductID,
			Type:              movementType,
			RequestedQuantity: in.Quantity,
			AppliedQuantity:   in.Quantity,
			Delta:             delta,
			Note:              in.Note,
			InputValue:        in.InputValue,
			InputUnit:         in.InputUnit,
			CreatedAt:         uc.now(),
			CreatedBy:         in.UserID,
		}
		if in.ReceiptID != "" {
			receiptID := in.ReceiptID
			row.ReceiptID = &receiptID
		}
		return ledgerRepo.Create(ctx, row)
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) || errors.Is(err, domain.ErrNotFound) {
			return "", err
		}
		return "", fmt.Errorf("registrar movimiento %s: %w", movementType, err)
	}
	uc.invalidateReceipt(ctx, in.ReceiptID)
	return rowID, nil
}

func (uc *MovementUseCase) invalidateReceipt(ctx context.Context, receiptID string) {
	if uc.cache == nil || receiptID == "" {
		return
	}
	if err := uc.cache.Delete(ctx, receiptID); err != nil {
		uc.log.Warn().Err(err).Str("receipt_id", receiptID).Msg("no se pudo invalidar el phiếu en caché")
	}
}
