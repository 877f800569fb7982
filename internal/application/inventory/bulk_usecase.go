package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/kho-api/internal/domain"
	"github.com/jhoicas/kho-api/internal/domain/entity"
	"github.com/jhoicas/kho-api/internal/domain/inventory"
	"github.com/jhoicas/kho-api/pkg/logger"
)

// unknownItemError mensaje cuando el endpoint falla sin mensaje.
const unknownItemError = "Error desconocido"

// ItemResult resultado de un ítem del lote. Error vacío = éxito.
type ItemResult struct {
	ProductID   string
	Qty         int
	LedgerRowID string
	Error       string
}

// OK indica si el ítem se registró.
func (r ItemResult) OK() bool { return r.Error == "" }

// BatchResult resultado agregado de un envío masivo.
// ReceiptID queda vacío si ningún ítem se registró.
type BatchResult struct {
	ReceiptID string
	Details   []ItemResult
	Success   int
	Fail      int
}

// BulkPreview estado derivado de la sesión para la UI (sin I/O).
type BulkPreview struct {
	Rows      []inventory.Row
	Items     []inventory.SelectedItem
	CanSubmit bool
}

// BulkUseCase orquesta el envío masivo: un phiếu por lote, ítems en secuencia, best-effort.
// No hay rollback entre ítems: cada mutación es su propia transacción.
type BulkUseCase struct {
	mutator      LedgerMutator
	newReceiptID func() string
	log          *logger.Logger
}

// NewBulkUseCase construye el orquestador. log puede ser nil.
func NewBulkUseCase(mutator LedgerMutator, log *logger.Logger) *BulkUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &BulkUseCase{
		mutator:      mutator,
		newReceiptID: uuid.NewString,
		log:          log.Component("bulk"),
	}
}

// WithReceiptIDGenerator reemplaza el generador de receipt_id (tests).
func (uc *BulkUseCase) WithReceiptIDGenerator(gen func() string) *BulkUseCase {
	uc.newReceiptID = gen
	return uc
}

// Preview devuelve filas, ítems seleccionados y gating del envío.
func (uc *BulkUseCase) Preview(sess *inventory.BulkSession) BulkPreview {
	return BulkPreview{
		Rows:      sess.Rows().All(),
		Items:     sess.SelectedItems(),
		CanSubmit: sess.CanSubmit(),
	}
}

// Submit envía el lote de la sesión. Devuelve ErrBatchNotSubmittable sin hacer I/O si el
// lote no cumple el gating. Los fallos por ítem nunca abortan el lote: quedan en Details.
// Al terminar, si hubo al menos un éxito la sesión se reinicia y conserva el phiếu;
// si todo falló, el phiếu se descarta.
func (uc *BulkUseCase) Submit(ctx context.Context, sess *inventory.BulkSession, userID string) (*BatchResult, error) {
	if !sess.CanSubmit() {
		return nil, domain.ErrBatchNotSubmittable
	}

	receiptID := uc.newReceiptID()
	items := sess.SelectedItems()
	note := sess.Reason().Text()
	movementType := sess.MovementType()

	result := &BatchResult{Details: make([]ItemResult, 0, len(items))}
	for _, item := range items {
		res := ItemResult{ProductID: item.ProductID, Qty: item.Qty}

		// Pre-chequeo contra la foto de la pantalla; el guard real está en el servidor.
		if movementType == entity.MovementTypeOUT {
			if stock := sess.StockOf(item.ProductID); item.Qty > stock {
				res.Error = fmt.Sprintf("no se puede sacar más del stock disponible; stock actual: %d", stock)
				result.Details = append(result.Details, res)
				continue
			}
		}

		in := MovementInput{
			ProductID:  item.ProductID,
			Quantity:   item.Qty,
			Note:       note,
			ReceiptID:  receiptID,
			InputValue: item.InputValue,
			InputUnit:  string(item.InputUnit),
			UserID:     userID,
		}
		var (
			rowID string
			err   error
		)
		if movementType == entity.MovementTypeOUT {
			rowID, err = uc.mutator.CreateInventoryOut(ctx, in)
		} else {
			rowID, err = uc.mutator.CreateInventoryIn(ctx, in)
		}
		if err != nil {
			res.Error = itemErrorMessage(err)
			uc.log.Warn().Err(err).
				Str("receipt_id", receiptID).
				Str("product_id", item.ProductID).
				Int("qty", item.Qty).
				Msg("ítem del lote rechazado")
		} else {
			res.LedgerRowID = rowID
		}
		result.Details = append(result.Details, res)
	}

	for _, d := range result.Details {
		if d.OK() {
			result.Success++
		} else {
			result.Fail++
		}
	}

	if result.Success > 0 {
		result.ReceiptID = receiptID
		sess.ResetAfterSuccess(receiptID)
	} else {
		sess.DiscardReceipt()
	}

	uc.log.Info().
		Str("type", movementType).
		Str("receipt_id", result.ReceiptID).
		Int("success", result.Success).
		Int("fail", result.Fail).
		Msg("lote procesado")
	return result, nil
}

func itemErrorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return unknownItemError
	}
	return err.Error()
}
