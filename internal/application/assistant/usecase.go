package assistant

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/kho-api/internal/application/ports"
	"github.com/jhoicas/kho-api/internal/domain"
	"github.com/jhoicas/kho-api/internal/domain/entity"
	"github.com/jhoicas/kho-api/internal/domain/repository"
)

const (
	summaryWindow   = 30 * 24 * time.Hour
	summaryRowLimit = 5000
	askTimeout      = 20 * time.Second
	maxQuestionLen  = 1000
)

// AssistantUseCase responde preguntas sobre el inventario usando un resumen de los
// últimos 30 días del ledger. Solo lectura: nunca registra movimientos.
type AssistantUseCase struct {
	ledgerRepo  repository.LedgerRepository
	productRepo repository.ProductRepository
	llm         ports.LLMService
	now         func() time.Time
}

// NewAssistantUseCase construye el caso de uso inyectando el puerto LLMService.
func NewAssistantUseCase(ledgerRepo repository.LedgerRepository, productRepo repository.ProductRepository, llm ports.LLMService) *AssistantUseCase {
	return &AssistantUseCase{ledgerRepo: ledgerRepo, productRepo: productRepo, llm: llm, now: time.Now}
}

// productTotals acumulado por producto en la ventana.
type productTotals struct {
	ProductID string
	Name      string
	In        int
	Out       int
	Adjust    int // neto firmado
}

// Ask valida la pregunta, arma el resumen y delega al LLM con timeout de 20 s.
func (uc *AssistantUseCase) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("%w: question es obligatorio", domain.ErrInvalidInput)
	}
	if len(question) > maxQuestionLen {
		return "", fmt.Errorf("%w: question supera %d caracteres", domain.ErrInvalidInput, maxQuestionLen)
	}

	summary, err := uc.Summary(ctx)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, askTimeout)
	defer cancel()

	answer, err := uc.llm.AnswerInventoryQuestion(ctx, summary, question)
	if err != nil {
		return "", fmt.Errorf("asistente IA: %w", err)
	}
	return answer, nil
}

// Summary resumen textual (una línea por producto) de los movimientos de los últimos 30 días.
func (uc *AssistantUseCase) Summary(ctx context.Context) (string, error) {
	since := uc.now().Add(-summaryWindow)
	rows, err := uc.ledgerRepo.ListSince(ctx, since, summaryRowLimit)
	if err != nil {
		return "", fmt.Errorf("leer ledger: %w", err)
	}

	totals := make(map[string]*productTotals)
	for _, r := range rows {
		t, ok := totals[r.ProductID]
		if !ok {
			t = &productTotals{ProductID: r.ProductID, Name: r.ProductID}
			totals[r.ProductID] = t
		}
		switch r.Type {
		case entity.MovementTypeIN:
			t.In += r.AppliedQuantity
		case entity.MovementTypeOUT:
			t.Out += r.AppliedQuantity
		case entity.MovementTypeADJUST:
			t.Adjust += r.Delta
		}
	}

	ids := make([]string, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	stock := make(map[string]int, len(ids))
	if len(ids) > 0 {
		products, err := uc.productRepo.GetByIDs(ctx, ids)
		if err != nil {
			return "", fmt.Errorf("leer productos: %w", err)
		}
		for _, p := range products {
			if t, ok := totals[p.ID]; ok {
				t.Name = p.Name
				stock[p.ID] = p.StockQuantity
			}
		}
	}

	list := make([]*productTotals, 0, len(totals))
	for _, t := range totals {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Out != list[j].Out {
			return list[i].Out > list[j].Out
		}
		return list[i].Name < list[j].Name
	})

	var b strings.Builder
	fmt.Fprintf(&b, "Movimientos desde %s (%d filas):\n", since.Format("2006-01-02"), len(rows))
	if len(list) == 0 {
		b.WriteString("sin movimientos\n")
	}
	for _, t := range list {
		fmt.Fprintf(&b, "- %s: nhập %d, xuất %d, điều chỉnh %+d, tồn kho %d\n",
			t.Name, t.In, t.Out, t.Adjust, stock[t.ProductID])
	}
	return b.String(), nil
}
