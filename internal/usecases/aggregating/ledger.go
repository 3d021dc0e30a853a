// Package aggregating agrupa os itens vendidos de um lote por produto e por dia
package aggregating

import (
	"errors"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/stock-insight-api/internal/domain"
	"github.com/vfg2006/stock-insight-api/pkg/utils"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const DefaultAccountSaleMarker = "CONTA"

// ErrNoResolvedItems indica que nenhum item do lote pôde ser precificado
var ErrNoResolvedItems = errors.New("nenhum item do lote foi encontrado na tabela de preços")

// PriceLookup resolve o preço de referência de um item pelo nome exato
type PriceLookup interface {
	UnitPrice(item string) (float64, bool)
}

// LedgerResult é o razão de produtos de um lote
type LedgerResult struct {
	Entries       []domain.LedgerEntry
	NotFound      []string
	ResolvedLines int
}

type ledgerAccumulator struct {
	item        string
	quantity    int
	total       decimal.Decimal
	unit        decimal.Decimal
	accountSale bool
}

func (a *ledgerAccumulator) merge(line domain.SaleLine) {
	a.quantity += line.Quantity
	a.total = a.total.Add(line.Total)

	if a.accountSale {
		// média ponderada: total acumulado / quantidade acumulada
		a.unit = a.total.Div(decimal.NewFromInt(int64(a.quantity)))
	}
}

func (a *ledgerAccumulator) entry() domain.LedgerEntry {
	return domain.LedgerEntry{
		Item:       a.item,
		Quantity:   a.quantity,
		TotalValue: utils.DecimalToFloat(a.total),
		UnitValue:  utils.DecimalToFloat(a.unit),
	}
}

type LedgerBuilder struct {
	accountSaleMarker string
}

func NewLedgerBuilder(accountSaleMarker string) *LedgerBuilder {
	if accountSaleMarker == "" {
		accountSaleMarker = DefaultAccountSaleMarker
	}
	return &LedgerBuilder{accountSaleMarker: accountSaleMarker}
}

// IsAccountSale indica se o item pertence à classe de venda em conta
func (b *LedgerBuilder) IsAccountSale(item string) bool {
	return strings.Contains(item, b.accountSaleMarker)
}

// Resolve precifica um item. Itens de venda em conta usam o valor da própria
// venda dividido pela quantidade; os demais usam a tabela de referência.
func (b *LedgerBuilder) Resolve(draft domain.SaleLineDraft, prices PriceLookup) (domain.SaleLine, bool) {
	line := domain.SaleLine{
		Item:     draft.Item,
		Quantity: draft.Quantity,
		Date:     draft.Date,
	}
	quantity := decimal.NewFromInt(int64(draft.Quantity))

	if b.IsAccountSale(draft.Item) {
		line.AccountSale = true
		line.UnitPrice = draft.RowGross.Div(quantity)
		line.Total = draft.RowGross
		return line, true
	}

	price, ok := prices.UnitPrice(draft.Item)
	if !ok {
		return domain.SaleLine{}, false
	}

	line.UnitPrice = decimal.NewFromFloat(price)
	line.Total = line.UnitPrice.Mul(quantity)
	return line, true
}

// Build agrupa os itens por nome, acumulando quantidade e valor total.
// Itens sem preço vão para NotFound; o lote só falha se nenhum item for resolvido.
func (b *LedgerBuilder) Build(drafts []domain.SaleLineDraft, prices PriceLookup) (LedgerResult, error) {
	accumulators := make(map[string]*ledgerAccumulator)
	notFound := make(map[string]struct{})
	resolved := 0

	for _, draft := range drafts {
		line, ok := b.Resolve(draft, prices)
		if !ok {
			notFound[draft.Item] = struct{}{}
			continue
		}
		resolved++

		acc, exists := accumulators[line.Item]
		if !exists {
			acc = &ledgerAccumulator{
				item:        line.Item,
				total:       decimal.Zero,
				unit:        line.UnitPrice,
				accountSale: line.AccountSale,
			}
			accumulators[line.Item] = acc
		}
		acc.merge(line)
	}

	result := LedgerResult{
		NotFound:      SortedNames(notFound),
		ResolvedLines: resolved,
	}

	if resolved == 0 {
		return result, ErrNoResolvedItems
	}

	entries := make([]domain.LedgerEntry, 0, len(accumulators))
	for _, acc := range accumulators {
		entries = append(entries, acc.entry())
	}
	SortLedger(entries)

	result.Entries = entries
	return result, nil
}

// SortLedger ordena o razão pelo nome do item usando a collation pt-BR
func SortLedger(entries []domain.LedgerEntry) {
	collator := collate.New(language.BrazilianPortuguese)
	sort.SliceStable(entries, func(i, j int) bool {
		return collator.CompareString(entries[i].Item, entries[j].Item) < 0
	})
}

// SortedNames devolve os nomes do conjunto em ordem crescente
func SortedNames(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AttachPeriod copia o razão aplicando o mesmo rótulo de período a todas as entradas
func AttachPeriod(entries []domain.LedgerEntry, label string) []domain.LedgerEntry {
	withPeriod := make([]domain.LedgerEntry, len(entries))
	for i, entry := range entries {
		entry.Period = label
		withPeriod[i] = entry
	}
	return withPeriod
}

// SearchLedger filtra o razão por nome, sem diferenciar maiúsculas de minúsculas
func SearchLedger(entries []domain.LedgerEntry, term string) []domain.LedgerEntry {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return entries
	}

	filtered := make([]domain.LedgerEntry, 0)
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.Item), term) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}
