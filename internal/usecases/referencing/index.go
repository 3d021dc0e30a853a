package referencing

import (
	"github.com/vfg2006/stock-insight-api/internal/domain"
)

// Index é a tabela de preços indexada pelo nome normalizado do item.
// Em nomes repetidos vale a primeira ocorrência.
type Index struct {
	prices   map[string]float64
	products []domain.ReferenceProduct
}

// NewIndex normaliza os nomes, descarta linhas sem nome ou com preço não positivo
// e retorna os nomes repetidos que foram ignorados
func NewIndex(products []domain.ReferenceProduct) (*Index, []string, int) {
	index := &Index{
		prices:   make(map[string]float64, len(products)),
		products: make([]domain.ReferenceProduct, 0, len(products)),
	}
	duplicates := make([]string, 0)
	skipped := 0

	for _, product := range products {
		name := domain.NormalizeItemName(product.Item)
		if name == "" || product.UnitPrice <= 0 {
			skipped++
			continue
		}

		if _, exists := index.prices[name]; exists {
			duplicates = append(duplicates, name)
			continue
		}

		index.prices[name] = product.UnitPrice
		index.products = append(index.products, domain.ReferenceProduct{Item: name, UnitPrice: product.UnitPrice})
	}

	return index, duplicates, skipped
}

// UnitPrice busca o preço pelo nome exato
func (i *Index) UnitPrice(item string) (float64, bool) {
	price, ok := i.prices[item]
	return price, ok
}

func (i *Index) Len() int {
	return len(i.products)
}

// Products retorna os produtos na ordem de entrada, já sem repetição
func (i *Index) Products() []domain.ReferenceProduct {
	return i.products
}
