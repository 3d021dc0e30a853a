package cli

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pelletier/go-toml"
	"github.com/vfg2006/stock-insight-api/internal/domain"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LoadStockFile lê o estoque atual de um arquivo YAML, TOML ou JSON no formato
// "NOME DO PRODUTO: quantidade". Os nomes passam pela mesma normalização do razão.
func LoadStockFile(path string) (map[string]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler arquivo de estoque: %w", err)
	}

	raw := make(map[string]interface{})

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("erro ao interpretar YAML: %w", err)
		}
	case ".toml":
		tree, err := toml.LoadBytes(data)
		if err != nil {
			return nil, fmt.Errorf("erro ao interpretar TOML: %w", err)
		}
		raw = tree.ToMap()
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("erro ao interpretar JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("formato de arquivo de estoque não suportado: %s", ext)
	}

	return stockFromMap(raw)
}

func stockFromMap(raw map[string]interface{}) (map[string]int, error) {
	stock := make(map[string]int, len(raw))
	for name, value := range raw {
		quantity, err := toQuantity(value)
		if err != nil {
			return nil, fmt.Errorf("estoque de %q: %w", name, err)
		}
		stock[domain.NormalizeItemName(name)] = quantity
	}
	return stock, nil
}

func toQuantity(value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("quantidade não inteira: %v", v)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("quantidade inválida: %v", value)
	}
}
