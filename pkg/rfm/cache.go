package rfm

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"rfm-analysis/pkg/models"
)

// Cache mémoïse les résultats du pipeline par clé (empreinte du jeu de
// données, options influant sur le calcul). Le pipeline étant pur, un
// résultat mémoïsé reste valable tant que la clé ne change pas.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*Result
}

// NewCache crée un cache vide.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*Result)}
}

// HashTable calcule une empreinte stable du contenu d'une table brute.
func HashTable(table models.RawTable) string {
	h := sha256.New()
	for _, c := range table.Columns {
		fmt.Fprintf(h, "%s;", c)
	}
	h.Write([]byte{'\n'})
	for _, row := range table.Rows {
		for _, cell := range row {
			fmt.Fprintf(h, "%v|", cell)
		}
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Key combine l'empreinte des données et les options du pipeline. Verbose
// n'entre pas dans la clé : il ne change pas le résultat.
func Key(table models.RawTable, cfg models.Config) string {
	cfg = withDefaults(cfg)
	return fmt.Sprintf("%s|outliers=%t|lo=%g|hi=%g|variant=%s",
		HashTable(table), cfg.RemoveOutliers, cfg.LowerPercentile, cfg.UpperPercentile, cfg.Variant)
}

// GetOrCompute retourne le résultat mémoïsé pour (table, cfg), ou lance le
// pipeline et retient le résultat. Les erreurs ne sont pas mémoïsées.
func (c *Cache) GetOrCompute(table models.RawTable, cfg models.Config) (*Result, error) {
	key := Key(table, cfg)
	c.mu.Lock()
	if r, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return r, nil
	}
	c.mu.Unlock()

	r, err := Run(table, cfg)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.entries[key] = r
	c.mu.Unlock()
	return r, nil
}

// Len retourne le nombre de résultats retenus.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
