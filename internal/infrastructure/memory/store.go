// Package memory implementa los puertos de persistencia en memoria, para
// tests y desarrollo sin PostgreSQL. Semántica de copia: las entidades se
// guardan y devuelven por valor, de modo que una instantánea del estado es
// una copia de mapas y el rollback del TxRunner es restaurarla.
package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

type stockKey struct {
	WarehouseID string
	PartID      string
}

// Store estado compartido de todos los repos en memoria.
type Store struct {
	mu sync.RWMutex

	transactions map[string]entity.Transaction
	txOrder      []string // orden de inserción (el "created_at, id" del replay)
	stocks       map[stockKey]entity.StockRecord
	parts        map[string]entity.Part
	warehouses   map[string]entity.Warehouse
	machines     map[string]entity.Machine
	users        map[string]entity.User
	orgs         map[string]entity.Organization
	prices       map[string][]entity.PartPrice // por repuesto, en orden de registro
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		transactions: make(map[string]entity.Transaction),
		stocks:       make(map[stockKey]entity.StockRecord),
		parts:        make(map[string]entity.Part),
		warehouses:   make(map[string]entity.Warehouse),
		machines:     make(map[string]entity.Machine),
		users:        make(map[string]entity.User),
		orgs:         make(map[string]entity.Organization),
		prices:       make(map[string][]entity.PartPrice),
	}
}

// SeedUser registra un actor (el alta real vive fuera del sistema).
func (s *Store) SeedUser(u entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// SeedOrganization registra una organización.
func (s *Store) SeedOrganization(o entity.Organization) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orgs[o.ID] = o
}

// snapshot copia el estado mutable por el libro (transacciones, stock,
// precios). Los datos de referencia no mutan dentro de una tx del libro.
type snapshot struct {
	transactions map[string]entity.Transaction
	txOrder      []string
	stocks       map[stockKey]entity.StockRecord
	prices       map[string][]entity.PartPrice
}

func (s *Store) takeSnapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := snapshot{
		transactions: make(map[string]entity.Transaction, len(s.transactions)),
		txOrder:      append([]string(nil), s.txOrder...),
		stocks:       make(map[stockKey]entity.StockRecord, len(s.stocks)),
		prices:       make(map[string][]entity.PartPrice, len(s.prices)),
	}
	for k, v := range s.transactions {
		snap.transactions[k] = v
	}
	for k, v := range s.stocks {
		snap.stocks[k] = v
	}
	for k, v := range s.prices {
		snap.prices[k] = append([]entity.PartPrice(nil), v...)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = snap.transactions
	s.txOrder = snap.txOrder
	s.stocks = snap.stocks
	s.prices = snap.prices
}

func sortedByOrder(ids []string, order []string) []string {
	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	sort.Slice(ids, func(i, j int) bool { return pos[ids[i]] < pos[ids[j]] })
	return ids
}
