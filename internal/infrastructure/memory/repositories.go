package memory

import (
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// Verificación de interfaces.
var (
	_ repository.TransactionRepository  = (*TransactionRepo)(nil)
	_ repository.StockRepository        = (*StockRepo)(nil)
	_ repository.PartRepository         = (*PartRepo)(nil)
	_ repository.WarehouseRepository    = (*WarehouseRepo)(nil)
	_ repository.MachineRepository      = (*MachineRepo)(nil)
	_ repository.UserRepository         = (*UserRepo)(nil)
	_ repository.OrganizationRepository = (*OrganizationRepo)(nil)
	_ repository.PartPriceRepository    = (*PartPriceRepo)(nil)
)

// TransactionRepo libro de transacciones en memoria.
type TransactionRepo struct{ s *Store }

// NewTransactionRepository construye el adaptador.
func NewTransactionRepository(s *Store) *TransactionRepo { return &TransactionRepo{s: s} }

// Create registra una transacción (append-only).
func (r *TransactionRepo) Create(t *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.transactions[t.ID]; exists {
		return domain.ErrDuplicate
	}
	r.s.transactions[t.ID] = *t
	r.s.txOrder = append(r.s.txOrder, t.ID)
	return nil
}

// GetByID devuelve una copia de la transacción (nil si no existe).
func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.transactions[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

// ListByWarehouseAndPart devuelve las transacciones que tocan el par, en
// orden de inserción.
func (r *TransactionRepo) ListByWarehouseAndPart(warehouseID, partID string) ([]*entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var ids []string
	for id, t := range r.s.transactions {
		if t.PartID != partID {
			continue
		}
		if t.FromWarehouseID == warehouseID || t.ToWarehouseID == warehouseID {
			ids = append(ids, id)
		}
	}
	ids = sortedByOrder(ids, r.s.txOrder)
	list := make([]*entity.Transaction, 0, len(ids))
	for _, id := range ids {
		t := r.s.transactions[id]
		list = append(list, &t)
	}
	return list, nil
}

// ListPending lista transacciones retenidas, en orden de inserción.
func (r *TransactionRepo) ListPending(limit, offset int) ([]*entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var ids []string
	for id, t := range r.s.transactions {
		if t.ApprovalStatus == entity.ApprovalPending {
			ids = append(ids, id)
		}
	}
	ids = sortedByOrder(ids, r.s.txOrder)
	if offset >= len(ids) {
		return nil, nil
	}
	ids = ids[offset:]
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	list := make([]*entity.Transaction, 0, len(ids))
	for _, id := range ids {
		t := r.s.transactions[id]
		list = append(list, &t)
	}
	return list, nil
}

// MarkApproved flipa PENDING → APPROVED exactamente una vez.
func (r *TransactionRepo) MarkApproved(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transactions[id]
	if !ok || t.ApprovalStatus != entity.ApprovalPending {
		return domain.ErrApprovalState
	}
	t.ApprovalStatus = entity.ApprovalApproved
	r.s.transactions[id] = t
	return nil
}

// StockRepo stock materializado en memoria.
type StockRepo struct{ s *Store }

// NewStockRepository construye el adaptador.
func NewStockRepository(s *Store) *StockRepo { return &StockRepo{s: s} }

// Get devuelve una copia del registro (nil si el par no tiene).
func (r *StockRepo) Get(warehouseID, partID string) (*entity.StockRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.stocks[stockKey{WarehouseID: warehouseID, PartID: partID}]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// GetForUpdate en memoria equivale a Get: el TxRunner serializa escritores.
func (r *StockRepo) GetForUpdate(warehouseID, partID string) (*entity.StockRecord, error) {
	return r.Get(warehouseID, partID)
}

// Upsert inserta o actualiza el registro.
func (r *StockRepo) Upsert(record *entity.StockRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stocks[stockKey{WarehouseID: record.WarehouseID, PartID: record.PartID}] = *record
	return nil
}

// PartRepo repuestos en memoria.
type PartRepo struct{ s *Store }

// NewPartRepository construye el adaptador.
func NewPartRepository(s *Store) *PartRepo { return &PartRepo{s: s} }

// Create registra un repuesto.
func (r *PartRepo) Create(part *entity.Part) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.parts[part.ID]; exists {
		return domain.ErrDuplicate
	}
	r.s.parts[part.ID] = *part
	return nil
}

// GetByID devuelve una copia (nil si no existe).
func (r *PartRepo) GetByID(id string) (*entity.Part, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.parts[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// GetByOrgAndCode busca por código dentro de la organización.
func (r *PartRepo) GetByOrgAndCode(orgID, code string) (*entity.Part, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.parts {
		if p.OrganizationID == orgID && p.Code == code {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

// ListByOrganization lista repuestos de la organización.
func (r *PartRepo) ListByOrganization(orgID string, limit, offset int) ([]*entity.Part, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Part
	for _, p := range r.s.parts {
		if p.OrganizationID == orgID {
			found := p
			list = append(list, &found)
		}
	}
	return paginate(list, limit, offset), nil
}

// WarehouseRepo bodegas en memoria.
type WarehouseRepo struct{ s *Store }

// NewWarehouseRepository construye el adaptador.
func NewWarehouseRepository(s *Store) *WarehouseRepo { return &WarehouseRepo{s: s} }

// Create registra una bodega.
func (r *WarehouseRepo) Create(warehouse *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.warehouses[warehouse.ID]; exists {
		return domain.ErrDuplicate
	}
	r.s.warehouses[warehouse.ID] = *warehouse
	return nil
}

// GetByID devuelve una copia (nil si no existe).
func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	w, ok := r.s.warehouses[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

// ListByOrganization lista bodegas de la organización.
func (r *WarehouseRepo) ListByOrganization(orgID string, limit, offset int) ([]*entity.Warehouse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Warehouse
	for _, w := range r.s.warehouses {
		if w.OrganizationID == orgID {
			found := w
			list = append(list, &found)
		}
	}
	return paginate(list, limit, offset), nil
}

// MachineRepo máquinas en memoria.
type MachineRepo struct{ s *Store }

// NewMachineRepository construye el adaptador.
func NewMachineRepository(s *Store) *MachineRepo { return &MachineRepo{s: s} }

// Create registra una máquina.
func (r *MachineRepo) Create(machine *entity.Machine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.machines[machine.ID]; exists {
		return domain.ErrDuplicate
	}
	r.s.machines[machine.ID] = *machine
	return nil
}

// GetByID devuelve una copia (nil si no existe).
func (r *MachineRepo) GetByID(id string) (*entity.Machine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.machines[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

// ListByOrganization lista máquinas de la organización.
func (r *MachineRepo) ListByOrganization(orgID string, limit, offset int) ([]*entity.Machine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Machine
	for _, m := range r.s.machines {
		if m.OrganizationID == orgID {
			found := m
			list = append(list, &found)
		}
	}
	return paginate(list, limit, offset), nil
}

// UserRepo actores en memoria (solo lectura, sembrar con Store.SeedUser).
type UserRepo struct{ s *Store }

// NewUserRepository construye el adaptador.
func NewUserRepository(s *Store) *UserRepo { return &UserRepo{s: s} }

// GetByID devuelve una copia (nil si no existe).
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// OrganizationRepo organizaciones en memoria (sembrar con SeedOrganization).
type OrganizationRepo struct{ s *Store }

// NewOrganizationRepository construye el adaptador.
func NewOrganizationRepository(s *Store) *OrganizationRepo { return &OrganizationRepo{s: s} }

// GetByID devuelve una copia (nil si no existe).
func (r *OrganizationRepo) GetByID(id string) (*entity.Organization, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orgs[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

// PartPriceRepo historial de precios en memoria.
type PartPriceRepo struct{ s *Store }

// NewPartPriceRepository construye el adaptador.
func NewPartPriceRepository(s *Store) *PartPriceRepo { return &PartPriceRepo{s: s} }

// Create añade un precio al historial del repuesto.
func (r *PartPriceRepo) Create(price *entity.PartPrice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.prices[price.PartID] = append(r.s.prices[price.PartID], *price)
	return nil
}

// GetLatest devuelve el precio con EffectiveAt más reciente (nil si no hay).
func (r *PartPriceRepo) GetLatest(partID string) (*entity.PartPrice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	history := r.s.prices[partID]
	if len(history) == 0 {
		return nil, nil
	}
	latest := history[0]
	for _, p := range history[1:] {
		if p.EffectiveAt.After(latest.EffectiveAt) {
			latest = p
		}
	}
	return &latest, nil
}

// ListByPart lista el historial en orden de registro.
func (r *PartPriceRepo) ListByPart(partID string, limit, offset int) ([]*entity.PartPrice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.PartPrice
	for i := range r.s.prices[partID] {
		p := r.s.prices[partID][i]
		list = append(list, &p)
	}
	return paginate(list, limit, offset), nil
}

func paginate[T any](list []*T, limit, offset int) []*T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
