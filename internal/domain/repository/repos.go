package repository

import "github.com/jhoicas/Kardex-api/internal/domain/entity"

// Repos agrupa los repositorios atados a una misma transacción. El TxRunner de
// infraestructura entrega una instancia por tx para que los casos de uso hagan
// mutación y auditoría dentro del mismo límite transaccional.
type Repos struct {
	Movements  MovementRepository
	Products   ProductRepository
	Categories Crud[entity.Category]
	Locations  Crud[entity.Location]
	Suppliers  Crud[entity.Supplier]
	Users      UserRepository
	AuditLogs  AuditLogRepository
}
