package entity

import "time"

// PermissionWildcard es el permiso comodín: concede todas las acciones.
const PermissionWildcard = "*"

// DefaultAdminRole nombre del rol creado junto con cada organización nueva.
const DefaultAdminRole = "admin"

// Role conjunto de permisos con alcance de una organización.
// Nombre de rol y permiso comparten espacio de nombres: una ruta puede exigir
// "admin" y pasa tanto un rol llamado admin como uno cuyo set incluya "admin".
type Role struct {
	ID             string
	OrganizationID string
	Name           string
	Description    string
	Permissions    []string // set de permisos; puede incluir PermissionWildcard
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasWildcard indica si el rol tiene el permiso comodín.
func (r *Role) HasWildcard() bool {
	return r.HasPermission(PermissionWildcard)
}

// HasPermission indica si el set de permisos contiene p (match literal).
func (r *Role) HasPermission(p string) bool {
	for _, perm := range r.Permissions {
		if perm == p {
			return true
		}
	}
	return false
}

// Allows evalúa la regla de acceso de una ruta: comodín, nombre del rol
// o cualquiera de los permisos requeridos presente en el set.
func (r *Role) Allows(required ...string) bool {
	if r.HasWildcard() {
		return true
	}
	for _, req := range required {
		if r.Name == req || r.HasPermission(req) {
			return true
		}
	}
	return false
}
