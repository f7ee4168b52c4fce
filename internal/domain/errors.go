package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// El flujo de auth mantiene causas distinguibles internamente (logging);
// la capa HTTP las colapsa en respuestas genéricas para no filtrar cuentas.
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrUserNotFound           = errors.New("usuario no encontrado")
	ErrInvalidCredentials     = errors.New("credenciales inválidas")
	ErrInactiveAccount        = errors.New("cuenta o empresa inactiva")
	ErrEmailAlreadyExists     = errors.New("el email ya está registrado")
	ErrSubdomainAlreadyExists = errors.New("el subdominio ya está en uso")
	ErrRoleNotFound           = errors.New("rol no configurado")
	ErrSessionNotFound        = errors.New("sesión no encontrada")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrForbidden              = errors.New("acceso denegado")
)
