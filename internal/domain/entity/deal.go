package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Etapas válidas para Deal.
const (
	DealStageProspecting = "prospecting"
	DealStageProposal    = "proposal"
	DealStageNegotiation = "negotiation"
	DealStageWon         = "won"
	DealStageLost        = "lost"
)

// Deal oportunidad de venta asociada (opcionalmente) a un lead.
type Deal struct {
	ID             string
	OrganizationID string
	OwnerID        string
	LeadID         string // opcional, vacío si no proviene de un lead
	Title          string
	Amount         decimal.Decimal // NUMERIC en DB, nunca float
	Currency       string
	Stage          string // ver constantes DealStage*
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
