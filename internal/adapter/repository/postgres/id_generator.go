package postgres

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator implements usecase.IDGenerator. ULIDs sort by creation
// time, which keeps primary key indexes append-only.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate returns a new ULID string.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
