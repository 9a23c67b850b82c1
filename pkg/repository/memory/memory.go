package memory

import (
	"github.com/acreflow/leadflow/pkg/domain/interfaces"
)

// Memory is an in-memory Repository for development and tests. It honors the
// same revision semantics as the Firestore backend.
type Memory struct {
	lead *leadRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		lead: newLeadRepository(),
	}
}

func (m *Memory) Lead() interfaces.LeadRepository {
	return m.lead
}

func (m *Memory) Close() error {
	return nil
}
