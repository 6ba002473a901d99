package repository

import "rentvsbuy/domain"

// SimulationRepository records completed simulation runs.
type SimulationRepository interface {
	Save(params domain.SimulationParameters, result domain.SimulationResult) error
	Recent(limit int) []domain.SimulationRecord
}
