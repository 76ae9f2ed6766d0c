package memory

import (
	"github.com/rkowalski/shopsched/pkg/domain/entities"
	"github.com/rkowalski/shopsched/pkg/domain/repositories"
)

// ShopConfigRepository serves a fixed configuration snapshot.
type ShopConfigRepository struct {
	calendar *entities.OperatingCalendar
	machines []*entities.Machine
}

// NewShopConfigRepository creates a repository over the given calendar and
// machine list.
func NewShopConfigRepository(cal *entities.OperatingCalendar, machines []*entities.Machine) *ShopConfigRepository {
	return &ShopConfigRepository{calendar: cal, machines: machines}
}

// Verify interface compliance
var _ repositories.ShopConfigRepository = (*ShopConfigRepository)(nil)

func (r *ShopConfigRepository) GetCalendar() (*entities.OperatingCalendar, error) {
	return r.calendar, nil
}

func (r *ShopConfigRepository) GetMachines() ([]*entities.Machine, error) {
	return r.machines, nil
}

// GetMachineTypes returns the distinct machine types in configured order.
func (r *ShopConfigRepository) GetMachineTypes() ([]string, error) {
	seen := make(map[string]bool, len(r.machines))
	var types []string
	for _, m := range r.machines {
		if m.Type == "" || seen[m.Type] {
			continue
		}
		seen[m.Type] = true
		types = append(types, m.Type)
	}
	return types, nil
}
