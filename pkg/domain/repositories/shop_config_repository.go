package repositories

import "github.com/rkowalski/shopsched/pkg/domain/entities"

// ShopConfigRepository provides the shop configuration a scheduling run
// snapshots up front: the operating calendar, the machine list and the
// machine-type catalog.
type ShopConfigRepository interface {
	GetCalendar() (*entities.OperatingCalendar, error)
	GetMachines() ([]*entities.Machine, error)
	GetMachineTypes() ([]string, error)
}
