package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/rkowalski/shopsched/pkg/domain/entities"
)

// ShopConfig is the on-disk shop configuration (shop.yaml): which days the
// shop runs, the hours per day, and the machine list.
type ShopConfig struct {
	OperatingDays  map[string]bool     `mapstructure:"operating_days"`
	OperatingHours map[string]DayHours `mapstructure:"operating_hours"`
	Machines       []MachineConfig     `mapstructure:"machines"`
}

type DayHours struct {
	Start int `mapstructure:"start"`
	End   int `mapstructure:"end"`
}

type MachineConfig struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`
	Type string `mapstructure:"type"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Load reads a shop configuration file. Unset days and hours fall back to
// the default calendar at conversion time.
func Load(path string) (*ShopConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading shop config %s: %w", path, err)
	}

	var cfg ShopConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing shop config %s: %w", path, err)
	}
	return &cfg, nil
}

// Calendar converts the configured days and hours into an operating
// calendar. A file with no operating_days section yields the default
// Monday through Friday calendar.
func (c *ShopConfig) Calendar() (*entities.OperatingCalendar, error) {
	if len(c.OperatingDays) == 0 && len(c.OperatingHours) == 0 {
		return entities.DefaultCalendar(), nil
	}

	daysOpen := make(map[time.Weekday]bool)
	hours := make(map[time.Weekday]entities.DayHours)
	for name, open := range c.OperatingDays {
		day, err := parseWeekday(name)
		if err != nil {
			return nil, err
		}
		daysOpen[day] = open
	}
	for name, h := range c.OperatingHours {
		day, err := parseWeekday(name)
		if err != nil {
			return nil, err
		}
		hours[day] = entities.DayHours{Start: h.Start, End: h.End}
	}

	cal := entities.NewOperatingCalendar(daysOpen, hours)
	if err := cal.Validate(); err != nil {
		return nil, fmt.Errorf("invalid operating calendar: %w", err)
	}
	return cal, nil
}

// MachineList converts the configured machines into domain entities.
func (c *ShopConfig) MachineList() ([]*entities.Machine, error) {
	machines := make([]*entities.Machine, 0, len(c.Machines))
	seen := make(map[string]bool, len(c.Machines))
	for i, m := range c.Machines {
		if m.ID == "" {
			return nil, fmt.Errorf("machine %d has no id", i)
		}
		if seen[m.ID] {
			return nil, fmt.Errorf("duplicate machine id %q", m.ID)
		}
		seen[m.ID] = true
		name := m.Name
		if name == "" {
			name = m.ID
		}
		machines = append(machines, &entities.Machine{
			ID:   entities.MachineID(m.ID),
			Name: name,
			Type: m.Type,
		})
	}
	return machines, nil
}

func parseWeekday(name string) (time.Weekday, error) {
	day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q in shop config", name)
	}
	return day, nil
}
