package entities

// MachineID identifies a configured machine.
type MachineID string

// Machine is one machine from the shop configuration. Type is the
// free-form machine-type name jobs match against ("Mill", "Lathe",
// "4th Axis Mill", ...).
type Machine struct {
	ID   MachineID
	Name string
	Type string
}
