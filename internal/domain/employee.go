package domain

import (
	"time"
)

type ContractType string

const (
	ContractEmployment ContractType = "UOP" // umowa o pracę
	ContractCivil      ContractType = "UZ"  // umowa zlecenie
)

type Preference string

const (
	PreferenceNone      Preference = "BRAK"
	PreferenceOnly24h   Preference = "24H"
	PreferenceOnlyDay   Preference = "DNIOWKI"
	PreferenceOnlyNight Preference = "NOCKI"
)

// Allows reports whether an employee with this preference may work
// the given shift type. PreferenceNone accepts everything; the other
// preferences each accept exactly one shift type.
func (p Preference) Allows(t ShiftType) bool {
	switch p {
	case PreferenceOnly24h:
		return t == ShiftTwentyFourHour
	case PreferenceOnlyDay:
		return t == ShiftDay
	case PreferenceOnlyNight:
		return t == ShiftNight
	default:
		return true
	}
}

func (p Preference) Valid() bool {
	switch p {
	case PreferenceNone, PreferenceOnly24h, PreferenceOnlyDay, PreferenceOnlyNight:
		return true
	}
	return false
}

func (c ContractType) Valid() bool {
	return c == ContractEmployment || c == ContractCivil
}

type Employee struct {
	ID           int64        `json:"id"`
	FirstName    string       `json:"firstName"`
	LastName     string       `json:"lastName"`
	ContractType ContractType `json:"contractType"`
	Preference   Preference   `json:"preference"`
	CreatedAt    time.Time    `json:"createdAt"`
	Version      int32        `json:"-"`
}

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
