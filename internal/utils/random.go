package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/grafiki-ochrony/guard-roster/backend/internal/domain"
)

var firstNames = []string{
	"Anna", "Bartek", "Celina", "Damian", "Ewa", "Filip", "Grzegorz", "Hanna",
	"Igor", "Joanna", "Kamil", "Lena", "Marek", "Natalia", "Oskar", "Paulina",
	"Rafał", "Sylwia", "Tomasz", "Urszula", "Wojciech", "Zofia",
}

var lastNames = []string{
	"Nowak", "Kowalski", "Wiśniewski", "Wójcik", "Kowalczyk", "Kamiński",
	"Lewandowski", "Zieliński", "Szymański", "Woźniak", "Dąbrowski",
	"Kozłowski", "Jankowski", "Mazur", "Kwiatkowski", "Krawczyk",
}

var contractTypes = []domain.ContractType{
	domain.ContractEmployment,
	domain.ContractCivil,
}

var preferences = []domain.Preference{
	domain.PreferenceNone,
	domain.PreferenceOnly24h,
	domain.PreferenceOnlyDay,
	domain.PreferenceOnlyNight,
}

func GenerateRandomEmployee() *domain.Employee {
	return &domain.Employee{
		FirstName:    firstNames[rand.Intn(len(firstNames))],
		LastName:     lastNames[rand.Intn(len(lastNames))],
		ContractType: contractTypes[rand.Intn(len(contractTypes))],
		Preference:   preferences[rand.Intn(len(preferences))],
	}
}

var siteNames = []string{
	"Magazyn", "Biurowiec", "Parking", "Hala", "Osiedle", "Galeria", "Plac budowy",
}

func GenerateRandomSite() *domain.Site {
	return &domain.Site{
		Name: fmt.Sprintf("%s %03d", siteNames[rand.Intn(len(siteNames))], rand.Intn(1000)),
	}
}

// GenerateRandomDayOff picks a day within the given month.
func GenerateRandomDayOff(employeeID int64, year, month int) *domain.DayOff {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := start.AddDate(0, 1, -1).Day()

	return &domain.DayOff{
		EmployeeID: employeeID,
		Day:        start.AddDate(0, 0, rand.Intn(daysInMonth)),
	}
}
