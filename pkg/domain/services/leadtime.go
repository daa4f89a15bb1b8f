package services

import (
	"time"

	"github.com/mfgkit/mrplan/pkg/domain/entities"
)

// ReleaseDate offsets a required date backwards by an item's lead time
// scaled by the run's lead-time factor:
//
//	release = required - days(leadTimeDays * leadTimeFactor)
//
// Items without an explicit lead time (leadTimeDays <= 0) use
// entities.DefaultLeadTimeDays. Fractional factors shift by fractional
// days.
func ReleaseDate(requiredDate time.Time, leadTimeDays int, leadTimeFactor float64) time.Time {
	if leadTimeDays <= 0 {
		leadTimeDays = entities.DefaultLeadTimeDays
	}
	offset := time.Duration(float64(leadTimeDays) * leadTimeFactor * float64(24*time.Hour))
	return requiredDate.Add(-offset)
}
