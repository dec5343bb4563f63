// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
)

// FindRecord finds the record for a term in the results slice.
// Returns a pointer to the record if found, nil otherwise.
func FindRecord(records []mortgage.ScheduleRecord, years int) *mortgage.ScheduleRecord {
	for i := range records {
		if records[i].Years == years {
			return &records[i]
		}
	}
	return nil
}
