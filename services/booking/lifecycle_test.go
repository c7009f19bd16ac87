package booking

import (
	"errors"
	"testing"

	"medlink/models"
	"medlink/utils"

	"github.com/stretchr/testify/assert"
)

func TestTransitionPolicy(t *testing.T) {
	states := []struct {
		name     string
		appt     models.Appointment
		cancel   bool
		complete bool
		remind   bool
	}{
		{"booked", models.Appointment{}, true, true, true},
		{"booked and paid", models.Appointment{Payment: true}, true, true, true},
		{"cancelled", models.Appointment{Cancelled: true}, false, false, false},
		{"cancelled and paid", models.Appointment{Cancelled: true, Payment: true}, false, false, false},
		{"completed", models.Appointment{IsCompleted: true}, false, false, false},
		{"completed and paid", models.Appointment{IsCompleted: true, Payment: true}, false, false, false},
	}

	check := func(t *testing.T, err error, allowed bool) {
		t.Helper()
		if allowed {
			assert.NoError(t, err)
		} else {
			assert.True(t, errors.Is(err, utils.ErrInvalidTransition), "got %v", err)
		}
	}

	for _, tc := range states {
		t.Run(tc.name, func(t *testing.T) {
			a := tc.appt
			check(t, CanCancel(&a), tc.cancel)
			check(t, CanComplete(&a), tc.complete)
			check(t, CanRemind(&a), tc.remind)
			assert.NoError(t, CanMarkPaid(&a))
		})
	}
}
