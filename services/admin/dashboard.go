package admin

import (
	"context"
	"time"

	"medlink/models"
	"medlink/utils"

	"golang.org/x/sync/errgroup"
)

const (
	trendMonths = 6
	recentLimit = 5
)

// Dashboard gathers the admin overview. The independent reads run concurrently.
func (s *DefaultAdminService) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	months := lastMonths(now, trendMonths)

	var (
		d      models.Dashboard
		counts map[string]int
		recent []models.Appointment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { d.Doctors, err = s.Doctors.Count(gctx); return })
	g.Go(func() (err error) { d.Patients, err = s.Patients.Count(gctx); return })
	g.Go(func() (err error) { d.Appointments, err = s.Appointments.Count(gctx); return })
	g.Go(func() (err error) {
		if s.Orders == nil {
			return nil
		}
		d.Orders, err = s.Orders.Count(gctx)
		return
	})
	g.Go(func() (err error) { counts, err = s.Appointments.CountByMonthSince(gctx, months[0]); return })
	g.Go(func() (err error) { recent, err = s.Appointments.Recent(gctx, recentLimit); return })
	if err := g.Wait(); err != nil {
		return nil, utils.WrapError(utils.ErrInternal, "Failed to load dashboard", err)
	}

	d.AppointmentTrends = make([]models.MonthCount, 0, len(months))
	for _, m := range months {
		d.AppointmentTrends = append(d.AppointmentTrends, models.MonthCount{
			Month: m.Format("Jan"),
			Count: counts[m.Format("2006-01")],
		})
	}
	d.UserDistribution = models.UserDistribution{Patients: d.Patients, Doctors: d.Doctors}
	d.RecentActivity = make([]models.RecentActivity, 0, len(recent))
	for i := range recent {
		a := &recent[i]
		d.RecentActivity = append(d.RecentActivity, models.RecentActivity{
			ID:          a.ID,
			PatientName: a.PatientData.Name,
			DoctorName:  a.DoctorData.Name,
			SlotDate:    a.SlotDate,
			SlotTime:    a.SlotTime,
			Status:      a.Status(),
		})
	}
	return &d, nil
}

// lastMonths returns the first instant (UTC) of each of the n months ending
// with the month of now, oldest first.
func lastMonths(now time.Time, n int) []time.Time {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, n)
	for i := 0; i < n; i++ {
		out[i] = start.AddDate(0, i-(n-1), 0)
	}
	return out
}
