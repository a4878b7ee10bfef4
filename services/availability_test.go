package services

import (
	"testing"
	"time"

	"petclinic-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock stores

type mockScheduleStore struct {
	schedules map[string]*models.WorkSchedule
	err       error
}

func scheduleKey(staffID uuid.UUID, date time.Time) string {
	return staffID.String() + "|" + date.Format("2006-01-02")
}

func (m *mockScheduleStore) GetWorkSchedule(staffID uuid.UUID, date time.Time) (*models.WorkSchedule, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.schedules[scheduleKey(staffID, date)], nil
}

type mockAppointmentReader struct {
	appointments []models.Appointment
	err          error
}

func (m *mockAppointmentReader) ListActiveForStaffDate(staffID uuid.UUID, date time.Time) ([]models.Appointment, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.appointments, nil
}

func strPtr(s string) *string { return &s }

var (
	testStaffID = uuid.New()
	testDate    = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
)

func checkerWith(t *testing.T, schedule *models.WorkSchedule, appointments ...models.Appointment) *AvailabilityChecker {
	t.Helper()
	schedules := &mockScheduleStore{schedules: map[string]*models.WorkSchedule{}}
	if schedule != nil {
		schedules.schedules[scheduleKey(testStaffID, testDate)] = schedule
	}
	return NewAvailabilityChecker(schedules, &mockAppointmentReader{appointments: appointments})
}

func workday(t *testing.T) *models.WorkSchedule {
	t.Helper()
	schedule, err := models.NewWorkSchedule(testStaffID, testDate, "09:00", "17:00",
		strPtr("12:00"), strPtr("13:00"), "")
	require.NoError(t, err)
	return schedule
}

func TestAvailabilityNoSchedule(t *testing.T) {
	checker := checkerWith(t, nil)

	result, err := checker.CheckStaffAvailability(testStaffID, testDate, "10:00", "10:30")
	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Contains(t, result.Reason, "no work schedule")
}

func TestAvailabilityMarkedUnavailable(t *testing.T) {
	schedule := workday(t)
	schedule.MarkUnavailable()
	checker := checkerWith(t, schedule)

	result, err := checker.CheckStaffAvailability(testStaffID, testDate, "10:00", "10:30")
	require.NoError(t, err)
	assert.False(t, result.Available)
}

func TestAvailabilityOutsideWorkingHours(t *testing.T) {
	checker := checkerWith(t, workday(t))

	result, err := checker.CheckStaffAvailability(testStaffID, testDate, "08:00", "09:30")
	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Contains(t, result.Reason, "outside working hours")
}

func TestAvailabilityBreakViolation(t *testing.T) {
	checker := checkerWith(t, workday(t))

	// entirely inside the break, though within 09:00-17:00
	result, err := checker.CheckStaffAvailability(testStaffID, testDate, "12:15", "12:45")
	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Contains(t, result.Reason, "break")
}

func TestAvailabilityBookingConflict(t *testing.T) {
	booked := models.Appointment{
		StaffID: testStaffID, StartTime: "10:00", EndTime: "10:30",
		Status: models.StatusPending,
	}
	checker := checkerWith(t, workday(t), booked)

	result, err := checker.CheckStaffAvailability(testStaffID, testDate, "10:15", "10:45")
	require.NoError(t, err)
	assert.False(t, result.Available)
	require.NotNil(t, result.Conflict)
	assert.Equal(t, "10:00", result.Conflict.StartTime)
	assert.Equal(t, "10:30", result.Conflict.EndTime)
}

func TestAvailabilityAdjacentBookingIsFree(t *testing.T) {
	booked := models.Appointment{
		StaffID: testStaffID, StartTime: "10:00", EndTime: "10:30",
		Status: models.StatusPending,
	}
	checker := checkerWith(t, workday(t), booked)

	// exactly adjacent under the half-open rule
	result, err := checker.CheckStaffAvailability(testStaffID, testDate, "10:30", "11:00")
	require.NoError(t, err)
	assert.True(t, result.Available)
	assert.Nil(t, result.Conflict)
}

func TestAvailabilityHappyPath(t *testing.T) {
	checker := checkerWith(t, workday(t))

	result, err := checker.CheckStaffAvailability(testStaffID, testDate, "10:00", "10:30")
	require.NoError(t, err)
	assert.True(t, result.Available)
	assert.Empty(t, result.Reason)
}

func TestFindConflict(t *testing.T) {
	existing := []models.Appointment{
		{StartTime: "09:00", EndTime: "09:30"},
		{StartTime: "11:00", EndTime: "12:00"},
	}

	assert.Nil(t, FindConflict(existing, "09:30", "10:00"))
	assert.Nil(t, FindConflict(existing, "12:00", "12:30"))
	assert.NotNil(t, FindConflict(existing, "11:30", "12:30"))
	assert.Equal(t, "09:00", FindConflict(existing, "08:45", "09:15").StartTime)
	assert.Nil(t, FindConflict(nil, "09:00", "10:00"))
}
