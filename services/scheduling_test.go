package services

import (
	"testing"

	"petclinic-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDirectory serves canned entities for booking-flow tests.
type fakeDirectory struct {
	staff    map[uuid.UUID]*models.Staff
	pets     map[uuid.UUID]*models.Pet
	services map[uuid.UUID]*models.Service
}

func (f *fakeDirectory) GetStaffByID(id uuid.UUID) (*models.Staff, error) {
	if s, ok := f.staff[id]; ok {
		return s, nil
	}
	return nil, models.NewNotFound("staff", id)
}

func (f *fakeDirectory) GetPetByID(id uuid.UUID) (*models.Pet, error) {
	if p, ok := f.pets[id]; ok {
		return p, nil
	}
	return nil, models.NewNotFound("pet", id)
}

func (f *fakeDirectory) GetServiceByID(id uuid.UUID) (*models.Service, error) {
	if s, ok := f.services[id]; ok {
		return s, nil
	}
	return nil, models.NewNotFound("service", id)
}

func adminCaller() Principal {
	return Principal{UserID: uuid.New(), Role: models.RoleAdmin}
}

func TestBookAppointmentRejectsBadWindowFirst(t *testing.T) {
	// nothing else is wired: validation must fail before any lookup
	svc := &SchedulingService{}

	_, err := svc.BookAppointment(BookingRequest{
		PetID: uuid.New(), StaffID: uuid.New(), Date: testDate,
		StartTime: "10:30", EndTime: "10:00",
		Services: []ServiceLineInput{{ServiceID: uuid.New(), Quantity: 1}},
	}, adminCaller())

	var invalidRange *models.InvalidTimeRangeError
	assert.ErrorAs(t, err, &invalidRange)
}

func TestBookAppointmentRejectsEmptyServices(t *testing.T) {
	svc := &SchedulingService{}

	_, err := svc.BookAppointment(BookingRequest{
		PetID: uuid.New(), StaffID: uuid.New(), Date: testDate,
		StartTime: "10:00", EndTime: "10:30",
	}, adminCaller())

	assert.ErrorIs(t, err, models.ErrNoServicesSpecified)
}

func TestBookAppointmentUnknownStaff(t *testing.T) {
	svc := &SchedulingService{directory: &fakeDirectory{}}

	_, err := svc.BookAppointment(BookingRequest{
		PetID: uuid.New(), StaffID: uuid.New(), Date: testDate,
		StartTime: "10:00", EndTime: "10:30",
		Services: []ServiceLineInput{{ServiceID: uuid.New(), Quantity: 1}},
	}, adminCaller())

	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "staff", notFound.Entity)
}

func TestBookAppointmentInactiveStaff(t *testing.T) {
	staffID := uuid.New()
	svc := &SchedulingService{directory: &fakeDirectory{
		staff: map[uuid.UUID]*models.Staff{staffID: {IsActive: false}},
	}}

	_, err := svc.BookAppointment(BookingRequest{
		PetID: uuid.New(), StaffID: staffID, Date: testDate,
		StartTime: "10:00", EndTime: "10:30",
		Services: []ServiceLineInput{{ServiceID: uuid.New(), Quantity: 1}},
	}, adminCaller())

	var unavailable *models.StaffUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Contains(t, unavailable.Reason, "inactive")
}

func TestBookAppointmentOwnerCannotBookForeignPet(t *testing.T) {
	staffID := uuid.New()
	petID := uuid.New()
	petOwnerID := uuid.New()
	callerOwnerID := uuid.New()

	svc := &SchedulingService{directory: &fakeDirectory{
		staff: map[uuid.UUID]*models.Staff{staffID: {IsActive: true}},
		pets:  map[uuid.UUID]*models.Pet{petID: {OwnerID: petOwnerID}},
	}}

	_, err := svc.BookAppointment(BookingRequest{
		PetID: petID, StaffID: staffID, Date: testDate,
		StartTime: "10:00", EndTime: "10:30",
		Services: []ServiceLineInput{{ServiceID: uuid.New(), Quantity: 1}},
	}, Principal{UserID: uuid.New(), Role: models.RoleOwner, OwnerID: &callerOwnerID})

	// foreign pets surface as not found, never as forbidden
	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "pet", notFound.Entity)
}

func TestBookAppointmentUnavailableWindowSurfacesConflict(t *testing.T) {
	petID := uuid.New()
	serviceID := uuid.New()

	booked := models.Appointment{StaffID: testStaffID, StartTime: "10:00", EndTime: "10:30"}
	svc := &SchedulingService{
		directory: &fakeDirectory{
			staff:    map[uuid.UUID]*models.Staff{testStaffID: {IsActive: true}},
			pets:     map[uuid.UUID]*models.Pet{petID: {OwnerID: uuid.New()}},
			services: map[uuid.UUID]*models.Service{serviceID: {Name: "Checkup", BasePrice: 50}},
		},
		checker: checkerWith(t, workday(t), booked),
	}

	_, err := svc.BookAppointment(BookingRequest{
		PetID: petID, StaffID: testStaffID, Date: testDate,
		StartTime: "10:15", EndTime: "10:45",
		Services: []ServiceLineInput{{ServiceID: serviceID, Quantity: 1}},
	}, adminCaller())

	var conflict *models.ScheduleConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "10:00", conflict.ConflictStart)
	assert.Equal(t, "10:30", conflict.ConflictEnd)
}

func TestBookAppointmentNoScheduleSurfacesUnavailable(t *testing.T) {
	petID := uuid.New()
	serviceID := uuid.New()

	svc := &SchedulingService{
		directory: &fakeDirectory{
			staff:    map[uuid.UUID]*models.Staff{testStaffID: {IsActive: true}},
			pets:     map[uuid.UUID]*models.Pet{petID: {OwnerID: uuid.New()}},
			services: map[uuid.UUID]*models.Service{serviceID: {Name: "Checkup", BasePrice: 50}},
		},
		checker: checkerWith(t, nil),
	}

	_, err := svc.BookAppointment(BookingRequest{
		PetID: petID, StaffID: testStaffID, Date: testDate,
		StartTime: "10:00", EndTime: "10:30",
		Services: []ServiceLineInput{{ServiceID: serviceID, Quantity: 1}},
	}, adminCaller())

	var unavailable *models.StaffUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Contains(t, unavailable.Reason, "no work schedule")
}

func TestPartitionSlots(t *testing.T) {
	schedule := workday(t)

	slots := PartitionSlots(schedule, nil, 30)
	require.Len(t, slots, 16, "09:00-17:00 at 30 minutes")
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, "09:30", slots[0].EndTime)
	assert.Equal(t, "16:30", slots[15].StartTime)
	assert.Equal(t, "17:00", slots[15].EndTime)
	for _, slot := range slots {
		assert.True(t, slot.Available)
	}
}

func TestPartitionSlotsMarksBookedWindows(t *testing.T) {
	schedule := workday(t)
	appointments := []models.Appointment{
		{StartTime: "10:00", EndTime: "10:30"},
	}

	slots := PartitionSlots(schedule, appointments, 30)
	byStart := make(map[string]Slot, len(slots))
	for _, slot := range slots {
		byStart[slot.StartTime] = slot
	}

	assert.False(t, byStart["10:00"].Available)
	assert.True(t, byStart["09:30"].Available, "slot before the booking stays free")
	assert.True(t, byStart["10:30"].Available, "half-open: the next slot stays free")
}

func TestPartitionSlotsDropsTrailingRemainder(t *testing.T) {
	schedule, err := models.NewWorkSchedule(testStaffID, testDate, "09:00", "10:15", nil, nil, "")
	require.NoError(t, err)

	slots := PartitionSlots(schedule, nil, 30)
	require.Len(t, slots, 2)
	assert.Equal(t, "10:00", slots[1].EndTime)
}

func TestPartitionSlotsStraddlingBooking(t *testing.T) {
	schedule := workday(t)
	// a booking straddling two slots blocks both
	appointments := []models.Appointment{
		{StartTime: "10:15", EndTime: "10:45"},
	}

	slots := PartitionSlots(schedule, appointments, 30)
	byStart := make(map[string]Slot, len(slots))
	for _, slot := range slots {
		byStart[slot.StartTime] = slot
	}

	assert.False(t, byStart["10:00"].Available)
	assert.False(t, byStart["10:30"].Available)
	assert.True(t, byStart["11:00"].Available)
}
