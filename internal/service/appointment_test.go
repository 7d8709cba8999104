package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/JavierAQR/backend-luaspets/internal/models"
)

func futureDate() string {
	return time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
}

func TestAppointmentCreate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	appts := &AppointmentService{DB: db}

	user := createUser(t, db, "ana@example.com")
	pet := createPet(t, db, user.ID, "Rocky")
	svc := createClinicService(t, db, "Vaccination", true)

	appt, err := appts.Create(ctx, user.ID, AppointmentInput{
		PetID:     pet.ID,
		ServiceID: svc.ID,
		Date:      futureDate(),
		Reason:    "annual shots",
	})
	require.NoError(t, err)
	require.Equal(t, models.AppointmentStatusPending, appt.Status)
	require.Equal(t, user.ID, appt.UserID)
}

func TestAppointmentCreate_Validation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	appts := &AppointmentService{DB: db}

	ana := createUser(t, db, "ana@example.com")
	luis := createUser(t, db, "luis@example.com")
	pet := createPet(t, db, ana.ID, "Rocky")
	svc := createClinicService(t, db, "Vaccination", true)
	inactive := createClinicService(t, db, "Grooming", false)

	_, err := appts.Create(ctx, ana.ID, AppointmentInput{ServiceID: svc.ID, Date: futureDate()})
	require.ErrorIs(t, err, ErrValidation)

	_, err = appts.Create(ctx, ana.ID, AppointmentInput{PetID: pet.ID, ServiceID: svc.ID, Date: "not-a-date"})
	require.ErrorIs(t, err, ErrValidation)

	past := time.Now().Add(-24 * time.Hour).UTC().Format(time.RFC3339)
	_, err = appts.Create(ctx, ana.ID, AppointmentInput{PetID: pet.ID, ServiceID: svc.ID, Date: past})
	require.ErrorIs(t, err, ErrValidation)

	// Booking with someone else's pet.
	_, err = appts.Create(ctx, luis.ID, AppointmentInput{PetID: pet.ID, ServiceID: svc.ID, Date: futureDate()})
	require.ErrorIs(t, err, ErrForbidden)

	_, err = appts.Create(ctx, ana.ID, AppointmentInput{PetID: pet.ID, ServiceID: inactive.ID, Date: futureDate()})
	require.ErrorIs(t, err, ErrValidation)
}

func TestAppointmentCancel(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	appts := &AppointmentService{DB: db}

	ana := createUser(t, db, "ana@example.com")
	luis := createUser(t, db, "luis@example.com")
	pet := createPet(t, db, ana.ID, "Rocky")
	svc := createClinicService(t, db, "Vaccination", true)

	appt, err := appts.Create(ctx, ana.ID, AppointmentInput{PetID: pet.ID, ServiceID: svc.ID, Date: futureDate()})
	require.NoError(t, err)

	_, err = appts.Cancel(ctx, luis.ID, models.RoleUser, appt.ID)
	require.ErrorIs(t, err, ErrForbidden)

	cancelled, err := appts.Cancel(ctx, ana.ID, models.RoleUser, appt.ID)
	require.NoError(t, err)
	require.Equal(t, models.AppointmentStatusCancelled, cancelled.Status)

	_, err = appts.Cancel(ctx, ana.ID, models.RoleUser, appt.ID)
	require.ErrorIs(t, err, ErrConflict)
}

func TestAppointmentCancel_CompletedIsFinal(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	appts := &AppointmentService{DB: db}

	ana := createUser(t, db, "ana@example.com")
	pet := createPet(t, db, ana.ID, "Rocky")
	svc := createClinicService(t, db, "Vaccination", true)

	appt, err := appts.Create(ctx, ana.ID, AppointmentInput{PetID: pet.ID, ServiceID: svc.ID, Date: futureDate()})
	require.NoError(t, err)

	_, err = appts.UpdateStatus(ctx, appt.ID, models.AppointmentStatusCompleted)
	require.NoError(t, err)

	_, err = appts.Cancel(ctx, ana.ID, models.RoleUser, appt.ID)
	require.ErrorIs(t, err, ErrConflict)

	// An admin cannot bypass the rule through Cancel either.
	_, err = appts.Cancel(ctx, 999, models.RoleAdmin, appt.ID)
	require.ErrorIs(t, err, ErrConflict)
}

func TestAppointmentUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	appts := &AppointmentService{DB: db}

	ana := createUser(t, db, "ana@example.com")
	pet := createPet(t, db, ana.ID, "Rocky")
	svc := createClinicService(t, db, "Vaccination", true)

	appt, err := appts.Create(ctx, ana.ID, AppointmentInput{PetID: pet.ID, ServiceID: svc.ID, Date: futureDate()})
	require.NoError(t, err)

	updated, err := appts.UpdateStatus(ctx, appt.ID, models.AppointmentStatusConfirmed)
	require.NoError(t, err)
	require.Equal(t, models.AppointmentStatusConfirmed, updated.Status)

	_, err = appts.UpdateStatus(ctx, appt.ID, "SOMETHING")
	require.ErrorIs(t, err, ErrValidation)

	_, err = appts.UpdateStatus(ctx, 9999, models.AppointmentStatusConfirmed)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAppointmentList_Filters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	appts := &AppointmentService{DB: db}

	ana := createUser(t, db, "ana@example.com")
	luis := createUser(t, db, "luis@example.com")
	anaPet := createPet(t, db, ana.ID, "Rocky")
	luisPet := createPet(t, db, luis.ID, "Misha")
	svc := createClinicService(t, db, "Vaccination", true)

	a1, err := appts.Create(ctx, ana.ID, AppointmentInput{PetID: anaPet.ID, ServiceID: svc.ID, Date: futureDate()})
	require.NoError(t, err)
	_, err = appts.Create(ctx, luis.ID, AppointmentInput{PetID: luisPet.ID, ServiceID: svc.ID, Date: futureDate()})
	require.NoError(t, err)

	mine, err := appts.ListForUser(ctx, ana.ID, AppointmentFilter{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, a1.ID, mine[0].ID)

	all, err := appts.ListAll(ctx, AppointmentFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	_, err = appts.Cancel(ctx, ana.ID, models.RoleUser, a1.ID)
	require.NoError(t, err)

	cancelled, err := appts.ListAll(ctx, AppointmentFilter{Status: models.AppointmentStatusCancelled})
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	require.Equal(t, a1.ID, cancelled[0].ID)
}
