package booking_test

import (
	"errors"
	"testing"
	"time"

	"github.com/schedly/schedly-api/internal/domain/booking"
)

// Friday; 2024-06-10 (Monday) is inside the window.
var wizardToday = time.Date(2024, time.June, 7, 12, 0, 0, 0, time.UTC)

func TestWizardHappyPath(t *testing.T) {
	w := booking.NewWizard(wizardToday)

	steps := []struct {
		run  func() error
		want booking.WizardState
	}{
		{func() error { return w.ChooseService("Haircut") }, booking.WizardServiceChosen},
		{func() error { return w.ChooseDate("2024-06-10") }, booking.WizardDateChosen},
		{func() error { return w.ChooseTime("10:00 AM") }, booking.WizardTimeChosen},
		{func() error { return w.ChooseStylist("Bianca") }, booking.WizardStylistChosen},
	}
	for i, s := range steps {
		if err := s.run(); err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
		if w.State() != s.want {
			t.Fatalf("step %d: state = %d, want %d", i, w.State(), s.want)
		}
	}

	draft, err := w.Confirm()
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if w.State() != booking.WizardConfirmed {
		t.Fatal("wizard not confirmed")
	}
	if draft.Service != "Haircut" || draft.Date != "2024-06-10" ||
		draft.TimeSlot != "10:00 AM" || draft.Stylist != "Bianca" {
		t.Fatalf("draft carries wrong fields: %+v", draft)
	}
}

func TestWizardEnforcesOrder(t *testing.T) {
	w := booking.NewWizard(wizardToday)

	if err := w.ChooseDate("2024-06-10"); err == nil {
		t.Error("date accepted before service")
	}
	if err := w.ChooseTime("10:00 AM"); err == nil {
		t.Error("time accepted before date")
	}
	if err := w.ChooseStylist("Bianca"); err == nil {
		t.Error("stylist accepted before time")
	}
	if _, err := w.Confirm(); err == nil {
		t.Error("confirm reachable with nothing chosen")
	}
}

func TestWizardRejectsEmptyFields(t *testing.T) {
	w := booking.NewWizard(wizardToday)

	var verr booking.ValidationErrors
	if err := w.ChooseService(""); !errors.As(err, &verr) {
		t.Errorf("empty service: got %v, want ValidationErrors", err)
	}

	_ = w.ChooseService("Haircut")
	if err := w.ChooseDate(""); err == nil {
		t.Error("empty date accepted")
	}
}

func TestWizardRejectsUnavailableDates(t *testing.T) {
	cases := []struct {
		name string
		date string
	}{
		{"sunday", "2024-06-09"},
		{"past", "2024-06-06"},
		{"beyond window", "2024-09-01"},
		{"garbage", "tomorrow"},
	}

	for _, tc := range cases {
		w := booking.NewWizard(wizardToday)
		_ = w.ChooseService("Haircut")
		if err := w.ChooseDate(tc.date); err == nil {
			t.Errorf("%s (%s): accepted", tc.name, tc.date)
		}
	}
}

func TestWizardConfirmOnlyOnceAllSet(t *testing.T) {
	w := booking.NewWizard(wizardToday)
	_ = w.ChooseService("Haircut")
	_ = w.ChooseDate("2024-06-10")
	_ = w.ChooseTime("10:00 AM")

	if _, err := w.Confirm(); err == nil {
		t.Fatal("confirm reachable without stylist")
	}
}
