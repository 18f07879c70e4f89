package booking

import (
	"time"

	"github.com/schedly/schedly-api/internal/availability"
)

// WizardState tracks progress through the ordered selection flow
type WizardState int

const (
	WizardEmpty WizardState = iota
	WizardServiceChosen
	WizardDateChosen
	WizardTimeChosen
	WizardStylistChosen
	WizardConfirmed
)

// Wizard is the strictly ordered service → date → time → stylist flow.
// Each step requires the previous one and a non-empty, valid input;
// Confirm is only reachable once all four fields are set.
type Wizard struct {
	state    WizardState
	today    time.Time
	service  string
	date     string
	timeSlot string
	stylist  string
}

// Draft holds the confirmed wizard fields, ready to become a booking
type Draft struct {
	Service  string
	Date     string
	TimeSlot string
	Stylist  string
}

// NewWizard starts an empty wizard. Date validity is judged against today.
func NewWizard(today time.Time) *Wizard {
	return &Wizard{state: WizardEmpty, today: today}
}

// State returns the current wizard state
func (w *Wizard) State() WizardState {
	return w.state
}

// ChooseService records the selected service and enters ServiceChosen
func (w *Wizard) ChooseService(name string) error {
	if name == "" {
		return ValidationErrors{"service": "This field is required"}
	}
	w.service = name
	w.state = WizardServiceChosen
	return nil
}

// ChooseDate records the selected date; requires ServiceChosen and a date
// inside the availability window.
func (w *Wizard) ChooseDate(iso string) error {
	if w.state < WizardServiceChosen {
		return ValidationErrors{"service": "Select a service first"}
	}
	if iso == "" {
		return ValidationErrors{"date": "This field is required"}
	}
	if !availability.ValidDate(iso, w.today) {
		return ValidationErrors{"date": "Date is not available for booking"}
	}
	w.date = iso
	w.state = WizardDateChosen
	return nil
}

// ChooseTime records the selected slot; requires DateChosen
func (w *Wizard) ChooseTime(label string) error {
	if w.state < WizardDateChosen {
		return ValidationErrors{"date": "Select a date first"}
	}
	if label == "" {
		return ValidationErrors{"time_slot": "This field is required"}
	}
	if !availability.ValidSlot(label) {
		return ValidationErrors{"time_slot": "Invalid time slot"}
	}
	w.timeSlot = label
	w.state = WizardTimeChosen
	return nil
}

// ChooseStylist records the selected stylist; requires TimeChosen
func (w *Wizard) ChooseStylist(name string) error {
	if w.state < WizardTimeChosen {
		return ValidationErrors{"time_slot": "Select a time slot first"}
	}
	if name == "" {
		return ValidationErrors{"stylist": "This field is required"}
	}
	if !availability.ValidStylist(name) {
		return ValidationErrors{"stylist": "Unknown stylist"}
	}
	w.stylist = name
	w.state = WizardStylistChosen
	return nil
}

// Confirm finalizes the wizard. Only reachable from StylistChosen; this is
// the sole point at which a booking draft leaves the wizard.
func (w *Wizard) Confirm() (*Draft, error) {
	if w.state != WizardStylistChosen {
		return nil, ValidationErrors{"wizard": "All four selections are required before confirming"}
	}
	w.state = WizardConfirmed
	return &Draft{
		Service:  w.service,
		Date:     w.date,
		TimeSlot: w.timeSlot,
		Stylist:  w.stylist,
	}, nil
}

// runWizard feeds the four fields through the wizard in order and confirms.
// Used by the service layer so create and edit share the exact stepping
// rules the client-side flow has.
func runWizard(today time.Time, service, date, timeSlot, stylist string) (*Draft, error) {
	w := NewWizard(today)
	if err := w.ChooseService(service); err != nil {
		return nil, err
	}
	if err := w.ChooseDate(date); err != nil {
		return nil, err
	}
	if err := w.ChooseTime(timeSlot); err != nil {
		return nil, err
	}
	if err := w.ChooseStylist(stylist); err != nil {
		return nil, err
	}
	return w.Confirm()
}
