package types

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the calendar date format used on the wire.
const DateLayout = "2006-01-02"

// MaxTripDays bounds the number of calendar days a single plan may cover.
const MaxTripDays = 30

type Pace string

const (
	PaceRelaxed  Pace = "relaxed"
	PaceBalanced Pace = "balanced"
	PacePacked   Pace = "packed"
)

type BudgetLevel string

const (
	BudgetLow  BudgetLevel = "low"
	BudgetMid  BudgetLevel = "mid"
	BudgetHigh BudgetLevel = "high"
)

// TransportMode is how the traveller moves between places.
type TransportMode string

const (
	TransportWalking   TransportMode = "walking"
	TransportBicycling TransportMode = "bicycling"
	TransportTransit   TransportMode = "transit"
	TransportDriving   TransportMode = "driving"
)

// TransferMode is the short mode tag attached to a Transfer.
type TransferMode string

const (
	TransferWalk    TransferMode = "walk"
	TransferBike    TransferMode = "bike"
	TransferTransit TransferMode = "transit"
	TransferDrive   TransferMode = "drive"
)

// TransferMode maps a preference transport mode to the transfer tag.
func (m TransportMode) TransferMode() TransferMode {
	switch m {
	case TransportBicycling:
		return TransferBike
	case TransportTransit:
		return TransferTransit
	case TransportDriving:
		return TransferDrive
	default:
		return TransferWalk
	}
}

// UserPreferences is the immutable input of a planning run.
type UserPreferences struct {
	Destination   string        `json:"destination" validate:"required,max=100"`
	StartDate     string        `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate       string        `json:"end_date" validate:"required,datetime=2006-01-02"`
	Interests     []string      `json:"interests" validate:"min=1,max=20,dive,required,max=50"`
	Pace          Pace          `json:"pace" validate:"required,oneof=relaxed balanced packed"`
	BudgetLevel   BudgetLevel   `json:"budget_level" validate:"required,oneof=low mid high"`
	Party         int           `json:"party" validate:"min=1,max=20"`
	Locale        string        `json:"locale" validate:"max=10"`
	TransportMode TransportMode `json:"transport_mode" validate:"required,oneof=walking bicycling transit driving"`
}

// WithDefaults returns a copy with blank optional fields filled in.
func (p UserPreferences) WithDefaults(defaultLocale string) UserPreferences {
	p.Destination = strings.TrimSpace(p.Destination)
	interests := make([]string, 0, len(p.Interests))
	for _, i := range p.Interests {
		interests = append(interests, strings.TrimSpace(i))
	}
	p.Interests = interests
	if p.Pace == "" {
		p.Pace = PaceBalanced
	}
	if p.BudgetLevel == "" {
		p.BudgetLevel = BudgetMid
	}
	if p.Party == 0 {
		p.Party = 1
	}
	if p.Locale == "" {
		p.Locale = defaultLocale
	}
	if p.TransportMode == "" {
		p.TransportMode = TransportWalking
	}
	return p
}

// Start returns the parsed start date. Call Validate first.
func (p UserPreferences) Start() time.Time {
	t, _ := time.Parse(DateLayout, p.StartDate)
	return t
}

// End returns the parsed end date. Call Validate first.
func (p UserPreferences) End() time.Time {
	t, _ := time.Parse(DateLayout, p.EndDate)
	return t
}

// NumDays is the number of calendar days from start to end inclusive.
func (p UserPreferences) NumDays() int {
	return int(p.End().Sub(p.Start()).Hours()/24) + 1
}

// Dates lists every calendar day of the trip in order.
func (p UserPreferences) Dates() []string {
	start := p.Start()
	n := p.NumDays()
	dates := make([]string, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, start.AddDate(0, 0, i).Format(DateLayout))
	}
	return dates
}

// DateRange lists the calendar days from start to end inclusive. end may
// equal start. At most MaxTripDays dates are returned.
func DateRange(start, end string) ([]string, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return nil, &ValidationError{Fields: []FieldError{{Field: "start_date", Message: "must be a date in YYYY-MM-DD format"}}}
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return nil, &ValidationError{Fields: []FieldError{{Field: "end_date", Message: "must be a date in YYYY-MM-DD format"}}}
	}
	n := int(e.Sub(s).Hours()/24) + 1
	switch {
	case n < 1:
		return nil, &ValidationError{Fields: []FieldError{{Field: "end_date", Message: "must not be before start_date"}}}
	case n > MaxTripDays:
		return nil, &ValidationError{Fields: []FieldError{{Field: "end_date", Message: fmt.Sprintf("range may not exceed %d days", MaxTripDays)}}}
	}
	dates := make([]string, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, s.AddDate(0, 0, i).Format(DateLayout))
	}
	return dates, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the struct rules and the date range rules. The returned
// error is a *ValidationError listing every offending field.
func (p UserPreferences) Validate() error {
	verr := &ValidationError{}
	collectFieldErrors(verr, validate.Struct(p))

	if len(verr.Fields) == 0 {
		start, end := p.Start(), p.End()
		switch {
		case !start.Before(end):
			verr.add("end_date", "must be after start_date")
		case p.NumDays() > MaxTripDays:
			verr.add("end_date", fmt.Sprintf("trip may not exceed %d days", MaxTripDays))
		}
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func collectFieldErrors(verr *ValidationError, err error) {
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.add("body", err.Error())
		return
	}
	for _, fe := range fieldErrs {
		verr.add(fieldPath(fe), describe(fe))
	}
}

// fieldPath strips the struct name from the namespace, so
// "UserPreferences.interests[0]" becomes "interests[0]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at most %s items", fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return "must be one of: " + fe.Param()
	case "datetime":
		return "must be a date formatted as YYYY-MM-DD"
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}
