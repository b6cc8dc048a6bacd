package receipts

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/receipt-processor/pkg/errors"
)

// Payload is the wire shape of a receipt. Every field arrives as a string.
type Payload struct {
	Retailer     string        `json:"retailer" validate:"required"`
	PurchaseDate string        `json:"purchaseDate" validate:"required"`
	PurchaseTime string        `json:"purchaseTime" validate:"required"`
	Items        []ItemPayload `json:"items" validate:"required,min=1,dive"`
	Total        string        `json:"total" validate:"required"`
}

type ItemPayload struct {
	ShortDescription *string `json:"shortDescription" validate:"required"`
	Price            string  `json:"price" validate:"required"`
}

// MaxMoneyDigits bounds the integer part of an amount. Twelve digits keep
// every score well inside int64.
const MaxMoneyDigits = 12

var (
	validate = newValidator()
	moneyRe  = regexp.MustCompile(`^\d+\.\d{2}$`)
	timeRe   = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// ParsePayload validates p and converts it into a Receipt. All problems are
// reported together in a single CodeValidation error keyed by field path.
func ParsePayload(p Payload) (Receipt, error) {
	details := map[string]string{}
	if err := validate.Struct(p); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return Receipt{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
		}
		for _, fe := range verrs {
			details[fieldPath(fe)] = validationMessage(fe)
		}
	}

	var rec Receipt

	rec.Retailer = p.Retailer
	if _, seen := details["retailer"]; !seen && strings.TrimSpace(p.Retailer) == "" {
		details["retailer"] = "must not be blank"
	}

	if _, seen := details["purchaseDate"]; !seen {
		d, err := time.Parse(DateLayout, p.PurchaseDate)
		if err != nil {
			details["purchaseDate"] = "must be a date formatted YYYY-MM-DD"
		}
		rec.PurchaseDate = d
	}

	if _, seen := details["purchaseTime"]; !seen {
		tod, err := ParseTimeOfDay(p.PurchaseTime)
		if err != nil {
			details["purchaseTime"] = "must be a 24h time formatted HH:MM"
		}
		rec.PurchaseTime = tod
	}

	if _, seen := details["total"]; !seen {
		total, err := ParseCents(p.Total)
		if err != nil {
			details["total"] = err.Error()
		}
		rec.Total = total
	}

	rec.Items = make([]Item, 0, len(p.Items))
	for i, ip := range p.Items {
		item := Item{}
		if ip.ShortDescription != nil {
			item.ShortDescription = *ip.ShortDescription
		}
		key := fmt.Sprintf("items[%d].price", i)
		if _, seen := details[key]; !seen {
			price, err := ParseCents(ip.Price)
			if err != nil {
				details[key] = err.Error()
			}
			item.Price = price
		}
		rec.Items = append(rec.Items, item)
	}

	if len(details) > 0 {
		return Receipt{}, pkgerrors.New(pkgerrors.CodeValidation, "The receipt is invalid.").WithDetails(details)
	}
	return rec, nil
}

// ParseCents converts a non-negative decimal with exactly two fraction digits
// ("6.49", "0.00") into cents.
func ParseCents(s string) (Cents, error) {
	if !moneyRe.MatchString(s) {
		return 0, fmt.Errorf("must be a non-negative amount with two decimals")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("must be a non-negative amount with two decimals")
	}
	if len(s)-3 > MaxMoneyDigits {
		return 0, fmt.Errorf("amount exceeds %d integer digits", MaxMoneyDigits)
	}
	return Cents(d.Shift(2).IntPart()), nil
}

// ParseTimeOfDay parses a zero-padded 24h "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	// "15" alone would also accept a single digit hour.
	if !timeRe.MatchString(s) {
		return TimeOfDay{}, fmt.Errorf("must be HH:MM")
	}
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return TimeOfDay{}, err
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// String renders c the way it arrived on the wire.
func (c Cents) String() string {
	return decimal.New(int64(c), -2).StringFixed(2)
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must contain at least %s", fe.Param())
	}
	return "is invalid"
}
