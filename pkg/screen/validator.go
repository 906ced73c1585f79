package screen

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/bookhub/admin-client/pkg/bookhub"
)

// Field names a validated form input.
type Field string

const (
	FieldLoginID         Field = "loginId"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"
	FieldEmail           Field = "email"
	FieldPhoneNumber     Field = "phoneNumber"
)

// Format hints shown when a value is rejected before any remote check.
const (
	LoginIDHint          = "login id must be 4 to 13 letters or digits, starting with a letter"
	PasswordHint         = "password must be 8 to 16 characters with a letter, a digit and one of !@#$%*?"
	EmailHint            = "not a valid e-mail address"
	PhoneNumberHint      = "not a valid phone number"
	PasswordMismatchText = "passwords do not match"
	PasswordMatchText    = "passwords match"
)

const passwordSpecials = "!@#$%*?"

var (
	loginIDPattern     = regexp.MustCompile(`^[A-Za-z][A-Za-z\d]{3,12}$`)
	passwordPattern    = regexp.MustCompile(`^[A-Za-z\d!@#$%*?]{8,16}$`)
	emailPattern       = regexp.MustCompile(`^[A-Za-z][A-Za-z\d]+@[A-Za-z\d.-]+\.[A-Za-z]{2,}$`)
	phoneNumberPattern = regexp.MustCompile(`^010\d{8}$`)
	letterPattern      = regexp.MustCompile(`[A-Za-z]`)
	digitPattern       = regexp.MustCompile(`\d`)
)

// ValidLoginID reports whether value is an acceptable login id.
func ValidLoginID(value string) bool {
	return loginIDPattern.MatchString(value)
}

// ValidPassword reports whether value is an acceptable password: 8 to 16
// characters with at least one letter, one digit and one special character.
func ValidPassword(value string) bool {
	return passwordPattern.MatchString(value) &&
		letterPattern.MatchString(value) &&
		digitPattern.MatchString(value) &&
		strings.ContainsAny(value, passwordSpecials)
}

// ValidEmail reports whether value looks like an e-mail address.
func ValidEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// ValidPhoneNumber reports whether value is a mobile number.
func ValidPhoneNumber(value string) bool {
	return phoneNumberPattern.MatchString(value)
}

// RemoteCheck asks the server whether value is still available.
type RemoteCheck func(ctx context.Context, value string) (*bookhub.Status, error)

// FieldRule is how one field is checked on blur.
type FieldRule struct {
	Format func(string) bool
	Hint   string
	Check  RemoteCheck
}

// FieldState is the displayed state of one field. At most one of the two
// messages is set.
type FieldState struct {
	Value            string `json:"value"                        yaml:"value"`
	ExistsMessage    string `json:"exists_message,omitempty"     yaml:"exists_message,omitempty"`
	NotExistsMessage string `json:"not_exists_message,omitempty" yaml:"not_exists_message,omitempty"`
}

// PairState is the displayed state of the password confirmation.
type PairState struct {
	FailMessage    string `json:"fail_message,omitempty"    yaml:"fail_message,omitempty"`
	SuccessMessage string `json:"success_message,omitempty" yaml:"success_message,omitempty"`
}

// Validator holds per-field values and their check messages.
//
// Remote checks run outside the lock. A result is applied only if the field
// still holds the value that was checked, so an answer for an older value
// never overwrites the message of a newer one.
type Validator struct {
	mu     sync.Mutex
	rules  map[Field]FieldRule
	fields map[Field]*FieldState
	pair   PairState
	logger bookhub.Logger
}

// NewValidator creates a validator with no rules.
func NewValidator(opts ...Option) *Validator {
	built := buildOptions(opts)

	return &Validator{
		rules:  make(map[Field]FieldRule),
		fields: make(map[Field]*FieldState),
		logger: built.logger,
	}
}

// NewAccountValidator creates a validator with the sign-up field rules wired
// to the duplicate checks of auth.
func NewAccountValidator(auth bookhub.AuthClient, opts ...Option) *Validator {
	v := NewValidator(opts...)
	v.Register(FieldLoginID, FieldRule{Format: ValidLoginID, Hint: LoginIDHint, Check: auth.CheckLoginID})
	v.Register(FieldEmail, FieldRule{Format: ValidEmail, Hint: EmailHint, Check: auth.CheckEmail})
	v.Register(FieldPhoneNumber, FieldRule{Format: ValidPhoneNumber, Hint: PhoneNumberHint, Check: auth.CheckPhoneNumber})

	return v
}

// Register sets the blur rule of field.
func (v *Validator) Register(field Field, rule FieldRule) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.rules[field] = rule
}

// SetValue stores value. A changed value clears the messages of field; a
// change to either password field clears the pair messages.
func (v *Validator) SetValue(field Field, value string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.setValueLocked(field, value)
}

func (v *Validator) setValueLocked(field Field, value string) {
	state := v.stateLocked(field)
	if state.Value == value {
		return
	}

	state.Value = value
	state.ExistsMessage = ""
	state.NotExistsMessage = ""

	if field == FieldPassword || field == FieldConfirmPassword {
		v.pair = PairState{}
	}
}

// CheckField runs the blur check of field for raw. Empty input does nothing.
// A format failure sets the hint without a remote call; otherwise exactly
// one remote check is made.
func (v *Validator) CheckField(ctx context.Context, field Field, raw string) error {
	v.mu.Lock()
	v.setValueLocked(field, raw)
	rule, ok := v.rules[field]
	v.mu.Unlock()

	if raw == "" {
		return nil
	}

	if !ok {
		return fmt.Errorf("checking %s: %w", field, bookhub.ErrOperationNotAllowed)
	}

	if rule.Format != nil && !rule.Format(raw) {
		v.apply(field, raw, rule.Hint, "")

		return bookhub.LocalFailure(rule.Hint)
	}

	if rule.Check == nil {
		return nil
	}

	envelope, err := rule.Check(ctx, raw)
	if err != nil {
		v.logger.Error("field check failed", map[string]interface{}{
			"field": string(field),
			"error": err.Error(),
		})

		v.apply(field, raw, bookhub.TransportFailureMessage, "")

		return bookhub.TransportFailure(err)
	}

	if envelope.Succeeded() {
		v.apply(field, raw, "", envelope.Message)

		return nil
	}

	failure := bookhub.AsFailure(envelope.Err())
	v.apply(field, raw, failure.Message, "")

	return failure
}

// CheckPasswordPair checks the password format and, when both are filled
// in, that the confirmation matches. No remote call is made.
func (v *Validator) CheckPasswordPair() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	password := v.stateLocked(FieldPassword).Value
	confirm := v.stateLocked(FieldConfirmPassword).Value

	if password != "" && !ValidPassword(password) {
		v.pair = PairState{FailMessage: PasswordHint}

		return bookhub.LocalFailure(PasswordHint)
	}

	if password == "" || confirm == "" {
		return nil
	}

	if password != confirm {
		v.pair = PairState{FailMessage: PasswordMismatchText}

		return bookhub.LocalFailure(PasswordMismatchText)
	}

	v.pair = PairState{SuccessMessage: PasswordMatchText}

	return nil
}

// Field returns a copy of the state of field.
func (v *Validator) Field(field Field) FieldState {
	v.mu.Lock()
	defer v.mu.Unlock()

	return *v.stateLocked(field)
}

// Pair returns the password confirmation state.
func (v *Validator) Pair() PairState {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.pair
}

// Rejected reports whether any field currently shows a failure.
func (v *Validator) Rejected() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, state := range v.fields {
		if state.ExistsMessage != "" {
			return true
		}
	}

	return v.pair.FailMessage != ""
}

func (v *Validator) apply(field Field, checked, exists, notExists string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	state := v.stateLocked(field)
	if state.Value != checked {
		v.logger.Debug("discarding stale field check", map[string]interface{}{"field": string(field)})

		return
	}

	state.ExistsMessage = exists
	state.NotExistsMessage = notExists
}

func (v *Validator) stateLocked(field Field) *FieldState {
	state, ok := v.fields[field]
	if !ok {
		state = &FieldState{}
		v.fields[field] = state
	}

	return state
}
