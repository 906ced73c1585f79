package screen

import (
	"context"
	"slices"
	"sync"

	"github.com/bookhub/admin-client/pkg/bookhub"
)

// Messages shown when the form is not ready to submit.
const (
	IncompleteFormMessage = "please fill in every field"
	RejectedFormMessage   = "please correct the highlighted fields"
)

// SignUpState is a point-in-time copy of the sign-up form.
type SignUpState struct {
	Name      string           `json:"name"       yaml:"name"`
	BirthDate string           `json:"birth_date" yaml:"birth_date"`
	BranchID  int64            `json:"branch_id"  yaml:"branch_id"`
	Branches  []bookhub.Branch `json:"branches"   yaml:"branches"`
	Message   string           `json:"message"    yaml:"message"`
	Notice    string           `json:"notice"     yaml:"notice"`
}

// SignUpForm is the employee registration form. Account fields go through
// the validator; the profile fields share one general message that any
// change to them clears.
type SignUpForm struct {
	Validator *Validator

	auth   bookhub.AuthClient
	logger bookhub.Logger

	mu        sync.Mutex
	name      string
	birthDate string
	branchID  int64
	branches  []bookhub.Branch
	message   string
	notice    string
}

// NewSignUpForm creates an empty sign-up form.
func NewSignUpForm(auth bookhub.AuthClient, opts ...Option) *SignUpForm {
	built := buildOptions(opts)

	return &SignUpForm{
		Validator: NewAccountValidator(auth, opts...),
		auth:      auth,
		logger:    built.logger,
		branches:  []bookhub.Branch{},
	}
}

// Mount loads the branch choices.
func (f *SignUpForm) Mount(ctx context.Context) error {
	envelope, err := f.auth.Branches(ctx)
	if err != nil {
		f.logger.Error("branch fetch failed", map[string]interface{}{"error": err.Error()})

		return f.fail(bookhub.TransportFailure(err))
	}

	if !envelope.Succeeded() {
		return f.fail(bookhub.AsFailure(envelope.Err()))
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if envelope.Data != nil {
		f.branches = *envelope.Data
	}

	return nil
}

// SetName sets the employee name.
func (f *SignUpForm) SetName(name string) {
	f.setProfile(func() bool {
		changed := f.name != name
		f.name = name

		return changed
	})
}

// SetBirthDate sets the birth date (2006-01-02).
func (f *SignUpForm) SetBirthDate(birthDate string) {
	f.setProfile(func() bool {
		changed := f.birthDate != birthDate
		f.birthDate = birthDate

		return changed
	})
}

// SetBranch sets the branch the employee belongs to.
func (f *SignUpForm) SetBranch(branchID int64) {
	f.setProfile(func() bool {
		changed := f.branchID != branchID
		f.branchID = branchID

		return changed
	})
}

// Blur runs the check of field: a format and duplicate check for account
// fields, the pair check for either password field.
func (f *SignUpForm) Blur(ctx context.Context, field Field) error {
	if field == FieldPassword || field == FieldConfirmPassword {
		return f.Validator.CheckPasswordPair()
	}

	return f.Validator.CheckField(ctx, field, f.Validator.Field(field).Value)
}

// Submit registers the account. Every field must be set and no field may
// show a failure; otherwise nothing is sent.
func (f *SignUpForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	request := bookhub.SignUpRequest{
		Name:      f.name,
		BirthDate: f.birthDate,
		BranchID:  f.branchID,
	}
	f.mu.Unlock()

	request.LoginID = f.Validator.Field(FieldLoginID).Value
	request.Password = f.Validator.Field(FieldPassword).Value
	request.ConfirmPassword = f.Validator.Field(FieldConfirmPassword).Value
	request.Email = f.Validator.Field(FieldEmail).Value
	request.PhoneNumber = f.Validator.Field(FieldPhoneNumber).Value

	if f.Validator.Rejected() {
		return f.fail(bookhub.LocalFailure(RejectedFormMessage))
	}

	if !signUpComplete(&request) {
		return f.fail(bookhub.LocalFailure(IncompleteFormMessage))
	}

	envelope, err := f.auth.SignUp(ctx, &request)
	if err != nil {
		f.logger.Error("sign-up failed", map[string]interface{}{"error": err.Error()})

		return f.fail(bookhub.TransportFailure(err))
	}

	if !envelope.Succeeded() {
		return f.fail(bookhub.AsFailure(envelope.Err()))
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.message = ""
	f.notice = envelope.Message

	return nil
}

// Snapshot returns a copy of the form state.
func (f *SignUpForm) Snapshot() SignUpState {
	f.mu.Lock()
	defer f.mu.Unlock()

	return SignUpState{
		Name:      f.name,
		BirthDate: f.birthDate,
		BranchID:  f.branchID,
		Branches:  slices.Clone(f.branches),
		Message:   f.message,
		Notice:    f.notice,
	}
}

func signUpComplete(request *bookhub.SignUpRequest) bool {
	for _, value := range []string{
		request.LoginID,
		request.Password,
		request.ConfirmPassword,
		request.Email,
		request.PhoneNumber,
		request.Name,
		request.BirthDate,
	} {
		if value == "" {
			return false
		}
	}

	return request.BranchID != 0
}

func (f *SignUpForm) setProfile(set func() bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if set() {
		f.message = ""
	}
}

func (f *SignUpForm) fail(err error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.message = bookhub.DisplayMessage(err)

	return err
}
