package screen_test

import (
	"context"
	"testing"

	"github.com/bookhub/admin-client/pkg/bookhub"
	"github.com/bookhub/admin-client/pkg/screen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledSignUpForm(t *testing.T, auth *fakeAuth) *screen.SignUpForm {
	t.Helper()

	form := screen.NewSignUpForm(auth)
	require.NoError(t, form.Mount(context.Background()))

	form.Validator.SetValue(screen.FieldLoginID, "admin01")
	form.Validator.SetValue(screen.FieldPassword, "secret12!")
	form.Validator.SetValue(screen.FieldConfirmPassword, "secret12!")
	form.Validator.SetValue(screen.FieldEmail, "kim01@bookhub.com")
	form.Validator.SetValue(screen.FieldPhoneNumber, "01012345678")
	form.SetName("Kim Minji")
	form.SetBirthDate("1995-04-12")
	form.SetBranch(2)

	return form
}

func TestSignUpForm_Mount(t *testing.T) {
	t.Parallel()

	t.Run("loads branches", func(t *testing.T) {
		t.Parallel()

		form := screen.NewSignUpForm(newFakeAuth())
		require.NoError(t, form.Mount(context.Background()))

		branches := form.Snapshot().Branches
		require.Len(t, branches, 2)
		assert.Equal(t, "Busan", branches[1].BranchName)
	})

	t.Run("rejected branch fetch sets the message", func(t *testing.T) {
		t.Parallel()

		auth := newFakeAuth()
		auth.branches = &bookhub.Envelope[[]bookhub.Branch]{Code: "DBE", Message: "Database error."}
		form := screen.NewSignUpForm(auth)

		err := form.Mount(context.Background())
		require.Error(t, err)
		assert.True(t, bookhub.IsRemote(err))
		assert.Equal(t, "Database error.", form.Snapshot().Message)
		assert.Empty(t, form.Snapshot().Branches)
	})
}

func TestSignUpForm_Submit(t *testing.T) {
	t.Parallel()

	t.Run("sends the validator values", func(t *testing.T) {
		t.Parallel()

		auth := newFakeAuth()
		form := filledSignUpForm(t, auth)

		require.NoError(t, form.Submit(context.Background()))

		require.Len(t, auth.signUps, 1)
		assert.Equal(t, bookhub.SignUpRequest{
			LoginID:         "admin01",
			Password:        "secret12!",
			ConfirmPassword: "secret12!",
			Name:            "Kim Minji",
			Email:           "kim01@bookhub.com",
			PhoneNumber:     "01012345678",
			BirthDate:       "1995-04-12",
			BranchID:        2,
		}, auth.signUps[0])

		state := form.Snapshot()
		assert.Equal(t, "Signed up.", state.Notice)
		assert.Empty(t, state.Message)
	})

	tests := []struct {
		name  string
		clear func(*screen.SignUpForm)
	}{
		{"missing name", func(f *screen.SignUpForm) { f.SetName("") }},
		{"missing birth date", func(f *screen.SignUpForm) { f.SetBirthDate("") }},
		{"missing branch", func(f *screen.SignUpForm) { f.SetBranch(0) }},
		{"missing login id", func(f *screen.SignUpForm) { f.Validator.SetValue(screen.FieldLoginID, "") }},
		{"missing confirmation", func(f *screen.SignUpForm) { f.Validator.SetValue(screen.FieldConfirmPassword, "") }},
		{"missing phone number", func(f *screen.SignUpForm) { f.Validator.SetValue(screen.FieldPhoneNumber, "") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			auth := newFakeAuth()
			form := filledSignUpForm(t, auth)
			tt.clear(form)

			err := form.Submit(context.Background())
			require.Error(t, err)
			assert.True(t, bookhub.IsLocal(err))
			assert.Equal(t, screen.IncompleteFormMessage, form.Snapshot().Message)
			assert.Empty(t, auth.signUps)
		})
	}

	t.Run("field showing a failure blocks the request", func(t *testing.T) {
		t.Parallel()

		auth := newFakeAuth()
		form := filledSignUpForm(t, auth)
		form.Validator.SetValue(screen.FieldEmail, "not-an-email")
		require.Error(t, form.Blur(context.Background(), screen.FieldEmail))
		require.True(t, form.Validator.Rejected())

		err := form.Submit(context.Background())
		require.Error(t, err)
		assert.True(t, bookhub.IsLocal(err))
		assert.Equal(t, screen.RejectedFormMessage, form.Snapshot().Message)
		assert.Empty(t, auth.signUps)
	})

	t.Run("duplicate login id blocks the request", func(t *testing.T) {
		t.Parallel()

		auth := newFakeAuth()
		auth.checks["admin01"] = rejected("DI", "Login id already in use.")
		form := filledSignUpForm(t, auth)
		require.Error(t, form.Blur(context.Background(), screen.FieldLoginID))

		require.Error(t, form.Submit(context.Background()))
		assert.Empty(t, auth.signUps)
	})

	t.Run("rejected sign-up keeps the server message", func(t *testing.T) {
		t.Parallel()

		auth := newFakeAuth()
		auth.signUpStatus = rejected("DI", "Login id already in use.")
		form := filledSignUpForm(t, auth)

		err := form.Submit(context.Background())
		require.Error(t, err)
		assert.Equal(t, "Login id already in use.", form.Snapshot().Message)
		assert.Empty(t, form.Snapshot().Notice)
	})
}

func TestSignUpForm_ProfileChangeClearsMessage(t *testing.T) {
	t.Parallel()

	form := screen.NewSignUpForm(newFakeAuth())
	form.SetName("Kim Minji")

	require.Error(t, form.Submit(context.Background()))
	require.Equal(t, screen.IncompleteFormMessage, form.Snapshot().Message)

	form.SetName("Kim Minji")
	assert.Equal(t, screen.IncompleteFormMessage, form.Snapshot().Message, "same value keeps the message")

	form.SetBirthDate("1995-04-12")
	assert.Empty(t, form.Snapshot().Message)
}

func TestSignUpForm_Blur(t *testing.T) {
	t.Parallel()

	t.Run("account field runs the duplicate check", func(t *testing.T) {
		t.Parallel()

		auth := newFakeAuth()
		auth.checks["kim01@bookhub.com"] = rejected("DE", "E-mail already in use.")
		form := screen.NewSignUpForm(auth)
		form.Validator.SetValue(screen.FieldEmail, "kim01@bookhub.com")

		err := form.Blur(context.Background(), screen.FieldEmail)
		require.Error(t, err)
		assert.Equal(t, "E-mail already in use.", form.Validator.Field(screen.FieldEmail).ExistsMessage)
		assert.Equal(t, 1, auth.checkCount())
	})

	t.Run("password field runs the pair check", func(t *testing.T) {
		t.Parallel()

		auth := newFakeAuth()
		form := screen.NewSignUpForm(auth)
		form.Validator.SetValue(screen.FieldPassword, "Abc12345!")
		form.Validator.SetValue(screen.FieldConfirmPassword, "Abc12345!")

		require.NoError(t, form.Blur(context.Background(), screen.FieldConfirmPassword))
		assert.Equal(t, screen.PasswordMatchText, form.Validator.Pair().SuccessMessage)
		assert.Equal(t, 0, auth.checkCount())
	})
}
