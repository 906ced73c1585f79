package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/bookhub/admin-client/internal/constants"
	"github.com/bookhub/admin-client/pkg/bookhub"
	"github.com/bookhub/admin-client/pkg/screen"
	"github.com/spf13/cobra"
)

// signUpFlags pre-fill the sign-up prompts. A value given as a flag is not
// asked for again when it is rejected; the command fails instead.
type signUpFlags struct {
	loginID     string
	email       string
	phoneNumber string
	name        string
	birthDate   string
	branchID    int64
}

// NewSignUpCommand creates the signup command
func NewSignUpCommand() *cobra.Command {
	var flags signUpFlags

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register an employee account",
		Long: `Register an employee account. Login id, e-mail and phone number are
checked for duplicates as they are entered.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}

			form := screen.NewSignUpForm(s.client.Auth(), s.options...)

			err = form.Mount(cmd.Context())
			if err != nil {
				return err
			}

			accountFields := []struct {
				field  screen.Field
				label  string
				preset string
			}{
				{field: screen.FieldLoginID, label: "Login id: ", preset: flags.loginID},
				{field: screen.FieldEmail, label: "E-mail: ", preset: flags.email},
				{field: screen.FieldPhoneNumber, label: "Phone number: ", preset: flags.phoneNumber},
			}

			for _, input := range accountFields {
				err = askAccountField(cmd.Context(), form, input.field, input.label, input.preset)
				if err != nil {
					return err
				}
			}

			err = askPasswords(cmd.Context(), form)
			if err != nil {
				return err
			}

			err = askProfile(form, &flags)
			if err != nil {
				return err
			}

			err = form.Submit(cmd.Context())
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "%s %s\n", constants.CheckMarkSymbol, formatOptional(form.Snapshot().Notice))

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.loginID, "login-id", "", "login id")
	cmd.Flags().StringVar(&flags.email, "email", "", "e-mail address")
	cmd.Flags().StringVar(&flags.phoneNumber, "phone", "", "phone number")
	cmd.Flags().StringVar(&flags.name, "name", "", "full name")
	cmd.Flags().StringVar(&flags.birthDate, "birth-date", "", "birth date (YYYY-MM-DD)")
	cmd.Flags().Int64Var(&flags.branchID, "branch", 0, "branch id")

	return cmd
}

// askAccountField enters a value and runs its blur check until it passes.
func askAccountField(ctx context.Context, form *screen.SignUpForm, field screen.Field, label, preset string) error {
	for {
		value := preset
		if value == "" {
			value = promptLine(label)
		}

		form.Validator.SetValue(field, value)

		checkCtx, cancel := context.WithTimeout(ctx, constants.ShortHTTPTimeout)
		err := form.Blur(checkCtx, field)
		cancel()

		state := form.Validator.Field(field)

		if err == nil && value != "" {
			if state.NotExistsMessage != "" {
				_, _ = fmt.Fprintf(os.Stdout, "  %s %s\n", constants.CheckMarkSymbol, state.NotExistsMessage)
			}

			return nil
		}

		if err == nil {
			err = bookhub.LocalFailure(screen.IncompleteFormMessage)
		}

		if preset != "" {
			return err
		}

		_, _ = fmt.Fprintf(os.Stdout, "  %s\n", bookhub.DisplayMessage(err))
	}
}

func askPasswords(ctx context.Context, form *screen.SignUpForm) error {
	for {
		password, err := promptSecret("Password: ")
		if err != nil {
			return err
		}

		confirmation, err := promptSecret("Confirm password: ")
		if err != nil {
			return err
		}

		form.Validator.SetValue(screen.FieldPassword, password)
		form.Validator.SetValue(screen.FieldConfirmPassword, confirmation)

		err = form.Blur(ctx, screen.FieldConfirmPassword)
		if err == nil && password != "" && confirmation != "" {
			_, _ = fmt.Fprintf(os.Stdout, "  %s %s\n", constants.CheckMarkSymbol, form.Validator.Pair().SuccessMessage)

			return nil
		}

		if err == nil {
			err = bookhub.LocalFailure(screen.IncompleteFormMessage)
		}

		_, _ = fmt.Fprintf(os.Stdout, "  %s\n", bookhub.DisplayMessage(err))
	}
}

func askProfile(form *screen.SignUpForm, flags *signUpFlags) error {
	name := flags.name
	if name == "" {
		name = promptLine("Name: ")
	}

	form.SetName(name)

	birthDate := flags.birthDate
	if birthDate == "" {
		birthDate = promptLine("Birth date (YYYY-MM-DD): ")
	}

	err := validateDate(birthDate)
	if err != nil {
		return err
	}

	form.SetBirthDate(birthDate)

	branchID := flags.branchID
	if branchID == 0 {
		branchID, err = askBranch(form.Snapshot().Branches)
		if err != nil {
			return err
		}
	}

	form.SetBranch(branchID)

	return nil
}

func askBranch(branches []bookhub.Branch) (int64, error) {
	table := newTable("ID", "Branch", "Location")
	for _, branch := range branches {
		_ = table.Append([]string{strconv.FormatInt(branch.BranchID, 10), branch.BranchName, formatOptional(branch.BranchLocation)})
	}

	err := renderTable(table)
	if err != nil {
		return 0, err
	}

	return parseID(promptLine("Branch id: "))
}
