package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/bookhub/admin-client/pkg/bookhub"
	"github.com/bookhub/admin-client/pkg/screen"
	"github.com/spf13/cobra"
)

// NewPoliciesCommand creates the policies command group
func NewPoliciesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "policies",
		Aliases: []string{"policy"},
		Short:   "Manage discount policies",
		Long:    "List, create, update and delete discount policies",
	}

	cmd.AddCommand(newPoliciesListCommand())
	cmd.AddCommand(newPoliciesGetCommand())
	cmd.AddCommand(newPoliciesCreateCommand())
	cmd.AddCommand(newPoliciesUpdateCommand())
	cmd.AddCommand(newPoliciesDeleteCommand())

	return cmd
}

// policyFlags are the editable policy fields shared by create and update.
type policyFlags struct {
	title       string
	description string
	policyType  string
	discount    int
	totalPrice  int64
	start       string
	end         string
}

func (f *policyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "policy title")
	cmd.Flags().StringVar(&f.description, "description", "", "policy description")
	cmd.Flags().IntVar(&f.discount, "discount", 0, "discount percent (0-100)")
	cmd.Flags().Int64Var(&f.totalPrice, "total-price", 0, "order total that triggers a total price discount")
	cmd.Flags().StringVar(&f.start, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "end date (YYYY-MM-DD)")
}

func (f *policyFlags) validateDates() error {
	err := validateDate(f.start)
	if err != nil {
		return err
	}

	return validateDate(f.end)
}

func newPolicyScreen() (*session, *screen.PolicyScreen, error) {
	s, err := newSession()
	if err != nil {
		return nil, nil, err
	}

	return s, screen.NewPolicyScreen(s.client.Policies(), s.credentials, s.options...), nil
}

func newPoliciesListCommand() *cobra.Command {
	var (
		page       int
		keyword    string
		policyType string
		start      string
		end        string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List discount policies",
		Long:  "List discount policies one page at a time, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedType, err := parsePolicyType(policyType)
			if err != nil {
				return err
			}

			for _, date := range []string{start, end} {
				err = validateDate(date)
				if err != nil {
					return err
				}
			}

			s, policies, err := newPolicyScreen()
			if err != nil {
				return err
			}

			err = requireLogin(cmd.Context(), s)
			if err != nil {
				return err
			}

			filter := bookhub.PolicyFilter{Keyword: keyword, Type: parsedType, Start: start, End: end}

			err = showPage(cmd.Context(), policies.List, filter, page)
			if err != nil {
				return err
			}

			return renderList(policies.List.Snapshot(), []interface{}{"ID", "Title", "Type", "Start", "End"}, func(policy bookhub.Policy) []string {
				return []string{
					strconv.FormatInt(policy.PolicyID, 10),
					policy.PolicyTitle,
					displayEnum(string(policy.PolicyType)),
					formatOptional(policy.StartDate),
					formatOptional(policy.EndDate),
				}
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().StringVar(&keyword, "keyword", "", "filter by title keyword")
	cmd.Flags().StringVar(&policyType, "type", "", "filter by policy type")
	cmd.Flags().StringVar(&start, "start", "", "policies active from (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "policies active until (YYYY-MM-DD)")

	return cmd
}

func newPoliciesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get POLICY_ID",
		Short: "Get policy details",
		Long:  "Display detailed information about a discount policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			s, policies, err := newPolicyScreen()
			if err != nil {
				return err
			}

			err = requireLogin(cmd.Context(), s)
			if err != nil {
				return err
			}

			err = policies.Editor.OpenEdit(cmd.Context(), id)
			if err != nil {
				return err
			}

			detail := policies.Editor.Snapshot().Detail

			return renderOutput(detail, func() error {
				return displayPolicyDetail(detail)
			})
		},
	}
}

func displayPolicyDetail(detail *bookhub.PolicyDetail) error {
	table := newTable("Property", "Value")

	_ = table.Append([]string{"ID", strconv.FormatInt(detail.PolicyID, 10)})
	_ = table.Append([]string{"Title", detail.PolicyTitle})
	_ = table.Append([]string{"Description", formatOptional(detail.PolicyDescription)})
	_ = table.Append([]string{"Type", displayEnum(string(detail.PolicyType))})
	_ = table.Append([]string{"Discount", fmt.Sprintf("%d%%", detail.DiscountPercent)})

	if detail.TotalPriceAchieve != nil {
		_ = table.Append([]string{"Total Price", strconv.FormatInt(*detail.TotalPriceAchieve, 10)})
	}

	_ = table.Append([]string{"Start", formatOptional(detail.StartDate)})
	_ = table.Append([]string{"End", formatOptional(detail.EndDate)})

	return renderTable(table)
}

func newPoliciesCreateCommand() *cobra.Command {
	var flags policyFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a discount policy",
		Long:  "Create a discount policy. Title and type are required",
		RunE: func(cmd *cobra.Command, args []string) error {
			policyType, err := parsePolicyType(flags.policyType)
			if err != nil {
				return err
			}

			err = flags.validateDates()
			if err != nil {
				return err
			}

			request := bookhub.PolicyCreateRequest{
				PolicyTitle:       flags.title,
				PolicyDescription: flags.description,
				PolicyType:        policyType,
				DiscountPercent:   flags.discount,
				StartDate:         flags.start,
				EndDate:           flags.end,
			}

			if cmd.Flags().Changed("total-price") {
				request.TotalPriceAchieve = &flags.totalPrice
			}

			_, policies, err := newPolicyScreen()
			if err != nil {
				return err
			}

			policies.Editor.OpenCreate()
			err = policies.Editor.SubmitCreate(cmd.Context(), &request)

			return finishMutation("policy", "created", policies.Editor.Snapshot().Notice, err)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&flags.policyType, "type", "", "policy type (BOOK_DISCOUNT, CATEGORY_DISCOUNT, TOTAL_PRICE_DISCOUNT)")

	return cmd
}

func newPoliciesUpdateCommand() *cobra.Command {
	var flags policyFlags

	cmd := &cobra.Command{
		Use:   "update POLICY_ID",
		Short: "Update a discount policy",
		Long:  "Update the given fields of a discount policy; other fields keep their current values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			err = flags.validateDates()
			if err != nil {
				return err
			}

			s, policies, err := newPolicyScreen()
			if err != nil {
				return err
			}

			err = requireLogin(cmd.Context(), s)
			if err != nil {
				return err
			}

			err = policies.Editor.OpenEdit(cmd.Context(), id)
			if err != nil {
				return err
			}

			request, err := policyUpdateRequest(cmd, policies.Editor.Snapshot().Detail, &flags)
			if err != nil {
				return err
			}

			err = policies.Editor.SubmitUpdate(cmd.Context(), id, request)

			return finishMutation("policy", "updated", policies.Editor.Snapshot().Notice, err)
		},
	}

	flags.register(cmd)

	return cmd
}

// policyUpdateRequest starts from the current detail and applies the flags
// the user set.
func policyUpdateRequest(cmd *cobra.Command, detail *bookhub.PolicyDetail, flags *policyFlags) (*bookhub.PolicyUpdateRequest, error) {
	if !anyChanged(cmd, "title", "description", "discount", "total-price", "start", "end") {
		return nil, ErrNothingToUpdate
	}

	discount := detail.DiscountPercent
	request := &bookhub.PolicyUpdateRequest{
		PolicyTitle:       detail.PolicyTitle,
		PolicyDescription: detail.PolicyDescription,
		TotalPriceAchieve: detail.TotalPriceAchieve,
		DiscountPercent:   &discount,
		StartDate:         detail.StartDate,
		EndDate:           detail.EndDate,
	}

	changed := cmd.Flags().Changed

	if changed("title") {
		request.PolicyTitle = flags.title
	}

	if changed("description") {
		request.PolicyDescription = flags.description
	}

	if changed("discount") {
		request.DiscountPercent = &flags.discount
	}

	if changed("total-price") {
		request.TotalPriceAchieve = &flags.totalPrice
	}

	if changed("start") {
		request.StartDate = flags.start
	}

	if changed("end") {
		request.EndDate = flags.end
	}

	return request, nil
}

func newPoliciesDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete POLICY_ID",
		Short: "Delete a discount policy",
		Long:  "Delete a discount policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if !confirm(force, fmt.Sprintf("Delete policy %d?", id)) {
				_, _ = fmt.Fprintln(os.Stdout, "Cancelled")

				return nil
			}

			_, policies, err := newPolicyScreen()
			if err != nil {
				return err
			}

			err = policies.Editor.Delete(cmd.Context(), id)

			return finishMutation("policy", "deleted", policies.Editor.Snapshot().Notice, err)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete without confirmation")

	return cmd
}
