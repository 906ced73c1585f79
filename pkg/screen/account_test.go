package screen_test

import (
	"context"
	"testing"

	"github.com/bookhub/admin-client/pkg/bookhub"
	"github.com/bookhub/admin-client/pkg/screen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_FindLoginID(t *testing.T) {
	t.Parallel()

	loginID := "admin01"
	empty := ""

	tests := []struct {
		name        string
		token       string
		answer      *bookhub.Envelope[string]
		want        string
		wantMessage string
		wantKind    func(error) bool
	}{
		{
			name:   "resolved",
			token:  "mail-token",
			answer: &bookhub.Envelope[string]{Code: bookhub.CodeSuccess, Data: &loginID},
			want:   "admin01",
		},
		{
			name:        "missing token",
			wantMessage: screen.InvalidLinkMessage,
			wantKind:    bookhub.IsLocal,
		},
		{
			name:        "expired token",
			token:       "mail-token",
			answer:      &bookhub.Envelope[string]{Code: "VF", Message: "Verification failed."},
			wantMessage: "Verification failed.",
			wantKind:    bookhub.IsRemote,
		},
		{
			name:        "success without a login id",
			token:       "mail-token",
			answer:      &bookhub.Envelope[string]{Code: bookhub.CodeSuccess, Message: "Success.", Data: &empty},
			wantMessage: "Success.",
			wantKind:    bookhub.IsRemote,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			auth := newFakeAuth()
			auth.loginID = tt.answer
			account := screen.NewAccount(auth)

			got, err := account.FindLoginID(context.Background(), tt.token)
			if tt.wantKind != nil {
				require.Error(t, err)
				assert.True(t, tt.wantKind(err))
				assert.Equal(t, tt.wantMessage, bookhub.DisplayMessage(err))
				assert.Empty(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAccount_SendPasswordChangeEmail(t *testing.T) {
	t.Parallel()

	request := &bookhub.PasswordChangeEmailRequest{LoginID: "admin01", Email: "kim01@bookhub.com", PhoneNumber: "01012345678"}

	t.Run("returns the server message", func(t *testing.T) {
		t.Parallel()

		auth := newFakeAuth()
		account := screen.NewAccount(auth)

		message, err := account.SendPasswordChangeEmail(context.Background(), request)
		require.NoError(t, err)
		assert.Equal(t, "E-mail sent.", message)
		assert.Equal(t, []bookhub.PasswordChangeEmailRequest{*request}, auth.emailRequests)
	})

	t.Run("every field is required", func(t *testing.T) {
		t.Parallel()

		auth := newFakeAuth()
		account := screen.NewAccount(auth)

		_, err := account.SendPasswordChangeEmail(context.Background(), &bookhub.PasswordChangeEmailRequest{LoginID: "admin01", Email: "kim01@bookhub.com"})
		require.Error(t, err)
		assert.Equal(t, screen.IncompleteFormMessage, bookhub.DisplayMessage(err))
		assert.Empty(t, auth.emailRequests)
	})

	t.Run("rejection is prefixed", func(t *testing.T) {
		t.Parallel()

		auth := newFakeAuth()
		auth.emailStatus = rejected("NU", "No such user.")
		account := screen.NewAccount(auth)

		_, err := account.SendPasswordChangeEmail(context.Background(), request)
		require.Error(t, err)
		assert.True(t, bookhub.IsRemote(err))
		assert.Equal(t, "sending e-mail failed: No such user.", bookhub.DisplayMessage(err))
	})
}

func TestAccount_Logout(t *testing.T) {
	t.Parallel()

	auth := newFakeAuth()
	account := screen.NewAccount(auth)

	require.NoError(t, account.Logout(context.Background(), loggedIn()))
	assert.Equal(t, []string{"token-123"}, auth.logouts)

	require.ErrorIs(t, account.Logout(context.Background(), loggedOut()), bookhub.ErrLoginRequired)
	assert.Len(t, auth.logouts, 1)
}

type fakeStatistics struct {
	bars  []bookhub.BranchStockBar
	calls [][2]int
}

func (f *fakeStatistics) BranchStock(ctx context.Context, token string, year, month int) (*bookhub.Envelope[[]bookhub.BranchStockBar], error) {
	f.calls = append(f.calls, [2]int{year, month})

	return &bookhub.Envelope[[]bookhub.BranchStockBar]{Code: bookhub.CodeSuccess, Data: &f.bars}, nil
}

func TestBranchStock(t *testing.T) {
	t.Parallel()

	t.Run("loads the month", func(t *testing.T) {
		t.Parallel()

		statistics := &fakeStatistics{bars: []bookhub.BranchStockBar{{BranchName: "Gangnam", InAmount: 40, OutAmount: 12, LossAmount: 1}}}

		bars, err := screen.BranchStock(context.Background(), statistics, loggedIn(), 2026, 3)
		require.NoError(t, err)
		assert.Equal(t, statistics.bars, bars)
		assert.Equal(t, [][2]int{{2026, 3}}, statistics.calls)
	})

	t.Run("month out of range", func(t *testing.T) {
		t.Parallel()

		statistics := &fakeStatistics{}

		for _, month := range []int{0, 13} {
			_, err := screen.BranchStock(context.Background(), statistics, loggedIn(), 2026, month)
			require.Error(t, err)
			assert.True(t, bookhub.IsLocal(err))
		}

		assert.Empty(t, statistics.calls)
	})

	t.Run("missing token", func(t *testing.T) {
		t.Parallel()

		_, err := screen.BranchStock(context.Background(), &fakeStatistics{}, loggedOut(), 2026, 3)
		require.ErrorIs(t, err, bookhub.ErrLoginRequired)
	})
}
