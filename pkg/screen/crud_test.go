package screen_test

import (
	"context"
	"strings"
	"testing"

	"github.com/bookhub/admin-client/pkg/bookhub"
	"github.com/bookhub/admin-client/pkg/screen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func policies(ids ...int64) []bookhub.Policy {
	rows := make([]bookhub.Policy, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, bookhub.Policy{PolicyID: id, PolicyTitle: "Policy", PolicyType: bookhub.PolicyTypeBook})
	}

	return rows
}

func mountedPolicyScreen(t *testing.T, fake *fakePolicies, page int) *screen.PolicyScreen {
	t.Helper()

	policyScreen := screen.NewPolicyScreen(fake, loggedIn(), screen.WithPageSize(2))
	require.NoError(t, policyScreen.List.FetchPage(context.Background(), page))

	return policyScreen
}

func TestCoordinator_OpenEdit(t *testing.T) {
	t.Parallel()

	t.Run("loads the detail", func(t *testing.T) {
		t.Parallel()

		fake := newFakePolicies(1, map[int][]bookhub.Policy{0: policies(1, 2)})
		policyScreen := mountedPolicyScreen(t, fake, 0)

		require.NoError(t, policyScreen.Editor.OpenEdit(context.Background(), 2))

		state := policyScreen.Editor.Snapshot()
		assert.Equal(t, screen.ModalEdit, state.Modal)
		require.NotNil(t, state.SelectedID)
		assert.Equal(t, int64(2), *state.SelectedID)
		require.NotNil(t, state.Detail)
		assert.Equal(t, "Spring sale", state.Detail.PolicyTitle)

		policyScreen.Editor.Close()

		state = policyScreen.Editor.Snapshot()
		assert.Equal(t, screen.ModalClosed, state.Modal)
		assert.Nil(t, state.SelectedID)
		assert.Nil(t, state.Detail)
	})

	t.Run("failed detail leaves the modal closed", func(t *testing.T) {
		t.Parallel()

		fake := newFakePolicies(1, map[int][]bookhub.Policy{0: policies(1)})
		fake.detail = &bookhub.Envelope[bookhub.PolicyDetail]{Code: "NP", Message: "No such policy."}
		policyScreen := mountedPolicyScreen(t, fake, 0)

		err := policyScreen.Editor.OpenEdit(context.Background(), 9)
		require.Error(t, err)
		assert.True(t, bookhub.IsRemote(err))

		state := policyScreen.Editor.Snapshot()
		assert.Equal(t, screen.ModalClosed, state.Modal)
		assert.Nil(t, state.Detail)
		assert.Equal(t, "No such policy.", state.Message)
	})
}

func TestCoordinator_SubmitCreate(t *testing.T) {
	t.Parallel()

	t.Run("success closes the modal and refreshes the list", func(t *testing.T) {
		t.Parallel()

		fake := newFakePolicies(2, map[int][]bookhub.Policy{0: policies(1, 2), 1: policies(3)})
		policyScreen := mountedPolicyScreen(t, fake, 1)
		calls := fake.calls()

		policyScreen.Editor.OpenCreate()
		require.Equal(t, screen.ModalCreate, policyScreen.Editor.Snapshot().Modal)

		fake.setPage(1, policies(3, 4))

		err := policyScreen.Editor.SubmitCreate(context.Background(), &bookhub.PolicyCreateRequest{
			PolicyTitle:     "Summer sale",
			PolicyType:      bookhub.PolicyTypeTotalPrice,
			DiscountPercent: 15,
		})
		require.NoError(t, err)

		state := policyScreen.Editor.Snapshot()
		assert.Equal(t, screen.ModalClosed, state.Modal)
		assert.Nil(t, state.Detail)
		assert.Empty(t, state.Message)
		assert.Equal(t, "Success.", state.Notice)

		assert.Equal(t, calls+1, fake.calls())
		assert.Equal(t, 1, fake.lastQuery().Page)
		assert.Equal(t, policies(3, 4), policyScreen.List.Snapshot().Items)
		require.Len(t, fake.created, 1)
		assert.Equal(t, "Summer sale", fake.created[0].PolicyTitle)
	})

	t.Run("remote failure keeps the modal open without refreshing", func(t *testing.T) {
		t.Parallel()

		fake := newFakePolicies(1, map[int][]bookhub.Policy{0: policies(1, 2)})
		policyScreen := mountedPolicyScreen(t, fake, 0)
		listBefore := policyScreen.List.Snapshot()
		calls := fake.calls()
		fake.mutation = rejected("ER", "duplicate isbn")

		policyScreen.Editor.OpenCreate()

		err := policyScreen.Editor.SubmitCreate(context.Background(), &bookhub.PolicyCreateRequest{
			PolicyTitle: "Summer sale",
			PolicyType:  bookhub.PolicyTypeBook,
		})
		require.Error(t, err)
		assert.True(t, bookhub.IsRemote(err))
		assert.Equal(t, "duplicate isbn", bookhub.DisplayMessage(err))

		state := policyScreen.Editor.Snapshot()
		assert.Equal(t, screen.ModalCreate, state.Modal)
		assert.Equal(t, "duplicate isbn", state.Message)
		assert.Empty(t, state.Notice)

		assert.Equal(t, calls, fake.calls(), "a failed create must not refresh")
		assert.Equal(t, listBefore, policyScreen.List.Snapshot())
	})

	t.Run("refresh failure after a create reports a stale list", func(t *testing.T) {
		t.Parallel()

		fake := newFakePolicies(1, map[int][]bookhub.Policy{0: policies(1)})
		policyScreen := mountedPolicyScreen(t, fake, 0)
		fake.fail(errConnectionRefused)

		policyScreen.Editor.OpenCreate()

		err := policyScreen.Editor.SubmitCreate(context.Background(), &bookhub.PolicyCreateRequest{
			PolicyTitle: "Summer sale",
			PolicyType:  bookhub.PolicyTypeBook,
		})
		require.ErrorIs(t, err, screen.ErrListStale)
		require.ErrorIs(t, err, errConnectionRefused)
		assert.True(t, bookhub.IsTransport(err))

		state := policyScreen.Editor.Snapshot()
		assert.Equal(t, screen.ModalClosed, state.Modal)
		assert.Equal(t, "Success.", state.Notice)
		require.Len(t, fake.created, 1)
	})

	t.Run("rejected create is not a stale list", func(t *testing.T) {
		t.Parallel()

		fake := newFakePolicies(1, map[int][]bookhub.Policy{0: policies(1)})
		policyScreen := mountedPolicyScreen(t, fake, 0)
		fake.mutation = rejected("DP", "Duplicated policy title.")

		err := policyScreen.Editor.SubmitCreate(context.Background(), &bookhub.PolicyCreateRequest{
			PolicyTitle: "Taken",
			PolicyType:  bookhub.PolicyTypeBook,
		})
		require.Error(t, err)
		assert.NotErrorIs(t, err, screen.ErrListStale)
	})

	t.Run("missing required field fails locally", func(t *testing.T) {
		t.Parallel()

		fake := newFakePolicies(1, map[int][]bookhub.Policy{0: policies(1)})
		policyScreen := mountedPolicyScreen(t, fake, 0)
		calls := fake.calls()

		policyScreen.Editor.OpenCreate()

		err := policyScreen.Editor.SubmitCreate(context.Background(), &bookhub.PolicyCreateRequest{PolicyTitle: "No type"})
		require.Error(t, err)
		assert.True(t, bookhub.IsLocal(err))
		assert.Equal(t, "policy type is required", bookhub.DisplayMessage(err))

		assert.Equal(t, 0, fake.mutationCalls())
		assert.Equal(t, calls, fake.calls())
		assert.Equal(t, screen.ModalCreate, policyScreen.Editor.Snapshot().Modal)
	})

	t.Run("nil form fails locally", func(t *testing.T) {
		t.Parallel()

		fake := newFakePolicies(1, map[int][]bookhub.Policy{0: policies(1)})
		policyScreen := mountedPolicyScreen(t, fake, 0)

		err := policyScreen.Editor.SubmitCreate(context.Background(), nil)
		require.Error(t, err)
		assert.True(t, bookhub.IsLocal(err))
		assert.Equal(t, 0, fake.mutationCalls())
	})

	t.Run("out of range discount fails locally", func(t *testing.T) {
		t.Parallel()

		fake := newFakePolicies(1, map[int][]bookhub.Policy{0: policies(1)})
		policyScreen := mountedPolicyScreen(t, fake, 0)

		err := policyScreen.Editor.SubmitCreate(context.Background(), &bookhub.PolicyCreateRequest{
			PolicyTitle:     "Too generous",
			PolicyType:      bookhub.PolicyTypeBook,
			DiscountPercent: 120,
		})
		require.Error(t, err)
		assert.Equal(t, "discount percent must be at most 100", bookhub.DisplayMessage(err))
	})

	t.Run("missing token makes no call", func(t *testing.T) {
		t.Parallel()

		fake := newFakePolicies(1, map[int][]bookhub.Policy{0: policies(1)})
		policyScreen := screen.NewPolicyScreen(fake, loggedOut())

		policyScreen.Editor.OpenCreate()

		err := policyScreen.Editor.SubmitCreate(context.Background(), &bookhub.PolicyCreateRequest{
			PolicyTitle: "Any",
			PolicyType:  bookhub.PolicyTypeBook,
		})
		require.ErrorIs(t, err, bookhub.ErrLoginRequired)
		assert.Equal(t, "login required", policyScreen.Editor.Snapshot().Message)
		assert.Equal(t, 0, fake.mutationCalls())
	})
}

func TestCoordinator_SubmitUpdate(t *testing.T) {
	t.Parallel()

	t.Run("remote failure keeps the modal open", func(t *testing.T) {
		t.Parallel()

		fake := newFakePolicies(1, map[int][]bookhub.Policy{0: policies(1, 2)})
		policyScreen := mountedPolicyScreen(t, fake, 0)
		require.NoError(t, policyScreen.Editor.OpenEdit(context.Background(), 1))

		listBefore := policyScreen.List.Snapshot()
		calls := fake.calls()
		fake.mutation = rejected("DP", "Duplicated policy title.")

		err := policyScreen.Editor.SubmitUpdate(context.Background(), 1, &bookhub.PolicyUpdateRequest{PolicyTitle: "Taken"})
		require.Error(t, err)
		assert.True(t, bookhub.IsRemote(err))

		state := policyScreen.Editor.Snapshot()
		assert.Equal(t, screen.ModalEdit, state.Modal)
		require.NotNil(t, state.Detail)
		assert.Equal(t, "Duplicated policy title.", state.Message)

		assert.Equal(t, calls, fake.calls(), "a failed mutation must not refresh")
		assert.Equal(t, listBefore, policyScreen.List.Snapshot())
	})

	t.Run("transport failure shows the generic message", func(t *testing.T) {
		t.Parallel()

		fake := newFakePolicies(1, map[int][]bookhub.Policy{0: policies(1)})
		policyScreen := mountedPolicyScreen(t, fake, 0)
		require.NoError(t, policyScreen.Editor.OpenEdit(context.Background(), 1))

		fake.mutation = nil
		fake.err = errConnectionRefused

		err := policyScreen.Editor.SubmitUpdate(context.Background(), 1, &bookhub.PolicyUpdateRequest{PolicyTitle: "x"})
		require.ErrorIs(t, err, errConnectionRefused)
		assert.Equal(t, bookhub.TransportFailureMessage, policyScreen.Editor.Snapshot().Message)
		assert.Equal(t, screen.ModalEdit, policyScreen.Editor.Snapshot().Modal)
	})
}

func TestCoordinator_Hide(t *testing.T) {
	t.Parallel()

	t.Run("removing the last row of a page steps back", func(t *testing.T) {
		t.Parallel()

		fake := newFakePolicies(3, map[int][]bookhub.Policy{1: policies(3, 4), 2: policies(5)})
		policyScreen := mountedPolicyScreen(t, fake, 2)

		require.NoError(t, policyScreen.Editor.Delete(context.Background(), 5))
		assert.Equal(t, []int64{5}, fake.deleted)
		assert.Equal(t, 1, fake.lastQuery().Page)
		assert.Equal(t, 1, policyScreen.List.Snapshot().CurrentPage)
	})

	t.Run("failed removal does not refresh", func(t *testing.T) {
		t.Parallel()

		fake := newFakePolicies(3, map[int][]bookhub.Policy{2: policies(5)})
		policyScreen := mountedPolicyScreen(t, fake, 2)
		calls := fake.calls()
		fake.mutation = rejected("NP", "No such policy.")

		err := policyScreen.Editor.Hide(context.Background(), 5)
		require.Error(t, err)
		assert.Equal(t, calls, fake.calls())
		assert.Equal(t, 2, policyScreen.List.Snapshot().CurrentPage)
	})
}

func TestCoordinator_UnsupportedOperations(t *testing.T) {
	t.Parallel()

	stocks := newFakeList[bookhub.Stock, bookhub.StockFilter](1, map[int][]bookhub.Stock{})
	stockScreen := screen.NewStockScreen(&fakeStocks{fakeList: stocks}, loggedIn())

	err := stockScreen.Editor.SubmitCreate(context.Background(), &struct{}{})
	require.ErrorIs(t, err, bookhub.ErrOperationNotAllowed)

	err = stockScreen.Editor.Hide(context.Background(), 1)
	require.ErrorIs(t, err, bookhub.ErrOperationNotAllowed)
}

func TestCoordinator_BookRequiresReferences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		request bookhub.BookCreateRequest
		message string
	}{
		{
			name:    "category",
			request: bookhub.BookCreateRequest{Isbn: "9780000000001", BookTitle: "Title", AuthorID: 1, PublisherID: 1},
			message: "category is required",
		},
		{
			name:    "author",
			request: bookhub.BookCreateRequest{Isbn: "9780000000001", BookTitle: "Title", CategoryID: 11, PublisherID: 1},
			message: "author is required",
		},
		{
			name:    "publisher",
			request: bookhub.BookCreateRequest{Isbn: "9780000000001", BookTitle: "Title", CategoryID: 11, AuthorID: 1},
			message: "publisher is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			books := newFakeBooks()
			bookScreen := screen.NewBookScreen(books, loggedIn())

			err := bookScreen.Editor.SubmitCreate(context.Background(), &screen.BookCreateForm{Request: tt.request})
			require.Error(t, err)
			assert.True(t, bookhub.IsLocal(err))
			assert.Equal(t, tt.message, bookhub.DisplayMessage(err))
			assert.Empty(t, books.createdRequests())
			assert.Equal(t, 0, books.calls())
		})
	}
}

func TestBookScreen_SearchAndHide(t *testing.T) {
	t.Parallel()

	books := newFakeBooks(
		bookhub.Book{Isbn: "9780000000001", BookTitle: "Go in Action"},
		bookhub.Book{Isbn: "9780000000002", BookTitle: "Learning Go"},
	)
	bookScreen := screen.NewBookScreen(books, loggedIn())

	require.NoError(t, bookScreen.Search(context.Background(), "go"))
	require.NoError(t, bookScreen.Search(context.Background(), "go"))
	assert.Equal(t, 2, books.calls(), "repeating a search fetches again")
	assert.Equal(t, "go", books.lastQuery().Filter.Keyword)

	assert.True(t, bookScreen.Edit("9780000000002"))
	state := bookScreen.Editor.Snapshot()
	require.NotNil(t, state.Detail)
	assert.True(t, strings.HasPrefix(state.Detail.BookTitle, "Learning"))
	assert.False(t, bookScreen.Edit("0000"))

	require.NoError(t, bookScreen.Editor.Hide(context.Background(), "9780000000002"))
	assert.Equal(t, []string{"9780000000002"}, books.hidden)
	assert.Equal(t, screen.ModalClosed, bookScreen.Editor.Snapshot().Modal)
	assert.Equal(t, 3, books.calls())
}

// fakeStocks implements bookhub.StocksClient.
type fakeStocks struct {
	*fakeList[bookhub.Stock, bookhub.StockFilter]
}

func (f *fakeStocks) Get(ctx context.Context, token string, stockID int64) (*bookhub.Envelope[bookhub.Stock], error) {
	return &bookhub.Envelope[bookhub.Stock]{Code: bookhub.CodeSuccess, Data: &bookhub.Stock{StockID: stockID}}, nil
}

func (f *fakeStocks) Update(ctx context.Context, token string, stockID int64, request *bookhub.StockUpdateRequest) (*bookhub.Status, error) {
	return success(), nil
}
