package screen_test

import (
	"context"
	"errors"
	"sync"

	"github.com/bookhub/admin-client/pkg/bookhub"
)

var errConnectionRefused = errors.New("dial tcp 127.0.0.1:8080: connection refused")

func loggedIn() bookhub.CredentialProvider {
	return bookhub.CredentialFunc(func(context.Context) (string, bool) {
		return "token-123", true
	})
}

func loggedOut() bookhub.CredentialProvider {
	return bookhub.CredentialFunc(func(context.Context) (string, bool) {
		return "", false
	})
}

func success() *bookhub.Status {
	return &bookhub.Status{Code: bookhub.CodeSuccess, Message: "Success."}
}

func rejected(code, message string) *bookhub.Status {
	return &bookhub.Status{Code: code, Message: message}
}

// fakeList serves fixed pages and records every query it receives.
type fakeList[T any, F bookhub.Filter] struct {
	mu         sync.Mutex
	pages      map[int][]T
	totalPages int
	queries    []bookhub.Query[F]
	tokens     []string
	response   *bookhub.Envelope[bookhub.Page[T]]
	err        error
}

func newFakeList[T any, F bookhub.Filter](totalPages int, pages map[int][]T) *fakeList[T, F] {
	return &fakeList[T, F]{pages: pages, totalPages: totalPages}
}

func (f *fakeList[T, F]) List(ctx context.Context, token string, query bookhub.Query[F]) (*bookhub.Envelope[bookhub.Page[T]], error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.queries = append(f.queries, query)
	f.tokens = append(f.tokens, token)

	if f.err != nil {
		return nil, f.err
	}

	if f.response != nil {
		return f.response, nil
	}

	content, ok := f.pages[query.Page]
	if !ok {
		content = []T{}
	}

	return &bookhub.Envelope[bookhub.Page[T]]{
		Code:    bookhub.CodeSuccess,
		Message: "Success.",
		Data: &bookhub.Page[T]{
			Content:     content,
			TotalPages:  f.totalPages,
			CurrentPage: query.Page,
		},
	}, nil
}

func (f *fakeList[T, F]) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.err = err
}

func (f *fakeList[T, F]) respond(envelope *bookhub.Envelope[bookhub.Page[T]]) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.response = envelope
}

func (f *fakeList[T, F]) setPage(page int, content []T) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.pages[page] = content
}

func (f *fakeList[T, F]) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.queries)
}

func (f *fakeList[T, F]) lastQuery() bookhub.Query[F] {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.queries[len(f.queries)-1]
}

// fakePolicies implements bookhub.PoliciesClient.
type fakePolicies struct {
	*fakeList[bookhub.Policy, bookhub.PolicyFilter]

	mu       sync.Mutex
	detail   *bookhub.Envelope[bookhub.PolicyDetail]
	mutation *bookhub.Status
	err      error
	created  []bookhub.PolicyCreateRequest
	updated  map[int64]bookhub.PolicyUpdateRequest
	deleted  []int64
}

var _ bookhub.PoliciesClient = (*fakePolicies)(nil)

func newFakePolicies(totalPages int, pages map[int][]bookhub.Policy) *fakePolicies {
	return &fakePolicies{
		fakeList: newFakeList[bookhub.Policy, bookhub.PolicyFilter](totalPages, pages),
		mutation: success(),
		updated:  make(map[int64]bookhub.PolicyUpdateRequest),
	}
}

func (f *fakePolicies) Get(ctx context.Context, token string, policyID int64) (*bookhub.Envelope[bookhub.PolicyDetail], error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.detail != nil {
		return f.detail, nil
	}

	return &bookhub.Envelope[bookhub.PolicyDetail]{
		Code: bookhub.CodeSuccess,
		Data: &bookhub.PolicyDetail{PolicyID: policyID, PolicyTitle: "Spring sale", PolicyType: bookhub.PolicyTypeBook, DiscountPercent: 10},
	}, nil
}

func (f *fakePolicies) Create(ctx context.Context, token string, request *bookhub.PolicyCreateRequest) (*bookhub.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.created = append(f.created, *request)

	return f.mutation, f.err
}

func (f *fakePolicies) Update(ctx context.Context, token string, policyID int64, request *bookhub.PolicyUpdateRequest) (*bookhub.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.updated[policyID] = *request

	return f.mutation, f.err
}

func (f *fakePolicies) Delete(ctx context.Context, token string, policyID int64) (*bookhub.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deleted = append(f.deleted, policyID)

	return f.mutation, f.err
}

func (f *fakePolicies) mutationCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.created) + len(f.updated) + len(f.deleted)
}

// fakeBooks implements bookhub.BooksClient.
type fakeBooks struct {
	*fakeList[bookhub.Book, bookhub.BookFilter]

	mu      sync.Mutex
	created []bookhub.BookCreateRequest
	covers  []*bookhub.FileUpload
	hidden  []string
	status  *bookhub.Status
}

var _ bookhub.BooksClient = (*fakeBooks)(nil)

func newFakeBooks(books ...bookhub.Book) *fakeBooks {
	return &fakeBooks{
		fakeList: newFakeList[bookhub.Book, bookhub.BookFilter](1, map[int][]bookhub.Book{0: books}),
		status:   success(),
	}
}

func (f *fakeBooks) Search(ctx context.Context, token string, query bookhub.Query[bookhub.BookFilter]) (*bookhub.Envelope[bookhub.Page[bookhub.Book]], error) {
	return f.List(ctx, token, query)
}

func (f *fakeBooks) Create(ctx context.Context, token string, request *bookhub.BookCreateRequest, cover *bookhub.FileUpload) (*bookhub.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.created = append(f.created, *request)
	f.covers = append(f.covers, cover)

	return f.status, nil
}

func (f *fakeBooks) Update(ctx context.Context, token string, isbn string, request *bookhub.BookUpdateRequest, cover *bookhub.FileUpload) (*bookhub.Status, error) {
	return f.status, nil
}

func (f *fakeBooks) Hide(ctx context.Context, token string, isbn string) (*bookhub.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.hidden = append(f.hidden, isbn)

	return f.status, nil
}

func (f *fakeBooks) createdRequests() []bookhub.BookCreateRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]bookhub.BookCreateRequest(nil), f.created...)
}

// fakeCategories implements bookhub.CategoriesClient. When gate is set,
// every call blocks until it is closed.
type fakeCategories struct {
	mu       sync.Mutex
	trees    map[bookhub.CategoryType][]bookhub.Category
	calls    map[bookhub.CategoryType]int
	err      error
	rejected bool
	gate     chan struct{}
	started  chan struct{}
}

var _ bookhub.CategoriesClient = (*fakeCategories)(nil)

func newFakeCategories() *fakeCategories {
	return &fakeCategories{
		trees: map[bookhub.CategoryType][]bookhub.Category{
			bookhub.CategoryDomestic: {
				{CategoryID: 1, CategoryName: "Fiction", SubCategories: []bookhub.Category{
					{CategoryID: 11, CategoryName: "Novel"},
					{CategoryID: 12, CategoryName: "Poetry"},
				}},
				{CategoryID: 2, CategoryName: "Essay"},
			},
			bookhub.CategoryForeign: {
				{CategoryID: 3, CategoryName: "Science", SubCategories: []bookhub.Category{
					{CategoryID: 31, CategoryName: "Physics"},
				}},
			},
		},
		calls: make(map[bookhub.CategoryType]int),
	}
}

func (f *fakeCategories) Tree(ctx context.Context, token string, categoryType bookhub.CategoryType) (*bookhub.Envelope[[]bookhub.Category], error) {
	f.mu.Lock()
	f.calls[categoryType]++
	gate, started := f.gate, f.started
	err, rejected := f.err, f.rejected
	tree := f.trees[categoryType]
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}

	if gate != nil {
		<-gate
	}

	if err != nil {
		return nil, err
	}

	if rejected {
		return &bookhub.Envelope[[]bookhub.Category]{Code: "DBE", Message: "Database error."}, nil
	}

	return &bookhub.Envelope[[]bookhub.Category]{Code: bookhub.CodeSuccess, Data: &tree}, nil
}

func (f *fakeCategories) callCount(categoryType bookhub.CategoryType) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls[categoryType]
}

func (f *fakeCategories) set(configure func(*fakeCategories)) {
	f.mu.Lock()
	defer f.mu.Unlock()

	configure(f)
}

// fakeAuth implements bookhub.AuthClient with scripted answers per value.
type fakeAuth struct {
	mu            sync.Mutex
	checks        map[string]*bookhub.Status
	checkCalls    []string
	checkErr      error
	gate          chan struct{}
	branches      *bookhub.Envelope[[]bookhub.Branch]
	signUps       []bookhub.SignUpRequest
	signUpStatus  *bookhub.Status
	loginID       *bookhub.Envelope[string]
	emailRequests []bookhub.PasswordChangeEmailRequest
	emailStatus   *bookhub.Status
	logouts       []string
}

var _ bookhub.AuthClient = (*fakeAuth)(nil)

func newFakeAuth() *fakeAuth {
	branches := []bookhub.Branch{{BranchID: 1, BranchName: "Gangnam"}, {BranchID: 2, BranchName: "Busan"}}

	return &fakeAuth{
		checks:       make(map[string]*bookhub.Status),
		branches:     &bookhub.Envelope[[]bookhub.Branch]{Code: bookhub.CodeSuccess, Data: &branches},
		signUpStatus: &bookhub.Status{Code: bookhub.CodeSuccess, Message: "Signed up."},
		emailStatus:  &bookhub.Status{Code: bookhub.CodeSuccess, Message: "E-mail sent."},
	}
}

func (f *fakeAuth) check(ctx context.Context, value string) (*bookhub.Status, error) {
	f.mu.Lock()
	f.checkCalls = append(f.checkCalls, value)
	gate, err := f.gate, f.checkErr
	answer, ok := f.checks[value]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	if err != nil {
		return nil, err
	}

	if !ok {
		return &bookhub.Status{Code: bookhub.CodeSuccess, Message: "available"}, nil
	}

	return answer, nil
}

func (f *fakeAuth) CheckLoginID(ctx context.Context, loginID string) (*bookhub.Status, error) {
	return f.check(ctx, loginID)
}

func (f *fakeAuth) CheckEmail(ctx context.Context, email string) (*bookhub.Status, error) {
	return f.check(ctx, email)
}

func (f *fakeAuth) CheckPhoneNumber(ctx context.Context, phoneNumber string) (*bookhub.Status, error) {
	return f.check(ctx, phoneNumber)
}

func (f *fakeAuth) SignUp(ctx context.Context, request *bookhub.SignUpRequest) (*bookhub.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.signUps = append(f.signUps, *request)

	return f.signUpStatus, nil
}

func (f *fakeAuth) Branches(ctx context.Context) (*bookhub.Envelope[[]bookhub.Branch], error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.branches, nil
}

func (f *fakeAuth) FindLoginID(ctx context.Context, emailToken string) (*bookhub.Envelope[string], error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.loginID, nil
}

func (f *fakeAuth) SendPasswordChangeEmail(ctx context.Context, request *bookhub.PasswordChangeEmailRequest) (*bookhub.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.emailRequests = append(f.emailRequests, *request)

	return f.emailStatus, nil
}

func (f *fakeAuth) Logout(ctx context.Context, token string) (*bookhub.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.logouts = append(f.logouts, token)

	return success(), nil
}

func (f *fakeAuth) checkCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.checkCalls)
}
