package bookhub

import "io"

// PolicyType classifies a discount policy.
type PolicyType string

const (
	PolicyTypeBook       PolicyType = "BOOK_DISCOUNT"
	PolicyTypeCategory   PolicyType = "CATEGORY_DISCOUNT"
	PolicyTypeTotalPrice PolicyType = "TOTAL_PRICE_DISCOUNT"
)

// Policy is a discount policy as shown in the policy list.
type Policy struct {
	PolicyID    int64      `json:"policyId"    yaml:"policy_id"`
	PolicyTitle string     `json:"policyTitle" yaml:"policy_title"`
	PolicyType  PolicyType `json:"policyType"  yaml:"policy_type"`
	StartDate   string     `json:"startDate"   yaml:"start_date"`
	EndDate     string     `json:"endDate"     yaml:"end_date"`
}

// PolicyDetail is the full representation of a policy held while editing.
type PolicyDetail struct {
	PolicyID          int64      `json:"policyId"                    yaml:"policy_id"`
	PolicyTitle       string     `json:"policyTitle"                 yaml:"policy_title"`
	PolicyDescription string     `json:"policyDescription,omitempty" yaml:"policy_description,omitempty"`
	PolicyType        PolicyType `json:"policyType"                  yaml:"policy_type"`
	TotalPriceAchieve *int64     `json:"totalPriceAchieve,omitempty" yaml:"total_price_achieve,omitempty"`
	DiscountPercent   int        `json:"discountPercent"             yaml:"discount_percent"`
	StartDate         string     `json:"startDate,omitempty"         yaml:"start_date,omitempty"`
	EndDate           string     `json:"endDate,omitempty"           yaml:"end_date,omitempty"`
}

// PolicyCreateRequest creates a discount policy.
type PolicyCreateRequest struct {
	PolicyTitle       string     `json:"policyTitle"                 label:"policy title"     validate:"required"`
	PolicyDescription string     `json:"policyDescription,omitempty"`
	PolicyType        PolicyType `json:"policyType"                  label:"policy type"      validate:"required"`
	TotalPriceAchieve *int64     `json:"totalPriceAchieve,omitempty"`
	DiscountPercent   int        `json:"discountPercent"             label:"discount percent" validate:"gte=0,lte=100"`
	StartDate         string     `json:"startDate,omitempty"`
	EndDate           string     `json:"endDate,omitempty"`
}

// PolicyUpdateRequest updates a discount policy.
type PolicyUpdateRequest struct {
	PolicyTitle       string `json:"policyTitle,omitempty"`
	PolicyDescription string `json:"policyDescription,omitempty"`
	TotalPriceAchieve *int64 `json:"totalPriceAchieve,omitempty"`
	DiscountPercent   *int   `json:"discountPercent,omitempty" label:"discount percent" validate:"omitempty,gte=0,lte=100"`
	StartDate         string `json:"startDate,omitempty"`
	EndDate           string `json:"endDate,omitempty"`
}

// Publisher is a publisher directory entry.
type Publisher struct {
	PublisherID   int64  `json:"publisherId"   yaml:"publisher_id"`
	PublisherName string `json:"publisherName" yaml:"publisher_name"`
}

// PublisherRequest creates or renames a publisher.
type PublisherRequest struct {
	PublisherName string `json:"publisherName" label:"publisher name" validate:"required"`
}

// StockActionType is the kind of stock movement.
type StockActionType string

const (
	StockActionIn   StockActionType = "IN"
	StockActionOut  StockActionType = "OUT"
	StockActionLoss StockActionType = "LOSS"
)

// Stock is the stock level of one book at one branch.
type Stock struct {
	StockID    int64  `json:"stockId"    yaml:"stock_id"`
	BookIsbn   string `json:"bookIsbn"   yaml:"book_isbn"`
	BookTitle  string `json:"bookTitle"  yaml:"book_title"`
	BranchID   int64  `json:"branchId"   yaml:"branch_id"`
	BranchName string `json:"branchName" yaml:"branch_name"`
	Amount     int64  `json:"amount"     yaml:"amount"`
}

// StockUpdateRequest records a stock movement.
type StockUpdateRequest struct {
	Type        StockActionType `json:"type"                  label:"stock action" validate:"required,oneof=IN OUT LOSS"`
	BranchID    int64           `json:"branchId"              label:"branch"       validate:"required"`
	BookIsbn    string          `json:"bookIsbn"              label:"book"         validate:"required"`
	Amount      int64           `json:"amount"                label:"amount"       validate:"gt=0"`
	Description string          `json:"description,omitempty"`
}

// BookStatus is the catalog visibility of a book.
type BookStatus string

const (
	BookStatusActive   BookStatus = "ACTIVE"
	BookStatusInactive BookStatus = "INACTIVE"
	BookStatusHidden   BookStatus = "HIDDEN"
)

// Book is a catalog entry keyed by ISBN.
type Book struct {
	Isbn          string     `json:"isbn"                    yaml:"isbn"`
	BookTitle     string     `json:"bookTitle"               yaml:"book_title"`
	CategoryID    int64      `json:"categoryId,omitempty"    yaml:"category_id,omitempty"`
	CategoryName  string     `json:"categoryName,omitempty"  yaml:"category_name,omitempty"`
	AuthorID      int64      `json:"authorId,omitempty"      yaml:"author_id,omitempty"`
	AuthorName    string     `json:"authorName"              yaml:"author_name"`
	PublisherID   int64      `json:"publisherId,omitempty"   yaml:"publisher_id,omitempty"`
	PublisherName string     `json:"publisherName"           yaml:"publisher_name"`
	BookPrice     int64      `json:"bookPrice"               yaml:"book_price"`
	PublishedDate string     `json:"publishedDate,omitempty" yaml:"published_date,omitempty"`
	CoverURL      string     `json:"coverUrl,omitempty"      yaml:"cover_url,omitempty"`
	PageCount     string     `json:"pageCount,omitempty"     yaml:"page_count,omitempty"`
	Language      string     `json:"language,omitempty"      yaml:"language,omitempty"`
	Description   string     `json:"description,omitempty"   yaml:"description,omitempty"`
	BookStatus    BookStatus `json:"bookStatus"              yaml:"book_status"`
	PolicyID      *int64     `json:"policyId,omitempty"      yaml:"policy_id,omitempty"`
}

// BookCreateRequest registers a new book. The category, author and
// publisher references must be chosen before submission.
type BookCreateRequest struct {
	Isbn          string `json:"isbn"          label:"isbn"       validate:"required"`
	BookTitle     string `json:"bookTitle"     label:"book title" validate:"required"`
	CategoryID    int64  `json:"categoryId"    label:"category"   validate:"required"`
	AuthorID      int64  `json:"authorId"      label:"author"     validate:"required"`
	PublisherID   int64  `json:"publisherId"   label:"publisher"  validate:"required"`
	BookPrice     int64  `json:"bookPrice"     label:"price"      validate:"gte=0"`
	PublishedDate string `json:"publishedDate"`
	PageCount     string `json:"pageCount"`
	Language      string `json:"language"`
	Description   string `json:"description"`
}

// BookUpdateRequest edits the mutable part of a book.
type BookUpdateRequest struct {
	Isbn        string     `json:"isbn"                 label:"isbn"   validate:"required"`
	BookPrice   int64      `json:"bookPrice"            label:"price"  validate:"gte=0"`
	Description string     `json:"description"`
	BookStatus  BookStatus `json:"bookStatus"           label:"status" validate:"required,oneof=ACTIVE INACTIVE HIDDEN"`
	PolicyID    *int64     `json:"policyId,omitempty"`
	CategoryID  *int64     `json:"categoryId"`
}

// FileUpload is an optional file part of a multipart request.
type FileUpload struct {
	Filename string
	Content  io.Reader
}

// Author is an author directory entry.
type Author struct {
	AuthorID    int64  `json:"authorId"    yaml:"author_id"`
	AuthorName  string `json:"authorName"  yaml:"author_name"`
	AuthorEmail string `json:"authorEmail" yaml:"author_email"`
}

// CategoryType names a top-level category partition.
type CategoryType string

const (
	CategoryDomestic CategoryType = "DOMESTIC"
	CategoryForeign  CategoryType = "FOREIGN"
)

// Category is a node of the two-level category tree.
type Category struct {
	CategoryID    int64        `json:"categoryId"              yaml:"category_id"`
	CategoryName  string       `json:"categoryName"            yaml:"category_name"`
	CategoryType  CategoryType `json:"categoryType,omitempty"  yaml:"category_type,omitempty"`
	SubCategories []Category   `json:"subCategories,omitempty" yaml:"sub_categories,omitempty"`
}

// IsBranch reports whether the node has children to expand.
func (c Category) IsBranch() bool {
	return len(c.SubCategories) > 0
}

// Branch is a store branch an employee belongs to.
type Branch struct {
	BranchID       int64  `json:"branchId"                 yaml:"branch_id"`
	BranchName     string `json:"branchName"               yaml:"branch_name"`
	BranchLocation string `json:"branchLocation,omitempty" yaml:"branch_location,omitempty"`
}

// SignUpRequest registers an employee account.
type SignUpRequest struct {
	LoginID         string `json:"loginId"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phoneNumber"`
	BirthDate       string `json:"birthDate"`
	BranchID        int64  `json:"branchId"`
}

// PasswordChangeEmailRequest asks the server to e-mail a password change link.
type PasswordChangeEmailRequest struct {
	LoginID     string `json:"loginId"     label:"login id"     validate:"required"`
	Email       string `json:"email"       label:"email"        validate:"required"`
	PhoneNumber string `json:"phoneNumber" label:"phone number" validate:"required"`
}

// BranchStockBar is one bar of the per-branch monthly stock chart.
type BranchStockBar struct {
	BranchName string `json:"branchName" yaml:"branch_name"`
	InAmount   int64  `json:"inAmount"   yaml:"in_amount"`
	OutAmount  int64  `json:"outAmount"  yaml:"out_amount"`
	LossAmount int64  `json:"lossAmount" yaml:"loss_amount"`
}
