package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "librario/internal/errors"
	"librario/internal/model"
	"librario/internal/repository"
)

// MockBookRepository is a mock implementation of BookRepository.
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(ctx context.Context, book *model.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) Save(ctx context.Context, book *model.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *MockBookRepository) List(ctx context.Context) ([]model.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *MockBookRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookRepository) ExistsByTitleAndAuthor(ctx context.Context, title, author string) (bool, error) {
	args := m.Called(ctx, title, author)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookRepository) MarkUnavailable(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockLoanRepository is a mock implementation of LoanRepository.
type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) Create(ctx context.Context, loan *model.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) FindAll(ctx context.Context) ([]model.Loan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Loan), args.Error(1)
}

// stubTxManager runs the transactional function against the given repos
// without a real database; the rollback behavior itself belongs to GORM.
type stubTxManager struct {
	repos repository.Repos
}

func (s *stubTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context, r repository.Repos) error) error {
	return fn(ctx, s.repos)
}

func newLoanServiceWithMocks() (LoanService, *MockBookRepository, *MockUserRepository, *MockLoanRepository) {
	books := new(MockBookRepository)
	users := new(MockUserRepository)
	loans := new(MockLoanRepository)
	tx := &stubTxManager{repos: repository.Repos{Books: books, Users: users, Loans: loans}}
	svc := NewLoanService(tx, books, users, loans, nil)
	return svc, books, users, loans
}

func sampleInput() CreateLoanInput {
	return CreateLoanInput{
		BookID:      1,
		UserID:      1,
		UserName:    "Ana Torres",
		UserEmail:   "ana.torres@example.com",
		UserPhone:   "3001234567",
		UserAddress: "Calle 10 #4-21",
		LoanDate:    time.Date(2025, 2, 26, 0, 0, 0, 0, time.UTC),
		ReturnDate:  time.Date(2025, 3, 26, 0, 0, 0, 0, time.UTC),
	}
}

func TestLoanService_CreateLoan_BookNotFound(t *testing.T) {
	svc, books, users, loans := newLoanServiceWithMocks()

	books.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)

	err := svc.CreateLoan(context.Background(), sampleInput())

	assert.ErrorIs(t, err, apperrors.ErrBookNotFound)
	users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	loans.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	books.AssertNotCalled(t, "MarkUnavailable", mock.Anything, mock.Anything)
}

func TestLoanService_CreateLoan_BookUnavailable(t *testing.T) {
	svc, books, users, loans := newLoanServiceWithMocks()

	books.On("FindByID", mock.Anything, uint(1)).
		Return(&model.Book{ID: 1, Title: "Rayuela", Author: "Julio Cortázar", Availability: false}, nil)

	err := svc.CreateLoan(context.Background(), sampleInput())

	assert.ErrorIs(t, err, apperrors.ErrBookUnavailable)
	users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	loans.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoanService_CreateLoan_NewUser(t *testing.T) {
	svc, books, users, loans := newLoanServiceWithMocks()
	in := sampleInput()

	books.On("FindByID", mock.Anything, uint(1)).
		Return(&model.Book{ID: 1, Availability: true}, nil)
	users.On("FindByID", mock.Anything, uint64(1)).Return(nil, gorm.ErrRecordNotFound)
	users.On("Save", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.ID == 1 &&
			u.Name == in.UserName &&
			u.Email == in.UserEmail &&
			u.Phone == in.UserPhone &&
			u.Address == in.UserAddress
	})).Return(nil)
	books.On("MarkUnavailable", mock.Anything, uint(1)).Return(true, nil)
	loans.On("Create", mock.Anything, mock.MatchedBy(func(l *model.Loan) bool {
		return l.BookID == 1 && l.UserID == 1 &&
			l.LoanDate.Equal(in.LoanDate) && l.ReturnDate.Equal(in.ReturnDate)
	})).Return(nil)

	err := svc.CreateLoan(context.Background(), in)

	assert.NoError(t, err)
	users.AssertNumberOfCalls(t, "Save", 1)
	loans.AssertNumberOfCalls(t, "Create", 1)
}

func TestLoanService_CreateLoan_ExistingUserProfileUntouched(t *testing.T) {
	svc, books, users, loans := newLoanServiceWithMocks()
	in := sampleInput()

	existing := &model.User{
		ID:      1,
		Name:    "Registered Name",
		Email:   "registered@example.com",
		Phone:   "000",
		Address: "somewhere else",
	}

	books.On("FindByID", mock.Anything, uint(1)).
		Return(&model.Book{ID: 1, Availability: true}, nil)
	users.On("FindByID", mock.Anything, uint64(1)).Return(existing, nil)
	books.On("MarkUnavailable", mock.Anything, uint(1)).Return(true, nil)
	loans.On("Create", mock.Anything, mock.MatchedBy(func(l *model.Loan) bool {
		return l.UserID == existing.ID
	})).Return(nil)

	err := svc.CreateLoan(context.Background(), in)

	assert.NoError(t, err)
	users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestLoanService_CreateLoan_LostAvailabilityRace(t *testing.T) {
	svc, books, users, loans := newLoanServiceWithMocks()

	books.On("FindByID", mock.Anything, uint(1)).
		Return(&model.Book{ID: 1, Availability: true}, nil)
	users.On("FindByID", mock.Anything, uint64(1)).Return(&model.User{ID: 1}, nil)
	// Another transaction flipped the flag between the read and the update.
	books.On("MarkUnavailable", mock.Anything, uint(1)).Return(false, nil)

	err := svc.CreateLoan(context.Background(), sampleInput())

	assert.ErrorIs(t, err, apperrors.ErrBookUnavailable)
	loans.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoanService_CreateLoan_StorageFaultPropagates(t *testing.T) {
	svc, books, users, loans := newLoanServiceWithMocks()

	books.On("FindByID", mock.Anything, uint(1)).
		Return(&model.Book{ID: 1, Availability: true}, nil)
	users.On("FindByID", mock.Anything, uint64(1)).Return(&model.User{ID: 1}, nil)
	books.On("MarkUnavailable", mock.Anything, uint(1)).Return(true, nil)
	loans.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrInvalidData)

	err := svc.CreateLoan(context.Background(), sampleInput())

	assert.ErrorIs(t, err, gorm.ErrInvalidData)
}

func TestLoanService_CreateLoan_SecondLoanSameBookConflicts(t *testing.T) {
	// Scenario: a successful loan flipped availability; the next request for
	// the same book must fail with the conflict error and write nothing.
	svc, books, users, loans := newLoanServiceWithMocks()
	in := sampleInput()

	book := &model.Book{ID: 1, Availability: true}
	books.On("FindByID", mock.Anything, uint(1)).Return(book, nil)
	users.On("FindByID", mock.Anything, uint64(1)).Return(nil, gorm.ErrRecordNotFound).Once()
	users.On("Save", mock.Anything, mock.Anything).Return(nil)
	books.On("MarkUnavailable", mock.Anything, uint(1)).
		Run(func(args mock.Arguments) { book.Availability = false }).
		Return(true, nil).Once()
	loans.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	assert.NoError(t, svc.CreateLoan(context.Background(), in))
	assert.False(t, book.Availability)

	err := svc.CreateLoan(context.Background(), in)

	assert.ErrorIs(t, err, apperrors.ErrBookUnavailable)
	loans.AssertNumberOfCalls(t, "Create", 1)
}

func TestLoanService_ListLoans_Empty(t *testing.T) {
	svc, _, _, loans := newLoanServiceWithMocks()

	loans.On("FindAll", mock.Anything).Return([]model.Loan{}, nil)

	views, err := svc.ListLoans(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, views)
}

func TestLoanService_ListLoans_StoreFault(t *testing.T) {
	svc, _, _, loans := newLoanServiceWithMocks()

	loans.On("FindAll", mock.Anything).Return(nil, gorm.ErrInvalidDB)

	views, err := svc.ListLoans(context.Background())

	assert.ErrorIs(t, err, gorm.ErrInvalidDB)
	assert.Nil(t, views)
}

func TestLoanService_ListLoans_DropsOrphanedLoans(t *testing.T) {
	svc, books, users, loans := newLoanServiceWithMocks()

	stored := []model.Loan{
		{ID: 1, BookID: 1, UserID: 1},
		{ID: 2, BookID: 2, UserID: 2}, // user deleted after loan creation
		{ID: 3, BookID: 3, UserID: 3}, // book deleted after loan creation
	}
	loans.On("FindAll", mock.Anything).Return(stored, nil)

	users.On("FindByID", mock.Anything, uint64(1)).Return(&model.User{ID: 1, Name: "Ana Torres"}, nil)
	users.On("FindByID", mock.Anything, uint64(2)).Return(nil, gorm.ErrRecordNotFound)
	users.On("FindByID", mock.Anything, uint64(3)).Return(&model.User{ID: 3}, nil)

	books.On("FindByID", mock.Anything, uint(1)).Return(&model.Book{ID: 1}, nil)
	books.On("FindByID", mock.Anything, uint(3)).Return(nil, gorm.ErrRecordNotFound)

	views, err := svc.ListLoans(context.Background())

	assert.NoError(t, err)
	assert.Len(t, views, 1)
	assert.Equal(t, uint(1), views[0].LoanID)
	// The loan with the missing book never triggers a second user lookup miss,
	// but its book gate drops it all the same.
	books.AssertNotCalled(t, "FindByID", mock.Anything, uint(2))
}

func TestLoanService_ListLoans_ViewFields(t *testing.T) {
	svc, books, users, loans := newLoanServiceWithMocks()

	loanDate := time.Date(2025, 2, 26, 0, 0, 0, 0, time.UTC)
	returnDate := time.Date(2025, 3, 26, 0, 0, 0, 0, time.UTC)
	loans.On("FindAll", mock.Anything).Return([]model.Loan{
		{ID: 1, BookID: 1, UserID: 1, LoanDate: loanDate, ReturnDate: returnDate},
	}, nil)
	users.On("FindByID", mock.Anything, uint64(1)).Return(&model.User{
		ID:      1,
		Name:    "Ana Torres",
		Email:   "ana.torres@example.com",
		Phone:   "3001234567",
		Address: "Calle 10 #4-21",
	}, nil)
	books.On("FindByID", mock.Anything, uint(1)).Return(&model.Book{ID: 1, Title: "Rayuela"}, nil)

	views, err := svc.ListLoans(context.Background())

	assert.NoError(t, err)
	assert.Len(t, views, 1)
	assert.Equal(t, LoanView{
		LoanID:      1,
		UserName:    "Ana Torres",
		UserEmail:   "ana.torres@example.com",
		UserID:      1,
		UserPhone:   "3001234567",
		UserAddress: "Calle 10 #4-21",
		BookID:      1,
		LoanDate:    "2025-02-26",
		ReturnDate:  "2025-03-26",
	}, views[0])
}
