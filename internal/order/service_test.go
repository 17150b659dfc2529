package order

import (
	"context"
	"errors"
	"math/rand"
	"regexp"
	"strings"
	"testing"

	"plantstore-be/internal/product"
	"plantstore-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, o *Order) (*Order, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]*Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) GetByTrackingID(ctx context.Context, trackingID string) (*Order, error) {
	args := m.Called(ctx, trackingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, trackingID string, target Status, allowedFrom []Status) error {
	args := m.Called(ctx, trackingID, target, allowedFrom)
	return args.Error(0)
}

type MockProductSource struct {
	mock.Mock
}

func (m *MockProductSource) Get(ctx context.Context, id uint) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

type MockBanList struct {
	mock.Mock
}

func (m *MockBanList) IsBanned(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

func newTestService() (Service, *MockRepository, *MockProductSource, *MockBanList) {
	repo := new(MockRepository)
	products := new(MockProductSource)
	bans := new(MockBanList)
	gen := NewTrackingGeneratorWithSource("FLOWER", rand.NewSource(1))
	return NewService(repo, products, bans, gen, 20), repo, products, bans
}

func validInput() PlaceInput {
	return PlaceInput{
		CustomerName:  "Jane Mary Doe",
		PhoneNumber:   "0812345678",
		Address:       "12 Garden Lane",
		ProductID:     7,
		Quantity:      2,
		PaymentMethod: PaymentCOD,
	}
}

func monstera() *product.Product {
	return &product.Product{ID: 7, Name: "Monstera", Price: 12.5, Stock: 10}
}

func TestService_Place(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, repo, products, bans := newTestService()
		bans.On("IsBanned", ctx, "0812345678").Return(false, nil)
		products.On("Get", ctx, uint(7)).Return(monstera(), nil)
		repo.On("Create", ctx, mock.AnythingOfType("*order.Order")).
			Return(&Order{TrackingID: "FLOWER#007-1234-567-JMD"}, nil)

		created, err := svc.Place(ctx, validInput())
		require.NoError(t, err)
		assert.NotEmpty(t, created.TrackingID)

		placed := repo.Calls[0].Arguments.Get(1).(*Order)
		assert.Equal(t, StatusPending, placed.Status)
		assert.Equal(t, 25.0, placed.Total)
		assert.Equal(t, "Monstera", placed.ProductName)
		assert.Regexp(t, regexp.MustCompile(`^FLOWER#007-\d{4}-\d{3}-JMD$`), placed.TrackingID)
		assert.Nil(t, placed.Requirements)
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name     string
			mutate   func(*PlaceInput)
			expected error
		}{
			{"empty name", func(in *PlaceInput) { in.CustomerName = "  " }, ErrNameRequired},
			{"short phone", func(in *PlaceInput) { in.PhoneNumber = "12345" }, ErrInvalidPhone},
			{"empty address", func(in *PlaceInput) { in.Address = "" }, ErrAddressRequired},
			{"unknown payment", func(in *PlaceInput) { in.PaymentMethod = "crypto" }, ErrInvalidPayment},
			{"zero quantity", func(in *PlaceInput) { in.Quantity = 0 }, ErrInvalidQuantity},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				svc, repo, _, _ := newTestService()
				in := validInput()
				tc.mutate(&in)

				_, err := svc.Place(ctx, in)
				assert.ErrorIs(t, err, tc.expected)
				repo.AssertNotCalled(t, "Create")
			})
		}
	})

	t.Run("banned customer is rejected before product lookup", func(t *testing.T) {
		svc, repo, products, bans := newTestService()
		bans.On("IsBanned", ctx, "0812345678").Return(true, nil)

		_, err := svc.Place(ctx, validInput())
		assert.ErrorIs(t, err, ErrCustomerBanned)
		products.AssertNotCalled(t, "Get")
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("out of stock", func(t *testing.T) {
		svc, _, products, bans := newTestService()
		bans.On("IsBanned", ctx, "0812345678").Return(false, nil)
		empty := monstera()
		empty.Stock = 0
		products.On("Get", ctx, uint(7)).Return(empty, nil)

		_, err := svc.Place(ctx, validInput())
		assert.ErrorIs(t, err, ErrOutOfStock)
	})

	t.Run("quantity above stock", func(t *testing.T) {
		svc, _, products, bans := newTestService()
		bans.On("IsBanned", ctx, "0812345678").Return(false, nil)
		low := monstera()
		low.Stock = 1
		products.On("Get", ctx, uint(7)).Return(low, nil)

		_, err := svc.Place(ctx, validInput())
		assert.ErrorIs(t, err, ErrQuantityTooLarge)
	})

	t.Run("quantity above cap even with stock", func(t *testing.T) {
		svc, _, products, bans := newTestService()
		bans.On("IsBanned", ctx, "0812345678").Return(false, nil)
		deep := monstera()
		deep.Stock = 100
		products.On("Get", ctx, uint(7)).Return(deep, nil)

		in := validInput()
		in.Quantity = 21
		_, err := svc.Place(ctx, in)
		assert.ErrorIs(t, err, ErrQuantityTooLarge)
	})

	t.Run("unknown product", func(t *testing.T) {
		svc, _, products, bans := newTestService()
		bans.On("IsBanned", ctx, "0812345678").Return(false, nil)
		products.On("Get", ctx, uint(7)).Return(nil, product.ErrProductNotFound)

		_, err := svc.Place(ctx, validInput())
		assert.ErrorIs(t, err, product.ErrProductNotFound)
	})
}

func TestService_Transition(t *testing.T) {
	ctx := context.Background()

	t.Run("pending to confirmed", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		svc.Selection(ctx).Toggle("FLOWER#001-1111-111-AA")

		repo.On("GetByTrackingID", ctx, "FLOWER#001-1111-111-AA").
			Return(&Order{TrackingID: "FLOWER#001-1111-111-AA", Status: StatusPending}, nil)
		repo.On("UpdateStatus", ctx, "FLOWER#001-1111-111-AA", StatusConfirmed, []Status{StatusPending}).
			Return(nil)

		err := svc.Transition(ctx, "FLOWER#001-1111-111-AA", StatusConfirmed)
		require.NoError(t, err)
		assert.False(t, svc.Selection(ctx).Has("FLOWER#001-1111-111-AA"))
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("GetByTrackingID", ctx, "FLOWER#001-1111-111-AA").
			Return(&Order{Status: StatusCancelled}, nil)

		err := svc.Transition(ctx, "FLOWER#001-1111-111-AA", StatusConfirmed)
		assert.ErrorIs(t, err, ErrTransitionNotAllowed)
		repo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("confirmed back to pending is rejected", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("GetByTrackingID", ctx, "FLOWER#001-1111-111-AA").
			Return(&Order{Status: StatusConfirmed}, nil)

		err := svc.Transition(ctx, "FLOWER#001-1111-111-AA", StatusPending)
		assert.ErrorIs(t, err, ErrTransitionNotAllowed)
	})

	t.Run("unknown target status", func(t *testing.T) {
		svc, repo, _, _ := newTestService()

		err := svc.Transition(ctx, "FLOWER#001-1111-111-AA", Status("Shipped"))
		assert.ErrorIs(t, err, ErrInvalidStatus)
		repo.AssertNotCalled(t, "GetByTrackingID")
	})

	t.Run("missing order", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("GetByTrackingID", ctx, "FLOWER#404-0000-000-XX").
			Return(nil, ErrOrderNotFound)

		err := svc.Transition(ctx, "FLOWER#404-0000-000-XX", StatusConfirmed)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestService_BulkTransition(t *testing.T) {
	ctx := context.Background()

	t.Run("partial failure keeps going", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		svc.Selection(ctx).Toggle("id-1")
		svc.Selection(ctx).Toggle("id-2")
		svc.Selection(ctx).Toggle("id-3")

		for _, id := range []string{"id-1", "id-3"} {
			repo.On("GetByTrackingID", ctx, id).
				Return(&Order{TrackingID: id, Status: StatusPending}, nil)
			repo.On("UpdateStatus", ctx, id, StatusConfirmed, []Status{StatusPending}).
				Return(nil)
		}
		repo.On("GetByTrackingID", ctx, "id-2").Return(nil, ErrOrderNotFound)

		result := svc.BulkTransition(ctx, []string{"id-1", "id-2", "id-3"}, StatusConfirmed)

		assert.Equal(t, 2, result.Succeeded)
		assert.Equal(t, 1, result.Failed)
		assert.ErrorIs(t, result.Err, ErrOrderNotFound)
		assert.Contains(t, result.Err.Error(), "id-2")
		assert.Equal(t, 0, svc.Selection(ctx).Len())
	})

	t.Run("selection cleared even when everything fails", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		svc.Selection(ctx).Toggle("id-1")

		repo.On("GetByTrackingID", ctx, "id-1").
			Return(&Order{TrackingID: "id-1", Status: StatusCancelled}, nil)

		result := svc.BulkTransition(ctx, []string{"id-1"}, StatusConfirmed)

		assert.Equal(t, 0, result.Succeeded)
		assert.Equal(t, 1, result.Failed)
		assert.Equal(t, 0, svc.Selection(ctx).Len())
	})

	t.Run("empty id list", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		result := svc.BulkTransition(ctx, nil, StatusConfirmed)
		assert.Equal(t, 0, result.Succeeded)
		assert.Equal(t, 0, result.Failed)
		assert.NoError(t, result.Err)
	})
}

func TestService_Orders(t *testing.T) {
	ctx := context.Background()

	t.Run("prunes stale selections", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		svc.Selection(ctx).Toggle("gone")
		svc.Selection(ctx).Toggle("FLOWER#001-1111-111-AA")

		repo.On("List", ctx).Return([]*Order{
			{TrackingID: "FLOWER#001-1111-111-AA", Status: StatusPending},
		}, nil)

		orders, err := svc.Orders(ctx, Projection{})
		require.NoError(t, err)
		assert.Len(t, orders, 1)
		assert.False(t, svc.Selection(ctx).Has("gone"))
		assert.True(t, svc.Selection(ctx).Has("FLOWER#001-1111-111-AA"))
	})

	t.Run("repository error", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		repo.On("List", ctx).Return(nil, errors.New("db down"))

		_, err := svc.Orders(ctx, Projection{})
		assert.Error(t, err)
	})
}

func TestService_SelectionPerAdmin(t *testing.T) {
	alice := utils.SetUserContext(context.Background(), 1, "alice@example.com")
	bob := utils.SetUserContext(context.Background(), 2, "bob@example.com")

	t.Run("sessions are isolated", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		svc.Selection(alice).Toggle("id-1")
		assert.True(t, svc.Selection(alice).Has("id-1"))
		assert.False(t, svc.Selection(bob).Has("id-1"))

		svc.Selection(bob).Toggle("id-2")
		svc.Selection(alice).Clear()
		assert.True(t, svc.Selection(bob).Has("id-2"))
	})

	t.Run("bulk action clears only the acting admin", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		svc.Selection(alice).Toggle("id-1")
		svc.Selection(bob).Toggle("id-9")

		repo.On("GetByTrackingID", alice, "id-1").
			Return(&Order{TrackingID: "id-1", Status: StatusPending}, nil)
		repo.On("UpdateStatus", alice, "id-1", StatusConfirmed, []Status{StatusPending}).
			Return(nil)

		svc.BulkTransition(alice, []string{"id-1"}, StatusConfirmed)

		assert.Equal(t, 0, svc.Selection(alice).Len())
		assert.True(t, svc.Selection(bob).Has("id-9"))
	})

	t.Run("transition removes the order from every session", func(t *testing.T) {
		svc, repo, _, _ := newTestService()
		svc.Selection(alice).Toggle("id-1")
		svc.Selection(bob).Toggle("id-1")

		repo.On("GetByTrackingID", alice, "id-1").
			Return(&Order{TrackingID: "id-1", Status: StatusPending}, nil)
		repo.On("UpdateStatus", alice, "id-1", StatusConfirmed, []Status{StatusPending}).
			Return(nil)

		require.NoError(t, svc.Transition(alice, "id-1", StatusConfirmed))
		assert.False(t, svc.Selection(alice).Has("id-1"))
		assert.False(t, svc.Selection(bob).Has("id-1"))
	})
}

func TestService_Export(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, _ := newTestService()
	repo.On("List", ctx).Return([]*Order{}, nil)

	out, err := svc.Export(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `"Tracking ID"`))
}
