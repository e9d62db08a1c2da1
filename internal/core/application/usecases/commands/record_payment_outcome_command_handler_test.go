package commands_test

import (
	"errors"
	"fmt"
	"testing"

	"ordering/internal/core/application/messages"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type outcomeFixture struct {
	repo      *MockOrderRepository
	uow       *MockUoW
	factory   *MockOrderUoWFactory
	events    *MockEventPublisher
	approvals *MockMessagePublisher
	notices   *MockMessagePublisher
	payments  *MockMessagePublisher
}

func newOutcomeFixture() *outcomeFixture {
	f := &outcomeFixture{
		repo:      new(MockOrderRepository),
		uow:       new(MockUoW),
		factory:   new(MockOrderUoWFactory),
		events:    new(MockEventPublisher),
		approvals: new(MockMessagePublisher),
		notices:   new(MockMessagePublisher),
		payments:  new(MockMessagePublisher),
	}
	f.factory.On("Create").Return(f.uow)
	return f
}

func (f *outcomeFixture) paymentHandler() commands.RecordPaymentOutcomeCommandHandler {
	return commands.NewRecordPaymentOutcomeCommandHandler(f.factory, services.NewOrderDomainService(),
		f.events, f.approvals, f.notices, discardLogger())
}

func (f *outcomeFixture) approvalHandler() commands.RecordApprovalOutcomeCommandHandler {
	return commands.NewRecordApprovalOutcomeCommandHandler(f.factory, services.NewOrderDomainService(),
		f.events, f.payments, discardLogger())
}

func (f *outcomeFixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.repo.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.factory.AssertExpectations(t)
	f.events.AssertExpectations(t)
	f.approvals.AssertExpectations(t)
	f.notices.AssertExpectations(t)
	f.payments.AssertExpectations(t)
}

// expectLoad registers Begin, repository access and the locked load of o.
func (f *outcomeFixture) expectLoad(t *testing.T, o *order.Order) *mock.Call {
	ctx := t.Context()
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.repo).Once(),
	)
	return f.repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
}

func TestNewRecordPaymentOutcomeCommand(t *testing.T) {
	id := kernel.NewOrderID()
	messagesIn := []string{"card declined"}

	cmd, err := commands.NewRecordPaymentOutcomeCommand(id, false, messagesIn)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, id, cmd.OrderID())
	assert.False(t, cmd.Succeeded())
	messagesIn[0] = "changed"
	assert.Equal(t, []string{"card declined"}, cmd.FailureMessages())

	_, err = commands.NewRecordPaymentOutcomeCommand(kernel.OrderID{}, true, nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	require.ErrorIs(t, commands.RecordPaymentOutcomeCommand{}.Validate(),
		commands.ErrRecordPaymentOutcomeCommandIsNotConstructed)
}

func TestRecordPaymentOutcomeCommandHandler_Succeeded(t *testing.T) {
	ctx := t.Context()
	f := newOutcomeFixture()
	o := orderIn(t, order.Pending)
	cmd, _ := commands.NewRecordPaymentOutcomeCommand(o.ID(), true, nil)

	mock.InOrder(
		f.expectLoad(t, o),
		f.repo.On("Save", ctx, o).Return(returnSaved, nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.events.On("PublishOrderPaid", ctx, mock.AnythingOfType("order.OrderPaidEvent")).Once(),
		f.approvals.On("Publish", ctx, messageOfType(messages.RestaurantApprovalRequested)).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	err := f.paymentHandler().Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Paid, o.Status())
	f.assertExpectations(t)
}

func TestRecordPaymentOutcomeCommandHandler_Failed(t *testing.T) {
	tests := []struct {
		from             order.Status
		initiatesCancel  bool
		expectedMessages []string
	}{
		{from: order.Pending, expectedMessages: []string{"card declined"}},
		{from: order.Paid, initiatesCancel: true, expectedMessages: []string{"card declined"}},
		{from: order.Cancelling, expectedMessages: []string{"rejected", "card declined"}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("from %s", tt.from), func(t *testing.T) {
			ctx := t.Context()
			f := newOutcomeFixture()
			o := orderIn(t, tt.from)
			cmd, _ := commands.NewRecordPaymentOutcomeCommand(o.ID(), false, []string{"card declined", ""})

			f.expectLoad(t, o)
			f.repo.On("Save", ctx, o).Return(returnSaved, nil).Once()
			f.uow.On("Commit", ctx).Return(nil).Once()
			if tt.initiatesCancel {
				f.events.On("PublishOrderCancelled", ctx, mock.AnythingOfType("order.OrderCancelledEvent")).Once()
			}
			f.notices.On("Publish", ctx, messageOfType(messages.OrderCancelled)).Return(nil).Once()
			f.uow.On("Rollback", ctx).Return(nil).Once()

			err := f.paymentHandler().Handle(ctx, cmd)

			require.NoError(t, err)
			assert.Equal(t, order.Cancelled, o.Status())
			assert.Equal(t, tt.expectedMessages, o.FailureMessages())
			f.approvals.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
			f.assertExpectations(t)
		})
	}
}

func TestRecordPaymentOutcomeCommandHandler_FailedAfterPayment_PublishesCancellingState(t *testing.T) {
	ctx := t.Context()
	f := newOutcomeFixture()
	o := orderIn(t, order.Paid)
	cmd, _ := commands.NewRecordPaymentOutcomeCommand(o.ID(), false, []string{"charge reversed"})

	var published order.OrderCancelledEvent
	var notice messages.OrderMessage
	f.expectLoad(t, o)
	f.repo.On("Save", ctx, o).Return(returnSaved, nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.events.On("PublishOrderCancelled", ctx, mock.AnythingOfType("order.OrderCancelledEvent")).
		Run(func(args mock.Arguments) { published = args.Get(1).(order.OrderCancelledEvent) }).Once()
	f.notices.On("Publish", ctx, messageOfType(messages.OrderCancelled)).
		Run(func(args mock.Arguments) { notice = args.Get(1).(messages.OrderMessage) }).
		Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	err := f.paymentHandler().Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, o.Status())
	require.NotNil(t, published.Order())
	assert.Equal(t, order.Cancelling, published.Order().Status())
	assert.Equal(t, []string{"charge reversed"}, published.Order().FailureMessages())
	assert.Equal(t, order.Cancelled.String(), notice.Status)
	f.assertExpectations(t)
}

func TestRecordPaymentOutcomeCommandHandler_OutOfSequence(t *testing.T) {
	tests := []struct {
		from      order.Status
		succeeded bool
	}{
		{from: order.Paid, succeeded: true},
		{from: order.Approved, succeeded: true},
		{from: order.Cancelled, succeeded: true},
		{from: order.Approved, succeeded: false},
		{from: order.Cancelled, succeeded: false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s succeeded=%t", tt.from, tt.succeeded), func(t *testing.T) {
			ctx := t.Context()
			f := newOutcomeFixture()
			o := orderIn(t, tt.from)
			cmd, _ := commands.NewRecordPaymentOutcomeCommand(o.ID(), tt.succeeded, []string{"late"})

			f.expectLoad(t, o)
			f.uow.On("Rollback", ctx).Return(nil).Once()

			err := f.paymentHandler().Handle(ctx, cmd)

			require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
			assert.Equal(t, tt.from, o.Status())
			f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
			f.assertExpectations(t)
		})
	}
}

func TestRecordPaymentOutcomeCommandHandler_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	f := newOutcomeFixture()
	id := kernel.NewOrderID()
	cmd, _ := commands.NewRecordPaymentOutcomeCommand(id, true, nil)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("OrderRepository").Return(f.repo).Once()
	f.repo.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	err := f.paymentHandler().Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	f.assertExpectations(t)
}

func TestRecordPaymentOutcomeCommandHandler_SaveError(t *testing.T) {
	ctx := t.Context()
	f := newOutcomeFixture()
	o := orderIn(t, order.Pending)
	cmd, _ := commands.NewRecordPaymentOutcomeCommand(o.ID(), true, nil)

	f.expectLoad(t, o)
	f.repo.On("Save", ctx, o).Return(nil, errors.New("deadlock")).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	err := f.paymentHandler().Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrPersistence)
	f.events.AssertNotCalled(t, "PublishOrderPaid", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestRecordApprovalOutcomeCommandHandler_Approved(t *testing.T) {
	ctx := t.Context()
	f := newOutcomeFixture()
	o := orderIn(t, order.Paid)
	cmd, _ := commands.NewRecordApprovalOutcomeCommand(o.ID(), true, nil)

	mock.InOrder(
		f.expectLoad(t, o),
		f.repo.On("Save", ctx, o).Return(returnSaved, nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	err := f.approvalHandler().Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Approved, o.Status())
	f.payments.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestRecordApprovalOutcomeCommandHandler_Rejected(t *testing.T) {
	ctx := t.Context()
	f := newOutcomeFixture()
	o := orderIn(t, order.Paid)
	cmd, _ := commands.NewRecordApprovalOutcomeCommand(o.ID(), false, []string{"kitchen closed"})

	mock.InOrder(
		f.expectLoad(t, o),
		f.repo.On("Save", ctx, o).Return(returnSaved, nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.events.On("PublishOrderCancelled", ctx, mock.AnythingOfType("order.OrderCancelledEvent")).Once(),
		f.payments.On("Publish", ctx, messageOfType(messages.PaymentCancelRequested)).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	err := f.approvalHandler().Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelling, o.Status())
	assert.Equal(t, []string{"kitchen closed"}, o.FailureMessages())
	f.assertExpectations(t)
}

func TestRecordApprovalOutcomeCommandHandler_OutOfSequence(t *testing.T) {
	for _, approved := range []bool{true, false} {
		t.Run(fmt.Sprintf("approved=%t", approved), func(t *testing.T) {
			ctx := t.Context()
			f := newOutcomeFixture()
			o := orderIn(t, order.Pending)
			cmd, _ := commands.NewRecordApprovalOutcomeCommand(o.ID(), approved, nil)

			f.expectLoad(t, o)
			f.uow.On("Rollback", ctx).Return(nil).Once()

			err := f.approvalHandler().Handle(ctx, cmd)

			require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
			assert.Equal(t, order.Pending, o.Status())
			f.assertExpectations(t)
		})
	}
}

func TestNewRecordApprovalOutcomeCommand(t *testing.T) {
	id := kernel.NewOrderID()

	cmd, err := commands.NewRecordApprovalOutcomeCommand(id, true, nil)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.True(t, cmd.Approved())
	assert.Empty(t, cmd.FailureMessages())

	_, err = commands.NewRecordApprovalOutcomeCommand(kernel.OrderID{}, true, nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
