package billing

import (
	"context"
	"testing"

	"restaurant-orders/internal/apperr"
	"restaurant-orders/internal/logger"
	"restaurant-orders/internal/models"
)

type emission struct {
	staff   bool
	tableID int64
	event   string
	payload interface{}
}

type captureBroadcast struct {
	emissions []emission
}

func (c *captureBroadcast) EmitToStaff(ctx context.Context, event string, payload interface{}) {
	c.emissions = append(c.emissions, emission{staff: true, event: event, payload: payload})
}

func (c *captureBroadcast) EmitToTable(ctx context.Context, tableID int64, event string, payload interface{}) {
	c.emissions = append(c.emissions, emission{tableID: tableID, event: event, payload: payload})
}

type fakeStore struct {
	table       *models.Table
	tableErr    error
	bill        *models.Bill
	billErr     error
	items       []models.OrderItem
	orders      []models.Order
	settleErr   error
	settleCalls int
	settledBill int64
	settledWith string
}

func (f *fakeStore) GetTable(ctx context.Context, tableID int64) (*models.Table, error) {
	if f.tableErr != nil {
		return nil, f.tableErr
	}
	return f.table, nil
}

func (f *fakeStore) OpenBill(ctx context.Context, tableID int64) (*models.Bill, error) {
	if f.billErr != nil {
		return nil, f.billErr
	}
	return f.bill, nil
}

func (f *fakeStore) BillItems(ctx context.Context, billID int64) ([]models.OrderItem, error) {
	return f.items, nil
}

func (f *fakeStore) ActiveTableOrders(ctx context.Context, tableID int64) ([]models.Order, error) {
	return f.orders, nil
}

func (f *fakeStore) SettleBill(ctx context.Context, billID int64, paymentMethod string) error {
	f.settleCalls++
	f.settledBill = billID
	f.settledWith = paymentMethod
	return f.settleErr
}

func (f *fakeStore) SetCallingStaff(ctx context.Context, tableID int64, calling bool) (*models.Table, error) {
	if f.tableErr != nil {
		return nil, f.tableErr
	}
	t := *f.table
	t.IsCallingStaff = calling
	return &t, nil
}

func newTestService(store *fakeStore, bc *captureBroadcast) *Service {
	return NewService(store, bc, logger.New("test"))
}

func TestTableStatusComputesLiveAmounts(t *testing.T) {
	store := &fakeStore{
		table: &models.Table{ID: 2, Name: "A2", IsOccupied: true},
		orders: []models.Order{
			{ID: 1, Items: []models.OrderItem{
				{Quantity: 2, Price: 12.50, Status: models.StatusServed},
				{Quantity: 1, Price: 9.00, Status: models.StatusCooking},
			}},
			{ID: 2, Items: []models.OrderItem{
				{Quantity: 4, Price: 3.00, Status: models.StatusCancelled},
			}},
		},
	}
	svc := newTestService(store, &captureBroadcast{})

	status, err := svc.TableStatus(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if status.TotalAmount != 34.00 {
		t.Errorf("TotalAmount = %v, want 34.00 (cancelled lines excluded)", status.TotalAmount)
	}
	if status.ActiveOrders != 2 {
		t.Errorf("ActiveOrders = %d, want 2", status.ActiveOrders)
	}
	if status.UnservedItems != 1 {
		t.Errorf("UnservedItems = %d, want 1", status.UnservedItems)
	}
}

func TestTableStatusUnknownTable(t *testing.T) {
	store := &fakeStore{tableErr: apperr.NotFound("table 9 not found")}
	svc := newTestService(store, &captureBroadcast{})

	_, err := svc.TableStatus(context.Background(), 9)
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestCloseTableBlockedByUnservedItems(t *testing.T) {
	store := &fakeStore{
		table: &models.Table{ID: 2, IsOccupied: true},
		bill:  &models.Bill{ID: 11, TableID: 2, Status: models.BillOpen},
		items: []models.OrderItem{
			{Quantity: 1, Price: 10.00, Status: models.StatusServed},
			{Quantity: 1, Price: 5.00, Status: models.StatusCooking},
		},
	}
	bc := &captureBroadcast{}
	svc := newTestService(store, bc)

	err := svc.CloseTable(context.Background(), 2, &models.CloseTableRequest{PaymentMethod: models.PaymentCard}, "req-1")
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if store.settleCalls != 0 {
		t.Error("the bill must not be settled while items are unserved")
	}
	if len(bc.emissions) != 0 {
		t.Error("no event may fire for a blocked close")
	}
}

func TestCloseTableSettlesAndBroadcasts(t *testing.T) {
	store := &fakeStore{
		table: &models.Table{ID: 2, Name: "A2", IsOccupied: true},
		bill:  &models.Bill{ID: 11, TableID: 2, Status: models.BillOpen},
		items: []models.OrderItem{
			{Quantity: 2, Price: 10.00, Status: models.StatusServed},
			{Quantity: 1, Price: 5.00, Status: models.StatusCancelled},
		},
	}
	bc := &captureBroadcast{}
	svc := newTestService(store, bc)

	err := svc.CloseTable(context.Background(), 2, &models.CloseTableRequest{PaymentMethod: models.PaymentCash}, "req-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.settleCalls != 1 || store.settledBill != 11 || store.settledWith != models.PaymentCash {
		t.Errorf("settle call = %d bill=%d method=%q", store.settleCalls, store.settledBill, store.settledWith)
	}

	if len(bc.emissions) != 2 {
		t.Fatalf("expected 2 emissions, got %d", len(bc.emissions))
	}
	if !bc.emissions[0].staff || bc.emissions[0].event != models.EventTableUpdated {
		t.Errorf("expected staff %s event, got %+v", models.EventTableUpdated, bc.emissions[0])
	}
	if bc.emissions[1].tableID != 2 {
		t.Errorf("room emission targeted table %d, want 2", bc.emissions[1].tableID)
	}
	if _, ok := bc.emissions[1].payload.(models.TableCustomerPayload); !ok {
		t.Errorf("room payload has wrong type: %T", bc.emissions[1].payload)
	}
}

func TestCloseTableWithoutOpenBill(t *testing.T) {
	store := &fakeStore{
		table:   &models.Table{ID: 2},
		billErr: apperr.NotFound("no open bill for table 2"),
	}
	svc := newTestService(store, &captureBroadcast{})

	err := svc.CloseTable(context.Background(), 2, &models.CloseTableRequest{PaymentMethod: models.PaymentCash}, "req-1")
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for a table with no open bill, got %v", err)
	}
}

func TestCloseTableRejectsUnknownPaymentMethod(t *testing.T) {
	store := &fakeStore{table: &models.Table{ID: 2}}
	svc := newTestService(store, &captureBroadcast{})

	err := svc.CloseTable(context.Background(), 2, &models.CloseTableRequest{PaymentMethod: "iou"}, "req-1")
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if store.settleCalls != 0 {
		t.Error("the bill must not be settled for a bad payment method")
	}
}

func TestSetCallingStaffBroadcastsBothChannels(t *testing.T) {
	store := &fakeStore{table: &models.Table{ID: 2, Name: "A2"}}
	bc := &captureBroadcast{}
	svc := newTestService(store, bc)

	table, err := svc.SetCallingStaff(context.Background(), 2, true, "req-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !table.IsCallingStaff {
		t.Error("IsCallingStaff should be set")
	}

	if len(bc.emissions) != 2 {
		t.Fatalf("expected 2 emissions, got %d", len(bc.emissions))
	}
	reduced, ok := bc.emissions[1].payload.(models.TableCustomerPayload)
	if !ok {
		t.Fatalf("room payload has wrong type: %T", bc.emissions[1].payload)
	}
	if reduced.ID != 2 || !reduced.IsCallingStaff {
		t.Errorf("reduced payload = %+v", reduced)
	}
}
