package inventory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soportek/almacen-api/internal/application/dto"
	"github.com/soportek/almacen-api/internal/application/inventory"
	"github.com/soportek/almacen-api/internal/domain"
	"github.com/soportek/almacen-api/internal/domain/entity"
)

const (
	testCompanyID   = "00000000-0000-0000-0000-0000000000c1"
	otherCompanyID  = "00000000-0000-0000-0000-0000000000c2"
	testUserID      = "00000000-0000-0000-0000-0000000000u1"
	testProductID   = "00000000-0000-0000-0000-0000000000p1"
	testProduct2ID  = "00000000-0000-0000-0000-0000000000p2"
	testWarehouseID = "00000000-0000-0000-0000-0000000000w1"
	testWarehous2ID = "00000000-0000-0000-0000-0000000000w2"
	testProviderID  = "00000000-0000-0000-0000-0000000000v1"
)

// fixture arma los casos de uso de inventario sobre un memStore compartido.
type fixture struct {
	store        *memStore
	receptionUC  *inventory.ReceptionUseCase
	withdrawalUC *inventory.WithdrawalUseCase
	adjustmentUC *inventory.AdjustmentUseCase
	reconcileUC  *inventory.ReconcileUseCase
	historyUC    *inventory.HistoryUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	now := time.Now()

	for _, p := range []struct{ id, sku, name string }{
		{testProductID, "SKU-001", "Tornillo 3mm"},
		{testProduct2ID, "SKU-002", "Tuerca 3mm"},
	} {
		store.products[p.id] = &entity.Product{
			ID:        p.id,
			CompanyID: testCompanyID,
			SKU:       p.sku,
			Name:      p.name,
			Price:     decimal.NewFromInt(100),
			Stock:     decimal.Zero,
			Status:    entity.ProductStatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	for _, w := range []struct{ id, code string }{
		{testWarehouseID, "BOD-01"},
		{testWarehous2ID, "BOD-02"},
	} {
		store.warehouses[w.id] = &entity.Warehouse{
			ID:        w.id,
			CompanyID: testCompanyID,
			Code:      w.code,
			Name:      "Bodega " + w.code,
			Status:    entity.WarehouseStatusOpen,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	store.providers[testProviderID] = &entity.Provider{
		ID:        testProviderID,
		CompanyID: testCompanyID,
		Document:  "900123456",
		Name:      "Distribuidora Central",
		Status:    entity.PartyStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	runner := &memTxRunner{store: store}
	products := &memProductRepo{store}
	warehouses := &memWarehouseRepo{store}
	providers := &memProviderRepo{store}
	receptions := &memReceptionRepo{store}
	withdrawals := &memWithdrawalRepo{store}
	adjustments := &memAdjustmentRepo{store}
	orders := &memPurchaseOrderRepo{store}
	history := &memHistoryRepo{store}

	return &fixture{
		store:        store,
		receptionUC:  inventory.NewReceptionUseCase(runner, receptions, products, providers, warehouses, orders),
		withdrawalUC: inventory.NewWithdrawalUseCase(runner, withdrawals, products, warehouses),
		adjustmentUC: inventory.NewAdjustmentUseCase(runner, adjustments, products, warehouses),
		reconcileUC:  inventory.NewReconcileUseCase(runner, history, products),
		historyUC:    inventory.NewHistoryUseCase(history, products),
	}
}

// eqDec compara decimales por valor (mismo número, sin importar el exponente).
func eqDec(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	if !decimal.RequireFromString(expected).Equal(actual) {
		assert.Fail(t, fmt.Sprintf("decimal esperado %s, obtenido %s", expected, actual), msgAndArgs...)
	}
}

// receive crea una recepción simple de una línea y retorna la respuesta.
func (f *fixture) receive(t *testing.T, code string, qty int64) *dto.ReceptionResponse {
	t.Helper()
	out, err := f.receptionUC.Create(context.Background(), testCompanyID, testUserID, dto.CreateReceptionRequest{
		Code:        code,
		ProviderID:  testProviderID,
		WarehouseID: testWarehouseID,
		Lines: []dto.ReceptionLineRequest{
			{ProductID: testProductID, Quantity: decimal.NewFromInt(qty), UnitPrice: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	return out
}

func (f *fixture) stockAt(productID, warehouseID string) decimal.Decimal {
	if st, ok := f.store.stocks[stockKey(productID, warehouseID)]; ok {
		return st.Quantity
	}
	return decimal.Zero
}

// ──────────────────────────────────────────────────────────────────────────────
// Recepciones
// ──────────────────────────────────────────────────────────────────────────────

func TestReception_Create_AumentaStockYEscribeLibro(t *testing.T) {
	f := newFixture(t)

	out := f.receive(t, "REC-001", 10)

	assert.Equal(t, entity.HeaderStatusActive, out.Status)
	eqDec(t, "500", out.Total, "total = cantidad * precio unitario")
	eqDec(t, "10", f.stockAt(testProductID, testWarehouseID))
	eqDec(t, "10", f.store.products[testProductID].Stock, "stock denormalizado del producto")

	require.Len(t, f.store.history, 1)
	row := f.store.history[0]
	assert.Equal(t, entity.OpEntry, row.OperationType)
	assert.Equal(t, out.ID, row.OperationID)
	eqDec(t, "10", row.QuantityDelta)
	eqDec(t, "10", row.CurrentStock)
}

func TestReception_Create_CodigoDuplicado(t *testing.T) {
	f := newFixture(t)
	f.receive(t, "REC-001", 5)

	_, err := f.receptionUC.Create(context.Background(), testCompanyID, testUserID, dto.CreateReceptionRequest{
		Code:        "REC-001",
		ProviderID:  testProviderID,
		WarehouseID: testWarehouseID,
		Lines: []dto.ReceptionLineRequest{
			{ProductID: testProductID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestReception_Create_CantidadInvalida(t *testing.T) {
	f := newFixture(t)

	_, err := f.receptionUC.Create(context.Background(), testCompanyID, testUserID, dto.CreateReceptionRequest{
		Code:        "REC-001",
		ProviderID:  testProviderID,
		WarehouseID: testWarehouseID,
		Lines: []dto.ReceptionLineRequest{
			{ProductID: testProductID, Quantity: decimal.Zero, UnitPrice: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero debe rechazarse")
}

func TestReception_Void_CompensaLasEntradas(t *testing.T) {
	f := newFixture(t)
	out := f.receive(t, "REC-001", 10)

	require.NoError(t, f.receptionUC.Void(context.Background(), testCompanyID, testUserID, out.ID))

	eqDec(t, "0", f.stockAt(testProductID, testWarehouseID), "anular devuelve el stock a cero")
	assert.Equal(t, entity.HeaderStatusVoided, f.store.receptions[out.ID].Status)

	// El libro nunca se borra: queda la entrada original + la compensatoria
	require.Len(t, f.store.history, 2)
	eqDec(t, "10", f.store.history[0].QuantityDelta)
	eqDec(t, "-10", f.store.history[1].QuantityDelta)
	assert.Equal(t, out.ID, f.store.history[1].OperationID)

	// Anular dos veces no está permitido
	err := f.receptionUC.Void(context.Background(), testCompanyID, testUserID, out.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

func TestReception_Void_StockYaConsumido_NoDejaEfectosParciales(t *testing.T) {
	f := newFixture(t)
	out := f.receive(t, "REC-001", 10)

	// Consumir 8 de las 10 unidades recibidas
	_, err := f.withdrawalUC.Create(context.Background(), testCompanyID, testUserID, dto.CreateWithdrawalRequest{
		Code: "RET-001",
		Lines: []dto.WithdrawalLineRequest{
			{ProductID: testProductID, WarehouseID: testWarehouseID, Quantity: decimal.NewFromInt(8), UnitPrice: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)

	// Anular la recepción dejaría el stock en -8: debe fallar y revertir todo
	err = f.receptionUC.Void(context.Background(), testCompanyID, testUserID, out.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, entity.HeaderStatusActive, f.store.receptions[out.ID].Status, "la cabecera no debe quedar anulada")
	eqDec(t, "2", f.stockAt(testProductID, testWarehouseID), "el stock no debe cambiar")
	assert.Len(t, f.store.history, 2, "no deben quedar filas compensatorias parciales")
}

func TestReception_Create_DeOtraEmpresa(t *testing.T) {
	f := newFixture(t)

	_, err := f.receptionUC.Create(context.Background(), otherCompanyID, testUserID, dto.CreateReceptionRequest{
		Code:        "REC-001",
		ProviderID:  testProviderID,
		WarehouseID: testWarehouseID,
		Lines: []dto.ReceptionLineRequest{
			{ProductID: testProductID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden, "el proveedor pertenece a otra empresa")
}

// ──────────────────────────────────────────────────────────────────────────────
// Retiros
// ──────────────────────────────────────────────────────────────────────────────

func TestWithdrawal_Create_DescuentaStock(t *testing.T) {
	f := newFixture(t)
	f.receive(t, "REC-001", 10)

	out, err := f.withdrawalUC.Create(context.Background(), testCompanyID, testUserID, dto.CreateWithdrawalRequest{
		Code:   "RET-001",
		Reason: "venta mostrador",
		Lines: []dto.WithdrawalLineRequest{
			{ProductID: testProductID, WarehouseID: testWarehouseID, Quantity: decimal.NewFromInt(4), UnitPrice: decimal.NewFromInt(120)},
		},
	})
	require.NoError(t, err)

	eqDec(t, "480", out.Total)
	eqDec(t, "6", f.stockAt(testProductID, testWarehouseID))
	eqDec(t, "6", f.store.products[testProductID].Stock)

	require.Len(t, f.store.history, 2)
	last := f.store.history[1]
	assert.Equal(t, entity.OpWithdrawal, last.OperationType)
	eqDec(t, "-4", last.QuantityDelta)
	eqDec(t, "6", last.CurrentStock)
}

func TestWithdrawal_Create_StockInsuficiente_RevierteTodo(t *testing.T) {
	f := newFixture(t)
	f.receive(t, "REC-001", 5)

	// La primera línea alcanza, la segunda no: nada debe persistirse
	_, err := f.withdrawalUC.Create(context.Background(), testCompanyID, testUserID, dto.CreateWithdrawalRequest{
		Code: "RET-001",
		Lines: []dto.WithdrawalLineRequest{
			{ProductID: testProductID, WarehouseID: testWarehouseID, Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(10)},
			{ProductID: testProductID, WarehouseID: testWarehouseID, Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(10)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	eqDec(t, "5", f.stockAt(testProductID, testWarehouseID), "el stock debe quedar intacto")
	eqDec(t, "5", f.store.products[testProductID].Stock)
	assert.Empty(t, f.store.withdrawals, "la cabecera no debe persistirse")
	assert.Len(t, f.store.history, 1, "solo debe quedar la fila de la recepción")
}

func TestWithdrawal_Void_DevuelveStockACadaBodega(t *testing.T) {
	f := newFixture(t)
	f.receive(t, "REC-001", 10)

	out, err := f.withdrawalUC.Create(context.Background(), testCompanyID, testUserID, dto.CreateWithdrawalRequest{
		Code: "RET-001",
		Lines: []dto.WithdrawalLineRequest{
			{ProductID: testProductID, WarehouseID: testWarehouseID, Quantity: decimal.NewFromInt(7), UnitPrice: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)
	eqDec(t, "3", f.stockAt(testProductID, testWarehouseID))

	require.NoError(t, f.withdrawalUC.Void(context.Background(), testCompanyID, testUserID, out.ID))
	eqDec(t, "10", f.stockAt(testProductID, testWarehouseID))
	assert.Equal(t, entity.HeaderStatusVoided, f.store.withdrawals[out.ID].Status)

	err = f.withdrawalUC.Void(context.Background(), testCompanyID, testUserID, out.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes entre bodegas
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustment_Create_MueveStockEntreBodegas(t *testing.T) {
	f := newFixture(t)
	f.receive(t, "REC-001", 8)

	out, err := f.adjustmentUC.Create(context.Background(), testCompanyID, testUserID, dto.CreateAdjustmentRequest{
		Code:            "AJU-001",
		FromWarehouseID: testWarehouseID,
		ToWarehouseID:   testWarehous2ID,
		Reason:          "reubicación",
		Lines: []dto.AdjustmentLineRequest{
			{ProductID: testProductID, Quantity: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)

	eqDec(t, "5", f.stockAt(testProductID, testWarehouseID))
	eqDec(t, "3", f.stockAt(testProductID, testWarehous2ID))
	eqDec(t, "8", f.store.products[testProductID].Stock, "el total del producto no cambia")

	// Dos filas con la misma OperationID: negativa en origen, positiva en destino
	history := &memHistoryRepo{f.store}
	rows, err := history.ListByOperation(out.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, entity.OpAdjustment, rows[0].OperationType)
	assert.Equal(t, entity.OpAdjustment, rows[1].OperationType)
	eqDec(t, "-3", rows[0].QuantityDelta)
	assert.Equal(t, testWarehouseID, rows[0].WarehouseID)
	eqDec(t, "3", rows[1].QuantityDelta)
	assert.Equal(t, testWarehous2ID, rows[1].WarehouseID)
}

func TestAdjustment_Create_MismaBodega(t *testing.T) {
	f := newFixture(t)

	_, err := f.adjustmentUC.Create(context.Background(), testCompanyID, testUserID, dto.CreateAdjustmentRequest{
		Code:            "AJU-001",
		FromWarehouseID: testWarehouseID,
		ToWarehouseID:   testWarehouseID,
		Lines: []dto.AdjustmentLineRequest{
			{ProductID: testProductID, Quantity: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "origen y destino no pueden ser la misma bodega")
}

func TestAdjustment_Create_SinStockEnOrigen_RevierteTodo(t *testing.T) {
	f := newFixture(t)
	f.receive(t, "REC-001", 2)

	_, err := f.adjustmentUC.Create(context.Background(), testCompanyID, testUserID, dto.CreateAdjustmentRequest{
		Code:            "AJU-001",
		FromWarehouseID: testWarehouseID,
		ToWarehouseID:   testWarehous2ID,
		Lines: []dto.AdjustmentLineRequest{
			{ProductID: testProductID, Quantity: decimal.NewFromInt(5)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	eqDec(t, "2", f.stockAt(testProductID, testWarehouseID))
	eqDec(t, "0", f.stockAt(testProductID, testWarehous2ID))
	assert.Empty(t, f.store.adjustments)
}

func TestAdjustment_Void_RevierteElMovimiento(t *testing.T) {
	f := newFixture(t)
	f.receive(t, "REC-001", 8)

	out, err := f.adjustmentUC.Create(context.Background(), testCompanyID, testUserID, dto.CreateAdjustmentRequest{
		Code:            "AJU-001",
		FromWarehouseID: testWarehouseID,
		ToWarehouseID:   testWarehous2ID,
		Lines: []dto.AdjustmentLineRequest{
			{ProductID: testProductID, Quantity: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)

	require.NoError(t, f.adjustmentUC.Void(context.Background(), testCompanyID, testUserID, out.ID))
	eqDec(t, "8", f.stockAt(testProductID, testWarehouseID))
	eqDec(t, "0", f.stockAt(testProductID, testWarehous2ID))
	assert.Equal(t, entity.HeaderStatusVoided, f.store.adjustments[out.ID].Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recepción contra orden de compra
// ──────────────────────────────────────────────────────────────────────────────

func seedApprovedOrder(f *fixture, orderID string, qty int64) {
	now := time.Now()
	f.store.orders[orderID] = &entity.PurchaseOrder{
		ID:         orderID,
		CompanyID:  testCompanyID,
		Code:       "OC-001",
		Date:       now,
		ProviderID: testProviderID,
		Total:      decimal.NewFromInt(qty * 50),
		Status:     entity.POStatusApproved,
		CreatedAt:  now,
		UpdatedAt:  now,
		CreatedBy:  testUserID,
	}
	f.store.orderDets[orderID] = []*entity.PurchaseOrderDetail{
		{
			ID:              orderID + "-d1",
			PurchaseOrderID: orderID,
			ProductID:       testProductID,
			Quantity:        decimal.NewFromInt(qty),
			UnitPrice:       decimal.NewFromInt(50),
		},
	}
}

func TestReception_ConOrdenDeCompra_AcumulaYCompleta(t *testing.T) {
	f := newFixture(t)
	const orderID = "po-1"
	seedApprovedOrder(f, orderID, 10)

	// Recepción parcial: acumula sin completar
	_, err := f.receptionUC.Create(context.Background(), testCompanyID, testUserID, dto.CreateReceptionRequest{
		Code:            "REC-001",
		ProviderID:      testProviderID,
		WarehouseID:     testWarehouseID,
		PurchaseOrderID: orderID,
		Lines: []dto.ReceptionLineRequest{
			{ProductID: testProductID, Quantity: decimal.NewFromInt(4), UnitPrice: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)
	eqDec(t, "4", f.store.orderDets[orderID][0].ReceivedQuantity)
	assert.Equal(t, entity.POStatusApproved, f.store.orders[orderID].Status)

	// Segunda recepción llena la línea: la orden pasa a COMPLETED
	_, err = f.receptionUC.Create(context.Background(), testCompanyID, testUserID, dto.CreateReceptionRequest{
		Code:            "REC-002",
		ProviderID:      testProviderID,
		WarehouseID:     testWarehouseID,
		PurchaseOrderID: orderID,
		Lines: []dto.ReceptionLineRequest{
			{ProductID: testProductID, Quantity: decimal.NewFromInt(6), UnitPrice: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)
	eqDec(t, "10", f.store.orderDets[orderID][0].ReceivedQuantity)
	assert.Equal(t, entity.POStatusCompleted, f.store.orders[orderID].Status)
	eqDec(t, "10", f.stockAt(testProductID, testWarehouseID))
}

func TestReception_ConOrdenDeCompra_RecibirDeMas_RevierteTodo(t *testing.T) {
	f := newFixture(t)
	const orderID = "po-1"
	seedApprovedOrder(f, orderID, 10)

	_, err := f.receptionUC.Create(context.Background(), testCompanyID, testUserID, dto.CreateReceptionRequest{
		Code:            "REC-001",
		ProviderID:      testProviderID,
		WarehouseID:     testWarehouseID,
		PurchaseOrderID: orderID,
		Lines: []dto.ReceptionLineRequest{
			{ProductID: testProductID, Quantity: decimal.NewFromInt(11), UnitPrice: decimal.NewFromInt(50)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Ni la recepción ni el stock ni la orden deben quedar tocados
	assert.Empty(t, f.store.receptions)
	eqDec(t, "0", f.stockAt(testProductID, testWarehouseID))
	eqDec(t, "0", f.store.orderDets[orderID][0].ReceivedQuantity)
}

func TestReception_ConOrdenDeCompra_NoAprobada(t *testing.T) {
	f := newFixture(t)
	const orderID = "po-1"
	seedApprovedOrder(f, orderID, 10)
	f.store.orders[orderID].Status = entity.POStatusPending

	_, err := f.receptionUC.Create(context.Background(), testCompanyID, testUserID, dto.CreateReceptionRequest{
		Code:            "REC-001",
		ProviderID:      testProviderID,
		WarehouseID:     testWarehouseID,
		PurchaseOrderID: orderID,
		Lines: []dto.ReceptionLineRequest{
			{ProductID: testProductID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(50)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition, "solo se recibe contra órdenes APPROVED")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconciliación e historial
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcile_SinDeriva_NoRepara(t *testing.T) {
	f := newFixture(t)
	f.receive(t, "REC-001", 10)

	out, err := f.reconcileUC.Reconcile(context.Background(), testCompanyID, testProductID, testWarehouseID)
	require.NoError(t, err)

	eqDec(t, "10", out.Computed)
	eqDec(t, "10", out.Stored)
	assert.True(t, out.Drift.IsZero())
	assert.False(t, out.Repaired, "sin deriva no debe escribir nada")
}

func TestReconcile_ConDeriva_ReparaDesdeElLibro(t *testing.T) {
	f := newFixture(t)
	f.receive(t, "REC-001", 10)

	// Simular deriva: el materializado quedó en 7 pero el libro suma 10
	f.store.stocks[stockKey(testProductID, testWarehouseID)].Quantity = decimal.NewFromInt(7)
	f.store.products[testProductID].Stock = decimal.NewFromInt(7)

	out, err := f.reconcileUC.Reconcile(context.Background(), testCompanyID, testProductID, testWarehouseID)
	require.NoError(t, err)

	eqDec(t, "10", out.Computed)
	eqDec(t, "7", out.Stored)
	eqDec(t, "3", out.Drift)
	assert.True(t, out.Repaired)
	eqDec(t, "10", f.stockAt(testProductID, testWarehouseID), "el libro es la fuente de verdad")
	eqDec(t, "10", f.store.products[testProductID].Stock)

	// Idempotente: una segunda reconciliación no encuentra deriva
	again, err := f.reconcileUC.Reconcile(context.Background(), testCompanyID, testProductID, testWarehouseID)
	require.NoError(t, err)
	assert.False(t, again.Repaired)
}

func TestHistory_ListByProduct_Pagina(t *testing.T) {
	f := newFixture(t)
	f.receive(t, "REC-001", 10)
	f.receive(t, "REC-002", 5)
	f.receive(t, "REC-003", 2)

	out, err := f.historyUC.ListByProduct(testCompanyID, testProductID, dto.PageRequest{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, out.Data, 2)
	assert.Equal(t, 3, out.Meta.Total)
	assert.Equal(t, 2, out.Meta.TotalPages)
}

func TestHistory_ListByProduct_ProductoDeOtraEmpresa(t *testing.T) {
	f := newFixture(t)
	_, err := f.historyUC.ListByProduct(otherCompanyID, testProductID, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
