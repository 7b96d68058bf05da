package steps

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cucumber/godog"
	"gorm.io/gorm"

	"github.com/lfyzer/nsgifts-go/internal/adapters/persistence"
	"github.com/lfyzer/nsgifts-go/internal/domain/orders"
	"github.com/lfyzer/nsgifts-go/internal/infrastructure/database"
)

type orderJournalContext struct {
	db      *gorm.DB
	journal *persistence.GormOrderJournal
}

func (oc *orderJournalContext) reset() error {
	if oc.db != nil {
		_ = database.Close(oc.db)
	}
	db, err := database.NewTestConnection()
	if err != nil {
		return err
	}
	oc.db = db
	oc.journal = persistence.NewGormOrderJournal(db)
	return nil
}

func (oc *orderJournalContext) teardown() {
	if oc.db != nil {
		_ = database.Close(oc.db)
		oc.db = nil
	}
}

func (oc *orderJournalContext) iCreateAnOrder(table *godog.Table) error {
	values, err := tableToMap(table)
	if err != nil {
		return err
	}

	serviceID, err := strconv.ParseInt(values["service_id"], 10, 64)
	if err != nil {
		return fmt.Errorf("bad service_id: %w", err)
	}
	quantity, err := strconv.ParseFloat(values["quantity"], 64)
	if err != nil {
		return fmt.Errorf("bad quantity: %w", err)
	}
	total, err := strconv.ParseFloat(values["total"], 64)
	if err != nil {
		return fmt.Errorf("bad total: %w", err)
	}
	customID := values["custom_id"]

	cc := currentClient
	cc.backend.StubJSON("/api/v1/create_order", http.StatusOK, map[string]any{
		"custom_id":  customID,
		"status":     1,
		"service_id": serviceID,
		"quantity":   quantity,
		"total":      total,
	})

	client, err := cc.ensureClient()
	if err != nil {
		return err
	}

	resp, err := client.CreateOrder(context.Background(), orders.CreateOrderRequest{
		ServiceID: serviceID,
		Quantity:  quantity,
		CustomID:  customID,
	})
	if err != nil {
		return fmt.Errorf("create order failed: %v", err)
	}

	return oc.journal.RecordOrder(context.Background(), resp)
}

func (oc *orderJournalContext) iPayOrderLeavingBalance(customID, newBalance string) error {
	cc := currentClient
	cc.backend.StubJSON("/api/v1/pay_order", http.StatusOK, map[string]any{
		"custom_id":   customID,
		"status":      2,
		"new_balance": newBalance,
		"msg":         "ok",
	})

	client, err := cc.ensureClient()
	if err != nil {
		return err
	}

	resp, err := client.PayOrder(context.Background(), customID)
	if err != nil {
		return fmt.Errorf("pay order failed: %v", err)
	}

	return oc.journal.MarkPaid(context.Background(), customID, resp.Status, resp.NewBalance)
}

func (oc *orderJournalContext) journalShouldContainOrder(customID string) error {
	_, err := oc.journal.FindByCustomID(context.Background(), customID)
	return err
}

func (oc *orderJournalContext) journalOrderShouldNotBePaid(customID string) error {
	record, err := oc.journal.FindByCustomID(context.Background(), customID)
	if err != nil {
		return err
	}
	if record.PaidAt != nil {
		return fmt.Errorf("expected order %s to be unpaid", customID)
	}
	return nil
}

func (oc *orderJournalContext) journalOrderShouldBePaid(customID string) error {
	record, err := oc.journal.FindByCustomID(context.Background(), customID)
	if err != nil {
		return err
	}
	if record.PaidAt == nil {
		return fmt.Errorf("expected order %s to be paid", customID)
	}
	return nil
}

func (oc *orderJournalContext) journalOrderShouldHaveBalance(customID, balance string) error {
	record, err := oc.journal.FindByCustomID(context.Background(), customID)
	if err != nil {
		return err
	}
	if record.NewBalance != balance {
		return fmt.Errorf("expected balance %q, got %q", balance, record.NewBalance)
	}
	return nil
}

func (oc *orderJournalContext) journalShouldListOrders(count int) error {
	records, err := oc.journal.List(context.Background(), 0)
	if err != nil {
		return err
	}
	if len(records) != count {
		return fmt.Errorf("expected %d journaled orders, got %d", count, len(records))
	}
	return nil
}

// InitializeOrderJournalScenario registers order lifecycle steps; it
// shares the backend and client with the client scenario context.
func InitializeOrderJournalScenario(sc *godog.ScenarioContext) {
	oc := &orderJournalContext{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, oc.reset()
	})
	sc.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		oc.teardown()
		return ctx, nil
	})

	sc.Step(`^I create an order:$`, oc.iCreateAnOrder)
	sc.Step(`^I pay order "([^"]*)" leaving balance "([^"]*)"$`, oc.iPayOrderLeavingBalance)
	sc.Step(`^the journal should contain order "([^"]*)"$`, oc.journalShouldContainOrder)
	sc.Step(`^journal order "([^"]*)" should not be paid$`, oc.journalOrderShouldNotBePaid)
	sc.Step(`^journal order "([^"]*)" should be paid$`, oc.journalOrderShouldBePaid)
	sc.Step(`^journal order "([^"]*)" should have balance "([^"]*)"$`, oc.journalOrderShouldHaveBalance)
	sc.Step(`^the journal should list (\d+) orders$`, oc.journalShouldListOrders)
}
