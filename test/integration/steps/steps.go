// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/wallet-ledger/backend/config"
	"github.com/wallet-ledger/backend/internal/infra/dependency"
	"github.com/wallet-ledger/backend/test/integration/mock"
)

// testContext holds per-scenario state: the running server, the last HTTP
// response, and IDs captured from earlier steps under user-chosen aliases.
type testContext struct {
	server *httptest.Server
	client *http.Client
	db     *mock.Db

	status int
	body   map[string]any

	walletIDs map[string]string
	txnIDs    map[string]string
	entryID   string

	// lastWrite keeps the most recent rejected transaction payload so a
	// follow-up step can resubmit it with confirmation.
	lastWrite map[string]any
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		_ = os.Setenv("ENV", "test")
		// A tiny guard threshold lets scenarios trip the rebuild
		// confirmation with a handful of rows.
		_ = os.Setenv("REBUILD_GUARD_TXN_THRESHOLD", "2")
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
		db:     mock.NewDb(),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		if err := test.db.Reset(); err != nil {
			return ctx, err
		}
		test.walletIDs = map[string]string{}
		test.txnIDs = map[string]string{}
		test.entryID = ""
		test.lastWrite = nil

		injector := dependency.NewInjector(config.Load(), test.db.DbConn)
		test.server = httptest.NewServer(injector.Router.Setup("test"))
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if test.server != nil {
			test.server.Close()
		}
		return ctx, nil
	})

	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^a (normal|credit) wallet named "([^"]*)"$`, test.aWalletNamed)

	ctx.Step(`^I record an? "(inflow|outflow|reserved)" of "([^"]*)" in "([^"]*)" dated (\d+) days? ago as "([^"]*)"$`, test.iRecordATransaction)
	ctx.Step(`^I calibrate "([^"]*)" to "([^"]*)"$`, test.iCalibrateWalletTo)
	ctx.Step(`^I mark "([^"]*)" as a loan to "([^"]*)"$`, test.iMarkAsLoanTo)
	ctx.Step(`^I mark "([^"]*)" as a debt to "([^"]*)"$`, test.iMarkAsDebtTo)
	ctx.Step(`^I link "([^"]*)" to the entry$`, test.iLinkToTheEntry)
	ctx.Step(`^recording an? "(inflow|outflow)" of "([^"]*)" in "([^"]*)" dated (\d+) days ago is rejected pending confirmation$`, test.recordingIsRejectedPendingConfirmation)
	ctx.Step(`^resubmitting the same write with confirmation succeeds$`, test.resubmittingWithConfirmationSucceeds)

	ctx.Then(`^the balance of "([^"]*)" should be "([^"]*)"$`, test.theBalanceShouldBe)
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the entry status should be "([^"]*)"$`, test.theEntryStatusShouldBe)
	ctx.Then(`^the entry pending amount should be "([^"]*)"$`, test.theEntryPendingAmountShouldBe)
	ctx.Then(`^the settlement totals should show "([^"]*)" owed to me$`, test.theTotalsShouldShowOwedToMe)
	ctx.Then(`^the settlement totals should show "([^"]*)" owed by me$`, test.theTotalsShouldShowOwedByMe)
}

func (t *testContext) theAPIServerIsRunning() error {
	if t.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func (t *testContext) aWalletNamed(walletType, name string) error {
	if err := t.do(http.MethodPost, "/api/v1/wallets", map[string]any{
		"name": name,
		"type": walletType,
	}); err != nil {
		return err
	}
	if t.status != http.StatusCreated {
		return fmt.Errorf("wallet creation failed with status %d: %v", t.status, t.body)
	}
	t.walletIDs[name] = t.body["id"].(string)
	return nil
}

func (t *testContext) iRecordATransaction(direction, amount, walletName string, daysAgo int, alias string) error {
	walletID, ok := t.walletIDs[walletName]
	if !ok {
		return fmt.Errorf("unknown wallet %q", walletName)
	}

	payload := map[string]any{
		"wallet_id":      walletID,
		"date":           dateDaysAgo(daysAgo),
		"direction":      direction,
		"amount":         mustFloat(amount),
		"classification": defaultClassification(direction),
		"description":    alias,
	}
	if err := t.do(http.MethodPost, "/api/v1/transactions", payload); err != nil {
		return err
	}
	if t.status != http.StatusCreated {
		return fmt.Errorf("transaction creation failed with status %d: %v", t.status, t.body)
	}
	t.txnIDs[alias] = t.body["id"].(string)
	return nil
}

func (t *testContext) iCalibrateWalletTo(walletName, actual string) error {
	walletID, ok := t.walletIDs[walletName]
	if !ok {
		return fmt.Errorf("unknown wallet %q", walletName)
	}
	return t.do(http.MethodPost, "/api/v1/wallets/"+walletID+"/calibrate", map[string]any{
		"actual_balance": mustFloat(actual),
	})
}

func (t *testContext) iMarkAsLoanTo(alias, counterparty string) error {
	return t.mark("/api/v1/transactions/mark-as-loan", alias, counterparty)
}

func (t *testContext) iMarkAsDebtTo(alias, counterparty string) error {
	return t.mark("/api/v1/transactions/mark-as-debt", alias, counterparty)
}

func (t *testContext) mark(path, alias, counterparty string) error {
	txnID, ok := t.txnIDs[alias]
	if !ok {
		return fmt.Errorf("unknown transaction %q", alias)
	}
	if err := t.do(http.MethodPost, path, map[string]any{
		"transaction_id":    txnID,
		"counterparty_name": counterparty,
	}); err != nil {
		return err
	}
	if t.status != http.StatusCreated {
		return fmt.Errorf("marking failed with status %d: %v", t.status, t.body)
	}
	t.entryID = t.body["id"].(string)
	return nil
}

func (t *testContext) iLinkToTheEntry(alias string) error {
	txnID, ok := t.txnIDs[alias]
	if !ok {
		return fmt.Errorf("unknown transaction %q", alias)
	}
	if t.entryID == "" {
		return fmt.Errorf("no entry created in this scenario")
	}
	return t.do(http.MethodPost, "/api/v1/linked-entries/"+t.entryID+"/links", map[string]any{
		"transaction_ids": []string{txnID},
	})
}

func (t *testContext) recordingIsRejectedPendingConfirmation(direction, amount, walletName string, daysAgo int) error {
	walletID, ok := t.walletIDs[walletName]
	if !ok {
		return fmt.Errorf("unknown wallet %q", walletName)
	}

	payload := map[string]any{
		"wallet_id":      walletID,
		"date":           dateDaysAgo(daysAgo),
		"direction":      direction,
		"amount":         mustFloat(amount),
		"classification": defaultClassification(direction),
		"description":    "retroactive entry",
	}
	if err := t.do(http.MethodPost, "/api/v1/transactions", payload); err != nil {
		return err
	}
	if t.status != http.StatusConflict {
		return fmt.Errorf("expected status 409, got %d: %v", t.status, t.body)
	}
	if code := t.body["code"]; code != "TXN-020001" {
		return fmt.Errorf("expected rebuild confirmation code, got %v", code)
	}
	if _, ok := t.body["impact_count"]; !ok {
		return fmt.Errorf("expected impact_count in rejection: %v", t.body)
	}

	t.lastWrite = payload
	return nil
}

func (t *testContext) resubmittingWithConfirmationSucceeds() error {
	if t.lastWrite == nil {
		return fmt.Errorf("no rejected write to resubmit")
	}
	t.lastWrite["allow_large_rebuild"] = true
	if err := t.do(http.MethodPost, "/api/v1/transactions", t.lastWrite); err != nil {
		return err
	}
	if t.status != http.StatusCreated {
		return fmt.Errorf("confirmed write failed with status %d: %v", t.status, t.body)
	}
	return nil
}

func (t *testContext) theBalanceShouldBe(walletName, expected string) error {
	walletID, ok := t.walletIDs[walletName]
	if !ok {
		return fmt.Errorf("unknown wallet %q", walletName)
	}
	if err := t.do(http.MethodGet, "/api/v1/wallets/"+walletID+"/balance", nil); err != nil {
		return err
	}
	if t.status != http.StatusOK {
		return fmt.Errorf("balance query failed with status %d: %v", t.status, t.body)
	}
	return assertAmount("balance", t.body["balance"], expected)
}

func (t *testContext) theResponseStatusShouldBe(expected int) error {
	if t.status != expected {
		return fmt.Errorf("expected status %d, got %d. Body: %v", expected, t.status, t.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expected string) error {
	value, ok := t.body[field]
	if !ok {
		return fmt.Errorf("field %q not found in response: %v", field, t.body)
	}
	actual := fmt.Sprintf("%v", value)
	if actual != expected {
		return fmt.Errorf("field %q expected %q, got %q", field, expected, actual)
	}
	return nil
}

func (t *testContext) theEntryStatusShouldBe(expected string) error {
	entry, err := t.fetchEntry()
	if err != nil {
		return err
	}
	if entry["status"] != expected {
		return fmt.Errorf("expected entry status %q, got %v", expected, entry["status"])
	}
	return nil
}

func (t *testContext) theEntryPendingAmountShouldBe(expected string) error {
	entry, err := t.fetchEntry()
	if err != nil {
		return err
	}
	return assertAmount("pending_amount", entry["pending_amount"], expected)
}

func (t *testContext) theTotalsShouldShowOwedToMe(expected string) error {
	if err := t.do(http.MethodGet, "/api/v1/linked-entries/totals", nil); err != nil {
		return err
	}
	if t.status != http.StatusOK {
		return fmt.Errorf("totals query failed with status %d: %v", t.status, t.body)
	}
	return assertAmount("owed_to_user", t.body["owed_to_user"], expected)
}

func (t *testContext) theTotalsShouldShowOwedByMe(expected string) error {
	if err := t.do(http.MethodGet, "/api/v1/linked-entries/totals", nil); err != nil {
		return err
	}
	if t.status != http.StatusOK {
		return fmt.Errorf("totals query failed with status %d: %v", t.status, t.body)
	}
	return assertAmount("owed_by_user", t.body["owed_by_user"], expected)
}

// fetchEntry reloads the scenario's entry through the list endpoint so
// assertions see persisted state rather than a stale response.
func (t *testContext) fetchEntry() (map[string]any, error) {
	if t.entryID == "" {
		return nil, fmt.Errorf("no entry created in this scenario")
	}
	if err := t.do(http.MethodGet, "/api/v1/linked-entries", nil); err != nil {
		return nil, err
	}
	entries, _ := t.body["entries"].([]any)
	for _, raw := range entries {
		entry, ok := raw.(map[string]any)
		if ok && entry["id"] == t.entryID {
			return entry, nil
		}
	}
	return nil, fmt.Errorf("entry %s not found in listing", t.entryID)
}

// do sends a request and captures the status and decoded JSON body.
func (t *testContext) do(method, path string, payload any) error {
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, t.server.URL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	t.status = resp.StatusCode
	t.body = map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &t.body); err != nil {
			return fmt.Errorf("response is not a JSON object: %s", string(raw))
		}
	}
	return nil
}

// defaultClassification picks the plain classification for a direction so
// scenarios don't have to spell it out.
func defaultClassification(direction string) string {
	switch direction {
	case "inflow":
		return "income"
	case "reserved":
		return "installment"
	default:
		return "expense"
	}
}

func dateDaysAgo(days int) string {
	return time.Now().UTC().AddDate(0, 0, -days).Format("2006-01-02")
}

func mustFloat(s string) float64 {
	f, _ := decimal.RequireFromString(s).Float64()
	return f
}

// assertAmount compares money values numerically so "649.5" and "649.50"
// are interchangeable in feature files.
func assertAmount(field string, actual any, expected string) error {
	actualStr, ok := actual.(string)
	if !ok {
		return fmt.Errorf("field %q is not a string amount: %v", field, actual)
	}
	actualDec, err := decimal.NewFromString(actualStr)
	if err != nil {
		return fmt.Errorf("field %q is not a decimal: %q", field, actualStr)
	}
	if !actualDec.Equal(decimal.RequireFromString(expected)) {
		return fmt.Errorf("field %q expected %s, got %s", field, expected, actualStr)
	}
	return nil
}
