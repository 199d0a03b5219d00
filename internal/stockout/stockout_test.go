package stockout_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sirius241/Pharmacy-Managment-System/internal/stockout"
)

func TestScanGroupsDrugsPerManager(t *testing.T) {
	source := &mockSource{rows: []stockout.StockOut{
		{DrugID: 1, DrugName: "Aspirin", ManagerID: 10, ManagerName: "Asha"},
		{DrugID: 2, DrugName: "Ibuprofen", ManagerID: 10, ManagerName: "Asha"},
		{DrugID: 3, DrugName: "Paracetamol", ManagerID: 11, ManagerName: "Ravi"},
	}}
	mailer := &mockMailer{}
	d := stockout.NewDispatcher(source, mailer, "alerts@pharmacy.example")

	report, err := d.ScanAndNotify(context.Background())
	require.NoError(t, err)

	require.Len(t, mailer.sent, 2)
	require.Len(t, report.Notified, 2)
	assert.Empty(t, report.Failed)

	first := mailer.sent[0]
	assert.Equal(t, "alerts@pharmacy.example", first.to)
	assert.Equal(t, stockout.Subject, first.subject)
	assert.Contains(t, first.body, "Dear Asha,")
	assert.Contains(t, first.body, "Aspirin, Ibuprofen")

	assert.Equal(t, []string{"Aspirin", "Ibuprofen"}, report.Notified[0].Drugs)
	assert.Equal(t, []string{"Paracetamol"}, report.Notified[1].Drugs)
}

func TestScanPrefersManagerEmail(t *testing.T) {
	email := "asha@pharmacy.example"
	source := &mockSource{rows: []stockout.StockOut{
		{DrugID: 1, DrugName: "Aspirin", ManagerID: 10, ManagerName: "Asha", ManagerEmail: &email},
	}}
	mailer := &mockMailer{}
	d := stockout.NewDispatcher(source, mailer, "alerts@pharmacy.example")

	_, err := d.ScanAndNotify(context.Background())
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, email, mailer.sent[0].to)
}

func TestScanContinuesPastDeliveryFailure(t *testing.T) {
	source := &mockSource{rows: []stockout.StockOut{
		{DrugID: 1, DrugName: "Aspirin", ManagerID: 10, ManagerName: "Asha"},
		{DrugID: 3, DrugName: "Paracetamol", ManagerID: 11, ManagerName: "Ravi"},
	}}
	mailer := &mockMailer{failFirst: true}
	d := stockout.NewDispatcher(source, mailer, "alerts@pharmacy.example")

	report, err := d.ScanAndNotify(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Failed, 1)
	assert.Equal(t, "Asha", report.Failed[0].ManagerName)
	assert.Equal(t, "smtp unavailable", report.Failed[0].Error)

	require.Len(t, report.Notified, 1)
	assert.Equal(t, "Ravi", report.Notified[0].ManagerName)
}

func TestScanEmptyInventoryIsQuiet(t *testing.T) {
	mailer := &mockMailer{}
	d := stockout.NewDispatcher(&mockSource{}, mailer, "alerts@pharmacy.example")

	report, err := d.ScanAndNotify(context.Background())
	require.NoError(t, err)
	assert.Empty(t, mailer.sent)
	assert.Empty(t, report.Notified)
	assert.Empty(t, report.Failed)
}

func TestScanSourceErrorPropagates(t *testing.T) {
	d := stockout.NewDispatcher(&mockSource{err: errors.New("db gone")}, &mockMailer{}, "")
	_, err := d.ScanAndNotify(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan inventory")
}

type mockSource struct {
	rows []stockout.StockOut
	err  error
}

func (m *mockSource) OutOfStock(context.Context) ([]stockout.StockOut, error) {
	return m.rows, m.err
}

type sentMail struct {
	to, subject, body string
}

type mockMailer struct {
	sent      []sentMail
	failFirst bool
	calls     int
}

func (m *mockMailer) Send(to, subject, body string) error {
	m.calls++
	if m.failFirst && m.calls == 1 {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}
