// Package stockout scans inventory for drugs at or below zero stock and emails
// the responsible managers, one message per manager.
package stockout

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const Subject = "Out of Stock Notification - Pharmacy Management System"

// StockOut is one exhausted inventory row joined to its drug and manager.
type StockOut struct {
	DrugID       int64   `db:"drug_id"`
	DrugName     string  `db:"drug_name"`
	ManagerID    int64   `db:"manager_id"`
	ManagerName  string  `db:"manager_name"`
	ManagerPhone string  `db:"manager_phone"`
	ManagerEmail *string `db:"manager_email"`
}

// Source lists exhausted inventory entries.
type Source interface {
	OutOfStock(ctx context.Context) ([]StockOut, error)
}

// Mailer delivers a plain-text message.
type Mailer interface {
	Send(to, subject, body string) error
}

// Delivery describes one attempted manager notification.
type Delivery struct {
	ManagerID   int64    `json:"manager_id"`
	ManagerName string   `json:"manager_name"`
	Recipient   string   `json:"recipient"`
	Drugs       []string `json:"drugs"`
	Error       string   `json:"error,omitempty"`
}

// Report summarizes a scan. Repeated scans re-notify for drugs still out of
// stock; there is no suppression window.
type Report struct {
	Notified []Delivery `json:"notified"`
	Failed   []Delivery `json:"failed"`
}

type Dispatcher struct {
	source            Source
	mailer            Mailer
	fallbackRecipient string
}

func NewDispatcher(source Source, mailer Mailer, fallbackRecipient string) *Dispatcher {
	return &Dispatcher{source: source, mailer: mailer, fallbackRecipient: fallbackRecipient}
}

// ScanAndNotify groups stock-outs by manager and emails each one a single
// message listing all of that manager's exhausted drugs. A delivery failure is
// recorded in the report and does not abort the remaining managers.
func (d *Dispatcher) ScanAndNotify(ctx context.Context) (*Report, error) {
	rows, err := d.source.OutOfStock(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "scan inventory")
	}

	groups := make(map[int64]*Delivery)
	var order []int64
	for _, row := range rows {
		g, ok := groups[row.ManagerID]
		if !ok {
			recipient := d.fallbackRecipient
			if row.ManagerEmail != nil && *row.ManagerEmail != "" {
				recipient = *row.ManagerEmail
			}
			g = &Delivery{ManagerID: row.ManagerID, ManagerName: row.ManagerName, Recipient: recipient}
			groups[row.ManagerID] = g
			order = append(order, row.ManagerID)
		}
		g.Drugs = append(g.Drugs, row.DrugName)
	}

	report := &Report{}
	for _, id := range order {
		g := groups[id]
		body := composeBody(g.ManagerName, g.Drugs)
		if err := d.mailer.Send(g.Recipient, Subject, body); err != nil {
			logrus.WithError(err).Warnf("stock-out notification to %s failed", g.Recipient)
			g.Error = err.Error()
			report.Failed = append(report.Failed, *g)
			continue
		}
		logrus.Infof("stock-out notification sent to %s for %d drugs", g.Recipient, len(g.Drugs))
		report.Notified = append(report.Notified, *g)
	}
	return report, nil
}

func composeBody(managerName string, drugs []string) string {
	return fmt.Sprintf(
		"Dear %s,\n\n"+
			"The following drugs are currently out of stock: %s.\n"+
			"Please take the necessary action to reorder these drugs as soon as possible.\n\n"+
			"Regards,\n"+
			"Pharmacy Management System",
		managerName, strings.Join(drugs, ", "))
}
