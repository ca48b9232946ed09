package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus is the lifecycle state of a loan.
type LoanStatus string

const (
	LoanActive       LoanStatus = "ACTIVE"
	LoanCompleted    LoanStatus = "COMPLETED"
	LoanRenegotiated LoanStatus = "RENEGOTIATED"
)

// Valid reports whether s is a known loan status.
func (s LoanStatus) Valid() bool {
	return s == LoanActive || s == LoanCompleted || s == LoanRenegotiated
}

// InterestType controls the spacing of a loan's installments.
type InterestType string

const (
	InterestMonthly InterestType = "MONTHLY"
	InterestWeekly  InterestType = "WEEKLY"
	InterestDaily   InterestType = "DAILY"
)

var ErrInvalidInterestType = errors.New("interest type must be MONTHLY, WEEKLY or DAILY")

// ParseInterestType normalizes s; an empty value means MONTHLY.
func ParseInterestType(s string) (InterestType, error) {
	if strings.TrimSpace(s) == "" {
		return InterestMonthly, nil
	}
	t := InterestType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case InterestMonthly, InterestWeekly, InterestDaily:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidInterestType, s)
}

// Advance returns from moved forward by n periods. Monthly steps clamp to the
// last day of the target month, so Jan 31 + 1 month is Feb 28 (or 29).
func (t InterestType) Advance(from time.Time, n int) time.Time {
	switch t {
	case InterestWeekly:
		return from.AddDate(0, 0, 7*n)
	case InterestDaily:
		return from.AddDate(0, 0, n)
	default:
		return addMonthsClamped(from, n)
	}
}

func addMonthsClamped(from time.Time, n int) time.Time {
	y, m, d := from.Date()
	first := time.Date(y, m+time.Month(n), 1, from.Hour(), from.Minute(), from.Second(), from.Nanosecond(), from.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(first.Year(), first.Month(), d, from.Hour(), from.Minute(), from.Second(), from.Nanosecond(), from.Location())
}

// Loan is money lent to a client, repaid through its installments.
// UserID is the owning tenant, derived from the client.
type Loan struct {
	LoanID         string          `json:"loanID"`
	UserID         string          `json:"userID"`
	ClientID       string          `json:"clientID"`
	ClientName     string          `json:"clientName,omitempty"`
	PartnerID      *string         `json:"partnerID,omitempty"`
	OriginalLoanID *string         `json:"originalLoanID,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	InterestRate   decimal.Decimal `json:"interestRate"`
	InterestType   InterestType    `json:"interestType"`
	StartDate      time.Time       `json:"startDate"`
	Status         LoanStatus      `json:"status"`
	Installments   []Installment   `json:"installments,omitempty"`
	AuditFields
}

// LoanFilter narrows a loan listing. Zero values do not filter.
type LoanFilter struct {
	Status   LoanStatus
	ClientID string
}

// InterestRateFor is the effective rate in percent: (total-principal)/principal*100.
func InterestRateFor(principal, total decimal.Decimal) decimal.Decimal {
	if !principal.IsPositive() {
		return decimal.Zero
	}
	return total.Sub(principal).Div(principal).Mul(decimal.NewFromInt(100)).Round(2)
}

// RecomputeInterestRate refreshes the stored display rate.
func (l *Loan) RecomputeInterestRate() {
	l.InterestRate = InterestRateFor(l.Amount, l.TotalAmount)
}

// InstallmentValue splits total evenly across count installments, rounded to cents.
// Any rounding remainder is not redistributed.
func InstallmentValue(total decimal.Decimal, count int) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count))).Round(2)
}

// BuildSchedule creates count PENDING installments numbered 1..count, due 1..count periods after start.
// The last installment absorbs the rounding remainder so the amounts always sum to total.
func BuildSchedule(loanID string, total decimal.Decimal, count int, start time.Time, t InterestType, newID func() string, now time.Time) []Installment {
	value := InstallmentValue(total, count)
	out := make([]Installment, 0, count)
	for i := 1; i <= count; i++ {
		amount := value
		if i == count {
			amount = total.Sub(value.Mul(decimal.NewFromInt(int64(count - 1))))
		}
		out = append(out, Installment{
			InstallmentID: newID(),
			LoanID:        loanID,
			Number:        i,
			Amount:        amount,
			DueDate:       t.Advance(start, i),
			Status:        InstallmentPending,
			AuditFields:   AuditFields{CreatedAt: now, LastUpdatedAt: now},
		})
	}
	return out
}

// PendingDebt sums the amounts of PENDING installments.
func (l *Loan) PendingDebt() decimal.Decimal {
	debt := decimal.Zero
	for _, inst := range l.Installments {
		if inst.Status == InstallmentPending {
			debt = debt.Add(inst.Amount)
		}
	}
	return debt
}

// PendingCount returns how many installments are still PENDING.
func (l *Loan) PendingCount() int {
	n := 0
	for _, inst := range l.Installments {
		if inst.Status == InstallmentPending {
			n++
		}
	}
	return n
}

// NextInstallmentNumber is one past the highest number on the loan.
func (l *Loan) NextInstallmentNumber() int {
	highest := 0
	for _, inst := range l.Installments {
		if inst.Number > highest {
			highest = inst.Number
		}
	}
	return highest + 1
}

// CurrentTotal sums the contribution of every non-renegotiated installment.
func (l *Loan) CurrentTotal() decimal.Decimal {
	total := decimal.Zero
	for _, inst := range l.Installments {
		total = total.Add(inst.Contribution())
	}
	return total
}

// FindInstallment returns the installment with the given id, or nil.
func (l *Loan) FindInstallment(installmentID string) *Installment {
	for i := range l.Installments {
		if l.Installments[i].InstallmentID == installmentID {
			return &l.Installments[i]
		}
	}
	return nil
}

// ReevaluateStatus applies the completion rule: an ACTIVE loan with no PENDING
// installments becomes COMPLETED and a COMPLETED loan that regains one reverts
// to ACTIVE. RENEGOTIATED is terminal. It reports whether the status changed.
func (l *Loan) ReevaluateStatus() bool {
	if l.Status == LoanRenegotiated {
		return false
	}
	next := LoanActive
	if l.PendingCount() == 0 {
		next = LoanCompleted
	}
	if next == l.Status {
		return false
	}
	l.Status = next
	return true
}

// AdjustTotal shifts TotalAmount by delta unless the loan is RENEGOTIATED,
// whose total is frozen at the moment of renegotiation.
func (l *Loan) AdjustTotal(delta decimal.Decimal) {
	if l.Status == LoanRenegotiated || delta.IsZero() {
		return
	}
	l.TotalAmount = l.TotalAmount.Add(delta)
	l.RecomputeInterestRate()
}
