package domain

import "time"

const day = 24 * time.Hour

type BorrowRecord struct {
	ID         string     `json:"id"`
	MemberID   *string    `json:"memberId,omitempty"`
	BookID     *string    `json:"bookId,omitempty"`
	BorrowDate time.Time  `json:"borrowDate"`
	ReturnDate *time.Time `json:"returnDate,omitempty"`
	IsReturned bool       `json:"isReturned"`
}

// IsOverdue reports whether a return date is set and lies strictly before now.
// A record without a return date is never overdue.
func (r BorrowRecord) IsOverdue(now time.Time) bool {
	return r.ReturnDate != nil && r.ReturnDate.Before(now)
}

// DaysBorrowed counts whole days from the borrow date to the return date,
// or to now while the book is still out.
func (r BorrowRecord) DaysBorrowed(now time.Time) int {
	end := now
	if r.ReturnDate != nil {
		end = *r.ReturnDate
	}
	return wholeDays(end.Sub(r.BorrowDate))
}

// wholeDays floors d to days, rounding toward negative infinity.
func wholeDays(d time.Duration) int {
	days := int(d / day)
	if d < 0 && d%day != 0 {
		days--
	}
	return days
}
