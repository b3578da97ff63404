package handler

type ContextKey string

var (
	EmployeeCtx  ContextKey = "employee"
	SiteCtx      ContextKey = "site"
	YearMonthCtx ContextKey = "yearMonth"
)

// YearMonth is the parsed {year}/{month} pair of schedule routes.
type YearMonth struct {
	Year  int
	Month int
}
