package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"lendtrack/internal/core"
	"lendtrack/internal/report"
)

// View models passed to templates. Money is preformatted so the
// templates never touch decimal values.
type (
	statsView struct {
		BorrowerCount     int
		TotalLoanAmount   string
		TotalInterestPaid string
		SkippedFiles      int
	}

	borrowerRow struct {
		Name            string
		LoanAmount      string
		PeriodMonths    int
		MonthlyInterest string
		TotalPaid       string
		Remaining       string
		PercentComplete int
	}

	paymentRow struct {
		Date   string
		Amount string
		Note   string
	}

	profileView struct {
		Name            string
		LoanAmount      string
		InterestRate    string
		StartDate       string
		PeriodMonths    int
		MonthlyInterest string
		Payments        []paymentRow
		TotalDue        string
		TotalPaid       string
		Remaining       string
		PercentComplete int
		Today           string
		Error           string
	}

	newBorrowerView struct {
		Name         string
		LoanAmount   string
		InterestRate string
		PeriodMonths string
		Error        string
	}
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	stats, err := s.getStats(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Portfolio statistics error", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, "Error accessing the borrower store.")
		return
	}
	s.render(w, r, "index.html", stats)
}

// getStats returns the cached home statistics, recomputing them from
// the store when the cache is cold.
func (s *Server) getStats(ctx context.Context) (statsView, error) {
	if cached, ok := s.statsCache.Get(statsCacheKey); ok {
		return cached, nil
	}

	records, skipped, err := s.store.ListAll(ctx)
	if err != nil {
		return statsView{}, err
	}
	for _, sk := range skipped {
		slog.WarnContext(ctx, "Skipping unreadable borrower file", "file", sk.File, "error", sk.Err)
	}

	stats := core.SummarizePortfolio(records)
	view := statsView{
		BorrowerCount:     stats.BorrowerCount,
		TotalLoanAmount:   stats.TotalLoanAmount.String(),
		TotalInterestPaid: stats.TotalInterestPaid.String(),
		SkippedFiles:      len(skipped),
	}
	s.statsCache.Set(statsCacheKey, view)
	return view, nil
}

func (s *Server) handleBorrowers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListBorrowers(w, r)
	case http.MethodPost:
		s.handleCreateBorrower(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleListBorrowers(w http.ResponseWriter, r *http.Request) {
	records, skipped, err := s.store.ListAll(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Borrower listing error", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, "Error accessing the borrower store.")
		return
	}
	for _, sk := range skipped {
		slog.WarnContext(r.Context(), "Skipping unreadable borrower file", "file", sk.File, "error", sk.Err)
	}

	rows := make([]borrowerRow, 0, len(records))
	for _, rec := range records {
		sum := core.Summarize(rec)
		rows = append(rows, borrowerRow{
			Name:            rec.Name,
			LoanAmount:      rec.LoanAmount.String(),
			PeriodMonths:    rec.PeriodMonths,
			MonthlyInterest: rec.MonthlyInterest.String(),
			TotalPaid:       sum.TotalPaid.String(),
			Remaining:       sum.RemainingInterest.String(),
			PercentComplete: sum.PercentComplete,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })

	data := struct {
		Borrowers    []borrowerRow
		SkippedFiles int
	}{rows, len(skipped)}
	s.render(w, r, "borrowers.html", data)
}

func (s *Server) handleNewBorrowerForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.render(w, r, "borrower_new.html", newBorrowerView{})
}

func (s *Server) handleCreateBorrower(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		s.renderError(w, r, http.StatusBadRequest, "Invalid request format.")
		return
	}

	view := newBorrowerView{
		Name:         sanitizeInput(r.Form.Get("name")),
		LoanAmount:   sanitizeInput(r.Form.Get("loan_amount")),
		InterestRate: sanitizeInput(r.Form.Get("interest_rate")),
		PeriodMonths: sanitizeInput(r.Form.Get("period_months")),
	}

	loan, loanErr := core.ParseMoney(view.LoanAmount)
	rate, rateErr := core.ParseMoney(view.InterestRate)
	period, periodErr := strconv.Atoi(view.PeriodMonths)
	if loanErr != nil || rateErr != nil || periodErr != nil {
		view.Error = "Loan amount, interest rate and loan period must be numeric."
		w.WriteHeader(http.StatusUnprocessableEntity)
		s.render(w, r, "borrower_new.html", view)
		return
	}

	app := core.LoanApplication{
		Name:         view.Name,
		LoanAmount:   loan,
		InterestRate: rate,
		PeriodMonths: period,
	}
	rec, err := s.store.Create(r.Context(), app)
	switch {
	case errors.Is(err, core.ErrInvalidInput):
		view.Error = err.Error()
		w.WriteHeader(http.StatusUnprocessableEntity)
		s.render(w, r, "borrower_new.html", view)
		return
	case errors.Is(err, core.ErrAlreadyExists):
		view.Error = "A borrower with this name already exists."
		w.WriteHeader(http.StatusConflict)
		s.render(w, r, "borrower_new.html", view)
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "Borrower create error", "error", err, "name", view.Name)
		s.renderError(w, r, http.StatusInternalServerError, "Failed to save the borrower.")
		return
	}

	s.invalidateStats()
	slog.InfoContext(r.Context(), "Borrower created", "name", rec.Name, "monthly_interest", rec.MonthlyInterest.String())
	http.Redirect(w, r, profileURL(rec.Name), http.StatusSeeOther)
}

func (s *Server) handleBorrowerProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	name := sanitizeInput(r.URL.Query().Get("name"))
	if name == "" {
		s.renderError(w, r, http.StatusBadRequest, "Borrower name cannot be empty.")
		return
	}
	s.renderProfile(w, r, name, "", http.StatusOK)
}

func (s *Server) renderProfile(w http.ResponseWriter, r *http.Request, name, formError string, status int) {
	rec, err := s.store.Load(r.Context(), name)
	switch {
	case errors.Is(err, core.ErrNotFound):
		s.renderError(w, r, http.StatusNotFound, "Borrower not found.")
		return
	case errors.Is(err, core.ErrCorruptRecord):
		slog.ErrorContext(r.Context(), "Borrower record corrupt", "name", name, "error", err)
		s.renderError(w, r, http.StatusInternalServerError, "This borrower's record could not be read.")
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "Borrower load error", "name", name, "error", err)
		s.renderError(w, r, http.StatusInternalServerError, "Error loading borrower data.")
		return
	}

	sum := core.Summarize(rec)
	view := profileView{
		Name:            rec.Name,
		LoanAmount:      rec.LoanAmount.String(),
		InterestRate:    rec.InterestRate.String(),
		StartDate:       rec.StartDate,
		PeriodMonths:    rec.PeriodMonths,
		MonthlyInterest: rec.MonthlyInterest.String(),
		TotalDue:        sum.TotalInterestDue.String(),
		TotalPaid:       sum.TotalPaid.String(),
		Remaining:       sum.RemainingInterest.String(),
		PercentComplete: sum.PercentComplete,
		Today:           time.Now().Format(core.DateLayout),
		Error:           formError,
	}
	for _, p := range rec.Payments {
		view.Payments = append(view.Payments, paymentRow{Date: p.Date, Amount: p.Amount.String(), Note: p.Note})
	}

	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	s.render(w, r, "borrower_profile.html", view)
}

func (s *Server) handleRecordPayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		s.renderError(w, r, http.StatusBadRequest, "Invalid request format.")
		return
	}

	name := sanitizeInput(r.Form.Get("name"))
	if name == "" {
		s.renderError(w, r, http.StatusBadRequest, "Borrower name cannot be empty.")
		return
	}
	date := sanitizeInput(r.Form.Get("date"))
	if date == "" {
		date = time.Now().Format(core.DateLayout)
	}

	amount, err := core.ParseMoney(r.Form.Get("amount"))
	if err != nil {
		s.renderProfile(w, r, name, "Payment amount must be numeric.", http.StatusUnprocessableEntity)
		return
	}

	entry := core.PaymentEntry{Date: date, Amount: amount, Note: sanitizeInput(r.Form.Get("note"))}
	err = s.store.AppendPayment(r.Context(), name, entry)
	switch {
	case errors.Is(err, core.ErrNotFound):
		s.renderError(w, r, http.StatusNotFound, "Borrower not found.")
		return
	case errors.Is(err, core.ErrInvalidInput):
		s.renderProfile(w, r, name, "Payment amount cannot be negative.", http.StatusUnprocessableEntity)
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "Payment append error", "name", name, "error", err)
		s.renderError(w, r, http.StatusInternalServerError, "Failed to record the payment.")
		return
	}

	s.invalidateStats()
	slog.InfoContext(r.Context(), "Payment recorded", "name", name, "amount", amount.String(), "date", date)
	http.Redirect(w, r, profileURL(name), http.StatusSeeOther)
}

func (s *Server) handleDownloadWorkbook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	name := sanitizeInput(r.URL.Query().Get("name"))
	if name == "" {
		s.renderError(w, r, http.StatusBadRequest, "Borrower name cannot be empty.")
		return
	}
	data, filename, err := s.store.ExportFile(r.Context(), name)
	if errors.Is(err, core.ErrNotFound) {
		s.renderError(w, r, http.StatusNotFound, "Borrower not found.")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Workbook export error", "name", name, "error", err)
		s.renderError(w, r, http.StatusInternalServerError, "Failed to export the borrower file.")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(data)
}

func (s *Server) handleDownloadReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	name := sanitizeInput(r.URL.Query().Get("name"))
	if name == "" {
		s.renderError(w, r, http.StatusBadRequest, "Borrower name cannot be empty.")
		return
	}
	rec, err := s.store.Load(r.Context(), name)
	if errors.Is(err, core.ErrNotFound) {
		s.renderError(w, r, http.StatusNotFound, "Borrower not found.")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Borrower load error", "name", name, "error", err)
		s.renderError(w, r, http.StatusInternalServerError, "Error loading borrower data.")
		return
	}

	pdf, err := report.Borrower(rec, core.Summarize(rec))
	if err != nil {
		slog.ErrorContext(r.Context(), "Report render error", "name", name, "error", err)
		s.renderError(w, r, http.StatusInternalServerError, "Failed to generate the report.")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.Filename(name)+`"`)
	_, _ = w.Write(pdf)
}

func profileURL(name string) string {
	return "/borrowers/view?name=" + url.QueryEscape(name)
}

// render executes a page template, falling back to a plain error when
// templates failed to parse at startup.
func (s *Server) render(w http.ResponseWriter, r *http.Request, tmpl string, data any) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "template", tmpl)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	if err := s.templates.ExecuteTemplate(w, tmpl, data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed", "error", err, "template", tmpl)
	}
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	w.WriteHeader(status)
	if s.templates == nil {
		_, _ = w.Write([]byte(msg))
		return
	}
	data := struct {
		Status  int
		Message string
	}{status, msg}
	if err := s.templates.ExecuteTemplate(w, "error.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed", "error", err, "template", "error.html")
		_, _ = w.Write([]byte(msg))
	}
}
