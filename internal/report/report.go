// Package report renders query results and repository data as a PDF document.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/festy23/evidence_bot/internal/audit/model"
	"github.com/festy23/evidence_bot/internal/prompt"
)

// Title heads every rendered document.
const Title = "Evidence-on-Demand Bot Report"

const (
	issueSummaryLimit = 5
	issueTitleRunes   = 40

	pageMargin = 15.0
	lineHeight = 6.0
	rowHeight  = 7.0
)

// Document is everything a report can show. Nil or empty parts are skipped.
type Document struct {
	Query        string
	Response     string
	Repository   *model.Repository
	PullRequests []model.PullRequest
	Issues       []model.Issue
	Audit        *model.AuditReport
}

// StatusCounts tallies pull requests as merged (merged_at set), open or closed.
type StatusCounts struct {
	Merged int
	Open   int
	Closed int
}

// Total returns the number of counted pull requests.
func (c StatusCounts) Total() int {
	return c.Merged + c.Open + c.Closed
}

// CountStatuses classifies each pull request once; merged wins over state.
func CountStatuses(prs []model.PullRequest) StatusCounts {
	var counts StatusCounts
	for _, pr := range prs {
		switch {
		case pr.IsMerged():
			counts.Merged++
		case pr.State == model.StateOpen:
			counts.Open++
		default:
			counts.Closed++
		}
	}
	return counts
}

type rgb struct{ r, g, b int }

var (
	colorMerged = rgb{111, 66, 193}
	colorOpen   = rgb{40, 167, 69}
	colorClosed = rgb{203, 36, 49}
	colorOrange = rgb{255, 165, 0}
	colorGreen  = rgb{0, 128, 0}
	colorHeader = rgb{230, 230, 230}
)

// renderer draws a Document with fpdf.
type renderer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// Render writes doc to w as a PDF.
func Render(w io.Writer, doc Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle(Title, true)

	r := &renderer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.AddPage()

	r.title()
	r.queryAndResponse(doc.Query, doc.Response)
	if doc.Repository != nil {
		r.repository(doc.Repository)
	}
	if len(doc.PullRequests) > 0 {
		r.statusChart(CountStatuses(doc.PullRequests))
	}
	if len(doc.Issues) > 0 {
		r.issuesChart(doc.Issues)
		r.issuesTable(doc.Issues)
	}
	if doc.Audit != nil {
		r.audit(doc.Audit)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render PDF: %w", err)
	}
	return nil
}

func (r *renderer) contentWidth() float64 {
	w, _ := r.pdf.GetPageSize()
	return w - 2*pageMargin
}

func (r *renderer) title() {
	r.pdf.SetFont("Helvetica", "B", 18)
	r.pdf.CellFormat(0, 12, r.tr(Title), "", 1, "C", false, 0, "")
	r.pdf.Ln(4)
}

func (r *renderer) heading(text string) {
	r.pdf.Ln(2)
	r.pdf.SetFont("Helvetica", "B", 13)
	r.pdf.CellFormat(0, 8, r.tr(text), "", 1, "L", false, 0, "")
	r.pdf.SetFont("Helvetica", "", 10)
}

func (r *renderer) labelled(label, value string) {
	r.pdf.SetFont("Helvetica", "B", 10)
	r.pdf.CellFormat(22, lineHeight, r.tr(label), "", 0, "L", false, 0, "")
	r.pdf.SetFont("Helvetica", "", 10)
	r.pdf.MultiCell(0, lineHeight, r.tr(value), "", "L", false)
}

func (r *renderer) queryAndResponse(query, response string) {
	r.labelled("Query:", query)
	r.labelled("Response:", response)
	r.pdf.Ln(4)
}

func (r *renderer) repository(repo *model.Repository) {
	r.heading("Repository Metadata")
	r.pdf.MultiCell(0, lineHeight, r.tr(fmt.Sprintf("Repo: %s (%s)", repo.Name, repo.Owner)), "", "L", false)
	r.pdf.MultiCell(0, lineHeight, r.tr("Description: "+repo.Description), "", "L", false)
	r.pdf.MultiCell(0, lineHeight, fmt.Sprintf("Stars: %d, Forks: %d", repo.Stars, repo.Forks), "", "L", false)
	r.pdf.Ln(4)
}

// statusChart draws one horizontal bar per status scaled to its share of the total.
func (r *renderer) statusChart(counts StatusCounts) {
	r.heading("Pull Request Status Distribution")

	total := float64(counts.Total())
	labelWidth := 25.0
	barSpace := r.contentWidth() - labelWidth - 30
	bars := []struct {
		label string
		count int
		color rgb
	}{
		{"merged", counts.Merged, colorMerged},
		{"open", counts.Open, colorOpen},
		{"closed", counts.Closed, colorClosed},
	}

	for _, bar := range bars {
		share := float64(bar.count) / total
		x, y := r.pdf.GetXY()
		r.pdf.CellFormat(labelWidth, rowHeight, bar.label, "", 0, "L", false, 0, "")
		if share > 0 {
			r.fill(bar.color)
			r.pdf.Rect(x+labelWidth, y+1, barSpace*share, rowHeight-2, "F")
		}
		r.pdf.SetX(x + labelWidth + barSpace + 2)
		r.pdf.CellFormat(28, rowHeight, fmt.Sprintf("%d (%.1f%%)", bar.count, share*100), "", 1, "L", false, 0, "")
	}
	r.pdf.Ln(4)
}

// issuesChart draws open and closed issue counts as vertical bars.
func (r *renderer) issuesChart(issues []model.Issue) {
	r.heading("Issues Overview")

	var open, closed int
	for _, issue := range issues {
		switch issue.State {
		case model.StateOpen:
			open++
		case model.StateClosed:
			closed++
		}
	}

	const (
		chartHeight = 40.0
		barWidth    = 30.0
		gap         = 20.0
	)
	peak := max(open, closed, 1)
	x, y := r.pdf.GetXY()
	base := y + chartHeight

	bars := []struct {
		label string
		count int
		color rgb
	}{
		{"Open Issues", open, colorOrange},
		{"Closed Issues", closed, colorGreen},
	}
	for i, bar := range bars {
		bx := x + 10 + float64(i)*(barWidth+gap)
		h := chartHeight * float64(bar.count) / float64(peak)
		if h > 0 {
			r.fill(bar.color)
			r.pdf.Rect(bx, base-h, barWidth, h, "F")
		}
		r.pdf.SetXY(bx, base-h-lineHeight)
		r.pdf.CellFormat(barWidth, lineHeight, strconv.Itoa(bar.count), "", 0, "C", false, 0, "")
		r.pdf.SetXY(bx, base+1)
		r.pdf.CellFormat(barWidth, lineHeight, bar.label, "", 0, "C", false, 0, "")
	}
	r.pdf.Line(x+5, base, x+10+2*barWidth+gap+5, base)
	r.pdf.SetXY(x, base+lineHeight+4)
}

func (r *renderer) issuesTable(issues []model.Issue) {
	r.heading("Issues Summary")

	rows := make([][]string, 0, issueSummaryLimit)
	for _, issue := range issues[:min(len(issues), issueSummaryLimit)] {
		assignee := "-"
		if issue.Assignee != nil && *issue.Assignee != "" {
			assignee = *issue.Assignee
		}
		labels := "-"
		if len(issue.Labels) > 0 {
			labels = strings.Join(issue.Labels, ", ")
		}
		rows = append(rows, []string{
			strconv.Itoa(issue.Number),
			truncateRunes(issue.Title, issueTitleRunes),
			issue.State,
			assignee,
			labels,
		})
	}
	r.table([]string{"ID", "Title", "State", "Assignee", "Labels"}, []float64{15, 75, 20, 30, 40}, rows)
}

func (r *renderer) audit(report *model.AuditReport) {
	rows := make([][]string, 0, len(report.MergedWithoutApproval))
	for _, row := range report.MergedWithoutApproval {
		rows = append(rows, []string{strconv.Itoa(row.ID), row.Title, row.MergedBy})
	}
	r.heading(fmt.Sprintf("PRs merged without approval: %d", len(rows)))
	r.table([]string{"PR ID", "Title", "Merged By"}, []float64{20, 120, 40}, rows)

	rows = make([][]string, 0, len(report.ReviewerHistory))
	for _, row := range report.ReviewerHistory {
		rows = append(rows, []string{strconv.Itoa(row.ID), row.Title, row.Reviewer, row.Decision, row.Date})
	}
	r.heading(fmt.Sprintf("PRs reviewed by %s", report.ReferenceReviewer))
	r.table([]string{"PR ID", "Title", "Reviewer", "Decision", "Date"}, []float64{15, 65, 30, 30, 40}, rows)

	rows = make([][]string, 0, len(report.StaleOpen))
	for _, row := range report.StaleOpen {
		rows = append(rows, []string{strconv.Itoa(row.ID), row.Title, row.CreatedAt, prompt.FormatHours(row.WaitingHours)})
	}
	r.heading("PRs waiting >24h for review")
	r.table([]string{"PR ID", "Title", "Created At", "Waiting Hours"}, []float64{15, 95, 40, 30}, rows)

	rows = make([][]string, 0, len(report.RecentlyMerged))
	for _, row := range report.RecentlyMerged {
		approvers := "-"
		if len(row.Approvers) > 0 {
			approvers = strings.Join(row.Approvers, ", ")
		}
		rows = append(rows, []string{strconv.Itoa(row.ID), row.Title, row.MergedAt, approvers})
	}
	r.heading("PRs merged in last 7 days")
	r.table([]string{"PR ID", "Title", "Merged At", "Approvers"}, []float64{15, 85, 40, 40}, rows)
}

// table draws a header row and single-line cells clipped to their column width.
func (r *renderer) table(header []string, widths []float64, rows [][]string) {
	r.pdf.SetFont("Helvetica", "B", 9)
	r.fill(colorHeader)
	for i, h := range header {
		r.pdf.CellFormat(widths[i], rowHeight, h, "1", 0, "C", true, 0, "")
	}
	r.pdf.Ln(-1)

	r.pdf.SetFont("Helvetica", "", 9)
	if len(rows) == 0 {
		r.pdf.CellFormat(sum(widths), rowHeight, "none", "1", 1, "C", false, 0, "")
		return
	}
	for _, row := range rows {
		for i, cell := range row {
			r.pdf.CellFormat(widths[i], rowHeight, r.clip(r.tr(cell), widths[i]-2), "1", 0, "L", false, 0, "")
		}
		r.pdf.Ln(-1)
	}
}

func (r *renderer) clip(text string, width float64) string {
	if r.pdf.GetStringWidth(text) <= width {
		return text
	}
	for len(text) > 0 && r.pdf.GetStringWidth(text+"...") > width {
		text = text[:len(text)-1]
	}
	return text + "..."
}

func (r *renderer) fill(c rgb) {
	r.pdf.SetFillColor(c.r, c.g, c.b)
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
