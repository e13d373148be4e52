package handlers

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"seller-report/internal/models"
	"seller-report/internal/services"
)

const maxLeaderboardRows = 50

var leaderboardTemplate = template.Must(template.New("leaderboard").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`
<div id="leaderboard-content">
<table class="modern-table">
<thead><tr><th>#</th><th>Seller</th><th>Revenue</th><th>Profit</th><th>Receipts</th><th>Bonus</th><th>Top product</th></tr></thead>
<tbody>
{{range $i, $row := .}}<tr>
<td>{{inc $i}}</td>
<td>{{$row.Name}}</td>
<td>{{$row.Revenue.StringFixed 2}}</td>
<td><strong>{{$row.Profit.StringFixed 2}}</strong></td>
<td>{{$row.SalesCount}}</td>
<td>{{$row.Bonus.StringFixed 2}}</td>
<td>{{with $row.TopProducts}}{{(index . 0).SKU}} ({{(index . 0).Quantity}}){{else}}-{{end}}</td>
</tr>{{end}}
</tbody>
</table>
</div>`))

const emptyLeaderboard = `<div id="leaderboard-content">No report has been generated yet</div>`

type SSEHandlers struct {
	report *services.SalesReport
	logger *slog.Logger
}

func NewSSEHandlers(report *services.SalesReport, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		report: report,
		logger: logger,
	}
}

func (h *SSEHandlers) renderLeaderboard(rows []models.ReportRow) (string, error) {
	if len(rows) > maxLeaderboardRows {
		rows = rows[:maxLeaderboardRows]
	}

	var buf strings.Builder
	err := leaderboardTemplate.Execute(&buf, rows)
	return buf.String(), err
}

// HandleReport patches the leaderboard table and pushes the rows as the
// reportData signal.
func (h *SSEHandlers) HandleReport(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	if !h.report.Ready() {
		if err := sse.PatchElements(emptyLeaderboard); err != nil {
			h.logger.Error("patch empty leaderboard", "error", err)
		}
		return
	}

	rows := h.report.Rows()
	html, err := h.renderLeaderboard(rows)
	if err != nil {
		h.logger.Error("render leaderboard", "error", err)
		return
	}
	if err := sse.PatchElements(html); err != nil {
		h.logger.Error("patch leaderboard", "error", err)
		return
	}

	signals, err := json.Marshal(map[string]any{
		"reportData": rows,
	})
	if err != nil {
		h.logger.Error("marshal report data", "error", err)
		return
	}
	if err := sse.PatchSignals(signals); err != nil {
		h.logger.Error("patch report signals", "error", err)
	}
}

// HandleStats pushes generation counters as the reportStats signal.
func (h *SSEHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	signals, err := json.Marshal(map[string]any{
		"reportStats": h.report.Stats(),
	})
	if err != nil {
		h.logger.Error("marshal report stats", "error", err)
		return
	}
	if err := sse.PatchSignals(signals); err != nil {
		h.logger.Error("patch report stats", "error", err)
	}
}
