package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

// Dashboard renders the leaderboard page. The table body is streamed in over
// /sse/report once the page has loaded.
func Dashboard(title string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		page := `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>` + templ.EscapeString(title) + `</title>
<script type="module" src="` + datastarScript + `"></script>
</head>
<body data-signals="{reportData: [], reportStats: {}}">
<h1>` + templ.EscapeString(title) + `</h1>
<section data-on-load="@get('/sse/report')">
<div id="leaderboard-content">Loading report...</div>
</section>
<footer data-on-load="@get('/sse/stats')">
<span data-text="'Receipts skipped: ' + ($reportStats.skipped_records ?? 0)"></span>
</footer>
</body>
</html>`

		_, err := io.WriteString(w, page)
		return err
	})
}
