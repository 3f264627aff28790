package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"SwingScanner/internal/model"
	"SwingScanner/internal/strategy"
)

// FormatScanReport formats the top results of a scan into a Telegram message.
func FormatScanReport(report *model.ScanReport, topN int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>SwingScanner</b> | %s | %s\n",
		html.EscapeString(strings.ToUpper(report.Mode)), report.FinishedAt.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Scanned %d · scored %d · failed %d · %s\n\n",
		report.TotalAttempted, report.TotalSucceeded, report.TotalFailed, report.Duration().Round(time.Second)))

	if len(report.Results) == 0 {
		b.WriteString("No symbol scored above zero.")
		return b.String()
	}

	n := len(report.Results)
	if topN > 0 && topN < n {
		n = topN
	}
	b.WriteString(fmt.Sprintf("🏆 <b>Top %d</b> of %d\n", n, len(report.Results)))
	for i, r := range report.Results[:n] {
		b.WriteString(fmt.Sprintf("%d. <b>%s</b> %d/%d  %.2f (%+.2f%%)\n",
			i+1, html.EscapeString(r.Symbol), r.Score, strategy.MaxScore, r.LastPrice, r.ChangePercent))
		b.WriteString(fmt.Sprintf("   entry %.2f · stop %.2f · target %.2f\n",
			r.Plan.Entry, r.Plan.StopLoss, r.Plan.TakeProfit))
	}
	return b.String()
}

// FormatResult formats one result with its score breakdown and verdict.
func FormatResult(r *model.ScoredResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔎 <b>%s</b> | score %d/%d\n", html.EscapeString(r.Symbol), r.Score, strategy.MaxScore))
	b.WriteString(fmt.Sprintf("Price: %.2f (%+.2f%%)\n\n", r.LastPrice, r.ChangePercent))

	bd := r.Breakdown
	b.WriteString("📈 <b>Breakdown:</b>\n")
	b.WriteString(fmt.Sprintf("  RSI %d/20 · MACD %d/20 · Volume %d/20\n", bd.RSI, bd.MACD, bd.Volume))
	b.WriteString(fmt.Sprintf("  ADX %d/15 · SuperTrend %d/15 · Bollinger %d/10\n\n", bd.ADX, bd.SuperTrend, bd.Bollinger))

	b.WriteString("🎯 <b>Plan:</b>\n")
	b.WriteString(fmt.Sprintf("  Entry %.2f\n  Stop %.2f\n  Target %.2f\n", r.Plan.Entry, r.Plan.StopLoss, r.Plan.TakeProfit))

	if lines := strategy.Verdict(r); len(lines) > 0 {
		b.WriteString("\n🧭 <b>Verdict:</b>\n")
		for _, l := range lines {
			b.WriteString("  • " + html.EscapeString(l) + "\n")
		}
	}
	return b.String()
}

// FormatScanFailed reports a scan that could not produce any result.
func FormatScanFailed(mode string, report *model.ScanReport, err error) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("⚠️ <b>Scan failed</b> | %s\n", html.EscapeString(strings.ToUpper(mode))))
	if report != nil {
		b.WriteString(fmt.Sprintf("Attempted %d · failed %d\n", report.TotalAttempted, report.TotalFailed))
	}
	b.WriteString(html.EscapeString(err.Error()))
	return b.String()
}

// FormatHelp lists the supported bot commands.
func FormatHelp() string {
	return strings.Join([]string{
		"🤖 <b>SwingScanner commands</b>",
		"/scan quick – scan BIST 100",
		"/scan full – scan all BIST symbols",
		"/top – best results of the last scan",
		"/top SYMBOL – detail for one symbol",
		"/status – progress of the running scan",
		"/help – this message",
	}, "\n")
}
