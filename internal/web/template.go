package web

import (
	"fmt"
	"html/template"
	"io"
	"log"
	"time"

	"github.com/sweeney/lift-controller/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Lift Controller</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.on { color: green; font-weight: bold; }
.off { color: #888; }
.warn { color: orange; font-weight: bold; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Lift Controller</h1>

<table>
<tr><th>Mode</th><td>{{.Lift.Mode}}</td></tr>
<tr><th>Position</th><td class="on">{{.Lift.Current}}</td></tr>
<tr><th>Destination</th><td>{{.Lift.Next}}</td></tr>
<tr><th>Clicks</th><td>{{.Lift.Clicks}}</td></tr>
<tr><th>Thresholds (B/M/T)</th><td>{{.Lift.Thresholds.Bottom}} / {{.Lift.Thresholds.Middle}} / {{.Lift.Thresholds.Top}}</td></tr>
<tr><th>Direction</th><td>{{.Lift.Direction}}</td></tr>
<tr><th>Up line</th><td>{{if .Lift.UpEnergized}}<span class="on">CLOSED</span>{{else}}<span class="off">open</span>{{end}}</td></tr>
<tr><th>Down line</th><td>{{if .Lift.DownEnergized}}<span class="on">CLOSED</span>{{else}}<span class="off">open</span>{{end}}</td></tr>
<tr><th>Lockout</th><td>{{if .Lift.Lockout}}<span class="warn">ACTIVE</span>{{else}}clear{{end}}</td></tr>
<tr><th>Pending action</th><td>{{.Lift.Pending}}</td></tr>
</table>

<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>MQTT</th><td>{{if .MQTTConnected}}<span class="connected">connected</span>{{else}}<span class="disconnected">disconnected</span>{{end}} ({{.Config.Broker}})</td></tr>
<tr><th>Mode changes</th><td>{{.Counts.ModeChanges}}</td></tr>
<tr><th>Positions reached</th><td>{{.Counts.PositionsReached}}</td></tr>
<tr><th>Movements</th><td>{{.Counts.Movements}}</td></tr>
<tr><th>Lockouts</th><td>{{.Counts.Lockouts}}</td></tr>
<tr><th>Calibrations</th><td>{{.Counts.Calibrations}}</td></tr>
{{if .Counts.SaveFailures}}<tr><th>Save failures</th><td class="warn">{{.Counts.SaveFailures}}</td></tr>{{end}}
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	if err := indexTmpl.Execute(w, snap); err != nil {
		log.Printf("web: render template: %v", err)
	}
}
