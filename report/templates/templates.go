package templates

// ReportTempl renders one tagging run as a single page with both count
// sections.
var ReportTempl = `<html>
<head>
<meta content="text/html;charset=utf-8" http-equiv="Content-Type">
<meta content="utf-8" http-equiv="encoding">
<link rel="stylesheet" type="text/css" href="./style.css">
<title>flowtag report</title>
</head>
<body>
<h1>Flow Log Tagging Report</h1>

<h2>Tag Counts</h2>
<table>
	<tr><th>Tag</th><th>Count</th></tr>
	{{range .Tags}}<tr><td>{{.Tag}}</td><td>{{.Count}}</td></tr>
	{{end}}
</table>

<h2>Port/Protocol Combination Counts</h2>
<table>
	<tr><th>Port</th><th>Protocol</th><th>Count</th></tr>
	{{range .PortProtocols}}<tr><td>{{.Port}}</td><td>{{.Protocol}}</td><td>{{.Count}}</td></tr>
	{{end}}
</table>
</body>
</html>
`
