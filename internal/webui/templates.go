package webui

// pagesHTML holds both dashboard pages. Kept inline so the binary is
// self-contained.
const pagesHTML = `
{{define "compare"}}<!doctype html>
<html><head><title>Cleaning comparison</title>
<style>
body{font-family:sans-serif;margin:1rem}
table{border-collapse:collapse;font-size:12px}
td,th{border:1px solid #ccc;padding:2px 6px;white-space:nowrap}
.diff{background:#fde68a}.dropped{background:#fecaca}.new{background:#bbf7d0}
</style></head><body>
<h1>Original vs cleaned</h1>
<p>{{.Stats.OriginalCount}} original rows, {{.Stats.CleanedCount}} cleaned,
{{.Stats.RowsRemoved}} removed ({{.Stats.CleaningPercentage}}%).
<a href="/stats">statistics</a></p>
<table>
<tr><th>#</th><th>side</th><th>transaction_id</th><th>customer_id</th><th>product_id</th>
<th>product_name</th><th>quantity</th><th>price_per_unit</th><th>total_price</th><th>transaction_date</th></tr>
{{range .Rows}}
<tr{{if .Dropped}} class="dropped"{{end}}{{if .Diffs}} class="diff"{{end}}>
<td rowspan="2">{{.RowNumber}}</td><td>orig</td>
{{with .Original}}<td>{{index . "transaction_id"}}</td><td>{{index . "customer_id"}}</td><td>{{index . "product_id"}}</td><td>{{index . "product_name"}}</td><td>{{index . "quantity"}}</td><td>{{index . "price_per_unit"}}</td><td>{{index . "total_price"}}</td><td>{{index . "transaction_date"}}</td>{{else}}<td colspan="8">—</td>{{end}}
</tr>
<tr{{if .New}} class="new"{{end}}>
<td>clean</td>
{{with .Cleaned}}<td>{{index . "transaction_id"}}</td><td>{{index . "customer_id"}}</td><td>{{index . "product_id"}}</td><td>{{index . "product_name"}}</td><td>{{index . "quantity"}}</td><td>{{index . "price_per_unit"}}</td><td>{{index . "total_price"}}</td><td>{{index . "transaction_date"}}</td>{{else}}<td colspan="8">dropped</td>{{end}}
</tr>
{{end}}
</table></body></html>{{end}}

{{define "stats"}}<!doctype html>
<html><head><title>Sales statistics</title>
<style>body{font-family:sans-serif;margin:1rem}td,th{border:1px solid #ccc;padding:2px 8px}table{border-collapse:collapse}</style>
</head><body>
<h1>Cleaned dataset</h1>
<p><a href="/">back to comparison</a></p>
<ul>
<li>Records: {{.TotalRecords}}</li>
<li>Total revenue: {{.TotalRevenue}}</li>
<li>Average order value: {{.AvgOrderValue}}</li>
<li>Total quantity sold: {{.TotalQuantity}}</li>
</ul>
<table><tr><th>Product</th><th>Quantity sold</th></tr>
{{range .TopProducts}}<tr><td>{{.ProductName}}</td><td>{{.Quantity}}</td></tr>{{end}}
</table></body></html>{{end}}
`
