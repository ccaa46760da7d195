package httpserver

import (
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockroom/inventory-api/internal/models"
)

// Cosmetic HTML table for browsers hitting the product list; JSON stays the
// default representation.
var productTableTmpl = template.Must(template.New("products").Parse(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <title>Products - Inventory API</title>
    <style>
      body{margin:40px auto;max-width:960px;padding:0 16px;color:#1f2937;font:14px system-ui,sans-serif}
      table{width:100%;border-collapse:collapse}
      th,td{padding:10px 12px;border-bottom:1px solid #e5e7eb;text-align:left}
      code{color:#0e7490}
    </style>
  </head>
  <body>
    <h1>Products</h1>
    <table>
      <thead><tr><th>ID</th><th>SKU</th><th>Name</th><th>Stock</th></tr></thead>
      <tbody>
        {{range .}}<tr><td>{{.ID}}</td><td><code>{{.SKU}}</code></td><td>{{.Name}}</td><td>{{.Stock}}</td></tr>
        {{end}}
      </tbody>
    </table>
  </body>
</html>`))

func renderProductTable(c echo.Context, items []models.Product) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return productTableTmpl.Execute(c.Response(), items)
}
